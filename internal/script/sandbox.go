package script

import (
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ghostkellz/grim/internal/pluginhost/security"
)

// SandboxConfig bounds the resources a single Run may consume. Fields
// mirror the resource-limit shape of a native plugin host: wall time,
// memory, and per-kind operation counts, plus capability gates for
// filesystem, network, and system-call access.
//
// Permissions and Limits are optional. A nil Permissions leaves file and
// network access governed entirely by the Enable*/*FilePatterns fields
// below, since a script host with no declared plugin identity has
// nothing for a capability to attach to. A zero-value Limits carries no
// ceiling on instructions, rate, memory, or output size; every check in
// internal/pluginhost/security treats a zero limit as "unset" and skips
// the comparison.
type SandboxConfig struct {
	MaxWallTime        time.Duration
	MaxMemoryBytes     int64
	MaxFileOperations  int
	MaxNetworkRequests int
	EnableFilesystem   bool
	EnableNetwork      bool
	EnableSystemCalls  bool

	AllowedFilePatterns []string
	BlockedFilePatterns []string

	// PluginName identifies the script for capability errors and for the
	// PermissionChecker built from Permissions.
	PluginName string
	// Permissions, when set, additionally requires the matching
	// security.Capability for every file or network access a running
	// script attempts, on top of the glob and Enable* gates above.
	Permissions *security.PermissionSet
	// Limits bounds instruction count and file/network operation rate
	// via a security.ResourceMonitor, independent of the hard counters
	// tracked by MaxFileOperations/MaxNetworkRequests.
	Limits security.ResourceLimits
}

// DefaultSandboxConfig returns a conservative preset: no filesystem,
// network, or system-call access, generous time and memory headroom.
func DefaultSandboxConfig() SandboxConfig {
	return SandboxConfig{
		MaxWallTime:        2 * time.Second,
		MaxMemoryBytes:     16 << 20,
		MaxFileOperations:  0,
		MaxNetworkRequests: 0,
		EnableFilesystem:   false,
		EnableNetwork:      false,
		EnableSystemCalls:  false,
	}
}

// Stats reports a host's cumulative resource usage across one or more runs.
type Stats struct {
	ExecutionCount     int64
	TotalWallTime      time.Duration
	PeakMemoryBytes    int64
	FileOperations     int64
	NetworkRequests    int64
	Violations         int64
	LastStartTimestamp time.Time
}

// sandbox enforces a SandboxConfig during one Run call. It is not safe for
// concurrent use; the single-threaded editor-thread model never needs it
// to be.
type sandbox struct {
	config    SandboxConfig
	fileOps   int64
	netOps    int64
	violation int64

	perms   *security.PermissionChecker
	monitor *security.ResourceMonitor
}

func newSandbox(cfg SandboxConfig) *sandbox {
	sb := &sandbox{config: cfg, monitor: security.NewResourceMonitor(cfg.Limits)}
	if cfg.Permissions != nil {
		pc := security.NewPermissionChecker(cfg.PluginName)
		pc.ApplyPermissionSet(cfg.Permissions)
		sb.perms = pc
	}
	return sb
}

// checkFileAccess applies the blocked-then-allowed precedence: a path
// matching any blocked pattern is always denied, even if it also matches
// an allowed pattern; otherwise, if allowed patterns are configured, the
// path must match at least one. When the sandbox carries a
// PermissionChecker, security.CapabilityFileRead must also be granted.
func (s *sandbox) checkFileAccess(path string) error {
	if !s.config.EnableFilesystem {
		return ErrUnauthorizedFileAccess
	}
	if s.perms != nil && !s.perms.HasCapability(security.CapabilityFileRead) {
		return ErrUnauthorizedFileAccess
	}
	for _, pattern := range s.config.BlockedFilePatterns {
		if matchGlob(pattern, path) {
			return ErrUnauthorizedFileAccess
		}
	}
	if len(s.config.AllowedFilePatterns) > 0 {
		allowed := false
		for _, pattern := range s.config.AllowedFilePatterns {
			if matchGlob(pattern, path) {
				allowed = true
				break
			}
		}
		if !allowed {
			return ErrUnauthorizedFileAccess
		}
	}
	return nil
}

// matchGlob supports a plain path match or a trailing-"*" prefix match;
// the sandbox's glob vocabulary deliberately stops there, so a pattern of
// "*.env" never matches a full-path suffix and can't be mistaken for
// arbitrary shell globbing.
func matchGlob(pattern, path string) bool {
	if strings.HasSuffix(pattern, "*") {
		return strings.HasPrefix(path, strings.TrimSuffix(pattern, "*"))
	}
	return filepath.Clean(pattern) == filepath.Clean(path)
}

func (s *sandbox) recordFileOp() error {
	if int(atomic.AddInt64(&s.fileOps, 1)) > s.config.MaxFileOperations {
		atomic.AddInt64(&s.violation, 1)
		return ErrSandboxViolation
	}
	if !s.monitor.TryFileOp() {
		atomic.AddInt64(&s.violation, 1)
		return ErrSandboxViolation
	}
	return nil
}

// checkNetworkAccess reports whether host may be contacted. Beyond the
// EnableNetwork and MaxNetworkRequests gates, a sandbox carrying a
// PermissionChecker also enforces the granted capability plus any host
// allow/block lists attached to it.
func (s *sandbox) checkNetworkAccess(host string) error {
	if !s.config.EnableNetwork {
		return ErrUnauthorizedNetworkAccess
	}
	if s.perms != nil {
		if err := s.perms.CheckNetwork(host); err != nil {
			return ErrUnauthorizedNetworkAccess
		}
	}
	if int(atomic.AddInt64(&s.netOps, 1)) > s.config.MaxNetworkRequests {
		atomic.AddInt64(&s.violation, 1)
		return ErrSandboxViolation
	}
	if !s.monitor.TryNetworkRequest() {
		atomic.AddInt64(&s.violation, 1)
		return ErrSandboxViolation
	}
	return nil
}

// checkInstructionBudget counts one executed action against the
// sandbox's instruction limit, returning ErrSandboxViolation once
// Limits.InstructionLimit is exceeded.
func (s *sandbox) checkInstructionBudget() error {
	if s.monitor.IncrementInstructions(1) {
		atomic.AddInt64(&s.violation, 1)
		return ErrSandboxViolation
	}
	return nil
}
