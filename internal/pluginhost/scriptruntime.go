package pluginhost

import (
	"context"
	"os"
	"time"

	"github.com/ghostkellz/grim/internal/pluginhost/security"
	"github.com/ghostkellz/grim/internal/script"
)

// ScriptHost adapts internal/script's Host and Compile step to the
// ScriptRuntime interface, so Manager never imports internal/script
// directly. One ScriptHost is shared across every script-kind plugin
// instance in a session; each LoadScript call still gets its own *script.Host
// so a plugin's resource statistics (internal/script's Stats) never mix
// with another plugin's.
//
// config supplies the fleet-wide defaults (wall-time and memory ceilings
// a manifest doesn't override); each plugin's Manifest.Permissions is
// layered on top of it in configFor: the manifest's enable flags replace
// the default's, and any positive resource figure replaces the default
// figure, whether larger or smaller.
type ScriptHost struct {
	dispatch script.Dispatcher
	registry script.CallRegistry
	config   script.SandboxConfig
}

// NewScriptHost creates a runtime that compiles and runs scripts against
// dispatch, resolving callee names through registry at compile time.
func NewScriptHost(dispatch script.Dispatcher, registry script.CallRegistry, config script.SandboxConfig) *ScriptHost {
	return &ScriptHost{dispatch: dispatch, registry: registry, config: config}
}

// configFor derives the SandboxConfig a single plugin's Host should run
// under from the runtime's shared defaults plus that plugin's declared
// manifest permissions. A manifest's filesystem/network/process grants
// become security.Capability entries a PermissionChecker enforces
// alongside the existing glob and enable-flag checks, and its resource
// figures become a security.ResourceLimits the sandbox's ResourceMonitor
// rate-limits against.
func (s *ScriptHost) configFor(m *Manifest) script.SandboxConfig {
	cfg := s.config
	cfg.PluginName = m.ID
	cfg.EnableFilesystem = m.Permissions.Filesystem
	cfg.EnableNetwork = m.Permissions.Network
	cfg.EnableSystemCalls = m.Permissions.SystemCalls

	if m.Permissions.MemoryBytes > 0 {
		cfg.MaxMemoryBytes = m.Permissions.MemoryBytes
	}
	if m.Permissions.WallTimeMS > 0 {
		cfg.MaxWallTime = time.Duration(m.Permissions.WallTimeMS) * time.Millisecond
	}
	if m.Permissions.FileOperations > 0 {
		cfg.MaxFileOperations = m.Permissions.FileOperations
	}
	if m.Permissions.NetworkRequests > 0 {
		cfg.MaxNetworkRequests = m.Permissions.NetworkRequests
	}

	set := &security.PermissionSet{}
	if m.Permissions.Filesystem {
		set.Capabilities = append(set.Capabilities, security.CapabilityFileRead, security.CapabilityFileWrite)
	}
	if m.Permissions.Network {
		set.Capabilities = append(set.Capabilities, security.CapabilityNetwork)
	}
	if m.Permissions.Process {
		set.Capabilities = append(set.Capabilities, security.CapabilityProcess)
	}
	cfg.Permissions = set

	cfg.Limits = security.ResourceLimits{
		MemoryLimit:         cfg.MaxMemoryBytes,
		ExecutionTimeout:    cfg.MaxWallTime,
		FileOpsPerSecond:    m.Permissions.FileOperations,
		NetworkReqPerSecond: m.Permissions.NetworkRequests,
	}
	return cfg
}

// scriptInstance is the handle LoadScript hands back to the manager: the
// compiled program plus the per-plugin Host that ran its setup().
type scriptInstance struct {
	host *script.Host
	prog *script.Program
}

// LoadScript reads, compiles, and runs the entry point's mandatory
// setup() function, satisfying pluginhost.ScriptRuntime.
func (s *ScriptHost) LoadScript(ctx context.Context, m *Manifest, entryPointPath string) (interface{}, error) {
	src, err := os.ReadFile(entryPointPath)
	if err != nil {
		return nil, err
	}
	prog, err := script.Compile(string(src), s.registry)
	if err != nil {
		return nil, err
	}
	host := script.NewHost(s.dispatch, s.configFor(m))
	if err := host.RunSetup(ctx, prog); err != nil {
		return nil, err
	}
	return &scriptInstance{host: host, prog: prog}, nil
}

// UnloadScript satisfies pluginhost.ScriptRuntime. Scripts hold no
// teardown resources beyond what garbage collection reclaims; the
// interpreter forbids background goroutines or open handles surviving a
// call's return.
func (s *ScriptHost) UnloadScript(handle interface{}) error {
	return nil
}
