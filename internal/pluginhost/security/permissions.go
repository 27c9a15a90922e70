package security

import (
	"net"
	"path/filepath"
	"strings"
	"sync"
)

// PermissionChecker is the capability, path, and host gate a running
// plugin's operations are checked against. It is built once per plugin
// (see NewPermissionChecker) and consulted on every sandboxed operation
// the Script Host attempts on that plugin's behalf; the Native Module
// Loader does not consult it.
type PermissionChecker struct {
	mu sync.RWMutex

	capabilities map[Capability]bool

	allowedPaths  []string
	blockedPaths  []string
	workspacePath string

	allowedHosts []string
	blockedHosts []string

	pluginName string
}

// NewPermissionChecker creates an empty checker for pluginName: no
// capabilities granted, no path or host restrictions beyond whatever
// Grant/AllowPath/AllowHost (or ApplyPermissionSet) add afterward.
func NewPermissionChecker(pluginName string) *PermissionChecker {
	return &PermissionChecker{
		capabilities: make(map[Capability]bool),
		pluginName:   pluginName,
	}
}

// Grant grants cap to the plugin.
func (pc *PermissionChecker) Grant(cap Capability) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.capabilities[cap] = true
}

// Revoke removes cap from the plugin's grants.
func (pc *PermissionChecker) Revoke(cap Capability) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	delete(pc.capabilities, cap)
}

// GrantAll grants every capability in caps.
func (pc *PermissionChecker) GrantAll(caps []Capability) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	for _, cap := range caps {
		pc.capabilities[cap] = true
	}
}

// HasCapability reports whether cap is granted, directly or through a
// granted ancestor capability (see ImpliesCapability).
func (pc *PermissionChecker) HasCapability(cap Capability) bool {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	if pc.capabilities[cap] {
		return true
	}
	for granted := range pc.capabilities {
		if ImpliesCapability(granted, cap) {
			return true
		}
	}
	return false
}

// CheckCapability returns a CapabilityError if cap is not granted.
func (pc *PermissionChecker) CheckCapability(cap Capability) error {
	if !pc.HasCapability(cap) {
		return NewCapabilityError(cap, "", "not granted")
	}
	return nil
}

// Capabilities returns every capability directly granted (not including
// capabilities only reachable via ImpliesCapability).
func (pc *PermissionChecker) Capabilities() []Capability {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	caps := make([]Capability, 0, len(pc.capabilities))
	for cap := range pc.capabilities {
		caps = append(caps, cap)
	}
	return caps
}

// SetWorkspacePath sets the root a CheckFileRead/CheckFileWrite call must
// stay within when no explicit allow list narrows it further.
func (pc *PermissionChecker) SetWorkspacePath(path string) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.workspacePath = normalizePath(path)
}

// AllowPath adds path to the allow list file access is checked against.
func (pc *PermissionChecker) AllowPath(path string) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.allowedPaths = append(pc.allowedPaths, normalizePath(path))
}

// BlockPath adds path to the deny list, which always takes precedence
// over both the allow list and the workspace boundary.
func (pc *PermissionChecker) BlockPath(path string) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.blockedPaths = append(pc.blockedPaths, normalizePath(path))
}

func normalizePath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return filepath.Clean(abs)
}

// CheckFileRead reports whether reading path is permitted: the
// CapabilityFileRead capability must be granted and path must clear the
// block/allow/workspace containment checks in checkPathAccess.
func (pc *PermissionChecker) CheckFileRead(path string) error {
	if !pc.HasCapability(CapabilityFileRead) {
		return NewCapabilityError(CapabilityFileRead, "read file", "not granted")
	}
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.checkPathAccess(path, "read")
}

// CheckFileWrite is CheckFileRead's write-side counterpart, gated on
// CapabilityFileWrite instead.
func (pc *PermissionChecker) CheckFileWrite(path string) error {
	if !pc.HasCapability(CapabilityFileWrite) {
		return NewCapabilityError(CapabilityFileWrite, "write file", "not granted")
	}
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.checkPathAccess(path, "write")
}

// checkPathAccess applies block-list, then allow-list, then workspace
// containment, in that precedence order. Callers hold pc.mu already.
func (pc *PermissionChecker) checkPathAccess(path, operation string) error {
	absPath := normalizePath(path)

	for _, blocked := range pc.blockedPaths {
		if isWithinPath(absPath, blocked) {
			return NewCapabilityError(CapabilityFileRead, operation, "path is blocked")
		}
	}

	if len(pc.allowedPaths) > 0 {
		allowed := false
		for _, allowedPath := range pc.allowedPaths {
			if isWithinPath(absPath, allowedPath) {
				allowed = true
				break
			}
		}
		if !allowed {
			return NewCapabilityError(CapabilityFileRead, operation, "path not in allowed list")
		}
	}

	if pc.workspacePath != "" && len(pc.allowedPaths) == 0 {
		if !isWithinPath(absPath, pc.workspacePath) {
			return NewCapabilityError(CapabilityFileRead, operation, "path outside workspace")
		}
	}

	return nil
}

// isWithinPath reports whether target is base or a descendant of base,
// using filepath.Rel so "/tmp/blocked" doesn't falsely match the
// unrelated "/tmp/blockedfile".
func isWithinPath(target, base string) bool {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return false
	}
	return !strings.HasPrefix(rel, "..") && !filepath.IsAbs(rel)
}

// AllowHost adds host to the network allow list.
func (pc *PermissionChecker) AllowHost(host string) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.allowedHosts = append(pc.allowedHosts, strings.ToLower(host))
}

// BlockHost adds host to the network deny list, which takes precedence
// over the allow list.
func (pc *PermissionChecker) BlockHost(host string) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.blockedHosts = append(pc.blockedHosts, strings.ToLower(host))
}

// CheckNetwork reports whether a connection to host (optionally
// host:port) is permitted: CapabilityNetwork must be granted and host
// must clear the block/allow host-list checks.
func (pc *PermissionChecker) CheckNetwork(host string) error {
	if !pc.HasCapability(CapabilityNetwork) {
		return NewCapabilityError(CapabilityNetwork, "network request", "not granted")
	}

	pc.mu.RLock()
	defer pc.mu.RUnlock()

	hostOnly := strings.ToLower(extractHost(host))

	for _, blocked := range pc.blockedHosts {
		if matchHost(hostOnly, blocked) {
			return NewCapabilityError(CapabilityNetwork, "network request", "host is blocked")
		}
	}

	if len(pc.allowedHosts) > 0 {
		allowed := false
		for _, allowedHost := range pc.allowedHosts {
			if matchHost(hostOnly, allowedHost) {
				allowed = true
				break
			}
		}
		if !allowed {
			return NewCapabilityError(CapabilityNetwork, "network request", "host not in allowed list")
		}
	}

	return nil
}

// extractHost strips a trailing ":port" from hostPort, including the
// bracketed form IPv6 addresses take ("[::1]:8080" and bare "[::1]").
func extractHost(hostPort string) string {
	host, _, err := net.SplitHostPort(hostPort)
	if err == nil {
		return host
	}
	if strings.HasPrefix(hostPort, "[") && strings.HasSuffix(hostPort, "]") {
		return hostPort[1 : len(hostPort)-1]
	}
	return hostPort
}

// CheckShell reports whether command execution is permitted.
func (pc *PermissionChecker) CheckShell(command string) error {
	if !pc.HasCapability(CapabilityShell) {
		return NewCapabilityError(CapabilityShell, "shell command", "not granted")
	}
	return nil
}

// CheckProcess reports whether spawning executable is permitted.
func (pc *PermissionChecker) CheckProcess(executable string) error {
	if !pc.HasCapability(CapabilityProcess) {
		return NewCapabilityError(CapabilityProcess, "spawn process", "not granted")
	}
	return nil
}

// CheckClipboard reports whether the named clipboard operation is
// permitted.
func (pc *PermissionChecker) CheckClipboard(operation string) error {
	if !pc.HasCapability(CapabilityClipboard) {
		return NewCapabilityError(CapabilityClipboard, operation, "not granted")
	}
	return nil
}

// matchHost reports whether host matches pattern, case-insensitively.
// pattern may be an exact host or a "*.example.com" wildcard suffix.
func matchHost(host, pattern string) bool {
	host = strings.ToLower(host)
	pattern = strings.ToLower(pattern)

	if host == pattern {
		return true
	}
	if strings.HasPrefix(pattern, "*.") {
		return strings.HasSuffix(host, pattern[1:])
	}
	return false
}

// PermissionSet is a declarative bundle of grants — the shape a plugin
// manifest's permissions translate into before being applied to a
// PermissionChecker via ApplyPermissionSet.
type PermissionSet struct {
	Capabilities []Capability

	AllowedPaths []string
	BlockedPaths []string

	AllowedHosts []string
	BlockedHosts []string
}

// ApplyPermissionSet merges set into pc: every capability is granted,
// every path and host entry is appended to its matching list.
func (pc *PermissionChecker) ApplyPermissionSet(set *PermissionSet) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	for _, cap := range set.Capabilities {
		pc.capabilities[cap] = true
	}
	for _, path := range set.AllowedPaths {
		pc.allowedPaths = append(pc.allowedPaths, normalizePath(path))
	}
	for _, path := range set.BlockedPaths {
		pc.blockedPaths = append(pc.blockedPaths, normalizePath(path))
	}
	for _, host := range set.AllowedHosts {
		pc.allowedHosts = append(pc.allowedHosts, strings.ToLower(host))
	}
	for _, host := range set.BlockedHosts {
		pc.blockedHosts = append(pc.blockedHosts, strings.ToLower(host))
	}
}

// Reset clears every grant and restriction, returning pc to the state
// NewPermissionChecker produces (pluginName is preserved).
func (pc *PermissionChecker) Reset() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	pc.capabilities = make(map[Capability]bool)
	pc.allowedPaths = nil
	pc.blockedPaths = nil
	pc.workspacePath = ""
	pc.allowedHosts = nil
	pc.blockedHosts = nil
}
