// Package security implements grim's capability-based plugin sandbox:
// the set of named permissions a plugin may be granted, a checker that
// enforces them against file paths and network hosts, and a resource
// monitor that rate-limits and caps what a granted plugin may consume.
package security

import (
	"fmt"
	"strings"
)

// Capability is a single permission a script or native plugin can be
// granted. Capabilities nest: granting "editor" implicitly grants every
// "editor.*" child below it (see IsChildOf/ImpliesCapability).
type Capability string

// The capabilities grim's Script Host checks against before letting a
// plugin touch a resource outside its own in-memory state. The Native
// Module Loader does not check them.
const (
	CapabilityFileRead  Capability = "filesystem.read"
	CapabilityFileWrite Capability = "filesystem.write"
	CapabilityNetwork   Capability = "network"
	CapabilityShell     Capability = "shell"
	CapabilityClipboard Capability = "clipboard"
	CapabilityProcess   Capability = "process.spawn"

	// CapabilityUnsafe is reserved for a plugin kind with unrestricted
	// host access; grim's current Script Host grammar (spec §4.4) never
	// grants it, since the grammar has no statement that could use it.
	CapabilityUnsafe Capability = "unsafe"

	CapabilityEditor  Capability = "editor"
	CapabilityBuffer  Capability = "editor.buffer"
	CapabilityCursor  Capability = "editor.cursor"
	CapabilityKeymap  Capability = "editor.keymap"
	CapabilityCommand Capability = "editor.command"
	CapabilityUI      Capability = "editor.ui"
	CapabilityConfig  Capability = "editor.config"
	CapabilityEvent   Capability = "editor.event"
	CapabilityLSP     Capability = "editor.lsp"
)

// CapabilityInfo is the descriptive metadata attached to a known
// Capability: how risky it is, what it's for, and whether granting it
// should require explicit user sign-off.
type CapabilityInfo struct {
	Name                 Capability
	DisplayName          string
	Description          string
	Parent               Capability
	RiskLevel            RiskLevel
	RequiresUserApproval bool
}

// RiskLevel orders capabilities by how much damage a misbehaving plugin
// could do with them.
type RiskLevel int

const (
	RiskLow RiskLevel = iota
	RiskMedium
	RiskHigh
	RiskCritical
)

func (r RiskLevel) String() string {
	switch r {
	case RiskLow:
		return "low"
	case RiskMedium:
		return "medium"
	case RiskHigh:
		return "high"
	case RiskCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// capabilityCatalog is the source list capabilityRegistry is built from.
// Keeping it as a slice rather than a map literal makes the intended
// read order (flat capabilities first, then the editor.* family) the
// same as declaration order.
var capabilityCatalog = []CapabilityInfo{
	{Name: CapabilityFileRead, DisplayName: "File Read", Description: "Read files from the filesystem", RiskLevel: RiskMedium},
	{Name: CapabilityFileWrite, DisplayName: "File Write", Description: "Write files to the filesystem", RiskLevel: RiskHigh, RequiresUserApproval: true},
	{Name: CapabilityNetwork, DisplayName: "Network Access", Description: "Make network requests", RiskLevel: RiskHigh, RequiresUserApproval: true},
	{Name: CapabilityShell, DisplayName: "Shell Access", Description: "Execute shell commands", RiskLevel: RiskCritical, RequiresUserApproval: true},
	{Name: CapabilityClipboard, DisplayName: "Clipboard Access", Description: "Read and write clipboard", RiskLevel: RiskMedium},
	{Name: CapabilityProcess, DisplayName: "Process Spawn", Description: "Spawn child processes", RiskLevel: RiskCritical, RequiresUserApproval: true},
	{Name: CapabilityUnsafe, DisplayName: "Unsafe Mode", Description: "Unrestricted host access (dangerous)", RiskLevel: RiskCritical, RequiresUserApproval: true},
	{Name: CapabilityEditor, DisplayName: "Editor Access", Description: "Access editor internals", RiskLevel: RiskLow},
	{Name: CapabilityBuffer, DisplayName: "Buffer Access", Description: "Read and modify buffers", Parent: CapabilityEditor, RiskLevel: RiskLow},
	{Name: CapabilityCursor, DisplayName: "Cursor Access", Description: "Control cursor position", Parent: CapabilityEditor, RiskLevel: RiskLow},
	{Name: CapabilityKeymap, DisplayName: "Keymap Access", Description: "Register keybindings", Parent: CapabilityEditor, RiskLevel: RiskLow},
	{Name: CapabilityCommand, DisplayName: "Command Access", Description: "Register commands", Parent: CapabilityEditor, RiskLevel: RiskLow},
	{Name: CapabilityUI, DisplayName: "UI Access", Description: "Show notifications and UI elements", Parent: CapabilityEditor, RiskLevel: RiskLow},
	{Name: CapabilityConfig, DisplayName: "Config Access", Description: "Read and write configuration", Parent: CapabilityEditor, RiskLevel: RiskLow},
	{Name: CapabilityEvent, DisplayName: "Event Access", Description: "Subscribe to editor events", Parent: CapabilityEditor, RiskLevel: RiskLow},
	{Name: CapabilityLSP, DisplayName: "LSP Access", Description: "Access LSP client", Parent: CapabilityEditor, RiskLevel: RiskLow},
}

// capabilityRegistry indexes capabilityCatalog by name for GetCapabilityInfo
// and IsValidCapability.
var capabilityRegistry = buildCapabilityRegistry()

func buildCapabilityRegistry() map[Capability]CapabilityInfo {
	reg := make(map[Capability]CapabilityInfo, len(capabilityCatalog))
	for _, info := range capabilityCatalog {
		reg[info.Name] = info
	}
	return reg
}

// GetCapabilityInfo returns information about a capability.
func GetCapabilityInfo(cap Capability) (CapabilityInfo, bool) {
	info, ok := capabilityRegistry[cap]
	return info, ok
}

// IsValidCapability returns true if the capability is known.
func IsValidCapability(cap Capability) bool {
	_, ok := capabilityRegistry[cap]
	return ok
}

// AllCapabilities returns every known capability.
func AllCapabilities() []Capability {
	caps := make([]Capability, 0, len(capabilityCatalog))
	for _, info := range capabilityCatalog {
		caps = append(caps, info.Name)
	}
	return caps
}

// HighRiskCapabilities returns capabilities that require user approval.
func HighRiskCapabilities() []Capability {
	var caps []Capability
	for _, info := range capabilityCatalog {
		if info.RequiresUserApproval {
			caps = append(caps, info.Name)
		}
	}
	return caps
}

// IsChildOf reports whether child is nested directly or transitively
// under parent, by dotted-name prefix (so "editor.buffer" is a child of
// "editor" but not of "editor.cursor").
func IsChildOf(child, parent Capability) bool {
	return strings.HasPrefix(string(child), string(parent)+".")
}

// ImpliesCapability reports whether granting a plugin the capability
// granted is sufficient to satisfy a check for required: either they're
// the same capability, or granted is an ancestor of required.
func ImpliesCapability(granted, required Capability) bool {
	if granted == required {
		return true
	}
	return IsChildOf(required, granted)
}

// CapabilityError reports a capability check that failed, naming which
// capability was missing and what it was needed for.
type CapabilityError struct {
	Capability Capability
	Operation  string
	Message    string
}

func (e *CapabilityError) Error() string {
	if e.Operation != "" {
		return fmt.Sprintf("capability %q required for %s: %s", e.Capability, e.Operation, e.Message)
	}
	return fmt.Sprintf("capability %q: %s", e.Capability, e.Message)
}

// NewCapabilityError builds a CapabilityError for cap, optionally naming
// the operation that was attempted.
func NewCapabilityError(cap Capability, operation, message string) *CapabilityError {
	return &CapabilityError{Capability: cap, Operation: operation, Message: message}
}
