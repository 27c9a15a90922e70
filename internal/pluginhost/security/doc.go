// Package security is grim's plugin sandbox boundary: a capability
// registry, a per-plugin PermissionChecker, and a ResourceMonitor that
// together decide what a running Script Host is allowed to touch and
// how much of the machine it may consume. Native modules are not run
// under them.
//
// # Capabilities
//
// A Capability is a dotted permission name a plugin manifest requests
// and a user grants. The namespace is hierarchical: granting "editor"
// implies every "editor.*" child (editor.buffer, editor.cursor, and so
// on) without listing each one. See IsChildOf and ImpliesCapability.
//
// Capability families:
//   - filesystem.read / filesystem.write
//   - network, shell, process.spawn, clipboard
//   - unsafe — reserved, currently ungranted by any component
//   - editor.* — buffer, cursor, keymap, command, ui, config, event, lsp
//
// # Permissions
//
// PermissionChecker is built once per plugin (NewPermissionChecker) and
// layers path/host allow-and-block lists and a workspace boundary on
// top of the raw capability grants. Blocked entries always win over
// allowed ones, even when the blocked path is nested under an allowed
// parent.
//
// # Resource limits
//
// ResourceMonitor tracks a single plugin's live consumption against a
// ResourceLimits: instruction count, memory, goroutines, output size,
// and token-bucket rate limits for file and network operations. Every
// field of ResourceLimits is advisory when left at zero — a monitor
// built from a zero-value ResourceLimits never reports exceeded.
//
// Typical construction (permissionSetFromManifest and
// resourceLimitsFromManifest stand for caller-written conversions; the
// Script Host builds both from its SandboxConfig instead):
//
//	checker := security.NewPermissionChecker(manifest.ID)
//	checker.ApplyPermissionSet(permissionSetFromManifest(manifest))
//
//	monitor := security.NewResourceMonitor(resourceLimitsFromManifest(manifest))
//	if monitor.IncrementInstructions(1) {
//	    // plugin tripped its instruction budget
//	}
package security
