// Package pluginhost discovers, orders, and supervises plugin instances.
//
// A plugin is a directory containing a plugin.json manifest and an entry
// point, classified by extension as either script (run through the
// sandboxed script host) or native (a dynamic library loaded through the
// native module loader's fixed symbol table).
//
// # Manifest
//
// plugin.json declares identity, version, dependencies, and the
// permissions the instance requests:
//
//	{
//	  "id": "fuzzy-find",
//	  "name": "Fuzzy Find",
//	  "version": "1.2.0",
//	  "entry_point": "main.scr",
//	  "dependencies": ["core-fs"],
//	  "permissions": {"filesystem": true, "wall_time_ms": 500}
//	}
//
// # Discovery and load order
//
// Loader.Discover scans every configured root, deduplicating by id on a
// first-root-wins basis, and returns manifests in deterministic
// lexicographic order. ResolveLoadOrder then computes a dependency load
// order with Kahn's algorithm: a plugin with an unsatisfied dependency is
// excluded, and a dependency cycle excludes its members, naming them for
// diagnostics. Plugins depending on an excluded plugin drop out of the
// order too; unrelated plugins are unaffected either way.
//
// # Lifecycle
//
// Each discovered manifest gets an Instance that moves through a fixed
// state machine:
//
//	discovered -> loading -> ready
//	                       -> failed
//	ready -> unloaded
//
// Manager drives this transition through whichever of Runtimes.Script or
// Runtimes.Native matches the instance's Kind; a load failure isolates to
// that instance and never stops its peers.
//
// # Events and themes
//
// Manager.Dispatch invokes event handlers for ready subscribers in the
// order they subscribed, recording (never propagating) a handler's
// error. Themes a plugin registers through Manager.RegisterTheme are
// tracked per instance and automatically unregistered on Unload.
package pluginhost
