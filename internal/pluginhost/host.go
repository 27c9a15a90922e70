package pluginhost

import "context"

// ScriptRuntime loads and tears down script-kind plugin instances. It is
// satisfied by internal/script's Host plus a small compile step (the
// ScriptHost adapter in scriptruntime.go, the one file of this package
// that imports internal/script). Manager depends only on this interface,
// keeping it ignorant of how a script actually runs.
type ScriptRuntime interface {
	// LoadScript reads and compiles the entry point at path, runs its
	// setup() entry point, and returns an opaque handle for later unload.
	// A nil handle with a nil error means the plugin needs no teardown.
	LoadScript(ctx context.Context, m *Manifest, entryPointPath string) (handle interface{}, err error)

	// UnloadScript releases any resources associated with handle.
	UnloadScript(handle interface{}) error
}

// NativeRuntime loads and tears down native dynamic-library instances. It
// is satisfied by internal/native's Loader.
type NativeRuntime interface {
	// LoadNative opens the dynamic library at path, validates its symbol
	// table and API version, and runs plugin_init (and plugin_setup on
	// success), returning an opaque handle.
	LoadNative(path string) (handle interface{}, err error)

	// UnloadNative calls plugin_teardown (if present). internal/native's
	// Loader does not close the library handle; Go cannot unload it.
	UnloadNative(handle interface{}) error
}

// Runtimes bundles the two plugin execution backends the manager mediates
// between. Either field may be nil if the editor session disables that
// plugin kind entirely; instances of the corresponding Kind then always
// fail to load with ErrUnknownKind.
type Runtimes struct {
	Script ScriptRuntime
	Native NativeRuntime
}
