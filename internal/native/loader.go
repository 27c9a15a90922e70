package native

import "plugin"

// Symbol names resolved from a loaded library. Go's plugin mechanism
// resolves exported package-level identifiers rather than raw C symbols,
// so the spec's snake_case ABI names (plugin_info, plugin_init, ...) are
// expressed here as the CamelCase Go identifiers a plugin package must
// export; the ABI contract (required/optional, signature, ordering) is
// otherwise unchanged from spec.md §4.5.
const (
	symPluginInfo     = "PluginInfo"
	symPluginInit     = "PluginInit"
	symPluginSetup    = "PluginSetup"
	symPluginTeardown = "PluginTeardown"
)

// opener abstracts plugin.Open so Loader is testable without a real .so
// on disk; the zero Loader uses openFile, which wraps the standard
// library.
type opener func(path string) (libraryHandle, error)

// pluginHandle adapts *plugin.Plugin to libraryHandle.
type pluginHandle struct{ p *plugin.Plugin }

func (h pluginHandle) Lookup(symbol string) (interface{}, error) {
	sym, err := h.p.Lookup(symbol)
	if err != nil {
		return nil, err
	}
	return sym, nil
}

func openFile(path string) (libraryHandle, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, err
	}
	return pluginHandle{p: p}, nil
}

// Loader loads and tears down native dynamic-library plugins. It
// satisfies pluginhost.NativeRuntime.
type Loader struct {
	open opener
}

// NewLoader creates a loader backed by the real Go plugin runtime.
func NewLoader() *Loader {
	return &Loader{open: openFile}
}

// Load opens the dynamic library at path, resolves its required symbols,
// validates the reported API version, and runs plugin_init followed by
// plugin_setup, per spec.md §4.5's contract.
func (l *Loader) Load(path string) (*Module, error) {
	open := l.open
	if open == nil {
		open = openFile
	}
	handle, err := open(path)
	if err != nil {
		return nil, err
	}

	sym, err := resolve(handle)
	if err != nil {
		return nil, err
	}

	info := sym.Info()
	if info.APIVersion != CurrentAPIVersion {
		return nil, ErrAPIVersionMismatch
	}

	if !sym.Init() {
		return nil, ErrInitFailed
	}

	if sym.Setup != nil {
		sym.Setup()
	}

	return &Module{Path: path, Info: info, handle: handle, symbols: sym}, nil
}

// Unload calls plugin_teardown (if present). The library handle itself is
// never explicitly closed — Go's plugin package has no Close/dlclose
// equivalent, since unloading a loaded shared object is not supported by
// the Go runtime; the handle is simply dropped for garbage collection.
func (l *Loader) Unload(m *Module) error {
	if m.symbols.Teardown != nil {
		m.symbols.Teardown()
	}
	return nil
}

// LoadNative implements pluginhost.NativeRuntime.
func (l *Loader) LoadNative(path string) (interface{}, error) {
	return l.Load(path)
}

// UnloadNative implements pluginhost.NativeRuntime.
func (l *Loader) UnloadNative(handle interface{}) error {
	m, ok := handle.(*Module)
	if !ok || m == nil {
		return nil
	}
	return l.Unload(m)
}

func resolve(handle libraryHandle) (symbols, error) {
	var sym symbols

	infoSym, err := handle.Lookup(symPluginInfo)
	if err != nil {
		return symbols{}, ErrMissingSymbol
	}
	info, ok := infoSym.(func() Info)
	if !ok {
		return symbols{}, ErrBadSymbolSignature
	}
	sym.Info = info

	initSym, err := handle.Lookup(symPluginInit)
	if err != nil {
		return symbols{}, ErrMissingSymbol
	}
	initFn, ok := initSym.(func() bool)
	if !ok {
		return symbols{}, ErrBadSymbolSignature
	}
	sym.Init = initFn

	if setupSym, err := handle.Lookup(symPluginSetup); err == nil {
		setupFn, ok := setupSym.(func())
		if !ok {
			return symbols{}, ErrBadSymbolSignature
		}
		sym.Setup = setupFn
	}

	if teardownSym, err := handle.Lookup(symPluginTeardown); err == nil {
		teardownFn, ok := teardownSym.(func())
		if !ok {
			return symbols{}, ErrBadSymbolSignature
		}
		sym.Teardown = teardownFn
	}

	return sym, nil
}
