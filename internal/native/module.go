package native

import "fmt"

// CurrentAPIVersion is the ABI version this loader accepts. Any change to
// the plugin_info return-struct layout bumps this integer; there is no
// deprecation window (spec.md §9 open question) — a bump is breaking by
// definition.
const CurrentAPIVersion = 1

// Info is the metadata a native plugin's plugin_info symbol reports.
type Info struct {
	Name       string
	Version    string
	Author     string
	APIVersion int
}

// symbols is the resolved, type-asserted function table for one loaded
// library. Every field is non-nil except Setup/Teardown, which are
// optional per spec.md §4.5.
type symbols struct {
	Info      func() Info
	Init      func() bool
	Setup     func()
	Teardown  func()
}

// Module is a loaded native plugin: a library handle plus its resolved
// symbol table. The handle is kept alive for the Module's entire
// lifetime since every function in symbols is a pointer derived from it.
type Module struct {
	Path string
	Info Info

	handle  libraryHandle
	symbols symbols
}

// libraryHandle abstracts plugin.Plugin so tests can substitute a fake
// loader without touching the filesystem or the real Go plugin runtime.
type libraryHandle interface {
	Lookup(symbol string) (interface{}, error)
}

// String returns a human-readable identity for logs.
func (m *Module) String() string {
	return fmt.Sprintf("%s@%s (api v%d)", m.Info.Name, m.Info.Version, m.Info.APIVersion)
}
