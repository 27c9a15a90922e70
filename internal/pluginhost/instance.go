package pluginhost

import (
	"path/filepath"
	"runtime"
)

// Kind distinguishes how a Plugin Instance's entry point is executed.
type Kind int

const (
	// KindScript instances run through the Sandboxed Script Host.
	KindScript Kind = iota
	// KindNative instances are dynamic libraries loaded through the
	// Native Module Loader's C-style symbol table.
	KindNative
)

func (k Kind) String() string {
	if k == KindNative {
		return "native"
	}
	return "script"
}

// nativeExtension is the platform's dynamic-library suffix.
func nativeExtension() string {
	switch runtime.GOOS {
	case "darwin":
		return ".dylib"
	case "windows":
		return ".dll"
	default:
		return ".so"
	}
}

// classify determines a manifest's Kind from its entry point's extension.
func classify(entryPoint string) Kind {
	if filepath.Ext(entryPoint) == nativeExtension() {
		return KindNative
	}
	return KindScript
}

// Token is an opaque identity issued to a Plugin Instance by the
// Capability Bridge. Instances store only this token, never a reference
// back to the bridge or the manager — see design note on cyclic
// references: the bridge is borrowed by the instance, not owned.
type Token uint64

// Instance is the runtime record for one loaded plugin. The Plugin
// Manager exclusively owns every Instance.
type Instance struct {
	Manifest   *Manifest
	OriginPath string
	Kind       Kind
	State      State
	Err        error

	// Handle is the Script Host program or native module reference,
	// depending on Kind. It is opaque to pluginhost; the manager's
	// configured runtimes are the only code that type-asserts it.
	Handle interface{}

	// Token is this instance's Capability Bridge identity.
	Token Token

	// themes is the set of theme names this instance has registered,
	// tracked so Unload can auto-unregister them.
	themes []string
}

// newInstance builds a discovered-state instance from a manifest.
func newInstance(m *Manifest, token Token) *Instance {
	return &Instance{
		Manifest:   m,
		OriginPath: m.Path(),
		Kind:       classify(m.EntryPoint),
		State:      StateDiscovered,
		Token:      token,
	}
}

// CanDispatch reports whether the instance may receive event dispatch.
func (i *Instance) CanDispatch() bool {
	return i.State.IsUsable()
}
