package native

import "errors"

// Load/unload failure modes, mapping onto the NotFound/InvalidInput
// editor-wide error kinds.
var (
	// ErrMissingSymbol is returned when a required symbol (plugin_info or
	// plugin_init) is absent from the dynamic library.
	ErrMissingSymbol = errors.New("native: missing required symbol")

	// ErrBadSymbolSignature is returned when a resolved symbol does not
	// have the expected function signature.
	ErrBadSymbolSignature = errors.New("native: symbol has unexpected signature")

	// ErrAPIVersionMismatch is returned when plugin_info reports an
	// api_version other than CurrentAPIVersion.
	ErrAPIVersionMismatch = errors.New("native: api version mismatch")

	// ErrInitFailed is returned when plugin_init returns false.
	ErrInitFailed = errors.New("native: plugin_init reported failure")
)
