// Package native implements the Native Module Loader: dynamic-library
// plugins resolved through Go's standard library plugin package and bound
// to the fixed C-style symbol table of spec.md §4.5
// (plugin_info/plugin_init/plugin_setup/plugin_teardown).
//
// Go's plugin package (.so files opened via plugin.Open/Lookup) is the
// only mechanism in the Go ecosystem for loading native code into a
// running process through a versioned symbol table; no repository in the
// reference corpus reaches for a third-party dlopen/FFI layer for this, so
// this is the one component of the module that is justified in using the
// standard library over a third-party dependency (see DESIGN.md).
//
// The library handle returned by plugin.Open must outlive every symbol
// resolved from it — Module keeps the *plugin.Plugin alongside the
// resolved function values for exactly that reason.
package native
