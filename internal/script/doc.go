// Package script implements the sandboxed scripting language embedded by
// native and manifest-declared plugins.
//
// A script is a sequence of top-level function declarations:
//
//	fn setup() {
//	    // comments are ignored
//	    buffer.insert("hello\n");
//	    cursor.move_to("0:0")
//	}
//
// A declaration body holds only call statements (CALLEE(ARG);) and
// comments; there is no branching, no looping, and no recursion, so every
// compiled Program terminates by construction. setup() is required, takes
// no parameters, and is the only entry point the host ever invokes
// directly.
//
// Compile performs a full syntax and callee-resolution pass before any
// action runs, so InvalidScript and UnsupportedStatement are reported
// before side effects occur. Run then executes the resolved actions under
// a SandboxConfig that bounds wall time, memory, file operations, and
// network requests, and gates filesystem/network/syscall access through
// capability flags and glob patterns.
package script
