// Package integrity implements the content-hash lockfile that guards
// installed plugin directories against tampering or partial installs.
//
// A lockfile entry pins one plugin's identity, version, and content
// hash. Verification recomputes a plugin directory's hash and compares
// it against the pinned value; a pack bundle is a curated list of
// plugins installed together in lexicographic order.
//
// Filesystem access goes through afero.Fs so the whole component is
// testable against an in-memory tree. The advisory lock guarding the
// lockfile path is real OS file locking (flock) and operates on the
// actual filesystem regardless of which afero.Fs the rest of the
// package was given.
package integrity
