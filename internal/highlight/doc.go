// Package highlight implements the incremental syntax-highlight cache: an
// ordered list of Spans keyed by (document version, language), computed by
// a tree-sitter-backed parser when a grammar is registered and by a
// handwritten fallback scanner otherwise.
//
// Highlight never looks at the editor's Document directly; callers pass a
// *buffer.Snapshot (an immutable view, never mutated concurrently with a
// highlight pass) so the cache's determinism guarantee — two calls for the
// same (snapshot, language) pair return identical spans — holds regardless
// of what the rest of the editor does meanwhile.
//
// The incremental-reuse rule (spans before the edit kept, spans after it
// shifted, only the dirty window recomputed) is provided by
// ReuseAcrossEdit as a standalone helper. Cache itself keeps only the
// latest result: Invalidate drops it, and a cache miss parses the whole
// snapshot afresh (no prior tree is passed to tree-sitter).
package highlight
