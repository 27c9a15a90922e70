// Package rope implements the editor's byte-document storage layer: an
// immutable, structurally-shared B+ tree of UTF-8 chunks with cached
// per-subtree metrics (byte count, line count, ASCII/tab flags) so
// length, line count, and offset/point conversion are O(1) or O(log n)
// rather than requiring a full scan.
//
// # Why immutable
//
// Every mutating method — Insert, Delete, Replace, Split, Concat —
// returns a new Rope value and leaves the receiver untouched. Only the
// nodes on the path from root to the edit point are copied; everything
// else is shared between old and new trees. That makes a Rope value
// cheap to snapshot and safe to read from multiple goroutines at once,
// at the cost of requiring external synchronization around writes (see
// the buffer package, which wraps a Rope in a mutex and layers version
// tracking on top).
//
//	r := rope.FromString("hello")
//	r2 := r.Insert(5, " world")
//	r.String()  // "hello" — untouched
//	r2.String() // "hello world"
//
// # Bounds checking
//
// The plain Insert/Delete/Replace/Slice methods clamp an out-of-range
// offset or range rather than failing, which suits callers building up
// ropes from trusted, already-validated input. Where the byte-document
// contract needs a hard failure instead — see buffer.Buffer, which is
// built on this guarantee — use the Checked* counterparts
// (CheckedInsert, CheckedDelete, CheckedReplace, CheckedSlice), which
// return ErrOutOfRange instead of clamping.
//
// # Line and position lookups
//
//	r := rope.FromString("line 1\nline 2\nline 3")
//	r.LineCount()          // 3
//	r.LineText(1)          // "line 2"
//	r.OffsetToPoint(7)     // Point{Line: 1, Column: 0}
//	r.PointToOffset(rope.Point{Line: 1, Column: 0}) // 7
//
// # Cursors, iterators, and the builder
//
// Cursor supports seeking by offset or line and then walking forward
// rune by rune without repeatedly descending from the root. Chunks,
// Lines, and Runes (in iter.go) give three different granularities of
// forward traversal. Builder accumulates many small writes into one
// rope more cheaply than repeated Insert calls:
//
//	var b rope.Builder
//	b.WriteString("hello ")
//	b.WriteString("world")
//	r := b.Build()
//
// # Complexity
//
// For a rope of n bytes and l lines: FromString, String are O(n);
// Insert, Delete, Replace, Slice are O(log n) plus O(k) for a slice of
// length k; OffsetToPoint is O(log n); PointToOffset is O(log l); Len
// and LineCount are O(1).
//
// # Allocation
//
// pool.go provides sync.Pool-backed pools for leaf/internal nodes, chunk
// and node slices, and a pooled string-builder type. The rope's own
// operations do not draw from them; none of it is required to use the
// package correctly.
package rope
