// Package buffer implements the editor's byte-addressed document type: a
// thread-safe wrapper around a rope.Rope that adds line-ending
// normalization, UTF-16 coordinate conversion for language-server
// clients, monotonic version tracking, and a bounds-checked edit API
// that reports out-of-range requests instead of silently clamping them.
//
// A Buffer never panics on a malformed offset or range; Insert, Delete,
// Replace, and ApplyEdit each fail with a sentinel error (see the
// Err... values) when asked to touch bytes past the document's current
// length. Successful edits bump the buffer's Version by exactly one;
// failed ones leave both the content and the version untouched.
//
// Minimal usage:
//
//	buf := buffer.NewBufferFromString("Hello, World!")
//	if _, err := buf.Insert(7, "Beautiful "); err != nil {
//	    // out-of-range offset
//	}
//	buf.Delete(0, 7)
//
//	snap := buf.Snapshot() // cheap: shares the underlying rope
//	go func() { _ = snap.Text() }()
//
// Three coordinate systems coexist in this package:
//
//   - ByteOffset, a raw byte position
//   - Point, a 0-indexed line/byte-column pair
//   - PointUTF16, a line/UTF-16-code-unit-column pair, for LSP wire
//     compatibility
//
// Reads take Buffer's RWMutex for reading; edits take it for writing.
// Call Snapshot to get a consistent view across several reads without
// risking an interleaved write.
package buffer
