package rope

import (
	"errors"
	"io"
	"strings"
)

// ErrOutOfRange is returned by the Checked* operations when a caller
// supplies an offset or range that falls outside the rope's current
// content: start > end, or end past Len(). Rope itself never panics on
// bad input; callers that need that guarantee at the byte-document
// layer should go through the Checked* wrappers rather than the plain
// methods, which silently clamp.
var ErrOutOfRange = errors.New("rope: offset or range out of bounds")

// Rope is a persistent, immutable text buffer built over a B+ tree of
// byte chunks. Every mutating method returns a new Rope that shares
// untouched structure with its receiver; the receiver itself is never
// altered, which is what makes snapshotting and concurrent reads free.
type Rope struct {
	root *Node
}

// New returns an empty rope.
func New() Rope {
	return Rope{root: newLeafNode()}
}

// FromString builds a rope holding the bytes of s.
func FromString(s string) Rope {
	if len(s) == 0 {
		return New()
	}
	return buildFromChunks(splitIntoChunks(s))
}

// FromReader drains r and returns a rope over everything read.
func FromReader(r io.Reader) (Rope, error) {
	var b Builder
	buf := make([]byte, 64*1024)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			b.WriteString(string(buf[:n]))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return Rope{}, err
		}
	}
	return b.Build(), nil
}

// buildFromChunks assembles a balanced tree bottom-up from already-cut
// chunks: first a row of leaves (MaxChunksPerLeaf chunks each), then
// successive rows of internal nodes (MaxChildren children each) until a
// single root remains.
func buildFromChunks(chunks []Chunk) Rope {
	if len(chunks) == 0 {
		return New()
	}

	var leaves []*Node
	for i := 0; i < len(chunks); i += MaxChunksPerLeaf {
		end := i + MaxChunksPerLeaf
		if end > len(chunks) {
			end = len(chunks)
		}
		leafChunks := make([]Chunk, end-i)
		copy(leafChunks, chunks[i:end])
		leaves = append(leaves, newLeafNodeWithChunks(leafChunks))
	}

	nodes := leaves
	for len(nodes) > 1 {
		var parents []*Node
		for i := 0; i < len(nodes); i += MaxChildren {
			end := i + MaxChildren
			if end > len(nodes) {
				end = len(nodes)
			}
			children := make([]*Node, end-i)
			copy(children, nodes[i:end])
			parents = append(parents, newInternalNode(children))
		}
		nodes = parents
	}

	if len(nodes) == 0 {
		return New()
	}
	return Rope{root: nodes[0]}
}

// Len reports the total byte length of the rope's content.
func (r Rope) Len() ByteOffset {
	if r.root == nil {
		return 0
	}
	return r.root.Len()
}

// LineCount reports the number of lines: one more than the number of
// newline bytes present, so an empty rope still counts as one line.
func (r Rope) LineCount() uint32 {
	if r.root == nil {
		return 1
	}
	return r.root.LineCount()
}

// IsEmpty reports whether the rope holds zero bytes.
func (r Rope) IsEmpty() bool {
	return r.Len() == 0
}

// String materializes the entire rope as one string. Expensive for
// large documents; prefer Slice or an iterator for partial reads.
func (r Rope) String() string {
	if r.root == nil {
		return ""
	}
	var sb strings.Builder
	sb.Grow(int(r.Len()))
	r.root.appendTo(&sb)
	return sb.String()
}

// Slice returns the text of [start, end), clamped silently to the
// rope's bounds. See CheckedSlice for a variant that reports
// out-of-range requests instead of clamping.
func (r Rope) Slice(start, end ByteOffset) string {
	if r.root == nil || start >= end {
		return ""
	}
	return r.root.textInRange(start, end)
}

// CheckedSlice is Slice with the spec.md §4.1 contract: it fails with
// ErrOutOfRange when start > end or end > Len(), rather than clamping.
func (r Rope) CheckedSlice(start, end ByteOffset) (string, error) {
	if err := r.checkRange(start, end); err != nil {
		return "", err
	}
	return r.Slice(start, end), nil
}

// checkRange validates a [start, end) request against the rope's
// current length, the shared bounds check behind every Checked*
// operation.
func (r Rope) checkRange(start, end ByteOffset) error {
	if start < 0 || start > end || end > r.Len() {
		return ErrOutOfRange
	}
	return nil
}

// ByteAt returns the byte at offset, and false if offset is out of
// range.
func (r Rope) ByteAt(offset ByteOffset) (byte, bool) {
	if r.root == nil || offset >= r.Len() || offset < 0 {
		return 0, false
	}

	node := r.root
	for !node.IsLeaf() {
		idx, rel := node.findChildByOffset(offset)
		node = node.children[idx]
		offset = rel
	}

	for _, chunk := range node.chunks {
		chunkLen := ByteOffset(chunk.Len())
		if offset < chunkLen {
			return chunk.String()[offset], true
		}
		offset -= chunkLen
	}
	return 0, false
}

// Insert returns a copy of the rope with text spliced in at offset.
// An offset beyond the end appends; this method never fails. See
// CheckedInsert for the bounds-checked variant.
func (r Rope) Insert(offset ByteOffset, text string) Rope {
	switch {
	case len(text) == 0:
		return r
	case r.root == nil || r.Len() == 0:
		return FromString(text)
	case offset <= 0:
		return FromString(text).Concat(r)
	case offset >= r.Len():
		return r.Concat(FromString(text))
	}

	left, right := r.Split(offset)
	return left.Concat(FromString(text)).Concat(right)
}

// CheckedInsert is Insert with the spec.md §4.1 contract: it fails with
// ErrOutOfRange when offset > Len(), leaving the receiver's content
// conceptually unchanged (Rope is immutable, so "unchanged" is
// automatic — the caller simply discards the zero Rope result).
func (r Rope) CheckedInsert(offset ByteOffset, text string) (Rope, error) {
	if offset < 0 || offset > r.Len() {
		return Rope{}, ErrOutOfRange
	}
	return r.Insert(offset, text), nil
}

// Delete returns a copy of the rope with [start, end) removed, clamped
// silently to the rope's bounds. See CheckedDelete for the
// bounds-checked variant.
func (r Rope) Delete(start, end ByteOffset) Rope {
	if r.root == nil || start >= end {
		return r
	}

	ropeLen := r.Len()
	if start >= ropeLen {
		return r
	}
	if end > ropeLen {
		end = ropeLen
	}

	switch {
	case start == 0 && end >= ropeLen:
		return New()
	case start == 0:
		_, right := r.Split(end)
		return right
	case end >= ropeLen:
		left, _ := r.Split(start)
		return left
	}

	left, rest := r.Split(start)
	_, right := rest.Split(end - start)
	return left.Concat(right)
}

// CheckedDelete is Delete with the spec.md §4.1 contract: it fails with
// ErrOutOfRange when start > end or end > Len().
func (r Rope) CheckedDelete(start, end ByteOffset) (Rope, error) {
	if err := r.checkRange(start, end); err != nil {
		return Rope{}, err
	}
	return r.Delete(start, end), nil
}

// Replace returns a copy of the rope with [start, end) replaced by
// text, clamped silently to the rope's bounds.
func (r Rope) Replace(start, end ByteOffset, text string) Rope {
	switch {
	case start >= end && len(text) == 0:
		return r
	case start >= end:
		return r.Insert(start, text)
	case len(text) == 0:
		return r.Delete(start, end)
	}
	return r.Delete(start, end).Insert(start, text)
}

// CheckedReplace is Replace with the spec.md §4.1 contract: it fails
// with ErrOutOfRange when start > end or end > Len().
func (r Rope) CheckedReplace(start, end ByteOffset, text string) (Rope, error) {
	if err := r.checkRange(start, end); err != nil {
		return Rope{}, err
	}
	return r.Replace(start, end, text), nil
}

// Split divides the rope at offset into (content before, content from
// offset on), clamped silently to the rope's bounds.
func (r Rope) Split(offset ByteOffset) (Rope, Rope) {
	switch {
	case r.root == nil || offset <= 0:
		return New(), r
	case offset >= r.Len():
		return r, New()
	}

	left, right := r.root.split(offset)
	return Rope{root: left}, Rope{root: right}
}

// Concat returns a rope holding r's content followed by other's.
func (r Rope) Concat(other Rope) Rope {
	switch {
	case r.root == nil || r.Len() == 0:
		return other
	case other.root == nil || other.Len() == 0:
		return r
	}
	return Rope{root: concat(r.root, other.root)}
}

// Summary returns the rope's aggregated TextSummary.
func (r Rope) Summary() TextSummary {
	if r.root == nil {
		return TextSummary{Flags: FlagASCII}
	}
	return r.root.summary
}

// LineStartOffset returns the byte offset at which the given 0-indexed
// line begins.
func (r Rope) LineStartOffset(line uint32) ByteOffset {
	if r.root == nil || line == 0 {
		return 0
	}
	if line >= r.LineCount() {
		return r.Len()
	}

	c := NewCursor(r)
	if c.SeekLine(line) {
		return c.Offset()
	}
	return r.Len()
}

// LineEndOffset returns the byte offset one past the given line's last
// character, excluding its terminating newline.
func (r Rope) LineEndOffset(line uint32) ByteOffset {
	if r.root == nil {
		return 0
	}

	lines := r.LineCount()
	if line >= lines {
		return r.Len()
	}
	if line == lines-1 {
		return r.Len()
	}

	next := r.LineStartOffset(line + 1)
	if next > 0 {
		return next - 1
	}
	return 0
}

// LineText returns the given line's content, excluding its newline.
func (r Rope) LineText(line uint32) string {
	return r.Slice(r.LineStartOffset(line), r.LineEndOffset(line))
}

// OffsetToPoint converts a byte offset to a line/column Point.
func (r Rope) OffsetToPoint(offset ByteOffset) Point {
	if r.root == nil || offset == 0 {
		return Point{Line: 0, Column: 0}
	}
	if offset >= r.Len() {
		last := r.LineCount() - 1
		return Point{Line: last, Column: uint32(r.Len() - r.LineStartOffset(last))}
	}

	c := NewCursor(r)
	c.SeekOffset(offset)
	return c.Point()
}

// PointToOffset converts a line/column Point to a byte offset, clamping
// a too-large column to the line's end.
func (r Rope) PointToOffset(point Point) ByteOffset {
	if r.root == nil {
		return 0
	}

	start := r.LineStartOffset(point.Line)
	end := r.LineEndOffset(point.Line)
	if ByteOffset(point.Column) >= end-start {
		return end
	}
	return start + ByteOffset(point.Column)
}

// Height returns the tree's height, root inclusive; a single leaf has
// height 1. Mainly useful in tests asserting the tree stays balanced.
func (r Rope) Height() int {
	if r.root == nil {
		return 0
	}
	return int(r.root.height) + 1
}

// ChunkCount returns the total number of leaf chunks across the tree.
func (r Rope) ChunkCount() int {
	if r.root == nil {
		return 0
	}
	return countChunks(r.root)
}

func countChunks(n *Node) int {
	if n.IsLeaf() {
		return len(n.chunks)
	}
	total := 0
	for _, child := range n.children {
		total += countChunks(child)
	}
	return total
}

// Equals reports whether r and other hold identical text, comparing
// content chunk-by-chunk rather than tree shape.
func (r Rope) Equals(other Rope) bool {
	if r.Len() != other.Len() {
		return false
	}

	a, b := r.Chunks(), other.Chunks()
	for a.Next() {
		if !b.Next() || a.Chunk().String() != b.Chunk().String() {
			return false
		}
	}
	return !b.Next()
}
