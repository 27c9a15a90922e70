package rope

import "unicode/utf8"

// Cursor walks a Rope while remembering the path from root to its
// current leaf, so a local Next step is O(1) amortized rather than
// starting over from the root. SeekOffset/SeekLine, and Prev (which
// re-seeks), descend from the root in O(log n).
type Cursor struct {
	rope Rope
	path []cursorFrame

	offset   ByteOffset
	point    Point
	pointSet bool

	leafNode *Node
	chunkIdx int
	chunkOff int
}

// cursorFrame records one internal node the cursor descended through:
// which child it took, and that child's absolute byte offset and line
// number, so backtracking up the path doesn't need to re-derive them.
type cursorFrame struct {
	node     *Node
	childIdx int
	offset   ByteOffset
	line     uint32
}

// NewCursor returns a Cursor positioned at the start of r.
func NewCursor(r Rope) *Cursor {
	c := &Cursor{rope: r, path: make([]cursorFrame, 0, 16)}
	c.seekToStart()
	return c
}

// Offset reports the cursor's current byte offset.
func (c *Cursor) Offset() ByteOffset {
	return c.offset
}

// Point reports the cursor's current line/column, computing it from
// the path and current leaf on first access and caching the result
// until the next move invalidates it.
func (c *Cursor) Point() Point {
	if !c.pointSet {
		c.computePoint()
	}
	return c.point
}

// AtStart reports whether the cursor sits at offset 0.
func (c *Cursor) AtStart() bool {
	return c.offset == 0
}

// AtEnd reports whether the cursor has reached the rope's end.
func (c *Cursor) AtEnd() bool {
	return c.offset >= c.rope.Len()
}

// Rune returns the rune starting at the cursor's position, and its
// byte length; (0, 0) at the end of the rope.
func (c *Cursor) Rune() (rune, int) {
	chunk, ok := c.currentChunk()
	if !ok {
		return 0, 0
	}
	return utf8.DecodeRuneInString(chunk.String()[c.chunkOff:])
}

// Byte returns the byte at the cursor's position, and true; (0, false)
// at the end of the rope.
func (c *Cursor) Byte() (byte, bool) {
	chunk, ok := c.currentChunk()
	if !ok {
		return 0, false
	}
	return chunk.String()[c.chunkOff], true
}

// currentChunk returns the chunk the cursor's offset falls within,
// shared by Rune and Byte.
func (c *Cursor) currentChunk() (Chunk, bool) {
	if c.leafNode == nil || c.chunkIdx >= len(c.leafNode.chunks) {
		return Chunk{}, false
	}
	chunk := c.leafNode.chunks[c.chunkIdx]
	if c.chunkOff >= chunk.Len() {
		return Chunk{}, false
	}
	return chunk, true
}

// Next advances the cursor by one rune, returning false if already at
// the end.
func (c *Cursor) Next() bool {
	if c.AtEnd() {
		return false
	}

	r, size := c.Rune()
	if size == 0 {
		return false
	}

	c.offset += ByteOffset(size)
	c.chunkOff += size

	if c.pointSet {
		if r == '\n' {
			c.point.Line++
			c.point.Column = 0
		} else {
			c.point.Column += uint32(size)
		}
	}

	if c.leafNode != nil && c.chunkIdx < len(c.leafNode.chunks) &&
		c.chunkOff >= c.leafNode.chunks[c.chunkIdx].Len() {
		c.advanceChunk()
	}

	return true
}

// Prev moves the cursor back by one rune, returning false if already
// at the start.
func (c *Cursor) Prev() bool {
	if c.AtStart() {
		return false
	}

	target := c.offset - 1
	for target > 0 {
		b, ok := c.rope.ByteAt(target)
		if !ok || isUTF8LeadByte(b) {
			break
		}
		target--
	}

	c.SeekOffset(target)
	return true
}

// Clone returns an independent copy of the cursor at the same
// position.
func (c *Cursor) Clone() *Cursor {
	clone := &Cursor{
		rope:     c.rope,
		path:     make([]cursorFrame, len(c.path)),
		offset:   c.offset,
		point:    c.point,
		pointSet: c.pointSet,
		leafNode: c.leafNode,
		chunkIdx: c.chunkIdx,
		chunkOff: c.chunkOff,
	}
	copy(clone.path, c.path)
	return clone
}

// seekToStart resets the cursor to the rope's first byte.
func (c *Cursor) seekToStart() {
	c.path = c.path[:0]
	c.offset = 0
	c.point = Point{}
	c.pointSet = true

	if c.rope.root == nil {
		c.leafNode = nil
		return
	}

	node := c.rope.root
	for !node.IsLeaf() {
		c.path = append(c.path, cursorFrame{node: node})
		node = node.children[0]
	}

	c.leafNode = node
	c.chunkIdx = 0
	c.chunkOff = 0
}

// seekToEnd positions the cursor one byte past the rope's last byte.
func (c *Cursor) seekToEnd() bool {
	c.path = c.path[:0]
	c.offset = c.rope.Len()
	c.pointSet = false

	if c.rope.root == nil {
		c.leafNode = nil
		return true
	}

	node := c.rope.root
	pos, line := ByteOffset(0), uint32(0)

	for !node.IsLeaf() {
		last := len(node.children) - 1
		for i := 0; i < last; i++ {
			pos += node.childSummaries[i].Bytes
			line += node.childSummaries[i].Lines
		}
		c.path = append(c.path, cursorFrame{node: node, childIdx: last, offset: pos, line: line})
		node = node.children[last]
	}

	c.leafNode = node
	if len(node.chunks) > 0 {
		c.chunkIdx = len(node.chunks) - 1
		c.chunkOff = node.chunks[c.chunkIdx].Len()
	} else {
		c.chunkIdx, c.chunkOff = 0, 0
	}
	return true
}

// SeekOffset repositions the cursor to offset, returning false if
// offset exceeds the rope's length. offset must land on a UTF-8
// boundary; if it doesn't, the cursor backs up to the nearest one.
func (c *Cursor) SeekOffset(offset ByteOffset) bool {
	if c.rope.root == nil {
		return offset == 0
	}

	ropeLen := c.rope.Len()
	if offset > ropeLen {
		return false
	}

	c.path = c.path[:0]
	c.offset = offset
	c.pointSet = false

	if offset == ropeLen {
		return c.seekToEnd()
	}

	node := c.rope.root
	nodeOffset, nodeLine := ByteOffset(0), uint32(0)

	for !node.IsLeaf() {
		childOffset, childLine := nodeOffset, nodeLine
		found := false
		for i, summary := range node.childSummaries {
			if childOffset+summary.Bytes > offset {
				c.path = append(c.path, cursorFrame{node: node, childIdx: i, offset: childOffset, line: childLine})
				node = node.children[i]
				nodeOffset, nodeLine = childOffset, childLine
				found = true
				break
			}
			childOffset += summary.Bytes
			childLine += summary.Lines
		}
		if !found {
			return false
		}
	}

	c.leafNode = node
	chunkStart := nodeOffset

	for i, chunk := range node.chunks {
		chunkEnd := chunkStart + ByteOffset(chunk.Len())
		if chunkEnd > offset {
			c.chunkIdx = i
			c.chunkOff = int(offset - chunkStart)
			c.backUpToRuneBoundary(chunk)
			return true
		}
		chunkStart = chunkEnd
	}

	c.chunkIdx = len(node.chunks) - 1
	if c.chunkIdx >= 0 {
		c.chunkOff = node.chunks[c.chunkIdx].Len()
	} else {
		c.chunkOff = 0
	}
	return true
}

// backUpToRuneBoundary nudges the cursor's position within chunk back
// to the nearest UTF-8 lead byte, in case SeekOffset landed mid-rune.
func (c *Cursor) backUpToRuneBoundary(chunk Chunk) {
	if c.chunkOff <= 0 {
		return
	}
	text := chunk.String()
	if c.chunkOff >= len(text) || isUTF8LeadByte(text[c.chunkOff]) {
		return
	}
	for c.chunkOff > 0 && !isUTF8LeadByte(text[c.chunkOff]) {
		c.chunkOff--
		c.offset--
	}
}

// SeekLine repositions the cursor to the start of the given 0-indexed
// line, returning false if line is out of range.
func (c *Cursor) SeekLine(line uint32) bool {
	if c.rope.root == nil {
		return line == 0
	}
	if line == 0 {
		c.seekToStart()
		return true
	}
	if line >= c.rope.LineCount() {
		return false
	}

	c.path = c.path[:0]
	c.pointSet = false

	node := c.rope.root
	pos, curLine := ByteOffset(0), uint32(0)

	for !node.IsLeaf() {
		found := false
		for i, summary := range node.childSummaries {
			if curLine+summary.Lines >= line {
				c.path = append(c.path, cursorFrame{node: node, childIdx: i, offset: pos, line: curLine})
				node = node.children[i]
				found = true
				break
			}
			pos += summary.Bytes
			curLine += summary.Lines
		}
		if !found {
			return false
		}
	}

	c.leafNode = node
	remaining := line - curLine

	for i, chunk := range node.chunks {
		summary := chunk.Summary()
		if summary.Lines < remaining {
			remaining -= summary.Lines
			pos += ByteOffset(chunk.Len())
			continue
		}

		c.chunkIdx = i
		nthPos := chunk.Newlines().FindNthNewline(remaining)
		if nthPos < 0 {
			return false
		}
		c.chunkOff = nthPos + 1
		c.offset = pos + ByteOffset(c.chunkOff)
		c.point = Point{Line: line, Column: 0}
		c.pointSet = true
		return true
	}

	return false
}

// LineStartOffset returns the byte offset where the cursor's current
// line begins, preferring each chunk's cached NewlineIndex and only
// falling back to a byte-by-byte rope walk when a line start spans
// several chunks or leaves with no recorded newline.
func (c *Cursor) LineStartOffset() ByteOffset {
	if c.offset == 0 {
		return 0
	}
	if c.leafNode == nil || c.chunkIdx >= len(c.leafNode.chunks) {
		return 0
	}

	chunk := c.leafNode.chunks[c.chunkIdx]
	chunkStart := c.offset - ByteOffset(c.chunkOff)

	if pos := chunk.Newlines().NewlineBefore(c.chunkOff); pos >= 0 {
		return chunkStart + ByteOffset(pos) + 1
	}

	for i := c.chunkIdx - 1; i >= 0; i-- {
		prev := c.leafNode.chunks[i]
		chunkStart -= ByteOffset(prev.Len())
		if pos := prev.Newlines().LastNewlinePosition(); pos >= 0 {
			return chunkStart + ByteOffset(pos) + 1
		}
	}

	for search := chunkStart; search > 0; search-- {
		b, ok := c.rope.ByteAt(search - 1)
		if !ok {
			break
		}
		if b == '\n' {
			return search
		}
	}
	return 0
}

// computePoint derives the cursor's Point from the path plus its
// position within the current leaf.
func (c *Cursor) computePoint() {
	c.point = Point{}

	for _, frame := range c.path {
		for i := 0; i < frame.childIdx; i++ {
			c.point.Line += frame.node.childSummaries[i].Lines
		}
	}

	if c.leafNode != nil {
		for i := 0; i < c.chunkIdx; i++ {
			c.point.Line += c.leafNode.chunks[i].Summary().Lines
		}
		if c.chunkIdx < len(c.leafNode.chunks) {
			text := c.leafNode.chunks[c.chunkIdx].String()[:c.chunkOff]
			for _, ch := range text {
				if ch == '\n' {
					c.point.Line++
				}
			}
		}
	}

	c.point.Column = uint32(c.offset - c.LineStartOffset())
	c.pointSet = true
}

// advanceChunk moves the cursor to the start of the next chunk within
// the current leaf, spilling into advanceLeaf when the leaf is
// exhausted.
func (c *Cursor) advanceChunk() {
	c.chunkIdx++
	c.chunkOff = 0
	if c.chunkIdx >= len(c.leafNode.chunks) {
		c.advanceLeaf()
	}
}

// advanceLeaf walks back up the path to the nearest ancestor with an
// unvisited right sibling, then descends to that sibling's leftmost
// leaf. Clears leafNode when no such ancestor exists (end of rope).
func (c *Cursor) advanceLeaf() {
	for len(c.path) > 0 {
		frame := c.path[len(c.path)-1]
		c.path = c.path[:len(c.path)-1]

		nextIdx := frame.childIdx + 1
		if nextIdx >= len(frame.node.children) {
			continue
		}

		siblingOffset := frame.offset + frame.node.childSummaries[frame.childIdx].Bytes
		siblingLine := frame.line + frame.node.childSummaries[frame.childIdx].Lines
		c.path = append(c.path, cursorFrame{node: frame.node, childIdx: nextIdx, offset: siblingOffset, line: siblingLine})

		node := frame.node.children[nextIdx]
		pos, line := siblingOffset, siblingLine
		for !node.IsLeaf() {
			c.path = append(c.path, cursorFrame{node: node, offset: pos, line: line})
			node = node.children[0]
		}

		c.leafNode = node
		c.chunkIdx, c.chunkOff = 0, 0
		return
	}

	c.leafNode = nil
	c.chunkIdx, c.chunkOff = 0, 0
}
