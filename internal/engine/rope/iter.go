package rope

import "unicode/utf8"

// chunkFrame tracks a traversal position during chunk iteration: which
// child (internal node) or chunk (leaf) to visit next, and the
// absolute byte offset at which this node begins.
type chunkFrame struct {
	node     *Node
	childIdx int
	chunkIdx int
	offset   ByteOffset
}

// ChunkIterator walks a Rope's chunks in order without materializing
// the whole document, via an explicit stack rather than recursion.
type ChunkIterator struct {
	rope       Rope
	stack      []chunkFrame
	started    bool
	chunk      Chunk
	chunkStart ByteOffset
}

// Chunks returns an iterator over every chunk in r, left to right.
func (r Rope) Chunks() *ChunkIterator {
	return &ChunkIterator{rope: r, stack: make([]chunkFrame, 0, 16)}
}

// Next advances to the next chunk, returning false once exhausted.
func (it *ChunkIterator) Next() bool {
	if !it.started {
		it.started = true
		if it.rope.root == nil {
			return false
		}
		it.stack = append(it.stack, chunkFrame{node: it.rope.root})
		return it.descend()
	}

	if len(it.stack) > 0 {
		top := &it.stack[len(it.stack)-1]
		if top.node.IsLeaf() {
			top.chunkIdx++
		}
	}
	return it.descend()
}

// descend walks the stack until it lands on the next unvisited chunk,
// popping exhausted frames and advancing their parent's child cursor
// as it goes.
func (it *ChunkIterator) descend() bool {
	for len(it.stack) > 0 {
		top := &it.stack[len(it.stack)-1]
		node := top.node

		if node.IsLeaf() {
			if top.chunkIdx < len(node.chunks) {
				pos := top.offset
				for i := 0; i < top.chunkIdx; i++ {
					pos += ByteOffset(node.chunks[i].Len())
				}
				it.chunk = node.chunks[top.chunkIdx]
				it.chunkStart = pos
				return true
			}
			it.pop()
			continue
		}

		if top.childIdx < len(node.children) {
			pos := top.offset
			for i := 0; i < top.childIdx; i++ {
				pos += node.childSummaries[i].Bytes
			}
			child := node.children[top.childIdx]
			it.stack = append(it.stack, chunkFrame{node: child, offset: pos})
			continue
		}

		it.pop()
	}
	return false
}

// pop discards the top stack frame and nudges its new top's child
// cursor forward, since that child has just been fully visited.
func (it *ChunkIterator) pop() {
	it.stack = it.stack[:len(it.stack)-1]
	if len(it.stack) > 0 {
		it.stack[len(it.stack)-1].childIdx++
	}
}

// Chunk returns the chunk at the iterator's current position.
func (it *ChunkIterator) Chunk() Chunk {
	return it.chunk
}

// Offset returns the byte offset where the current chunk begins.
func (it *ChunkIterator) Offset() ByteOffset {
	return it.chunkStart
}

// LineIterator walks a Rope line by line through Rope's own
// LineStartOffset/LineEndOffset, which seek each line afresh using the
// tree's cached line counts rather than a byte-by-byte scan.
type LineIterator struct {
	rope      Rope
	lineNum   uint32
	lineStart ByteOffset
	lineEnd   ByteOffset
	text      string
	started   bool
	done      bool
}

// Lines returns an iterator over every line in r.
func (r Rope) Lines() *LineIterator {
	return &LineIterator{rope: r}
}

// Next advances to the next line, returning false once exhausted. An
// empty rope yields exactly one empty line.
func (it *LineIterator) Next() bool {
	if it.done {
		return false
	}

	if !it.started {
		it.started = true
		if it.rope.IsEmpty() {
			it.text, it.lineStart, it.lineEnd = "", 0, 0
			it.done = true
			return true
		}
	} else {
		it.lineNum++
		if it.lineNum >= it.rope.LineCount() {
			it.done = true
			return false
		}
	}

	it.lineStart = it.rope.LineStartOffset(it.lineNum)
	it.lineEnd = it.rope.LineEndOffset(it.lineNum)
	it.text = it.rope.Slice(it.lineStart, it.lineEnd)
	return true
}

// Text returns the current line's text, excluding its terminator.
func (it *LineIterator) Text() string {
	return it.text
}

// Line returns the current 0-indexed line number.
func (it *LineIterator) Line() uint32 {
	return it.lineNum
}

// StartOffset returns the byte offset where the current line begins.
func (it *LineIterator) StartOffset() ByteOffset {
	return it.lineStart
}

// EndOffset returns the byte offset where the current line ends
// (before its terminator, if any).
func (it *LineIterator) EndOffset() ByteOffset {
	return it.lineEnd
}

// RuneIterator walks a Rope rune by rune, built atop a Cursor so its
// per-rune cost is the same amortized O(1) as Cursor.Next.
type RuneIterator struct {
	cursor  *Cursor
	current rune
	size    int
	offset  ByteOffset
	started bool
}

// Runes returns an iterator over every rune in r.
func (r Rope) Runes() *RuneIterator {
	return &RuneIterator{cursor: NewCursor(r)}
}

// Next advances to the next rune, returning false once exhausted.
func (it *RuneIterator) Next() bool {
	if !it.started {
		it.started = true
		if it.cursor.AtEnd() {
			return false
		}
		it.offset = it.cursor.Offset()
		it.current, it.size = it.cursor.Rune()
		return it.size > 0
	}

	if !it.cursor.Next() || it.cursor.AtEnd() {
		return false
	}

	it.offset = it.cursor.Offset()
	it.current, it.size = it.cursor.Rune()
	return it.size > 0
}

// Rune returns the rune at the iterator's current position.
func (it *RuneIterator) Rune() rune {
	return it.current
}

// Size returns the byte length of the current rune.
func (it *RuneIterator) Size() int {
	return it.size
}

// Offset returns the byte offset of the current rune.
func (it *RuneIterator) Offset() ByteOffset {
	return it.offset
}

// ByteIterator walks a Rope byte by byte, layered over a ChunkIterator
// so it never revisits a byte already scanned by the chunk layer.
type ByteIterator struct {
	chunks    *ChunkIterator
	chunkData string
	idx       int
	offset    ByteOffset
	started   bool
}

// Bytes returns an iterator over every byte in r.
func (r Rope) Bytes() *ByteIterator {
	return &ByteIterator{chunks: r.Chunks()}
}

// Next advances to the next byte, returning false once exhausted.
func (it *ByteIterator) Next() bool {
	if !it.started {
		it.started = true
		return it.loadChunk()
	}

	it.idx++
	it.offset++
	if it.idx >= len(it.chunkData) {
		return it.loadChunk()
	}
	return true
}

// loadChunk advances the underlying chunk iterator and resets the
// byte cursor to its start.
func (it *ByteIterator) loadChunk() bool {
	if !it.chunks.Next() {
		return false
	}
	it.chunkData = it.chunks.Chunk().String()
	it.idx = 0
	it.offset = it.chunks.Offset()
	return len(it.chunkData) > 0
}

// Byte returns the byte at the iterator's current position.
func (it *ByteIterator) Byte() byte {
	if it.idx < len(it.chunkData) {
		return it.chunkData[it.idx]
	}
	return 0
}

// Offset returns the byte offset of the current byte.
func (it *ByteIterator) Offset() ByteOffset {
	return it.offset
}

// reverseFrame tracks a traversal position during reverse iteration:
// the node, and the child/chunk index most recently visited within it.
type reverseFrame struct {
	node     *Node
	childIdx int
	chunkIdx int
}

// ReverseRuneIterator walks a Rope's runes back to front. It keeps its
// own stack (rather than reusing Cursor) since the traversal direction
// is the mirror image of forward iteration: it descends to the
// rightmost leaf first and backs leftward one subtree at a time.
type ReverseRuneIterator struct {
	rope    Rope
	offset  ByteOffset
	current rune
	size    int
	started bool

	chunkData  string
	chunkStart ByteOffset
	chunkIdx   int
	stack      []reverseFrame
}

// ReverseRunes returns an iterator over every rune in r, back to front.
func (r Rope) ReverseRunes() *ReverseRuneIterator {
	return &ReverseRuneIterator{rope: r, offset: r.Len()}
}

// Next moves to the previous rune, returning false once exhausted.
func (it *ReverseRuneIterator) Next() bool {
	if !it.started {
		it.started = true
		if it.rope.IsEmpty() || !it.seekLastChunk() {
			return false
		}
		it.chunkIdx = len(it.chunkData)
	}

	if it.chunkIdx > 0 {
		return it.prevRuneInChunk()
	}
	if !it.seekPrevChunk() {
		return false
	}
	it.chunkIdx = len(it.chunkData)
	return it.prevRuneInChunk()
}

// prevRuneInChunk steps backward within the current chunk to the start
// of the preceding rune and decodes it.
func (it *ReverseRuneIterator) prevRuneInChunk() bool {
	if it.chunkIdx <= 0 {
		return false
	}

	it.chunkIdx--
	for it.chunkIdx > 0 && !isUTF8LeadByte(it.chunkData[it.chunkIdx]) {
		it.chunkIdx--
	}

	it.current, it.size = utf8.DecodeRuneInString(it.chunkData[it.chunkIdx:])
	it.offset = it.chunkStart + ByteOffset(it.chunkIdx)
	return it.size > 0
}

// seekLastChunk descends to the rope's rightmost leaf and loads its
// final chunk, building the stack needed to later walk back out of it.
func (it *ReverseRuneIterator) seekLastChunk() bool {
	if it.rope.root == nil {
		return false
	}

	it.stack = make([]reverseFrame, 0, 16)
	node := it.rope.root
	pos := ByteOffset(0)

	for !node.IsLeaf() {
		last := len(node.children) - 1
		for i := 0; i < last; i++ {
			pos += node.childSummaries[i].Bytes
		}
		it.stack = append(it.stack, reverseFrame{node: node, childIdx: last})
		node = node.children[last]
	}

	if len(node.chunks) == 0 {
		return false
	}

	last := len(node.chunks) - 1
	for i := 0; i < last; i++ {
		pos += ByteOffset(node.chunks[i].Len())
	}

	it.stack = append(it.stack, reverseFrame{node: node, chunkIdx: last})
	it.chunkData = node.chunks[last].String()
	it.chunkStart = pos
	return true
}

// seekPrevChunk moves the stack back to the chunk preceding the one
// currently loaded, whether that's a sibling in the same leaf or
// requires climbing to an ancestor and descending a different subtree.
func (it *ReverseRuneIterator) seekPrevChunk() bool {
	if len(it.stack) == 0 {
		return false
	}

	top := &it.stack[len(it.stack)-1]
	if top.node.IsLeaf() {
		if top.chunkIdx > 0 {
			top.chunkIdx--
			pos := it.ancestorOffset(len(it.stack) - 1)
			for i := 0; i < top.chunkIdx; i++ {
				pos += ByteOffset(top.node.chunks[i].Len())
			}
			it.chunkData = top.node.chunks[top.chunkIdx].String()
			it.chunkStart = pos
			return true
		}
		it.stack = it.stack[:len(it.stack)-1]
	}

	for len(it.stack) > 0 {
		top := &it.stack[len(it.stack)-1]
		if top.childIdx > 0 {
			top.childIdx--
			return it.descendToLastLeaf(len(it.stack) - 1)
		}
		it.stack = it.stack[:len(it.stack)-1]
	}
	return false
}

// descendToLastLeaf, given a stack index whose childIdx now points at
// an unvisited sibling, descends that sibling to its rightmost leaf
// and loads its final chunk.
func (it *ReverseRuneIterator) descendToLastLeaf(stackIdx int) bool {
	frame := it.stack[stackIdx]
	node := frame.node.children[frame.childIdx]
	pos := it.ancestorOffset(stackIdx)
	for i := 0; i < frame.childIdx; i++ {
		pos += frame.node.childSummaries[i].Bytes
	}

	for !node.IsLeaf() {
		last := len(node.children) - 1
		for i := 0; i < last; i++ {
			pos += node.childSummaries[i].Bytes
		}
		it.stack = append(it.stack, reverseFrame{node: node, childIdx: last})
		node = node.children[last]
	}

	if len(node.chunks) == 0 {
		return false
	}

	last := len(node.chunks) - 1
	for i := 0; i < last; i++ {
		pos += ByteOffset(node.chunks[i].Len())
	}

	it.stack = append(it.stack, reverseFrame{node: node, chunkIdx: last})
	it.chunkData = node.chunks[last].String()
	it.chunkStart = pos
	return true
}

// ancestorOffset sums the byte offsets contributed by every already-
// visited sibling above stackIdx, giving the absolute start offset of
// the node at that stack depth.
func (it *ReverseRuneIterator) ancestorOffset(stackIdx int) ByteOffset {
	var pos ByteOffset
	for i := 0; i < stackIdx; i++ {
		frame := it.stack[i]
		if !frame.node.IsLeaf() {
			for j := 0; j < frame.childIdx; j++ {
				pos += frame.node.childSummaries[j].Bytes
			}
		}
	}
	return pos
}

// Rune returns the rune at the iterator's current position.
func (it *ReverseRuneIterator) Rune() rune {
	return it.current
}

// Size returns the byte length of the current rune.
func (it *ReverseRuneIterator) Size() int {
	return it.size
}

// Offset returns the byte offset of the current rune.
func (it *ReverseRuneIterator) Offset() ByteOffset {
	return it.offset
}
