package rope

import "strings"

// Fan-out bounds for the underlying B+ tree. A leaf's byte footprint is
// governed separately by chunk.go's MaxChunkSize; MaxChunksPerLeaf caps
// how many chunks a leaf may hold before it is pushed up a level.
const (
	// MinChildren is the floor on children per internal node, except
	// for the root, which may have fewer.
	MinChildren = 4

	// MaxChildren is the ceiling on children per internal node; beyond
	// this a node is split across two parents.
	MaxChildren = 8

	// MaxChunksPerLeaf bounds how many Chunks a single leaf node holds.
	MaxChunksPerLeaf = 4
)

// Node is one vertex of the rope's B+ tree. A Node with height 0 is a
// leaf holding Chunks directly; height > 0 is an internal fan-out node
// holding child pointers plus a per-child summary cache so seeking by
// offset or line never has to descend and re-measure a subtree twice.
type Node struct {
	height  uint8
	summary TextSummary

	children       []*Node
	childSummaries []TextSummary

	chunks []Chunk
}

func newLeafNode() *Node {
	return &Node{height: 0, chunks: make([]Chunk, 0, MaxChunksPerLeaf)}
}

func newLeafNodeWithChunks(chunks []Chunk) *Node {
	n := &Node{height: 0, chunks: chunks}
	n.recomputeSummary()
	return n
}

// newInternalNode builds a parent over children, which must all share
// the same height. An empty slice collapses to an empty leaf rather
// than an internal node with nothing to point at.
func newInternalNode(children []*Node) *Node {
	if len(children) == 0 {
		return newLeafNode()
	}

	summaries := make([]TextSummary, len(children))
	var total TextSummary
	for i, child := range children {
		summaries[i] = child.summary
		total = total.Add(child.summary)
	}

	return &Node{
		height:         children[0].height + 1,
		summary:        total,
		children:       children,
		childSummaries: summaries,
	}
}

// IsLeaf reports whether n holds Chunks directly rather than children.
func (n *Node) IsLeaf() bool {
	return n.height == 0
}

// Len returns the byte length spanned by this subtree.
func (n *Node) Len() ByteOffset {
	return n.summary.Bytes
}

// LineCount returns the 1-based line count spanned by this subtree: one
// more than the number of newline bytes it contains.
func (n *Node) LineCount() uint32 {
	return n.summary.Lines + 1
}

// recomputeSummary rebuilds n's cached TextSummary (and, for internal
// nodes, the per-child summary slice) from its current children.
func (n *Node) recomputeSummary() {
	n.summary = TextSummary{Flags: FlagASCII}
	if n.IsLeaf() {
		for _, chunk := range n.chunks {
			n.summary = n.summary.Add(chunk.Summary())
		}
		return
	}

	n.childSummaries = make([]TextSummary, len(n.children))
	for i, child := range n.children {
		n.childSummaries[i] = child.summary
		n.summary = n.summary.Add(child.summary)
	}
}

// clone makes a one-level-deep copy of n: the slices are fresh but the
// leaf elements (Chunks, *Node pointers) are shared, consistent with the
// rope's path-copying, structural-sharing update strategy.
func (n *Node) clone() *Node {
	if n.IsLeaf() {
		chunks := make([]Chunk, len(n.chunks))
		copy(chunks, n.chunks)
		return &Node{height: 0, summary: n.summary, chunks: chunks}
	}

	children := make([]*Node, len(n.children))
	copy(children, n.children)
	summaries := make([]TextSummary, len(n.childSummaries))
	copy(summaries, n.childSummaries)

	return &Node{
		height:         n.height,
		summary:        n.summary,
		children:       children,
		childSummaries: summaries,
	}
}

// appendTo writes every byte of this subtree, in order, to sb.
func (n *Node) appendTo(sb *strings.Builder) {
	if n.IsLeaf() {
		for _, chunk := range n.chunks {
			sb.WriteString(chunk.String())
		}
		return
	}
	for _, child := range n.children {
		child.appendTo(sb)
	}
}

// textInRange materializes the bytes in [start, end), clamped to the
// subtree's length.
func (n *Node) textInRange(start, end ByteOffset) string {
	if start >= end || start >= n.Len() {
		return ""
	}
	if end > n.Len() {
		end = n.Len()
	}

	var sb strings.Builder
	sb.Grow(int(end - start))
	n.appendRange(&sb, start, end)
	return sb.String()
}

// appendRange writes the overlap between [start, end) and this subtree
// to sb, descending only into children that intersect the range.
func (n *Node) appendRange(sb *strings.Builder, start, end ByteOffset) {
	if start >= end {
		return
	}

	if n.IsLeaf() {
		pos := ByteOffset(0)
		for _, chunk := range n.chunks {
			chunkEnd := pos + ByteOffset(chunk.Len())
			if chunkEnd <= start {
				pos = chunkEnd
				continue
			}
			if pos >= end {
				break
			}

			lo := 0
			if start > pos {
				lo = int(start - pos)
			}
			hi := chunk.Len()
			if end < chunkEnd {
				hi = int(end - pos)
			}
			sb.WriteString(chunk.String()[lo:hi])
			pos = chunkEnd
		}
		return
	}

	pos := ByteOffset(0)
	for i, child := range n.children {
		childEnd := pos + n.childSummaries[i].Bytes
		if childEnd <= start {
			pos = childEnd
			continue
		}
		if pos >= end {
			break
		}

		lo := ByteOffset(0)
		if start > pos {
			lo = start - pos
		}
		hi := n.childSummaries[i].Bytes
		if end < childEnd {
			hi = end - pos
		}
		child.appendRange(sb, lo, hi)
		pos = childEnd
	}
}

// split partitions n at offset into (everything before, everything from
// offset on). offset need not land on a chunk boundary.
func (n *Node) split(offset ByteOffset) (*Node, *Node) {
	switch {
	case offset <= 0:
		return newLeafNode(), n.clone()
	case offset >= n.Len():
		return n.clone(), newLeafNode()
	case n.IsLeaf():
		return n.splitLeaf(offset)
	default:
		return n.splitInternal(offset)
	}
}

func (n *Node) splitLeaf(offset ByteOffset) (*Node, *Node) {
	var left, right []Chunk
	pos := ByteOffset(0)

	for _, chunk := range n.chunks {
		chunkLen := ByteOffset(chunk.Len())
		switch {
		case pos+chunkLen <= offset:
			left = append(left, chunk)
		case pos >= offset:
			right = append(right, chunk)
		default:
			lhs, rhs := chunk.Split(int(offset - pos))
			if !lhs.IsEmpty() {
				left = append(left, lhs)
			}
			if !rhs.IsEmpty() {
				right = append(right, rhs)
			}
		}
		pos += chunkLen
	}

	return newLeafNodeWithChunks(left), newLeafNodeWithChunks(right)
}

func (n *Node) splitInternal(offset ByteOffset) (*Node, *Node) {
	var left, right []*Node
	pos := ByteOffset(0)

	for i, child := range n.children {
		childLen := n.childSummaries[i].Bytes
		switch {
		case pos+childLen <= offset:
			left = append(left, child)
		case pos >= offset:
			right = append(right, child)
		default:
			lhs, rhs := child.split(offset - pos)
			if lhs.Len() > 0 {
				left = append(left, lhs)
			}
			if rhs.Len() > 0 {
				right = append(right, rhs)
			}
		}
		pos += childLen
	}

	return rebalance(left), rebalance(right)
}

// rebalance assembles children into a (possibly multi-level) tree that
// respects MaxChildren at every level.
func rebalance(children []*Node) *Node {
	switch {
	case len(children) == 0:
		return newLeafNode()
	case len(children) == 1:
		return children[0]
	case len(children) <= MaxChildren:
		return newInternalNode(children)
	}

	var parents []*Node
	for i := 0; i < len(children); i += MaxChildren {
		end := i + MaxChildren
		if end > len(children) {
			end = len(children)
		}
		parents = append(parents, newInternalNode(children[i:end]))
	}
	return rebalance(parents)
}

// concat joins left and right into one subtree, preferring to merge
// adjacent leaves in place over growing the tree's height.
func concat(left, right *Node) *Node {
	switch {
	case left == nil || left.Len() == 0:
		if right == nil {
			return newLeafNode()
		}
		return right
	case right == nil || right.Len() == 0:
		return left
	case left.IsLeaf() && right.IsLeaf():
		return concatLeaves(left, right)
	}

	for left.height < right.height {
		left = newInternalNode([]*Node{left})
	}
	for right.height < left.height {
		right = newInternalNode([]*Node{right})
	}
	return mergeAtSameHeight(left, right)
}

func concatLeaves(left, right *Node) *Node {
	total := len(left.chunks) + len(right.chunks)
	if total <= MaxChunksPerLeaf {
		chunks := make([]Chunk, 0, total)
		chunks = append(chunks, left.chunks...)
		chunks = append(chunks, right.chunks...)
		return newLeafNodeWithChunks(chunks)
	}
	return newInternalNode([]*Node{left.clone(), right.clone()})
}

func mergeAtSameHeight(left, right *Node) *Node {
	if left.IsLeaf() {
		return concatLeaves(left, right)
	}

	combined := make([]*Node, 0, len(left.children)+len(right.children))
	combined = append(combined, left.children...)
	combined = append(combined, right.children...)

	if len(combined) <= MaxChildren {
		return newInternalNode(combined)
	}
	return rebalance(combined)
}

// findChildByOffset locates the child spanning offset, returning its
// index and offset's position relative to that child's start.
func (n *Node) findChildByOffset(offset ByteOffset) (int, ByteOffset) {
	if n.IsLeaf() {
		return -1, 0
	}

	pos := ByteOffset(0)
	for i, summary := range n.childSummaries {
		if pos+summary.Bytes > offset {
			return i, offset - pos
		}
		pos += summary.Bytes
	}

	last := len(n.children) - 1
	return last, offset - (n.summary.Bytes - n.childSummaries[last].Bytes)
}

// findChildByLine locates the child spanning line, returning its index
// and line's number relative to that child's first line.
func (n *Node) findChildByLine(line uint32) (int, uint32) {
	if n.IsLeaf() {
		return -1, 0
	}

	pos := uint32(0)
	for i, summary := range n.childSummaries {
		if pos+summary.Lines >= line {
			return i, line - pos
		}
		pos += summary.Lines
	}

	last := len(n.children) - 1
	return last, line - (n.summary.Lines - n.childSummaries[last].Lines)
}
