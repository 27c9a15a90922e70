package rope

// MaxInlineNewlines is how many newline positions a NewlineIndex keeps
// inline before spilling to a heap slice.
const MaxInlineNewlines = 4

// NewlineIndex gives O(1)-amortized lookup of newline positions within
// a single chunk, so line-start/line-end queries don't rescan the
// chunk's bytes. Most lines in real text are short, so the common case
// (at most MaxInlineNewlines newlines) is stored in a fixed array with
// no allocation at all; chunks with more newlines spill to a slice.
//
// count is uint16 rather than uint8: with MaxChunkSize bytes per chunk
// (chunk.go), a pathological chunk of nothing but blank lines can carry
// up to MaxChunkSize newlines, which exceeds what a uint8 can hold.
type NewlineIndex struct {
	inline    [MaxInlineNewlines]uint16
	count     uint16
	positions []uint16
}

// ComputeNewlineIndex scans s and builds its NewlineIndex.
func ComputeNewlineIndex(s string) NewlineIndex {
	var idx NewlineIndex

	total := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			total++
		}
	}
	if total == 0 {
		return idx
	}

	idx.count = uint16(total)
	if total > MaxInlineNewlines {
		idx.positions = make([]uint16, 0, total)
	}

	recorded := 0
	for i := 0; i < len(s) && recorded < total; i++ {
		if s[i] != '\n' {
			continue
		}
		pos := uint16(i)
		if recorded < MaxInlineNewlines {
			idx.inline[recorded] = pos
		}
		if total > MaxInlineNewlines {
			idx.positions = append(idx.positions, pos)
		}
		recorded++
	}

	return idx
}

// Count reports how many newlines the index covers.
func (idx *NewlineIndex) Count() uint32 {
	return uint32(idx.count)
}

// Position returns the byte offset of the n'th newline (0-indexed), or
// -1 if n is out of range.
func (idx *NewlineIndex) Position(n uint32) int {
	if n >= uint32(idx.count) {
		return -1
	}
	if idx.count <= MaxInlineNewlines {
		return int(idx.inline[n])
	}
	return int(idx.positions[n])
}

// FindNthNewline returns the byte offset of the n'th newline
// (1-indexed), matching the free-function convention in metrics.go.
// Returns -1 if n is 0 or exceeds Count().
func (idx *NewlineIndex) FindNthNewline(n uint32) int {
	if n == 0 || n > uint32(idx.count) {
		return -1
	}
	return idx.Position(n - 1)
}

// SearchLine returns the byte offset where the given 0-indexed line
// (relative to this chunk) begins, or -1 if the chunk doesn't reach
// that line.
func (idx *NewlineIndex) SearchLine(line uint32) int {
	if line == 0 {
		return 0
	}
	pos := idx.FindNthNewline(line)
	if pos < 0 {
		return -1
	}
	return pos + 1
}

// Contains reports whether the chunk spans at least `lines` newlines.
func (idx *NewlineIndex) Contains(lines uint32) bool {
	return uint32(idx.count) >= lines
}

// LastNewlinePosition returns the offset of the final newline, or -1 if
// the chunk has none.
func (idx *NewlineIndex) LastNewlinePosition() int {
	if idx.count == 0 {
		return -1
	}
	return idx.Position(uint32(idx.count) - 1)
}

// NewlineBefore returns the offset of the last newline strictly before
// offset, or -1 if none exists.
func (idx *NewlineIndex) NewlineBefore(offset int) int {
	if idx.count == 0 {
		return -1
	}

	positions := idx.allPositions()
	if len(positions) <= 8 {
		for i := len(positions) - 1; i >= 0; i-- {
			if int(positions[i]) < offset {
				return int(positions[i])
			}
		}
		return -1
	}

	lo, hi, result := 0, len(positions)-1, -1
	for lo <= hi {
		mid := (lo + hi) / 2
		if pos := int(positions[mid]); pos < offset {
			result = pos
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return result
}

// NewlineAfter returns the offset of the first newline at or after
// offset, or -1 if none exists.
func (idx *NewlineIndex) NewlineAfter(offset int) int {
	if idx.count == 0 {
		return -1
	}

	positions := idx.allPositions()
	if len(positions) <= 8 {
		for _, pos := range positions {
			if int(pos) >= offset {
				return int(pos)
			}
		}
		return -1
	}

	lo, hi, result := 0, len(positions)-1, -1
	for lo <= hi {
		mid := (lo + hi) / 2
		if pos := int(positions[mid]); pos >= offset {
			result = pos
			hi = mid - 1
		} else {
			lo = mid + 1
		}
	}
	return result
}

// allPositions returns every recorded position, whichever storage
// (inline or heap) currently holds them.
func (idx *NewlineIndex) allPositions() []uint16 {
	if idx.count <= MaxInlineNewlines {
		return idx.inline[:idx.count]
	}
	return idx.positions
}
