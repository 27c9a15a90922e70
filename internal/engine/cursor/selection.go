package cursor

import (
	"fmt"

	"github.com/ghostkellz/grim/internal/engine/buffer"
)

// Range mirrors buffer.Range.
type Range = buffer.Range

// Selection is an anchor/head pair describing a span of selected
// text, or (when Anchor == Head) a bare cursor. Direction is
// significant: Head may be less than Anchor, recording that the user
// selected backward.
type Selection struct {
	Anchor ByteOffset
	Head   ByteOffset
}

// NewSelection builds a selection running from anchor to head,
// preserving whichever direction that implies.
func NewSelection(anchor, head ByteOffset) Selection {
	return Selection{Anchor: anchor, Head: head}
}

// NewCursorSelection builds a zero-extent selection at offset.
func NewCursorSelection(offset ByteOffset) Selection {
	return Selection{Anchor: offset, Head: offset}
}

// NewRangeSelection builds a forward selection spanning r.
func NewRangeSelection(r Range) Selection {
	return Selection{Anchor: r.Start, Head: r.End}
}

// IsEmpty reports whether the selection has zero extent.
func (s Selection) IsEmpty() bool {
	return s.Anchor == s.Head
}

// Len reports the selection's length in bytes, independent of
// direction.
func (s Selection) Len() ByteOffset {
	if s.Anchor <= s.Head {
		return s.Head - s.Anchor
	}
	return s.Anchor - s.Head
}

// Range returns the selection as a forward Range.
func (s Selection) Range() Range {
	return Range{Start: s.Start(), End: s.End()}
}

// Start returns the selection's lower bound.
func (s Selection) Start() ByteOffset {
	if s.Anchor <= s.Head {
		return s.Anchor
	}
	return s.Head
}

// End returns the selection's upper bound.
func (s Selection) End() ByteOffset {
	if s.Anchor >= s.Head {
		return s.Anchor
	}
	return s.Head
}

// Cursor returns the head — where typing would occur.
func (s Selection) Cursor() ByteOffset {
	return s.Head
}

// IsForward reports whether the selection was made anchor-to-head
// left to right.
func (s Selection) IsForward() bool {
	return s.Head >= s.Anchor
}

// IsBackward reports the opposite of IsForward.
func (s Selection) IsBackward() bool {
	return s.Head < s.Anchor
}

// Extend returns the selection with its head moved to offset, anchor
// unchanged.
func (s Selection) Extend(offset ByteOffset) Selection {
	return Selection{Anchor: s.Anchor, Head: offset}
}

// ExtendBy shifts the head by delta bytes, anchor unchanged.
func (s Selection) ExtendBy(delta ByteOffset) Selection {
	return Selection{Anchor: s.Anchor, Head: s.Head + delta}
}

// MoveTo collapses the selection to a cursor at offset.
func (s Selection) MoveTo(offset ByteOffset) Selection {
	return Selection{Anchor: offset, Head: offset}
}

// MoveBy shifts both anchor and head by delta bytes, preserving
// extent and direction.
func (s Selection) MoveBy(delta ByteOffset) Selection {
	return Selection{Anchor: s.Anchor + delta, Head: s.Head + delta}
}

// Collapse collapses the selection to a cursor at its head.
func (s Selection) Collapse() Selection {
	return Selection{Anchor: s.Head, Head: s.Head}
}

// CollapseToStart collapses the selection to its lower bound.
func (s Selection) CollapseToStart() Selection {
	start := s.Start()
	return Selection{Anchor: start, Head: start}
}

// CollapseToEnd collapses the selection to its upper bound.
func (s Selection) CollapseToEnd() Selection {
	end := s.End()
	return Selection{Anchor: end, Head: end}
}

// Flip swaps anchor and head, reversing the selection's direction.
func (s Selection) Flip() Selection {
	return Selection{Anchor: s.Head, Head: s.Anchor}
}

// Normalize returns a forward (Anchor <= Head) version of s.
func (s Selection) Normalize() Selection {
	if s.Anchor <= s.Head {
		return s
	}
	return s.Flip()
}

// Contains reports whether offset falls within [Start, End); empty
// selections contain nothing.
func (s Selection) Contains(offset ByteOffset) bool {
	return offset >= s.Start() && offset < s.End()
}

// ContainsInclusive reports whether offset falls within [Start, End].
func (s Selection) ContainsInclusive(offset ByteOffset) bool {
	return offset >= s.Start() && offset <= s.End()
}

// Overlaps reports whether s and other share any bytes.
func (s Selection) Overlaps(other Selection) bool {
	return s.Start() < other.End() && other.Start() < s.End()
}

// Touches reports whether s and other overlap or sit adjacent to one
// another, the condition under which CursorSet.normalize merges them.
func (s Selection) Touches(other Selection) bool {
	return s.Start() <= other.End() && other.Start() <= s.End()
}

// Merge returns the forward selection spanning both s and other.
// Direction information from either input is lost.
func (s Selection) Merge(other Selection) Selection {
	start, end := s.Start(), s.End()
	if other.Start() < start {
		start = other.Start()
	}
	if other.End() > end {
		end = other.End()
	}
	return Selection{Anchor: start, Head: end}
}

// Clamp confines both anchor and head to [0, maxOffset].
func (s Selection) Clamp(maxOffset ByteOffset) Selection {
	clampOne := func(v ByteOffset) ByteOffset {
		switch {
		case v < 0:
			return 0
		case v > maxOffset:
			return maxOffset
		default:
			return v
		}
	}
	return Selection{Anchor: clampOne(s.Anchor), Head: clampOne(s.Head)}
}

// String renders the selection for debugging/logging.
func (s Selection) String() string {
	if s.IsEmpty() {
		return fmt.Sprintf("Cursor(%d)", s.Head)
	}
	arrow := "->"
	if s.IsBackward() {
		arrow = "<-"
	}
	return fmt.Sprintf("Selection(%d%s%d)", s.Anchor, arrow, s.Head)
}

// Equals reports whether s and other share both anchor and head.
func (s Selection) Equals(other Selection) bool {
	return s.Anchor == other.Anchor && s.Head == other.Head
}

// SameRange reports whether s and other cover the same bytes,
// regardless of direction.
func (s Selection) SameRange(other Selection) bool {
	return s.Start() == other.Start() && s.End() == other.End()
}
