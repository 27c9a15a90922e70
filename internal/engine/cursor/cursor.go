package cursor

import (
	"fmt"

	"github.com/ghostkellz/grim/internal/engine/buffer"
)

// ByteOffset mirrors buffer.ByteOffset so callers rarely need to
// import buffer directly just to hold a cursor position.
type ByteOffset = buffer.ByteOffset

// Point mirrors buffer.Point.
type Point = buffer.Point

// Cursor is a single insertion point: an immutable byte offset with no
// selection extent. Callers wanting a range should use Selection
// instead; Cursor exists for the common case of a plain caret.
type Cursor struct {
	offset ByteOffset
}

// NewCursor returns a Cursor at offset, clamped to zero if negative.
func NewCursor(offset ByteOffset) Cursor {
	return Cursor{offset: nonNegative(offset)}
}

// nonNegative floors offset at zero; shared by every constructor below
// that accepts a caller-supplied position.
func nonNegative(offset ByteOffset) ByteOffset {
	if offset < 0 {
		return 0
	}
	return offset
}

// Offset reports the cursor's position.
func (c Cursor) Offset() ByteOffset {
	return c.offset
}

// MoveTo returns a cursor repositioned to offset.
func (c Cursor) MoveTo(offset ByteOffset) Cursor {
	return Cursor{offset: nonNegative(offset)}
}

// MoveBy returns a cursor shifted by delta bytes, floored at zero.
func (c Cursor) MoveBy(delta ByteOffset) Cursor {
	return Cursor{offset: nonNegative(c.offset + delta)}
}

// Clamp returns a cursor confined to [0, maxOffset].
func (c Cursor) Clamp(maxOffset ByteOffset) Cursor {
	switch {
	case c.offset < 0:
		return Cursor{offset: 0}
	case c.offset > maxOffset:
		return Cursor{offset: maxOffset}
	default:
		return c
	}
}

// String renders the cursor for debugging/logging.
func (c Cursor) String() string {
	return fmt.Sprintf("Cursor(%d)", c.offset)
}

// Equals reports whether c and other share a position.
func (c Cursor) Equals(other Cursor) bool {
	return c.offset == other.offset
}

// Compare returns -1, 0, or 1 as c is before, at, or after other.
func (c Cursor) Compare(other Cursor) int {
	switch {
	case c.offset < other.offset:
		return -1
	case c.offset > other.offset:
		return 1
	default:
		return 0
	}
}

// Before reports whether c precedes other.
func (c Cursor) Before(other Cursor) bool {
	return c.offset < other.offset
}

// After reports whether c follows other.
func (c Cursor) After(other Cursor) bool {
	return c.offset > other.offset
}

// ToSelection returns a zero-extent Selection at c's position.
func (c Cursor) ToSelection() Selection {
	return Selection{Anchor: c.offset, Head: c.offset}
}
