package buffer

import "fmt"

// Range is a half-open byte span [Start, End) within a Buffer.
type Range struct {
	Start ByteOffset
	End   ByteOffset
}

// NewRange builds a Range from raw offsets; it does not validate that
// start <= end, since a Range is just a pair of numbers until something
// applies it to a document.
func NewRange(start, end ByteOffset) Range {
	return Range{Start: start, End: end}
}

// Len reports the span's length in bytes; negative if the range is
// inverted (see IsValid).
func (r Range) Len() ByteOffset {
	return r.End - r.Start
}

// IsEmpty reports whether the span covers zero bytes.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// IsValid reports whether Start does not exceed End.
func (r Range) IsValid() bool {
	return r.Start <= r.End
}

// Clamp confines r to [0, length), narrowing either end that falls
// outside the document rather than failing. Buffer's own write path
// prefers CheckedInsert/CheckedDelete's hard failure over clamping;
// Clamp exists for callers (e.g. stale selections after a concurrent
// edit) that want a best-effort range instead of an error.
func (r Range) Clamp(length ByteOffset) Range {
	start, end := r.Start, r.End
	if start < 0 {
		start = 0
	}
	if end > length {
		end = length
	}
	if start > end {
		start = end
	}
	return Range{Start: start, End: end}
}

// Contains reports whether offset lies within [Start, End).
func (r Range) Contains(offset ByteOffset) bool {
	return offset >= r.Start && offset < r.End
}

// ContainsRange reports whether other lies entirely within r.
func (r Range) ContainsRange(other Range) bool {
	return other.Start >= r.Start && other.End <= r.End
}

// Overlaps reports whether r and other share any byte.
func (r Range) Overlaps(other Range) bool {
	return r.Start < other.End && other.Start < r.End
}

// Intersect returns the overlap of r and other, or a zero-length range
// positioned at the would-be overlap point when they don't overlap.
func (r Range) Intersect(other Range) Range {
	start := max(r.Start, other.Start)
	end := min(r.End, other.End)
	if start >= end {
		return Range{Start: start, End: start}
	}
	return Range{Start: start, End: end}
}

// Union returns the smallest range spanning both r and other.
func (r Range) Union(other Range) Range {
	return Range{Start: min(r.Start, other.Start), End: max(r.End, other.End)}
}

// Shift translates both endpoints by delta, used to relocate a range
// after an edit earlier in the document changed the byte count.
func (r Range) Shift(delta ByteOffset) Range {
	return Range{Start: r.Start + delta, End: r.End + delta}
}

// String renders r as "[start:end)".
func (r Range) String() string {
	return fmt.Sprintf("[%d:%d)", r.Start, r.End)
}

func min(a, b ByteOffset) ByteOffset {
	if a < b {
		return a
	}
	return b
}

func max(a, b ByteOffset) ByteOffset {
	if a > b {
		return a
	}
	return b
}

// PointRange is a half-open span expressed in line/byte-column Points
// rather than raw offsets — the shape a cursor or selection naturally
// works in.
type PointRange struct {
	Start Point
	End   Point
}

// NewPointRange builds a PointRange from two Points.
func NewPointRange(start, end Point) PointRange {
	return PointRange{Start: start, End: end}
}

// IsEmpty reports whether Start and End are the same position.
func (r PointRange) IsEmpty() bool {
	return r.Start.Compare(r.End) == 0
}

// IsValid reports whether Start does not come after End.
func (r PointRange) IsValid() bool {
	return r.Start.Compare(r.End) <= 0
}

// Contains reports whether p falls within [Start, End).
func (r PointRange) Contains(p Point) bool {
	return p.Compare(r.Start) >= 0 && p.Compare(r.End) < 0
}

// IsSingleLine reports whether the span starts and ends on the same
// line, the common case that avoids a multi-line selection repaint.
func (r PointRange) IsSingleLine() bool {
	return r.Start.Line == r.End.Line
}

// String renders r as "[start:end)" using each Point's own formatting.
func (r PointRange) String() string {
	return fmt.Sprintf("[%s:%s)", r.Start.String(), r.End.String())
}

// PointRangeUTF16 is PointRange with UTF-16 code-unit columns, the form
// the language-server protocol expects on the wire.
type PointRangeUTF16 struct {
	Start PointUTF16
	End   PointUTF16
}

// NewPointRangeUTF16 builds a PointRangeUTF16 from two PointUTF16s.
func NewPointRangeUTF16(start, end PointUTF16) PointRangeUTF16 {
	return PointRangeUTF16{Start: start, End: end}
}

// IsEmpty reports whether Start and End are the same position.
func (r PointRangeUTF16) IsEmpty() bool {
	return r.Start.Compare(r.End) == 0
}

// IsValid reports whether Start does not come after End.
func (r PointRangeUTF16) IsValid() bool {
	return r.Start.Compare(r.End) <= 0
}

// IsSingleLine reports whether the span starts and ends on the same
// line.
func (r PointRangeUTF16) IsSingleLine() bool {
	return r.Start.Line == r.End.Line
}

// String renders r as "[start:end)" using each PointUTF16's own
// formatting.
func (r PointRangeUTF16) String() string {
	return fmt.Sprintf("[%s:%s)", r.Start.String(), r.End.String())
}
