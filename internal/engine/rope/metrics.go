package rope

import "unicode/utf8"

// ByteOffset is an absolute byte position within a Rope.
type ByteOffset uint64

// Point is a 0-indexed line/byte-column position.
type Point struct {
	Line   uint32
	Column uint32
}

// TextFlags records cheap-to-check properties of a span of text, set
// once when the span's TextSummary is computed so later code can skip
// work (e.g. UTF-8 decoding) on spans known to be plain ASCII.
type TextFlags uint8

const (
	// FlagASCII is set when every byte in the span is < 128.
	FlagASCII TextFlags = 1 << iota
	// FlagHasNewlines is set when the span contains at least one '\n'.
	FlagHasNewlines
	// FlagHasTabs is set when the span contains at least one '\t'.
	FlagHasTabs
)

// TextSummary is the monoid value aggregated bottom-up through the
// rope's tree: every Node and Chunk carries one, and Add combines a
// parent's summary from its children's without re-scanning their
// bytes.
type TextSummary struct {
	Bytes        ByteOffset
	UTF16Units   uint64
	Lines        uint32
	LongestLine  uint32
	FirstLineLen uint32
	LastLineLen  uint32
	Flags        TextFlags
}

// Zero returns the summary monoid's identity element.
func (TextSummary) Zero() TextSummary {
	return TextSummary{Flags: FlagASCII}
}

// IsZero reports whether s is the identity/empty summary.
func (s TextSummary) IsZero() bool {
	return s.Bytes == 0
}

// Add combines s with a summary for text that immediately follows it,
// recomputing which line is longest and what the new first/last line
// lengths are from the two summaries alone.
func (s TextSummary) Add(other TextSummary) TextSummary {
	if s.Bytes == 0 {
		return other
	}
	if other.Bytes == 0 {
		return s
	}

	result := TextSummary{
		Bytes:      s.Bytes + other.Bytes,
		UTF16Units: s.UTF16Units + other.UTF16Units,
		Lines:      s.Lines + other.Lines,
		Flags:      s.Flags & other.Flags,
	}

	if other.Lines > 0 {
		// other contains a line break: s's last line runs into other's
		// first line, and other's last line ends the combined text.
		joinedLine := s.LastLineLen + other.FirstLineLen
		result.LongestLine = max(s.LongestLine, other.LongestLine, joinedLine)
		if s.Lines == 0 {
			result.FirstLineLen = joinedLine
		} else {
			result.FirstLineLen = s.FirstLineLen
		}
		result.LastLineLen = other.LastLineLen
	} else {
		// other is newline-free: it extends s's last (and possibly
		// only) line.
		joinedLine := s.LastLineLen + other.LastLineLen
		result.LongestLine = max(s.LongestLine, joinedLine)
		if s.Lines == 0 {
			result.FirstLineLen = joinedLine
		} else {
			result.FirstLineLen = s.FirstLineLen
		}
		result.LastLineLen = joinedLine
	}

	if s.Flags&FlagHasNewlines != 0 || other.Flags&FlagHasNewlines != 0 {
		result.Flags |= FlagHasNewlines
	}
	if s.Flags&FlagHasTabs != 0 || other.Flags&FlagHasTabs != 0 {
		result.Flags |= FlagHasTabs
	}

	return result
}

// ComputeSummary scans s once and returns its TextSummary.
func ComputeSummary(s string) TextSummary {
	if len(s) == 0 {
		return TextSummary{Flags: FlagASCII}
	}

	sum := TextSummary{Bytes: ByteOffset(len(s)), Flags: FlagASCII}
	var lineLen uint32

	for _, r := range s {
		if r <= 0xFFFF {
			sum.UTF16Units++
		} else {
			sum.UTF16Units += 2
		}
		if r > 127 {
			sum.Flags &^= FlagASCII
		}

		if r == '\n' {
			sum.Lines++
			if lineLen > sum.LongestLine {
				sum.LongestLine = lineLen
			}
			if sum.Lines == 1 {
				sum.FirstLineLen = lineLen
			}
			lineLen = 0
			sum.Flags |= FlagHasNewlines
			continue
		}

		lineLen += uint32(utf8.RuneLen(r))
		if r == '\t' {
			sum.Flags |= FlagHasTabs
		}
	}

	sum.LastLineLen = lineLen
	switch {
	case sum.Lines == 0:
		sum.FirstLineLen = lineLen
		sum.LongestLine = lineLen
	case lineLen > sum.LongestLine:
		sum.LongestLine = lineLen
	}

	return sum
}

// CountLines counts the '\n' bytes in s.
func CountLines(s string) uint32 {
	var n uint32
	for _, c := range s {
		if c == '\n' {
			n++
		}
	}
	return n
}

// FindNthNewline returns the byte index of the n'th (1-indexed)
// newline in s, or -1 if s has fewer than n newlines.
func FindNthNewline(s string, n uint32) int {
	if n == 0 {
		return -1
	}

	var seen uint32
	for i, c := range s {
		if c != '\n' {
			continue
		}
		seen++
		if seen == n {
			return i
		}
	}
	return -1
}

// OffsetToLineColumn converts a byte offset within s to a line/column
// Point, by scanning for newlines up to offset. Intended for small
// spans (a single chunk or line); Rope.OffsetToPoint uses the tree's
// cached line counts instead of this linear scan for whole-document
// lookups.
func OffsetToLineColumn(s string, offset int) Point {
	if offset <= 0 {
		return Point{Line: 0, Column: 0}
	}
	if offset >= len(s) {
		offset = len(s)
	}

	var line uint32
	lastNewline := -1
	for i, c := range s[:offset] {
		if c == '\n' {
			line++
			lastNewline = i
		}
	}

	return Point{Line: line, Column: uint32(offset - lastNewline - 1)}
}
