package highlight

import "sort"

// Span is a contiguous byte range tagged with a token class.
type Span struct {
	StartByte uint32
	EndByte   uint32
	Class     TokenClass
}

// Len returns the span's byte length.
func (s Span) Len() uint32 {
	return s.EndByte - s.StartByte
}

// normalize sorts spans by StartByte, drops zero-length and out-of-range
// entries, and fills every gap (including before the first span and after
// the last) with a ClassNone span, so the result satisfies the cache's
// coverage invariant: spans are sorted, non-overlapping, and their union
// covers [0, length).
func normalize(spans []Span, length uint32) []Span {
	filtered := make([]Span, 0, len(spans))
	for _, s := range spans {
		if s.EndByte <= s.StartByte || s.StartByte >= length {
			continue
		}
		if s.EndByte > length {
			s.EndByte = length
		}
		filtered = append(filtered, s)
	}
	sort.Slice(filtered, func(i, j int) bool {
		if filtered[i].StartByte != filtered[j].StartByte {
			return filtered[i].StartByte < filtered[j].StartByte
		}
		return filtered[i].EndByte < filtered[j].EndByte
	})

	out := make([]Span, 0, len(filtered)*2+1)
	var cursor uint32
	for _, s := range filtered {
		if s.StartByte < cursor {
			// Overlaps the previous span; clip rather than drop so
			// coverage is never broken by a malformed grammar result.
			if s.EndByte <= cursor {
				continue
			}
			s.StartByte = cursor
		}
		if s.StartByte > cursor {
			out = append(out, Span{StartByte: cursor, EndByte: s.StartByte, Class: ClassNone})
		}
		out = append(out, s)
		cursor = s.EndByte
	}
	if cursor < length {
		out = append(out, Span{StartByte: cursor, EndByte: length, Class: ClassNone})
	}
	if len(out) == 0 && length > 0 {
		out = append(out, Span{StartByte: 0, EndByte: length, Class: ClassNone})
	}
	return out
}

// shift translates every span in spans by delta bytes. Used to reuse
// spans that lay entirely after an edit's dirty region.
func shift(spans []Span, delta int) []Span {
	out := make([]Span, len(spans))
	for i, s := range spans {
		out[i] = Span{
			StartByte: uint32(int(s.StartByte) + delta),
			EndByte:   uint32(int(s.EndByte) + delta),
			Class:     s.Class,
		}
	}
	return out
}

// before returns the subset of spans entirely before offset.
func before(spans []Span, offset uint32) []Span {
	out := make([]Span, 0, len(spans))
	for _, s := range spans {
		if s.EndByte <= offset {
			out = append(out, s)
		}
	}
	return out
}

// after returns the subset of spans entirely at or after offset.
func after(spans []Span, offset uint32) []Span {
	out := make([]Span, 0, len(spans))
	for _, s := range spans {
		if s.StartByte >= offset {
			out = append(out, s)
		}
	}
	return out
}
