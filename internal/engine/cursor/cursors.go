package cursor

import "sort"

// CursorSet is a multi-cursor session: a sorted, non-overlapping list
// of Selections. The first entry is the primary selection — the one
// status bars and single-cursor commands care about.
type CursorSet struct {
	selections []Selection
}

// NewCursorSet returns a set containing a single selection.
func NewCursorSet(initial Selection) *CursorSet {
	return &CursorSet{selections: []Selection{initial}}
}

// NewCursorSetAt returns a set with one cursor (no extent) at offset.
func NewCursorSetAt(offset ByteOffset) *CursorSet {
	return &CursorSet{selections: []Selection{NewCursorSelection(offset)}}
}

// NewCursorSetFromSlice builds a set from selections, normalizing
// (sorting and merging) them. An empty slice yields a single cursor
// at offset 0 rather than an empty set, since every document needs at
// least one cursor.
func NewCursorSetFromSlice(selections []Selection) *CursorSet {
	if len(selections) == 0 {
		return NewCursorSetAt(0)
	}
	cs := &CursorSet{selections: append([]Selection(nil), selections...)}
	cs.normalize()
	return cs
}

// Primary returns the first (primary) selection.
func (cs *CursorSet) Primary() Selection {
	if len(cs.selections) == 0 {
		return Selection{}
	}
	return cs.selections[0]
}

// PrimaryCursor returns the primary selection's head.
func (cs *CursorSet) PrimaryCursor() ByteOffset {
	if len(cs.selections) == 0 {
		return 0
	}
	return cs.selections[0].Head
}

// All returns a copy of every selection in the set.
func (cs *CursorSet) All() []Selection {
	return append([]Selection(nil), cs.selections...)
}

// Count returns how many selections the set holds.
func (cs *CursorSet) Count() int {
	return len(cs.selections)
}

// IsMulti reports whether the set holds more than one selection.
func (cs *CursorSet) IsMulti() bool {
	return len(cs.selections) > 1
}

// Get returns the selection at index, or the zero Selection if index
// is out of range.
func (cs *CursorSet) Get(index int) Selection {
	if index < 0 || index >= len(cs.selections) {
		return Selection{}
	}
	return cs.selections[index]
}

// Add appends sel and re-normalizes, merging it into any selection it
// overlaps or touches.
func (cs *CursorSet) Add(sel Selection) {
	cs.selections = append(cs.selections, sel)
	cs.normalize()
}

// AddAll appends every selection in sels and re-normalizes once.
func (cs *CursorSet) AddAll(sels []Selection) {
	cs.selections = append(cs.selections, sels...)
	cs.normalize()
}

// SetPrimary replaces the first selection, keeping the rest. Note
// that normalize() re-sorts by start position afterward, so the
// selection passed here may not end up first if it overlaps others.
func (cs *CursorSet) SetPrimary(sel Selection) {
	if len(cs.selections) == 0 {
		cs.selections = []Selection{sel}
	} else {
		cs.selections[0] = sel
	}
	cs.normalize()
}

// Set discards every other selection, keeping only sel.
func (cs *CursorSet) Set(sel Selection) {
	cs.selections = []Selection{sel}
}

// SetAll replaces every selection with sels, normalized. An empty
// sels falls back to a single cursor at offset 0.
func (cs *CursorSet) SetAll(sels []Selection) {
	if len(sels) == 0 {
		cs.selections = []Selection{NewCursorSelection(0)}
		return
	}
	cs.selections = append([]Selection(nil), sels...)
	cs.normalize()
}

// Clear drops every selection but the primary.
func (cs *CursorSet) Clear() {
	if len(cs.selections) > 1 {
		cs.selections = cs.selections[:1]
	}
}

// Remove deletes the selection at index. Removing the last remaining
// selection falls back to a cursor at offset 0.
func (cs *CursorSet) Remove(index int) {
	if index < 0 || index >= len(cs.selections) {
		return
	}
	cs.selections = append(cs.selections[:index], cs.selections[index+1:]...)
	if len(cs.selections) == 0 {
		cs.selections = []Selection{NewCursorSelection(0)}
	}
}

// RemoveLast drops the most recently added selection, unless it's the
// only one left.
func (cs *CursorSet) RemoveLast() {
	if len(cs.selections) > 1 {
		cs.selections = cs.selections[:len(cs.selections)-1]
	}
}

// ForEach calls f for every selection, with its index.
func (cs *CursorSet) ForEach(f func(index int, sel Selection)) {
	for i, sel := range cs.selections {
		f(i, sel)
	}
}

// Map returns the result of applying f to every selection, without
// modifying cs.
func (cs *CursorSet) Map(f func(sel Selection) Selection) []Selection {
	result := make([]Selection, len(cs.selections))
	for i, sel := range cs.selections {
		result[i] = f(sel)
	}
	return result
}

// MapInPlace applies f to every selection in cs and re-normalizes.
func (cs *CursorSet) MapInPlace(f func(sel Selection) Selection) {
	for i, sel := range cs.selections {
		cs.selections[i] = f(sel)
	}
	cs.normalize()
}

// HasSelection reports whether any selection has nonzero extent.
func (cs *CursorSet) HasSelection() bool {
	for _, sel := range cs.selections {
		if !sel.IsEmpty() {
			return true
		}
	}
	return false
}

// CollapseAll collapses every selection to a cursor at its head.
func (cs *CursorSet) CollapseAll() {
	for i, sel := range cs.selections {
		cs.selections[i] = sel.Collapse()
	}
	cs.normalize()
}

// Clamp confines every selection to [0, maxOffset].
func (cs *CursorSet) Clamp(maxOffset ByteOffset) {
	for i, sel := range cs.selections {
		cs.selections[i] = sel.Clamp(maxOffset)
	}
	cs.normalize()
}

// Clone returns an independent copy of cs.
func (cs *CursorSet) Clone() *CursorSet {
	return &CursorSet{selections: append([]Selection(nil), cs.selections...)}
}

// Ranges returns every selection's Range, including empty ones.
func (cs *CursorSet) Ranges() []Range {
	ranges := make([]Range, len(cs.selections))
	for i, sel := range cs.selections {
		ranges[i] = sel.Range()
	}
	return ranges
}

// SelectionRanges returns the Range of every non-empty selection,
// skipping bare cursors.
func (cs *CursorSet) SelectionRanges() []Range {
	var ranges []Range
	for _, sel := range cs.selections {
		if !sel.IsEmpty() {
			ranges = append(ranges, sel.Range())
		}
	}
	return ranges
}

// normalize sorts selections by start position (widest first on
// ties) and merges any that overlap or touch, so the set never holds
// two selections pointing into the same span.
func (cs *CursorSet) normalize() {
	if len(cs.selections) <= 1 {
		return
	}

	sort.Slice(cs.selections, func(i, j int) bool {
		a, b := cs.selections[i], cs.selections[j]
		if a.Start() != b.Start() {
			return a.Start() < b.Start()
		}
		return a.End() > b.End()
	})

	merged := cs.selections[:1]
	for _, sel := range cs.selections[1:] {
		last := &merged[len(merged)-1]
		if sel.Start() <= last.End() {
			*last = last.Merge(sel)
		} else {
			merged = append(merged, sel)
		}
	}
	cs.selections = merged
}

// Equals reports whether cs and other hold the same selections in the
// same order.
func (cs *CursorSet) Equals(other *CursorSet) bool {
	if other == nil || cs.Count() != other.Count() {
		return false
	}
	for i, sel := range cs.selections {
		if !sel.Equals(other.selections[i]) {
			return false
		}
	}
	return true
}
