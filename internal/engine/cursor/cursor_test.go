package cursor

import "testing"

func TestCursorConstruction(t *testing.T) {
	cases := []struct {
		name   string
		offset ByteOffset
		want   ByteOffset
	}{
		{"positive", 10, 10},
		{"zero", 0, 0},
		{"negative clamps to zero", -5, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NewCursor(tc.offset).Offset(); got != tc.want {
				t.Errorf("NewCursor(%d).Offset() = %d, want %d", tc.offset, got, tc.want)
			}
		})
	}
}

func TestCursorMoveToIsImmutable(t *testing.T) {
	c := NewCursor(10)
	moved := c.MoveTo(20)

	if c.Offset() != 10 {
		t.Error("original cursor mutated by MoveTo")
	}
	if moved.Offset() != 20 {
		t.Errorf("moved.Offset() = %d, want 20", moved.Offset())
	}
}

func TestCursorMoveBy(t *testing.T) {
	base := NewCursor(10)
	cases := []struct {
		name  string
		delta ByteOffset
		want  ByteOffset
	}{
		{"forward", 5, 15},
		{"backward", -5, 5},
		{"clamps at zero", -20, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := base.MoveBy(tc.delta).Offset(); got != tc.want {
				t.Errorf("MoveBy(%d) = %d, want %d", tc.delta, got, tc.want)
			}
		})
	}
}

func TestCursorClamp(t *testing.T) {
	c := NewCursor(50)

	if got := c.Clamp(30).Offset(); got != 30 {
		t.Errorf("clamp down: got %d, want 30", got)
	}
	if got := c.Clamp(100).Offset(); got != 50 {
		t.Errorf("clamp no-op: got %d, want 50", got)
	}
}

func TestCursorCompareAndOrdering(t *testing.T) {
	lo, hi, loAgain := NewCursor(10), NewCursor(20), NewCursor(10)

	if lo.Compare(hi) != -1 || hi.Compare(lo) != 1 || lo.Compare(loAgain) != 0 {
		t.Error("Compare did not produce expected -1/1/0")
	}
	if !lo.Before(hi) || !hi.After(lo) {
		t.Error("Before/After disagree with Compare")
	}
}

func TestCursorToSelectionIsEmpty(t *testing.T) {
	sel := NewCursor(10).ToSelection()
	if sel.Anchor != 10 || sel.Head != 10 || !sel.IsEmpty() {
		t.Errorf("ToSelection() = %+v, want empty selection at 10", sel)
	}
}

func TestSelectionConstructors(t *testing.T) {
	sel := NewSelection(10, 20)
	if sel.Anchor != 10 || sel.Head != 20 {
		t.Errorf("NewSelection(10, 20) = %+v", sel)
	}

	cursorSel := NewCursorSelection(15)
	if !cursorSel.IsEmpty() || cursorSel.Anchor != 15 {
		t.Errorf("NewCursorSelection(15) = %+v, want empty at 15", cursorSel)
	}

	rangeSel := NewRangeSelection(Range{Start: 5, End: 9})
	if rangeSel.Start() != 5 || rangeSel.End() != 9 {
		t.Errorf("NewRangeSelection = %+v", rangeSel)
	}
}

func TestSelectionLenIsDirectionIndependent(t *testing.T) {
	forward := NewSelection(10, 20)
	backward := NewSelection(20, 10)
	if forward.Len() != 10 || backward.Len() != 10 {
		t.Errorf("Len mismatch: forward=%d backward=%d, want 10 each", forward.Len(), backward.Len())
	}
}

func TestSelectionRangeNormalizesDirection(t *testing.T) {
	for _, sel := range []Selection{NewSelection(10, 20), NewSelection(20, 10)} {
		r := sel.Range()
		if r.Start != 10 || r.End != 20 {
			t.Errorf("Range() for %+v = [%d:%d), want [10:20)", sel, r.Start, r.End)
		}
	}
}

func TestSelectionStartEnd(t *testing.T) {
	forward := NewSelection(10, 20)
	backward := NewSelection(20, 10)

	if forward.Start() != 10 || forward.End() != 20 {
		t.Error("forward Start/End wrong")
	}
	if backward.Start() != 10 || backward.End() != 20 {
		t.Error("backward Start/End should normalize like forward")
	}
}

func TestSelectionDirection(t *testing.T) {
	forward := NewSelection(10, 20)
	if !forward.IsForward() || forward.IsBackward() {
		t.Error("forward selection misreported direction")
	}

	backward := NewSelection(20, 10)
	if backward.IsForward() || !backward.IsBackward() {
		t.Error("backward selection misreported direction")
	}
}

func TestSelectionExtend(t *testing.T) {
	extended := NewCursorSelection(10).Extend(20)
	if extended.Anchor != 10 || extended.Head != 20 {
		t.Errorf("Extend(20) = %+v, want anchor 10 head 20", extended)
	}
}

func TestSelectionCollapseVariants(t *testing.T) {
	sel := NewSelection(10, 20)

	if c := sel.Collapse(); c.Anchor != 20 || c.Head != 20 {
		t.Errorf("Collapse() = %+v, want at head (20)", c)
	}
	if c := sel.CollapseToStart(); c.Anchor != 10 || c.Head != 10 {
		t.Errorf("CollapseToStart() = %+v, want at 10", c)
	}
	if c := sel.CollapseToEnd(); c.Anchor != 20 || c.Head != 20 {
		t.Errorf("CollapseToEnd() = %+v, want at 20", c)
	}
}

func TestSelectionFlipAndNormalize(t *testing.T) {
	sel := NewSelection(10, 20)
	flipped := sel.Flip()
	if flipped.Anchor != 20 || flipped.Head != 10 {
		t.Errorf("Flip() = %+v", flipped)
	}

	normalized := NewSelection(20, 10).Normalize()
	if normalized.Anchor != 10 || normalized.Head != 20 || !normalized.IsForward() {
		t.Errorf("Normalize() = %+v, want forward 10->20", normalized)
	}
}

func TestSelectionContains(t *testing.T) {
	sel := NewSelection(10, 20)
	cases := []struct {
		offset ByteOffset
		want   bool
	}{
		{15, true},
		{10, true},
		{20, false},
		{5, false},
	}
	for _, tc := range cases {
		if got := sel.Contains(tc.offset); got != tc.want {
			t.Errorf("Contains(%d) = %v, want %v", tc.offset, got, tc.want)
		}
	}
	if NewCursorSelection(10).Contains(10) {
		t.Error("empty selection should contain nothing")
	}
}

func TestSelectionOverlaps(t *testing.T) {
	base := NewSelection(10, 20)
	cases := []struct {
		name  string
		other Selection
		want  bool
	}{
		{"partial overlap", NewSelection(15, 25), true},
		{"adjacent non-overlap", NewSelection(25, 35), false},
		{"overlap from left", NewSelection(5, 15), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := base.Overlaps(tc.other); got != tc.want {
				t.Errorf("Overlaps(%+v) = %v, want %v", tc.other, got, tc.want)
			}
		})
	}
}

func TestSelectionTouches(t *testing.T) {
	base := NewSelection(10, 20)
	if !base.Touches(NewSelection(20, 30)) {
		t.Error("adjacent selections should touch")
	}
	if base.Touches(NewSelection(25, 35)) {
		t.Error("disjoint selections should not touch")
	}
}

func TestSelectionMerge(t *testing.T) {
	merged := NewSelection(10, 20).Merge(NewSelection(15, 30))
	if merged.Start() != 10 || merged.End() != 30 {
		t.Errorf("Merge result [%d:%d), want [10:30)", merged.Start(), merged.End())
	}
}

func TestSelectionClamp(t *testing.T) {
	clamped := NewSelection(10, 50).Clamp(30)
	if clamped.Anchor != 10 || clamped.Head != 30 {
		t.Errorf("Clamp(30) = %+v, want [10:30]", clamped)
	}
}

func TestSelectionString(t *testing.T) {
	if got := NewCursorSelection(7).String(); got != "Cursor(7)" {
		t.Errorf("String() for cursor = %q", got)
	}
	if got := NewSelection(3, 9).String(); got != "Selection(3->9)" {
		t.Errorf("String() for forward selection = %q", got)
	}
	if got := NewSelection(9, 3).String(); got != "Selection(9<-3)" {
		t.Errorf("String() for backward selection = %q", got)
	}
}

func TestCursorSetBasics(t *testing.T) {
	cs := NewCursorSet(NewCursorSelection(10))
	if cs.Count() != 1 || cs.Primary().Head != 10 {
		t.Errorf("NewCursorSet basic invariant broken: count=%d primary=%+v", cs.Count(), cs.Primary())
	}
}

func TestCursorSetAddMergesOverlapping(t *testing.T) {
	cs := NewCursorSet(NewSelection(10, 20))
	cs.Add(NewSelection(15, 25))

	if cs.Count() != 1 {
		t.Fatalf("expected merge to leave 1 selection, got %d", cs.Count())
	}
	if sel := cs.Primary(); sel.Start() != 10 || sel.End() != 25 {
		t.Errorf("merged selection = [%d:%d), want [10:25)", sel.Start(), sel.End())
	}
}

func TestCursorSetAddKeepsDisjointSeparate(t *testing.T) {
	cs := NewCursorSetAt(10)
	cs.Add(NewCursorSelection(30))
	if cs.Count() != 2 {
		t.Errorf("disjoint cursors should not merge, got count %d", cs.Count())
	}
}

func TestCursorSetNormalizeSortsByStart(t *testing.T) {
	cs := NewCursorSetFromSlice([]Selection{
		NewSelection(30, 40),
		NewSelection(10, 20),
		NewSelection(50, 60),
	})

	if cs.Count() != 3 {
		t.Fatalf("expected 3 disjoint selections, got %d", cs.Count())
	}
	sels := cs.All()
	for i, want := range []ByteOffset{10, 30, 50} {
		if sels[i].Start() != want {
			t.Errorf("sels[%d].Start() = %d, want %d", i, sels[i].Start(), want)
		}
	}
}

func TestCursorSetNormalizeMergesOverlappingAndAdjacent(t *testing.T) {
	cases := []struct {
		name string
		sels []Selection
	}{
		{"overlapping chain", []Selection{NewSelection(0, 20), NewSelection(10, 30), NewSelection(25, 40)}},
		{"adjacent chain", []Selection{NewSelection(0, 10), NewSelection(10, 20), NewSelection(20, 30)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cs := NewCursorSetFromSlice(tc.sels)
			if cs.Count() != 1 {
				t.Fatalf("expected single merged selection, got count %d", cs.Count())
			}
			var lo, hi ByteOffset = 1 << 30, 0
			for _, s := range tc.sels {
				if s.Start() < lo {
					lo = s.Start()
				}
				if s.End() > hi {
					hi = s.End()
				}
			}
			if sel := cs.Primary(); sel.Start() != lo || sel.End() != hi {
				t.Errorf("merged = [%d:%d), want [%d:%d)", sel.Start(), sel.End(), lo, hi)
			}
		})
	}
}

func TestCursorSetClear(t *testing.T) {
	cs := NewCursorSetAt(10)
	cs.Add(NewCursorSelection(20))
	cs.Add(NewCursorSelection(30))
	if cs.Count() != 3 {
		t.Fatalf("setup: expected 3 cursors, got %d", cs.Count())
	}

	cs.Clear()
	if cs.Count() != 1 {
		t.Errorf("Clear() left count %d, want 1", cs.Count())
	}
}

func TestCursorSetClamp(t *testing.T) {
	cs := NewCursorSetFromSlice([]Selection{NewSelection(10, 20), NewSelection(40, 60)})
	cs.Clamp(50)

	if sels := cs.All(); sels[1].End() != 50 {
		t.Errorf("second selection End() = %d, want 50", sels[1].End())
	}
}

func TestCursorSetHasSelection(t *testing.T) {
	cursorsOnly := NewCursorSetFromSlice([]Selection{NewCursorSelection(10), NewCursorSelection(20)})
	if cursorsOnly.HasSelection() {
		t.Error("all-cursor set should report no selection")
	}

	mixed := NewCursorSetFromSlice([]Selection{NewCursorSelection(10), NewSelection(20, 30)})
	if !mixed.HasSelection() {
		t.Error("mixed set should report a selection")
	}
}

func TestCursorSetCloneIsIndependent(t *testing.T) {
	cs := NewCursorSetFromSlice([]Selection{NewSelection(10, 20), NewSelection(30, 40)})
	clone := cs.Clone()

	cs.Add(NewCursorSelection(50))

	if clone.Count() != 2 {
		t.Errorf("clone mutated by edits to original: count = %d", clone.Count())
	}
}

func TestCursorSetEqualsNil(t *testing.T) {
	if NewCursorSetAt(10).Equals(nil) {
		t.Error("Equals(nil) must be false")
	}
}

func TestTransformOffset(t *testing.T) {
	cases := []struct {
		name   string
		offset ByteOffset
		edit   Edit
		want   ByteOffset
	}{
		{"insert before cursor shifts it right", 10, Edit{Range: Range{Start: 0, End: 0}, NewText: "Hello"}, 15},
		{"insert after cursor leaves it", 10, Edit{Range: Range{Start: 20, End: 20}, NewText: "Hello"}, 10},
		{"delete before cursor shifts it left", 10, Edit{Range: Range{Start: 0, End: 5}}, 5},
		{"delete spanning cursor snaps to start", 10, Edit{Range: Range{Start: 5, End: 15}}, 5},
		{"replace net-grows shifts right", 10, Edit{Range: Range{Start: 0, End: 5}, NewText: "0123456789"}, 15},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TransformOffset(tc.offset, tc.edit); got != tc.want {
				t.Errorf("TransformOffset(%d, %+v) = %d, want %d", tc.offset, tc.edit, got, tc.want)
			}
		})
	}
}

func TestTransformOffsetStickyAtInsertionPoint(t *testing.T) {
	edit := Edit{Range: Range{Start: 10, End: 10}, NewText: "xyz"}

	if got := TransformOffsetSticky(10, edit, true); got != 10 {
		t.Errorf("sticky offset at insert point = %d, want 10", got)
	}
	if got := TransformOffsetSticky(10, edit, false); got != 13 {
		t.Errorf("non-sticky offset at insert point = %d, want 13", got)
	}
}

func TestTransformSelectionWithBias(t *testing.T) {
	sel := NewCursorSelection(10)
	edit := Edit{Range: Range{Start: 10, End: 10}, NewText: "xyz"}

	result := TransformSelectionWithBias(sel, edit, true, false)
	if result.Anchor != 10 || result.Head != 13 {
		t.Errorf("TransformSelectionWithBias = %+v, want anchor 10 head 13", result)
	}
}

func TestTransformSelectionShiftsBothEnds(t *testing.T) {
	sel := NewSelection(10, 20)
	edit := Edit{Range: Range{Start: 0, End: 0}, NewText: "Hello"}

	transformed := TransformSelection(sel, edit)
	if transformed.Anchor != 15 || transformed.Head != 25 {
		t.Errorf("TransformSelection = %+v, want anchor 15 head 25", transformed)
	}
}

func TestTransformSelectionCollapsesOnFullDeletion(t *testing.T) {
	sel := NewSelection(10, 20)
	edit := Edit{Range: Range{Start: 10, End: 20}}

	transformed := TransformSelection(sel, edit)
	if transformed.Anchor != 10 || transformed.Head != 10 {
		t.Errorf("fully-deleted selection = %+v, want collapsed at 10", transformed)
	}
}

func TestTransformRangesReordersInvertedBounds(t *testing.T) {
	ranges := []Range{{Start: 5, End: 15}}
	edit := Edit{Range: Range{Start: 5, End: 15}, NewText: ""}

	result := TransformRanges(ranges, edit)
	if result[0].Start != 5 || result[0].End != 5 {
		t.Errorf("TransformRanges collapsed range = %+v, want [5:5)", result[0])
	}
}

func TestTransformCursorSetShiftsEveryCursor(t *testing.T) {
	cs := NewCursorSetFromSlice([]Selection{
		NewCursorSelection(10), NewCursorSelection(20), NewCursorSelection(30),
	})
	edit := Edit{Range: Range{Start: 0, End: 0}, NewText: "Hello"}

	TransformCursorSet(cs, edit)

	sels := cs.All()
	for i, want := range []ByteOffset{15, 25, 35} {
		if sels[i].Head != want {
			t.Errorf("sels[%d].Head() = %d, want %d", i, sels[i].Head, want)
		}
	}
}

func TestTransformCursorSetMultiAppliesNetEffect(t *testing.T) {
	cs := NewCursorSetAt(50)
	edits := []Edit{
		{Range: Range{Start: 0, End: 0}, NewText: "AAAAA"},
		{Range: Range{Start: 10, End: 15}},
		{Range: Range{Start: 20, End: 20}, NewText: "BBBBB"},
	}

	TransformCursorSetMulti(cs, edits)

	if cs.PrimaryCursor() != 55 {
		t.Errorf("PrimaryCursor() = %d, want 55", cs.PrimaryCursor())
	}
}

func TestMultiCursorSimultaneousTyping(t *testing.T) {
	cs := NewCursorSetFromSlice([]Selection{
		NewCursorSelection(10), NewCursorSelection(20), NewCursorSelection(30),
	})
	edits := []Edit{
		{Range: Range{Start: 30, End: 30}, NewText: "x"},
		{Range: Range{Start: 20, End: 20}, NewText: "x"},
		{Range: Range{Start: 10, End: 10}, NewText: "x"},
	}

	TransformCursorSetMulti(cs, edits)

	sels := cs.All()
	for i, want := range []ByteOffset{11, 22, 33} {
		if sels[i].Head != want {
			t.Errorf("sels[%d].Head() = %d, want %d", i, sels[i].Head, want)
		}
	}
}

func TestAdjustForDeletion(t *testing.T) {
	del := Range{Start: 10, End: 20}
	cases := []struct {
		name   string
		offset ByteOffset
		want   ByteOffset
	}{
		{"before deletion", 5, 5},
		{"inside deletion", 15, 10},
		{"after deletion", 25, 15},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := AdjustForDeletion(tc.offset, del); got != tc.want {
				t.Errorf("AdjustForDeletion(%d) = %d, want %d", tc.offset, got, tc.want)
			}
		})
	}
}

func TestAdjustForInsertion(t *testing.T) {
	if got := AdjustForInsertion(5, 10, 3); got != 5 {
		t.Errorf("offset before insertion point should be unchanged, got %d", got)
	}
	if got := AdjustForInsertion(10, 10, 3); got != 13 {
		t.Errorf("offset at insertion point should shift right, got %d", got)
	}
}

func TestComputeEditDelta(t *testing.T) {
	cases := []struct {
		name string
		edit Edit
		want ByteOffset
	}{
		{"insert", Edit{Range: Range{Start: 0, End: 0}, NewText: "Hello"}, 5},
		{"delete", Edit{Range: Range{Start: 0, End: 10}}, -10},
		{"replace grows", Edit{Range: Range{Start: 0, End: 5}, NewText: "HelloWorld"}, 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ComputeEditDelta(tc.edit); got != tc.want {
				t.Errorf("ComputeEditDelta = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestEditsInReverseOrder(t *testing.T) {
	descending := []Edit{
		{Range: Range{Start: 30, End: 35}},
		{Range: Range{Start: 20, End: 25}},
		{Range: Range{Start: 10, End: 15}},
	}
	if !EditsInReverseOrder(descending) {
		t.Error("descending edits should report reverse order")
	}

	ascending := []Edit{
		{Range: Range{Start: 10, End: 15}},
		{Range: Range{Start: 20, End: 25}},
	}
	if EditsInReverseOrder(ascending) {
		t.Error("ascending edits should not report reverse order")
	}
}

func TestSortEditsReverse(t *testing.T) {
	edits := []Edit{
		{Range: Range{Start: 10, End: 15}},
		{Range: Range{Start: 30, End: 35}},
		{Range: Range{Start: 20, End: 25}},
	}

	SortEditsReverse(edits)

	for i, want := range []ByteOffset{30, 20, 10} {
		if edits[i].Range.Start != want {
			t.Errorf("edits[%d].Range.Start = %d, want %d", i, edits[i].Range.Start, want)
		}
	}
}
