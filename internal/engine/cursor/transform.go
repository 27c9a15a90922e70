package cursor

import (
	"sort"

	"github.com/ghostkellz/grim/internal/engine/buffer"
)

// Edit mirrors buffer.Edit.
type Edit = buffer.Edit

// TransformOffset recomputes offset after edit has been applied to
// the buffer it lives in:
//   - edit entirely before offset: shift by the edit's length delta
//   - edit at or after offset: unaffected
//   - edit spans offset: snap to the end of the edit's replacement text
func TransformOffset(offset ByteOffset, edit Edit) ByteOffset {
	switch {
	case edit.Range.End <= offset:
		return offset - edit.Range.Len() + ByteOffset(len(edit.NewText))
	case edit.Range.Start >= offset:
		return offset
	default:
		return edit.Range.Start + ByteOffset(len(edit.NewText))
	}
}

// TransformOffsetSticky is TransformOffset with control over what
// happens when edit is a zero-length insertion landing exactly at
// offset: sticky keeps offset where it was, non-sticky advances it
// past the inserted text.
func TransformOffsetSticky(offset ByteOffset, edit Edit, sticky bool) ByteOffset {
	isInsertAtOffset := edit.Range.Start == offset && edit.Range.Start == edit.Range.End
	if isInsertAtOffset {
		if sticky {
			return offset
		}
		return offset + ByteOffset(len(edit.NewText))
	}

	if edit.Range.End <= offset {
		return offset - edit.Range.Len() + ByteOffset(len(edit.NewText))
	}

	if edit.Range.Start >= offset {
		return offset
	}
	return edit.Range.Start + ByteOffset(len(edit.NewText))
}

// TransformCursor applies TransformOffset to a Cursor.
func TransformCursor(c Cursor, edit Edit) Cursor {
	return NewCursor(TransformOffset(c.offset, edit))
}

// TransformSelection transforms both ends of sel independently.
func TransformSelection(sel Selection, edit Edit) Selection {
	return Selection{
		Anchor: TransformOffset(sel.Anchor, edit),
		Head:   TransformOffset(sel.Head, edit),
	}
}

// TransformSelectionWithBias is TransformSelection with independent
// sticky behavior per end — typically anchorSticky=true (the anchor
// holds its ground on an insert) and headSticky=false (the head, i.e.
// the typing position, rides the insert forward).
func TransformSelectionWithBias(sel Selection, edit Edit, anchorSticky, headSticky bool) Selection {
	return Selection{
		Anchor: TransformOffsetSticky(sel.Anchor, edit, anchorSticky),
		Head:   TransformOffsetSticky(sel.Head, edit, headSticky),
	}
}

// TransformCursorSet transforms every selection in cs after edit.
func TransformCursorSet(cs *CursorSet, edit Edit) {
	for i := range cs.selections {
		cs.selections[i] = TransformSelection(cs.selections[i], edit)
	}
	cs.normalize()
}

// TransformCursorSetMulti applies a batch of edits to cs. edits must
// be in application order; they are walked in reverse so each edit's
// shift doesn't corrupt the positions of edits applied before it.
func TransformCursorSetMulti(cs *CursorSet, edits []Edit) {
	for i := len(edits) - 1; i >= 0; i-- {
		TransformCursorSet(cs, edits[i])
	}
}

// TransformRanges transforms a batch of independent ranges after
// edit, re-ordering each range's bounds if the edit inverted it.
func TransformRanges(ranges []Range, edit Edit) []Range {
	result := make([]Range, len(ranges))
	for i, r := range ranges {
		start := TransformOffset(r.Start, edit)
		end := TransformOffset(r.End, edit)
		if start > end {
			start, end = end, start
		}
		result[i] = Range{Start: start, End: end}
	}
	return result
}

// AdjustForDeletion moves offset for a deletion of deleteRange: offsets
// before it are untouched, offsets inside it collapse to its start,
// offsets after it shift left by the deleted length.
func AdjustForDeletion(offset ByteOffset, deleteRange Range) ByteOffset {
	switch {
	case offset <= deleteRange.Start:
		return offset
	case offset < deleteRange.End:
		return deleteRange.Start
	default:
		return offset - deleteRange.Len()
	}
}

// AdjustForInsertion moves offset for an insertion of insertLen bytes
// at insertOffset: offsets before the insertion point are untouched,
// offsets at or after it shift right.
func AdjustForInsertion(offset, insertOffset, insertLen ByteOffset) ByteOffset {
	if offset < insertOffset {
		return offset
	}
	return offset + insertLen
}

// ComputeEditDelta returns how much edit changes the document's
// length (negative for a net deletion).
func ComputeEditDelta(edit Edit) ByteOffset {
	return ByteOffset(len(edit.NewText)) - edit.Range.Len()
}

// EditsInReverseOrder reports whether edits are sorted by strictly
// descending start position — the order TransformCursorSetMulti and
// buffer.ApplyEdits both require for safe batch application.
func EditsInReverseOrder(edits []Edit) bool {
	for i := 1; i < len(edits); i++ {
		if edits[i].Range.Start >= edits[i-1].Range.Start {
			return false
		}
	}
	return true
}

// SortEditsReverse sorts edits by descending start position in place.
func SortEditsReverse(edits []Edit) {
	sort.Slice(edits, func(i, j int) bool {
		return edits[i].Range.Start > edits[j].Range.Start
	})
}
