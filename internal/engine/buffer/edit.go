package buffer

import "fmt"

// Edit describes a single text mutation: replace Range with NewText.
// An empty Range is a pure insertion; empty NewText is a pure deletion.
type Edit struct {
	Range   Range
	NewText string
}

// NewEdit builds an Edit that replaces r with newText.
func NewEdit(r Range, newText string) Edit {
	return Edit{Range: r, NewText: newText}
}

// NewInsert builds an Edit that inserts text at offset with no
// deletion.
func NewInsert(offset ByteOffset, text string) Edit {
	return Edit{Range: Range{Start: offset, End: offset}, NewText: text}
}

// NewDelete builds an Edit that removes [start, end) with no
// replacement text.
func NewDelete(start, end ByteOffset) Edit {
	return Edit{Range: Range{Start: start, End: end}, NewText: ""}
}

// IsInsert reports whether e inserts without deleting anything.
func (e Edit) IsInsert() bool {
	return e.Range.IsEmpty() && e.NewText != ""
}

// IsDelete reports whether e deletes without inserting anything.
func (e Edit) IsDelete() bool {
	return !e.Range.IsEmpty() && e.NewText == ""
}

// IsReplace reports whether e both deletes and inserts.
func (e Edit) IsReplace() bool {
	return !e.Range.IsEmpty() && e.NewText != ""
}

// IsNoOp reports whether e changes nothing.
func (e Edit) IsNoOp() bool {
	return e.Range.IsEmpty() && e.NewText == ""
}

// Delta reports the net change in document length e would cause.
func (e Edit) Delta() ByteOffset {
	return ByteOffset(len(e.NewText)) - e.Range.Len()
}

// Clamp confines e's Range to a document of the given length, trimming
// a stale edit (queued before an earlier edit shrank the document)
// rather than letting it fail out-of-range.
func (e Edit) Clamp(length ByteOffset) Edit {
	return Edit{Range: e.Range.Clamp(length), NewText: e.NewText}
}

// String renders e as Insert/Delete/Replace, matching whichever of
// IsInsert/IsDelete/IsReplace applies.
func (e Edit) String() string {
	switch {
	case e.Range.IsEmpty():
		return fmt.Sprintf("Insert(%d, %q)", e.Range.Start, e.NewText)
	case e.NewText == "":
		return fmt.Sprintf("Delete%s", e.Range.String())
	default:
		return fmt.Sprintf("Replace%s with %q", e.Range.String(), e.NewText)
	}
}

// EditResult reports what an applied Edit actually did: the range it
// touched before and after, the text it removed, and the resulting
// length delta.
type EditResult struct {
	OldRange Range
	NewRange Range
	OldText  string
	Delta    int64
}

// ChangeType classifies a Change as an insertion, deletion, or
// replacement.
type ChangeType uint8

const (
	ChangeInsert ChangeType = iota
	ChangeDelete
	ChangeReplace
)

// String names c.
func (c ChangeType) String() string {
	switch c {
	case ChangeInsert:
		return "insert"
	case ChangeDelete:
		return "delete"
	case ChangeReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Change is a recorded mutation of the buffer, carrying enough
// information (old and new text, old and new range) for the undo
// engine to reconstruct its inverse without re-reading the document.
type Change struct {
	Type     ChangeType
	Range    Range
	NewRange Range
	OldText  string
	NewText  string
}

// ToEdit converts c back into the Edit that would (re)apply it.
func (c Change) ToEdit() Edit {
	return Edit{Range: c.Range, NewText: c.NewText}
}

// Invert returns the Change that undoes c.
func (c Change) Invert() Change {
	switch c.Type {
	case ChangeInsert:
		return Change{Type: ChangeDelete, Range: c.NewRange, OldText: c.NewText}
	case ChangeDelete:
		return Change{
			Type:     ChangeInsert,
			Range:    Range{Start: c.Range.Start, End: c.Range.Start},
			NewRange: c.Range,
			NewText:  c.OldText,
		}
	case ChangeReplace:
		return Change{
			Type:     ChangeReplace,
			Range:    c.NewRange,
			NewRange: c.Range,
			OldText:  c.NewText,
			NewText:  c.OldText,
		}
	default:
		return c
	}
}
