package history

import (
	"time"

	"github.com/ghostkellz/grim/internal/engine/buffer"
	"github.com/ghostkellz/grim/internal/engine/cursor"
)

// ByteOffset mirrors buffer.ByteOffset.
type ByteOffset = buffer.ByteOffset

// Range mirrors buffer.Range.
type Range = buffer.Range

// Selection mirrors cursor.Selection.
type Selection = cursor.Selection

// Operation is the record of one undoable edit: what range of the
// document changed, the text on both sides of the change, and the
// cursor positions that went with it.
type Operation struct {
	Range   Range
	OldText string
	NewText string

	CursorsBefore []Selection
	CursorsAfter  []Selection

	Timestamp time.Time
}

// NewOperation builds an operation from raw range and text fields.
func NewOperation(r Range, oldText, newText string) *Operation {
	return &Operation{Range: r, OldText: oldText, NewText: newText, Timestamp: time.Now()}
}

// NewInsertOperation builds an operation representing inserting text
// at offset, with nothing replaced.
func NewInsertOperation(offset ByteOffset, text string) *Operation {
	return NewOperation(Range{Start: offset, End: offset}, "", text)
}

// NewDeleteOperation builds an operation representing removing
// deletedText from r, with nothing inserted in its place.
func NewDeleteOperation(r Range, deletedText string) *Operation {
	return NewOperation(r, deletedText, "")
}

// NewReplaceOperation builds an operation representing swapping
// oldText in r for newText.
func NewReplaceOperation(r Range, oldText, newText string) *Operation {
	return NewOperation(r, oldText, newText)
}

// IsInsert reports whether op added text without removing any.
func (op *Operation) IsInsert() bool {
	return op.Range.IsEmpty() && len(op.NewText) > 0
}

// IsDelete reports whether op removed text without adding any.
func (op *Operation) IsDelete() bool {
	return !op.Range.IsEmpty() && len(op.NewText) == 0
}

// IsReplace reports whether op both removed and added text.
func (op *Operation) IsReplace() bool {
	return !op.Range.IsEmpty() && len(op.NewText) > 0
}

// IsNoop reports whether op changed nothing.
func (op *Operation) IsNoop() bool {
	return op.Range.IsEmpty() && len(op.NewText) == 0
}

// BytesDelta reports the net change in document length op caused.
func (op *Operation) BytesDelta() int {
	return len(op.NewText) - int(op.Range.Len())
}

// NewRange returns the span op.NewText occupies after the edit.
func (op *Operation) NewRange() Range {
	return Range{Start: op.Range.Start, End: op.Range.Start + ByteOffset(len(op.NewText))}
}

// Invert returns the operation that undoes op: old and new text swap,
// as do the before/after cursor snapshots.
func (op *Operation) Invert() *Operation {
	return &Operation{
		Range:         op.NewRange(),
		OldText:       op.NewText,
		NewText:       op.OldText,
		CursorsBefore: op.CursorsAfter,
		CursorsAfter:  op.CursorsBefore,
		Timestamp:     time.Now(),
	}
}

// WithCursors attaches before/after cursor snapshots and returns op
// for chaining.
func (op *Operation) WithCursors(before, after []Selection) *Operation {
	op.CursorsBefore = before
	op.CursorsAfter = after
	return op
}

// Clone returns an independent copy of op.
func (op *Operation) Clone() *Operation {
	clone := &Operation{Range: op.Range, OldText: op.OldText, NewText: op.NewText, Timestamp: op.Timestamp}
	if op.CursorsBefore != nil {
		clone.CursorsBefore = append([]Selection(nil), op.CursorsBefore...)
	}
	if op.CursorsAfter != nil {
		clone.CursorsAfter = append([]Selection(nil), op.CursorsAfter...)
	}
	return clone
}

// OperationInfo is a read-only summary of a past operation, suitable
// for rendering an undo/redo list to a user without exposing the full
// text it touched.
type OperationInfo struct {
	Description string
	Timestamp   time.Time
	BytesDelta  int
}

// OperationList is a sequence of operations applied as a unit.
type OperationList []*Operation

// Invert returns the inverse of every operation in ops, in reverse
// application order.
func (ops OperationList) Invert() OperationList {
	inverted := make(OperationList, len(ops))
	for i, op := range ops {
		inverted[len(ops)-1-i] = op.Invert()
	}
	return inverted
}

// TotalBytesDelta sums BytesDelta across every operation in ops.
func (ops OperationList) TotalBytesDelta() int {
	var total int
	for _, op := range ops {
		total += op.BytesDelta()
	}
	return total
}
