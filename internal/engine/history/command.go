package history

import (
	"fmt"
	"unicode/utf8"

	"github.com/ghostkellz/grim/internal/engine/buffer"
	"github.com/ghostkellz/grim/internal/engine/cursor"
)

// Command is a composable edit action that knows how to apply and
// reverse itself against a buffer and its cursor set.
type Command interface {
	Execute(buf *buffer.Buffer, cursors *cursor.CursorSet) error
	Undo(buf *buffer.Buffer, cursors *cursor.CursorSet) error
	Description() string
}

// reverseSelections reverses sels in place and returns it, used to
// restore cursor order after operations were recorded highest-offset
// first.
func reverseSelections(sels []Selection) []Selection {
	for i, j := 0, len(sels)-1; i < j; i, j = i+1, j-1 {
		sels[i], sels[j] = sels[j], sels[i]
	}
	return sels
}

// undoViaInverses replays the inverse of every operation in ops,
// highest-index first, restoring the buffer to the state before the
// forward pass and then resetting cursors to the recorded before-state.
func undoViaInverses(buf *buffer.Buffer, cursors *cursor.CursorSet, ops OperationList) error {
	for i := len(ops) - 1; i >= 0; i-- {
		inv := ops[i].Invert()
		if _, err := buf.Replace(inv.Range.Start, inv.Range.End, inv.NewText); err != nil {
			return err
		}
	}

	var restored []Selection
	for _, op := range ops {
		restored = append(restored, op.CursorsBefore...)
	}
	cursors.SetAll(reverseSelections(restored))
	return nil
}

// InsertCommand inserts the same text at every cursor/selection,
// replacing any selected text.
type InsertCommand struct {
	Text       string
	operations OperationList
}

// NewInsertCommand builds a command that inserts text.
func NewInsertCommand(text string) *InsertCommand {
	return &InsertCommand{Text: text}
}

// Execute inserts c.Text at every cursor, processing cursors from the
// highest offset down so earlier edits don't disturb the offsets of
// ones still to come.
func (c *InsertCommand) Execute(buf *buffer.Buffer, cursors *cursor.CursorSet) error {
	if c.Text == "" {
		return nil
	}
	c.operations = nil

	sels := cursors.All()
	if len(sels) == 0 {
		return nil
	}

	for i := len(sels) - 1; i >= 0; i-- {
		sel := sels[i]
		r := sel.Range()

		var oldText string
		if !r.IsEmpty() {
			oldText = buf.TextRange(r.Start, r.End)
		}

		newEnd, err := buf.Replace(r.Start, r.End, c.Text)
		if err != nil {
			return fmt.Errorf("insert at offset %d: %w", r.Start, err)
		}

		op := NewReplaceOperation(r, oldText, c.Text)
		op.CursorsBefore = []Selection{sel}
		op.CursorsAfter = []Selection{cursor.NewCursorSelection(newEnd)}
		c.operations = append(c.operations, op)
	}

	newSels := make([]Selection, len(sels))
	newLen := ByteOffset(len(c.Text))
	var delta ByteOffset
	for i, sel := range sels {
		r := sel.Range()
		newSels[i] = cursor.NewCursorSelection(r.Start + delta + newLen)
		delta += newLen - r.Len()
	}
	cursors.SetAll(newSels)
	return nil
}

// Undo removes the text this command inserted and restores the prior
// cursor state.
func (c *InsertCommand) Undo(buf *buffer.Buffer, cursors *cursor.CursorSet) error {
	if len(c.operations) == 0 {
		return nil
	}
	if err := undoViaInverses(buf, cursors, c.operations); err != nil {
		return fmt.Errorf("undo insert: %w", err)
	}
	return nil
}

// Description renders a short label for the undo/redo list.
func (c *InsertCommand) Description() string {
	switch c.Text {
	case "\n":
		return "Insert newline"
	case "\t":
		return "Insert tab"
	}
	runes := utf8.RuneCountInString(c.Text)
	if runes == 1 {
		return fmt.Sprintf("Type '%s'", c.Text)
	}
	if runes <= 20 {
		return fmt.Sprintf("Insert \"%s\"", c.Text)
	}
	return fmt.Sprintf("Insert %d characters", runes)
}

// DeleteDirection picks which side of the cursor a bare-cursor delete
// removes text from.
type DeleteDirection int

const (
	// DeleteBackward removes text before the cursor (Backspace).
	DeleteBackward DeleteDirection = iota
	// DeleteForward removes text after the cursor (Delete).
	DeleteForward
)

// DeleteCommand removes text at every cursor/selection: selections
// delete their own span, bare cursors delete Count units in Direction.
type DeleteCommand struct {
	Direction  DeleteDirection
	Count      int
	operations OperationList
}

// NewDeleteCommand builds a command deleting a single unit.
func NewDeleteCommand(direction DeleteDirection) *DeleteCommand {
	return NewDeleteCommandN(direction, 1)
}

// NewDeleteCommandN builds a command deleting count units, floored
// at 1.
func NewDeleteCommandN(direction DeleteDirection, count int) *DeleteCommand {
	if count < 1 {
		count = 1
	}
	return &DeleteCommand{Direction: direction, Count: count}
}

// deleteRangeFor computes the byte range a bare cursor at sel.Head
// deletes, clamped to the buffer's bounds.
func (c *DeleteCommand) deleteRangeFor(sel Selection, bufLen ByteOffset) Range {
	if !sel.IsEmpty() {
		return sel.Range()
	}
	pos := sel.Head
	if c.Direction == DeleteBackward {
		start := pos
		for j := 0; j < c.Count && start > 0; j++ {
			start--
		}
		return Range{Start: start, End: pos}
	}
	end := pos
	for j := 0; j < c.Count && end < bufLen; j++ {
		end++
	}
	return Range{Start: pos, End: end}
}

// Execute deletes at every cursor/selection, highest offset first.
func (c *DeleteCommand) Execute(buf *buffer.Buffer, cursors *cursor.CursorSet) error {
	c.operations = nil

	sels := cursors.All()
	if len(sels) == 0 {
		return nil
	}

	for i := len(sels) - 1; i >= 0; i-- {
		sel := sels[i]
		deleteRange := c.deleteRangeFor(sel, buf.Len())
		if deleteRange.IsEmpty() {
			continue
		}

		oldText := buf.TextRange(deleteRange.Start, deleteRange.End)
		if err := buf.Delete(deleteRange.Start, deleteRange.End); err != nil {
			return fmt.Errorf("delete at range [%d,%d): %w", deleteRange.Start, deleteRange.End, err)
		}

		op := NewDeleteOperation(deleteRange, oldText)
		op.CursorsBefore = []Selection{sel}
		op.CursorsAfter = []Selection{cursor.NewCursorSelection(deleteRange.Start)}
		c.operations = append(c.operations, op)
	}

	newSels := make([]Selection, 0, len(sels))
	var delta ByteOffset
	for _, sel := range sels {
		var newPos ByteOffset
		var deleted ByteOffset

		switch {
		case !sel.IsEmpty():
			newPos = sel.Start() + delta
			deleted = sel.Len()
		case c.Direction == DeleteBackward:
			start := sel.Head
			for j := 0; j < c.Count && start > 0; j++ {
				start--
			}
			newPos = start + delta
			deleted = sel.Head - start
		default:
			newPos = sel.Head + delta
			deleted = ByteOffset(c.Count)
			if remaining := buf.Len() - sel.Head; remaining < deleted {
				deleted = remaining
			}
		}

		newSels = append(newSels, cursor.NewCursorSelection(newPos))
		delta -= deleted
	}
	cursors.SetAll(newSels)
	return nil
}

// Undo restores the deleted text and prior cursor positions.
func (c *DeleteCommand) Undo(buf *buffer.Buffer, cursors *cursor.CursorSet) error {
	if len(c.operations) == 0 {
		return nil
	}
	if err := undoViaInverses(buf, cursors, c.operations); err != nil {
		return fmt.Errorf("undo delete: %w", err)
	}
	return nil
}

// Description renders a short label for the undo/redo list.
func (c *DeleteCommand) Description() string {
	verb := "Delete"
	if c.Direction == DeleteBackward {
		verb = "Backspace"
	}
	if c.Count == 1 {
		return verb
	}
	return fmt.Sprintf("%s %d characters", verb, c.Count)
}

// ReplaceCommand swaps the text in a fixed range for NewText,
// independent of the current cursor set.
type ReplaceCommand struct {
	Range      Range
	NewText    string
	operations OperationList
}

// NewReplaceCommand builds a command replacing r with newText.
func NewReplaceCommand(r Range, newText string) *ReplaceCommand {
	return &ReplaceCommand{Range: r, NewText: newText}
}

// Execute replaces c.Range with c.NewText and transforms every cursor
// to account for the edit.
func (c *ReplaceCommand) Execute(buf *buffer.Buffer, cursors *cursor.CursorSet) error {
	c.operations = nil

	before := cursors.All()
	oldText := buf.TextRange(c.Range.Start, c.Range.End)

	if _, err := buf.Replace(c.Range.Start, c.Range.End, c.NewText); err != nil {
		return fmt.Errorf("replace at range [%d,%d): %w", c.Range.Start, c.Range.End, err)
	}

	cursor.TransformCursorSet(cursors, buffer.Edit{Range: c.Range, NewText: c.NewText})

	op := NewReplaceOperation(c.Range, oldText, c.NewText)
	op.CursorsBefore = before
	op.CursorsAfter = cursors.All()
	c.operations = append(c.operations, op)
	return nil
}

// Undo restores the replaced text and cursor positions.
func (c *ReplaceCommand) Undo(buf *buffer.Buffer, cursors *cursor.CursorSet) error {
	if len(c.operations) == 0 {
		return nil
	}
	inv := c.operations[0].Invert()
	if _, err := buf.Replace(inv.Range.Start, inv.Range.End, inv.NewText); err != nil {
		return fmt.Errorf("undo replace: %w", err)
	}
	cursors.SetAll(c.operations[0].CursorsBefore)
	return nil
}

// Description renders a short label for the undo/redo list.
func (c *ReplaceCommand) Description() string {
	oldLen := c.Range.Len()
	newLen := utf8.RuneCountInString(c.NewText)
	switch {
	case oldLen == 0:
		return fmt.Sprintf("Insert %d characters", newLen)
	case newLen == 0:
		return fmt.Sprintf("Delete %d characters", oldLen)
	default:
		return fmt.Sprintf("Replace %d with %d characters", oldLen, newLen)
	}
}

// CompoundCommand bundles several commands so they execute, undo, and
// redo as a single unit.
type CompoundCommand struct {
	Name     string
	Commands []Command
}

// NewCompoundCommand builds a compound from an ordered list of
// commands.
func NewCompoundCommand(name string, commands ...Command) *CompoundCommand {
	return &CompoundCommand{Name: name, Commands: commands}
}

// Execute runs every command in order; if one fails, the commands
// already run are undone before the error is returned.
func (c *CompoundCommand) Execute(buf *buffer.Buffer, cursors *cursor.CursorSet) error {
	for i, cmd := range c.Commands {
		if err := cmd.Execute(buf, cursors); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = c.Commands[j].Undo(buf, cursors)
			}
			return fmt.Errorf("compound command '%s' step %d: %w", c.Name, i, err)
		}
	}
	return nil
}

// Undo reverses every command in the compound, last-applied first.
func (c *CompoundCommand) Undo(buf *buffer.Buffer, cursors *cursor.CursorSet) error {
	for i := len(c.Commands) - 1; i >= 0; i-- {
		if err := c.Commands[i].Undo(buf, cursors); err != nil {
			return fmt.Errorf("undo compound command '%s' step %d: %w", c.Name, i, err)
		}
	}
	return nil
}

// Description returns the compound's name, or a fallback derived from
// its contents when no name was given.
func (c *CompoundCommand) Description() string {
	if c.Name != "" {
		return c.Name
	}
	if len(c.Commands) == 1 {
		return c.Commands[0].Description()
	}
	return fmt.Sprintf("%d operations", len(c.Commands))
}

// Add appends cmd to the compound.
func (c *CompoundCommand) Add(cmd Command) {
	c.Commands = append(c.Commands, cmd)
}

// IsEmpty reports whether the compound holds no commands.
func (c *CompoundCommand) IsEmpty() bool {
	return len(c.Commands) == 0
}
