package history

import (
	"github.com/ghostkellz/grim/internal/engine/buffer"
	"github.com/ghostkellz/grim/internal/engine/cursor"
)

// GroupScope is a defer-friendly handle for a command group:
//
//	defer h.GroupScope("Complex Edit").End()
//	// ... multiple edits ...
type GroupScope struct {
	history *History
	active  bool
}

// GroupScope begins a group and returns a scope whose End (or
// Cancel) closes it.
func (h *History) GroupScope(name string) *GroupScope {
	h.BeginGroup(name)
	return &GroupScope{history: h, active: true}
}

// End closes the scope normally, committing its commands as one
// undo unit. Idempotent.
func (g *GroupScope) End() {
	if !g.active {
		return
	}
	g.history.EndGroup()
	g.active = false
}

// Cancel closes the scope without recording a compound command.
// Any buffer edits already applied by commands in the scope remain
// in effect — only the history entry is discarded.
func (g *GroupScope) Cancel() {
	if !g.active {
		return
	}
	g.history.CancelGroup()
	g.active = false
}

// Transaction runs fn inside a named group, committing the group if
// fn succeeds and cancelling it if fn returns an error.
func (h *History) Transaction(name string, fn func() error) error {
	h.BeginGroup(name)
	if err := fn(); err != nil {
		h.CancelGroup()
		return err
	}
	h.EndGroup()
	return nil
}

// ExecuteGrouped runs cmds against buf/cursors as a single undo unit.
// A single command skips the grouping machinery entirely.
func (h *History) ExecuteGrouped(name string, buf *buffer.Buffer, cursors *cursor.CursorSet, cmds ...Command) error {
	if len(cmds) == 0 {
		return nil
	}
	if len(cmds) == 1 {
		return h.Execute(cmds[0], buf, cursors)
	}

	h.BeginGroup(name)
	for _, cmd := range cmds {
		if err := h.Execute(cmd, buf, cursors); err != nil {
			h.CancelGroup()
			return err
		}
	}
	h.EndGroup()
	return nil
}

// Checkpoint marks a position in the undo stack to later rewind to.
type Checkpoint struct {
	undoDepth int
}

// CreateCheckpoint captures the current undo-stack depth.
func (h *History) CreateCheckpoint() Checkpoint {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Checkpoint{undoDepth: len(h.undoStack)}
}

// UndoToCheckpoint undoes repeatedly until the stack is back at cp's
// depth.
func (h *History) UndoToCheckpoint(cp Checkpoint, buf *buffer.Buffer, cursors *cursor.CursorSet) error {
	for h.UndoCount() > cp.undoDepth {
		if err := h.Undo(buf, cursors); err != nil {
			return err
		}
	}
	return nil
}

// RedoToCheckpoint redoes repeatedly until the stack reaches cp's
// depth or the redo stack runs out.
func (h *History) RedoToCheckpoint(cp Checkpoint, buf *buffer.Buffer, cursors *cursor.CursorSet) error {
	for h.UndoCount() < cp.undoDepth && h.CanRedo() {
		if err := h.Redo(buf, cursors); err != nil {
			return err
		}
	}
	return nil
}
