package history

import (
	"errors"
	"sync"
	"time"

	"github.com/ghostkellz/grim/internal/engine/buffer"
	"github.com/ghostkellz/grim/internal/engine/cursor"
)

// Errors returned by History's undo/redo operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

const defaultMaxEntries = 1000

// entry pairs a command with when it was pushed, for UndoInfo/RedoInfo.
type entry struct {
	command Command
	at      time.Time
}

// History is a buffer's undo/redo manager: two stacks of commands,
// plus grouping state for combining several commands into one undo
// unit.
type History struct {
	mu sync.Mutex

	undoStack []*entry
	redoStack []*entry

	grouping  bool
	groupName string
	groupCmds []Command

	maxEntries int
}

// NewHistory builds a History capped at maxEntries undo steps
// (defaultMaxEntries if maxEntries is non-positive).
func NewHistory(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}
	return &History{maxEntries: maxEntries}
}

// Execute runs cmd against buf/cursors and, on success, records it.
func (h *History) Execute(cmd Command, buf *buffer.Buffer, cursors *cursor.CursorSet) error {
	if err := cmd.Execute(buf, cursors); err != nil {
		return err
	}
	h.Push(cmd)
	return nil
}

// Push records cmd on the undo stack (or the active group, if one is
// open) and clears the redo stack.
func (h *History) Push(cmd Command) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.grouping {
		h.groupCmds = append(h.groupCmds, cmd)
		return
	}
	h.pushLocked(cmd)
}

func (h *History) pushLocked(cmd Command) {
	h.undoStack = append(h.undoStack, &entry{command: cmd, at: time.Now()})
	h.redoStack = nil

	if over := len(h.undoStack) - h.maxEntries; over > 0 {
		h.undoStack = h.undoStack[over:]
	}
}

// Undo reverses the most recent command. The lock is released while
// the command's Undo runs, since buffer mutation can take a while and
// shouldn't block other History readers.
func (h *History) Undo(buf *buffer.Buffer, cursors *cursor.CursorSet) error {
	h.mu.Lock()
	if len(h.undoStack) == 0 {
		h.mu.Unlock()
		return ErrNothingToUndo
	}
	e := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.mu.Unlock()

	if err := e.command.Undo(buf, cursors); err != nil {
		h.mu.Lock()
		h.undoStack = append(h.undoStack, e)
		h.mu.Unlock()
		return err
	}

	h.mu.Lock()
	h.redoStack = append(h.redoStack, e)
	h.mu.Unlock()
	return nil
}

// Redo re-applies the most recently undone command, same locking
// discipline as Undo.
func (h *History) Redo(buf *buffer.Buffer, cursors *cursor.CursorSet) error {
	h.mu.Lock()
	if len(h.redoStack) == 0 {
		h.mu.Unlock()
		return ErrNothingToRedo
	}
	e := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.mu.Unlock()

	if err := e.command.Execute(buf, cursors); err != nil {
		h.mu.Lock()
		h.redoStack = append(h.redoStack, e)
		h.mu.Unlock()
		return err
	}

	h.mu.Lock()
	h.undoStack = append(h.undoStack, e)
	h.mu.Unlock()
	return nil
}

// CanUndo reports whether Undo would succeed.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo reports whether Redo would succeed.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount reports how many undo steps are available.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount reports how many redo steps are available.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// BeginGroup opens a command group named name. Nested calls while
// already grouping are ignored — groups don't nest.
func (h *History) BeginGroup(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.grouping {
		return
	}
	h.grouping = true
	h.groupName = name
	h.groupCmds = nil
}

// EndGroup closes the open group, bundling everything pushed since
// BeginGroup into a single CompoundCommand on the undo stack. A group
// with no commands pushed is discarded silently.
func (h *History) EndGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.grouping {
		return
	}
	h.grouping = false

	if len(h.groupCmds) == 0 {
		return
	}
	h.pushLocked(&CompoundCommand{Name: h.groupName, Commands: h.groupCmds})
	h.groupCmds = nil
}

// CancelGroup closes the open group without recording anything.
// Commands already executed remain applied to the buffer; only the
// history entry is dropped.
func (h *History) CancelGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.grouping = false
	h.groupCmds = nil
}

// IsGrouping reports whether a group is currently open.
func (h *History) IsGrouping() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.grouping
}

// Clear discards all undo/redo history and any open group.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.undoStack = nil
	h.redoStack = nil
	h.grouping = false
	h.groupCmds = nil
}

func infoFor(e *entry) OperationInfo {
	return OperationInfo{Description: e.command.Description(), Timestamp: e.at}
}

// UndoInfo summarizes every available undo step, oldest first.
func (h *History) UndoInfo() []OperationInfo {
	h.mu.Lock()
	defer h.mu.Unlock()
	result := make([]OperationInfo, len(h.undoStack))
	for i, e := range h.undoStack {
		result[i] = infoFor(e)
	}
	return result
}

// RedoInfo summarizes every available redo step, oldest first.
func (h *History) RedoInfo() []OperationInfo {
	h.mu.Lock()
	defer h.mu.Unlock()
	result := make([]OperationInfo, len(h.redoStack))
	for i, e := range h.redoStack {
		result[i] = infoFor(e)
	}
	return result
}

// PeekUndo returns info about the next Undo without consuming it.
func (h *History) PeekUndo() (OperationInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.undoStack) == 0 {
		return OperationInfo{}, false
	}
	return infoFor(h.undoStack[len(h.undoStack)-1]), true
}

// PeekRedo returns info about the next Redo without consuming it.
func (h *History) PeekRedo() (OperationInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.redoStack) == 0 {
		return OperationInfo{}, false
	}
	return infoFor(h.redoStack[len(h.redoStack)-1]), true
}

// SetMaxEntries changes the undo-stack cap, trimming the oldest
// entries immediately if the stack currently exceeds it.
func (h *History) SetMaxEntries(max int) {
	if max <= 0 {
		max = defaultMaxEntries
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.maxEntries = max
	if over := len(h.undoStack) - max; over > 0 {
		h.undoStack = h.undoStack[over:]
	}
}

// MaxEntries reports the current undo-stack cap.
func (h *History) MaxEntries() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxEntries
}
