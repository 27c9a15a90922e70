package engine

import "errors"

// Sentinel errors an Engine's public methods can return. Sub-packages
// (buffer, history, tracking) define their own equivalents for the same
// conditions; these are the ones the top-level Engine API surfaces.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
	ErrEditsOverlap     = errors.New("edits overlap or are not in reverse order")

	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")

	ErrSnapshotNotFound = errors.New("snapshot not found")
	ErrRevisionNotFound = errors.New("revision not found")

	// ErrReadOnly is returned by every mutating Engine method when the
	// engine was constructed with WithReadOnly().
	ErrReadOnly = errors.New("engine is read-only")
)
