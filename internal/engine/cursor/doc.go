// Package cursor tracks insertion points and selections over a buffer,
// and keeps them valid as the buffer underneath them is edited.
//
// Selection uses an anchor/head model: Anchor marks where a selection
// began, Head is the live edge (where typing or further extension
// happens). Anchor == Head means the selection is a bare cursor.
// Because Head can be less than Anchor, a selection remembers which
// direction it was made in, which matters for commands like "extend
// selection to word boundary" that care which end is moving.
//
// CursorSet holds the selections for a multi-cursor edit session. It
// keeps them sorted by position and merges ones that overlap or touch,
// so "type the same text at every cursor" never produces two cursors
// pointing into the same edited span.
//
// TransformOffset and its selection/cursor-set wrappers are what keep
// positions correct as the buffer mutates underneath them: call them
// with each buffer.Edit as it's applied, in the order the edits were
// applied, and every stored offset lands where the user would expect.
//
// Cursor and Selection are immutable value types, safe to share across
// goroutines. CursorSet is not; callers editing one concurrently must
// supply their own locking.
package cursor
