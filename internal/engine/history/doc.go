// Package history implements undo/redo for buffer edits using the
// command pattern: every mutation is wrapped in a Command that knows
// how to both apply itself and reverse itself.
//
// An Operation is the low-level record of one edit: the range it
// touched, the text it replaced, the text it inserted, and the cursor
// positions on either side. Commands build one or more Operations as
// they execute and replay their inverses on Undo.
//
// History owns the undo/redo stacks:
//
//	h := history.NewHistory(1000)
//	h.Execute(history.NewInsertCommand("x"), buf, cursors)
//	h.Undo(buf, cursors)
//	h.Redo(buf, cursors)
//
// Related edits can be grouped so a single undo reverses all of them:
//
//	h.BeginGroup("Find and Replace")
//	// ... apply several commands ...
//	h.EndGroup()
//
// GroupScope and Transaction in group.go wrap that pattern for
// defer-based and function-based callers respectively.
//
// Every Command restores cursor positions as part of Undo/Redo, so
// callers never need to track cursor state themselves across an
// undo/redo cycle.
package history
