// Package history provides undo/redo for voxtune projects.
//
// Every field edit is described by a Diff: the kind of field, the key of the
// audio item, and the value before and after. Key concepts:
//
// # Apply and Commit
//
// Apply performs an edit on the project, fills in the previous value, and
// buffers the Diff. Continuous gestures such as dragging a slider call Apply
// for every intermediate value and Commit once on release:
//
//	h := NewHistory()
//
//	h.Apply(ParameterDiff(KindPitch, key, 0.01), p)
//	h.Apply(ParameterDiff(KindPitch, key, 0.05), p)
//	h.Apply(ParameterDiff(KindPitch, key, 0.10), p)
//	h.Commit() // one undo entry: 0.00 -> 0.10
//
// Commit squashes the buffer into one entry when its first and last diffs
// target the same field of the same item. Mixed buffers are pushed entry by
// entry and reported through the logger.
//
// # Undo and Redo
//
// Undo and Redo move single entries between the two stacks and write the
// before or after value back into the project. Any Apply clears the redo
// stack. Edits on items that no longer exist are skipped silently.
//
// # History View
//
// View projects both stacks into a most-recent-first list around a
// "Latest" marker and flags the row matching the project's current state.
//
// History is not safe for concurrent use.
package history
