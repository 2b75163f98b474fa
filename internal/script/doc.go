// Package script runs Lua edit scripts against an editor session.
//
// Scripts run in a sandboxed gopher-lua state with only the base, table,
// string and math libraries. A script edits lines through a small set of
// globals:
//
//	set(kind, key, value)   apply an edit without committing it
//	commit()                fold pending edits into one undo step
//	cancel()                revert pending edits
//	undo(), redo()          move through the history, returning true if anything moved
//	get(kind, key)          current value of a field, or nil
//	lines()                 array of {key, text, style}
//	history()               view labels, most recent first, and the current row
//	add_line(text, style)   append a line and return its key
//	remove_line(key)        delete a line
//	log(msg)                write to the editor log
//
// Kinds are named text, pitch, speed, intonation, volume, pre_silence,
// post_silence and style. Edits still pending when the script returns are
// committed. When the script fails the history returns to where the run
// started: its pending edits are dropped and its committed steps undone.
// Added and removed lines are kept.
package script
