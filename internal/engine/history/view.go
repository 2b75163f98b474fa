package history

import (
	"time"

	"github.com/dshills/voxtune/internal/project"
)

// LatestLabel is the label of the synthetic marker at the top of a View.
const LatestLabel = "Latest"

// ViewEntry is one row of a history list.
type ViewEntry struct {
	Diff      Diff
	Label     string
	Timestamp time.Time
	Latest    bool // synthetic marker above all entries
	Current   bool // row matching the project's current state
}

// View is a display-ordered projection of the history, most recent first:
// the latest marker, then the redo stack in stack order, then the undo
// stack in reverse.
type View struct {
	Entries []ViewEntry
	Current int // index of the current row
}

// View builds the history list. It does not modify the history.
func (h *History) View() View {
	current := len(h.redoStack)
	entries := make([]ViewEntry, 0, 1+len(h.redoStack)+len(h.undoStack))

	entries = append(entries, ViewEntry{
		Label:   LatestLabel,
		Latest:  true,
		Current: current == 0,
	})
	for _, e := range h.redoStack {
		entries = append(entries, viewEntry(e, len(entries) == current))
	}
	for i := len(h.undoStack) - 1; i >= 0; i-- {
		entries = append(entries, viewEntry(h.undoStack[i], len(entries) == current))
	}

	return View{Entries: entries, Current: current}
}

func viewEntry(e undoEntry, current bool) ViewEntry {
	return ViewEntry{
		Diff:      e.diff,
		Label:     e.diff.Description(),
		Timestamp: e.timestamp,
		Current:   current,
	}
}

// JumpTo moves to the row at index of View by undoing or redoing as many
// steps as needed. Out of range indexes are clamped.
func (h *History) JumpTo(index int, p *project.Project) {
	if index < 0 {
		index = 0
	}
	if last := len(h.redoStack) + len(h.undoStack); index > last {
		index = last
	}

	for len(h.redoStack) > index {
		h.Redo(p)
	}
	for len(h.redoStack) < index {
		h.Undo(p)
	}
}
