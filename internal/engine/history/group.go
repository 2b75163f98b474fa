package history

import "github.com/dshills/voxtune/internal/project"

// GestureScope ties the pending diffs of one continuous gesture to a single
// commit. Usage:
//
//	g := h.BeginGesture()
//	defer g.End()
//	for _, v := range sliderValues {
//	    h.Apply(ParameterDiff(KindPitch, key, v), p)
//	}
type GestureScope struct {
	history *History
	active  bool
}

// BeginGesture starts a gesture scope.
// Call End() or use with defer to commit.
func (h *History) BeginGesture() *GestureScope {
	return &GestureScope{
		history: h,
		active:  true,
	}
}

// End commits the gesture.
// Safe to call multiple times; only the first call has effect.
func (g *GestureScope) End() {
	if g.active {
		g.history.Commit()
		g.active = false
	}
}

// Cancel reverts the gesture's edits on p instead of committing them.
func (g *GestureScope) Cancel(p *project.Project) {
	if g.active {
		g.history.Discard(p)
		g.active = false
	}
}

// Discard reverts every pending diff on p, newest first, and drops them.
// The redo stack discarded by Apply is not restored.
func (h *History) Discard(p *project.Project) {
	for i := len(h.pending) - 1; i >= 0; i-- {
		d := h.pending[i]
		write(p, d.Kind, d.Key, d.Before)
	}
	h.pending = nil
}

// Checkpoint marks a position in the history that can be returned to.
// It records the id of the top undo entry, so it stays valid when old
// entries are trimmed.
type Checkpoint struct {
	id uint64
}

// CreateCheckpoint creates a checkpoint at the current history position.
// Pending diffs are not part of the position; Commit first to include them.
func (h *History) CreateCheckpoint() Checkpoint {
	return Checkpoint{id: h.position()}
}

// UndoToCheckpoint undoes committed entries newer than the checkpoint.
// It reports whether the checkpoint position was reached; it is not when the
// checkpoint lies in the redo direction or its entries were trimmed.
func (h *History) UndoToCheckpoint(cp Checkpoint, p *project.Project) bool {
	for h.CanUndo() && h.position() > cp.id {
		h.Undo(p)
	}
	return h.position() == cp.id
}

// RedoToCheckpoint redoes undone entries up to the checkpoint, never past
// it. It reports whether the checkpoint position was reached; it is not
// when an Apply discarded the redo stack in between.
func (h *History) RedoToCheckpoint(cp Checkpoint, p *project.Project) bool {
	for h.CanRedo() && h.redoStack[len(h.redoStack)-1].id <= cp.id {
		h.Redo(p)
	}
	return h.position() == cp.id
}
