package history

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dshills/voxtune/internal/project"
)

// DefaultMaxEntries is the undo depth used when none is configured.
const DefaultMaxEntries = 1000

// undoEntry wraps a committed diff with metadata.
type undoEntry struct {
	diff      Diff
	id        uint64
	timestamp time.Time
}

// History manages undo/redo state for one project.
//
// History is not safe for concurrent use. It is meant to be driven from the
// single goroutine that owns the project, together with every other edit.
type History struct {
	undoStack []undoEntry
	redoStack []undoEntry

	// Diffs applied since the last Commit.
	pending []Diff

	// Entry identities for save point tracking. base is the id of the
	// position below the oldest retained undo entry.
	nextID  uint64
	base    uint64
	savedID uint64

	// Configuration
	maxEntries int
	logger     *log.Logger
	now        func() time.Time
}

// NewHistory creates a new history manager.
func NewHistory(opts ...Option) *History {
	h := &History{
		maxEntries: DefaultMaxEntries,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.logger == nil {
		h.logger = log.New(io.Discard)
	}
	return h
}

// Apply performs the edit described by template on p and buffers it until
// the next Commit. The returned Diff carries the field's previous value in
// Before.
//
// If the target item or field does not exist the project is left untouched,
// but the diff is still buffered as received. A value whose type does not
// fit the kind is logged and not buffered. Apply always discards the redo
// stack, including when the edit is rejected.
func (h *History) Apply(template Diff, p *project.Project) Diff {
	h.redoStack = nil

	if !template.Kind.Valid() || !template.After.accepts(template.Kind) {
		h.logger.Warn("ignoring edit with mismatched value", "kind", template.Kind, "key", template.Key)
		return template
	}

	d := template
	if before, ok := Read(p, d.Kind, d.Key); ok {
		d.Before = before
		write(p, d.Kind, d.Key, d.After)
	} else {
		h.logger.Debug("edit target missing", "kind", d.Kind, "key", d.Key)
	}

	h.pending = append(h.pending, d)
	return d
}

// Commit folds the pending diffs into the undo stack.
//
// When the first and last pending diffs target the same field of the same
// item, a single entry spanning first.Before to last.After is pushed.
// Otherwise every pending diff is pushed individually, in order.
func (h *History) Commit() {
	if len(h.pending) == 0 {
		h.logger.Debug("nothing to commit")
		return
	}

	first, last := h.pending[0], h.pending[len(h.pending)-1]
	if first.SameTarget(last) {
		h.push(Diff{
			Kind:   first.Kind,
			Key:    first.Key,
			Before: first.Before,
			After:  last.After,
		})
	} else {
		h.logger.Warn("cannot squash mixed edits",
			"first", first.String(),
			"last", last.String(),
			"count", len(h.pending))
		for _, d := range h.pending {
			h.push(d)
		}
	}
	h.pending = nil
}

// push adds a committed diff to the undo stack, dropping the oldest entries
// beyond the configured maximum.
func (h *History) push(d Diff) {
	h.nextID++
	h.undoStack = append(h.undoStack, undoEntry{
		diff:      d,
		id:        h.nextID,
		timestamp: h.now(),
	})

	if h.maxEntries > 0 && len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.base = h.undoStack[excess-1].id
		h.undoStack = append([]undoEntry(nil), h.undoStack[excess:]...)
	}
}

// Undo reverts the most recent committed edit on p.
// Returns false if there was nothing to undo.
func (h *History) Undo(p *project.Project) bool {
	if len(h.undoStack) == 0 {
		return false
	}

	entry := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, entry)

	if !write(p, entry.diff.Kind, entry.diff.Key, entry.diff.Before) {
		h.logger.Debug("undo target missing", "diff", entry.diff.String())
	}
	return true
}

// Redo reapplies the most recently undone edit on p.
// Returns false if there was nothing to redo.
func (h *History) Redo(p *project.Project) bool {
	if len(h.redoStack) == 0 {
		return false
	}

	entry := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, entry)

	if !write(p, entry.diff.Kind, entry.diff.Key, entry.diff.After) {
		h.logger.Debug("redo target missing", "diff", entry.diff.String())
	}
	return true
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo operations available.
func (h *History) UndoCount() int {
	return len(h.undoStack)
}

// RedoCount returns the number of redo operations available.
func (h *History) RedoCount() int {
	return len(h.redoStack)
}

// PendingCount returns the number of applied but uncommitted diffs.
func (h *History) PendingCount() int {
	return len(h.pending)
}

// UndoEntries returns the committed diffs, most recent last.
func (h *History) UndoEntries() []Diff {
	return diffs(h.undoStack)
}

// RedoEntries returns the undone diffs, most recently undone last.
func (h *History) RedoEntries() []Diff {
	return diffs(h.redoStack)
}

// Pending returns the uncommitted diffs in the order they were applied.
func (h *History) Pending() []Diff {
	out := make([]Diff, len(h.pending))
	copy(out, h.pending)
	return out
}

func diffs(entries []undoEntry) []Diff {
	out := make([]Diff, len(entries))
	for i, e := range entries {
		out[i] = e.diff
	}
	return out
}

// PeekUndo returns the next diff Undo would revert.
func (h *History) PeekUndo() (Diff, bool) {
	if len(h.undoStack) == 0 {
		return Diff{}, false
	}
	return h.undoStack[len(h.undoStack)-1].diff, true
}

// PeekRedo returns the next diff Redo would reapply.
func (h *History) PeekRedo() (Diff, bool) {
	if len(h.redoStack) == 0 {
		return Diff{}, false
	}
	return h.redoStack[len(h.redoStack)-1].diff, true
}

// Clear removes all undo/redo history and pending diffs.
// The cleared state counts as saved.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
	h.pending = nil
	h.base = h.nextID
	h.savedID = h.base
}

// MarkSaved records the current position as the saved state.
// Callers should Commit first; pending diffs keep the history dirty.
func (h *History) MarkSaved() {
	h.savedID = h.position()
}

// Dirty reports whether the project differs from the last saved position.
func (h *History) Dirty() bool {
	return len(h.pending) > 0 || h.position() != h.savedID
}

// position identifies the current state by the id of the top undo entry.
// Ids grow from the bottom of the undo stack to its top, and on from the
// top of the redo stack to its bottom.
func (h *History) position() uint64 {
	if len(h.undoStack) == 0 {
		return h.base
	}
	return h.undoStack[len(h.undoStack)-1].id
}

// SetMaxEntries changes the maximum number of undo entries.
// If the current stack is larger, oldest entries are removed.
func (h *History) SetMaxEntries(max int) {
	if max <= 0 {
		max = DefaultMaxEntries
	}
	h.maxEntries = max

	if len(h.undoStack) > max {
		excess := len(h.undoStack) - max
		h.base = h.undoStack[excess-1].id
		h.undoStack = append([]undoEntry(nil), h.undoStack[excess:]...)
	}
}

// MaxEntries returns the maximum number of undo entries.
func (h *History) MaxEntries() int {
	return h.maxEntries
}
