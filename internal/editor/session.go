// Package editor wires a project to its undo history and exposes the edit
// operations a user interface needs: slider gestures, submitted text, voice
// changes, line insertion and removal, undo/redo and saving.
//
// A Session, like the history it owns, must be driven from one goroutine.
// Background work should operate on Snapshot copies.
package editor

import (
	"fmt"
	"io"
	"math"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/text/unicode/norm"

	"github.com/dshills/voxtune/internal/engine/history"
	"github.com/dshills/voxtune/internal/project"
)

// Range bounds a synthesis parameter. A positive Step quantizes values
// to multiples of Step.
type Range struct {
	Min  float64
	Max  float64
	Step float64
}

// Clamp limits v to the range.
func (r Range) Clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Snap rounds v to the nearest multiple of Step.
func (r Range) Snap(v float64) float64 {
	if r.Step <= 0 {
		return v
	}
	// Steps such as 0.01 scale by their integer inverse to stay exact.
	if scale := 1 / r.Step; math.Abs(scale-math.Round(scale)) < 1e-9 {
		scale = math.Round(scale)
		return math.Round(v*scale) / scale
	}
	return math.Round(v/r.Step) * r.Step
}

// Fit snaps v to the step and clamps it to the range.
func (r Range) Fit(v float64) float64 {
	return r.Clamp(r.Snap(v))
}

// Session represents an open project with its associated editor state.
type Session struct {
	// Path is the project file path (empty for unsaved projects).
	Path string

	// Name is the display name (file name or "Untitled").
	Name string

	project *project.Project
	history *history.History

	ranges  map[history.Kind]Range
	logger  *log.Logger
	histOpt []history.Option

	// Open slider gesture, nil between gestures.
	gesture *history.GestureScope

	// Lines were added or removed since the last save.
	structural bool
}

// NewSession creates a session editing p.
func NewSession(path string, p *project.Project, opts ...Option) *Session {
	name := filepath.Base(path)
	if path == "" {
		name = "Untitled"
	}
	if p == nil {
		p = project.New()
	}

	s := &Session{
		Path:    path,
		Name:    name,
		project: p,
		ranges:  make(map[history.Kind]Range),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}

	s.history = history.NewHistory(append([]history.Option{history.WithLogger(s.logger)}, s.histOpt...)...)
	return s
}

// Load decodes a project file and opens it in a new session.
func Load(path string, data []byte, opts ...Option) (*Session, error) {
	p, err := project.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return NewSession(path, p, opts...), nil
}

// Project returns the live project. Callers must not mutate it directly
// except through Session methods.
func (s *Session) Project() *project.Project {
	return s.project
}

// History returns the session's undo history.
func (s *Session) History() *history.History {
	return s.history
}

// Snapshot returns a deep copy of the project for background work.
func (s *Session) Snapshot() *project.Project {
	return s.project.Clone()
}

// Value returns the current value of a field.
func (s *Session) Value(kind history.Kind, key string) (history.Value, bool) {
	return history.Read(s.project, kind, key)
}

// Edit applies a single change without committing it. Text is normalized
// to NFC and parameters are snapped and clamped to their configured range.
func (s *Session) Edit(kind history.Kind, key string, v history.Value) (history.Diff, error) {
	switch {
	case kind == history.KindText:
		text, ok := v.Text()
		if !ok {
			return history.Diff{}, fmt.Errorf("%w: %s expects text", ErrValueType, kind)
		}
		v = history.StringValue(norm.NFC.String(text))
	case kind == history.KindStyle:
		if _, ok := v.Int(); !ok {
			return history.Diff{}, fmt.Errorf("%w: %s expects an integer", ErrValueType, kind)
		}
	case kind.IsParameter():
		f, ok := v.Float()
		if !ok {
			return history.Diff{}, fmt.Errorf("%w: %s expects a number", ErrValueType, kind)
		}
		if r, ok := s.ranges[kind]; ok {
			f = r.Fit(f)
		}
		v = history.FloatValue(f)
	default:
		return history.Diff{}, fmt.Errorf("%w: %s", history.ErrUnknownKind, kind)
	}

	return s.history.Apply(history.NewDiff(kind, key, v), s.project), nil
}

// Drag applies one intermediate slider value. The first call opens a
// gesture; call Release when the pointer is released.
func (s *Session) Drag(kind history.Kind, key string, v float64) (history.Diff, error) {
	if !kind.IsParameter() {
		return history.Diff{}, fmt.Errorf("%w: %s", ErrNotParameter, kind)
	}
	if s.gesture == nil {
		s.gesture = s.history.BeginGesture()
	}
	return s.Edit(kind, key, history.FloatValue(v))
}

// Release ends a gesture, committing its edits as one undo step.
func (s *Session) Release() {
	if s.gesture != nil {
		s.gesture.End()
		s.gesture = nil
		return
	}
	s.history.Commit()
}

// Cancel reverts the edits of an unfinished gesture.
func (s *Session) Cancel() {
	if s.gesture != nil {
		s.gesture.Cancel(s.project)
		s.gesture = nil
		return
	}
	s.history.Discard(s.project)
}

// Checkpoint commits any unfinished gesture and returns a mark that
// RevertTo can return to.
func (s *Session) Checkpoint() history.Checkpoint {
	s.flush()
	return s.history.CreateCheckpoint()
}

// RevertTo drops uncommitted edits and moves the history back to cp,
// undoing steps recorded after it or redoing steps undone since. Line
// insertions and removals are not reverted. It reports whether cp was
// reached.
func (s *Session) RevertTo(cp history.Checkpoint) bool {
	s.Cancel()
	ok := s.history.UndoToCheckpoint(cp, s.project)
	if !ok {
		ok = s.history.RedoToCheckpoint(cp, s.project)
	}
	if !ok {
		s.logger.Warn("checkpoint no longer in history")
	}
	return ok
}

// SetText replaces a line's text as one undo step.
func (s *Session) SetText(key, text string) error {
	if _, err := s.Edit(history.KindText, key, history.StringValue(text)); err != nil {
		return err
	}
	s.history.Commit()
	return nil
}

// SetStyle changes a line's voice as one undo step.
func (s *Session) SetStyle(key string, styleID int) error {
	if _, err := s.Edit(history.KindStyle, key, history.IntValue(styleID)); err != nil {
		return err
	}
	s.history.Commit()
	return nil
}

// Undo reverts the last edit. An unfinished gesture is committed first so
// that it is what gets reverted.
func (s *Session) Undo() bool {
	s.flush()
	return s.history.Undo(s.project)
}

// Redo reapplies the last undone edit.
func (s *Session) Redo() bool {
	s.flush()
	return s.history.Redo(s.project)
}

// JumpTo moves to a row of the history view.
func (s *Session) JumpTo(index int) {
	s.flush()
	s.history.JumpTo(index, s.project)
}

func (s *Session) flush() {
	if s.history.PendingCount() > 0 || s.gesture != nil {
		s.Release()
	}
}

// AddLine appends a new line and returns its key.
// Line creation is not recorded in the undo history.
func (s *Session) AddLine(text string, styleID int, q *project.Query) string {
	return s.InsertLine(s.project.Len(), text, styleID, q)
}

// InsertLine inserts a new line at index and returns its key.
func (s *Session) InsertLine(index int, text string, styleID int, q *project.Query) string {
	key := s.project.InsertItem(index, &project.AudioItem{
		Text:    norm.NFC.String(text),
		StyleID: styleID,
		Query:   q,
	})
	s.structural = true
	s.logger.Debug("line added", "key", key, "index", index)
	return key
}

// RemoveLine deletes a line. Pending and recorded edits that reference it
// become no-ops.
func (s *Session) RemoveLine(key string) bool {
	if !s.project.RemoveItem(key) {
		return false
	}
	s.structural = true
	s.logger.Debug("line removed", "key", key)
	return true
}

// Save commits any unfinished gesture, encodes the project and marks the
// current history position as saved.
func (s *Session) Save(opts ...project.EncodeOption) ([]byte, error) {
	s.flush()
	data, err := project.Encode(s.project, opts...)
	if err != nil {
		return nil, fmt.Errorf("save %s: %w", s.Name, err)
	}
	s.history.MarkSaved()
	s.structural = false
	return data, nil
}

// Dirty reports whether the session has unsaved changes.
func (s *Session) Dirty() bool {
	return s.structural || s.history.Dirty()
}

// IsScratch returns true if the session has no file path.
func (s *Session) IsScratch() bool {
	return s.Path == ""
}

// Title returns the display name with a marker for unsaved changes.
func (s *Session) Title() string {
	if s.Dirty() {
		return s.Name + " *"
	}
	return s.Name
}
