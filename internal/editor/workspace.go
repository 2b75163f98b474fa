package editor

import "strconv"

// Workspace manages the open sessions (tabs) in display order.
type Workspace struct {
	sessions []*Session
	active   *Session
	counter  int // for generating scratch session names
}

// NewWorkspace creates an empty workspace.
func NewWorkspace() *Workspace {
	return &Workspace{}
}

// Open adds s to the workspace and makes it active.
// If a session with the same non-empty path is open, that one is
// activated and returned instead.
func (w *Workspace) Open(s *Session) *Session {
	if s.Path != "" {
		if existing, ok := w.Get(s.Path); ok {
			w.active = existing
			return existing
		}
	}
	w.sessions = append(w.sessions, s)
	w.active = s
	return s
}

// CreateScratch opens a new session on an empty project.
func (w *Workspace) CreateScratch(opts ...Option) *Session {
	w.counter++
	s := NewSession("", nil, opts...)
	if w.counter > 1 {
		s.Name = "Untitled-" + strconv.Itoa(w.counter)
	}
	return w.Open(s)
}

// Close removes s from the workspace.
func (w *Workspace) Close(s *Session) error {
	idx := w.indexOf(s)
	if idx < 0 {
		return ErrSessionNotFound
	}
	w.sessions = append(w.sessions[:idx], w.sessions[idx+1:]...)

	if w.active == s {
		if len(w.sessions) > 0 {
			w.active = w.sessions[len(w.sessions)-1]
		} else {
			w.active = nil
		}
	}
	return nil
}

// Active returns the currently active session, or nil.
func (w *Workspace) Active() *Session {
	return w.active
}

// SetActive activates s.
func (w *Workspace) SetActive(s *Session) error {
	if w.indexOf(s) < 0 {
		return ErrSessionNotFound
	}
	w.active = s
	return nil
}

// Get returns the session opened from path.
func (w *Workspace) Get(path string) (*Session, bool) {
	for _, s := range w.sessions {
		if s.Path == path {
			return s, true
		}
	}
	return nil, false
}

// All returns all open sessions in order.
func (w *Workspace) All() []*Session {
	out := make([]*Session, len(w.sessions))
	copy(out, w.sessions)
	return out
}

// Count returns the number of open sessions.
func (w *Workspace) Count() int {
	return len(w.sessions)
}

// DirtySessions returns all sessions with unsaved changes.
func (w *Workspace) DirtySessions() []*Session {
	var dirty []*Session
	for _, s := range w.sessions {
		if s.Dirty() {
			dirty = append(dirty, s)
		}
	}
	return dirty
}

// HasDirty returns true if any session has unsaved changes.
func (w *Workspace) HasDirty() bool {
	return len(w.DirtySessions()) > 0
}

// Next activates and returns the next session, wrapping around.
func (w *Workspace) Next() *Session {
	return w.step(1)
}

// Previous activates and returns the previous session, wrapping around.
func (w *Workspace) Previous() *Session {
	return w.step(-1)
}

func (w *Workspace) step(delta int) *Session {
	if len(w.sessions) == 0 || w.active == nil {
		return nil
	}
	idx := w.indexOf(w.active)
	if idx < 0 {
		return w.active
	}
	n := len(w.sessions)
	w.active = w.sessions[((idx+delta)%n+n)%n]
	return w.active
}

func (w *Workspace) indexOf(s *Session) int {
	for i, open := range w.sessions {
		if open == s {
			return i
		}
	}
	return -1
}
