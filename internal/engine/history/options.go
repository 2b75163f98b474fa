package history

import (
	"time"

	"github.com/charmbracelet/log"
)

// Option configures a History during creation.
type Option func(*History)

// WithMaxEntries sets the maximum number of undo entries.
// Non-positive values keep the default.
func WithMaxEntries(max int) Option {
	return func(h *History) {
		if max > 0 {
			h.maxEntries = max
		}
	}
}

// WithLogger sets the logger used for diagnostics such as unsquashable
// commits. The default discards everything.
func WithLogger(logger *log.Logger) Option {
	return func(h *History) {
		h.logger = logger
	}
}

// WithClock sets the time source used to stamp committed entries.
func WithClock(now func() time.Time) Option {
	return func(h *History) {
		if now != nil {
			h.now = now
		}
	}
}
