package editor

import (
	"github.com/charmbracelet/log"

	"github.com/dshills/voxtune/internal/engine/history"
)

// Option configures a Session during creation.
type Option func(*Session)

// WithRange sets the editor range of a synthesis parameter.
func WithRange(kind history.Kind, r Range) Option {
	return func(s *Session) {
		if kind.IsParameter() {
			s.ranges[kind] = r
		}
	}
}

// WithRanges sets the editor ranges of several parameters.
func WithRanges(ranges map[history.Kind]Range) Option {
	return func(s *Session) {
		for kind, r := range ranges {
			if kind.IsParameter() {
				s.ranges[kind] = r
			}
		}
	}
}

// WithLogger sets the logger shared by the session and its history.
func WithLogger(logger *log.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithHistoryOptions passes options through to the session's history.
func WithHistoryOptions(opts ...history.Option) Option {
	return func(s *Session) {
		s.histOpt = append(s.histOpt, opts...)
	}
}
