package main

import (
	"fmt"

	"github.com/dshills/voxtune/internal/config"
	"github.com/dshills/voxtune/internal/editor"
	"github.com/dshills/voxtune/internal/engine/history"
	"github.com/dshills/voxtune/internal/project"
)

// sessionOptions converts the configuration into editor options.
func sessionOptions(c config.Config) ([]editor.Option, error) {
	ranges := make(map[history.Kind]editor.Range)
	for name, r := range c.Ranges.ByName() {
		kind, err := history.ParseKind(name)
		if err != nil {
			return nil, fmt.Errorf("ranges: %w", err)
		}
		ranges[kind] = editor.Range{Min: r.Min, Max: r.Max, Step: r.Step}
	}

	return []editor.Option{
		editor.WithRanges(ranges),
		editor.WithLogger(logger),
		editor.WithHistoryOptions(history.WithMaxEntries(c.History.MaxEntries)),
	}, nil
}

// openSession reads a project file into a new session.
func openSession(path string) (*editor.Session, error) {
	data, err := project.ReadFile(path, 0)
	if err != nil {
		return nil, err
	}

	opts, err := sessionOptions(cfg)
	if err != nil {
		return nil, err
	}

	s, err := editor.Load(path, data, opts...)
	if err != nil {
		return nil, err
	}
	logger.Debug("project opened", "path", path, "lines", s.Project().Len())
	return s, nil
}
