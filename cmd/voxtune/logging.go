package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/dshills/voxtune/internal/config"
)

// newLogger builds the process logger. The text format falls back to
// logfmt when w is not a terminal.
func newLogger(c config.LogConfig, w *os.File) (*log.Logger, error) {
	level, err := log.ParseLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	isTerminal := term.IsTerminal(int(w.Fd()))

	formatter := log.TextFormatter
	switch c.Format {
	case "logfmt":
		formatter = log.LogfmtFormatter
	case "json":
		formatter = log.JSONFormatter
	default:
		if !isTerminal {
			formatter = log.LogfmtFormatter
		}
	}

	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "voxtune",
	}), nil
}
