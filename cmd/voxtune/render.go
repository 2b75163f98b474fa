package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/voxtune/internal/editor"
	"github.com/dshills/voxtune/internal/engine/history"
)

const (
	maxTextWidth = 40
	shortKeyLen  = 8
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	currentStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

var parameterColumns = []history.Kind{
	history.KindPitch,
	history.KindSpeed,
	history.KindIntonation,
	history.KindVolume,
	history.KindPreSilence,
	history.KindPostSilence,
}

// renderLines writes the session's lines as a table.
func renderLines(w io.Writer, s *editor.Session) {
	p := s.Project()
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s (%s lines, app %s)",
		s.Title(), humanize.Comma(int64(p.Len())), p.AppVersion)))

	headers := []string{"#", "KEY", "STYLE"}
	for _, kind := range parameterColumns {
		headers = append(headers, strings.ToUpper(kind.String()))
	}
	headers = append(headers, "TEXT")

	rows := make([][]string, 0, p.Len())
	for i, key := range p.Keys() {
		item, _ := p.Item(key)
		row := []string{strconv.Itoa(i + 1), shortKey(key), strconv.Itoa(item.StyleID)}
		for _, kind := range parameterColumns {
			v, ok := s.Value(kind, key)
			if !ok {
				row = append(row, "-")
				continue
			}
			row = append(row, v.String())
		}
		row = append(row, runewidth.Truncate(item.Text, maxTextWidth, "…"))
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	fmt.Fprintln(w, t.Render())
}

// renderHistory writes the history view, most recent first, marking the
// row that matches the project's current state.
func renderHistory(w io.Writer, h *history.History) {
	view := h.View()
	fmt.Fprintln(w, titleStyle.Render("History"))

	for i, e := range view.Entries {
		marker := "  "
		label := e.Label
		if i == view.Current {
			marker = "> "
			label = currentStyle.Render(label)
		}
		if e.Latest {
			fmt.Fprintln(w, marker+label)
			continue
		}
		fmt.Fprintf(w, "%s%s  %s\n", marker, label, faintStyle.Render(humanize.Time(e.Timestamp)))
	}

	if n := h.PendingCount(); n > 0 {
		fmt.Fprintln(w, faintStyle.Render(fmt.Sprintf("(%d uncommitted)", n)))
	}
}

func shortKey(key string) string {
	if len(key) <= shortKeyLen {
		return key
	}
	return key[:shortKeyLen]
}
