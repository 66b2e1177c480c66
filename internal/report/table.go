package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/nao1215/adventcal/internal/model"
)

// TableWriter renders the run summary as a terminal table. This is the
// default report format.
type TableWriter struct {
	baseWriter
}

// NewTableWriter creates a TableWriter that outputs to the given writer.
func NewTableWriter(output io.Writer) *TableWriter {
	return &TableWriter{baseWriter: newBaseWriter(output)}
}

// Write renders the summary as a two-column table.
func (w *TableWriter) Write(summary *model.Summary) (int, error) {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w.output)

	t.AppendHeader(table.Row{"Property", "Value"})
	t.AppendRows([]table.Row{
		{"Operation", summary.Kind},
		{"Year", strconv.Itoa(summary.Year)},
		{"Category", categoryLabel(summary.Category)},
	})

	// Only the record kinds the operation produces are shown: a likers
	// run never writes calendar rows and vice versa.
	switch summary.Kind {
	case model.KindCalendars:
		t.AppendRows([]table.Row{
			{"Calendars", strconv.Itoa(summary.Calendars)},
			{"Items", strconv.Itoa(summary.Items)},
		})
	case model.KindLikers:
		t.AppendRows([]table.Row{
			{"Likers", strconv.Itoa(summary.Likers)},
			{"Skipped items", strconv.FormatInt(summary.SkippedItems, 10)},
		})
	}

	t.AppendRows([]table.Row{
		{"Requests", strconv.FormatInt(summary.RequestCount, 10)},
		{"Started", summary.StartedAt.Format("2006-01-02 15:04:05 MST")},
		{"Duration", summary.Duration().Round(durationPrecision).String()},
	})

	if len(summary.OutputFiles) > 0 {
		t.AppendRow(table.Row{"Output", strings.Join(summary.OutputFiles, "\n")})
	}

	rendered := t.Render()
	return len(rendered), nil
}

// categoryLabel renders the category filter for display.
func categoryLabel(category string) string {
	if category == "" {
		return "(all)"
	}
	return category
}
