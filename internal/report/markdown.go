package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nao1215/adventcal/internal/model"
)

// MarkdownWriter renders the run summary as GitHub Flavored Markdown,
// suitable for pasting into issues or run logs.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given
// writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write renders the summary as a markdown document.
func (w *MarkdownWriter) Write(summary *model.Summary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Advent Calendar Crawl Report")
	md.PlainText("")

	rows := [][]string{
		{"Operation", summary.Kind},
		{"Year", strconv.Itoa(summary.Year)},
		{"Category", displayCategory(summary.Category)},
		{"Requests", strconv.FormatInt(summary.RequestCount, 10)},
		{"Started", summary.StartedAt.Format("2006-01-02 15:04:05 MST")},
		{"Duration", summary.Duration().Round(durationPrecision).String()},
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")

	md.H2("Records")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Kind", "Count"},
		Rows: [][]string{
			{"Calendars", strconv.Itoa(summary.Calendars)},
			{"Items", strconv.Itoa(summary.Items)},
			{"Likers", strconv.Itoa(summary.Likers)},
		},
	})
	md.PlainText("")

	if summary.SkippedItems > 0 {
		md.Warningf("%d item(s) were skipped after liker crawl failures; their likers are missing from the dataset.",
			summary.SkippedItems)
		md.PlainText("")
	}

	if len(summary.OutputFiles) > 0 {
		md.H2("Output Files")
		md.PlainText("")
		files := make([]string, 0, len(summary.OutputFiles))
		for _, f := range summary.OutputFiles {
			files = append(files, "`"+f+"`")
		}
		md.BulletList(files...)
		md.PlainText("")
	}

	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [adventcal](https://github.com/nao1215/adventcal)*")

	return len(md.String()), md.Build()
}

// displayCategory renders a category slug for human readers: the slug's
// separators become spaces and each word is title-cased, so
// "programming_language" becomes "Programming Language". The empty
// filter renders as "All".
func displayCategory(category string) string {
	if category == "" {
		return "All"
	}
	words := strings.NewReplacer("_", " ", "-", " ").Replace(category)
	return cases.Title(language.English).String(words)
}
