package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/adventcal/internal/model"
)

// testSummary returns a fixed summary for report tests.
func testSummary() *model.Summary {
	start := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	return &model.Summary{
		Kind:         model.KindCalendars,
		Year:         2023,
		Category:     "programming_language",
		Calendars:    2,
		Items:        50,
		RequestCount: 4,
		StartedAt:    start,
		FinishedAt:   start.Add(2 * time.Minute),
		OutputFiles:  []string{"output/2023/calendars_programming_language.tsv"},
	}
}

// TestTableWriter tests the default table report.
func TestTableWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	n, err := NewTableWriter(&buf).Write(testSummary())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n == 0 {
		t.Error("expected non-zero bytes written")
	}

	out := buf.String()
	for _, want := range []string{"calendars", "2023", "programming_language", "50", "2m0s"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}

	// A calendars run shows no liker rows.
	if strings.Contains(out, "Skipped") {
		t.Errorf("calendars table must not show liker fields:\n%s", out)
	}
}

// TestMarkdownWriter tests the markdown report.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("contains the run facts", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(testSummary()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out := buf.String()
		for _, want := range []string{
			"# Advent Calendar Crawl Report",
			"Programming Language",
			"Calendars",
			"Items",
			"output/2023/calendars_programming_language.tsv",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("markdown output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("warns about skipped items", func(t *testing.T) {
		t.Parallel()

		summary := testSummary()
		summary.Kind = model.KindLikers
		summary.SkippedItems = 3

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(summary); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "3 item(s) were skipped") {
			t.Errorf("expected skipped-items warning:\n%s", buf.String())
		}
	})
}

// TestJSONWriter tests the JSON report.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(testSummary()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded model.Summary
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Kind != model.KindCalendars || decoded.Year != 2023 || decoded.RequestCount != 4 {
		t.Errorf("decoded summary lost fields: %+v", decoded)
	}
}

// TestDisplayCategory tests category slug rendering.
func TestDisplayCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"", "All"},
		{"programming_language", "Programming Language"},
		{"web-technologies", "Web Technologies"},
	}
	for _, tt := range tests {
		if got := displayCategory(tt.in); got != tt.want {
			t.Errorf("displayCategory(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
