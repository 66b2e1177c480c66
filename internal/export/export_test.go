package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestTSVWriter tests tab-delimited record output.
func TestTSVWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes header then rows with tab separation", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w, err := NewTSVWriter(&buf, []string{"year", "calendar_id", "title"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if err := w.Write([]string{"2023", "go", "Go Advent Calendar"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := w.WriteAll([][]string{
			{"2023", "rust", "Rust Advent Calendar"},
			{"2023", "python", "Python Advent Calendar"},
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := w.Close(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		if len(lines) != 4 {
			t.Fatalf("expected 4 lines, got %d: %q", len(lines), buf.String())
		}
		if lines[0] != "year\tcalendar_id\ttitle" {
			t.Errorf("unexpected header line %q", lines[0])
		}
		if lines[1] != "2023\tgo\tGo Advent Calendar" {
			t.Errorf("unexpected first row %q", lines[1])
		}

		if got := w.Written(); got != 3 {
			t.Errorf("expected 3 written rows, got %d", got)
		}
	})

	t.Run("quotes fields containing tabs", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		w, err := NewTSVWriter(&buf, []string{"title"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := w.Write([]string{"has\ttab"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := w.Close(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), `"has	tab"`) {
			t.Errorf("expected quoted field, got %q", buf.String())
		}
	})

	t.Run("CreateTSVFile creates parent directories and closes the file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "2023", "calendars.tsv")
		w, err := CreateTSVFile(path, []string{"year"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := w.Write([]string{"2023"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := w.Close(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(path) //nolint:gosec // test-owned path
		if err != nil {
			t.Fatalf("failed to read output file: %v", err)
		}
		if string(data) != "year\n2023\n" {
			t.Errorf("unexpected file content %q", string(data))
		}
	})
}

// TestLayout tests output path computation.
func TestLayout(t *testing.T) {
	t.Parallel()

	t.Run("without category", func(t *testing.T) {
		t.Parallel()

		l := Layout{Dir: "output", Year: 2023}
		if got := l.CalendarsPath(); got != filepath.Join("output", "2023", "calendars.tsv") {
			t.Errorf("unexpected calendars path %q", got)
		}
		if got := l.ItemsPath(); got != filepath.Join("output", "2023", "items.tsv") {
			t.Errorf("unexpected items path %q", got)
		}
		if got := l.LikersPath(); got != filepath.Join("output", "2023", "likers.tsv") {
			t.Errorf("unexpected likers path %q", got)
		}
	})

	t.Run("category suffixes the file names", func(t *testing.T) {
		t.Parallel()

		l := Layout{Dir: "output", Year: 2023, Category: "programming_language"}
		if got := l.CalendarsPath(); got != filepath.Join("output", "2023", "calendars_programming_language.tsv") {
			t.Errorf("unexpected calendars path %q", got)
		}
		if got := l.LikersPath(); got != filepath.Join("output", "2023", "likers_programming_language.tsv") {
			t.Errorf("unexpected likers path %q", got)
		}
	})
}
