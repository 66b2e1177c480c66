package crawler

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/nao1215/adventcal/internal/htmldoc"
)

// mustParse parses fixture HTML or fails the test.
func mustParse(t *testing.T, html string) *htmldoc.Document {
	t.Helper()

	doc, err := htmldoc.Parse(strings.NewReader(html))
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	return doc
}

// siteURL returns the production site base URL for parser tests.
func siteURL(t *testing.T) *url.URL {
	t.Helper()

	u, err := url.Parse("https://qiita.com/")
	if err != nil {
		t.Fatalf("failed to parse site URL: %v", err)
	}
	return u
}

// TestParseListing tests listing page parsing.
func TestParseListing(t *testing.T) {
	t.Parallel()

	t.Run("one ref per row in document order", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div class="adventCalendarList"><table><tbody>
			<tr><td class="adventCalendarList_calendarTitle"><a href="/advent-calendar/2023/go">Go Calendar</a></td></tr>
			<tr><td class="adventCalendarList_calendarTitle"><a href="/advent-calendar/2023/rust">Rust Calendar</a></td></tr>
			<tr><td class="adventCalendarList_calendarTitle"><a href="https://qiita.com/advent-calendar/2023/python">Python Calendar</a></td></tr>
		</tbody></table></div></body></html>`

		refs, err := parseListing(mustParse(t, html), siteURL(t))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(refs) != 3 {
			t.Fatalf("expected 3 refs, got %d", len(refs))
		}

		wantIDs := []string{"go", "rust", "python"}
		wantTitles := []string{"Go Calendar", "Rust Calendar", "Python Calendar"}
		for i, ref := range refs {
			if ref.ID != wantIDs[i] {
				t.Errorf("ref %d: expected ID %q, got %q", i, wantIDs[i], ref.ID)
			}
			if ref.Title != wantTitles[i] {
				t.Errorf("ref %d: expected title %q, got %q", i, wantTitles[i], ref.Title)
			}
			if !strings.HasPrefix(ref.URL, "https://qiita.com/advent-calendar/2023/") {
				t.Errorf("ref %d: expected absolute URL, got %q", i, ref.URL)
			}
		}
	})

	t.Run("empty listing yields no refs", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div class="adventCalendarList"><table><tbody></tbody></table></div></body></html>`

		refs, err := parseListing(mustParse(t, html), siteURL(t))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(refs) != 0 {
			t.Errorf("expected 0 refs, got %d", len(refs))
		}
	})

	t.Run("row without title anchor propagates a parse error", func(t *testing.T) {
		t.Parallel()

		// Second row is broken; the parser must fail loudly, not skip.
		html := `<html><body><div class="adventCalendarList"><table><tbody>
			<tr><td class="adventCalendarList_calendarTitle"><a href="/advent-calendar/2023/go">Go</a></td></tr>
			<tr><td class="adventCalendarList_calendarTitle">no anchor here</td></tr>
		</tbody></table></div></body></html>`

		_, err := parseListing(mustParse(t, html), siteURL(t))
		if err == nil {
			t.Fatal("expected parse error for row without anchor")
		}

		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("expected *ParseError, got %T: %v", err, err)
		}
	})

	t.Run("anchor without href propagates a parse error", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div class="adventCalendarList"><table><tbody>
			<tr><td class="adventCalendarList_calendarTitle"><a>Go</a></td></tr>
		</tbody></table></div></body></html>`

		_, err := parseListing(mustParse(t, html), siteURL(t))
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("expected *ParseError, got %v", err)
		}
	})
}
