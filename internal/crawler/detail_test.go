package crawler

import (
	"errors"
	"testing"
)

// detailFixture is a minimal detail page with three day cells:
// day 1 has an author and an entry with a link, day 2 has an author and
// a link-less entry comment, day 3 is unclaimed.
const detailFixture = `<html><body>
	<h1>Go Advent Calendar 2023</h1>
	<div class="adventCalendarSection_info"><a href="/advent-calendar/2023/categories/programming_language">Programming Language</a></div>
	<div class="adventCalendarJumbotron_stats">25</div>
	<div class="adventCalendarJumbotron_stats">340</div>
	<div class="adventCalendarJumbotron_stats">51</div>
	<table><tbody><tr>
		<td class="adventCalendarCalendar_day">
			<div class="adventCalendarCalendar_date">1</div>
			<div class="adventCalendarCalendar_author"><a href="/alice"> alice </a></div>
			<div class="adventCalendarCalendar_comment">Generics in practice <a href="https://qiita.com/alice/items/abc123">link</a></div>
		</td>
		<td class="adventCalendarCalendar_day">
			<div class="adventCalendarCalendar_date">2</div>
			<div class="adventCalendarCalendar_author"><a href="/bob">bob</a></div>
			<div class="adventCalendarCalendar_comment">Coming soon</div>
		</td>
		<td class="adventCalendarCalendar_day">
			<div class="adventCalendarCalendar_date">3</div>
		</td>
	</tr></tbody></table>
</body></html>`

// TestParseDetail tests detail page parsing.
func TestParseDetail(t *testing.T) {
	t.Parallel()

	t.Run("extracts the calendar aggregate", func(t *testing.T) {
		t.Parallel()

		pageURL := "https://qiita.com/advent-calendar/2023/go"
		calendar, _, err := parseDetail(2023, "go", pageURL, mustParse(t, detailFixture), siteURL(t))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if calendar.Year != 2023 {
			t.Errorf("expected year 2023, got %d", calendar.Year)
		}
		if calendar.CalendarID != "go" {
			t.Errorf("expected calendar ID 'go', got %q", calendar.CalendarID)
		}
		if calendar.Title != "Go Advent Calendar 2023" {
			t.Errorf("unexpected title %q", calendar.Title)
		}
		if calendar.URL != pageURL {
			t.Errorf("unexpected URL %q", calendar.URL)
		}
		if calendar.Category != "Programming Language" {
			t.Errorf("unexpected category %q", calendar.Category)
		}

		// The three stats are positional: participants, likes, subscribers.
		if calendar.ParticipantsCount != 25 {
			t.Errorf("expected 25 participants, got %d", calendar.ParticipantsCount)
		}
		if calendar.LikesCount != 340 {
			t.Errorf("expected 340 likes, got %d", calendar.LikesCount)
		}
		if calendar.SubscribersCount != 51 {
			t.Errorf("expected 51 subscribers, got %d", calendar.SubscribersCount)
		}
	})

	t.Run("one item per day cell in grid order", func(t *testing.T) {
		t.Parallel()

		_, items, err := parseDetail(2023, "go", "https://qiita.com/advent-calendar/2023/go", mustParse(t, detailFixture), siteURL(t))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(items) != 3 {
			t.Fatalf("expected 3 items, got %d", len(items))
		}

		// Day 1: author and linked entry.
		if items[0].Date != 1 {
			t.Errorf("expected date 1, got %d", items[0].Date)
		}
		if items[0].UserName != "alice" {
			t.Errorf("expected trimmed author name 'alice', got %q", items[0].UserName)
		}
		if items[0].UserURL != "https://qiita.com/alice" {
			t.Errorf("expected resolved author URL, got %q", items[0].UserURL)
		}
		if items[0].URL != "https://qiita.com/alice/items/abc123" {
			t.Errorf("expected raw entry URL, got %q", items[0].URL)
		}
		if items[0].Title == "" {
			t.Error("expected non-empty entry title for day 1")
		}

		// Day 2: author, comment without link.
		if items[1].UserName != "bob" {
			t.Errorf("expected author 'bob', got %q", items[1].UserName)
		}
		if items[1].Title != "Coming soon" {
			t.Errorf("expected title 'Coming soon', got %q", items[1].Title)
		}
		if items[1].URL != "" {
			t.Errorf("expected empty entry URL for link-less comment, got %q", items[1].URL)
		}

		// Day 3: unclaimed, all optional fields empty.
		if items[2].Date != 3 {
			t.Errorf("expected date 3, got %d", items[2].Date)
		}
		if items[2].UserName != "" || items[2].UserURL != "" || items[2].Title != "" || items[2].URL != "" {
			t.Errorf("expected empty optional fields for unclaimed day, got %+v", items[2])
		}
	})

	t.Run("missing heading is a parse error", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div class="adventCalendarSection_info"><a href="/c">Cat</a></div></body></html>`
		_, _, err := parseDetail(2023, "go", "https://qiita.com/advent-calendar/2023/go", mustParse(t, html), siteURL(t))

		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("expected *ParseError, got %v", err)
		}
	})

	t.Run("fewer than three stats is a parse error", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<h1>Go</h1>
			<div class="adventCalendarSection_info"><a href="/c">Cat</a></div>
			<div class="adventCalendarJumbotron_stats">25</div>
			<div class="adventCalendarJumbotron_stats">340</div>
		</body></html>`
		_, _, err := parseDetail(2023, "go", "https://qiita.com/advent-calendar/2023/go", mustParse(t, html), siteURL(t))

		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("expected *ParseError, got %v", err)
		}
	})

	t.Run("non-numeric date cell is a parse error", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<h1>Go</h1>
			<div class="adventCalendarSection_info"><a href="/c">Cat</a></div>
			<div class="adventCalendarJumbotron_stats">1</div>
			<div class="adventCalendarJumbotron_stats">2</div>
			<div class="adventCalendarJumbotron_stats">3</div>
			<table><tbody><tr>
				<td class="adventCalendarCalendar_day"><div class="adventCalendarCalendar_date">first</div></td>
			</tr></tbody></table>
		</body></html>`
		_, _, err := parseDetail(2023, "go", "https://qiita.com/advent-calendar/2023/go", mustParse(t, html), siteURL(t))

		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("expected *ParseError, got %v", err)
		}
	})
}
