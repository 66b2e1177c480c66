package model

import "strconv"

// CalendarRef is a lightweight handle to a calendar discovered on a listing
// page. It carries just enough information to fetch the calendar's detail
// page later; the full Calendar record is produced by the detail parser.
type CalendarRef struct {
	// ID is the calendar identifier, derived from the final path segment
	// of URL (e.g. "go" for ".../advent-calendar/2023/go").
	ID string `json:"id"`

	// Title is the calendar title as shown on the listing page.
	Title string `json:"title"`

	// URL is the absolute URL of the calendar's detail page.
	URL string `json:"url"`
}

// Calendar is the aggregate record extracted from a single detail page.
//
// Design decision: The three counters are plain ints rather than a nested
// stats struct because they are written as three flat TSV columns and have
// no behavior of their own.
type Calendar struct {
	// Year is the advent calendar year the record belongs to.
	Year int `json:"year"`

	// CalendarID equals the trailing path segment of URL and is unique
	// within a year.
	CalendarID string `json:"calendar_id"`

	// Title is the calendar title from the detail page heading.
	Title string `json:"title"`

	// URL is the absolute URL of the detail page.
	URL string `json:"url"`

	// Category is the category name the calendar is filed under.
	Category string `json:"category"`

	// ParticipantsCount is the number of registered participants.
	ParticipantsCount int `json:"participants_count"`

	// LikesCount is the total number of likes across the calendar.
	LikesCount int `json:"likes_count"`

	// SubscribersCount is the number of users subscribed to the calendar.
	SubscribersCount int `json:"subscribers_count"`
}

// CalendarHeader returns the TSV header row for Calendar records.
// Column names are part of the dataset format; renaming one breaks
// downstream consumers.
func CalendarHeader() []string {
	return []string{
		"year",
		"calendar_id",
		"title",
		"url",
		"category",
		"participants_count",
		"likes_count",
		"subscribers_count",
	}
}

// Record renders the calendar as a TSV row in CalendarHeader order.
func (c Calendar) Record() []string {
	return []string{
		strconv.Itoa(c.Year),
		c.CalendarID,
		c.Title,
		c.URL,
		c.Category,
		strconv.Itoa(c.ParticipantsCount),
		strconv.Itoa(c.LikesCount),
		strconv.Itoa(c.SubscribersCount),
	}
}
