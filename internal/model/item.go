package model

import "strconv"

// Item is one entry in a calendar's day grid. Every grid cell yields an
// Item even when nobody has claimed the day yet; in that case the author
// and entry fields are empty strings.
//
// Design decision: Optional fields are empty strings rather than string
// pointers. The TSV output renders "no value" and "empty value" identically,
// so pointers would add nil-handling throughout the parsers and writers
// without changing any observable output.
type Item struct {
	// Year is the advent calendar year the record belongs to.
	Year int `json:"year"`

	// CalendarID identifies the owning calendar within the year.
	CalendarID string `json:"calendar_id"`

	// Date is the day number of the grid cell. It is a small positive
	// integer unique within (Year, CalendarID).
	Date int `json:"date"`

	// UserName is the display name of the author assigned to the day,
	// or empty when the day has no author.
	UserName string `json:"user_name"`

	// UserURL is the absolute profile URL of the author, or empty when
	// the day has no author. UserName and UserURL are always set or
	// empty together.
	UserURL string `json:"user_url"`

	// Title is the announced entry title, or empty when the day has no
	// entry comment.
	Title string `json:"title"`

	// URL is the entry link exactly as written in the page markup.
	// It is intentionally not resolved against the site base: authors
	// link to arbitrary external sites and the raw value is what the
	// liker crawl filters on. Empty when the comment has no link.
	URL string `json:"url"`
}

// ItemHeader returns the TSV header row for Item records.
func ItemHeader() []string {
	return []string{
		"year",
		"calendar_id",
		"date",
		"user_name",
		"user_url",
		"title",
		"url",
	}
}

// Record renders the item as a TSV row in ItemHeader order.
func (i Item) Record() []string {
	return []string{
		strconv.Itoa(i.Year),
		i.CalendarID,
		strconv.Itoa(i.Date),
		i.UserName,
		i.UserURL,
		i.Title,
		i.URL,
	}
}
