package model

import "strconv"

// Liker is one user who liked a calendar entry. Likers are enumerated from
// the paginated likers sub-page of an entry and are only collected for
// entries hosted on the crawl target itself (foreign and private entry URLs
// are skipped before any fetch happens).
type Liker struct {
	// Year is the advent calendar year the record belongs to.
	Year int `json:"year"`

	// CalendarID identifies the owning calendar within the year.
	CalendarID string `json:"calendar_id"`

	// Date is the day number of the entry the like belongs to.
	Date int `json:"date"`

	// UserName is the liker's display name.
	UserName string `json:"user_name"`

	// UserURL is the liker's absolute profile URL.
	UserURL string `json:"user_url"`
}

// LikerHeader returns the TSV header row for Liker records.
func LikerHeader() []string {
	return []string{
		"year",
		"calendar_id",
		"date",
		"user_name",
		"user_url",
	}
}

// Record renders the liker as a TSV row in LikerHeader order.
func (l Liker) Record() []string {
	return []string{
		strconv.Itoa(l.Year),
		l.CalendarID,
		strconv.Itoa(l.Date),
		l.UserName,
		l.UserURL,
	}
}
