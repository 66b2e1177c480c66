package model

import "time"

// Crawl kinds recorded in a Summary.
const (
	// KindCalendars is a run of the calendars operation (calendar and
	// item records).
	KindCalendars = "calendars"

	// KindLikers is a run of the likers operation (liker records).
	KindLikers = "likers"
)

// Summary is the operator-facing result of one crawl run. It carries no
// correctness semantics; it exists for the end-of-run report and the run
// history database.
type Summary struct {
	// Kind is the crawl operation that produced this summary,
	// KindCalendars or KindLikers.
	Kind string `json:"kind"`

	// Year is the advent calendar year that was crawled.
	Year int `json:"year"`

	// Category is the category filter used for the run, or empty when
	// the whole year was crawled.
	Category string `json:"category,omitempty"`

	// Calendars is the number of calendar records produced.
	Calendars int `json:"calendars"`

	// Items is the number of item records produced.
	Items int `json:"items"`

	// Likers is the number of liker records produced.
	Likers int `json:"likers"`

	// SkippedItems is the number of items whose liker crawl failed and
	// was skipped under the best-effort policy.
	SkippedItems int64 `json:"skipped_items"`

	// RequestCount is the total number of HTTP fetches performed during
	// the run, nested liker pagination included.
	RequestCount int64 `json:"request_count"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// FinishedAt is when the run completed or aborted.
	FinishedAt time.Time `json:"finished_at"`

	// OutputFiles lists the TSV files written by the run.
	OutputFiles []string `json:"output_files,omitempty"`
}

// Duration returns the wall-clock duration of the run.
func (s *Summary) Duration() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}

// Records returns the total number of records produced by the run.
func (s *Summary) Records() int {
	return s.Calendars + s.Items + s.Likers
}
