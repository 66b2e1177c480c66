package config

import "errors"

// Configuration validation errors returned by Config.Validate().
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrInvalidYear is returned when the crawl year is missing or not
	// a positive integer.
	ErrInvalidYear = errors.New("invalid year: must be a positive integer")

	// ErrInvalidSite is returned when the site base URL is empty or not
	// an absolute URL.
	ErrInvalidSite = errors.New("invalid site: must be an absolute URL")

	// ErrInvalidDelay is returned when the politeness delay is negative.
	// Use 0 to disable the delay entirely.
	ErrInvalidDelay = errors.New("invalid delay: must be non-negative")

	// ErrInvalidTimeout is returned when the request timeout is negative.
	// Use 0 for no timeout.
	ErrInvalidTimeout = errors.New("invalid timeout: must be non-negative")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified. Only one summary format can be used at
	// a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
