package crawler

import "fmt"

// HTTPError is returned by Client.GetPage when the server responds with a
// status other than 200 OK. The fetcher never retries; callers decide what
// a non-OK status means for their operation.
//
// Design decision: We use a struct error rather than a sentinel because
// callers need the status code (e.g. to distinguish a 404 listing page
// from a 429 rate limit) and errors.As gives them typed access to it.
type HTTPError struct {
	// URL is the URL whose fetch failed.
	URL string

	// StatusCode is the HTTP status code of the response.
	StatusCode int
}

// Error returns a human-readable description of the failed fetch.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected HTTP status %d for %s", e.StatusCode, e.URL)
}

// ParseError is returned when a page does not match the expected HTML
// schema: an element the schema assumes to be present is missing, or its
// content cannot be interpreted (e.g. a non-numeric date cell).
//
// The parsers never skip malformed rows. Schema drift on the site must
// surface loudly instead of silently producing truncated datasets.
type ParseError struct {
	// URL is the page whose markup violated the schema, when known.
	URL string

	// Reason describes which schema expectation was violated.
	Reason string
}

// Error returns a human-readable description of the schema violation.
func (e *ParseError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("page schema mismatch: %s", e.Reason)
	}
	return fmt.Sprintf("page schema mismatch at %s: %s", e.URL, e.Reason)
}
