// Package crawler implements the crawl, parse, and pagination engine for
// Qiita Advent Calendar pages.
//
// The package is built from small, composable pieces:
//
//   - Client performs single rate-limited page fetches and counts requests.
//   - Pages walks a chain of paginated documents via rel=next links.
//   - The listing and detail parsers turn documents into records.
//   - Crawler composes the pieces into the three public crawl operations.
//
// Execution is strictly sequential: the politeness delay in Client
// serializes all network activity to one in-flight request at a time.
// Errors on the primary calendar path always propagate and abort the
// operation; the per-item liker crawl is the single place where errors
// are swallowed, deliberately, so that one broken entry cannot lose the
// rest of a run's data.
package crawler
