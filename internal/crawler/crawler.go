package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync/atomic"

	"github.com/nao1215/adventcal/internal/model"
)

// DefaultSite is the base URL of the crawl target. A trailing slash is
// significant: the own-site filter for liker crawling is a plain prefix
// match against this string.
const DefaultSite = "https://qiita.com/"

// URL path templates under the site base, filled with the crawl year and,
// where applicable, the category or calendar identifier.
const (
	calendarsPathFormat  = "advent-calendar/%d/calendars"
	categoriesPathFormat = "advent-calendar/%d/categories/%s"
	calendarPathFormat   = "advent-calendar/%d/%s"
)

// privatePathSegment marks entry URLs with restricted visibility.
// Likers are never crawled for private entries.
const privatePathSegment = "/private/"

// CalendarVisit is called once per crawled calendar with its items.
// index is zero-based; total is the number of calendars enumerated for
// the run. Returning an error aborts the crawl.
type CalendarVisit func(index, total int, calendar model.Calendar, items []model.Item) error

// LikerVisit is called once per calendar with all likers collected for
// its items. index and total behave as in CalendarVisit. Returning an
// error aborts the crawl.
type LikerVisit func(index, total int, ref model.CalendarRef, likers []model.Liker) error

// Crawler is one crawl session against the site. It owns a Client and the
// session's operator-facing counters; constructing a new Crawler resets
// them.
//
// Design decision: We expose streaming operations driven by a visit
// callback rather than returning fully collected slices because a crawl
// of a large year runs for hours. Streaming lets the caller flush every
// record to disk as it arrives, so an aborted run keeps everything
// crawled before the failure.
type Crawler struct {
	// client performs all fetches for the session.
	client *Client

	// siteStr is the site base URL as a string, trailing slash intact.
	// The own-site filter is a prefix match against this value.
	siteStr string

	// site is the parsed form of siteStr used for href resolution.
	site *url.URL

	// logger records crawl progress and skipped items.
	logger *slog.Logger

	// skippedItems counts items dropped by liker failure isolation.
	skippedItems atomic.Int64
}

// NewCrawler creates a crawl session using the given client.
// site is the base URL of the crawl target; pass DefaultSite outside of
// tests. logger may not be nil; pass slog.Default() when in doubt.
func NewCrawler(client *Client, site string, logger *slog.Logger) (*Crawler, error) {
	parsed, err := url.Parse(site)
	if err != nil {
		return nil, fmt.Errorf("invalid site URL %q: %w", site, err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("site URL %q is not absolute", site)
	}

	return &Crawler{
		client:  client,
		siteStr: site,
		site:    parsed,
		logger:  logger.With("component", "crawler"),
	}, nil
}

// listingURL returns the listing start URL for a year, switching to the
// category endpoint when a category filter is set. Both endpoints share
// the same page shape.
func (c *Crawler) listingURL(year int, category string) string {
	if category != "" {
		return c.siteStr + fmt.Sprintf(categoriesPathFormat, year, url.PathEscape(category))
	}
	return c.siteStr + fmt.Sprintf(calendarsPathFormat, year)
}

// calendarURL returns the detail page URL for a calendar.
func (c *Crawler) calendarURL(year int, calendarID string) string {
	return c.siteStr + fmt.Sprintf(calendarPathFormat, year, calendarID)
}

// CalendarRefs enumerates all calendars listed for a year, walking the
// listing pagination to exhaustion. category narrows the listing to one
// category; pass the empty string for the whole year.
func (c *Crawler) CalendarRefs(ctx context.Context, year int, category string) ([]model.CalendarRef, error) {
	var refs []model.CalendarRef

	pages := newPages(c.client, c.site, c.listingURL(year, category))
	for pages.Next(ctx) {
		pageRefs, err := parseListing(pages.Document(), c.site)
		if err != nil {
			return nil, err
		}
		refs = append(refs, pageRefs...)
	}
	if err := pages.Err(); err != nil {
		return nil, err
	}

	c.logger.Debug("enumerated calendars", "year", year, "category", category, "count", len(refs))

	return refs, nil
}

// CrawlCalendar fetches and parses a single calendar's detail page,
// returning the aggregate record and its items in grid order.
func (c *Crawler) CrawlCalendar(ctx context.Context, year int, calendarID string) (model.Calendar, []model.Item, error) {
	pageURL := c.calendarURL(year, calendarID)

	doc, err := c.client.GetPage(ctx, pageURL)
	if err != nil {
		return model.Calendar{}, nil, err
	}

	return parseDetail(year, calendarID, pageURL, doc, c.site)
}

// CrawlCalendars enumerates every calendar for the year (optionally
// filtered by category), crawls each detail page, and hands the results
// to visit one calendar at a time. Any fetch, parse, or visit error
// aborts the crawl; records already visited are the caller's to keep.
func (c *Crawler) CrawlCalendars(ctx context.Context, year int, category string, visit CalendarVisit) error {
	refs, err := c.CalendarRefs(ctx, year, category)
	if err != nil {
		return err
	}

	for i, ref := range refs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		calendar, items, err := c.CrawlCalendar(ctx, year, ref.ID)
		if err != nil {
			return err
		}

		if err := visit(i, len(refs), calendar, items); err != nil {
			return err
		}
	}

	return nil
}

// RequestCount returns the number of fetches performed by the session,
// nested liker pagination included.
func (c *Crawler) RequestCount() int64 {
	return c.client.RequestCount()
}

// SkippedItems returns the number of items whose liker crawl failed and
// was skipped under the best-effort policy. Reporting only; resets with
// the session.
func (c *Crawler) SkippedItems() int64 {
	return c.skippedItems.Load()
}
