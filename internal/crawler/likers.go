package crawler

import (
	"context"
	"strings"

	"github.com/nao1215/adventcal/internal/model"
)

// Liker page selectors.
const (
	selectorLikerCard = ".GridList__user"
	selectorLikerName = ".UserInfo__name"
)

// likersPathSuffix appended to an entry URL yields its paginated likers
// sub-page.
const likersPathSuffix = "/likers"

// LikersForCalendar collects all likers for a single calendar's entries.
// It re-fetches the calendar's detail page, then walks the likers
// pagination of every entry that passes the own-site filter.
//
// Failure isolation: an error while walking one entry's liker pages drops
// that entry entirely (zero likers for it) and the loop moves on. This is
// deliberate best-effort policy, the only place in the crawler where
// errors are swallowed. Errors from the detail fetch itself propagate.
func (c *Crawler) LikersForCalendar(ctx context.Context, year int, calendarID string) ([]model.Liker, error) {
	_, items, err := c.CrawlCalendar(ctx, year, calendarID)
	if err != nil {
		return nil, err
	}

	var likers []model.Liker
	for _, item := range items {
		select {
		case <-ctx.Done():
			return likers, ctx.Err()
		default:
		}

		if !c.isLikableItem(item.URL) {
			continue
		}

		itemLikers, err := c.likersForItem(ctx, item)
		if err != nil {
			c.skippedItems.Add(1)
			c.logger.Debug("skipping entry after liker crawl failure",
				"calendar", calendarID,
				"date", item.Date,
				"url", item.URL,
				"error", err,
			)
			continue
		}
		likers = append(likers, itemLikers...)
	}

	return likers, nil
}

// likersForItem walks the likers pagination of one entry, emitting one
// Liker per user card in pagination order.
func (c *Crawler) likersForItem(ctx context.Context, item model.Item) ([]model.Liker, error) {
	var likers []model.Liker

	pages := newPages(c.client, c.site, item.URL+likersPathSuffix)
	for pages.Next(ctx) {
		for _, card := range pages.Document().SelectAll(selectorLikerCard) {
			name, ok := card.SelectOne(selectorLikerName)
			if !ok {
				return nil, &ParseError{URL: item.URL + likersPathSuffix, Reason: "user card has no name element"}
			}

			profile, ok := card.SelectOne("a")
			if !ok {
				return nil, &ParseError{URL: item.URL + likersPathSuffix, Reason: "user card has no profile link"}
			}
			href, ok := profile.Attr("href")
			if !ok {
				return nil, &ParseError{URL: item.URL + likersPathSuffix, Reason: "user card profile link has no href attribute"}
			}
			userURL, err := resolveRef(c.site, href)
			if err != nil {
				return nil, &ParseError{URL: item.URL + likersPathSuffix, Reason: "user card profile href is not a valid URL: " + href}
			}

			likers = append(likers, model.Liker{
				Year:       item.Year,
				CalendarID: item.CalendarID,
				Date:       item.Date,
				UserName:   name.Text(),
				UserURL:    userURL,
			})
		}
	}
	if err := pages.Err(); err != nil {
		return nil, err
	}

	return likers, nil
}

// CrawlLikers enumerates every calendar for the year (optionally filtered
// by category), collects the likers of each, and hands them to visit one
// calendar at a time. Enumeration and visit errors abort the crawl;
// per-entry liker failures are isolated inside LikersForCalendar.
func (c *Crawler) CrawlLikers(ctx context.Context, year int, category string, visit LikerVisit) error {
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

		likers, err := c.LikersForCalendar(ctx, year, ref.ID)
		if err != nil {
			return err
		}

		if err := visit(i, len(refs), ref, likers); err != nil {
			return err
		}
	}

	return nil
}

// isLikableItem reports whether an entry URL qualifies for liker
// crawling: non-empty, hosted on the crawl target itself, and not under a
// private path. No fetch is ever attempted for a disqualified entry.
func (c *Crawler) isLikableItem(itemURL string) bool {
	return itemURL != "" &&
		strings.HasPrefix(itemURL, c.siteStr) &&
		!strings.Contains(itemURL, privatePathSegment)
}
