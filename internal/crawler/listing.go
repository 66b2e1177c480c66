package crawler

import (
	"net/url"
	"path"

	"github.com/nao1215/adventcal/internal/htmldoc"
	"github.com/nao1215/adventcal/internal/model"
)

// Listing page selectors. These, together with the selectors in detail.go
// and likers.go, form the page schema contract with the site: if the site
// ships new markup, these are the strings to re-point.
const (
	selectorListingRow   = ".adventCalendarList tbody tr"
	selectorListingTitle = ".adventCalendarList_calendarTitle > a"
)

// parseListing extracts one CalendarRef per row of a listing page, in
// document order.
//
// A row without the expected title anchor, or an anchor without an href,
// is a *ParseError for the whole page. Rows are never skipped: a silent
// skip would turn schema drift into a quietly truncated dataset.
func parseListing(doc *htmldoc.Document, site *url.URL) ([]model.CalendarRef, error) {
	rows := doc.SelectAll(selectorListingRow)

	refs := make([]model.CalendarRef, 0, len(rows))
	for _, row := range rows {
		link, ok := row.SelectOne(selectorListingTitle)
		if !ok {
			return nil, &ParseError{Reason: "listing row has no calendar title link"}
		}

		href, ok := link.Attr("href")
		if !ok {
			return nil, &ParseError{Reason: "calendar title link has no href attribute"}
		}

		absURL, err := resolveRef(site, href)
		if err != nil {
			return nil, &ParseError{Reason: "calendar title link href is not a valid URL: " + href}
		}

		refs = append(refs, model.CalendarRef{
			ID:    calendarIDFromURL(absURL),
			Title: link.Text(),
			URL:   absURL,
		})
	}

	return refs, nil
}

// calendarIDFromURL derives the calendar identifier from the final path
// segment of its detail-page URL.
func calendarIDFromURL(calendarURL string) string {
	u, err := url.Parse(calendarURL)
	if err != nil {
		return path.Base(calendarURL)
	}
	return path.Base(u.Path)
}
