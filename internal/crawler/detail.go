package crawler

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/nao1215/adventcal/internal/htmldoc"
	"github.com/nao1215/adventcal/internal/model"
)

// Detail page selectors.
const (
	selectorDetailTitle    = "h1"
	selectorDetailCategory = ".adventCalendarSection_info a"
	selectorDetailStats    = ".adventCalendarJumbotron_stats"
	selectorDayCell        = ".adventCalendarCalendar_day"
	selectorDayDate        = ".adventCalendarCalendar_date"
	selectorDayAuthor      = ".adventCalendarCalendar_author a"
	selectorDayComment     = ".adventCalendarCalendar_comment"
)

// Indexes into the jumbotron stat elements. The three statistics are read
// positionally, not by label; if the site ever reorders these elements the
// values will be silently mislabeled. The markup offers no label to key
// on, so position is all there is.
const (
	statParticipants = iota
	statLikes
	statSubscribers
	statCount
)

// parseDetail extracts the Calendar aggregate and its ordered Items from a
// detail page. One Item is produced per day cell regardless of whether
// the cell has an author or an entry comment; missing sub-fields stay
// empty.
func parseDetail(year int, calendarID, pageURL string, doc *htmldoc.Document, site *url.URL) (model.Calendar, []model.Item, error) {
	title, ok := doc.SelectOne(selectorDetailTitle)
	if !ok {
		return model.Calendar{}, nil, &ParseError{URL: pageURL, Reason: "detail page has no h1 heading"}
	}

	category, ok := doc.SelectOne(selectorDetailCategory)
	if !ok {
		return model.Calendar{}, nil, &ParseError{URL: pageURL, Reason: "detail page has no category link"}
	}

	stats := doc.SelectAll(selectorDetailStats)
	if len(stats) < statCount {
		return model.Calendar{}, nil, &ParseError{
			URL:    pageURL,
			Reason: fmt.Sprintf("expected %d jumbotron stats, found %d", statCount, len(stats)),
		}
	}

	participants, err := statValue(stats[statParticipants])
	if err != nil {
		return model.Calendar{}, nil, &ParseError{URL: pageURL, Reason: "participants stat is not a number"}
	}
	likes, err := statValue(stats[statLikes])
	if err != nil {
		return model.Calendar{}, nil, &ParseError{URL: pageURL, Reason: "likes stat is not a number"}
	}
	subscribers, err := statValue(stats[statSubscribers])
	if err != nil {
		return model.Calendar{}, nil, &ParseError{URL: pageURL, Reason: "subscribers stat is not a number"}
	}

	items, err := parseItems(year, calendarID, pageURL, doc, site)
	if err != nil {
		return model.Calendar{}, nil, err
	}

	calendar := model.Calendar{
		Year:              year,
		CalendarID:        calendarID,
		Title:             title.Text(),
		URL:               pageURL,
		Category:          category.Text(),
		ParticipantsCount: participants,
		LikesCount:        likes,
		SubscribersCount:  subscribers,
	}

	return calendar, items, nil
}

// parseItems extracts one Item per day cell of the calendar grid, in grid
// order.
func parseItems(year int, calendarID, pageURL string, doc *htmldoc.Document, site *url.URL) ([]model.Item, error) {
	cells := doc.SelectAll(selectorDayCell)

	items := make([]model.Item, 0, len(cells))
	for _, cell := range cells {
		dateEl, ok := cell.SelectOne(selectorDayDate)
		if !ok {
			return nil, &ParseError{URL: pageURL, Reason: "day cell has no date element"}
		}
		date, err := strconv.Atoi(strings.TrimSpace(dateEl.Text()))
		if err != nil {
			return nil, &ParseError{URL: pageURL, Reason: "day cell date is not a number: " + dateEl.Text()}
		}

		item := model.Item{
			Year:       year,
			CalendarID: calendarID,
			Date:       date,
		}

		// Author link is optional: unclaimed days have none.
		if author, ok := cell.SelectOne(selectorDayAuthor); ok {
			href, ok := author.Attr("href")
			if !ok {
				return nil, &ParseError{URL: pageURL, Reason: "author link has no href attribute"}
			}
			userURL, err := resolveRef(site, href)
			if err != nil {
				return nil, &ParseError{URL: pageURL, Reason: "author link href is not a valid URL: " + href}
			}
			item.UserName = strings.TrimSpace(author.Text())
			item.UserURL = userURL
		}

		// The comment block is optional, and may carry a title without
		// a link (the author announced a topic but no article yet).
		// The entry URL is stored verbatim, unresolved: it routinely
		// points at foreign hosts and the liker crawl filters on the
		// raw value.
		if comment, ok := cell.SelectOne(selectorDayComment); ok {
			item.Title = comment.Text()
			if link, ok := comment.SelectOne("a"); ok {
				href, ok := link.Attr("href")
				if !ok {
					return nil, &ParseError{URL: pageURL, Reason: "entry link has no href attribute"}
				}
				item.URL = href
			}
		}

		items = append(items, item)
	}

	return items, nil
}

// statValue parses the integer text of a jumbotron stat element.
func statValue(el *htmldoc.Element) (int, error) {
	return strconv.Atoi(strings.TrimSpace(el.Text()))
}
