package crawler

import (
	"context"
	"net/url"

	"github.com/nao1215/adventcal/internal/htmldoc"
)

// Pages walks a chain of paginated documents by following each page's
// a[rel=next] link until none remains.
//
// Usage follows the bufio.Scanner idiom:
//
//	pages := newPages(client, site, startURL)
//	for pages.Next(ctx) {
//		doc := pages.Document()
//		...
//	}
//	if err := pages.Err(); err != nil {
//		...
//	}
//
// Each successful Next performs exactly one fetch. A consumer that stops
// calling Next stops all further fetching; no cleanup is needed. Pages is
// not restartable: each walk performs its own independent fetch sequence.
//
// Design decision: We use an explicit pull-based iterator rather than
// collecting all pages up front because the consumer may stop early
// (e.g. on a visit-callback error) and every avoided fetch is a second
// of politeness delay saved and a request the site never sees.
type Pages struct {
	// client performs the fetches.
	client *Client

	// site is the base URL that next-link hrefs are resolved against.
	site *url.URL

	// next is the URL to fetch on the next call to Next.
	// Empty once the chain is exhausted.
	next string

	// doc is the most recently fetched document.
	doc *htmldoc.Document

	// err is the first error encountered, if any.
	err error
}

// newPages creates a pagination walk starting at startURL.
// Hrefs found in rel=next links are resolved against site.
func newPages(client *Client, site *url.URL, startURL string) *Pages {
	return &Pages{
		client: client,
		site:   site,
		next:   startURL,
	}
}

// Next fetches the next page in the chain. It returns true when a page
// was fetched and is available via Document, and false when the chain is
// exhausted or an error occurred (check Err to tell the two apart).
func (p *Pages) Next(ctx context.Context) bool {
	if p.err != nil || p.next == "" {
		return false
	}

	pageURL := p.next

	doc, err := p.client.GetPage(ctx, pageURL)
	if err != nil {
		p.err = err
		return false
	}
	p.doc = doc

	// Locate the next-page link. Absence of the link is the normal end
	// of the chain; a link without an href is schema drift.
	link, ok := doc.SelectOne("a[rel=next]")
	if !ok {
		p.next = ""
		return true
	}

	href, ok := link.Attr("href")
	if !ok {
		p.err = &ParseError{URL: pageURL, Reason: "rel=next link has no href attribute"}
		return false
	}

	next, err := resolveRef(p.site, href)
	if err != nil {
		p.err = &ParseError{URL: pageURL, Reason: "rel=next link href is not a valid URL: " + href}
		return false
	}
	p.next = next

	return true
}

// Document returns the page fetched by the most recent successful Next.
func (p *Pages) Document() *htmldoc.Document {
	return p.doc
}

// Err returns the first error encountered during the walk, or nil if the
// walk ended because the next-link chain was exhausted.
func (p *Pages) Err() error {
	return p.err
}

// resolveRef resolves href against the base URL, returning an absolute
// URL string. Matches urljoin semantics: an already-absolute href is
// returned as-is.
func resolveRef(base *url.URL, href string) (string, error) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}
