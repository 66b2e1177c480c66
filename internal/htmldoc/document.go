package htmldoc

import (
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"
)

// Document is a parsed HTML page addressable by CSS selectors.
type Document struct {
	doc *goquery.Document
}

// Parse reads an HTML document from r.
// The reader is consumed fully; malformed HTML is repaired the way
// browsers repair it rather than rejected.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &Document{doc: doc}, nil
}

// SelectOne returns the first element matching the CSS selector.
// The second return value reports whether a match was found.
func (d *Document) SelectOne(selector string) (*Element, bool) {
	return wrap(d.doc.Find(selector))
}

// SelectAll returns all elements matching the CSS selector in
// document order.
func (d *Document) SelectAll(selector string) []*Element {
	return wrapAll(d.doc.Find(selector))
}

// Element is a single element within a Document. Further selections made
// through an Element are scoped to its subtree.
type Element struct {
	sel *goquery.Selection
}

// SelectOne returns the first descendant matching the CSS selector.
func (e *Element) SelectOne(selector string) (*Element, bool) {
	return wrap(e.sel.Find(selector))
}

// SelectAll returns all descendants matching the CSS selector in
// document order.
func (e *Element) SelectAll(selector string) []*Element {
	return wrapAll(e.sel.Find(selector))
}

// Text returns the combined text content of the element and its
// descendants, exactly as the markup renders it (no trimming).
func (e *Element) Text() string {
	return e.sel.Text()
}

// Attr returns the value of the named attribute.
// The second return value reports whether the attribute exists.
func (e *Element) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

// wrap converts a goquery selection to a single Element, keeping only
// the first matched node so repeated selections behave like SelectOne.
func wrap(sel *goquery.Selection) (*Element, bool) {
	if sel.Length() == 0 {
		return nil, false
	}
	return &Element{sel: sel.First()}, true
}

// wrapAll converts a goquery selection to one Element per matched node.
func wrapAll(sel *goquery.Selection) []*Element {
	elements := make([]*Element, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		elements = append(elements, &Element{sel: s})
	})
	return elements
}
