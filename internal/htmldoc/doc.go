// Package htmldoc provides a thin selector-addressable view of a parsed
// HTML page.
//
// The crawler's parsers only ever need three primitives: select the first
// element matching a CSS selector, select all matching elements, and read
// an element's text or attribute. Wrapping goquery behind this small
// surface keeps the parsers logic-only; if the underlying HTML library is
// ever replaced, this is the only package that changes.
package htmldoc
