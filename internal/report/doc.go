// Package report renders a crawl run's summary for the operator.
//
// Three formats are supported: a terminal table (default), GitHub
// Flavored Markdown, and JSON for tool integration. All formats render
// the same model.Summary; none of them carries correctness semantics.
package report
