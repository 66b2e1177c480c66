// Package database persists crawl-run history in SQLite.
//
// Only run summaries are stored, never the crawled records themselves:
// the TSV files are the dataset, regenerated wholesale on every run. The
// history exists so an operator can answer "when did I last crawl 2023
// and how many requests did it take" without digging through shell
// history.
package database
