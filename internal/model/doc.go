// Package model defines the record types produced by a crawl.
//
// All records are immutable value types: they are created by the parsers,
// written once to the output files, and never mutated afterwards. Each
// record type knows its own TSV header and how to render itself as a row,
// so the export layer stays free of per-type knowledge.
package model
