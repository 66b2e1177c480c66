// Package export writes crawl records as tab-delimited files.
//
// One file is written per record kind, partitioned by year and optional
// category under the output directory:
//
//	<output>/<year>/calendars.tsv
//	<output>/<year>/items.tsv
//	<output>/<year>/likers.tsv
//
// With a category filter the file names gain a suffix, e.g.
// calendars_programming_language.tsv. Every file starts with a header row
// naming the record's fields.
package export
