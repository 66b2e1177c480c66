// Package main provides the entry point for the adventcal CLI.
//
// adventcal crawls Qiita Advent Calendar pages and exports calendars,
// daily items, and per-item likers as tab-delimited files.
//
// Usage:
//
//	adventcal calendars <year>
//	adventcal likers <year>
//
// See --help for all available options.
package main

// main is the entry point for adventcal.
func main() {
	Execute()
}
