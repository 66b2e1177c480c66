package export

import (
	"fmt"
	"path/filepath"
	"strconv"
)

// Layout computes the output file paths for one crawl run.
type Layout struct {
	// Dir is the output root directory.
	Dir string

	// Year partitions the output: files live under Dir/Year.
	Year int

	// Category, when non-empty, suffixes every file name so that runs
	// over different categories of the same year do not clobber each
	// other.
	Category string
}

// CalendarsPath returns the path of the calendars TSV file.
func (l Layout) CalendarsPath() string {
	return l.path("calendars")
}

// ItemsPath returns the path of the items TSV file.
func (l Layout) ItemsPath() string {
	return l.path("items")
}

// LikersPath returns the path of the likers TSV file.
func (l Layout) LikersPath() string {
	return l.path("likers")
}

// path builds Dir/Year/kind[_category].tsv.
func (l Layout) path(kind string) string {
	name := kind
	if l.Category != "" {
		name = fmt.Sprintf("%s_%s", kind, l.Category)
	}
	return filepath.Join(l.Dir, strconv.Itoa(l.Year), name+".tsv")
}
