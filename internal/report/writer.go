package report

import (
	"io"
	"time"

	"github.com/nao1215/adventcal/internal/model"
)

// Writer renders a crawl run summary to a destination.
//
// Design decision: We use an interface so the command layer can pick the
// format from flags and hand any of them the same destination, whether
// that is stdout or a file opened with --report-file.
type Writer interface {
	// Write renders the summary. It returns the number of bytes
	// written and any error encountered.
	Write(summary *model.Summary) (int, error)
}

// durationPrecision is the rounding applied to run durations before
// display. Sub-second precision is noise for runs dominated by the
// one-second politeness delay.
const durationPrecision = time.Second

// baseWriter provides the shared output destination for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
