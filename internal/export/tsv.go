package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// TSVWriter streams records as tab-separated rows with a leading header.
//
// Design decision: We build on encoding/csv with a tab comma rather than
// joining fields by hand because the csv package already handles the
// quoting of fields that contain tabs or newlines (calendar and entry
// titles occasionally do).
type TSVWriter struct {
	w       *csv.Writer
	closer  io.Closer
	written int
}

// NewTSVWriter creates a writer that emits the header row immediately.
func NewTSVWriter(w io.Writer, header []string) (*TSVWriter, error) {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	if err := cw.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write TSV header: %w", err)
	}

	tw := &TSVWriter{w: cw}
	if c, ok := w.(io.Closer); ok {
		tw.closer = c
	}
	return tw, nil
}

// CreateTSVFile creates path (and its parent directories) and returns a
// TSVWriter over it. Closing the writer closes the file.
func CreateTSVFile(path string, header []string) (*TSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(path) //nolint:gosec // User-chosen output path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	tw, err := NewTSVWriter(f, header)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return tw, nil
}

// Write appends one record row.
func (t *TSVWriter) Write(record []string) error {
	if err := t.w.Write(record); err != nil {
		return fmt.Errorf("failed to write TSV record: %w", err)
	}
	t.written++
	return nil
}

// WriteAll appends a batch of record rows.
func (t *TSVWriter) WriteAll(records [][]string) error {
	for _, record := range records {
		if err := t.Write(record); err != nil {
			return err
		}
	}
	return nil
}

// Written returns the number of record rows written, the header excluded.
func (t *TSVWriter) Written() int {
	return t.written
}

// Close flushes buffered rows and closes the underlying file, if the
// writer owns one. Rows written before an error or abort stay on disk;
// there is no rollback.
func (t *TSVWriter) Close() error {
	t.w.Flush()
	flushErr := t.w.Error()

	if t.closer != nil {
		if err := t.closer.Close(); err != nil {
			return fmt.Errorf("failed to close output file: %w", err)
		}
	}

	if flushErr != nil {
		return fmt.Errorf("failed to flush TSV output: %w", flushErr)
	}
	return nil
}
