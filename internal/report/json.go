package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/nao1215/adventcal/internal/model"
)

// JSONWriter renders the run summary as JSON for tool integration.
//
// Design decision: We use standard encoding/json rather than a
// third-party JSON library because the summary is a single small struct;
// streaming encoders and code generation buy nothing here.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed output.
	indent bool
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithPrettyPrint enables two-space indented JSON output.
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write renders the summary as a JSON object followed by a newline.
func (w *JSONWriter) Write(summary *model.Summary) (int, error) {
	var (
		data []byte
		err  error
	)
	if w.indent {
		data, err = json.MarshalIndent(summary, "", "  ")
	} else {
		data, err = json.Marshal(summary)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to encode summary: %w", err)
	}

	data = append(data, '\n')
	n, err := w.output.Write(data)
	if err != nil {
		return n, fmt.Errorf("failed to write summary: %w", err)
	}
	return n, nil
}
