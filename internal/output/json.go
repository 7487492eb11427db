package output

import (
	"bufio"
	"encoding/json"
	"io"
)

// JSONWriter writes JSON output.
type JSONWriter struct {
	w      *bufio.Writer
	pretty bool
	indent string
}

// NewJSONWriter creates a JSON writer.
func NewJSONWriter(w io.Writer, pretty bool, indent string) *JSONWriter {
	return &JSONWriter{
		w:      bufio.NewWriter(w),
		pretty: pretty,
		indent: indent,
	}
}

// Write encodes a single document.
func (w *JSONWriter) Write(data any) error {
	enc := json.NewEncoder(w.w)
	if w.pretty {
		enc.SetIndent("", w.indent)
	}
	return enc.Encode(data)
}

// Flush writes any buffered output.
func (w *JSONWriter) Flush() error {
	return w.w.Flush()
}
