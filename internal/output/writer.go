// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
)

// Format selects how records are written.
type Format string

const (
	FormatNDJSON Format = "ndjson"
	FormatText   Format = "text"
)

// ParseFormat validates a --format flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatNDJSON, "":
		return FormatNDJSON, nil
	case FormatText:
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want %s or %s)", s, FormatNDJSON, FormatText)
	}
}

// Writer writes records in the configured Format. It is safe for
// concurrent use.
type Writer struct {
	mu        sync.Mutex
	output    io.Writer
	format    Format
	encoder   *json.Encoder
	count     int
	closeFunc func() error
}

// NewWriter creates a writer that writes to w.
func NewWriter(w io.Writer, format Format) *Writer {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &Writer{
		output:  w,
		format:  format,
		encoder: enc,
	}
}

// NewFileWriter creates a writer that writes to a new file.
// The caller must call Close() when done to ensure the file is properly closed.
func NewFileWriter(filename string, format Format) (*Writer, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	w := NewWriter(file, format)
	w.closeFunc = file.Close
	return w, nil
}

// Write writes a single record. In text format a fmt.Stringer is written
// with its String method and anything else falls back to JSON.
func (w *Writer) Write(record any) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if s, ok := record.(fmt.Stringer); ok && w.format == FormatText {
		if _, err := fmt.Fprintln(w.output, s.String()); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	} else if err := w.encoder.Encode(record); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}

	w.count++
	return nil
}

// Count returns the number of records written.
func (w *Writer) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// Close closes the underlying writer if it's a file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closeFunc != nil {
		err := w.closeFunc()
		w.closeFunc = nil
		return err
	}
	return nil
}
