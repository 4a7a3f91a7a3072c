// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package teereader

import (
	"bytes"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
)

const truncationTail = "..."

// LastLineWriter captures all data written to it and tracks the last complete line.
// Both '\n' and '\r' end a line, so carriage-return progress output from
// encoders is seen line by line.
// It is safe for concurrent use.
type LastLineWriter struct {
	fullBuffer *bytes.Buffer
	lastLine   string
	partial    strings.Builder
	onLine     func(string)
	mu         sync.RWMutex
}

// NewLastLineWriter creates a LastLineWriter.
// If onLine is not nil it is called with every non-blank completed line, outside the lock.
func NewLastLineWriter(onLine func(string)) *LastLineWriter {
	return &LastLineWriter{
		fullBuffer: &bytes.Buffer{},
		onLine:     onLine,
	}
}

// Write implements io.Writer. It never fails.
func (w *LastLineWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	w.mu.Lock()
	w.fullBuffer.Write(p)
	completed := w.processNewData(string(p))
	w.mu.Unlock()

	if w.onLine != nil {
		for _, line := range completed {
			w.onLine(line)
		}
	}

	return len(p), nil
}

// processNewData splits the partial line plus data into lines and returns the
// completed, non-blank ones.
// Must be called with the write lock held.
func (w *LastLineWriter) processNewData(data string) []string {
	w.partial.WriteString(data)
	combined := w.partial.String()

	lines := strings.FieldsFunc(combined, isLineEnd)
	if len(lines) == 0 {
		w.partial.Reset()
		return nil
	}

	if !isLineEnd(rune(combined[len(combined)-1])) {
		w.partial.Reset()
		w.partial.WriteString(lines[len(lines)-1])
		lines = lines[:len(lines)-1]
	} else {
		w.partial.Reset()
	}

	completed := make([]string, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		completed = append(completed, line)
	}

	if len(completed) > 0 {
		w.lastLine = completed[len(completed)-1]
	}

	return completed
}

func isLineEnd(r rune) bool {
	return r == '\n' || r == '\r'
}

// LastLine returns the last complete, non-blank line written.
// If maxLength > 3 and the line is longer, it is cut and "..." appended.
func (w *LastLineWriter) LastLine(maxLength int) string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return Truncate(w.lastLine, maxLength)
}

// Truncate replaces invalid UTF-8 in s and shortens it to at most maxWidth
// terminal cells, ending in "..." when cut. A maxWidth of zero or less only
// replaces invalid bytes.
func Truncate(s string, maxWidth int) string {
	s = strings.ToValidUTF8(s, string(utf8.RuneError))
	if maxWidth <= 0 {
		return s
	}

	return ansi.Truncate(s, maxWidth, truncationTail)
}

// Partial returns the data written after the last line end.
func (w *LastLineWriter) Partial() string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.partial.String()
}

// Bytes returns a copy of all data written so far.
func (w *LastLineWriter) Bytes() []byte {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return bytes.Clone(w.fullBuffer.Bytes())
}

// Tail returns at most n of the last complete or partial lines, joined by newlines.
// It is used to attach the end of an encoder's output to an error.
func (w *LastLineWriter) Tail(n int) string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	lines := strings.FieldsFunc(w.fullBuffer.String(), isLineEnd)
	if n >= 0 && len(lines) > n {
		lines = lines[len(lines)-n:]
	}

	return strings.Join(lines, "\n")
}

// Reset clears all buffers.
func (w *LastLineWriter) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.fullBuffer.Reset()
	w.lastLine = ""
	w.partial.Reset()
}
