// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// LineKind identifies what a display line shows.
type LineKind int

const (
	// KindStatus is a worker line showing free-form status text.
	KindStatus LineKind = iota
	// KindBar is an aggregate line showing position against a total.
	KindBar
)

// String implements the Stringer interface for LineKind.
func (k LineKind) String() string {
	switch k {
	case KindStatus:
		return "status"
	case KindBar:
		return "bar"
	default:
		return "unknown"
	}
}

// Line is one live-updating row of the display.
// All methods are safe for concurrent use.
type Line struct {
	kind  LineKind
	label string
	clock func() time.Time

	position atomic.Uint64
	total    atomic.Uint64
	dirty    atomic.Bool
	finished atomic.Bool

	mu         sync.RWMutex // protects the fields below
	message    string
	startedAt  time.Time
	finishedAt time.Time
}

// NewBarLine creates an aggregate line with the given total.
func NewBarLine(total uint64) *Line {
	l := &Line{
		kind:  KindBar,
		clock: time.Now,
	}
	l.total.Store(total)
	l.startedAt = l.clock()

	return l
}

// NewStatusLine creates a worker line for the zero-based worker index.
// The label is the 1-based ordinal, zero padded to two digits.
func NewStatusLine(worker int) *Line {
	l := &Line{
		kind:  KindStatus,
		label: WorkerLabel(worker),
		clock: time.Now,
	}
	l.startedAt = l.clock()

	return l
}

// WorkerLabel returns the display label for a zero-based worker index.
func WorkerLabel(worker int) string {
	return fmt.Sprintf("%02d", worker+1)
}

// Kind returns the line kind.
func (l *Line) Kind() LineKind {
	return l.kind
}

// Label returns the worker ordinal label, empty for bar lines.
func (l *Line) Label() string {
	return l.label
}

// Inc adds delta to the position.
func (l *Line) Inc(delta uint64) {
	l.position.Add(delta)
	l.dirty.Store(true)
}

// SetPosition overrides the position.
func (l *Line) SetPosition(pos uint64) {
	l.position.Store(pos)
	l.dirty.Store(true)
}

// SetLength sets the total.
func (l *Line) SetLength(total uint64) {
	l.total.Store(total)
	l.dirty.Store(true)
}

// SetMessage replaces the line text.
func (l *Line) SetMessage(msg string) {
	l.mu.Lock()
	l.message = msg
	l.mu.Unlock()
	l.dirty.Store(true)
}

// Reset sets the position to zero and restarts the elapsed time, which also clears the ETA.
func (l *Line) Reset() {
	l.mu.Lock()
	l.startedAt = l.clock()
	l.finishedAt = time.Time{}
	l.mu.Unlock()
	l.position.Store(0)
	l.dirty.Store(true)
}

// Finish marks the line as completed. It reports true only for the call that finished the line.
func (l *Line) Finish() bool {
	if !l.finished.CompareAndSwap(false, true) {
		return false
	}

	l.mu.Lock()
	l.finishedAt = l.clock()
	l.mu.Unlock()
	l.dirty.Store(true)

	return true
}

// Finished reports whether Finish has been called.
func (l *Line) Finished() bool {
	return l.finished.Load()
}

// Position returns the current position.
func (l *Line) Position() uint64 {
	return l.position.Load()
}

// Total returns the current total.
func (l *Line) Total() uint64 {
	return l.total.Load()
}

// Message returns the current text.
func (l *Line) Message() string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.message
}

// TakeDirty reports whether the line changed since the last call and clears the flag.
func (l *Line) TakeDirty() bool {
	return l.dirty.Swap(false)
}

// Snapshot returns a consistent copy of the line state.
func (l *Line) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()

	end := l.finishedAt
	if end.IsZero() {
		end = l.clock()
	}

	return Snapshot{
		Kind:     l.kind,
		Label:    l.label,
		Message:  l.message,
		Position: l.position.Load(),
		Total:    l.total.Load(),
		Elapsed:  end.Sub(l.startedAt),
		Finished: l.finished.Load(),
	}
}

// Snapshot is a point-in-time copy of a line.
type Snapshot struct {
	Kind     LineKind
	Label    string
	Message  string
	Position uint64
	Total    uint64
	Elapsed  time.Duration
	Finished bool
}

// Fraction returns position/total clamped to [0, 1]. A zero total counts as complete.
func (s Snapshot) Fraction() float64 {
	if s.Total == 0 {
		return 1
	}

	f := float64(s.Position) / float64(s.Total)
	if f > 1 {
		return 1
	}

	return f
}

// Percent returns the completed percentage, rounded down.
func (s Snapshot) Percent() int {
	return int(s.Fraction() * 100) //nolint:mnd
}

// Rate returns the position per elapsed second.
func (s Snapshot) Rate() float64 {
	secs := s.Elapsed.Seconds()
	if secs <= 0 {
		return 0
	}

	return float64(s.Position) / secs
}

// ETA estimates the time remaining from the average rate. It is zero when
// the line is complete and unknown (ok == false) when no progress has been made.
func (s Snapshot) ETA() (eta time.Duration, ok bool) {
	if s.Position >= s.Total || s.Finished {
		return 0, true
	}

	rate := s.Rate()
	if rate <= 0 {
		return 0, false
	}

	remaining := float64(s.Total - s.Position)

	return time.Duration(remaining / rate * float64(time.Second)), true
}
