// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

var (
	// ErrWorkerIndex is returned when a worker index does not address a worker line.
	ErrWorkerIndex = errors.New("worker index out of range")
)

// Option configures a tracker.
type Option func(*options)

type options struct {
	tickInterval time.Duration
}

// WithTickInterval sets the background redraw cadence.
func WithTickInterval(d time.Duration) Option {
	return func(o *options) {
		o.tickInterval = d
	}
}

func newOptions(opts []Option) options {
	o := options{
		tickInterval: DefaultTickInterval,
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// Tracker displays one aggregate counter against a known total.
type Tracker struct {
	line    *Line
	surface Surface
	ticker  *steadyTicker
	once    sync.Once
}

// NewTracker creates the aggregate line, attaches it to the surface,
// resets it and starts the background tick.
func NewTracker(total uint64, surface Surface, opts ...Option) *Tracker {
	o := newOptions(opts)

	t := &Tracker{
		line:    NewBarLine(total),
		surface: surface,
	}

	surface.Attach(t.line)
	t.line.Reset()
	t.ticker = startTicker(o.tickInterval, surface.Refresh)

	return t
}

// Update adds delta to the position.
func (t *Tracker) Update(delta uint64) {
	t.line.Inc(delta)
}

// SetPosition overrides the position, for resuming.
func (t *Tracker) SetPosition(pos uint64) {
	t.line.SetPosition(pos)
}

// Finish stops the tick and renders the completed state. Safe to call more than once.
func (t *Tracker) Finish() {
	t.once.Do(func() {
		t.ticker.stop()
		t.line.Finish()
		t.surface.Close()
	})
}

// Snapshot returns the state of the aggregate line.
func (t *Tracker) Snapshot() Snapshot {
	return t.line.Snapshot()
}

// MultiTracker displays one status line per worker and a trailing aggregate line.
type MultiTracker struct {
	lines   []*Line // workers, then the aggregate
	workers int
	surface Surface
	ticker  *steadyTicker
	once    sync.Once
}

// NewMultiTracker creates the worker lines in ordinal order, appends the
// aggregate line, attaches them all to the surface and starts the background tick.
func NewMultiTracker(total uint64, workers int, surface Surface, opts ...Option) *MultiTracker {
	o := newOptions(opts)

	if workers < 0 {
		workers = 0
	}

	lines := make([]*Line, 0, workers+1)
	for i := range workers {
		lines = append(lines, NewStatusLine(i))
	}

	agg := NewBarLine(0)
	agg.Reset()
	agg.SetLength(total)
	lines = append(lines, agg)

	m := &MultiTracker{
		lines:   lines,
		workers: workers,
		surface: surface,
	}

	surface.Attach(lines...)
	m.ticker = startTicker(o.tickInterval, surface.Refresh)

	return m
}

// Workers returns the number of worker lines.
func (m *MultiTracker) Workers() int {
	return m.workers
}

// SetWorkerMessage replaces the text of one worker line.
func (m *MultiTracker) SetWorkerMessage(worker int, msg string) error {
	if worker < 0 || worker >= m.workers {
		return fmt.Errorf("%w: %d (workers: %d)", ErrWorkerIndex, worker, m.workers)
	}

	m.lines[worker].SetMessage(msg)

	return nil
}

// UpdateAggregate adds delta to the aggregate line.
func (m *MultiTracker) UpdateAggregate(delta uint64) {
	m.aggregate().Inc(delta)
}

// Finish finalises every line in slot order and stops the tick. Safe to call more than once.
func (m *MultiTracker) Finish() {
	m.once.Do(func() {
		m.ticker.stop()

		for _, l := range m.lines {
			l.Finish()
		}

		m.surface.Close()
	})
}

// Snapshots returns the state of every line in slot order.
func (m *MultiTracker) Snapshots() []Snapshot {
	snaps := make([]Snapshot, len(m.lines))
	for i, l := range m.lines {
		snaps[i] = l.Snapshot()
	}

	return snaps
}

func (m *MultiTracker) aggregate() *Line {
	return m.lines[len(m.lines)-1]
}
