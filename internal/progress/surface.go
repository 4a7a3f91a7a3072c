// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Surface is the shared multi-line rendering target that lines are attached to.
// Trackers attach their lines once, ask for a redraw on every tick, and close
// the surface exactly once when they finish.
type Surface interface {
	// Attach appends lines to the surface in display order.
	Attach(lines ...*Line)
	// Refresh redraws the attached lines.
	Refresh()
	// Close renders the final state and releases the output.
	Close()
}

// SurfaceFactory creates the surface for a tracker being initialised.
type SurfaceFactory func() Surface

var _ Surface = (*PlainSurface)(nil)

// PlainSurface writes one text line per change, for output that is not a terminal.
type PlainSurface struct {
	w        io.Writer
	interval time.Duration
	width    int

	mu        sync.Mutex
	lines     []*Line
	lastPrint time.Time
	closed    bool
}

// PlainOption configures a PlainSurface.
type PlainOption func(*PlainSurface)

// WithPlainInterval sets the minimum time between two refreshes that print.
func WithPlainInterval(d time.Duration) PlainOption {
	return func(s *PlainSurface) {
		s.interval = d
	}
}

// WithPlainBarWidth sets the width of the text bar.
func WithPlainBarWidth(width int) PlainOption {
	return func(s *PlainSurface) {
		s.width = width
	}
}

// NewPlainSurface creates a PlainSurface writing to w.
func NewPlainSurface(w io.Writer, opts ...PlainOption) *PlainSurface {
	s := &PlainSurface{
		w:        w,
		interval: 2 * time.Second, //nolint:mnd
		width:    DefaultBarWidth,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Attach implements Surface.
func (s *PlainSurface) Attach(lines ...*Line) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = append(s.lines, lines...)
}

// Refresh implements Surface. It prints the lines that changed since the last
// print, unless the previous print was less than the interval ago.
func (s *PlainSurface) Refresh() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	now := time.Now()
	if s.interval > 0 && now.Sub(s.lastPrint) < s.interval {
		return
	}

	s.lastPrint = now

	for _, l := range s.lines {
		if !l.TakeDirty() {
			continue
		}

		snap := l.Snapshot()
		if snap.Kind == KindStatus && snap.Message == "" {
			continue
		}

		fmt.Fprintln(s.w, Text(snap, "", s.width)) //nolint:errcheck
	}
}

// Close implements Surface. It prints every bar line in its final state.
func (s *PlainSurface) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.closed = true

	for _, l := range s.lines {
		snap := l.Snapshot()
		if snap.Kind != KindBar {
			continue
		}

		fmt.Fprintln(s.w, Text(snap, "", s.width)) //nolint:errcheck
	}
}
