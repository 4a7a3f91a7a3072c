// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// The process-wide trackers. Construction is serialised by initMu and published
// through the atomic pointers, so every update that sees a tracker sees it fully built.
var (
	initMu sync.Mutex

	single atomic.Pointer[Tracker]
	multi  atomic.Pointer[MultiTracker]

	surfaceFactory atomic.Pointer[SurfaceFactory]
	tickInterval   atomic.Int64
)

func init() {
	tickInterval.Store(int64(DefaultTickInterval))
}

// SetSurfaceFactory sets how the next initialised tracker renders.
// Without it, trackers write plain text to stderr.
func SetSurfaceFactory(f SurfaceFactory) {
	if f == nil {
		surfaceFactory.Store(nil)
		return
	}

	surfaceFactory.Store(&f)
}

// SetTickInterval sets the background redraw cadence of the next initialised tracker.
func SetTickInterval(d time.Duration) {
	if d <= 0 {
		d = DefaultTickInterval
	}

	tickInterval.Store(int64(d))
}

func newSurface() Surface {
	if f := surfaceFactory.Load(); f != nil {
		return (*f)()
	}

	return NewPlainSurface(os.Stderr)
}

func globalOptions() []Option {
	return []Option{WithTickInterval(time.Duration(tickInterval.Load()))}
}

// InitProgress initialises the single tracker. Calls after the first are no-ops.
func InitProgress(total uint64) {
	initMu.Lock()
	defer initMu.Unlock()

	if single.Load() != nil {
		return
	}

	single.Store(NewTracker(total, newSurface(), globalOptions()...))
}

// UpdateProgress adds delta to the single tracker. No-op before InitProgress.
func UpdateProgress(delta uint64) {
	if t := single.Load(); t != nil {
		t.Update(delta)
	}
}

// SetProgressPosition overrides the single tracker position. No-op before InitProgress.
func SetProgressPosition(pos uint64) {
	if t := single.Load(); t != nil {
		t.SetPosition(pos)
	}
}

// FinishProgress completes the single tracker. No-op before InitProgress; idempotent.
func FinishProgress() {
	if t := single.Load(); t != nil {
		t.Finish()
	}
}

// ProgressSnapshot returns the single tracker state, if initialised.
func ProgressSnapshot() (Snapshot, bool) {
	t := single.Load()
	if t == nil {
		return Snapshot{}, false
	}

	return t.Snapshot(), true
}

// InitMultiProgress initialises the multi-worker tracker. Calls after the first are no-ops.
func InitMultiProgress(total uint64, workers int) {
	initMu.Lock()
	defer initMu.Unlock()

	if multi.Load() != nil {
		return
	}

	multi.Store(NewMultiTracker(total, workers, newSurface(), globalOptions()...))
}

// SetWorkerMessage replaces the text of a worker line. It returns an error
// wrapping ErrWorkerIndex for an index outside the worker lines, and nil
// before InitMultiProgress.
func SetWorkerMessage(worker int, msg string) error {
	if m := multi.Load(); m != nil {
		return m.SetWorkerMessage(worker, msg)
	}

	return nil
}

// UpdateMultiProgress adds delta to the aggregate line. No-op before InitMultiProgress.
func UpdateMultiProgress(delta uint64) {
	if m := multi.Load(); m != nil {
		m.UpdateAggregate(delta)
	}
}

// FinishMultiProgress completes every line. No-op before InitMultiProgress; idempotent.
func FinishMultiProgress() {
	if m := multi.Load(); m != nil {
		m.Finish()
	}
}

// MultiProgressSnapshot returns the state of every multi tracker line, if initialised.
func MultiProgressSnapshot() ([]Snapshot, bool) {
	m := multi.Load()
	if m == nil {
		return nil, false
	}

	return m.Snapshots(), true
}
