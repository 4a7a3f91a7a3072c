// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"sync"
	"time"
)

// DefaultTickInterval is the steady redraw cadence.
const DefaultTickInterval = 100 * time.Millisecond

// steadyTicker calls fn on a fixed cadence until stop is called.
type steadyTicker struct {
	stopCh chan struct{}
	doneCh chan struct{}
	once   sync.Once
}

// startTicker starts the background tick goroutine.
func startTicker(interval time.Duration, fn func()) *steadyTicker {
	if interval <= 0 {
		interval = DefaultTickInterval
	}

	t := &steadyTicker{
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}

	go t.loop(interval, fn)

	return t
}

func (t *steadyTicker) loop(interval time.Duration, fn func()) {
	defer close(t.doneCh)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-t.stopCh:
			return
		case <-ticker.C:
			fn()
		}
	}
}

// stop stops the tick and waits for the goroutine to exit. Safe to call more than once.
func (t *steadyTicker) stop() {
	t.once.Do(func() {
		close(t.stopCh)
	})
	<-t.doneCh
}
