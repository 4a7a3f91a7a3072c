// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package workerpool

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/chunkmeter/internal/chunk"
	"github.com/matt-FFFFFF/chunkmeter/internal/ctxlog"
)

const (
	// StatusIdle is the message a worker shows between chunks.
	StatusIdle = "idle"
	// StatusDone is the message a worker shows once the queue is empty.
	StatusDone = "done"
)

var (
	// ErrChunkFailed is returned for a chunk that failed on every try.
	ErrChunkFailed = errors.New("chunk failed")
	// ErrNoEncoder is returned when the pool has no encoder.
	ErrNoEncoder = errors.New("no encoder")
	// ErrNoWorkers is returned when the pool has fewer than one worker.
	ErrNoWorkers = errors.New("pool needs at least one worker")
)

// DoneMarker records finished chunks. *chunk.DoneTracker implements it.
type DoneMarker interface {
	MarkDone(c chunk.Chunk) error
}

// Summary counts what happened to the chunks handed to Run.
type Summary struct {
	Completed int
	Failed    int
	// Skipped chunks were never started because the pool was drained or cancelled.
	Skipped int
}

// Pool runs chunks on Workers goroutines.
// Reporter and Done may be nil.
type Pool struct {
	Workers  int
	MaxTries int
	Encoder  Encoder
	Reporter Reporter
	Done     DoneMarker

	drainOnce sync.Once
	drainCh   chan struct{}
	initOnce  sync.Once
}

func (p *Pool) init() {
	p.initOnce.Do(func() {
		p.drainCh = make(chan struct{})
	})
}

// Drain stops handing out new chunks. Chunks already running finish normally.
// It is safe to call more than once and from any goroutine.
func (p *Pool) Drain() {
	p.init()
	p.drainOnce.Do(func() {
		close(p.drainCh)
	})
}

// Run processes chunks in order and blocks until every worker has stopped.
// A failing chunk does not stop the others. The returned error aggregates
// every failed chunk, plus the context error if the run was cancelled.
func (p *Pool) Run(ctx context.Context, chunks []chunk.Chunk) (Summary, error) {
	p.init()

	if p.Encoder == nil {
		return Summary{}, ErrNoEncoder
	}

	if p.Workers < 1 {
		return Summary{}, fmt.Errorf("%w: %d", ErrNoWorkers, p.Workers)
	}

	maxTries := max(p.MaxTries, 1)
	reporter := p.Reporter

	if reporter == nil {
		reporter = nopReporter{}
	}

	ctxlog.Debug(ctx, "starting worker pool", "workers", p.Workers, "chunks", len(chunks), "max_tries", maxTries)

	queue := make(chan chunk.Chunk)

	var dispatched atomic.Int64

	go func() {
		defer close(queue)

		for _, c := range chunks {
			if p.stopping(ctx) {
				return
			}

			select {
			case <-ctx.Done():
				return
			case <-p.drainCh:
				ctxlog.Info(ctx, "draining, no new chunks will start")
				return
			case queue <- c:
				dispatched.Add(1)
			}
		}
	}()

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		result    error
		completed int
		failed    int
	)

	for i := range p.Workers {
		wg.Add(1)

		go func(worker int) {
			defer wg.Done()
			defer reporter.WorkerMessage(worker, StatusDone)

			for c := range queue {
				// The feeder may hand over a chunk in the same instant Drain
				// is called, so a chunk is only started if neither happened.
				if ctx.Err() != nil || p.drained() {
					dispatched.Add(-1)
					continue
				}

				err := p.runChunk(ctx, worker, maxTries, reporter, c)

				mu.Lock()
				if err != nil {
					failed++
					result = multierror.Append(result, err)
				} else {
					completed++
				}
				mu.Unlock()

				reporter.WorkerMessage(worker, StatusIdle)
			}
		}(i)
	}

	wg.Wait()

	summary := Summary{
		Completed: completed,
		Failed:    failed,
		Skipped:   len(chunks) - int(dispatched.Load()),
	}

	if err := ctx.Err(); err != nil {
		result = multierror.Append(result, err)
	}

	ctxlog.Debug(ctx, "worker pool finished",
		"completed", summary.Completed,
		"failed", summary.Failed,
		"skipped", summary.Skipped,
	)

	return summary, result
}

// stopping reports whether the pool was drained or cancelled.
func (p *Pool) stopping(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	case <-p.drainCh:
		ctxlog.Info(ctx, "draining, no new chunks will start")
		return true
	default:
		return false
	}
}

// drained reports whether Drain has been called.
func (p *Pool) drained() bool {
	select {
	case <-p.drainCh:
		return true
	default:
		return false
	}
}

// runChunk tries c up to maxTries times on one worker.
func (p *Pool) runChunk(ctx context.Context, worker, maxTries int, reporter Reporter, c chunk.Chunk) error {
	logger := ctxlog.Logger(ctx).With("chunk", c.Name, "worker", worker)

	state := &chunkState{report: reporter.Advance}
	status := func(msg string) { reporter.WorkerMessage(worker, msg) }

	var lastErr error

	tries := 0

	for try := 1; try <= maxTries; try++ {
		if ctx.Err() != nil {
			break
		}

		tries = try

		if try == 1 {
			status(fmt.Sprintf("chunk %s: starting %d frames", c.Name, c.Frames()))
		} else {
			status(fmt.Sprintf("chunk %s: retry %d/%d", c.Name, try, maxTries))
		}

		a := &Attempt{Chunk: c, Worker: worker, Try: try, status: status, state: state}

		lastErr = p.Encoder.Encode(ctx, a)
		if lastErr == nil {
			state.advance(c.Frames())

			if p.Done != nil {
				if err := p.Done.MarkDone(c); err != nil {
					logger.Error("cannot record finished chunk", "error", err)
				}
			}

			logger.Debug("chunk finished", "try", try)

			return nil
		}

		logger.Warn("chunk attempt failed", "try", try, "max_tries", maxTries, "error", lastErr)
	}

	if lastErr == nil {
		lastErr = ctx.Err()
	}

	return fmt.Errorf("%w: %s after %d tries: %w", ErrChunkFailed, c.Name, tries, lastErr)
}

type nopReporter struct{}

func (nopReporter) WorkerMessage(int, string) {}

func (nopReporter) Advance(uint64) {}
