// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package workerpool

import (
	"context"

	"github.com/matt-FFFFFF/chunkmeter/internal/ctxlog"
	"github.com/matt-FFFFFF/chunkmeter/internal/progress"
)

// Reporter receives progress from the pool.
// Implementations must be safe for concurrent use.
type Reporter interface {
	// WorkerMessage sets the status of worker i.
	WorkerMessage(worker int, msg string)
	// Advance adds frames to the overall position.
	Advance(frames uint64)
}

var (
	_ Reporter = (*SingleReporter)(nil)
	_ Reporter = (*MultiReporter)(nil)
)

// SingleReporter drives the process-wide single tracker.
// There is no status line, so worker messages are logged at debug level.
type SingleReporter struct {
	ctx context.Context //nolint:containedctx
}

// NewSingleReporter creates a SingleReporter logging through ctx.
func NewSingleReporter(ctx context.Context) *SingleReporter {
	return &SingleReporter{ctx: ctx}
}

// WorkerMessage implements Reporter.
func (r *SingleReporter) WorkerMessage(worker int, msg string) {
	ctxlog.Debug(r.ctx, "worker status", "worker", progress.WorkerLabel(worker), "message", msg)
}

// Advance implements Reporter.
func (r *SingleReporter) Advance(frames uint64) {
	progress.UpdateProgress(frames)
}

// MultiReporter drives the process-wide multi-worker tracker.
type MultiReporter struct {
	ctx context.Context //nolint:containedctx
}

// NewMultiReporter creates a MultiReporter logging through ctx.
func NewMultiReporter(ctx context.Context) *MultiReporter {
	return &MultiReporter{ctx: ctx}
}

// WorkerMessage implements Reporter.
func (r *MultiReporter) WorkerMessage(worker int, msg string) {
	if err := progress.SetWorkerMessage(worker, msg); err != nil {
		ctxlog.Error(r.ctx, "cannot set worker message", "error", err)
	}
}

// Advance implements Reporter.
func (r *MultiReporter) Advance(frames uint64) {
	progress.UpdateMultiProgress(frames)
}
