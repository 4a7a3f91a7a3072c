// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main demonstrates two-stage interrupt handling around a worker pool.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/matt-FFFFFF/chunkmeter/internal/chunk"
	"github.com/matt-FFFFFF/chunkmeter/internal/ctxlog"
	"github.com/matt-FFFFFF/chunkmeter/internal/display"
	"github.com/matt-FFFFFF/chunkmeter/internal/progress"
	"github.com/matt-FFFFFF/chunkmeter/internal/signalbroker"
	"github.com/matt-FFFFFF/chunkmeter/internal/workerpool"
)

const (
	workers   = 3
	frameTime = 20 * time.Millisecond
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second) //nolint:mnd
	defer cancel()

	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)
	ctxlog.LevelVar.Set(slog.LevelDebug)

	chunks, err := chunk.Split(2000, 100) //nolint:mnd
	if err != nil {
		panic(err)
	}

	fmt.Println("=== Signal Handling Demo ===")
	fmt.Println("1. Press Ctrl+C once to let running chunks finish")
	fmt.Println("2. Press Ctrl+C twice to stop immediately")

	progress.SetSurfaceFactory(display.Factory(ctx, display.ModePlain, os.Stderr))
	progress.InitMultiProgress(chunk.TotalFrames(chunks), workers)

	pool := &workerpool.Pool{
		Workers:  workers,
		Encoder:  &workerpool.SimulatedEncoder{FrameTime: frameTime},
		Reporter: workerpool.NewMultiReporter(ctx),
	}

	sigCh := signalbroker.New(ctx)
	defer signalbroker.Stop(sigCh)

	go signalbroker.Watch(ctx, sigCh, pool.Drain, cancel)

	summary, err := pool.Run(ctx, chunks)

	progress.FinishMultiProgress()

	fmt.Println("\n=== Results ===")
	fmt.Printf("completed: %d, failed: %d, not started: %d\n", summary.Completed, summary.Failed, summary.Skipped)

	if err != nil {
		fmt.Printf("error: %s\n", err)
	}
}
