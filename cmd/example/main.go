// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main shows the process-wide progress API driven directly from goroutines.
package main

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/matt-FFFFFF/chunkmeter/internal/ctxlog"
	"github.com/matt-FFFFFF/chunkmeter/internal/display"
	"github.com/matt-FFFFFF/chunkmeter/internal/progress"
)

const (
	workers   = 4
	chunks    = 12
	perChunk  = 40
	frameTime = 15 * time.Millisecond
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second) //nolint:mnd
	defer cancel()

	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)

	progress.SetSurfaceFactory(display.Factory(ctx, display.ModeAuto, os.Stderr))
	progress.InitMultiProgress(chunks*perChunk, workers)

	work := make(chan int)

	go func() {
		defer close(work)

		for i := range chunks {
			work <- i
		}
	}()

	var wg sync.WaitGroup

	for w := range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for c := range work {
				for f := 1; f <= perChunk; f++ {
					time.Sleep(frameTime)

					_ = progress.SetWorkerMessage(w, fmt.Sprintf("chunk %05d: frame %d/%d", c, f, perChunk))
					progress.UpdateMultiProgress(1)
				}
			}

			_ = progress.SetWorkerMessage(w, "done")
		}()
	}

	wg.Wait()
	progress.FinishMultiProgress()

	ctxlog.Info(ctx, "example finished")
}
