// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package progress provides the process-wide progress display used while a job runs.
//
// There are two independent trackers. The single tracker shows one aggregate bar.
// The multi tracker shows one status line per worker followed by one aggregate bar.
// Each is initialised at most once per process, lazily, by the first Init call;
// later Init calls are no-ops. Update calls made before Init are silently ignored,
// so workers may start reporting before the orchestrator has set up the display.
//
// Rendering is delegated to a Surface. A background tick asks the surface to
// redraw at a fixed cadence until Finish is called.
//
//	progress.InitMultiProgress(totalFrames, workers)
//	defer progress.FinishMultiProgress()
//
//	// from worker i
//	_ = progress.SetWorkerMessage(i, "encoding chunk 00012")
//	progress.UpdateMultiProgress(frames)
package progress
