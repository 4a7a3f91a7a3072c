// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package run contains the command that splits a job into chunks and encodes them.
package run

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/matt-FFFFFF/chunkmeter/internal/chunk"
	"github.com/matt-FFFFFF/chunkmeter/internal/config"
	"github.com/matt-FFFFFF/chunkmeter/internal/ctxlog"
	"github.com/matt-FFFFFF/chunkmeter/internal/display"
	"github.com/matt-FFFFFF/chunkmeter/internal/metrics"
	"github.com/matt-FFFFFF/chunkmeter/internal/progress"
	"github.com/matt-FFFFFF/chunkmeter/internal/signalbroker"
	"github.com/matt-FFFFFF/chunkmeter/internal/workerpool"
	"github.com/urfave/cli/v3"
)

const (
	fileFlag        = "file"
	workersFlag     = "workers"
	progressFlag    = "progress"
	resumeFlag      = "resume"
	tempFlag        = "temp"
	metricsAddrFlag = "metrics-addr"
	tickFlag        = "tick"
	cliExitStr      = ""
)

// ErrIncomplete is returned when the run stopped before every chunk was done.
var ErrIncomplete = errors.New("run incomplete")

// RunCmd is the command that encodes every chunk of a job.
var RunCmd = NewRunCmd()

// NewRunCmd returns a fresh run command.
// Commands hold parsed flag state, so tests build their own.
func NewRunCmd() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Split a job into chunks and encode them in parallel",
		Description: `Run a chunked job defined in a YAML or HCL file.
The frame range is split into chunks which are handed to a pool of workers.
Each chunk runs the job command once with CHUNK_NAME, CHUNK_INDEX, CHUNK_START,
CHUNK_END and CHUNK_FRAMES set. Jobs without a command are simulated.

Progress is drawn on stderr. Chunks that finish are recorded in the temp
directory so an interrupted run can be picked up again with --resume.

Press Ctrl-C once to let in-flight chunks finish, twice to stop immediately.

Job file URLs use Hashicorp's go-getter syntax, which allows for fetching files from various sources.
See https://github.com/hashicorp/go-getter.
`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    fileFlag,
				Aliases: []string{"f"},
				Usage: "Specify the URL of the job file. " +
					"Supports Hashicorp's go-getter syntax for fetching files from various sources.",
				TakesFile: true,
				OnlyOnce:  true,
			},
			&cli.IntFlag{
				Name:    workersFlag,
				Aliases: []string{"w"},
				Usage:   "Override the number of workers in the job file",
				Value:   0,
			},
			&cli.StringFlag{
				Name:     progressFlag,
				Aliases:  []string{"p"},
				Usage:    "Progress display, one of " + strings.Join(display.Modes(), ", "),
				Value:    string(display.ModeAuto),
				OnlyOnce: true,
			},
			&cli.BoolFlag{
				Name:        resumeFlag,
				Aliases:     []string{"r"},
				Usage:       "Skip chunks recorded as done by a previous run",
				Value:       false,
				DefaultText: "false",
				OnlyOnce:    true,
			},
			&cli.StringFlag{
				Name:      tempFlag,
				Usage:     "Override the directory holding the chunk queue and done list",
				TakesFile: true,
				OnlyOnce:  true,
			},
			&cli.StringFlag{
				Name:  metricsAddrFlag,
				Usage: "Serve Prometheus metrics on this address while the run is in progress, e.g. :9090",
			},
			&cli.DurationFlag{
				Name:  tickFlag,
				Usage: "Redraw interval for the progress display",
				Value: 100 * time.Millisecond,
			},
		},
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)
	logger.Debug("Running run command")

	url := cmd.String(fileFlag)
	if url == "" {
		logger.Error("Please specify the URL of the job file using the --file or -f flag.")
		return cli.Exit(cliExitStr, 1)
	}

	mode, err := display.ParseMode(cmd.String(progressFlag))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	job, err := config.Load(ctx, url)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to load job from %s: %s", url, err.Error()))
		return cli.Exit(cliExitStr, 1)
	}

	applyFlags(cmd, job)

	if err := job.Validate(); err != nil {
		logger.Error(err.Error())
		return cli.Exit(cliExitStr, 1)
	}

	generated, err := job.BuildChunks()
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to build chunks: %s", err.Error()))
		return cli.Exit(cliExitStr, 1)
	}

	total := chunk.TotalFrames(generated)

	queue, resumed, err := chunk.LoadOrGenerate(ctx, job.Temp, cmd.Bool(resumeFlag), generated)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to prepare chunk queue: %s", err.Error()))
		return cli.Exit(cliExitStr, 1)
	}

	done, err := chunk.NewDoneTracker(job.Temp, total, resumed)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to prepare done list: %s", err.Error()))
		return cli.Exit(cliExitStr, 1)
	}

	summary, runErr := execute(ctx, cmd, job, runSetup{
		mode:   mode,
		queue:  queue,
		total:  total,
		done:   done,
		resume: resumed,
	})

	fmt.Fprintf(cmd.Writer, "%s: %d chunks completed, %d failed, %d not started\n", //nolint:errcheck
		job.Name, summary.Completed, summary.Failed, summary.Skipped)

	if runErr != nil {
		logger.Error(fmt.Sprintf("Some chunks failed: %s", runErr.Error()))
		return cli.Exit(cliExitStr, 1)
	}

	if summary.Skipped > 0 {
		logger.Warn("Run stopped early. Use --resume to pick up the remaining chunks.",
			"error", ErrIncomplete, "remaining", summary.Skipped)

		return cli.Exit(cliExitStr, 1)
	}

	logger.Info("All chunks done", "frames", total, "temp", job.Temp)

	return nil
}

// applyFlags overrides job settings with any flags given on the command line.
func applyFlags(cmd *cli.Command, job *config.Job) {
	if cmd.IsSet(workersFlag) {
		job.Workers = cmd.Int(workersFlag)
	}

	if t := cmd.String(tempFlag); t != "" {
		job.Temp = t
	}
}

type runSetup struct {
	mode   display.Mode
	queue  []chunk.Chunk
	total  uint64
	done   *chunk.DoneTracker
	resume bool
}

// execute wires the progress display, metrics endpoint and signal handling
// around a worker pool and runs the queue to completion.
func execute(ctx context.Context, cmd *cli.Command, job *config.Job, s runSetup) (workerpool.Summary, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	mode := display.Resolve(s.mode, cmd.ErrWriter)

	// The terminal UI owns stderr while it runs, logs are replayed afterwards.
	var logBuf *bytes.Buffer
	if mode == display.ModeTTY {
		logBuf = new(bytes.Buffer)
		runCtx = ctxlog.NewForTUI(runCtx, logBuf)

		defer logBuf.WriteTo(cmd.ErrWriter) //nolint:errcheck
	}

	progress.SetSurfaceFactory(display.Factory(runCtx, mode, cmd.ErrWriter))
	defer progress.SetSurfaceFactory(nil)

	if tick := cmd.Duration(tickFlag); tick > 0 {
		progress.SetTickInterval(tick)
	}

	pool := &workerpool.Pool{
		Workers:  job.Workers,
		MaxTries: job.MaxTries,
		Encoder:  newEncoder(job),
		Done:     s.done,
	}

	var finish func()

	if job.Workers == 1 {
		progress.InitProgress(s.total)
		progress.SetProgressPosition(s.done.DoneFrames())

		pool.Reporter = workerpool.NewSingleReporter(runCtx)
		finish = progress.FinishProgress
	} else {
		progress.InitMultiProgress(s.total, job.Workers)
		progress.UpdateMultiProgress(s.done.DoneFrames())

		pool.Reporter = workerpool.NewMultiReporter(runCtx)
		finish = progress.FinishMultiProgress
	}

	if s.resume {
		ctxlog.Info(runCtx, "Resuming run", "done_frames", s.done.DoneFrames(), "chunks", len(s.queue))
	}

	stopMetrics := serveMetrics(runCtx, cmd.String(metricsAddrFlag))
	defer stopMetrics()

	sigCh := signalbroker.New(runCtx)
	defer signalbroker.Stop(sigCh)

	go signalbroker.Watch(runCtx, sigCh, func() {
		ctxlog.Warn(runCtx, "Draining: waiting for running chunks to finish. Interrupt again to stop now.")
		pool.Drain()
	}, cancel)

	summary, err := pool.Run(runCtx, s.queue)

	finish()

	return summary, err
}

// newEncoder returns the encoder the job asks for.
func newEncoder(job *config.Job) workerpool.Encoder {
	if job.Simulated() {
		return &workerpool.SimulatedEncoder{FrameTime: job.FrameTime}
	}

	return &workerpool.ShellEncoder{
		Shell:   job.Shell,
		Command: job.Command,
	}
}

// serveMetrics starts the metrics endpoint when addr is set.
// The returned func stops it and waits for the listener to close.
func serveMetrics(ctx context.Context, addr string) func() {
	if addr == "" {
		return func() {}
	}

	reg, err := metrics.NewRegistry()
	if err != nil {
		ctxlog.Error(ctx, "Failed to create metrics registry", "error", err)
		return func() {}
	}

	ctx, cancel := context.WithCancel(ctx)

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()

		if err := metrics.Serve(ctx, addr, reg); err != nil {
			ctxlog.Error(ctx, "Metrics endpoint stopped", "error", err, "addr", addr)
		}
	}()

	return func() {
		cancel()
		wg.Wait()
	}
}
