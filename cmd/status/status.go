// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package status contains the command that reports how far a resumable run got.
package status

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/TylerBrock/colorjson"
	"github.com/matt-FFFFFF/chunkmeter/internal/chunk"
	"github.com/matt-FFFFFF/chunkmeter/internal/config"
	"github.com/matt-FFFFFF/chunkmeter/internal/ctxlog"
	"github.com/matt-FFFFFF/chunkmeter/internal/display"
	"github.com/matt-FFFFFF/chunkmeter/internal/progress"
	"github.com/urfave/cli/v3"
)

const (
	tempFlag = "temp"
	jsonFlag = "json"
)

var (
	// ErrReadState is returned when the saved queue or done list cannot be read.
	ErrReadState = errors.New("failed to read run state")
	// ErrWriteStatus is returned when the status cannot be written.
	ErrWriteStatus = errors.New("failed to write status")
)

// Report summarises the saved state of a run.
type Report struct {
	Dir             string   `json:"dir"`
	Chunks          int      `json:"chunks"`
	DoneChunks      int      `json:"done_chunks"`
	RemainingChunks int      `json:"remaining_chunks"`
	Frames          uint64   `json:"frames"`
	DoneFrames      uint64   `json:"done_frames"`
	Percent         float64  `json:"percent"`
	Remaining       []string `json:"remaining"`
}

// StatusCmd is the command that shows the saved state of a run.
var StatusCmd = NewStatusCmd()

// NewStatusCmd returns a fresh status command.
func NewStatusCmd() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show how many chunks of a run are done",
		Description: `Read the chunk queue and done list from the temp directory of a run
and report how much work is left for --resume.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:      tempFlag,
				Usage:     "Directory holding the chunk queue and done list",
				Value:     config.DefaultTemp,
				TakesFile: true,
			},
			&cli.BoolFlag{
				Name:        jsonFlag,
				Usage:       "Write the status as JSON",
				Value:       false,
				DefaultText: "false",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			r, err := Read(cmd.String(tempFlag))
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			if cmd.Bool(jsonFlag) {
				err = r.WriteJSON(cmd.Writer, display.IsTerminal(cmd.Writer))
			} else {
				err = r.WriteText(cmd.Writer)
			}

			if err != nil {
				return errors.Join(ErrWriteStatus, err)
			}

			return nil
		},
	}
}

// Read builds a report from the state saved in dir.
func Read(dir string) (*Report, error) {
	queue, err := chunk.LoadQueue(dir)
	if err != nil {
		return nil, errors.Join(ErrReadState, err)
	}

	done, err := chunk.ReadDone(dir)
	if err != nil {
		return nil, errors.Join(ErrReadState, err)
	}

	r := &Report{
		Dir:        dir,
		Chunks:     len(queue),
		Frames:     chunk.TotalFrames(queue),
		DoneFrames: done.DoneFrames(),
		Remaining:  []string{},
	}

	for _, c := range queue {
		if _, ok := done.Done[c.Name]; ok {
			r.DoneChunks++
			continue
		}

		r.Remaining = append(r.Remaining, c.Name)
	}

	r.RemainingChunks = len(r.Remaining)

	if r.Frames > 0 {
		r.Percent = float64(r.DoneFrames) * 100 / float64(r.Frames)
	}

	return r, nil
}

// WriteText writes a short human readable summary.
func (r *Report) WriteText(w io.Writer) error {
	bar := progress.FormatBar(r.Percent/100, 30) //nolint:mnd

	_, err := fmt.Fprintf(w, "%s\n  %s %.1f%%\n  chunks: %d/%d done, %d remaining\n  frames: %d/%d done\n",
		r.Dir, bar, r.Percent, r.DoneChunks, r.Chunks, r.RemainingChunks, r.DoneFrames, r.Frames)

	return err //nolint:wrapcheck
}

// WriteJSON writes the report as indented JSON, coloured when colour is true.
func (r *Report) WriteJSON(w io.Writer, colour bool) error {
	if os.Getenv(ctxlog.NoColourEnvVar) != "" {
		colour = false
	}

	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal status: %w", err)
	}

	var obj map[string]any
	if err := json.Unmarshal(b, &obj); err != nil {
		return fmt.Errorf("unmarshal status: %w", err)
	}

	f := colorjson.NewFormatter()
	f.Indent = 2
	f.DisabledColor = !colour

	out, err := f.Marshal(obj)
	if err != nil {
		return fmt.Errorf("format status: %w", err)
	}

	out = append(out, '\n')

	_, err = w.Write(out)

	return err //nolint:wrapcheck
}
