// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmd contains the command-line interface (CLI) for the module.
package cmd

import (
	"fmt"
	"os"

	"github.com/matt-FFFFFF/chunkmeter"
	"github.com/matt-FFFFFF/chunkmeter/cmd/run"
	"github.com/matt-FFFFFF/chunkmeter/cmd/status"
	"github.com/urfave/cli/v3"
)

// RootCmd is the root command for the CLI.
var RootCmd = &cli.Command{
	Commands: []*cli.Command{
		run.RunCmd,
		status.StatusCmd,
	},
	Writer:    os.Stdout,
	ErrWriter: os.Stderr,
	Name:      "chunkmeter",
	Version:   fmt.Sprintf("%s (commit: %s)", chunkmeter.Version, chunkmeter.Commit),
	Description: `chunkmeter splits a long frame range into chunks and encodes them with a pool
of workers, drawing per-worker status lines and an aggregate progress bar with
elapsed time, throughput and ETA. Finished chunks are recorded on disk so an
interrupted run can be resumed.`,
	Usage:     "chunkmeter run -f job.yaml",
	Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
	Authors: []any{
		"Matt White (matt-FFFFFF)",
	},
	EnableShellCompletion: true,
}
