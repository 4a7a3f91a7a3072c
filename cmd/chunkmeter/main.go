// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the chunkmeter command-line interface (CLI).
package main

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/chunkmeter/cmd"
	"github.com/matt-FFFFFF/chunkmeter/internal/ctxlog"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)

	// Interrupts are handled by the run command, which drains its workers
	// on the first signal and cancels on the second.
	err := cmd.RootCmd.Run(ctx, os.Args) // Err is handled by cli framework

	cancel()

	if err != nil {
		ctxlog.Logger(ctx).Debug("command execution failed", "error", err)
		os.Exit(1)
	}

	ctxlog.Logger(ctx).Debug("command completed successfully")
}
