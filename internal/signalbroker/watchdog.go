// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/chunkmeter/internal/ctxlog"
)

// Watch monitors the signal channel until ctx is done or the channel is closed.
// The first signal calls drain, which should stop new work being handed out.
// The second signal calls cancel and Watch returns.
// Either func may be nil.
func Watch(ctx context.Context, sigCh <-chan os.Signal, drain func(), cancel context.CancelFunc) {
	drained := false

	for {
		select {
		case <-ctx.Done():
			return

		case sig, ok := <-sigCh:
			if !ok {
				return
			}

			if drained {
				ctxlog.Warn(ctx, "watchdog", "detail", "received second signal, cancelling", "signal", sig.String())

				if cancel != nil {
					cancel()
				}

				return
			}

			ctxlog.Warn(ctx, "watchdog",
				"detail", "received signal, finishing in-flight chunks; send again to abort",
				"signal", sig.String(),
			)

			drained = true

			if drain != nil {
				drain()
			}
		}
	}
}
