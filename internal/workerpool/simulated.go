// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package workerpool

import (
	"context"
	"fmt"
	"time"
)

var _ Encoder = (*SimulatedEncoder)(nil)

// SimulatedEncoder pretends to encode, taking FrameTime per frame.
// It is used for jobs without a command and for demos.
type SimulatedEncoder struct {
	FrameTime time.Duration
}

// Encode implements Encoder.
func (e *SimulatedEncoder) Encode(ctx context.Context, a *Attempt) error {
	frames := a.Chunk.Frames()

	var tick <-chan time.Time

	if e.FrameTime > 0 {
		t := time.NewTicker(e.FrameTime)
		defer t.Stop()

		tick = t.C
	}

	for f := uint64(1); f <= frames; f++ {
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err() //nolint:wrapcheck
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return err //nolint:wrapcheck
		}

		a.FramesDone(f)
		a.Status(fmt.Sprintf("chunk %s: frame %d/%d", a.Chunk.Name, f, frames))
	}

	return nil
}
