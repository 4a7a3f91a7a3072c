// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package workerpool

import (
	"context"
	"sync/atomic"

	"github.com/matt-FFFFFF/chunkmeter/internal/chunk"
)

// Encoder processes one chunk.
// It returns nil only once every frame of the chunk is done.
type Encoder interface {
	Encode(ctx context.Context, a *Attempt) error
}

// EncoderFunc adapts a function to the Encoder interface.
type EncoderFunc func(ctx context.Context, a *Attempt) error

// Encode implements Encoder.
func (f EncoderFunc) Encode(ctx context.Context, a *Attempt) error {
	return f(ctx, a)
}

// Attempt is one try at one chunk on one worker.
// Its methods are safe for concurrent use.
type Attempt struct {
	Chunk  chunk.Chunk
	Worker int
	Try    int

	status func(msg string)
	state  *chunkState
}

// Status replaces the worker's status message.
func (a *Attempt) Status(msg string) {
	a.status(msg)
}

// FramesDone records that the first n frames of the chunk are done in this attempt.
// Counts are clamped to the chunk size and only the part beyond what any
// earlier attempt reached is reported.
func (a *Attempt) FramesDone(n uint64) {
	a.state.advance(min(n, a.Chunk.Frames()))
}

// chunkState carries the frames reported for one chunk across its attempts.
type chunkState struct {
	reported atomic.Uint64
	report   func(delta uint64)
}

func (s *chunkState) advance(n uint64) {
	for {
		old := s.reported.Load()
		if n <= old {
			return
		}

		if s.reported.CompareAndSwap(old, n) {
			s.report(n - old)
			return
		}
	}
}
