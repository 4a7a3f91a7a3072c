// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package chunk

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrInvalidSplit is returned when a job cannot be split into chunks.
	ErrInvalidSplit = errors.New("invalid chunk split")
	// ErrInvalidChunk is returned when a chunk has an empty or inverted frame range.
	ErrInvalidChunk = errors.New("invalid chunk")
)

// Chunk is a contiguous frame range [Start, End) processed by one worker.
type Chunk struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Start uint64 `json:"start"`
	End   uint64 `json:"end"`
}

// Frames returns the number of frames in the chunk.
func (c Chunk) Frames() uint64 {
	if c.End < c.Start {
		return 0
	}

	return c.End - c.Start
}

// String implements fmt.Stringer.
func (c Chunk) String() string {
	return fmt.Sprintf("chunk %s [%d, %d)", c.Name, c.Start, c.End)
}

// Name returns the canonical name of the chunk with the given index.
func Name(index int) string {
	return fmt.Sprintf("%05d", index)
}

// New creates a named chunk.
func New(index int, start, end uint64) (Chunk, error) {
	if end <= start {
		return Chunk{}, fmt.Errorf("%w: %d: start %d must be before end %d", ErrInvalidChunk, index, start, end)
	}

	return Chunk{
		Index: index,
		Name:  Name(index),
		Start: start,
		End:   end,
	}, nil
}

// Split divides totalFrames into chunks of chunkFrames frames.
// The last chunk holds the remainder and may be shorter.
func Split(totalFrames, chunkFrames uint64) ([]Chunk, error) {
	if totalFrames == 0 {
		return nil, fmt.Errorf("%w: total frames must be greater than zero", ErrInvalidSplit)
	}

	if chunkFrames == 0 {
		return nil, fmt.Errorf("%w: chunk frames must be greater than zero", ErrInvalidSplit)
	}

	n := (totalFrames + chunkFrames - 1) / chunkFrames
	chunks := make([]Chunk, 0, n)

	for start, i := uint64(0), 0; start < totalFrames; start, i = start+chunkFrames, i+1 {
		end := min(start+chunkFrames, totalFrames)
		chunks = append(chunks, Chunk{Index: i, Name: Name(i), Start: start, End: end})
	}

	return chunks, nil
}

// Sort orders chunks largest first so long chunks start early, ties by index.
func Sort(chunks []Chunk) {
	slices.SortStableFunc(chunks, func(a, b Chunk) int {
		switch {
		case a.Frames() > b.Frames():
			return -1
		case a.Frames() < b.Frames():
			return 1
		default:
			return a.Index - b.Index
		}
	})
}

// TotalFrames sums the frames of all chunks.
func TotalFrames(chunks []Chunk) uint64 {
	var total uint64

	for _, c := range chunks {
		total += c.Frames()
	}

	return total
}
