// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package chunk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	chunks, err := Split(250, 100)
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	assert.Equal(t, Chunk{Index: 0, Name: "00000", Start: 0, End: 100}, chunks[0])
	assert.Equal(t, Chunk{Index: 1, Name: "00001", Start: 100, End: 200}, chunks[1])
	assert.Equal(t, Chunk{Index: 2, Name: "00002", Start: 200, End: 250}, chunks[2])
	assert.Equal(t, uint64(250), TotalFrames(chunks))
}

func TestSplit_Exact(t *testing.T) {
	chunks, err := Split(300, 100)
	require.NoError(t, err)
	require.Len(t, chunks, 3)
	assert.Equal(t, uint64(100), chunks[2].Frames())
}

func TestSplit_Invalid(t *testing.T) {
	_, err := Split(0, 10)
	require.ErrorIs(t, err, ErrInvalidSplit)

	_, err = Split(10, 0)
	require.ErrorIs(t, err, ErrInvalidSplit)
}

func TestNew(t *testing.T) {
	c, err := New(7, 10, 25)
	require.NoError(t, err)
	assert.Equal(t, "00007", c.Name)
	assert.Equal(t, uint64(15), c.Frames())
	assert.Equal(t, "chunk 00007 [10, 25)", c.String())

	_, err = New(1, 10, 10)
	require.ErrorIs(t, err, ErrInvalidChunk)
}

func TestSort_LargestFirstTiesByIndex(t *testing.T) {
	chunks := []Chunk{
		{Index: 0, Name: "00000", Start: 0, End: 10},
		{Index: 1, Name: "00001", Start: 10, End: 40},
		{Index: 2, Name: "00002", Start: 40, End: 50},
		{Index: 3, Name: "00003", Start: 50, End: 80},
	}

	Sort(chunks)

	names := make([]string, 0, len(chunks))
	for _, c := range chunks {
		names = append(names, c.Name)
	}

	assert.Equal(t, []string{"00001", "00003", "00000", "00002"}, names)
}

func TestFrames_Inverted(t *testing.T) {
	assert.Zero(t, Chunk{Start: 10, End: 5}.Frames())
}
