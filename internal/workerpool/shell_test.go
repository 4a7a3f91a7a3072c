// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build !windows

package workerpool

import (
	"context"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"

	"github.com/matt-FFFFFF/chunkmeter/internal/chunk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAttempt(c chunk.Chunk) (*Attempt, *[]string, *chunkState) {
	var (
		mu       sync.Mutex
		messages []string
	)

	state := &chunkState{report: func(uint64) {}}
	a := &Attempt{
		Chunk: c,
		Try:   1,
		status: func(msg string) {
			mu.Lock()
			defer mu.Unlock()

			messages = append(messages, msg)
		},
		state: state,
	}

	return a, &messages, state
}

func TestShellEncoder_EnvAndStatus(t *testing.T) {
	e := &ShellEncoder{
		Shell:   "sh",
		Command: `echo "frame=  4 fps=30"; echo "$CHUNK_NAME $CHUNK_INDEX $CHUNK_START $CHUNK_END $CHUNK_FRAMES $EXTRA"`,
		Env:     []string{"EXTRA=yes"},
	}

	c := chunk.Chunk{Index: 2, Name: "00002", Start: 20, End: 30}
	a, messages, state := newTestAttempt(c)

	require.NoError(t, e.Encode(context.Background(), a))

	require.NotEmpty(t, *messages)
	assert.Equal(t, "00002 2 20 30 10 yes", (*messages)[len(*messages)-1])
	assert.Equal(t, uint64(4), state.reported.Load())
}

func TestShellEncoder_StatusIsValidUTF8(t *testing.T) {
	e := &ShellEncoder{
		Shell:   "sh",
		Command: `printf '%s\n' "$LONG"; printf 'bad \377 byte\n'`,
		Env:     []string{"LONG=" + strings.Repeat("a", 196) + strings.Repeat("é", 10)},
	}

	a, messages, _ := newTestAttempt(chunk.Chunk{Name: "00000", End: 1})
	require.NoError(t, e.Encode(context.Background(), a))

	require.Len(t, *messages, 2)

	for _, msg := range *messages {
		assert.True(t, utf8.ValidString(msg), "%q", msg)
		assert.LessOrEqual(t, ansi.StringWidth(msg), statusMaxLength)
	}

	assert.True(t, strings.HasSuffix((*messages)[0], "é..."))
	assert.Equal(t, "bad \uFFFD byte", (*messages)[1])
}

func TestShellEncoder_FrameCountClamped(t *testing.T) {
	e := &ShellEncoder{Shell: "sh", Command: `printf 'frame=999\r'; echo`}

	a, _, state := newTestAttempt(chunk.Chunk{Name: "00000", End: 10})

	require.NoError(t, e.Encode(context.Background(), a))
	assert.Equal(t, uint64(10), state.reported.Load())
}

func TestShellEncoder_Failure(t *testing.T) {
	e := &ShellEncoder{Shell: "sh", Command: `echo "bad input" >&2; exit 3`}

	a, _, _ := newTestAttempt(chunk.Chunk{Name: "00005", End: 10})

	err := e.Encode(context.Background(), a)
	require.ErrorIs(t, err, ErrCommandFailed)
	assert.Contains(t, err.Error(), "00005")
	assert.Contains(t, err.Error(), "bad input")
}

func TestShellEncoder_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := &ShellEncoder{Shell: "sh", Command: "sleep 10"}
	a, _, _ := newTestAttempt(chunk.Chunk{Name: "00000", End: 10})

	require.ErrorIs(t, e.Encode(ctx, a), context.Canceled)
}

func TestShellFlag(t *testing.T) {
	assert.Equal(t, "-c", shellFlag("sh"))
	assert.Equal(t, "-c", shellFlag("bash"))
}
