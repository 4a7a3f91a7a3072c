// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package status

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/matt-FFFFFF/chunkmeter/internal/chunk"
	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

const testDir = "/tmp/status"

// seedState saves a queue of 40 frames in chunks of 10 with the first n chunks done.
func seedState(t *testing.T, n int) {
	t.Helper()

	fs := afero.NewMemMapFs()
	stubs := gostub.Stub(&chunk.FsFactory, func() afero.Fs { return fs })
	t.Cleanup(stubs.Reset)

	chunks, err := chunk.Split(40, 10)
	require.NoError(t, err)
	require.NoError(t, chunk.SaveQueue(testDir, chunks))

	done, err := chunk.NewDoneTracker(testDir, chunk.TotalFrames(chunks), false)
	require.NoError(t, err)

	for _, c := range chunks[:n] {
		require.NoError(t, done.MarkDone(c))
	}
}

func runStatus(t *testing.T, args ...string) (string, error) {
	t.Helper()

	out := &bytes.Buffer{}
	root := &cli.Command{
		Name:           "chunkmeter",
		Writer:         out,
		ErrWriter:      &bytes.Buffer{},
		Commands:       []*cli.Command{NewStatusCmd()},
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}

	err := root.Run(context.Background(), append([]string{"chunkmeter", "status"}, args...))

	return out.String(), err
}

func TestRead(t *testing.T) {
	seedState(t, 3)

	r, err := Read(testDir)
	require.NoError(t, err)

	assert.Equal(t, 4, r.Chunks)
	assert.Equal(t, 3, r.DoneChunks)
	assert.Equal(t, 1, r.RemainingChunks)
	assert.Equal(t, []string{"00003"}, r.Remaining)
	assert.Equal(t, uint64(40), r.Frames)
	assert.Equal(t, uint64(30), r.DoneFrames)
	assert.InDelta(t, 75.0, r.Percent, 0.001)
}

func TestRead_NoQueue(t *testing.T) {
	fs := afero.NewMemMapFs()
	stubs := gostub.Stub(&chunk.FsFactory, func() afero.Fs { return fs })
	defer stubs.Reset()

	_, err := Read(testDir)
	require.ErrorIs(t, err, ErrReadState)
	require.ErrorIs(t, err, chunk.ErrNoQueue)
}

func TestStatusCmd_Text(t *testing.T) {
	seedState(t, 2)

	out, err := runStatus(t, "--temp", testDir)
	require.NoError(t, err)

	assert.Contains(t, out, testDir)
	assert.Contains(t, out, "50.0%")
	assert.Contains(t, out, "chunks: 2/4 done, 2 remaining")
	assert.Contains(t, out, "frames: 20/40 done")
}

func TestStatusCmd_JSON(t *testing.T) {
	seedState(t, 4)

	out, err := runStatus(t, "--temp", testDir, "--json")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.InDelta(t, 4.0, got["done_chunks"], 0)
	assert.InDelta(t, 0.0, got["remaining_chunks"], 0)
	assert.InDelta(t, 100.0, got["percent"], 0)
	assert.Equal(t, []any{}, got["remaining"])
}

func TestStatusCmd_MissingState(t *testing.T) {
	fs := afero.NewMemMapFs()
	stubs := gostub.Stub(&chunk.FsFactory, func() afero.Fs { return fs })
	defer stubs.Reset()

	_, err := runStatus(t, "--temp", testDir)
	require.Error(t, err)

	var exitErr cli.ExitCoder
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.ExitCode())
}
