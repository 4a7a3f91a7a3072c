// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	j := Default()

	assert.Equal(t, DefaultTemp, j.Temp)
	assert.Equal(t, DefaultMaxTries, j.MaxTries)
	assert.Equal(t, DefaultShell(), j.Shell)
	assert.GreaterOrEqual(t, j.Workers, 1)
	assert.True(t, j.Simulated())
}

func TestParse_YAML(t *testing.T) {
	data := `
name: trailer
workers: 4
temp: /tmp/trailer
max_tries: 5
command: encode --start $CHUNK_START --frames $CHUNK_FRAMES
frame_time: 40ms
total_frames: 1000
chunk_frames: 240
`
	j, err := Parse("job.yaml", []byte(data))
	require.NoError(t, err)

	assert.Equal(t, "trailer", j.Name)
	assert.Equal(t, 4, j.Workers)
	assert.Equal(t, "/tmp/trailer", j.Temp)
	assert.Equal(t, 5, j.MaxTries)
	assert.Equal(t, 40*time.Millisecond, j.FrameTime)
	assert.Equal(t, uint64(1000), j.TotalFrames)
	assert.Equal(t, uint64(240), j.ChunkFrames)
	assert.False(t, j.Simulated())
	assert.Equal(t, DefaultShell(), j.Shell, "unset fields keep defaults")
	require.NoError(t, j.Validate())
}

func TestParse_YAMLExplicitChunks(t *testing.T) {
	data := `
name: scenes
chunks:
  - start: 0
    end: 120
  - start: 120
    end: 400
`
	j, err := Parse("scenes.yml", []byte(data))
	require.NoError(t, err)
	require.NoError(t, j.Validate())

	chunks, err := j.BuildChunks()
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, "00001", chunks[1].Name)
	assert.Equal(t, uint64(280), chunks[1].Frames())
}

func TestParse_YAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "unknown field", data: "name: x\nworkerz: 3\n"},
		{name: "bad duration", data: "name: x\nframe_time: soon\n"},
		{name: "bad type", data: "workers: many\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("job.yaml", []byte(tt.data))
			require.ErrorIs(t, err, ErrInvalidYAML)
		})
	}
}

func TestParse_HCL(t *testing.T) {
	t.Setenv("CHUNKMETER_TEST_ROOT", "/scratch")

	data := `
job "trailer" {
  workers      = 3
  temp         = "${env.CHUNKMETER_TEST_ROOT}/trailer"
  command      = "encode"
  shell        = "bash"
  frame_time   = "1s"

  chunk {
    start = 0
    end   = 50
  }

  chunk {
    start = 50
    end   = 75
  }
}
`
	j, err := Parse("job.HCL", []byte(data))
	require.NoError(t, err)

	assert.Equal(t, "trailer", j.Name)
	assert.Equal(t, 3, j.Workers)
	assert.Equal(t, "/scratch/trailer", j.Temp)
	assert.Equal(t, "bash", j.Shell)
	assert.Equal(t, time.Second, j.FrameTime)
	assert.Equal(t, DefaultMaxTries, j.MaxTries)
	assert.Equal(t, []Range{{Start: 0, End: 50}, {Start: 50, End: 75}}, j.Chunks)
	require.NoError(t, j.Validate())
}

func TestParse_HCLErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "syntax", data: `job "x" {`},
		{name: "no job", data: ``},
		{name: "two jobs", data: "job \"a\" {}\njob \"b\" {}\n"},
		{name: "unknown attribute", data: "job \"a\" {\n  speed = 3\n}\n"},
		{name: "bad duration", data: "job \"a\" {\n  frame_time = \"later\"\n}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("job.hcl", []byte(tt.data))
			require.ErrorIs(t, err, ErrInvalidHCL)
		})
	}
}

func TestValidate_AggregatesProblems(t *testing.T) {
	j := &Job{
		Name:      " ",
		Workers:   0,
		MaxTries:  0,
		FrameTime: -time.Second,
		Command:   "encode",
	}

	err := j.Validate()
	require.ErrorIs(t, err, ErrInvalidJob)

	for _, want := range []string{
		"name must not be empty",
		"workers must be at least 1",
		"max_tries must be at least 1",
		"temp must not be empty",
		"frame_time must not be negative",
		"shell must not be empty",
		"total_frames must be greater than zero",
		"chunk_frames must be greater than zero",
	} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestValidate_ChunkConflicts(t *testing.T) {
	j := Default()
	j.TotalFrames = 100
	j.Chunks = []Range{{Start: 10, End: 5}}

	err := j.Validate()
	require.ErrorIs(t, err, ErrInvalidJob)
	assert.Contains(t, err.Error(), "cannot be combined")

	j.TotalFrames = 0
	err = j.Validate()
	require.ErrorIs(t, err, ErrInvalidJob)
	assert.Contains(t, err.Error(), "chunk 0: start 10 must be before end 5")
}

func TestBuildChunks_Split(t *testing.T) {
	j := Default()
	j.TotalFrames = 100
	j.ChunkFrames = 30

	chunks, err := j.BuildChunks()
	require.NoError(t, err)
	require.Len(t, chunks, 4)
	assert.Equal(t, uint64(10), chunks[3].Frames())
}
