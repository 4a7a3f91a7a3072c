// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/chunkmeter/internal/chunk"
)

const (
	// DefaultTemp is the temp directory used when the job does not name one.
	DefaultTemp = ".chunkmeter"
	// DefaultMaxTries is the number of attempts per chunk.
	DefaultMaxTries = 3
)

var (
	// ErrInvalidJob is returned when a job fails validation.
	ErrInvalidJob = errors.New("invalid job")
	// ErrInvalidYAML is returned when a YAML job file cannot be decoded.
	ErrInvalidYAML = errors.New("invalid YAML")
	// ErrInvalidHCL is returned when an HCL job file cannot be decoded.
	ErrInvalidHCL = errors.New("invalid HCL")
)

// Range is an explicit frame range [Start, End).
type Range struct {
	Start uint64 `yaml:"start" hcl:"start"`
	End   uint64 `yaml:"end" hcl:"end"`
}

// Job describes one chunked run.
type Job struct {
	Name     string
	Workers  int
	Temp     string
	MaxTries int

	// Command is run through Shell once per chunk. When empty the run is
	// simulated and each frame takes FrameTime.
	Command   string
	Shell     string
	FrameTime time.Duration

	TotalFrames uint64
	ChunkFrames uint64
	Chunks      []Range
}

// Default returns a job with every optional setting filled in.
func Default() *Job {
	return &Job{
		Name:     "chunkmeter",
		Workers:  runtime.NumCPU(),
		Temp:     DefaultTemp,
		MaxTries: DefaultMaxTries,
		Shell:    DefaultShell(),
	}
}

// DefaultShell returns the shell used to run chunk commands on this platform.
func DefaultShell() string {
	if runtime.GOOS == "windows" {
		return "cmd"
	}

	return "sh"
}

// Parse decodes a job file. Files ending in .hcl are HCL, anything else is YAML.
// The result is not validated.
func Parse(name string, data []byte) (*Job, error) {
	if strings.EqualFold(filepath.Ext(name), ".hcl") {
		return parseHCL(name, data)
	}

	return parseYAML(data)
}

// Simulated reports whether the job has no command to run.
func (j *Job) Simulated() bool {
	return strings.TrimSpace(j.Command) == ""
}

// Validate reports every problem with the job at once.
func (j *Job) Validate() error {
	var result error

	if strings.TrimSpace(j.Name) == "" {
		result = multierror.Append(result, errors.New("name must not be empty"))
	}

	if j.Workers < 1 {
		result = multierror.Append(result, fmt.Errorf("workers must be at least 1, got %d", j.Workers))
	}

	if j.MaxTries < 1 {
		result = multierror.Append(result, fmt.Errorf("max_tries must be at least 1, got %d", j.MaxTries))
	}

	if strings.TrimSpace(j.Temp) == "" {
		result = multierror.Append(result, errors.New("temp must not be empty"))
	}

	if j.FrameTime < 0 {
		result = multierror.Append(result, fmt.Errorf("frame_time must not be negative, got %s", j.FrameTime))
	}

	if !j.Simulated() && strings.TrimSpace(j.Shell) == "" {
		result = multierror.Append(result, errors.New("shell must not be empty when a command is set"))
	}

	switch {
	case len(j.Chunks) > 0 && (j.TotalFrames > 0 || j.ChunkFrames > 0):
		result = multierror.Append(result, errors.New("chunks cannot be combined with total_frames or chunk_frames"))

	case len(j.Chunks) > 0:
		for i, r := range j.Chunks {
			if r.End <= r.Start {
				result = multierror.Append(result, fmt.Errorf("chunk %d: start %d must be before end %d", i, r.Start, r.End))
			}
		}

	default:
		if j.TotalFrames == 0 {
			result = multierror.Append(result, errors.New("total_frames must be greater than zero"))
		}

		if j.ChunkFrames == 0 {
			result = multierror.Append(result, errors.New("chunk_frames must be greater than zero"))
		}
	}

	if result != nil {
		return errors.Join(ErrInvalidJob, result)
	}

	return nil
}

// BuildChunks returns the job's chunks in index order.
func (j *Job) BuildChunks() ([]chunk.Chunk, error) {
	if len(j.Chunks) == 0 {
		return chunk.Split(j.TotalFrames, j.ChunkFrames) //nolint:wrapcheck
	}

	chunks := make([]chunk.Chunk, 0, len(j.Chunks))

	for i, r := range j.Chunks {
		c, err := chunk.New(i, r.Start, r.End)
		if err != nil {
			return nil, err //nolint:wrapcheck
		}

		chunks = append(chunks, c)
	}

	return chunks, nil
}
