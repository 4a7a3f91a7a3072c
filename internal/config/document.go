// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"time"
)

// document holds the settings present in a job file.
// Nil fields keep the value from Default.
type document struct {
	Name        *string `yaml:"name"`
	Workers     *int    `yaml:"workers"`
	Temp        *string `yaml:"temp"`
	MaxTries    *int    `yaml:"max_tries"`
	Command     *string `yaml:"command"`
	Shell       *string `yaml:"shell"`
	FrameTime   *string `yaml:"frame_time"`
	TotalFrames *uint64 `yaml:"total_frames"`
	ChunkFrames *uint64 `yaml:"chunk_frames"`
	Chunks      []Range `yaml:"chunks"`
}

func (d *document) toJob() (*Job, error) {
	j := Default()

	setIf(&j.Name, d.Name)
	setIf(&j.Workers, d.Workers)
	setIf(&j.Temp, d.Temp)
	setIf(&j.MaxTries, d.MaxTries)
	setIf(&j.Command, d.Command)
	setIf(&j.Shell, d.Shell)
	setIf(&j.TotalFrames, d.TotalFrames)
	setIf(&j.ChunkFrames, d.ChunkFrames)

	if d.FrameTime != nil {
		ft, err := time.ParseDuration(*d.FrameTime)
		if err != nil {
			return nil, fmt.Errorf("frame_time: %w", err)
		}

		j.FrameTime = ft
	}

	if len(d.Chunks) > 0 {
		j.Chunks = append([]Range(nil), d.Chunks...)
	}

	return j, nil
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
