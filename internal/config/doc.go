// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config loads chunkmeter job files.
//
// A job may be written in YAML:
//
//	name: trailer
//	workers: 4
//	temp: .chunkmeter/trailer
//	max_tries: 3
//	command: ffmpeg -ss $CHUNK_START -frames:v $CHUNK_FRAMES ...
//	total_frames: 14400
//	chunk_frames: 240
//
// or in HCL, where the process environment is available as env:
//
//	job "trailer" {
//	  workers      = 4
//	  temp         = "${env.HOME}/.chunkmeter/trailer"
//	  frame_time   = "20ms"
//	  total_frames = 14400
//	  chunk_frames = 240
//	}
//
// Explicit chunks replace total_frames and chunk_frames:
//
//	chunks:
//	  - start: 0
//	    end: 300
package config
