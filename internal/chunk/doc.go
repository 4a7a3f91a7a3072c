// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package chunk splits a job into frame ranges and persists the queue and the
// set of finished chunks in the temp directory so an interrupted run can resume.
//
// Two files are kept:
//
//	chunks.json  the queue, largest chunk first
//	done.json    {"frames": <total>, "done": {"<name>": <frames>}}
package chunk
