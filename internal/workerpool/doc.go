// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package workerpool runs a chunk queue on a fixed number of workers.
//
// Each worker takes the next chunk from the queue, hands it to an Encoder and
// retries it up to MaxTries times. Progress flows to a Reporter: worker
// status messages keyed by worker index, and frame counts that only ever
// increase, even across retries.
package workerpool
