// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package teereader provides a writer that keeps everything written to it while
// tracking the last complete line. Encoder processes write their output here so
// a worker can show what it is doing and still report the full output on failure.
package teereader
