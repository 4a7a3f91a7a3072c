// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package tui renders progress lines live in the terminal with bubbletea.
//
// A Surface runs an inline bubbletea program (no alternate screen, no input)
// that draws every attached line: worker lines show their label and current
// status text, aggregate lines show a spinner, the elapsed time, a bar and
// the position, rate and ETA. Redraws are driven by the tracker's tick.
package tui
