// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package display chooses how progress is drawn: an inline terminal UI on a
// terminal, or plain lines for logs and pipes.
package display

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matt-FFFFFF/chunkmeter/internal/progress"
	"github.com/matt-FFFFFF/chunkmeter/internal/tui"
	"golang.org/x/term"
)

// Mode selects a surface.
type Mode string

const (
	// ModeAuto uses the terminal UI when the output is a terminal.
	ModeAuto Mode = "auto"
	// ModeTTY always uses the terminal UI.
	ModeTTY Mode = "tty"
	// ModePlain always prints plain lines.
	ModePlain Mode = "plain"
)

// ErrUnknownMode is returned by ParseMode for an unrecognised mode.
var ErrUnknownMode = errors.New("unknown progress mode")

// Modes lists the accepted mode names.
func Modes() []string {
	return []string{string(ModeAuto), string(ModeTTY), string(ModePlain)}
}

// ParseMode parses a mode name, case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeAuto, ModeTTY, ModePlain:
		return m, nil
	case "":
		return ModeAuto, nil
	default:
		return "", fmt.Errorf("%w: %q (want one of %s)", ErrUnknownMode, s, strings.Join(Modes(), ", "))
	}
}

// IsTerminal reports whether w is a terminal. It is a variable for tests.
var IsTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && term.IsTerminal(int(f.Fd()))
}

// Resolve turns ModeAuto into ModeTTY or ModePlain for w.
func Resolve(m Mode, w io.Writer) Mode {
	if m != ModeAuto {
		return m
	}

	if IsTerminal(w) {
		return ModeTTY
	}

	return ModePlain
}

// Factory returns a surface factory drawing to w in mode m.
// The terminal UI stops when ctx is done.
func Factory(ctx context.Context, m Mode, w io.Writer, opts ...progress.PlainOption) progress.SurfaceFactory {
	if Resolve(m, w) == ModeTTY {
		return func() progress.Surface {
			return tui.NewSurface(ctx, w)
		}
	}

	return func() progress.Surface {
		return progress.NewPlainSurface(w, opts...)
	}
}
