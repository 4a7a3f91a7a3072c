// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"context"
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matt-FFFFFF/chunkmeter/internal/progress"
)

var _ progress.Surface = (*Surface)(nil)

// Surface draws progress lines inline on a terminal using a bubbletea program.
// The program does not read from stdin and does not install signal handlers,
// those are left to the caller.
type Surface struct {
	model     *Model
	program   *tea.Program
	done      chan struct{}
	err       error
	closeOnce sync.Once
}

// NewSurface starts a bubbletea program writing to w.
// Cancelling ctx stops the program; Close must still be called to wait for it.
func NewSurface(ctx context.Context, w io.Writer) *Surface {
	m := NewModel()

	s := &Surface{
		model: m,
		program: tea.NewProgram(m,
			tea.WithContext(ctx),
			tea.WithOutput(w),
			tea.WithInput(nil),
			tea.WithoutSignalHandler(),
		),
		done: make(chan struct{}),
	}

	go func() {
		defer close(s.done)

		_, s.err = s.program.Run()
	}()

	return s
}

// Attach implements progress.Surface.
func (s *Surface) Attach(lines ...*progress.Line) {
	s.program.Send(AttachMsg{Lines: lines})
}

// Refresh implements progress.Surface.
func (s *Surface) Refresh() {
	s.program.Send(TickMsg(time.Now()))
}

// Close draws the final frame and waits for the program to exit.
func (s *Surface) Close() {
	s.closeOnce.Do(func() {
		s.program.Send(FinishMsg{})
		<-s.done
	})
}

// Err returns the error the program exited with, if any.
// It is only meaningful after Close has returned.
func (s *Surface) Err() error {
	select {
	case <-s.done:
		return s.err
	default:
		return nil
	}
}
