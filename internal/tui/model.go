// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"sync"

	bprogress "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/matt-FFFFFF/chunkmeter/internal/progress"
)

const (
	defaultWidth = 100
	minBarWidth  = 10
	maxBarWidth  = 60
	// space left for the spinner, elapsed time and counters on an aggregate line.
	barLineReserve = 52
)

// Model is the bubbletea model drawing the attached progress lines.
type Model struct {
	lines    []*progress.Line
	bar      bprogress.Model
	spinner  spinner.Spinner
	frame    int
	width    int
	finished bool
	mutex    sync.RWMutex

	styles *Styles
}

// Styles contains all the styling for the progress lines.
type Styles struct {
	Label    lipgloss.Style
	Message  lipgloss.Style
	Idle     lipgloss.Style
	Spinner  lipgloss.Style
	Elapsed  lipgloss.Style
	Counters lipgloss.Style
	Done     lipgloss.Style
}

// NewStyles creates the default styling.
func NewStyles() *Styles {
	return &Styles{
		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")).
			Bold(true),
		Message: lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")),
		Idle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			Italic(true),
		Spinner: lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")),
		Elapsed: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")),
		Counters: lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")),
		Done: lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")),
	}
}

// NewModel creates a model with no lines attached.
func NewModel() *Model {
	m := &Model{
		bar: bprogress.New(
			bprogress.WithDefaultGradient(),
			bprogress.WithoutPercentage(),
		),
		spinner: spinner.Dot,
		styles:  NewStyles(),
	}
	m.setWidth(defaultWidth)

	return m
}

// setWidth records the terminal width and sizes the bar to fit.
// Must be called with the write lock held, or before the model is shared.
func (m *Model) setWidth(width int) {
	m.width = width

	barWidth := width - barLineReserve
	switch {
	case barWidth < minBarWidth:
		barWidth = minBarWidth
	case barWidth > maxBarWidth:
		barWidth = maxBarWidth
	}

	m.bar.Width = barWidth
}

// Lines returns the attached lines in display order.
func (m *Model) Lines() []*progress.Line {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return append([]*progress.Line(nil), m.lines...)
}

// Finished reports whether the final frame has been requested.
func (m *Model) Finished() bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return m.finished
}

// spinnerFrame returns the current spinner glyph.
// Must be called with the lock held.
func (m *Model) spinnerFrame() string {
	if len(m.spinner.Frames) == 0 {
		return ""
	}

	return m.spinner.Frames[m.frame%len(m.spinner.Frames)]
}
