// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/matt-FFFFFF/chunkmeter/internal/progress"
)

const ellipsis = "…"

// AttachMsg appends lines to the display.
type AttachMsg struct {
	Lines []*progress.Line
}

// TickMsg asks for a redraw and advances the spinner.
type TickMsg time.Time

// FinishMsg asks the model to draw the final frame and quit.
type FinishMsg struct{}

// Init implements bubbletea.Model.Init.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements bubbletea.Model.Update.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setWidth(msg.Width)

	case AttachMsg:
		m.lines = append(m.lines, msg.Lines...)

	case TickMsg:
		m.frame++

	case FinishMsg:
		m.finished = true
		return m, tea.Quit
	}

	return m, nil
}

// View implements bubbletea.Model.View.
func (m *Model) View() string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var b strings.Builder

	for _, l := range m.lines {
		snap := l.Snapshot()

		switch snap.Kind {
		case progress.KindStatus:
			m.renderStatusLine(&b, snap)
		case progress.KindBar:
			m.renderBarLine(&b, snap)
		}

		b.WriteString("\n")
	}

	return b.String()
}

// renderStatusLine renders "[Worker 01] message", truncated to the terminal width.
func (m *Model) renderStatusLine(b *strings.Builder, snap progress.Snapshot) {
	label := "[Worker " + snap.Label + "]"
	b.WriteString(m.styles.Label.Render(label))
	b.WriteString(" ")

	if snap.Message == "" {
		b.WriteString(m.styles.Idle.Render("idle"))
		return
	}

	avail := m.width - len(label) - 1
	if avail < len(ellipsis) {
		avail = len(ellipsis)
	}

	b.WriteString(m.styles.Message.Render(ansi.Truncate(snap.Message, avail, ellipsis)))
}

// renderBarLine renders "⣾ [00:01:02] ━━━━━━──── 42% 42/100 (8.40 fps, eta 7s)".
func (m *Model) renderBarLine(b *strings.Builder, snap progress.Snapshot) {
	if progress.SpinnerSupported {
		if snap.Finished {
			b.WriteString(m.styles.Done.Render("✓"))
		} else {
			b.WriteString(m.styles.Spinner.Render(m.spinnerFrame()))
		}

		b.WriteString(" ")
	}

	b.WriteString(m.styles.Elapsed.Render("[" + progress.FormatElapsed(snap.Elapsed) + "]"))
	b.WriteString(" ")
	b.WriteString(m.bar.ViewAs(snap.Fraction()))
	b.WriteString(" ")
	b.WriteString(m.styles.Counters.Render(progress.CountersText(snap)))
}
