// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"fmt"
	"runtime"
	"strings"
	"time"
)

const (
	barFilled  = '#'
	barHead    = '>'
	barEmpty   = '-'
	workerName = "Worker"
	// DefaultBarWidth is the bar width used by the text renderer.
	DefaultBarWidth = 40
)

// SpinnerSupported reports whether the platform console can draw spinner glyphs.
// The default Windows console cannot, so the spinner segment is left out there.
var SpinnerSupported = runtime.GOOS != "windows"

// FormatElapsed renders a duration as HH:MM:SS.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	secs := int64(d / time.Second)

	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs/60)%60, secs%60) //nolint:mnd
}

// FormatETA renders a remaining duration compactly, e.g. "45s", "3m 12s", "1h 4m".
func FormatETA(d time.Duration, ok bool) string {
	if !ok {
		return "?"
	}

	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60) //nolint:mnd
	default:
		return fmt.Sprintf("%dh %dm", int(d.Hours()), int(d.Minutes())%60) //nolint:mnd
	}
}

// FormatRate renders a rate with two decimals.
func FormatRate(rate float64) string {
	return fmt.Sprintf("%.2f", rate)
}

// FormatBar draws a text bar of the given width using '#', '>' and '-'.
func FormatBar(fraction float64, width int) string {
	if width <= 0 {
		return ""
	}

	filled := int(fraction * float64(width))
	if filled > width {
		filled = width
	}

	sb := strings.Builder{}
	sb.Grow(width)
	sb.WriteString(strings.Repeat(string(barFilled), filled))

	if filled < width {
		sb.WriteRune(barHead)
		sb.WriteString(strings.Repeat(string(barEmpty), width-filled-1))
	}

	return sb.String()
}

// StatusText renders a worker line: "[Worker 01] message".
func StatusText(s Snapshot) string {
	return fmt.Sprintf("[%s %s] %s", workerName, s.Label, s.Message)
}

// CountersText renders the part of an aggregate line after the bar:
// " 42% 42/100 (8.40 fps, eta 7s)".
func CountersText(s Snapshot) string {
	eta, ok := s.ETA()

	return fmt.Sprintf("%3d%% %d/%d (%s fps, eta %s)",
		s.Percent(),
		s.Position,
		s.Total,
		FormatRate(s.Rate()),
		FormatETA(eta, ok),
	)
}

// BarText renders an aggregate line with the text renderer. spinner is the
// current spinner frame; it is ignored when SpinnerSupported is false or it is empty.
func BarText(s Snapshot, spinner string, width int) string {
	sb := strings.Builder{}

	if SpinnerSupported && spinner != "" {
		sb.WriteString(spinner)
		sb.WriteString(" ")
	}

	sb.WriteString("[")
	sb.WriteString(FormatElapsed(s.Elapsed))
	sb.WriteString("] [")
	sb.WriteString(FormatBar(s.Fraction(), width))
	sb.WriteString("] ")
	sb.WriteString(CountersText(s))

	return sb.String()
}

// Text renders any line with the text renderer.
func Text(s Snapshot, spinner string, width int) string {
	if s.Kind == KindStatus {
		return StatusText(s)
	}

	return BarText(s, spinner, width)
}
