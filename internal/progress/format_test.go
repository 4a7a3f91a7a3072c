// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"testing"
	"time"

	"github.com/prashantv/gostub"
	"github.com/stretchr/testify/assert"
)

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Duration
		expected string
	}{
		{name: "zero", input: 0, expected: "00:00:00"},
		{name: "negative", input: -time.Second, expected: "00:00:00"},
		{name: "seconds", input: 59 * time.Second, expected: "00:00:59"},
		{name: "minutes", input: 61*time.Second + 500*time.Millisecond, expected: "00:01:01"},
		{name: "hours", input: 25*time.Hour + 3*time.Minute, expected: "25:03:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatElapsed(tt.input))
		})
	}
}

func TestFormatETA(t *testing.T) {
	assert.Equal(t, "?", FormatETA(time.Hour, false))
	assert.Equal(t, "45s", FormatETA(45*time.Second, true))
	assert.Equal(t, "3m 12s", FormatETA(3*time.Minute+12*time.Second, true))
	assert.Equal(t, "1h 4m", FormatETA(time.Hour+4*time.Minute+59*time.Second, true))
}

func TestFormatBar(t *testing.T) {
	tests := []struct {
		name     string
		fraction float64
		width    int
		expected string
	}{
		{name: "empty", fraction: 0, width: 5, expected: ">----"},
		{name: "half", fraction: 0.5, width: 10, expected: "#####>----"},
		{name: "full", fraction: 1, width: 4, expected: "####"},
		{name: "over", fraction: 2, width: 3, expected: "###"},
		{name: "zero width", fraction: 0.5, width: 0, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatBar(tt.fraction, tt.width))
		})
	}
}

func TestStatusText(t *testing.T) {
	snap := Snapshot{Kind: KindStatus, Label: "02", Message: "encoding frame 5"}

	assert.Equal(t, "[Worker 02] encoding frame 5", StatusText(snap))
	assert.Equal(t, StatusText(snap), Text(snap, "|", 10))
}

func TestBarText(t *testing.T) {
	snap := Snapshot{
		Kind:     KindBar,
		Position: 25,
		Total:    100,
		Elapsed:  10 * time.Second,
	}

	t.Run("with spinner", func(t *testing.T) {
		stubs := gostub.Stub(&SpinnerSupported, true)
		defer stubs.Reset()

		assert.Equal(t,
			"| [00:00:10] [##>-------]  25% 25/100 (2.50 fps, eta 30s)",
			BarText(snap, "|", 10),
		)
	})

	t.Run("without spinner support", func(t *testing.T) {
		stubs := gostub.Stub(&SpinnerSupported, false)
		defer stubs.Reset()

		assert.Equal(t,
			"[00:00:10] [##>-------]  25% 25/100 (2.50 fps, eta 30s)",
			BarText(snap, "|", 10),
		)
	})
}

func TestCountersText_Complete(t *testing.T) {
	snap := Snapshot{Kind: KindBar, Position: 10, Total: 10, Elapsed: 4 * time.Second, Finished: true}

	assert.Equal(t, "100% 10/10 (2.50 fps, eta 0s)", CountersText(snap))
}
