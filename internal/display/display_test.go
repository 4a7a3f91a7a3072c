// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package display

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/matt-FFFFFF/chunkmeter/internal/progress"
	"github.com/matt-FFFFFF/chunkmeter/internal/tui"
	"github.com/prashantv/gostub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{in: "auto", want: ModeAuto},
		{in: "TTY", want: ModeTTY},
		{in: " plain ", want: ModePlain},
		{in: "", want: ModeAuto},
		{in: "fancy", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownMode)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve(t *testing.T) {
	buf := &bytes.Buffer{}

	assert.Equal(t, ModePlain, Resolve(ModeAuto, buf), "a buffer is not a terminal")
	assert.Equal(t, ModeTTY, Resolve(ModeTTY, buf))
	assert.Equal(t, ModePlain, Resolve(ModePlain, buf))

	stubs := gostub.Stub(&IsTerminal, func(io.Writer) bool { return true })
	defer stubs.Reset()

	assert.Equal(t, ModeTTY, Resolve(ModeAuto, buf))
	assert.Equal(t, ModePlain, Resolve(ModePlain, buf))
}

func TestFactory(t *testing.T) {
	buf := &bytes.Buffer{}

	plain := Factory(context.Background(), ModeAuto, buf)()
	assert.IsType(t, &progress.PlainSurface{}, plain)

	s := Factory(context.Background(), ModeTTY, buf)()
	require.IsType(t, &tui.Surface{}, s)
	s.Close()
}
