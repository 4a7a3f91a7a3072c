// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd(t *testing.T) {
	require.Len(t, RootCmd.Commands, 2)

	names := []string{RootCmd.Commands[0].Name, RootCmd.Commands[1].Name}
	assert.Equal(t, []string{"run", "status"}, names)
	assert.Equal(t, "chunkmeter", RootCmd.Name)
	assert.Contains(t, RootCmd.Version, "commit:")
}
