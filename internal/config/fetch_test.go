// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	testCases := []struct {
		name     string
		url      string
		wantErr  error
		wantName string
	}{
		{
			name:    "empty url returns error",
			url:     "",
			wantErr: ErrGetJobFile,
		},
		{
			name:    "unreachable git source",
			url:     "git::http://notexist//job.yaml",
			wantErr: ErrGetJobFile,
		},
		{
			name:     "local file",
			url:      "./testdata/job.yaml",
			wantName: "job.yaml",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			data, name, err := Fetch(context.Background(), tc.url)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, data)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.wantName, name)
			assert.Contains(t, string(data), "name: trailer")
		})
	}
}

func TestLoad(t *testing.T) {
	for _, url := range []string{"./testdata/job.yaml", "./testdata/job.hcl"} {
		t.Run(url, func(t *testing.T) {
			j, err := Load(context.Background(), url)
			require.NoError(t, err)
			require.NoError(t, j.Validate())

			assert.Equal(t, "trailer", j.Name)
			assert.Equal(t, 2, j.Workers)
			assert.Equal(t, uint64(100), j.TotalFrames)
			assert.Equal(t, uint64(30), j.ChunkFrames)
		})
	}
}

func TestSplitFileNameFromGetterURL(t *testing.T) {
	tests := []struct {
		url      string
		wantURL  string
		wantFile string
	}{
		{
			url:      "git::https://github.com/org/repo//jobs/trailer.yaml?ref=v1.2.0",
			wantURL:  "git::https://github.com/org/repo//jobs?ref=v1.2.0",
			wantFile: "trailer.yaml",
		},
		{
			url:      "git::https://github.com/org/repo//trailer.hcl",
			wantURL:  "git::https://github.com/org/repo",
			wantFile: "trailer.hcl",
		},
		{
			url: "https://example.com/trailer.yaml",
		},
		{
			url: "git::https://github.com/org/repo//jobs/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			gotURL, gotFile := splitFileNameFromGetterURL(tt.url)
			assert.Equal(t, tt.wantURL, gotURL)
			assert.Equal(t, tt.wantFile, gotFile)
		})
	}
}
