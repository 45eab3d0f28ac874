// Copyright (c) mwpot14 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package getter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchLocalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sweep.yaml")
	require.NoError(t, os.WriteFile(path, []byte("jobs: 4\n"), 0o644))

	data, err := Fetch(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "jobs: 4\n", string(data))
}

func TestFetchEmptyURL(t *testing.T) {
	_, err := Fetch(context.Background(), "")
	assert.ErrorIs(t, err, ErrGetDefinition)
}

func TestFetchMissingFile(t *testing.T) {
	_, err := Fetch(context.Background(), filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, ErrGetDefinition)
}

func TestSplitFileName(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		wantURL  string
		wantFile string
	}{
		{
			name:     "github subdirectory file",
			url:      "git::https://github.com/example/sweeps//configs/pal5.yaml",
			wantURL:  "git::https://github.com/example/sweeps//configs",
			wantFile: "pal5.yaml",
		},
		{
			name:     "with ref",
			url:      "git::https://github.com/example/sweeps//configs/pal5.yaml?ref=v1",
			wantURL:  "git::https://github.com/example/sweeps//configs?ref=v1",
			wantFile: "pal5.yaml",
		},
		{
			name:     "too few parts",
			url:      "https://example.com/pal5.yaml",
			wantURL:  "",
			wantFile: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gotURL, gotFile := splitFileName(tc.url)
			assert.Equal(t, tc.wantURL, gotURL)
			assert.Equal(t, tc.wantFile, gotFile)
		})
	}
}
