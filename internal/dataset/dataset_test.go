// Copyright (c) mwpot14 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package dataset

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dataDir = "mwpot14data"

func writeDataFile(t *testing.T, fsys afero.Fs, name, contents string) {
	t.Helper()

	err := afero.WriteFile(fsys, filepath.Join(dataDir, name), []byte(contents), 0o644)
	require.NoError(t, err)
}

func TestReadBovyRix13Kz(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeDataFile(t, fsys, BovyRix13File,
		"0,0,4.5,0,0,0,70.5,5.1\n"+
			"0,0,5.5,0,0,0,64.2,4.8\n")

	data, err := ReadBovyRix13Kz(fsys, dataDir)
	require.NoError(t, err)

	assert.Equal(t, []float64{4.5, 5.5}, data.SurfRs)
	assert.Equal(t, []float64{70.5, 64.2}, data.Kz)
	assert.Equal(t, []float64{5.1, 4.8}, data.KzErr)
}

func TestReadBovyRix13KzShortRow(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeDataFile(t, fsys, BovyRix13File, "1,2,3\n")

	_, err := ReadBovyRix13Kz(fsys, dataDir)
	assert.ErrorIs(t, err, ErrShortRow)
}

func TestReadBovyRix13KzMissingFile(t *testing.T) {
	_, err := ReadBovyRix13Kz(afero.NewMemMapFs(), dataDir)
	assert.Error(t, err)
}

// clemensTable builds a pipe-delimited table with one sample per half
// degree over the given longitude range.
func clemensTable(lo, hi float64, delim string) string {
	out := "# glon " + delim + " vterm\n"

	for l := lo; l < hi; l += 0.5 {
		out += fmt.Sprintf("%.2f %s %.2f\n", l, delim, 100.0+l)
	}

	return out
}

func TestReadClemens(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeDataFile(t, fsys, ClemensFile, clemensTable(30, 90, "|"))

	data, err := ReadClemens(fsys, dataDir, DefaultDSinL)
	require.NoError(t, err)

	require.NotEmpty(t, data.Glon)
	assert.Len(t, data.VTerm, len(data.Glon))
	require.Len(t, data.InvCorr, len(data.Glon))

	// Only longitudes strictly inside (40, 80) survive the cut.
	for _, l := range data.Glon {
		assert.Greater(t, l, 40.0)
		assert.Less(t, l, 80.0)
	}
}

func TestReadClemensCommentsAndBlankLines(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeDataFile(t, fsys, ClemensFile,
		"# header\n\n50.25 | 120.0\n50.75 | 121.0\n\n51.25 | 122.0\n51.75 | 123.0\n")

	data, err := ReadClemens(fsys, dataDir, DefaultDSinL)
	require.NoError(t, err)
	require.Len(t, data.Glon, 2)
	assert.InDelta(t, 50.5, data.Glon[0], 1e-9)
	assert.InDelta(t, 120.5, data.VTerm[0], 1e-9)
}

func TestReadMcClureGriffiths07(t *testing.T) {
	fsys := afero.NewMemMapFs()

	table := "# fourth quadrant\n"
	for l := 281.0; l < 319.0; l += 0.5 {
		table += fmt.Sprintf("%.2f %.2f\n", l, -l)
	}

	writeDataFile(t, fsys, McClureGriffiths07File, table)

	data, err := ReadMcClureGriffiths07(fsys, dataDir, DefaultDSinL)
	require.NoError(t, err)
	require.NotEmpty(t, data.Glon)

	for _, l := range data.Glon {
		assert.Greater(t, l, 280.0)
		assert.Less(t, l, 320.0)
	}
}

func TestReadMcClureGriffiths16(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeDataFile(t, fsys, McClureGriffiths16File, clemensTable(41, 79, "&"))

	data, err := ReadMcClureGriffiths16(fsys, dataDir, DefaultDSinL)
	require.NoError(t, err)
	require.NotEmpty(t, data.Glon)
	assert.Len(t, data.InvCorr, len(data.Glon))
}

func TestLoadTableBadNumber(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeDataFile(t, fsys, ClemensFile, "abc | 1.0\n")

	_, err := ReadClemens(fsys, dataDir, DefaultDSinL)
	assert.ErrorIs(t, err, ErrBadNumber)
}

func TestLoadTableEmpty(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeDataFile(t, fsys, ClemensFile, "# only comments\n")

	_, err := ReadClemens(fsys, dataDir, DefaultDSinL)
	assert.ErrorIs(t, err, ErrEmptyTable)
}
