// Copyright (c) mwpot14 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"
)

// File names inside the data directory, as the sampler expects them.
const (
	BovyRix13File          = "bovyrix13kzdata.csv"
	ClemensFile            = "clemens1985_table2.dat"
	McClureGriffiths07File = "McClureGriffiths2007.dat"
	McClureGriffiths16File = "McClureGriffiths2016.dat"
)

// DefaultDSinL is the default correlation length in sin(l) for the terminal
// velocity correlation matrices.
const DefaultDSinL = 0.5 / 8.0

var (
	// ErrShortRow is returned when a data row has fewer columns than needed.
	ErrShortRow = errors.New("row has too few columns")
	// ErrBadNumber is returned when a cell cannot be parsed as a float.
	ErrBadNumber = errors.New("cannot parse number")
	// ErrEmptyTable is returned when a data file contains no usable rows.
	ErrEmptyTable = errors.New("no data rows in file")
)

// KzData holds the Bovy & Rix (2013) vertical force measurements: surface
// density radii with K_z values and their errors.
type KzData struct {
	SurfRs []float64
	Kz     []float64
	KzErr  []float64
}

// TermVelData holds a terminal velocity curve: galactic longitudes, terminal
// velocities, and the inverse of the longitude correlation matrix.
type TermVelData struct {
	Glon    []float64
	VTerm   []float64
	InvCorr [][]float64
}

// ReadBovyRix13Kz reads the K_z data file. Columns 2, 6 and 7 of the CSV
// are the surface density radius, K_z and K_z error.
func ReadBovyRix13Kz(fsys afero.Fs, dir string) (KzData, error) {
	rows, err := loadTable(fsys, filepath.Join(dir, BovyRix13File), ",", "")
	if err != nil {
		return KzData{}, err
	}

	data := KzData{
		SurfRs: make([]float64, len(rows)),
		Kz:     make([]float64, len(rows)),
		KzErr:  make([]float64, len(rows)),
	}

	for i, row := range rows {
		if len(row) < 8 {
			return KzData{}, fmt.Errorf("%w: %s row %d", ErrShortRow, BovyRix13File, i)
		}

		data.SurfRs[i] = row[2]
		data.Kz[i] = row[6]
		data.KzErr[i] = row[7]
	}

	return data, nil
}

// ReadClemens reads the Clemens (1985) terminal velocity table. Longitudes
// outside (40, 80) degrees are discarded, the rest are binned into one
// degree bins (dropping bins left empty), and the binned curve gets an
// inverse correlation matrix with scale dsinl.
func ReadClemens(fsys afero.Fs, dir string, dsinl float64) (TermVelData, error) {
	rows, err := loadTable(fsys, filepath.Join(dir, ClemensFile), "|", "#")
	if err != nil {
		return TermVelData{}, err
	}

	glon, vterm := twoColumns(rows)
	glon, vterm = filterLongitude(glon, vterm, 40.0, 80.0)
	glon, vterm = binLBins(glon, vterm)
	glon, vterm = dropNaNBins(glon, vterm)

	return withInvCorr(glon, vterm, dsinl)
}

// ReadMcClureGriffiths07 reads the McClure-Griffiths & Dickey (2007) fourth
// quadrant terminal velocities, keeping longitudes in (280, 320) degrees.
func ReadMcClureGriffiths07(fsys afero.Fs, dir string, dsinl float64) (TermVelData, error) {
	rows, err := loadTable(fsys, filepath.Join(dir, McClureGriffiths07File), "", "#")
	if err != nil {
		return TermVelData{}, err
	}

	glon, vterm := twoColumns(rows)
	glon, vterm = filterLongitude(glon, vterm, 280.0, 320.0)
	glon, vterm = binLBins(glon, vterm)

	return withInvCorr(glon, vterm, dsinl)
}

// ReadMcClureGriffiths16 reads the McClure-Griffiths & Dickey (2016) first
// quadrant terminal velocities, keeping longitudes in (40, 80) degrees.
func ReadMcClureGriffiths16(fsys afero.Fs, dir string, dsinl float64) (TermVelData, error) {
	rows, err := loadTable(fsys, filepath.Join(dir, McClureGriffiths16File), "&", "#")
	if err != nil {
		return TermVelData{}, err
	}

	glon, vterm := twoColumns(rows)
	glon, vterm = filterLongitude(glon, vterm, 40.0, 80.0)
	glon, vterm = binLBins(glon, vterm)

	return withInvCorr(glon, vterm, dsinl)
}

// loadTable reads a whitespace or delimiter separated numeric table,
// skipping blank lines and lines starting with the comment prefix.
func loadTable(fsys afero.Fs, path, delimiter, comment string) ([][]float64, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer f.Close() //nolint:errcheck

	var rows [][]float64

	scanner := bufio.NewScanner(f)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if comment != "" && strings.HasPrefix(line, comment) {
			continue
		}

		var cells []string
		if delimiter == "" {
			cells = strings.Fields(line)
		} else {
			cells = strings.Split(line, delimiter)
		}

		row := make([]float64, 0, len(cells))

		for _, cell := range cells {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}

			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %s line %d: %q", ErrBadNumber, path, lineNo, cell)
			}

			row = append(row, v)
		}

		if len(row) > 0 {
			rows = append(rows, row)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyTable, path)
	}

	return rows, nil
}

func twoColumns(rows [][]float64) ([]float64, []float64) {
	glon := make([]float64, 0, len(rows))
	vterm := make([]float64, 0, len(rows))

	for _, row := range rows {
		if len(row) < 2 {
			continue
		}

		glon = append(glon, row[0])
		vterm = append(vterm, row[1])
	}

	return glon, vterm
}

func filterLongitude(glon, vterm []float64, lo, hi float64) ([]float64, []float64) {
	outGlon := make([]float64, 0, len(glon))
	outVterm := make([]float64, 0, len(vterm))

	for i := range glon {
		if glon[i] > lo && glon[i] < hi {
			outGlon = append(outGlon, glon[i])
			outVterm = append(outVterm, vterm[i])
		}
	}

	return outGlon, outVterm
}

// binLBins averages the curve into one degree longitude bins. A bin with no
// samples yields NaN, matching the mean of an empty set.
func binLBins(glon, vterm []float64) ([]float64, []float64) {
	if len(glon) == 0 {
		return nil, nil
	}

	minGlon := math.Floor(slicesMin(glon))
	maxGlon := math.Floor(slicesMax(glon))
	nout := int(maxGlon-minGlon) + 1

	outGlon := make([]float64, nout)
	outVterm := make([]float64, nout)

	for i := range nout {
		lo := minGlon + float64(i)
		hi := lo + 1

		var sumG, sumV float64

		n := 0

		for j := range glon {
			if glon[j] > lo && glon[j] < hi {
				sumG += glon[j]
				sumV += vterm[j]
				n++
			}
		}

		if n == 0 {
			outGlon[i] = math.NaN()
			outVterm[i] = math.NaN()

			continue
		}

		outGlon[i] = sumG / float64(n)
		outVterm[i] = sumV / float64(n)
	}

	return outGlon, outVterm
}

func dropNaNBins(glon, vterm []float64) ([]float64, []float64) {
	outGlon := make([]float64, 0, len(glon))
	outVterm := make([]float64, 0, len(vterm))

	for i := range glon {
		if math.IsNaN(glon[i]) {
			continue
		}

		outGlon = append(outGlon, glon[i])
		outVterm = append(outVterm, vterm[i])
	}

	return outGlon, outVterm
}

func withInvCorr(glon, vterm []float64, dsinl float64) (TermVelData, error) {
	singlon := make([]float64, len(glon))
	for i, l := range glon {
		singlon[i] = math.Sin(l / 180.0 * math.Pi)
	}

	inv, err := invert(corrMatrix(singlon, dsinl))
	if err != nil {
		return TermVelData{}, err
	}

	return TermVelData{
		Glon:    glon,
		VTerm:   vterm,
		InvCorr: inv,
	}, nil
}

// corrMatrix builds the longitude correlation matrix
// exp(-|sin l_i - sin l_j| / dsinl), symmetrized, with a small diagonal
// jitter for numerical stability.
func corrMatrix(singlon []float64, dsinl float64) [][]float64 {
	n := len(singlon)
	corr := make([][]float64, n)

	for i := range corr {
		corr[i] = make([]float64, n)
		for j := range corr[i] {
			corr[i][j] = math.Exp(-math.Abs(singlon[i]-singlon[j]) / dsinl)
		}
	}

	for i := range corr {
		for j := i + 1; j < n; j++ {
			v := 0.5 * (corr[i][j] + corr[j][i])
			corr[i][j] = v
			corr[j][i] = v
		}
	}

	const jitter = 1e-10

	for i := range corr {
		corr[i][i] += jitter
	}

	return corr
}

func slicesMin(v []float64) float64 {
	m := v[0]
	for _, x := range v[1:] {
		if x < m {
			m = x
		}
	}

	return m
}

func slicesMax(v []float64) float64 {
	m := v[0]
	for _, x := range v[1:] {
		if x > m {
			m = x
		}
	}

	return m
}
