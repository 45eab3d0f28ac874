// Copyright (c) mwpot14 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package dataset

import (
	"errors"
	"math"
)

// ErrSingularMatrix is returned when a correlation matrix cannot be
// inverted.
var ErrSingularMatrix = errors.New("singular correlation matrix")

// invert returns the inverse of a square matrix using Gauss-Jordan
// elimination with partial pivoting. The matrices here are small, dense
// correlation matrices (tens of rows), so no factorization library is
// warranted.
func invert(m [][]float64) ([][]float64, error) {
	n := len(m)
	if n == 0 {
		return [][]float64{}, nil
	}

	// Augment a working copy with the identity.
	a := make([][]float64, n)
	inv := make([][]float64, n)

	for i := range a {
		a[i] = make([]float64, n)
		copy(a[i], m[i])

		inv[i] = make([]float64, n)
		inv[i][i] = 1
	}

	for col := range n {
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(a[r][col]) > math.Abs(a[pivot][col]) {
				pivot = r
			}
		}

		if a[pivot][col] == 0 || math.IsNaN(a[pivot][col]) {
			return nil, ErrSingularMatrix
		}

		a[col], a[pivot] = a[pivot], a[col]
		inv[col], inv[pivot] = inv[pivot], inv[col]

		scale := a[col][col]
		for j := range n {
			a[col][j] /= scale
			inv[col][j] /= scale
		}

		for r := range n {
			if r == col || a[r][col] == 0 {
				continue
			}

			factor := a[r][col]
			for j := range n {
				a[r][j] -= factor * a[col][j]
				inv[r][j] -= factor * inv[col][j]
			}
		}
	}

	return inv, nil
}
