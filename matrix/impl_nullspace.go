// SPDX-License-Identifier: MIT
// Package matrix: reduced row echelon form, rank and left nullspace.
//
// Purpose:
//   - Diagnose singular kinetic-order matrices. A case whose Ad is singular has
//     no steady-state solution; the left nullspace tells which equations are
//     linearly dependent.
//
// Determinism:
//   - Partial pivoting with a fixed column sweep; ties keep the upper row.

package matrix

import "math"

const (
	opRank          = "Rank"
	opLeftNullspace = "LeftNullspace"
	opNullspace     = "Nullspace"
)

// rref reduces d (in place) to reduced row echelon form and returns the
// pivot column of each pivot row, in order.
//
// Complexity: O(r*c*min(r,c)).
func rref(d *Dense) []int {
	rows, cols := d.r, d.c
	pivots := make([]int, 0, rows)
	var (
		lead, i, j, r int
		best, v, piv  float64
		f             float64
	)
	for lead = 0; lead < cols && r < rows; lead++ {
		best, i = 0, -1
		for j = r; j < rows; j++ {
			if v = math.Abs(d.data[j*cols+lead]); v > best {
				best, i = v, j
			}
		}
		if i < 0 || best < PivotTolerance {
			// Column is numerically empty below row r: flush residue to exact 0.
			for j = r; j < rows; j++ {
				d.data[j*cols+lead] = 0
			}
			continue
		}
		if i != r {
			for j = 0; j < cols; j++ {
				d.data[i*cols+j], d.data[r*cols+j] = d.data[r*cols+j], d.data[i*cols+j]
			}
		}
		piv = d.data[r*cols+lead]
		for j = 0; j < cols; j++ {
			d.data[r*cols+j] /= piv
		}
		for i = 0; i < rows; i++ {
			if i == r {
				continue
			}
			f = d.data[i*cols+lead]
			if f == 0 {
				continue
			}
			for j = 0; j < cols; j++ {
				d.data[i*cols+j] -= f * d.data[r*cols+j]
			}
		}
		pivots = append(pivots, lead)
		r++
	}

	return pivots
}

// Rank returns the numerical rank of m (pivots above PivotTolerance).
func Rank(m Matrix) (int, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf(opRank, err)
	}
	d, err := asDense(m)
	if err != nil {
		return 0, matrixErrorf(opRank, err)
	}

	return len(rref(d.clone())), nil
}

// Nullspace returns a basis of {x : m·x = 0} as the columns of a Cols(m)×k
// matrix. Each basis vector is scaled so its first non-zero entry equals 1.
// A full-column-rank input yields a Cols(m)×0 matrix.
//
// Implementation:
//   - Stage 1: RREF of a copy of m.
//   - Stage 2: one vector per free column f: x_f = 1, x_pivot(r) = −R[r,f].
//   - Stage 3: normalise by the first entry with |x| ≥ PivotTolerance.
func Nullspace(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opNullspace, err)
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opNullspace, err)
	}
	red := d.clone()
	pivots := rref(red)
	cols := red.c

	isPivot := make([]bool, cols)
	for _, p := range pivots {
		isPivot[p] = true
	}
	free := make([]int, 0, cols-len(pivots))
	for j := 0; j < cols; j++ {
		if !isPivot[j] {
			free = append(free, j)
		}
	}

	basis := mustDense(cols, len(free))
	var (
		k, r, f int
		vec     = make([]float64, cols)
		first   float64
	)
	for k, f = range free {
		for r = range vec {
			vec[r] = 0
		}
		vec[f] = 1
		for r = range pivots {
			vec[pivots[r]] = -red.data[r*cols+f]
		}
		first = 0
		for r = range vec {
			if math.Abs(vec[r]) >= PivotTolerance {
				first = vec[r]
				break
			}
		}
		for r = range vec {
			basis.data[r*len(free)+k] = vec[r] / first
		}
	}

	return basis, nil
}

// LeftNullspace returns a basis of {v : vᵀ·m = 0} as columns, i.e. the
// nullspace of mᵀ. For a square S-system matrix each column names a group of
// linearly dependent equations (its non-zero rows).
func LeftNullspace(m Matrix) (*Dense, error) {
	t, err := Transpose(m)
	if err != nil {
		return nil, matrixErrorf(opLeftNullspace, err)
	}
	ns, err := Nullspace(t)
	if err != nil {
		return nil, matrixErrorf(opLeftNullspace, err)
	}

	return ns, nil
}
