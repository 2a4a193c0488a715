// SPDX-License-Identifier: MIT
// Package matrix: block composition helpers.
//
// Purpose:
//   - Stack condition blocks of several cases (AppendRows).
//   - Join dependent/independent coefficient blocks (AppendCols).
//   - Extract index-selected sub-blocks for Schur complements (SubMatrix).

package matrix

import "fmt"

const (
	opAppendRows = "AppendRows"
	opAppendCols = "AppendCols"
	opSubMatrix  = "SubMatrix"
)

// AppendRows returns [a; b] (b stacked under a). Column counts must match,
// except that a 0×k or k×0 operand defers to the other's column count when it
// has no rows.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O((ra+rb)*c).
func AppendRows(a, b Matrix) (*Dense, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opAppendRows, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opAppendRows, err)
	}
	da, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opAppendRows, err)
	}
	db, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf(opAppendRows, err)
	}
	switch {
	case da.r == 0:
		return db.clone(), nil
	case db.r == 0:
		return da.clone(), nil
	case da.c != db.c:
		return nil, matrixErrorf(opAppendRows, ErrDimensionMismatch)
	}

	res := mustDense(da.r+db.r, da.c)
	copy(res.data, da.data)
	copy(res.data[len(da.data):], db.data)

	return res, nil
}

// AppendCols returns [a b] (b to the right of a). Row counts must match.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
func AppendCols(a, b Matrix) (*Dense, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opAppendCols, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opAppendCols, err)
	}
	if a.Rows() != b.Rows() {
		return nil, matrixErrorf(opAppendCols, ErrDimensionMismatch)
	}
	da, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opAppendCols, err)
	}
	db, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf(opAppendCols, err)
	}

	cols := da.c + db.c
	res := mustDense(da.r, cols)
	for i := 0; i < da.r; i++ {
		copy(res.data[i*cols:], da.data[i*da.c:(i+1)*da.c])
		copy(res.data[i*cols+da.c:], db.data[i*db.c:(i+1)*db.c])
	}

	return res, nil
}

// SubMatrix returns the block of m selected by the given row and column
// indices, in the order given. Indices may repeat.
//
// Errors: ErrNilMatrix, ErrOutOfRange.
func SubMatrix(m Matrix, rows, cols []int) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opSubMatrix, err)
	}
	d, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opSubMatrix, err)
	}
	res := mustDense(len(rows), len(cols))
	for i, r := range rows {
		if r < 0 || r >= d.r {
			return nil, matrixErrorf(opSubMatrix, fmt.Errorf("row %d: %w", r, ErrOutOfRange))
		}
		for j, c := range cols {
			if c < 0 || c >= d.c {
				return nil, matrixErrorf(opSubMatrix, fmt.Errorf("col %d: %w", c, ErrOutOfRange))
			}
			res.data[i*len(cols)+j] = d.data[r*d.c+c]
		}
	}

	return res, nil
}
