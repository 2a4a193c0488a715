// SPDX-License-Identifier: MIT
// Package matrix: characteristic polynomial (Faddeev–LeVerrier).

package matrix

const opCharPoly = "CharacteristicPolynomial"

// CharacteristicPolynomial returns the coefficients of det(λI − A) ordered
// from the highest degree down: [1, c_{n−1}, …, c_0].
//
// Implementation (Faddeev–LeVerrier):
//   - M_0 = 0, c_n = 1.
//   - For k = 1..n: M_k = A·M_{k−1} + c_{n−k+1}·I, c_{n−k} = −tr(A·M_k)/k.
//
// Behavior highlights:
//   - Exact for integer matrices up to floating rounding; no eigen solve needed,
//     which is all the Routh–Hurwitz test requires.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare.
//
// Complexity:
//   - Time O(n^4), Space O(n^2).
func CharacteristicPolynomial(m Matrix) ([]float64, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(opCharPoly, err)
	}
	a, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opCharPoly, err)
	}

	n := a.r
	coeffs := make([]float64, n+1)
	coeffs[0] = 1
	mk := mustDense(n, n) // M_0 = 0
	var (
		k, i int
		am   *Dense
		tr   float64
	)
	for k = 1; k <= n; k++ {
		// M_k = A·M_{k−1} + c_{n−k+1}·I ; coeffs[k−1] holds c_{n−k+1}.
		if am, err = Mul(a, mk); err != nil {
			return nil, matrixErrorf(opCharPoly, err)
		}
		for i = 0; i < n; i++ {
			am.data[i*n+i] += coeffs[k-1]
		}
		mk = am
		// c_{n−k} = −tr(A·M_k)/k
		if am, err = Mul(a, mk); err != nil {
			return nil, matrixErrorf(opCharPoly, err)
		}
		tr = 0
		for i = 0; i < n; i++ {
			tr += am.data[i*n+i]
		}
		coeffs[k] = -tr / float64(k)
	}

	return coeffs, nil
}
