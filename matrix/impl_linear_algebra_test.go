package matrix_test

import (
	"testing"

	"github.com/katalvlaran/dstoolbox/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-12

func mustRows(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewFromRows(rows)
	require.NoError(t, err)

	return m
}

func requireMatrixInDelta(t *testing.T, want [][]float64, got *matrix.Dense) {
	t.Helper()
	require.Equal(t, len(want), got.Rows())
	for i := range want {
		row, err := got.Row(i)
		require.NoError(t, err)
		require.InDeltaSlice(t, want[i], row, eps, "row %d", i)
	}
}

func TestAddSub(t *testing.T) {
	a := mustRows(t, [][]float64{{1, 2}, {3, 4}})
	b := mustRows(t, [][]float64{{0.5, 0}, {1, -1}})

	sum, err := matrix.Add(a, b)
	require.NoError(t, err)
	requireMatrixInDelta(t, [][]float64{{1.5, 2}, {4, 3}}, sum)

	diff, err := matrix.Sub(a, b)
	require.NoError(t, err)
	requireMatrixInDelta(t, [][]float64{{0.5, 2}, {2, 5}}, diff)

	_, err = matrix.Add(a, mustRows(t, [][]float64{{1, 2, 3}}))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.Sub(nil, b)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestMulTransposeScale(t *testing.T) {
	a := mustRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	b := mustRows(t, [][]float64{{1, 0}, {0, 1}, {1, 1}})

	p, err := matrix.Mul(a, b)
	require.NoError(t, err)
	requireMatrixInDelta(t, [][]float64{{4, 5}, {10, 11}}, p)

	_, err = matrix.Mul(a, a)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	tr, err := matrix.Transpose(a)
	require.NoError(t, err)
	requireMatrixInDelta(t, [][]float64{{1, 4}, {2, 5}, {3, 6}}, tr)

	s, err := matrix.Scale(a, -2)
	require.NoError(t, err)
	requireMatrixInDelta(t, [][]float64{{-2, -4, -6}, {-8, -10, -12}}, s)
}

// TestMulEmptyInner checks that an n×0 by 0×m product is the n×m zero matrix.
func TestMulEmptyInner(t *testing.T) {
	a, err := matrix.NewZeros(2, 0)
	require.NoError(t, err)
	b, err := matrix.NewZeros(0, 3)
	require.NoError(t, err)

	p, err := matrix.Mul(a, b)
	require.NoError(t, err)
	requireMatrixInDelta(t, [][]float64{{0, 0, 0}, {0, 0, 0}}, p)
}

func TestMatVec(t *testing.T) {
	a := mustRows(t, [][]float64{{1, 2}, {3, 4}})
	y, err := matrix.MatVec(a, []float64{1, -1})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{-1, -1}, y, eps)

	_, err = matrix.MatVec(a, []float64{1})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestInverseNeedsPivoting uses a kinetic-order matrix with a zero leading
// entry; a non-pivoting elimination would reject it.
func TestInverseNeedsPivoting(t *testing.T) {
	ad := mustRows(t, [][]float64{{0, 1}, {1, -1}})
	inv, err := matrix.Inverse(ad)
	require.NoError(t, err)
	requireMatrixInDelta(t, [][]float64{{1, 1}, {1, 0}}, inv)

	id, err := matrix.Mul(ad, inv)
	require.NoError(t, err)
	requireMatrixInDelta(t, [][]float64{{1, 0}, {0, 1}}, id)
}

func TestInverseSingular(t *testing.T) {
	_, err := matrix.Inverse(mustRows(t, [][]float64{{1, -1}, {-1, 1}}))
	require.ErrorIs(t, err, matrix.ErrSingular)

	_, err = matrix.Inverse(mustRows(t, [][]float64{{1, 2, 3}}))
	require.ErrorIs(t, err, matrix.ErrNonSquare)
}

func TestSolveAndDeterminant(t *testing.T) {
	a := mustRows(t, [][]float64{{2, 1, 0}, {1, 3, 1}, {0, 1, 4}})
	x, err := matrix.Solve(a, []float64{3, 5, 5})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 1, 1}, x, eps)

	det, err := matrix.Determinant(a)
	require.NoError(t, err)
	assert.InDelta(t, 18.0, det, eps)

	det, err = matrix.Determinant(mustRows(t, [][]float64{{0, 1}, {1, 0}}))
	require.NoError(t, err)
	assert.InDelta(t, -1.0, det, eps) // one row swap flips the sign

	det, err = matrix.Determinant(mustRows(t, [][]float64{{1, 2}, {2, 4}}))
	require.NoError(t, err)
	assert.Equal(t, 0.0, det)
}

func TestRankAndLeftNullspace(t *testing.T) {
	// Row 1 is the negation of row 0: v = (1, 1) annihilates from the left.
	a := mustRows(t, [][]float64{{1, -1, 0}, {-1, 1, 0}, {0, 0, 2}})
	r, err := matrix.Rank(a)
	require.NoError(t, err)
	require.Equal(t, 2, r)

	ns, err := matrix.LeftNullspace(a)
	require.NoError(t, err)
	require.Equal(t, 3, ns.Rows())
	require.Equal(t, 1, ns.Cols())
	col, err := ns.Col(0)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 1, 0}, col, eps)

	full, err := matrix.LeftNullspace(mustRows(t, [][]float64{{1, 0}, {0, 1}}))
	require.NoError(t, err)
	require.Equal(t, 0, full.Cols())
}

func TestCharacteristicPolynomial(t *testing.T) {
	// Eigenvalues 2 and 3: λ² − 5λ + 6.
	c, err := matrix.CharacteristicPolynomial(mustRows(t, [][]float64{{2, 0}, {1, 3}}))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, -5, 6}, c, eps)

	// Companion-like 3×3 with eigenvalues −1, −2, −3: λ³ + 6λ² + 11λ + 6.
	c, err = matrix.CharacteristicPolynomial(mustRows(t, [][]float64{
		{0, 1, 0},
		{0, 0, 1},
		{-6, -11, -6},
	}))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 6, 11, 6}, c, 1e-9)
}

func TestCompose(t *testing.T) {
	a := mustRows(t, [][]float64{{1, 2}})
	b := mustRows(t, [][]float64{{3, 4}})

	rows, err := matrix.AppendRows(a, b)
	require.NoError(t, err)
	requireMatrixInDelta(t, [][]float64{{1, 2}, {3, 4}}, rows)

	empty, err := matrix.NewZeros(0, 0)
	require.NoError(t, err)
	same, err := matrix.AppendRows(empty, a)
	require.NoError(t, err)
	requireMatrixInDelta(t, [][]float64{{1, 2}}, same)

	cols, err := matrix.AppendCols(rows, mustRows(t, [][]float64{{5}, {6}}))
	require.NoError(t, err)
	requireMatrixInDelta(t, [][]float64{{1, 2, 5}, {3, 4, 6}}, cols)

	sub, err := matrix.SubMatrix(cols, []int{1}, []int{2, 0})
	require.NoError(t, err)
	requireMatrixInDelta(t, [][]float64{{6, 3}}, sub)

	_, err = matrix.SubMatrix(cols, []int{2}, []int{0})
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}
