package ssystem_test

import (
	"testing"

	"github.com/katalvlaran/dstoolbox/expression"
	"github.com/katalvlaran/dstoolbox/gma"
	"github.com/katalvlaran/dstoolbox/matrix"
	"github.com/katalvlaran/dstoolbox/ssystem"
	"github.com/katalvlaran/dstoolbox/variables"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func workedModel(t *testing.T) *gma.System {
	t.Helper()
	sys, err := gma.Parse([]string{
		"x1. = a + b*x1*x2 - c*x1",
		"x2. = c*x1 - x2",
	}, nil)
	require.NoError(t, err)
	return sys
}

func point(t *testing.T) *variables.Pool {
	t.Helper()
	p, err := variables.Parse("a=1, b=1, c=10")
	require.NoError(t, err)
	return p
}

func requireRows(t *testing.T, want [][]float64, got *matrix.Dense) {
	t.Helper()
	rows := got.RawRows()
	require.Len(t, rows, len(want))
	for i := range want {
		require.InDeltaSlice(t, want[i], rows[i], eps, "row %d", i)
	}
}

func TestFromGMAFirstCase(t *testing.T) {
	s, err := ssystem.FromGMA(workedModel(t), []int{1, 1, 1, 1})
	require.NoError(t, err)
	require.True(t, s.HasSolution())

	requireRows(t, [][]float64{{-1, 0}, {1, -1}}, s.Ad())
	m, err := s.M()
	require.NoError(t, err)
	requireRows(t, [][]float64{{-1, 0}, {-1, -1}}, m)

	l, err := s.LogarithmicGains()
	require.NoError(t, err)
	requireRows(t, [][]float64{{1, 0, -1}, {1, 0, 0}}, l)

	g, err := s.LogarithmicGain("x1", "c")
	require.NoError(t, err)
	assert.InDelta(t, -1, g, eps)
	_, err = s.LogarithmicGain("x9", "c")
	require.ErrorIs(t, err, ssystem.ErrVariableNotFound)

	ss, err := s.SteadyStateValues(point(t))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.1, 1}, ss, eps) // x1 = a/c, x2 = a
}

// TestFromGMASecondCase needs a row exchange to invert Ad.
func TestFromGMASecondCase(t *testing.T) {
	s, err := ssystem.FromGMA(workedModel(t), []int{2, 1, 1, 1})
	require.NoError(t, err)
	require.True(t, s.HasSolution())

	m, err := s.M()
	require.NoError(t, err)
	requireRows(t, [][]float64{{1, 1}, {1, 0}}, m)

	ss, err := s.SteadyStateValues(point(t))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 10}, ss, eps) // x1 = 1/b, x2 = c/b

	log, err := s.SteadyState(point(t))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 1}, log, eps)
}

func TestSolutionStrings(t *testing.T) {
	s, err := ssystem.FromGMA(workedModel(t), []int{1, 1, 1, 1})
	require.NoError(t, err)

	lin, err := s.Solution(false)
	require.NoError(t, err)
	assert.Equal(t, "x1 = a*c^-1", lin[0].String())
	assert.Equal(t, "x2 = a", lin[1].String())

	lg, err := s.Solution(true)
	require.NoError(t, err)
	assert.Equal(t, "log(x1) = log(a)-log(c)", lg[0].String())
	assert.Equal(t, "log(x2) = log(a)", lg[1].String())

	eqs := s.Equations()
	assert.Equal(t, "x1. = a-c*x1", eqs[0].String())
	assert.Equal(t, "x2. = c*x1-x2", eqs[1].String())
}

func TestSignatureMismatch(t *testing.T) {
	_, err := ssystem.FromGMA(workedModel(t), []int{1, 1, 1})
	require.ErrorIs(t, err, ssystem.ErrSignatureMismatch)
	_, err = ssystem.FromGMA(workedModel(t), []int{3, 1, 1, 1})
	require.ErrorIs(t, err, ssystem.ErrSignatureMismatch)
	_, err = ssystem.FromGMA(workedModel(t), []int{1, 0, 1, 1})
	require.ErrorIs(t, err, ssystem.ErrSignatureMismatch)
}

func TestSingularSystem(t *testing.T) {
	// Both equations share the same Ad row, so Ad = [[1,-1],[1,-1]].
	s, err := ssystem.Parse([]string{
		"x1. = a*x1 - x2",
		"x2. = x1 - x2",
	}, nil)
	require.NoError(t, err)
	require.False(t, s.HasSolution())

	_, err = s.SteadyState(point(t))
	require.ErrorIs(t, err, ssystem.ErrNoSolution)
	_, err = s.Solution(false)
	require.ErrorIs(t, err, ssystem.ErrNoSolution)
	_, err = s.Jacobian(point(t))
	require.ErrorIs(t, err, ssystem.ErrNoSolution)
}

func TestParseRejectsGMA(t *testing.T) {
	_, err := ssystem.Parse([]string{"x. = a + b - x"}, nil)
	require.ErrorIs(t, err, ssystem.ErrNotSSystem)
}

func TestFluxAndFunction(t *testing.T) {
	s, err := ssystem.FromGMA(workedModel(t), []int{1, 1, 1, 1})
	require.NoError(t, err)

	flux, err := s.Flux(point(t))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 0}, flux, eps) // V1 = a = 1, V2 = c*x1 = 1

	v, err := s.SteadyStateFunction(point(t), expression.MustParse("x2/x1 + V_x1"))
	require.NoError(t, err)
	assert.InDelta(t, 11, v, eps)

	_, err = s.SteadyState(expression.MapLookup{"a": 1, "b": 1})
	require.ErrorIs(t, err, ssystem.ErrVariableNotFound)
	_, err = s.SteadyState(expression.MapLookup{"a": 1, "b": 1, "c": 0})
	require.ErrorIs(t, err, ssystem.ErrNonPositive)
}

func TestJacobianAndRouth(t *testing.T) {
	s, err := ssystem.FromGMA(workedModel(t), []int{1, 1, 1, 1})
	require.NoError(t, err)

	j, err := s.Jacobian(point(t))
	require.NoError(t, err)
	requireRows(t, [][]float64{{-10, 0}, {10, -1}}, j)

	idx, err := s.RouthIndex(point(t))
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	arr, err := s.RouthArray(point(t))
	require.NoError(t, err)
	col, err := arr.Col(0)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 11, 10}, col, eps)
}

func TestRouthIndexOfUnstable(t *testing.T) {
	// Eigenvalues 1, 2, -3: two in the right half-plane.
	j, err := matrix.NewFromRows([][]float64{{1, 0, 0}, {0, 2, 0}, {0, 0, -3}})
	require.NoError(t, err)
	idx, err := ssystem.RouthIndexOf(j)
	require.NoError(t, err)
	assert.Equal(t, 2, idx)

	// Purely imaginary pair ±i and -1: a zero row is replaced by the
	// auxiliary derivative and no right half-plane root is reported.
	j, err = matrix.NewFromRows([][]float64{{0, 1, 0}, {-1, 0, 0}, {0, 0, -1}})
	require.NoError(t, err)
	idx, err = ssystem.RouthIndexOf(j)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
}

func TestReducedJacobian(t *testing.T) {
	s, err := ssystem.FromGMA(workedModel(t), []int{1, 1, 1, 1})
	require.NoError(t, err)

	r, err := s.WithoutAlgebraicConstraints([]string{"x2"})
	require.NoError(t, err)
	require.Equal(t, []string{"x1"}, r.Dynamic())

	// J = [[-10,0],[10,-1]]: J_DD − J_DA·J_AA⁻¹·J_AD = −10 − 0 = −10.
	j, err := r.Jacobian(point(t))
	require.NoError(t, err)
	requireRows(t, [][]float64{{-10}}, j)

	idx, err := r.RouthIndex(point(t))
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	_, err = s.WithoutAlgebraicConstraints([]string{"zz"})
	require.ErrorIs(t, err, ssystem.ErrVariableNotFound)
}
