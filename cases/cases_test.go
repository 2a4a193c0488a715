package cases_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/dstoolbox/cases"
	"github.com/katalvlaran/dstoolbox/expression"
	"github.com/katalvlaran/dstoolbox/gma"
	"github.com/katalvlaran/dstoolbox/variables"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func parse(t *testing.T, eqs ...string) *gma.System {
	t.Helper()
	sys, err := gma.Parse(eqs, nil)
	require.NoError(t, err)
	return sys
}

func workedModel(t *testing.T) *gma.System {
	return parse(t, "x1. = a + b*x1*x2 - c*x1", "x2. = c*x1 - x2")
}

// competing has two cases with complementary regions: a > b and b > a.
func competing(t *testing.T) (*cases.Case, *cases.Case) {
	sys := parse(t, "x. = a + b - x")
	c1, err := cases.New(sys, 1)
	require.NoError(t, err)
	c2, err := cases.New(sys, 2)
	require.NoError(t, err)
	return c1, c2
}

func pool(t *testing.T, s string) *variables.Pool {
	t.Helper()
	p, err := variables.Parse(s)
	require.NoError(t, err)
	return p
}

func TestCaseNumbering(t *testing.T) {
	terms := []int{2, 3, 1, 2}

	n, err := cases.NumberForSignature([]int{1, 3, 1, 2}, terms, cases.BigEndian)
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	n, err = cases.NumberForSignature([]int{1, 3, 1, 2}, terms, cases.LittleEndian)
	require.NoError(t, err)
	assert.Equal(t, 11, n)

	for _, e := range []cases.Endianness{cases.BigEndian, cases.LittleEndian} {
		for number := 1; number <= 12; number++ {
			sig, err := cases.SignatureForNumber(number, terms, e)
			require.NoError(t, err)
			back, err := cases.NumberForSignature(sig, terms, e)
			require.NoError(t, err)
			require.Equal(t, number, back)
		}
	}

	_, err = cases.SignatureForNumber(0, terms, cases.BigEndian)
	require.ErrorIs(t, err, cases.ErrCaseNumberZero)
	_, err = cases.SignatureForNumber(13, terms, cases.BigEndian)
	require.ErrorIs(t, err, cases.ErrCaseNumberOutOfRange)
	_, err = cases.NumberForSignature([]int{1, 4, 1, 1}, terms, cases.BigEndian)
	require.ErrorIs(t, err, cases.ErrSignatureMismatch)
}

func TestParseSignature(t *testing.T) {
	sig, err := cases.ParseSignature("1(12)11")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 12, 1, 1}, sig)

	_, err = cases.ParseSignature("1(12")
	require.ErrorIs(t, err, cases.ErrSignatureMismatch)
}

func TestNewWorkedModel(t *testing.T) {
	sys := workedModel(t)

	c1, err := cases.New(sys, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 1, 1}, c1.Signature())
	assert.Equal(t, "1111", c1.SignatureString())
	assert.Equal(t, "Case 1: 1111", c1.String())

	c2, err := cases.NewFromSignature(sys, []int{2, 1, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, 2, c2.Number())
	assert.True(t, c2.HasSolution())

	_, err = cases.New(sys, 0)
	require.ErrorIs(t, err, cases.ErrCaseNumberZero)
	_, err = cases.New(sys, 3)
	require.ErrorIs(t, err, cases.ErrCaseNumberOutOfRange)
	_, err = cases.NewFromSignature(sys, []int{1, 2, 1, 1})
	require.ErrorIs(t, err, cases.ErrSignatureMismatch)
}

func TestConditionsAndBoundaries(t *testing.T) {
	sys := workedModel(t)
	c1, err := cases.New(sys, 1)
	require.NoError(t, err)

	require.Equal(t, 1, c1.NumberOfConditions())
	assert.Equal(t, [][]float64{{-1, -1}}, c1.Cd().RawRows())
	assert.Equal(t, [][]float64{{1, -1, 0}}, c1.Ci().RawRows())
	assert.InDeltaSlice(t, []float64{0}, c1.Delta(), eps)

	u, err := c1.U()
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{-1, -1, 1}, u.RawRows()[0], eps)
	zeta, err := c1.Zeta()
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0}, zeta, eps)

	conds := c1.Conditions(true)
	assert.Equal(t, "log(a)-log(b)-log(x1)-log(x2) > 0", conds[0].String())
	conds = c1.Conditions(false)
	assert.Equal(t, "a*b^-1*x1^-1*x2^-1 > 1", conds[0].String())

	bounds, err := c1.Boundaries(true)
	require.NoError(t, err)
	assert.Equal(t, "-log(a)-log(b)+log(c) > 0", bounds[0].String())
	bounds, err = c1.Boundaries(false)
	require.NoError(t, err)
	assert.Equal(t, "a^-1*b^-1*c > 1", bounds[0].String())

	// Case 2 shares the boundary c > a*b.
	c2, err := cases.New(sys, 2)
	require.NoError(t, err)
	u, err = c2.U()
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{-1, -1, 1}, u.RawRows()[0], eps)

	at, err := c2.BoundariesAt(pool(t, "a=1, b=1, c=10"))
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1}, at, eps)
}

func TestValidity(t *testing.T) {
	sys := workedModel(t)
	for n := 1; n <= 2; n++ {
		c, err := cases.New(sys, n)
		require.NoError(t, err)
		assert.True(t, c.IsValid(), "case %d", n)
		assert.True(t, c.IsValidInStateSpace(), "case %d", n)

		ok, err := c.IsValidAtPoint(pool(t, "a=1, b=1, c=10"))
		require.NoError(t, err)
		assert.True(t, ok)
		ok, err = c.IsValidAtPoint(pool(t, "a=1, b=1, c=0.1"))
		require.NoError(t, err)
		assert.False(t, ok)
		_, err = c.IsValidAtPoint(pool(t, "a=1, b=1"))
		require.ErrorIs(t, err, cases.ErrNotFixed)

		ok, err = c.IsValidAtSlice(pool(t, "a=1, b=1, c=0.01"), pool(t, "a=1, b=1, c=0.1"))
		require.NoError(t, err)
		assert.False(t, ok)
		ok, err = c.IsValidAtSlice(pool(t, "a=1, b=1, c=0.01"), pool(t, "a=1, b=1, c=100"))
		require.NoError(t, err)
		assert.True(t, ok)

		_, err = c.IsValidAtSlice(pool(t, "c=10"), pool(t, "c=1"))
		require.ErrorIs(t, err, cases.ErrBadBounds)

		witness, err := c.ValidParameterSet()
		require.NoError(t, err)
		ok, err = c.IsValidAtPoint(witness)
		require.NoError(t, err)
		assert.True(t, ok)

		witness, err = c.ValidParameterSetAtSlice(pool(t, "a=1, b=1, c=0.01"), pool(t, "a=1, b=1, c=100"))
		require.NoError(t, err)
		cv, err := witness.Value("c")
		require.NoError(t, err)
		assert.Greater(t, cv, 1.0)

		_, err = c.ValidParameterSetAtSlice(pool(t, "a=1, b=1, c=0.01"), pool(t, "a=1, b=1, c=0.1"))
		require.ErrorIs(t, err, cases.ErrNotValid)
	}
}

func TestValidInStateSpaceAtPoint(t *testing.T) {
	c, err := cases.New(workedModel(t), 1)
	require.NoError(t, err)
	// a > b*x1*x2
	ok, err := c.IsValidInStateSpaceAtPoint(expression.MapLookup{"a": 10, "b": 1, "c": 1, "x1": 1, "x2": 1})
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = c.IsValidInStateSpaceAtPoint(expression.MapLookup{"a": 1, "b": 1, "c": 1, "x1": 10, "x2": 1})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBoundingRange(t *testing.T) {
	c, err := cases.New(workedModel(t), 1)
	require.NoError(t, err)

	r, err := c.BoundingRange("c", nil, nil)
	require.NoError(t, err)
	assert.True(t, math.IsInf(r[0], -1))
	assert.True(t, math.IsInf(r[1], 1))

	r, err = c.BoundingRange("c", pool(t, "a=1, b=1"), pool(t, "a=1, b=1, c=100"))
	require.NoError(t, err)
	assert.InDelta(t, 0, r[0], eps)
	assert.InDelta(t, 2, r[1], eps)

	_, err = c.BoundingRange("x1", nil, nil)
	require.ErrorIs(t, err, cases.ErrVariableNotIndependent)
}

func TestVerticesFor1DSlice(t *testing.T) {
	c, err := cases.New(workedModel(t), 1)
	require.NoError(t, err)

	v, err := c.VerticesFor1DSlice(pool(t, "a=1, b=1, c=0.01"), pool(t, "a=1, b=1, c=100"), "c")
	require.NoError(t, err)
	require.Equal(t, 2, v.Len())
	assert.InDeltaSlice(t, []float64{2}, v.Points[0], eps)
	assert.InDeltaSlice(t, []float64{0}, v.Points[1], eps)

	v, err = c.VerticesFor1DSlice(pool(t, "a=1, b=1, c=0.01"), pool(t, "a=1, b=1, c=0.1"), "c")
	require.NoError(t, err)
	assert.Equal(t, 0, v.Len())
}

func TestVerticesFor2DSlice(t *testing.T) {
	c, err := cases.New(workedModel(t), 1)
	require.NoError(t, err)
	lower, upper := pool(t, "a=1, b=0.01, c=0.01"), pool(t, "a=1, b=100, c=100")

	// c ≥ b inside [-2,2]².
	v, err := c.VerticesFor2DSlice(lower, upper, "b", "c")
	require.NoError(t, err)
	require.Equal(t, 3, v.Len())
	assert.InDeltaSlice(t, []float64{2, 2}, v.Points[0], eps)
	assert.InDeltaSlice(t, []float64{-2, -2}, v.Points[1], eps)
	assert.InDeltaSlice(t, []float64{-2, 2}, v.Points[2], eps)

	// x1 = a/c, so log10(x1) = −log10(c).
	ss, err := c.VerticesFor2DSliceWithSteadyStates(lower, upper, "b", "c", "x1")
	require.NoError(t, err)
	require.Equal(t, 3, ss.Len())
	assert.InDeltaSlice(t, []float64{2, 2, -2}, ss.Points[0], eps)
	assert.InDeltaSlice(t, []float64{-2, -2, 2}, ss.Points[1], eps)

	// V_x1 = a = 1 everywhere.
	fl, err := c.VerticesFor2DSliceWithFluxes(lower, upper, "b", "c", "x1")
	require.NoError(t, err)
	assert.InDelta(t, 0, fl.Points[2][2], eps)

	_, err = c.VerticesFor2DSliceWithSteadyStates(lower, upper, "b", "c", "zz")
	require.ErrorIs(t, err, cases.ErrVariableNotDependent)

	xs, ys, err := c.TriangulatedMeshFor2DSlice(lower, upper, "b", "c")
	require.NoError(t, err)
	require.Len(t, xs, 30)
	require.Len(t, ys, 30)
	assert.InDelta(t, 2, xs[0], eps)
	assert.InDelta(t, -2, xs[9], eps)
}

func TestVerticesForSliceErrors(t *testing.T) {
	c, err := cases.New(workedModel(t), 1)
	require.NoError(t, err)

	_, err = c.VerticesForSlice(pool(t, "a=1, b=1, c=1"), pool(t, "a=1, b=1, c=10"), "x1")
	require.ErrorIs(t, err, cases.ErrVariableNotIndependent)

	// a is unbounded, so there are two free variables for one axis.
	_, err = c.VerticesForSlice(pool(t, "b=1, c=1"), pool(t, "b=1, c=10"), "c")
	require.ErrorIs(t, err, cases.ErrSliceDimension)

	_, err = c.VerticesForSlice(pool(t, "a=1, b=1"), pool(t, "a=1, b=1"), "c")
	require.ErrorIs(t, err, cases.ErrNotFixed)

	_, err = c.VerticesForSlice(nil, nil)
	require.ErrorIs(t, err, cases.ErrSliceDimension)
}

func TestVerticesFor3DSlice(t *testing.T) {
	c, err := cases.New(workedModel(t), 1)
	require.NoError(t, err)
	// The plane log c = log a + log b cuts four corners and six edges of the cube.
	v, err := c.VerticesForSlice(pool(t, "a=0.01, b=0.01, c=0.01"), pool(t, "a=100, b=100, c=100"), "a", "b", "c")
	require.NoError(t, err)
	assert.Equal(t, 10, v.Len())
	assert.True(t, v.Contains([]float64{2, 0, 2}))
	assert.False(t, v.Contains([]float64{2, 2, 2}))
}

func TestIntersections(t *testing.T) {
	c1, c2 := competing(t)
	require.True(t, c1.IsValid())
	require.True(t, c2.IsValid())
	assert.False(t, cases.IntersectionIsValid(c1, c2))
	assert.True(t, cases.IntersectionIsValid(c1, c1))
	assert.False(t, cases.IntersectionIsValid())

	ok, err := cases.IntersectionIsValidAtSlice([]*cases.Case{c1, c2}, pool(t, "a=1, b=0.1"), pool(t, "a=1, b=10"))
	require.NoError(t, err)
	assert.False(t, ok)

	// The regions touch along b = a.
	v, err := cases.IntersectionVerticesForSlice([]*cases.Case{c1, c2}, pool(t, "a=1, b=0.1"), pool(t, "a=1, b=10"), "b")
	require.NoError(t, err)
	require.Equal(t, 1, v.Len())
	assert.InDeltaSlice(t, []float64{0}, v.Points[0], eps)

	ok, err = cases.IntersectionExceptSliceIsValid([]*cases.Case{c1, c2}, []string{"b"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = cases.IntersectionExceptSliceIsValidAtSlice([]*cases.Case{c1, c2}, []string{"b"}, pool(t, "a=1, b=0.1"), pool(t, "a=1, b=10"))
	require.NoError(t, err)
	assert.True(t, ok)

	p, err := cases.IntersectionExceptSliceValidParameterSet([]*cases.Case{c1, c2}, []string{"a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, p.Names())

	_, err = cases.IntersectionExceptSliceIsValid([]*cases.Case{c1, c2}, []string{"zz"})
	require.ErrorIs(t, err, cases.ErrVariableNotIndependent)

	_, err = cases.IntersectionValidParameterSet(c1, c2)
	require.ErrorIs(t, err, cases.ErrNotValid)
}

func TestExtraConditions(t *testing.T) {
	sys := workedModel(t)
	// Additionally require c > 1.
	extra := &cases.Conditions{Cd: [][]float64{{0, 0}}, Ci: [][]float64{{0, 0, 1}}, Delta: []float64{0}}
	c, err := cases.New(sys, 1, cases.WithExtraConditions(extra))
	require.NoError(t, err)
	require.Equal(t, 2, c.NumberOfConditions())
	require.Equal(t, 2, c.NumberOfBoundaries())

	ok, err := c.IsValidAtSlice(pool(t, "a=0.001, b=0.001, c=0.01"), pool(t, "a=0.001, b=0.001, c=0.1"))
	require.NoError(t, err)
	assert.False(t, ok)

	bad := &cases.Conditions{Cd: [][]float64{{0}}, Ci: [][]float64{{0, 0, 1}}, Delta: []float64{0}}
	_, err = cases.New(sys, 1, cases.WithExtraConditions(bad))
	require.ErrorIs(t, err, cases.ErrSignatureMismatch)
}

func TestProblematicEquations(t *testing.T) {
	// Ad = [[-1,1],[1,-1]]: the two equations cancel when added.
	c, err := cases.New(parse(t, "x1. = a*x2 - x1", "x2. = x1 - x2"), 1)
	require.NoError(t, err)
	require.False(t, c.HasSolution())
	assert.False(t, c.IsValid())
	_, err = c.Boundaries(true)
	require.ErrorIs(t, err, cases.ErrNoSolution)

	groups, err := c.ProblematicEquations()
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 1}}, groups)

	// Ad = [[1,-1],[1,-1]]: equal rows cancel only with opposite weights.
	c, err = cases.New(parse(t, "x1. = a*x1 - x2", "x2. = x1 - x2"), 1)
	require.NoError(t, err)
	groups, err = c.ProblematicEquations()
	require.NoError(t, err)
	assert.Nil(t, groups)

	c, err = cases.New(workedModel(t), 1)
	require.NoError(t, err)
	groups, err = c.ProblematicEquations()
	require.NoError(t, err)
	assert.Nil(t, groups)
}
