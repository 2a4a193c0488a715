package gma_test

import (
	"testing"

	"github.com/katalvlaran/dstoolbox/expression"
	"github.com/katalvlaran/dstoolbox/gma"
	"github.com/katalvlaran/dstoolbox/variables"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var twoEquations = []string{
	"x1. = a + b*x1*x2 - c*x1",
	"x2. = c*x1 - x2",
}

func TestParseWorkedModel(t *testing.T) {
	sys, err := gma.Parse(twoEquations, nil)
	require.NoError(t, err)

	require.Equal(t, 2, sys.NumberOfEquations())
	require.Equal(t, []string{"x1", "x2"}, sys.XdNames())
	require.Equal(t, []string{"a", "b", "c"}, sys.XiNames())
	require.Equal(t, []int{2, 1, 1, 1}, sys.Signature())
	require.Equal(t, 2, sys.NumberOfCases())

	require.Equal(t, [][]float64{{1, 1}, {1}}, sys.Alpha())
	require.Equal(t, [][]float64{{1}, {1}}, sys.Beta())

	gd, err := sys.Gd(0)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{0, 0}, {1, 1}}, gd.RawRows())
	gi, err := sys.Gi(0)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{1, 0, 0}, {0, 1, 0}}, gi.RawRows())
	hd, err := sys.Hd(1)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{0, 1}}, hd.RawRows())
	hi, err := sys.Hi(1)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{0, 0, 0}}, hi.RawRows())
}

func TestEquationsPrint(t *testing.T) {
	sys, err := gma.Parse(twoEquations, nil)
	require.NoError(t, err)

	eqs := sys.Equations()
	require.Len(t, eqs, 2)
	assert.Equal(t, "x1. = a+b*x1*x2-c*x1", eqs[0].String())
	assert.Equal(t, "x2. = c*x1-x2", eqs[1].String())
	assert.Equal(t, "x1. = a+b*x1*x2-c*x1\nx2. = c*x1-x2", sys.String())
}

func TestParseWithGivenXd(t *testing.T) {
	xd, err := variables.NewPool("x2", "x1")
	require.NoError(t, err)

	_, err = gma.Parse(twoEquations, xd)
	require.ErrorIs(t, err, gma.ErrUnknownDependent) // equation 0 names x1, pool says x2

	xd, err = variables.NewPool("x1", "x2")
	require.NoError(t, err)
	sys, err := gma.Parse([]string{"x1. = a - x1", "0 = x1 - x2"}, xd)
	require.NoError(t, err)
	assert.True(t, sys.IsAlgebraic(1))
	assert.False(t, sys.IsAlgebraic(0))
	assert.Equal(t, "0 = x1-x2", sys.Equations()[1].String())

	_, err = gma.Parse([]string{"x1. = a - x1"}, xd)
	require.ErrorIs(t, err, gma.ErrEquationCount)
}

func TestParseWithXiOrder(t *testing.T) {
	xi, err := variables.NewPool("c", "a")
	require.NoError(t, err)

	sys, err := gma.ParseWithXi(twoEquations, nil, xi)
	require.NoError(t, err)
	require.Equal(t, []string{"c", "a", "b"}, sys.XiNames())

	term, err := sys.PositiveTerm(0, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 1}, term.Ki) // b is the third Xi
	assert.Equal(t, []float64{1, 1}, term.Kd)
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		eqs  []string
		want error
	}{
		{nil, gma.ErrNoEquations},
		{[]string{"x1. + a - x1"}, gma.ErrMissingEquals},
		{[]string{"x1. = a"}, gma.ErrNoNegativeTerm},
		{[]string{"x1. = -x1"}, gma.ErrNoPositiveTerm},
		{[]string{"x1. = log(a) - x1"}, gma.ErrNotPowerLaw},
		{[]string{"2*x1 = a - x1"}, gma.ErrUnknownDependent},
		{[]string{"x1. = a -"}, expression.ErrSyntax},
	}
	for _, tc := range cases {
		_, err := gma.Parse(tc.eqs, nil)
		require.ErrorIs(t, err, tc.want, "%v", tc.eqs)
	}
}

func TestCoefficientsAndPowers(t *testing.T) {
	sys, err := gma.Parse([]string{"X. = 2*a^0.5*X^-1 + 3 - 4*X^2"}, nil)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{3, 2}}, sys.Alpha())
	require.Equal(t, [][]float64{{4}}, sys.Beta())

	// The folded constant 3 sits first in the sum, so it is positive term 0.
	first, err := sys.PositiveTerm(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 3.0, first.Coefficient)
	second, err := sys.PositiveTerm(0, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{-1}, second.Kd)
	assert.Equal(t, []float64{0.5}, second.Ki)

	_, err = sys.NegativeTerm(0, 1)
	require.ErrorIs(t, err, gma.ErrIndexOutOfRange)
}
