package vertices_test

import (
	"testing"

	"github.com/katalvlaran/dstoolbox/vertices"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func TestAddRejectsDuplicates(t *testing.T) {
	v := vertices.New(2)
	ok, err := v.Add([]float64{1, 2})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = v.Add([]float64{1 + 1e-15, 2})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = v.Add([]float64{1.001, 2})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, v.Len())

	_, err = v.Add([]float64{1})
	require.ErrorIs(t, err, vertices.ErrDimension)
}

func TestOrder2DClockwiseFromMaxX(t *testing.T) {
	v := vertices.New(2)
	for _, p := range [][]float64{{0, 0}, {0, 1}, {1, 1}, {1, 0}} {
		_, err := v.Add(p)
		require.NoError(t, err)
	}
	v.Order2D()
	assert.Equal(t, [][]float64{{1, 1}, {1, 0}, {0, 0}, {0, 1}}, v.Points)
}

func TestClipPolygonTriangle(t *testing.T) {
	// Box [-1,1]² cut by y ≤ x, i.e. x − y ≥ 0.
	v := vertices.ClipPolygon([2]float64{-1, 1}, [2]float64{-1, 1}, []vertices.HalfPlane{{A: 1, B: -1}})
	require.Equal(t, 3, v.Len())
	assert.InDeltaSlice(t, []float64{1, 1}, v.Points[0], eps)
	assert.InDeltaSlice(t, []float64{1, -1}, v.Points[1], eps)
	assert.InDeltaSlice(t, []float64{-1, -1}, v.Points[2], eps)
}

func TestClipPolygonPentagon(t *testing.T) {
	// Box [0,2]² without the corner x + y > 3.
	v := vertices.ClipPolygon([2]float64{0, 2}, [2]float64{0, 2}, []vertices.HalfPlane{{A: -1, B: -1, C: 3}})
	require.Equal(t, 5, v.Len())
	assert.InDeltaSlice(t, []float64{2, 1}, v.Points[0], eps)
	assert.InDeltaSlice(t, []float64{2, 0}, v.Points[1], eps)
	assert.InDeltaSlice(t, []float64{0, 0}, v.Points[2], eps)
	assert.InDeltaSlice(t, []float64{0, 2}, v.Points[3], eps)
	assert.InDeltaSlice(t, []float64{1, 2}, v.Points[4], eps)
}

func TestClipPolygonEmpty(t *testing.T) {
	v := vertices.ClipPolygon([2]float64{0, 1}, [2]float64{0, 1}, []vertices.HalfPlane{{A: -1, C: -2}})
	assert.Equal(t, 0, v.Len())
}

func TestEnumerate3D(t *testing.T) {
	lim := [3][2]float64{{0, 1}, {0, 1}, {0, 1}}
	cube := vertices.Enumerate3D(lim, nil)
	assert.Equal(t, 8, cube.Len())

	// Corner simplex x + y + z ≤ 1 inside the unit cube.
	simplex := vertices.Enumerate3D(lim, []vertices.HalfSpace{{Normal: [3]float64{-1, -1, -1}, Offset: 1}})
	require.Equal(t, 4, simplex.Len())
	for _, p := range [][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}} {
		assert.True(t, simplex.Contains(p), "missing %v", p)
	}
}

func TestAxis(t *testing.T) {
	v := vertices.New(3)
	_, _ = v.Add([]float64{1, 2, 3})
	_, _ = v.Add([]float64{4, 5, 6})
	assert.Equal(t, []float64{2, 5}, v.Axis(1))
}
