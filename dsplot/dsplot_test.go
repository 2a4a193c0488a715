package dsplot_test

import (
	"context"
	"encoding/json"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/dstoolbox/designspace"
	"github.com/katalvlaran/dstoolbox/dsplot"
	"github.com/katalvlaran/dstoolbox/variables"
	"github.com/katalvlaran/dstoolbox/vertices"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"
)

const eps = 1e-9

var box = [2]float64{0.01, 100}

func newPlot(t *testing.T, mode dsplot.Mode) (*designspace.DesignSpace, *variables.Pool, *dsplot.Plot) {
	t.Helper()
	ds, err := designspace.New([]string{"x1. = a + b*x1*x2 - c*x1", "x2. = c*x1 - x2"}, nil)
	require.NoError(t, err)
	point, err := variables.Parse("a=1, b=1, c=1")
	require.NoError(t, err)
	p, err := dsplot.NewPlot(ds, point, "b", box, "c", box, dsplot.WithMode(mode))
	require.NoError(t, err)
	return ds, point, p
}

func TestNewPlotErrors(t *testing.T) {
	ds, point, _ := newPlot(t, dsplot.ModeSlice)

	_, err := dsplot.NewPlot(ds, point, "x1", box, "c", box)
	require.ErrorIs(t, err, dsplot.ErrAxisNotIndependent)
	for _, lim := range [][2]float64{{0, 1}, {1, 1}, {math.NaN(), 1}, {1, math.Inf(1)}} {
		_, err = dsplot.NewPlot(ds, point, "b", lim, "c", box)
		require.ErrorIs(t, err, dsplot.ErrBadLimits, "xlim %v", lim)
		_, err = dsplot.NewPlot(ds, point, "b", box, "c", lim)
		require.ErrorIs(t, err, dsplot.ErrBadLimits, "ylim %v", lim)
	}

	p, err := dsplot.NewPlot(ds, point, "b", [2]float64{100, 0.01}, "c", box, dsplot.WithMode(dsplot.ModeFunction))
	require.NoError(t, err)
	_, err = p.Draw(context.Background(), dsplot.DrawOptions{})
	require.ErrorIs(t, err, dsplot.ErrMissingFunction)
}

func TestDrawSlice(t *testing.T) {
	_, _, p := newPlot(t, dsplot.ModeSlice)
	s, err := p.Draw(context.Background(), dsplot.DrawOptions{})
	require.NoError(t, err)

	assert.Equal(t, "log10(b)", s.XLabel)
	assert.InDeltaSlice(t, []float64{-2, 2}, s.XLim[:], eps)

	// Both cases cover c ≥ b and overlap completely.
	require.Len(t, s.Regions, 3)
	assert.Equal(t, "1", s.Regions[0].Key)
	assert.Equal(t, "2", s.Regions[1].Key)
	assert.Equal(t, "1,2", s.Regions[2].Key)
	for _, r := range s.Regions {
		assert.Len(t, r.Points, 3)
	}
	assert.Equal(t, []dsplot.LegendEntry{
		{Key: "1", Color: "#ff0000"},
		{Key: "2", Color: "#80ff00"},
		{Key: "1,2", Color: "#00ffff"},
	}, s.Legend)

	raw, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"mode":"slice"`)
}

func TestDrawFunction(t *testing.T) {
	_, _, p := newPlot(t, dsplot.ModeFunction)
	ctx := context.Background()

	// Case 1: x1 = a/c, so log(x1) = −log(c) on every cell.
	for _, logLinear := range []bool{false, true} {
		s, err := p.DrawCase(ctx, 1, dsplot.DrawOptions{Function: "log(x1)", Resolution: 10, LogLinear: logLinear})
		require.NoError(t, err)
		require.NotEmpty(t, s.Cells)
		for _, c := range s.Cells {
			require.InDelta(t, -c.Y[0], c.Z, 1e-6)
			require.GreaterOrEqual(t, c.Y[0], c.X[0]-eps)
		}
		require.Len(t, s.ZLim, 2)
	}

	s, err := p.Draw(ctx, dsplot.DrawOptions{Function: "V_x1", Resolution: 10, Boundaries: true})
	require.NoError(t, err)
	assert.NotEmpty(t, s.Cells)
	assert.Len(t, s.Outlines, 2)

	_, err = p.Draw(ctx, dsplot.DrawOptions{Function: "log(("})
	require.Error(t, err)
}

func TestDrawRouth(t *testing.T) {
	_, _, p := newPlot(t, dsplot.ModeRouth)
	s, err := p.Draw(context.Background(), dsplot.DrawOptions{Resolution: 5})
	require.NoError(t, err)

	// Case 2 is a saddle (index 1); nothing is valid below c = b.
	require.Len(t, s.Cells, 16)
	assert.Equal(t, []int{1}, s.Levels)
	assert.InDeltaSlice(t, []float64{-1, 1}, s.ZLim, eps)
	for _, c := range s.Cells {
		if c.Y[0] >= c.X[0] {
			assert.Equal(t, 1.0, c.Z)
		} else {
			assert.Equal(t, -1.0, c.Z)
		}
	}

	_, err = p.Draw(context.Background(), dsplot.DrawOptions{Resolution: 5, Algebraic: []string{"zz"}})
	require.Error(t, err)
}

func TestMeshForRegion(t *testing.T) {
	v := vertices.New(2)
	for _, pt := range [][]float64{{1, 1}, {1, 0}, {0, 0}, {0, 1}} {
		_, err := v.Add(pt)
		require.NoError(t, err)
	}
	xs, ys := dsplot.MeshForRegion(v, 3, 1, 1)
	assert.Equal(t, []float64{0, 0.5, 1}, xs)
	assert.Equal(t, []float64{0, 0.5, 1}, ys)

	// A vertex one ulp away from 0.3 must not add a second column.
	v = vertices.New(2)
	for _, pt := range [][]float64{{0, 0}, {0.3, 0}, {math.Nextafter(0.3, 1), 1}, {0, 1}} {
		_, err := v.Add(pt)
		require.NoError(t, err)
	}
	xs, ys = dsplot.MeshForRegion(v, 3, 1, 1)
	assert.Equal(t, []float64{0, 0.3}, xs)
	assert.Equal(t, []float64{0, 0.5, 1}, ys)
}

func TestColormap(t *testing.T) {
	cm := dsplot.NewColormap()
	cm.Add("1", "2")
	c, ok := cm.Color("2")
	require.True(t, ok)
	assert.Equal(t, "#00ff00", c)

	cm.Add("3", "2")
	assert.Equal(t, []string{"1", "2", "3"}, cm.Keys())
	c, _ = cm.Color("2")
	assert.Equal(t, "#80ff00", c)
	c, _ = cm.Color("3")
	assert.Equal(t, "#00ffff", c)

	_, ok = cm.Color("4")
	assert.False(t, ok)
	assert.Equal(t, "#ffffff", dsplot.HSVHex(0, 0, 1))

	rgb, err := dsplot.ParseHex("#80ff00")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0x80, G: 0xff, B: 0, A: 0xff}, rgb)
	_, err = dsplot.ParseHex("80ff00")
	require.Error(t, err)
}

func TestParseMode(t *testing.T) {
	m, err := dsplot.ParseMode("Routh")
	require.NoError(t, err)
	assert.Equal(t, dsplot.ModeRouth, m)
	_, err = dsplot.ParseMode("contour")
	require.ErrorIs(t, err, dsplot.ErrUnknownMode)
}

func TestSurfaces(t *testing.T) {
	ds, point, _ := newPlot(t, dsplot.ModeSlice)
	ctx := context.Background()

	s, err := dsplot.SteadyStateHeatmap(ctx, ds, point, "b", "c", "x1", box, box, 5)
	require.NoError(t, err)
	require.Len(t, s.Polygons, 2)
	assert.Equal(t, "log10(x1)", s.ZLabel)
	assert.InDeltaSlice(t, []float64{-2, 2}, s.ZLim[:], eps)
	// Case 1: log x1 = −log c; case 2: log x1 = −log b.
	for _, pt := range s.Polygons[0].Points {
		assert.InDelta(t, -pt[1], pt[2], eps)
	}
	for _, pt := range s.Polygons[1].Points {
		assert.InDelta(t, -pt[0], pt[2], eps)
	}
	assert.NotEmpty(t, s.Cells)

	f, err := dsplot.FluxSurface(ctx, ds, point, "b", "c", "x1", box, box)
	require.NoError(t, err)
	require.Len(t, f.Polygons, 2)
	assert.Equal(t, "log10(V_x1)", f.ZLabel)
	for _, pt := range f.Polygons[0].Points {
		assert.InDelta(t, 0, pt[2], eps) // V_x1 = a
	}
}

func TestRender(t *testing.T) {
	_, _, p := newPlot(t, dsplot.ModeSlice)
	s, err := p.Draw(context.Background(), dsplot.DrawOptions{})
	require.NoError(t, err)

	dir := t.TempDir()
	for _, name := range []string{"slice.png", "slice.svg"} {
		path := filepath.Join(dir, name)
		require.NoError(t, dsplot.Render(s, path, 4*vg.Inch, 4*vg.Inch))
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}

	_, _, rp := newPlot(t, dsplot.ModeRouth)
	rs, err := rp.Draw(context.Background(), dsplot.DrawOptions{Resolution: 4})
	require.NoError(t, err)
	require.NoError(t, dsplot.Render(rs, filepath.Join(dir, "routh.png"), 4*vg.Inch, 4*vg.Inch))

	require.ErrorIs(t, dsplot.Render(&dsplot.Scene{}, filepath.Join(dir, "empty.png"), vg.Inch, vg.Inch), dsplot.ErrEmptyScene)
}
