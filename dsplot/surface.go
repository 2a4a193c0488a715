// SPDX-License-Identifier: MIT

package dsplot

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/dstoolbox/cases"
	"github.com/katalvlaran/dstoolbox/designspace"
	"github.com/katalvlaran/dstoolbox/expression"
	"github.com/katalvlaran/dstoolbox/variables"
	"github.com/katalvlaran/dstoolbox/vertices"
)

// Polygon3 is a case's region lifted to z = log10 of a steady-state value.
type Polygon3 struct {
	Key    string       `json:"key"`
	Color  string       `json:"color"`
	Points [][3]float64 `json:"points"`
}

// Surface holds one lifted polygon per valid case.
type Surface struct {
	XLabel   string     `json:"xlabel"`
	YLabel   string     `json:"ylabel"`
	ZLabel   string     `json:"zlabel"`
	XLim     [2]float64 `json:"xlim"`
	YLim     [2]float64 `json:"ylim"`
	ZLim     [2]float64 `json:"zlim"`
	Polygons []Polygon3 `json:"polygons"`
	Cells    []Cell     `json:"cells,omitempty"` // heatmap samples
}

type lift func(c *cases.Case, lower, upper *variables.Pool, x, y, z string) (*vertices.Vertices, error)

// SteadyStateHeatmap lifts every case valid in the slice to log10 of the
// steady state of z, and samples a resolution×resolution heatmap of it.
// xRange and yRange are linear.
func SteadyStateHeatmap(ctx context.Context, ds *designspace.DesignSpace, point *variables.Pool,
	x, y, z string, xRange, yRange [2]float64, resolution int) (*Surface, error) {
	s, drawn, err := surface(ctx, ds, point, x, y, z, xRange, yRange, (*cases.Case).VerticesFor2DSliceWithSteadyStates)
	if err != nil {
		return nil, err
	}
	s.ZLabel = "log10(" + z + ")"
	if resolution <= 0 {
		resolution = defaultResolution
	}
	if err = s.sample(drawn, point, x, y, resolution); err != nil {
		return nil, err
	}
	return s, nil
}

// FluxSurface lifts every case valid in the slice to log10 of the flux
// V_z.
func FluxSurface(ctx context.Context, ds *designspace.DesignSpace, point *variables.Pool,
	x, y, z string, xRange, yRange [2]float64) (*Surface, error) {
	s, _, err := surface(ctx, ds, point, x, y, z, xRange, yRange, (*cases.Case).VerticesFor2DSliceWithFluxes)
	if err != nil {
		return nil, err
	}
	s.ZLabel = "log10(V_" + z + ")"
	return s, nil
}

// surface returns the lifted polygons and the case of each.
func surface(ctx context.Context, ds *designspace.DesignSpace, point *variables.Pool,
	x, y, z string, xRange, yRange [2]float64, lifted lift) (*Surface, []*cases.Case, error) {
	p, err := NewPlot(ds, point, x, xRange, y, yRange)
	if err != nil {
		return nil, nil, err
	}
	lower, upper, err := p.bounds()
	if err != nil {
		return nil, nil, err
	}
	valid, err := ds.ValidCasesForSlice(ctx, lower, upper)
	if err != nil {
		return nil, nil, err
	}
	p.colormap.Add(caseKeys(valid)...)

	sc := p.scene()
	s := &Surface{XLabel: sc.XLabel, YLabel: sc.YLabel, XLim: sc.XLim, YLim: sc.YLim}
	var drawn []*cases.Case
	first := true
	for _, c := range valid {
		v, err := lifted(c, lower, upper, x, y, z)
		if err != nil {
			return nil, nil, fmt.Errorf("case %d: %w", c.Number(), err)
		}
		if v.Len() == 0 {
			continue
		}
		color, _ := p.colormap.Color(caseKey(c))
		poly := Polygon3{Key: caseKey(c), Color: color, Points: make([][3]float64, v.Len())}
		for k, pt := range v.Points {
			poly.Points[k] = [3]float64{pt[0], pt[1], pt[2]}
			if first {
				s.ZLim = [2]float64{pt[2], pt[2]}
				first = false
			}
			s.ZLim[0] = min(s.ZLim[0], pt[2])
			s.ZLim[1] = max(s.ZLim[1], pt[2])
		}
		s.Polygons = append(s.Polygons, poly)
		drawn = append(drawn, c)
	}
	return s, drawn, nil
}

// sample fills Cells from the plane through each lifted polygon, keeping
// the grid points that fall inside the polygon's case.
func (s *Surface) sample(drawn []*cases.Case, point *variables.Pool, x, y string, resolution int) error {
	xs := linspace(s.XLim[0], s.XLim[1], resolution)
	ys := linspace(s.YLim[0], s.YLim[1], resolution)
	base := map[string]float64{}
	if point != nil {
		base = point.Map()
	}
	for k, poly := range s.Polygons {
		if len(poly.Points) < 3 {
			continue
		}
		pl, err := fitPlane(poly.Points)
		if err != nil {
			return err
		}
		c := drawn[k]
		env := make(expression.MapLookup, len(base)+2)
		for k, v := range base {
			env[k] = v
		}
		for i := 0; i+1 < len(xs); i++ {
			env[x] = math.Pow(10, xs[i])
			for j := 0; j+1 < len(ys); j++ {
				env[y] = math.Pow(10, ys[j])
				ok, err := c.IsValidAtPoint(env)
				if err != nil {
					return err
				}
				if ok {
					s.Cells = append(s.Cells, Cell{
						X: [2]float64{xs[i], xs[i+1]},
						Y: [2]float64{ys[j], ys[j+1]},
						Z: pl.at(xs[i], ys[j]),
					})
				}
			}
		}
	}
	return nil
}
