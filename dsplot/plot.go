// SPDX-License-Identifier: MIT

package dsplot

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"slices"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/dstoolbox/cases"
	"github.com/katalvlaran/dstoolbox/designspace"
	"github.com/katalvlaran/dstoolbox/expression"
	"github.com/katalvlaran/dstoolbox/ssystem"
	"github.com/katalvlaran/dstoolbox/variables"
	"github.com/katalvlaran/dstoolbox/vertices"
)

// Plot is a 2-D slice of a design space.
type Plot struct {
	ds       *designspace.DesignSpace
	point    *variables.Pool
	x, y     string
	xlim     [2]float64 // linear, ordered
	ylim     [2]float64
	mode     Mode
	colormap *Colormap
}

// NewPlot checks the axes and orders the limits. point must hold a value
// for every other independent variable.
//
// Errors: ErrAxisNotIndependent, ErrBadLimits.
func NewPlot(ds *designspace.DesignSpace, point *variables.Pool, xName string, xLim [2]float64,
	yName string, yLim [2]float64, opts ...Option) (*Plot, error) {
	o := Options{}
	for _, fn := range opts {
		fn(&o)
	}
	xi := ds.Xi()
	for _, name := range []string{xName, yName} {
		if !xi.Has(name) {
			return nil, fmt.Errorf("%w: %s", ErrAxisNotIndependent, name)
		}
	}
	for _, lim := range [][2]float64{xLim, yLim} {
		if !(lim[0] > 0 && lim[1] > 0) || math.IsInf(lim[0], 1) || math.IsInf(lim[1], 1) || lim[0] == lim[1] {
			return nil, fmt.Errorf("%w: %v", ErrBadLimits, lim)
		}
	}
	if point == nil {
		point, _ = variables.NewPool()
	}
	if o.Colormap == nil {
		o.Colormap = NewColormap()
	}
	return &Plot{
		ds:       ds,
		point:    point.Copy(),
		x:        xName,
		y:        yName,
		xlim:     [2]float64{min(xLim[0], xLim[1]), max(xLim[0], xLim[1])},
		ylim:     [2]float64{min(yLim[0], yLim[1]), max(yLim[0], yLim[1])},
		mode:     o.Mode,
		colormap: o.Colormap,
	}, nil
}

// Mode returns the drawing mode.
func (p *Plot) Mode() Mode { return p.mode }

// Colormap returns the colormap shared by every draw of the plot.
func (p *Plot) Colormap() *Colormap { return p.colormap }

// bounds returns the slice box: the point with the axes at their limits.
func (p *Plot) bounds() (*variables.Pool, *variables.Pool, error) {
	lower, upper := p.point.Copy(), p.point.Copy()
	for _, b := range []struct {
		pool *variables.Pool
		k    int
	}{{lower, 0}, {upper, 1}} {
		if err := put(b.pool, p.x, p.xlim[b.k]); err != nil {
			return nil, nil, err
		}
		if err := put(b.pool, p.y, p.ylim[b.k]); err != nil {
			return nil, nil, err
		}
	}
	return lower, upper, nil
}

// put sets or adds name.
func put(pool *variables.Pool, name string, v float64) error {
	pool.SetMode(variables.ReadWriteAdd)
	if pool.Has(name) {
		return pool.Set(name, v)
	}
	return pool.Add(name, v)
}

func (p *Plot) scene() *Scene {
	return &Scene{
		Mode:   p.mode,
		XLabel: "log10(" + p.x + ")",
		YLabel: "log10(" + p.y + ")",
		XLim:   [2]float64{math.Log10(p.xlim[0]), math.Log10(p.xlim[1])},
		YLim:   [2]float64{math.Log10(p.ylim[0]), math.Log10(p.ylim[1])},
	}
}

func (o DrawOptions) resolution() int {
	if o.Resolution > 0 {
		return o.Resolution
	}
	return defaultResolution
}

func (o DrawOptions) sizes() []int {
	if o.Intersections != nil {
		return o.Intersections
	}
	out := make([]int, 0, maxIntersectionLen-1)
	for n := 2; n <= maxIntersectionLen; n++ {
		out = append(out, n)
	}
	return out
}

// Draw computes the scene for every case valid in the slice.
//
// Errors: ErrMissingFunction, and the designspace and cases errors.
func (p *Plot) Draw(ctx context.Context, opts DrawOptions) (*Scene, error) {
	if p.mode == ModeFunction && opts.Function == "" {
		return nil, ErrMissingFunction
	}
	lower, upper, err := p.bounds()
	if err != nil {
		return nil, err
	}
	valid, err := p.ds.ValidCasesForSlice(ctx, lower, upper)
	if err != nil {
		return nil, err
	}

	s := p.scene()
	switch p.mode {
	case ModeSlice:
		err = p.drawSlice(ctx, s, valid, lower, upper, opts.sizes())
	case ModeFunction:
		p.colormap.Add(caseKeys(valid)...)
		err = p.drawFunction(s, valid, lower, upper, opts)
	case ModeRouth:
		p.colormap.Add(caseKeys(valid)...)
		err = p.drawRouth(ctx, s, valid, lower, upper, opts)
	default:
		err = fmt.Errorf("%w: %v", ErrUnknownMode, p.mode)
	}
	if err != nil {
		return nil, err
	}
	if opts.Boundaries && p.mode != ModeSlice {
		if err = p.drawOutlines(s, valid, lower, upper); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// DrawCase draws a single case. The colormap still receives every case
// valid in the slice, so colors match those of Draw.
func (p *Plot) DrawCase(ctx context.Context, caseNumber int, opts DrawOptions) (*Scene, error) {
	if p.mode == ModeFunction && opts.Function == "" {
		return nil, ErrMissingFunction
	}
	lower, upper, err := p.bounds()
	if err != nil {
		return nil, err
	}
	valid, err := p.ds.ValidCasesForSlice(ctx, lower, upper)
	if err != nil {
		return nil, err
	}
	p.colormap.Add(caseKeys(valid)...)
	c, err := p.ds.CaseWithNumber(caseNumber)
	if err != nil {
		return nil, err
	}

	s := p.scene()
	one := []*cases.Case{c}
	switch p.mode {
	case ModeSlice:
		p.colormap.Add(caseKey(c))
		err = p.addRegions(s, one, lower, upper)
		s.Legend = p.colormap.Legend([]string{caseKey(c)})
	case ModeFunction:
		err = p.drawFunction(s, one, lower, upper, opts)
	case ModeRouth:
		err = p.drawRouth(ctx, s, one, lower, upper, opts)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func caseKey(c *cases.Case) string { return strconv.Itoa(c.Number()) }

func caseKeys(cs []*cases.Case) []string {
	out := make([]string, len(cs))
	for k, c := range cs {
		out[k] = caseKey(c)
	}
	return out
}

func polygon(v *vertices.Vertices) [][2]float64 {
	out := make([][2]float64, v.Len())
	for k, pt := range v.Points {
		out[k] = [2]float64{pt[0], pt[1]}
	}
	return out
}

func (p *Plot) addRegions(s *Scene, cs []*cases.Case, lower, upper *variables.Pool) error {
	for _, c := range cs {
		v, err := c.VerticesFor2DSlice(lower, upper, p.x, p.y)
		if err != nil {
			return err
		}
		if v.Len() == 0 {
			continue
		}
		color, _ := p.colormap.Color(caseKey(c))
		s.Regions = append(s.Regions, Region{Key: caseKey(c), Color: color, Points: polygon(v)})
	}
	return nil
}

// drawSlice fills every valid case, then every overlapping group on top.
func (p *Plot) drawSlice(ctx context.Context, s *Scene, valid []*cases.Case, lower, upper *variables.Pool, sizes []int) error {
	groups, err := p.ds.FindIntersections(ctx, valid, sizes, lower, upper)
	if err != nil {
		return err
	}
	keys := caseKeys(valid)
	for _, size := range groups {
		for _, g := range size {
			keys = append(keys, g.Key())
		}
	}
	p.colormap.Add(keys...)

	if err = p.addRegions(s, valid, lower, upper); err != nil {
		return err
	}
	for _, size := range groups {
		for _, g := range size {
			v, err := cases.IntersectionVerticesForSlice(g, lower, upper, p.x, p.y)
			if err != nil {
				return err
			}
			if v.Len() == 0 {
				continue
			}
			color, _ := p.colormap.Color(g.Key())
			s.Regions = append(s.Regions, Region{Key: g.Key(), Color: color, Points: polygon(v)})
		}
	}
	s.Legend = p.colormap.Legend(keys)
	return nil
}

// drawFunction samples the function on the mesh of each case's region.
// Grid points outside the region are skipped.
func (p *Plot) drawFunction(s *Scene, cs []*cases.Case, lower, upper *variables.Pool, opts DrawOptions) error {
	fn, err := expression.Parse(opts.Function)
	if err != nil {
		return fmt.Errorf("dsplot: function: %w", err)
	}
	res := opts.resolution()
	xSpan, ySpan := s.XLim[1]-s.XLim[0], s.YLim[1]-s.YLim[0]
	for _, c := range cs {
		v, err := c.VerticesFor2DSlice(lower, upper, p.x, p.y)
		if err != nil {
			return err
		}
		if v.Len() == 0 {
			continue
		}
		xs, ys := MeshForRegion(v, res, xSpan, ySpan)
		z, err := p.evaluator(c, fn, v, opts.LogLinear)
		if err != nil {
			return err
		}
		for i := 0; i+1 < len(ys); i++ {
			for j := 0; j+1 < len(xs); j++ {
				val, ok, err := z(xs[j], ys[i])
				if err != nil {
					return err
				}
				if !ok || math.IsNaN(val) || math.IsInf(val, 0) {
					continue
				}
				s.Cells = append(s.Cells, Cell{X: [2]float64{xs[j], xs[j+1]}, Y: [2]float64{ys[i], ys[i+1]}, Z: val})
				s.trackZ(val)
			}
		}
	}
	return nil
}

// evaluator returns the function of one case at a log10 grid point and
// whether the point lies in the case's region.
func (p *Plot) evaluator(c *cases.Case, fn *expression.Expression, v *vertices.Vertices,
	logLinear bool) (func(x, y float64) (float64, bool, error), error) {
	base := expression.MapLookup(p.point.Map())
	at := func(x, y float64) expression.MapLookup {
		env := make(expression.MapLookup, len(base)+2)
		for k, val := range base {
			env[k] = val
		}
		env[p.x], env[p.y] = math.Pow(10, x), math.Pow(10, y)
		return env
	}
	inside := func(env expression.MapLookup) (bool, error) { return c.IsValidAtPoint(env) }

	if !logLinear {
		return func(x, y float64) (float64, bool, error) {
			env := at(x, y)
			ok, err := inside(env)
			if err != nil || !ok {
				return 0, false, err
			}
			val, err := c.SSystem().SteadyStateFunction(env, fn)
			return val, err == nil, err
		}, nil
	}

	pts := make([][3]float64, 0, v.Len())
	for _, pt := range v.Points {
		val, err := c.SSystem().SteadyStateFunction(at(pt[0], pt[1]), fn)
		if err != nil {
			return nil, err
		}
		pts = append(pts, [3]float64{pt[0], pt[1], val})
	}
	pl, err := fitPlane(pts)
	if err != nil {
		return nil, err
	}
	return func(x, y float64) (float64, bool, error) {
		ok, err := inside(at(x, y))
		if err != nil || !ok {
			return 0, false, err
		}
		return pl.at(x, y), true, nil
	}, nil
}

// drawRouth fills a resolution×resolution grid with the largest Routh
// index of the cases valid at each point, or −1. Rows run concurrently.
func (p *Plot) drawRouth(ctx context.Context, s *Scene, cs []*cases.Case, lower, upper *variables.Pool, opts DrawOptions) error {
	res := opts.resolution()
	xs := linspace(s.XLim[0], s.XLim[1], res)
	ys := linspace(s.YLim[0], s.YLim[1], res)

	reduced := make([]*ssystem.Reduced, len(cs))
	for k, c := range cs {
		r, err := c.SSystem().WithoutAlgebraicConstraints(opts.Algebraic)
		if err != nil {
			return err
		}
		reduced[k] = r
	}

	grid := make([][]int, res)
	base := p.point.Map()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range xs {
		g.Go(func() error {
			row := make([]int, res)
			env := make(expression.MapLookup, len(base)+2)
			for k, v := range base {
				env[k] = v
			}
			env[p.x] = math.Pow(10, xs[i])
			for j := range ys {
				if err := gctx.Err(); err != nil {
					return err
				}
				env[p.y] = math.Pow(10, ys[j])
				row[j] = -1
				for k, c := range cs {
					ok, err := c.IsValidAtPoint(env)
					if err != nil {
						return err
					}
					if !ok {
						continue
					}
					idx, err := reduced[k].RouthIndex(env)
					if err != nil {
						return fmt.Errorf("case %d: %w", c.Number(), err)
					}
					row[j] = max(row[j], idx)
				}
			}
			grid[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	seen := map[int]bool{}
	for i := 0; i+1 < res; i++ {
		for j := 0; j+1 < res; j++ {
			v := grid[i][j]
			s.Cells = append(s.Cells, Cell{X: [2]float64{xs[i], xs[i+1]}, Y: [2]float64{ys[j], ys[j+1]}, Z: float64(v)})
			s.trackZ(float64(v))
			if v >= 0 {
				seen[v] = true
			}
		}
	}
	for v := range seen {
		s.Levels = append(s.Levels, v)
	}
	slices.Sort(s.Levels)
	return nil
}

func (p *Plot) drawOutlines(s *Scene, cs []*cases.Case, lower, upper *variables.Pool) error {
	for _, c := range cs {
		v, err := c.VerticesFor2DSlice(lower, upper, p.x, p.y)
		if err != nil {
			return err
		}
		if v.Len() > 0 {
			s.Outlines = append(s.Outlines, polygon(v))
		}
	}
	return nil
}
