// SPDX-License-Identifier: MIT

package dsplot

import (
	"fmt"
	"image/color"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Render draws the scene with gonum/plot and saves it to path; the
// extension (.png, .svg, .pdf, ...) selects the format. Cells are colored
// on a blue-red map over the scene's z range, regions use their colormap
// colors and appear in the legend, outlines are black.
//
// Errors: ErrEmptyScene, and gonum/plot errors.
func Render(s *Scene, path string, width, height vg.Length) error {
	if s == nil || (len(s.Regions) == 0 && len(s.Cells) == 0 && len(s.Outlines) == 0) {
		return ErrEmptyScene
	}
	p := plot.New()
	p.Title.Text = "Design space (" + s.Mode.String() + ")"
	p.X.Label.Text = s.XLabel
	p.Y.Label.Text = s.YLabel
	p.X.Min, p.X.Max = s.XLim[0], s.XLim[1]
	p.Y.Min, p.Y.Max = s.YLim[0], s.YLim[1]

	if len(s.Cells) > 0 {
		cm := moreland.SmoothBlueRed()
		lo, hi := s.ZLim[0], s.ZLim[1]
		if hi <= lo {
			hi = lo + 1
		}
		cm.SetMin(lo)
		cm.SetMax(hi)
		for _, c := range s.Cells {
			fill, err := cm.At(c.Z)
			if err != nil {
				return fmt.Errorf("dsplot: cell color: %w", err)
			}
			poly, err := plotter.NewPolygon(plotter.XYs{
				{X: c.X[0], Y: c.Y[0]}, {X: c.X[1], Y: c.Y[0]},
				{X: c.X[1], Y: c.Y[1]}, {X: c.X[0], Y: c.Y[1]},
			})
			if err != nil {
				return err
			}
			poly.Color = fill
			poly.LineStyle.Width = 0
			p.Add(poly)
		}
	}

	for _, r := range s.Regions {
		fill, err := ParseHex(r.Color)
		if err != nil {
			return err
		}
		poly, err := plotter.NewPolygon(xys(r.Points))
		if err != nil {
			return err
		}
		poly.Color = fill
		poly.LineStyle.Width = vg.Points(0.5)
		p.Add(poly)
		p.Legend.Add(r.Key, poly)
	}

	for _, o := range s.Outlines {
		poly, err := plotter.NewPolygon(xys(o))
		if err != nil {
			return err
		}
		poly.Color = nil
		poly.LineStyle.Color = color.Black
		poly.LineStyle.Width = vg.Points(1)
		p.Add(poly)
	}

	p.Legend.Top = true
	return p.Save(width, height, path)
}

func xys(points [][2]float64) plotter.XYs {
	out := make(plotter.XYs, len(points))
	for k, pt := range points {
		out[k].X, out[k].Y = pt[0], pt[1]
	}
	return out
}

// ParseHex reads a "#rrggbb" color.
func ParseHex(s string) (color.RGBA, error) {
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("dsplot: bad color %q", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("dsplot: bad color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
