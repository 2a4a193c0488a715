// SPDX-License-Identifier: MIT

package dsplot

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors.
var (
	// ErrMissingFunction indicates function mode without a function.
	ErrMissingFunction = errors.New("dsplot: function mode requires a function for the z direction")

	// ErrAxisNotIndependent indicates a plot axis that is not an independent variable.
	ErrAxisNotIndependent = errors.New("dsplot: axis is not an independent variable")

	// ErrBadLimits indicates axis limits that are not positive, not finite or equal.
	ErrBadLimits = errors.New("dsplot: axis limits must be positive, finite and distinct")

	// ErrUnknownMode indicates a mode name other than slice, function or routh.
	ErrUnknownMode = errors.New("dsplot: unknown mode")

	// ErrEmptyScene indicates a scene with nothing to render.
	ErrEmptyScene = errors.New("dsplot: scene is empty")
)

const (
	defaultResolution  = 100
	maxIntersectionLen = 99
)

// Mode selects what Draw computes.
type Mode int

const (
	ModeSlice Mode = iota
	ModeFunction
	ModeRouth
)

var modeNames = [...]string{"slice", "function", "routh"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode reads a mode name, case-insensitively.
func ParseMode(s string) (Mode, error) {
	for k, name := range modeNames {
		if strings.EqualFold(s, name) {
			return Mode(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Options configures a Plot.
type Options struct {
	Mode     Mode
	Colormap *Colormap // shared between plots to keep colors stable
}

// Option mutates Options.
type Option func(*Options)

// WithMode selects the drawing mode.
func WithMode(m Mode) Option { return func(o *Options) { o.Mode = m } }

// WithColormap reuses a colormap, e.g. across several plots of one model.
func WithColormap(c *Colormap) Option { return func(o *Options) { o.Colormap = c } }

// DrawOptions are the per-draw parameters.
type DrawOptions struct {
	Function      string   // function mode: expression over Xi, Xd and V_<xd>
	Resolution    int      // samples per axis range; 0 means 100
	Intersections []int    // slice mode: group sizes; nil means 2..99
	LogLinear     bool     // function mode: evaluate at vertices and interpolate
	Boundaries    bool     // outline the valid cases (function and routh modes)
	Algebraic     []string // routh mode: Xd treated as algebraic
}

// Region is a filled polygon in log10 coordinates.
type Region struct {
	Key    string       `json:"key"`
	Color  string       `json:"color"`
	Points [][2]float64 `json:"points"`
}

// Cell is an axis-aligned rectangle in log10 coordinates carrying a value.
type Cell struct {
	X [2]float64 `json:"x"`
	Y [2]float64 `json:"y"`
	Z float64    `json:"z"`
}

// LegendEntry maps a region key to its color.
type LegendEntry struct {
	Key   string `json:"key"`
	Color string `json:"color"`
}

// Scene is the result of Draw.
type Scene struct {
	Mode     Mode           `json:"mode"`
	XLabel   string         `json:"xlabel"`
	YLabel   string         `json:"ylabel"`
	XLim     [2]float64     `json:"xlim"`
	YLim     [2]float64     `json:"ylim"`
	Regions  []Region       `json:"regions,omitempty"`
	Cells    []Cell         `json:"cells,omitempty"`
	ZLim     []float64      `json:"zlim,omitempty"`   // [min, max] over Cells
	Levels   []int          `json:"levels,omitempty"` // routh mode
	Outlines [][][2]float64 `json:"outlines,omitempty"`
	Legend   []LegendEntry  `json:"legend,omitempty"`
}

// trackZ widens the scene's z range to include v.
func (s *Scene) trackZ(v float64) {
	if s.ZLim == nil {
		s.ZLim = []float64{v, v}
		return
	}
	s.ZLim[0] = min(s.ZLim[0], v)
	s.ZLim[1] = max(s.ZLim[1], v)
}
