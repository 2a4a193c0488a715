// SPDX-License-Identifier: MIT

// Package config reads YAML model files: the equations of a design space,
// an operating point and an optional plot block.
//
//	name: cascade
//	equations:
//	  - "x1. = a + b*x1*x2 - c*x1"
//	  - "x2. = c*x1 - x2"
//	dependent: [x1, x2]
//	point:
//	  - {name: a, value: 1}
//	  - {name: b, value: 1}
//	  - {name: c, value: 1}
//	plot: {x: b, y: c, xlim: [0.01, 100], ylim: [0.01, 100]}
//
// The point is a list so that its order survives a round trip.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/dstoolbox/designspace"
	"github.com/katalvlaran/dstoolbox/dsplot"
	"github.com/katalvlaran/dstoolbox/variables"
)

var (
	// ErrInvalidModel wraps a model that fails validation.
	ErrInvalidModel = errors.New("config: invalid model")

	// ErrNoPlot indicates a model without a plot block.
	ErrNoPlot = errors.New("config: model has no plot block")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Model is one model file.
type Model struct {
	Name        string       `yaml:"name" json:"name" validate:"required"`
	Equations   []string     `yaml:"equations" json:"equations" validate:"required,min=1,dive,required"`
	Dependent   []string     `yaml:"dependent,omitempty" json:"dependent,omitempty" validate:"omitempty,eqfield=Equations,dive,required"`
	Independent []string     `yaml:"independent,omitempty" json:"independent,omitempty" validate:"omitempty,dive,required"`
	Point       []Assignment `yaml:"point,omitempty" json:"point,omitempty" validate:"omitempty,dive"`
	Plot        *Plot        `yaml:"plot,omitempty" json:"plot,omitempty"`
	Workers     int          `yaml:"workers,omitempty" json:"workers,omitempty" validate:"gte=0"`
}

// Assignment is one name = value entry of the point.
type Assignment struct {
	Name  string  `yaml:"name" json:"name" validate:"required"`
	Value float64 `yaml:"value" json:"value" validate:"gt=0"`
}

// Plot is the plot block of a model file. Limits are linear.
type Plot struct {
	X          string     `yaml:"x" json:"x" validate:"required"`
	Y          string     `yaml:"y" json:"y" validate:"required,nefield=X"`
	XLim       [2]float64 `yaml:"xlim" json:"xlim" validate:"dive,gt=0"`
	YLim       [2]float64 `yaml:"ylim" json:"ylim" validate:"dive,gt=0"`
	Mode       string     `yaml:"mode,omitempty" json:"mode,omitempty" validate:"omitempty,oneof=slice function routh"`
	Function   string     `yaml:"function,omitempty" json:"function,omitempty" validate:"required_if=Mode function"`
	Resolution int        `yaml:"resolution,omitempty" json:"resolution,omitempty" validate:"gte=0,lte=2000"`
	Boundaries bool       `yaml:"boundaries,omitempty" json:"boundaries,omitempty"`
	LogLinear  bool       `yaml:"log_linear,omitempty" json:"log_linear,omitempty"`
}

// Load reads and validates the model file at path.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Parse decodes a YAML (or JSON) model. Unknown fields are rejected.
//
// Errors: ErrInvalidModel, and yaml decoding errors.
func Parse(data []byte) (*Model, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var m Model
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the struct tags and that point names are distinct.
func (m *Model) Validate() error {
	if err := validate.Struct(m); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidModel, err)
	}
	seen := make(map[string]bool, len(m.Point))
	for _, a := range m.Point {
		if seen[a.Name] {
			return fmt.Errorf("%w: point: duplicate %q", ErrInvalidModel, a.Name)
		}
		seen[a.Name] = true
	}
	return nil
}

// Validate checks a plot block on its own, e.g. one sent over HTTP.
func (p *Plot) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: plot: %w", ErrInvalidModel, err)
	}
	return nil
}

// Marshal encodes the model as YAML.
func (m *Model) Marshal() ([]byte, error) {
	return yaml.Marshal(m)
}

// DesignSpace builds the model's design space. opts are applied after
// the model's own independent-variable order and worker count.
func (m *Model) DesignSpace(opts ...designspace.Option) (*designspace.DesignSpace, error) {
	var own []designspace.Option
	if len(m.Independent) > 0 {
		own = append(own, designspace.WithXi(m.Independent...))
	}
	if m.Workers > 0 {
		own = append(own, designspace.WithWorkers(m.Workers))
	}
	return designspace.New(m.Equations, m.Dependent, append(own, opts...)...)
}

// PointPool returns the model's point as a pool, in file order.
func (m *Model) PointPool() (*variables.Pool, error) {
	vars := make([]variables.Variable, len(m.Point))
	for k, a := range m.Point {
		vars[k] = variables.Variable{Name: a.Name, Value: a.Value}
	}
	p, err := variables.FromVariables(vars...)
	if err != nil {
		return nil, fmt.Errorf("config: point: %w", err)
	}
	return p, nil
}

// NewPlot builds the plot described by the plot block over ds.
//
// Errors: ErrNoPlot, and the dsplot constructor errors.
func (m *Model) NewPlot(ds *designspace.DesignSpace, opts ...dsplot.Option) (*dsplot.Plot, dsplot.DrawOptions, error) {
	if m.Plot == nil {
		return nil, dsplot.DrawOptions{}, ErrNoPlot
	}
	pl := m.Plot
	mode := dsplot.ModeSlice
	if pl.Mode != "" {
		var err error
		if mode, err = dsplot.ParseMode(pl.Mode); err != nil {
			return nil, dsplot.DrawOptions{}, err
		}
	}
	point, err := m.PointPool()
	if err != nil {
		return nil, dsplot.DrawOptions{}, err
	}
	p, err := dsplot.NewPlot(ds, point, pl.X, pl.XLim, pl.Y, pl.YLim, append([]dsplot.Option{dsplot.WithMode(mode)}, opts...)...)
	if err != nil {
		return nil, dsplot.DrawOptions{}, err
	}
	return p, dsplot.DrawOptions{
		Function:   pl.Function,
		Resolution: pl.Resolution,
		Boundaries: pl.Boundaries,
		LogLinear:  pl.LogLinear,
	}, nil
}
