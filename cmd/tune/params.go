package main

import (
	"github.com/pthm-cable/hoverwalk/config"
)

// ParamSpec is one tunable suspension constant and where it lives in the config.
type ParamSpec struct {
	Name     string
	Path     string
	Min, Max float64
	Default  float64
	field    func(*config.Config) *float64
}

func (s ParamSpec) span() float64 { return s.Max - s.Min }

// ParamVector maps between config values and the unit cube CMA-ES searches.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector returns the spring and damper coefficients. The damper bound keeps
// damper*dt/mass below 2 at 60 Hz; above that the velocity update diverges.
func NewParamVector() *ParamVector {
	return &ParamVector{Specs: []ParamSpec{
		{
			Name: "strength", Path: "hover.strength", Min: 100, Max: 3000, Default: 900,
			field: func(c *config.Config) *float64 { return &c.Hover.Strength },
		},
		{
			Name: "damper", Path: "hover.damper", Min: 0, Max: 110, Default: 60,
			field: func(c *config.Config) *float64 { return &c.Hover.Damper },
		},
	}}
}

func (pv *ParamVector) Dim() int { return len(pv.Specs) }

// each builds a vector by applying f to every parameter and the matching input value.
func (pv *ParamVector) each(in []float64, f func(ParamSpec, float64) float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, s := range pv.Specs {
		var v float64
		if in != nil {
			v = in[i]
		}
		out[i] = f(s, v)
	}
	return out
}

func (pv *ParamVector) DefaultVector() []float64 {
	return pv.each(nil, func(s ParamSpec, _ float64) float64 { return s.Default })
}

// Normalize maps raw values to [0, 1] over each parameter's bounds.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	return pv.each(raw, func(s ParamSpec, v float64) float64 { return (v - s.Min) / s.span() })
}

// Denormalize is the inverse of Normalize. It does not clamp.
func (pv *ParamVector) Denormalize(unit []float64) []float64 {
	return pv.each(unit, func(s ParamSpec, u float64) float64 { return s.Min + u*s.span() })
}

func (pv *ParamVector) Clamp(raw []float64) []float64 {
	return pv.each(raw, func(s ParamSpec, v float64) float64 { return min(max(v, s.Min), s.Max) })
}

// ApplyToConfig writes the clamped values into cfg.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	for i, v := range pv.Clamp(values) {
		*pv.Specs[i].field(cfg) = v
	}
}

// ExtractFromConfig reads the current values from cfg in Specs order.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return pv.each(nil, func(s ParamSpec, _ float64) float64 { return *s.field(cfg) })
}
