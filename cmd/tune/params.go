// Package main searches hysteresis values that keep the state machines from
// flapping without widening the bands more than needed.
package main

import (
	"github.com/pthm-cable/chase/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the parameter set for cfg. Upper bounds stay
// inside the widest band each machine accepts, so every candidate is a
// valid config.
func NewParamVector(cfg *config.Config) *ParamVector {
	tankBand := cfg.Tank.ChaseDistance - cfg.Tank.CaughtDistance
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "tank_hysteresis", Path: "tank.hysteresis", Min: 0, Max: 0.9 * tankBand, Default: cfg.Tank.Hysteresis},
			{Name: "mouse_hysteresis", Path: "mouse.hysteresis", Min: 0, Max: 0.9 * cfg.Mouse.EvadeDistance, Default: cfg.Mouse.Hysteresis},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		if span := spec.Max - spec.Min; span > 0 {
			normalized[i] = (raw[i] - spec.Min) / span
		}
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// Width returns the mean normalized size of the clamped values in [0, 1].
// It is the cost side of the objective: wider bands are slower to react.
func (pv *ParamVector) Width(values []float64) float64 {
	if len(pv.Specs) == 0 {
		return 0
	}
	var sum float64
	for _, n := range pv.Normalize(pv.Clamp(values)) {
		sum += n
	}
	return sum / float64(len(pv.Specs))
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)
	cfg.Tank.Hysteresis = clamped[0]
	cfg.Mouse.Hysteresis = clamped[1]
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Tank.Hysteresis,
		cfg.Mouse.Hysteresis,
	}
}
