// Package metrics reduces simulation state to scalar diagnostics.
package metrics

import "github.com/san-kum/colsim/internal/engine"

// Metric observes the body collection between frames and reduces the
// series to a single value.
type Metric interface {
	Name() string
	Observe(bodies []engine.Body, t float64)
	Value() float64
	Reset()
}

// Standard returns the default metric set for a run.
func Standard(gravity bool, g float64) []Metric {
	return []Metric{
		NewKinetic(),
		NewEnergyDrift(gravity, g),
		NewMomentumDrift(),
		NewMinSeparation(),
	}
}
