package metrics

import (
	"math"

	"github.com/san-kum/colsim/internal/engine"
)

// Kinetic reports the most recently observed total kinetic energy.
type Kinetic struct {
	name    string
	latest  float64
	samples int
}

func NewKinetic() *Kinetic {
	return &Kinetic{name: "kinetic_energy"}
}

func (k *Kinetic) Name() string { return k.name }

func (k *Kinetic) Observe(bodies []engine.Body, t float64) {
	k.latest = engine.KineticEnergy(bodies)
	k.samples++
}

func (k *Kinetic) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.latest
}

func (k *Kinetic) Reset() {
	k.latest = 0
	k.samples = 0
}

// EnergyDrift tracks the worst relative deviation of total energy from
// the first observation. Elastic collisions keep it near rounding noise;
// anything larger points at an integration problem.
type EnergyDrift struct {
	name     string
	gravity  bool
	g        float64
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift(gravity bool, g float64) *EnergyDrift {
	return &EnergyDrift{name: "energy_drift", gravity: gravity, g: g}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) total(bodies []engine.Body) float64 {
	total := engine.KineticEnergy(bodies)
	if e.gravity {
		total += engine.PotentialEnergy(bodies, e.g)
	}
	return total
}

func (e *EnergyDrift) Observe(bodies []engine.Body, t float64) {
	energy := e.total(bodies)
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}
