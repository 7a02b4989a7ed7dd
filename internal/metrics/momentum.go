package metrics

import (
	"math"

	"github.com/san-kum/colsim/internal/engine"
)

// MomentumDrift tracks the worst deviation of total linear momentum from
// the first observation, as a vector magnitude. Collisions and mutual
// gravity are internal forces, so any drift is numerical.
type MomentumDrift struct {
	name     string
	px, py   float64
	maxDrift float64
	samples  int
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{name: "momentum_drift"}
}

func (m *MomentumDrift) Name() string { return m.name }

func (m *MomentumDrift) Observe(bodies []engine.Body, t float64) {
	px, py := engine.Momentum(bodies)
	if m.samples == 0 {
		m.px, m.py = px, py
	}
	m.samples++

	drift := math.Hypot(px-m.px, py-m.py)
	m.maxDrift = math.Max(m.maxDrift, drift)
}

func (m *MomentumDrift) Value() float64 { return m.maxDrift }

func (m *MomentumDrift) Reset() {
	m.px, m.py = 0, 0
	m.maxDrift = 0
	m.samples = 0
}
