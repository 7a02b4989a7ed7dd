package metrics

import (
	"math"

	"github.com/san-kum/colsim/internal/engine"
)

// MinSeparation tracks the tightest pair gap seen over a run: surface
// distance, so zero is contact and negative values measure overlap depth.
// Deep negative values mean the sub-step sizing failed to keep up.
type MinSeparation struct {
	name    string
	best    float64
	sampled bool
}

func NewMinSeparation() *MinSeparation {
	return &MinSeparation{name: "min_separation", best: math.Inf(1)}
}

func (m *MinSeparation) Name() string { return m.name }

func (m *MinSeparation) Observe(bodies []engine.Body, t float64) {
	n := len(bodies)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			gap := bodies[i].Pos.Distance(bodies[j].Pos) - (bodies[i].Radius + bodies[j].Radius)
			if gap < m.best {
				m.best = gap
				m.sampled = true
			}
		}
	}
}

func (m *MinSeparation) Value() float64 {
	if !m.sampled {
		return 0
	}
	return m.best
}

func (m *MinSeparation) Reset() {
	m.best = math.Inf(1)
	m.sampled = false
}
