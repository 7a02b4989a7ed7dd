package engine

import "math"

// Body is a rigid circular body. Radius and Mass must be positive; the
// engine does not validate them.
//
// Acc is transient: forces accumulate into it during the pair pass of a
// step and integration consumes and zeroes it. It carries no state from
// one step to the next.
type Body struct {
	Pos    Vec2
	Vel    Vec2
	Acc    Vec2
	Radius float64
	Mass   float64
}

// Speed returns the magnitude of the body's velocity.
func (b *Body) Speed() float64 { return b.Vel.Length() }

// KineticEnergy sums 1/2 m v^2 over the bodies.
func KineticEnergy(bodies []Body) float64 {
	ke := 0.0
	for i := range bodies {
		ke += 0.5 * bodies[i].Mass * bodies[i].Vel.LengthSq()
	}
	return ke
}

// PotentialEnergy sums the pair potential -g m_i m_j / r over all pairs.
func PotentialEnergy(bodies []Body, g float64) float64 {
	pe := 0.0
	n := len(bodies)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			r := bodies[i].Pos.Distance(bodies[j].Pos)
			pe -= g * bodies[i].Mass * bodies[j].Mass / r
		}
	}
	return pe
}

// Momentum returns the total linear momentum of the bodies.
func Momentum(bodies []Body) (px, py float64) {
	for i := range bodies {
		px += bodies[i].Mass * bodies[i].Vel.X
		py += bodies[i].Mass * bodies[i].Vel.Y
	}
	return
}

// Finite reports whether every position and velocity component is finite.
// Coincident centers during resolution leave NaN behind; this is the check
// hosts use to detect that.
func Finite(bodies []Body) bool {
	for i := range bodies {
		b := &bodies[i]
		vals := [4]float64{b.Pos.X, b.Pos.Y, b.Vel.X, b.Vel.Y}
		for _, v := range vals {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

// CloneBodies returns an independent copy of bodies.
func CloneBodies(bodies []Body) []Body {
	out := make([]Body, len(bodies))
	copy(out, bodies)
	return out
}
