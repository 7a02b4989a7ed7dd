package engine

import "math"

// Stepper advances a body collection by fixed signed time deltas. Gravity
// selects mutual attraction between bodies at runtime; when it is off the
// only interaction is elastic collision.
type Stepper struct {
	Gravity bool
	G       float64
}

func NewStepper() *Stepper {
	return &Stepper{G: 1.0}
}

// Step advances every body by dt. The sign of dt selects the direction of
// time; the formulas are otherwise identical both ways.
//
// The pair pass runs to completion before any body is integrated.
// Collision resolution overwrites pair velocities in place as pairs are
// visited; positions move only in the integration pass at the end.
func (s *Stepper) Step(bodies []Body, dt float64) {
	n := len(bodies)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			a, b := &bodies[i], &bodies[j]
			if s.Gravity {
				d := b.Pos.Sub(a.Pos)
				r2 := d.LengthSq()
				r3 := r2 * math.Sqrt(r2)
				a.Acc = a.Acc.Add(d.Scale(s.G * b.Mass / r3))
				b.Acc = b.Acc.Add(d.Scale(-s.G * a.Mass / r3))
			}
			if Colliding(a, b) {
				a.Vel, b.Vel = Resolve(a, b)
			}
		}
	}
	for i := range bodies {
		b := &bodies[i]
		b.Vel = b.Vel.Add(b.Acc.Scale(dt))
		b.Pos = b.Pos.Add(b.Vel.Scale(dt))
		b.Acc = Vec2{}
	}
}
