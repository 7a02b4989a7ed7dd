package engine

import "math"

// Config carries the runtime parameters of a simulation session.
type Config struct {
	Gravity bool    // mutual gravitational attraction between bodies
	G       float64 // gravitational constant when Gravity is on
	Nominal float64 // target sub-step, one display frame of simulated time
	Floor   float64 // hard lower bound on a sub-step
}

// DefaultConfig returns the standard 60 Hz configuration with gravity off.
func DefaultConfig() Config {
	return Config{
		Gravity: false,
		G:       1.0,
		Nominal: 1.0 / 60.0,
		Floor:   1.0 / 3000.0,
	}
}

// Session owns the mutable loop state of one simulation: the bodies, the
// direction of time, leftover frame time carried between calls and the
// running sub-step count. It is not safe for concurrent use.
type Session struct {
	Bodies    []Body
	Direction float64 // +1 forward, -1 backward
	Steps     uint64  // sub-steps taken since construction or Reset
	Time      float64 // signed simulated time advanced so far

	Stepper *Stepper

	nominal float64
	floor   float64
	carry   float64
	initial []Body
}

// NewSession builds a session over bodies. The slice is used as-is; an
// internal snapshot backs Reset.
func NewSession(bodies []Body, cfg Config) *Session {
	return &Session{
		Bodies:    bodies,
		Direction: 1,
		Stepper:   &Stepper{Gravity: cfg.Gravity, G: cfg.G},
		nominal:   cfg.Nominal,
		floor:     cfg.Floor,
		initial:   CloneBodies(bodies),
	}
}

// Advance consumes one frame's elapsed wall time, splitting it into
// adaptive sub-steps of at most the nominal size, and returns the number
// of sub-steps taken. Unconsumed time below one nominal step is carried
// to the next call, so Carry stays in [0, nominal).
func (s *Session) Advance(elapsed float64) int {
	s.carry += elapsed
	taken := 0
	for s.carry >= s.nominal {
		dt := s.minSubStep()
		s.Stepper.Step(s.Bodies, s.Direction*dt)
		s.carry -= dt
		s.Time += s.Direction * dt
		s.Steps++
		taken++
	}
	return taken
}

// minSubStep sizes the next sub-step by the most urgent pair: the step may
// not exceed any pair's remaining gap divided by its approach rate, so no
// pair can pass fully through another within one step. A pair with zero
// approach rate contributes no constraint. The floor keeps a closing pair
// from shrinking the step without bound.
func (s *Session) minSubStep() float64 {
	min := s.nominal
	n := len(s.Bodies)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			a, b := &s.Bodies[i], &s.Bodies[j]
			rel := math.Abs(b.Vel.Sub(a.Vel).Dot(b.Pos.Sub(a.Pos)))
			if rel == 0 {
				continue
			}
			gap := a.Pos.Distance(b.Pos) - (a.Radius + b.Radius)
			if cand := gap / rel; cand < min {
				min = cand
			}
			if min < s.floor {
				min = s.floor
			}
		}
	}
	return min
}

// Reverse flips the direction of time for subsequent sub-steps.
func (s *Session) Reverse() { s.Direction = -s.Direction }

// Reset restores the bodies to their construction state and clears the
// loop state.
func (s *Session) Reset() {
	s.Bodies = CloneBodies(s.initial)
	s.Direction = 1
	s.Steps = 0
	s.Time = 0
	s.carry = 0
}

// Carry returns elapsed time not yet consumed by sub-steps.
func (s *Session) Carry() float64 { return s.carry }

// Nominal returns the configured nominal sub-step.
func (s *Session) Nominal() float64 { return s.nominal }

// Floor returns the configured sub-step lower bound.
func (s *Session) Floor() float64 { return s.floor }

// Energy returns the total system energy: kinetic, plus the pair potential
// when gravity is on.
func (s *Session) Energy() float64 {
	e := KineticEnergy(s.Bodies)
	if s.Stepper.Gravity {
		e += PotentialEnergy(s.Bodies, s.Stepper.G)
	}
	return e
}
