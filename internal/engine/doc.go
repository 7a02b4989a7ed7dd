// Package engine implements the collision simulation core.
//
// The package provides the physics primitives and the stepping machinery:
//
//   - [Body]: rigid circular body with position, velocity, radius and mass
//   - [Colliding] / [Resolve]: pairwise overlap test and elastic response
//   - [Stepper]: fixed-delta semi-implicit Euler with optional mutual gravity
//   - [Session]: adaptive sub-stepping over per-frame elapsed time
//
// # Time Reversal
//
// Every formula is a pure function of the signed time delta. Stepping a
// collection forward and then backward over the same deltas returns every
// body to its starting state up to floating-point rounding, including
// through collisions:
//
//	s := engine.NewSession(bodies, engine.DefaultConfig())
//	s.Advance(1.0 / 60.0)
//	s.Reverse()
//	s.Advance(1.0 / 60.0)
//
// # Sub-Stepping
//
// A fixed step lets a fast pair pass through each other between overlap
// checks. [Session.Advance] splits each frame so that no pair can close
// its remaining gap within one sub-step, bounded below by [Config.Floor]
// to cap the work per frame.
//
// # Degeneracies
//
// Exactly coincident centers make [Resolve] divide by zero; the result is
// non-finite and intentionally not guarded. A zero approach rate during
// sub-step sizing is skipped instead of dividing. Hosts that can feed the
// engine coincident bodies should check [Finite].
package engine
