package engine

import (
	"math"
	"testing"
)

func impactBodies() []Body {
	return []Body{
		{Pos: Vec2{-2, 1}, Vel: Vec2{0, 0}, Radius: 1, Mass: 1},
		{Pos: Vec2{2, 0}, Vel: Vec2{-5, 0}, Radius: 1, Mass: 2},
	}
}

func TestAdvanceCarryInvariant(t *testing.T) {
	s := NewSession(impactBodies(), DefaultConfig())

	elapsed := []float64{0, 0.001, 1.0 / 60.0, 0.05, 0.3, 1.0 / 30.0, 0.0099}
	for _, dt := range elapsed {
		s.Advance(dt)
		if s.Carry() < 0 || s.Carry() >= s.Nominal() {
			t.Fatalf("carry %.9f outside [0,%.9f) after Advance(%.4f)", s.Carry(), s.Nominal(), dt)
		}
	}
}

func TestAdvanceStepCountMonotonic(t *testing.T) {
	s := NewSession(impactBodies(), DefaultConfig())

	prev := s.Steps
	for i := 0; i < 120; i++ {
		taken := s.Advance(1.0 / 60.0)
		if taken < 1 {
			t.Fatalf("frame %d: expected at least one sub-step, got %d", i, taken)
		}
		if s.Steps <= prev {
			t.Fatalf("frame %d: step counter did not increase (%d -> %d)", i, prev, s.Steps)
		}
		prev = s.Steps
	}
}

func TestMinSubStepSkipsZeroApproachRate(t *testing.T) {
	cfg := DefaultConfig()

	// Identical velocities: the relative velocity is zero.
	s := NewSession([]Body{
		{Pos: Vec2{0, 0}, Vel: Vec2{2, 3}, Radius: 1, Mass: 1},
		{Pos: Vec2{10, 0}, Vel: Vec2{2, 3}, Radius: 1, Mass: 1},
	}, cfg)
	if got := s.minSubStep(); got != cfg.Nominal {
		t.Errorf("parallel pair: sub-step %.9f, expected nominal %.9f", got, cfg.Nominal)
	}

	// Relative velocity perpendicular to the separation: dot is zero.
	s = NewSession([]Body{
		{Pos: Vec2{0, 0}, Vel: Vec2{0, 0}, Radius: 1, Mass: 1},
		{Pos: Vec2{10, 0}, Vel: Vec2{0, 4}, Radius: 1, Mass: 1},
	}, cfg)
	if got := s.minSubStep(); got != cfg.Nominal {
		t.Errorf("perpendicular pair: sub-step %.9f, expected nominal %.9f", got, cfg.Nominal)
	}
}

func TestMinSubStepFloorsFastApproach(t *testing.T) {
	cfg := DefaultConfig()
	s := NewSession([]Body{
		{Pos: Vec2{0, 0}, Vel: Vec2{0, 0}, Radius: 1, Mass: 1},
		{Pos: Vec2{2.01, 0}, Vel: Vec2{-100, 0}, Radius: 1, Mass: 1},
	}, cfg)

	if got := s.minSubStep(); got != cfg.Floor {
		t.Errorf("near-contact fast pair: sub-step %.9f, expected floor %.9f", got, cfg.Floor)
	}
}

func TestMinSubStepShrinksNearContact(t *testing.T) {
	cfg := DefaultConfig()
	s := NewSession([]Body{
		{Pos: Vec2{0, 0}, Vel: Vec2{0, 0}, Radius: 1, Mass: 1},
		{Pos: Vec2{2.5, 0}, Vel: Vec2{-40, 0}, Radius: 1, Mass: 1},
	}, cfg)

	got := s.minSubStep()
	if got >= cfg.Nominal {
		t.Errorf("closing pair must shrink the sub-step below nominal, got %.9f", got)
	}
	if got < cfg.Floor {
		t.Errorf("sub-step %.9f below floor %.9f", got, cfg.Floor)
	}
}

// Drives the drain loop by hand to watch the gap at sub-step granularity:
// sizing must stop the pair from sinking deeper than one floor-step of
// approach, and never lets them pass through each other.
func TestNoTunnelingAtSubStepGranularity(t *testing.T) {
	cfg := DefaultConfig()
	bodies := impactBodies()
	bodies[1].Vel.X = -40 // fast enough to tunnel at a fixed nominal step

	s := NewSession(bodies, cfg)
	ke0 := KineticEnergy(s.Bodies)

	// Worst overshoot per sub-step is the radial closing speed over one
	// floor-sized step.
	maxDepth := 41 * cfg.Floor

	collided := false
	minDist := math.Inf(1)
	for s.Time < 1.0 {
		gap := s.Bodies[0].Pos.Distance(s.Bodies[1].Pos) - 2
		if gap < -maxDepth {
			t.Fatalf("t=%.6f: overlap depth %.6f exceeds one floor-step of approach", s.Time, -gap)
		}
		if gap < 0 {
			collided = true
		}
		if d := s.Bodies[0].Pos.Distance(s.Bodies[1].Pos); d < minDist {
			minDist = d
		}

		dt := s.minSubStep()
		s.Stepper.Step(s.Bodies, dt)
		s.Time += dt
	}

	if !collided {
		t.Fatal("expected the pair to reach contact within one second")
	}
	if minDist < 1.0 {
		t.Errorf("centers closed to %.6f, deeper than half the combined radius", minDist)
	}
	if ke := KineticEnergy(s.Bodies); math.Abs(ke-ke0) > 1e-9*ke0 {
		t.Errorf("kinetic energy drifted across contact: %.12f -> %.12f", ke0, ke)
	}
}

func TestReferenceImpactScenario(t *testing.T) {
	s := NewSession(impactBodies(), DefaultConfig())

	ke0 := KineticEnergy(s.Bodies)
	if math.Abs(ke0-25) > 1e-12 {
		t.Fatalf("initial kinetic energy: got %.12f, expected 25", ke0)
	}
	px0, py0 := Momentum(s.Bodies)

	collisionFrame := -1
	for frame := 0; frame < 120; frame++ {
		s.Advance(1.0 / 60.0)
		if s.Bodies[0].Vel.X != 0 || s.Bodies[0].Vel.Y != 0 {
			collisionFrame = frame
			break
		}
	}
	if collisionFrame < 0 {
		t.Fatal("bodies never collided within two seconds")
	}

	a, b := s.Bodies[0], s.Bodies[1]
	if a.Vel.X >= 0 || a.Vel.Y <= 0 {
		t.Errorf("deflected body velocity (%.6f,%.6f): expected motion left and up", a.Vel.X, a.Vel.Y)
	}
	if b.Vel.X <= -5 || b.Vel.Y >= 0 {
		t.Errorf("incoming body velocity (%.6f,%.6f): expected slower x, downward y", b.Vel.X, b.Vel.Y)
	}

	if ke := KineticEnergy(s.Bodies); math.Abs(ke-ke0) > 1e-9*ke0 {
		t.Errorf("kinetic energy across the collision: %.12f -> %.12f", ke0, ke)
	}
	px, py := Momentum(s.Bodies)
	if math.Abs(px-px0) > 1e-9 || math.Abs(py-py0) > 1e-9 {
		t.Errorf("momentum across the collision: (%.9f,%.9f) -> (%.9f,%.9f)", px0, py0, px, py)
	}
}

func TestSessionReversalRoundtrip(t *testing.T) {
	bodies := []Body{
		{Pos: Vec2{0, 0}, Vel: Vec2{1, 0.5}, Radius: 0.5, Mass: 1},
		{Pos: Vec2{40, -30}, Vel: Vec2{-0.5, 1}, Radius: 0.5, Mass: 2},
		{Pos: Vec2{-25, 60}, Vel: Vec2{0.2, -0.3}, Radius: 0.5, Mass: 0.5},
	}
	start := CloneBodies(bodies)

	s := NewSession(bodies, DefaultConfig())
	for i := 0; i < 60; i++ {
		s.Advance(1.0 / 60.0)
	}
	s.Reverse()
	for i := 0; i < 60; i++ {
		s.Advance(1.0 / 60.0)
	}

	for i := range s.Bodies {
		if d := s.Bodies[i].Pos.Distance(start[i].Pos); d > 1e-9 {
			t.Errorf("body %d position error after roundtrip: %.3e", i, d)
		}
		if d := s.Bodies[i].Vel.Distance(start[i].Vel); d > 1e-9 {
			t.Errorf("body %d velocity error after roundtrip: %.3e", i, d)
		}
	}
	if math.Abs(s.Time) > 1e-9 {
		t.Errorf("simulated time after roundtrip: %.3e, expected 0", s.Time)
	}
}

func TestNonCollidingPairsIndependent(t *testing.T) {
	bodies := []Body{
		{Pos: Vec2{0, 0}, Vel: Vec2{1, 0}, Radius: 0.5, Mass: 1},
		{Pos: Vec2{0, 10}, Vel: Vec2{1, 0}, Radius: 0.5, Mass: 3},
	}
	v0, v1 := bodies[0].Vel, bodies[1].Vel

	s := NewSession(bodies, DefaultConfig())
	for i := 0; i < 180; i++ {
		s.Advance(1.0 / 60.0)
	}

	if s.Bodies[0].Vel != v0 || s.Bodies[1].Vel != v1 {
		t.Error("velocities of bodies that never meet must not change")
	}
	if s.Bodies[0].Pos.X <= 0 {
		t.Error("bodies should still drift under their own velocity")
	}
}

func TestSessionReset(t *testing.T) {
	s := NewSession(impactBodies(), DefaultConfig())
	for i := 0; i < 30; i++ {
		s.Advance(1.0 / 60.0)
	}
	s.Reverse()

	s.Reset()

	want := impactBodies()
	for i := range want {
		if s.Bodies[i] != want[i] {
			t.Errorf("body %d not restored: %+v", i, s.Bodies[i])
		}
	}
	if s.Steps != 0 || s.Time != 0 || s.Carry() != 0 || s.Direction != 1 {
		t.Errorf("loop state not cleared: steps=%d time=%v carry=%v dir=%v",
			s.Steps, s.Time, s.Carry(), s.Direction)
	}
}

func TestSessionEnergyIncludesPotentialOnlyWithGravity(t *testing.T) {
	bodies := []Body{
		{Pos: Vec2{0, 0}, Vel: Vec2{0, 1}, Radius: 0.1, Mass: 1},
		{Pos: Vec2{2, 0}, Vel: Vec2{0, -1}, Radius: 0.1, Mass: 1},
	}

	off := NewSession(CloneBodies(bodies), DefaultConfig())
	if math.Abs(off.Energy()-1.0) > 1e-12 {
		t.Errorf("gravity off: energy %.12f, expected kinetic 1.0", off.Energy())
	}

	cfg := DefaultConfig()
	cfg.Gravity = true
	on := NewSession(CloneBodies(bodies), cfg)
	want := 1.0 - 1.0/2.0 // kinetic plus -G m m / r
	if math.Abs(on.Energy()-want) > 1e-12 {
		t.Errorf("gravity on: energy %.12f, expected %.12f", on.Energy(), want)
	}
}
