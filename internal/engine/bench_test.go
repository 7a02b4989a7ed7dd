package engine

import (
	"math"
	"testing"
)

func ringBodies(n int) []Body {
	bodies := make([]Body, n)
	for i := range bodies {
		angle := float64(i) * 2 * math.Pi / float64(n)
		bodies[i] = Body{
			Pos:    Vec2{10 * math.Cos(angle), 10 * math.Sin(angle)},
			Vel:    Vec2{-math.Sin(angle), math.Cos(angle)},
			Radius: 0.5,
			Mass:   1,
		}
	}
	return bodies
}

func BenchmarkStep2(b *testing.B) {
	st := NewStepper()
	bodies := impactBodies()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		st.Step(bodies, 1.0/240.0)
	}
}

func BenchmarkStep16(b *testing.B) {
	st := NewStepper()
	bodies := ringBodies(16)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		st.Step(bodies, 1.0/240.0)
	}
}

func BenchmarkStep16Gravity(b *testing.B) {
	st := &Stepper{Gravity: true, G: 0.1}
	bodies := ringBodies(16)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		st.Step(bodies, 1.0/240.0)
	}
}

func BenchmarkAdvanceFrame(b *testing.B) {
	s := NewSession(ringBodies(8), DefaultConfig())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Advance(1.0 / 60.0)
	}
}

func BenchmarkMinSubStep16(b *testing.B) {
	s := NewSession(ringBodies(16), DefaultConfig())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.minSubStep()
	}
}
