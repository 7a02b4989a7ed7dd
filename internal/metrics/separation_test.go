package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/colsim/internal/engine"
)

func TestMinSeparationTracksTightestApproach(t *testing.T) {
	m := NewMinSeparation()

	bodies := twoBodies()
	m.Observe(bodies, 0)

	want := math.Sqrt(17) - 2
	if math.Abs(m.Value()-want) > 1e-12 {
		t.Errorf("expected gap %f, got %f", want, m.Value())
	}

	// A closer sample lowers the minimum; a later, wider one does not.
	bodies[1].Pos = engine.Vec2{X: 0.5, Y: 1}
	m.Observe(bodies, 1)
	bodies[1].Pos = engine.Vec2{X: 20, Y: 0}
	m.Observe(bodies, 2)

	if math.Abs(m.Value()-0.5) > 1e-12 {
		t.Errorf("expected gap 0.5, got %f", m.Value())
	}
}

func TestMinSeparationReportsOverlapDepth(t *testing.T) {
	m := NewMinSeparation()

	bodies := twoBodies()
	bodies[1].Pos = engine.Vec2{X: -0.5, Y: 1}
	m.Observe(bodies, 0)

	if math.Abs(m.Value()-(-0.5)) > 1e-12 {
		t.Errorf("expected overlap depth -0.5, got %f", m.Value())
	}
}

func TestMinSeparationSingleBody(t *testing.T) {
	m := NewMinSeparation()

	m.Observe(twoBodies()[:1], 0)
	if m.Value() != 0 {
		t.Errorf("expected neutral value without pairs, got %f", m.Value())
	}
}
