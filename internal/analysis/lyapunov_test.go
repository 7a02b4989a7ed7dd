package analysis

import (
	"math"
	"testing"

	"github.com/san-kum/colsim/internal/scene"
)

func driftScene() *scene.Scene {
	return &scene.Scene{
		Name: "drift",
		Bodies: []scene.BodyConfig{
			{X: 0, Y: 0, VX: 1, Radius: 0.5, Mass: 1},
		},
		Stepping: scene.StepConfig{Nominal: 1.0 / 60.0, Floor: 1.0 / 3000.0},
	}
}

func scatterScene() *scene.Scene {
	return &scene.Scene{
		Name: "scatter",
		Bodies: []scene.BodyConfig{
			{X: -4, Y: 0.3, VX: 6, Radius: 0.5, Mass: 1},
			{X: 0, Y: 0, Radius: 0.5, Mass: 1},
		},
		Stepping: scene.StepConfig{Nominal: 1.0 / 60.0, Floor: 1.0 / 3000.0},
	}
}

func TestLyapunovFreeDriftIsZero(t *testing.T) {
	// Without interactions a position offset is carried unchanged, so
	// the separation never grows beyond rounding noise.
	lambda := LyapunovExponent(driftScene(), 300, 1e-6)
	if math.Abs(lambda) > 1e-9 {
		t.Fatalf("free drift lyapunov = %v, want ~0", lambda)
	}
}

func TestLyapunovScatterIsPositive(t *testing.T) {
	// A glancing collision amplifies a tiny offset into a different
	// scattering angle.
	lambda := LyapunovExponent(scatterScene(), 300, 1e-6)
	if lambda <= 0 {
		t.Fatalf("scatter lyapunov = %v, want > 0", lambda)
	}
}

func TestLyapunovDegenerateInputs(t *testing.T) {
	if got := LyapunovExponent(&scene.Scene{}, 100, 1e-6); got != 0 {
		t.Errorf("empty scene: got %v, want 0", got)
	}
	if got := LyapunovExponent(driftScene(), 0, 1e-6); got != 0 {
		t.Errorf("zero frames: got %v, want 0", got)
	}
	if got := LyapunovExponent(driftScene(), 100, 0); got != 0 {
		t.Errorf("zero perturbation: got %v, want 0", got)
	}
}
