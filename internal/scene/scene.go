// Package scene loads and validates simulation scene files.
package scene

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/colsim/internal/engine"
)

var (
	// ErrNoBodies indicates a scene without any bodies.
	ErrNoBodies = errors.New("scene: no bodies defined")

	// ErrBodyShape indicates a body with non-positive radius or mass.
	ErrBodyShape = errors.New("scene: body radius and mass must be positive")

	// ErrStepping indicates an unusable stepping configuration.
	ErrStepping = errors.New("scene: floor must be positive and smaller than nominal")
)

// Scene is the on-disk description of a simulation: the bodies and the
// engine parameters they run under.
type Scene struct {
	Name     string        `yaml:"name"`
	Bodies   []BodyConfig  `yaml:"bodies"`
	Gravity  GravityConfig `yaml:"gravity"`
	Stepping StepConfig    `yaml:"stepping"`
}

type BodyConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	VX     float64 `yaml:"vx"`
	VY     float64 `yaml:"vy"`
	Radius float64 `yaml:"radius"`
	Mass   float64 `yaml:"mass"`
}

type GravityConfig struct {
	Enabled bool    `yaml:"enabled"`
	G       float64 `yaml:"g"`
}

type StepConfig struct {
	Nominal float64 `yaml:"nominal"`
	Floor   float64 `yaml:"floor"`
}

// DefaultScene returns the two-body impact scene: a light resting body
// struck by a heavy one at speed five.
func DefaultScene() *Scene {
	cfg := engine.DefaultConfig()
	return &Scene{
		Name: "impact",
		Bodies: []BodyConfig{
			{X: -2, Y: 1, Radius: 1, Mass: 1},
			{X: 2, Y: 0, VX: -5, Radius: 1, Mass: 2},
		},
		Gravity:  GravityConfig{Enabled: cfg.Gravity, G: cfg.G},
		Stepping: StepConfig{Nominal: cfg.Nominal, Floor: cfg.Floor},
	}
}

// Load reads a scene file, filling unset fields from DefaultScene.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc := DefaultScene()
	if err := yaml.Unmarshal(data, sc); err != nil {
		return nil, fmt.Errorf("parse scene %s: %w", path, err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

// Save writes the scene as yaml.
func Save(path string, sc *Scene) error {
	data, err := yaml.Marshal(sc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the invariants the engine itself does not: at least one
// body, positive radius and mass, a usable stepping window.
func (s *Scene) Validate() error {
	if len(s.Bodies) == 0 {
		return ErrNoBodies
	}
	for i, b := range s.Bodies {
		if b.Radius <= 0 || b.Mass <= 0 {
			return fmt.Errorf("body %d: %w", i, ErrBodyShape)
		}
	}
	st := s.Stepping
	if st.Floor <= 0 || st.Nominal <= st.Floor {
		return ErrStepping
	}
	return nil
}

// EngineBodies builds a fresh body slice for the engine.
func (s *Scene) EngineBodies() []engine.Body {
	bodies := make([]engine.Body, len(s.Bodies))
	for i, b := range s.Bodies {
		bodies[i] = engine.Body{
			Pos:    engine.Vec2{X: b.X, Y: b.Y},
			Vel:    engine.Vec2{X: b.VX, Y: b.VY},
			Radius: b.Radius,
			Mass:   b.Mass,
		}
	}
	return bodies
}

// EngineConfig maps the scene onto engine parameters.
func (s *Scene) EngineConfig() engine.Config {
	return engine.Config{
		Gravity: s.Gravity.Enabled,
		G:       s.Gravity.G,
		Nominal: s.Stepping.Nominal,
		Floor:   s.Stepping.Floor,
	}
}

// Session builds a ready-to-advance session from the scene.
func (s *Scene) Session() *engine.Session {
	return engine.NewSession(s.EngineBodies(), s.EngineConfig())
}
