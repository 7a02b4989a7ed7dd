package scene

import "sort"

// Presets are the built-in scenes, keyed by name. Each returns through
// GetPreset as an independent copy safe to mutate.
var Presets = map[string]*Scene{
	"impact": DefaultScene(),
	"triangle": {
		Name: "triangle",
		Bodies: []BodyConfig{
			{X: 0, Y: 3, VY: -2, Radius: 0.5, Mass: 1},
			{X: -2.6, Y: -1.5, VX: 1.73, VY: 1, Radius: 0.5, Mass: 1},
			{X: 2.6, Y: -1.5, VX: -1.73, VY: 1, Radius: 0.5, Mass: 1},
		},
		Gravity:  GravityConfig{G: 1},
		Stepping: StepConfig{Nominal: 1.0 / 60.0, Floor: 1.0 / 3000.0},
	},
	"orbit": {
		Name: "orbit",
		Bodies: []BodyConfig{
			{X: 0, Y: 0, Radius: 1, Mass: 100},
			{X: 8, Y: 0, VY: 3.5355339, Radius: 0.3, Mass: 0.1},
		},
		Gravity:  GravityConfig{Enabled: true, G: 1},
		Stepping: StepConfig{Nominal: 1.0 / 60.0, Floor: 1.0 / 3000.0},
	},
	"crossfire": {
		Name: "crossfire",
		Bodies: []BodyConfig{
			{X: -6, Y: 0.3, VX: 3, Radius: 0.6, Mass: 1},
			{X: 6, Y: -0.3, VX: -3, Radius: 0.6, Mass: 1},
			{X: 0.3, Y: 6, VY: -3, Radius: 0.6, Mass: 1},
			{X: -0.3, Y: -6, VY: 3, Radius: 0.6, Mass: 1},
		},
		Gravity:  GravityConfig{G: 1},
		Stepping: StepConfig{Nominal: 1.0 / 60.0, Floor: 1.0 / 3000.0},
	},
	"billiards": {
		Name: "billiards",
		Bodies: []BodyConfig{
			{X: -6, Y: 0, VX: 12, Radius: 0.5, Mass: 1},
			{X: 0, Y: 0, Radius: 0.5, Mass: 1},
			{X: 0.87, Y: 0.5, Radius: 0.5, Mass: 1},
			{X: 0.87, Y: -0.5, Radius: 0.5, Mass: 1},
			{X: 1.74, Y: 1, Radius: 0.5, Mass: 1},
			{X: 1.74, Y: 0, Radius: 0.5, Mass: 1},
			{X: 1.74, Y: -1, Radius: 0.5, Mass: 1},
		},
		Gravity:  GravityConfig{G: 1},
		Stepping: StepConfig{Nominal: 1.0 / 60.0, Floor: 1.0 / 6000.0},
	},
}

// GetPreset returns a copy of the named preset, or nil if it does not
// exist.
func GetPreset(name string) *Scene {
	src, ok := Presets[name]
	if !ok {
		return nil
	}
	sc := *src
	sc.Bodies = make([]BodyConfig, len(src.Bodies))
	copy(sc.Bodies, src.Bodies)
	return &sc
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
