package storage

import (
	"encoding/json"
	"io"
	"os"
)

// ExportData is the JSON shape of a re-exported run.
type ExportData struct {
	ID          string             `json:"id"`
	Scene       string             `json:"scene"`
	Frames      int                `json:"frames"`
	Nominal     float64            `json:"nominal"`
	Floor       float64            `json:"floor"`
	Gravity     bool               `json:"gravity"`
	G           float64            `json:"g"`
	Radii       []float64          `json:"radii"`
	Masses      []float64          `json:"masses"`
	SubSteps    uint64             `json:"sub_steps"`
	EnergyDrift float64            `json:"energy_drift"`
	Times       []float64          `json:"times"`
	Steps       []uint64           `json:"steps"`
	States      [][]float64        `json:"states"`
	Metrics     map[string]float64 `json:"metrics"`
}

func buildExport(meta *RunMetadata, data *RunData) ExportData {
	return ExportData{
		ID:          meta.ID,
		Scene:       meta.Scene,
		Frames:      meta.Frames,
		Nominal:     meta.Nominal,
		Floor:       meta.Floor,
		Gravity:     meta.Gravity,
		G:           meta.G,
		Radii:       meta.Radii,
		Masses:      meta.Masses,
		SubSteps:    meta.SubSteps,
		EnergyDrift: meta.EnergyDrift,
		Times:       data.Times,
		Steps:       data.Steps,
		States:      data.States,
		Metrics:     meta.Metrics,
	}
}

func writeExport(w io.Writer, meta *RunMetadata, data *RunData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(buildExport(meta, data))
}

// ExportJSON writes a stored run to path as indented JSON.
func ExportJSON(path string, meta *RunMetadata, data *RunData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return writeExport(file, meta, data)
}

// ExportJSONStdout writes a stored run to standard output.
func ExportJSONStdout(meta *RunMetadata, data *RunData) error {
	return writeExport(os.Stdout, meta, data)
}
