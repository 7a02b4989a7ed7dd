// Package storage persists recorded runs for later plotting and analysis.
//
// A run lives in its own directory under the store root: metadata.json
// describes the scene and metric summary, states.csv holds the per-frame
// body states.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/colsim/internal/runner"
	"github.com/san-kum/colsim/internal/scene"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata is the summary written next to the state series.
type RunMetadata struct {
	ID          string             `json:"id"`
	Scene       string             `json:"scene"`
	Timestamp   time.Time          `json:"timestamp"`
	Frames      int                `json:"frames"`
	Nominal     float64            `json:"nominal"`
	Floor       float64            `json:"floor"`
	Gravity     bool               `json:"gravity"`
	G           float64            `json:"g"`
	Radii       []float64          `json:"radii"`
	Masses      []float64          `json:"masses"`
	SubSteps    uint64             `json:"sub_steps"`
	EnergyDrift float64            `json:"energy_drift"`
	Metrics     map[string]float64 `json:"metrics"`
}

// RunData is the parsed state series of a stored run. Each state row
// holds four values per body: x, y, vx, vy.
type RunData struct {
	Times  []float64
	Steps  []uint64
	States [][]float64
}

func (d *RunData) BodyCount() int {
	if len(d.States) == 0 {
		return 0
	}
	return len(d.States[0]) / 4
}

// BodySeries extracts one body's coordinate series from the run.
func (d *RunData) BodySeries(body int) (xs, ys, vxs, vys []float64, err error) {
	n := d.BodyCount()
	if body < 0 || body >= n {
		return nil, nil, nil, nil, fmt.Errorf("storage: body %d out of range, run has %d", body, n)
	}
	xs = make([]float64, len(d.States))
	ys = make([]float64, len(d.States))
	vxs = make([]float64, len(d.States))
	vys = make([]float64, len(d.States))
	for i, row := range d.States {
		xs[i] = row[body*4]
		ys[i] = row[body*4+1]
		vxs[i] = row[body*4+2]
		vys[i] = row[body*4+3]
	}
	return xs, ys, vxs, vys, nil
}

// SaveRun writes the result of a run under a fresh scene_unixtime id and
// returns the id.
func (s *Store) SaveRun(sc *scene.Scene, result *runner.Result) (string, error) {
	name := sc.Name
	if name == "" {
		name = "scene"
	}
	runID := fmt.Sprintf("%s_%d", name, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Scene:       name,
		Timestamp:   time.Now(),
		Frames:      len(result.Frames),
		Nominal:     sc.Stepping.Nominal,
		Floor:       sc.Stepping.Floor,
		Gravity:     sc.Gravity.Enabled,
		G:           sc.Gravity.G,
		SubSteps:    result.SubSteps,
		EnergyDrift: result.EnergyDrift,
		Metrics:     result.Metrics,
	}
	for _, b := range sc.Bodies {
		meta.Radii = append(meta.Radii, b.Radius)
		meta.Masses = append(meta.Masses, b.Mass)
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "states.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(result.Frames) == 0 {
		return runID, nil
	}

	header := []string{"time", "steps"}
	for i := range result.Frames[0].Bodies {
		header = append(header,
			fmt.Sprintf("x%d", i), fmt.Sprintf("y%d", i),
			fmt.Sprintf("vx%d", i), fmt.Sprintf("vy%d", i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, f := range result.Frames {
		row := []string{
			strconv.FormatFloat(f.Time, 'f', 6, 64),
			strconv.FormatUint(f.Steps, 10),
		}
		for _, b := range f.Bodies {
			row = append(row,
				strconv.FormatFloat(b.Pos.X, 'f', 6, 64),
				strconv.FormatFloat(b.Pos.Y, 'f', 6, 64),
				strconv.FormatFloat(b.Vel.X, 'f', 6, 64),
				strconv.FormatFloat(b.Vel.Y, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// List returns metadata for every readable run, in directory order.
// Unreadable or foreign directories are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) LoadMeta(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadStates(runID string) (*RunData, error) {
	csvPath := filepath.Join(s.baseDir, runID, "states.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	data := &RunData{}
	if len(records) < 2 {
		return data, nil
	}

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 2 {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		steps, err := strconv.ParseUint(record[1], 10, 64)
		if err != nil {
			continue
		}

		state := make([]float64, 0, len(record)-2)
		for j := 2; j < len(record); j++ {
			val, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				continue
			}
			state = append(state, val)
		}

		data.Times = append(data.Times, t)
		data.Steps = append(data.Steps, steps)
		data.States = append(data.States, state)
	}

	return data, nil
}
