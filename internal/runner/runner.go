// Package runner drives recorded simulation runs over scenes.
package runner

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/colsim/internal/engine"
	"github.com/san-kum/colsim/internal/metrics"
	"github.com/san-kum/colsim/internal/scene"
)

// Frame is one recorded snapshot of a run.
type Frame struct {
	Time   float64
	Steps  uint64
	Bodies []engine.Body
}

// Result collects everything a finished run produced.
type Result struct {
	Frames      []Frame
	Metrics     map[string]float64
	EnergyDrift float64
	SubSteps    uint64
}

// Runner advances a session one display frame at a time, snapshotting
// state and feeding the metric set.
type Runner struct {
	sc      *scene.Scene
	sess    *engine.Session
	metrics []metrics.Metric
}

func New(sc *scene.Scene) (*Runner, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &Runner{
		sc:      sc,
		sess:    sc.Session(),
		metrics: metrics.Standard(sc.Gravity.Enabled, sc.Gravity.G),
	}, nil
}

func (r *Runner) AddMetric(m metrics.Metric) { r.metrics = append(r.metrics, m) }

// Session exposes the underlying session, for hosts that mix recorded
// and interactive stepping.
func (r *Runner) Session() *engine.Session { return r.sess }

// Run advances the session for the given number of display frames, one
// nominal interval each, and returns the recorded result. The initial
// state is recorded as frame zero. On cancellation or divergence the
// partial result is returned alongside the error.
func (r *Runner) Run(ctx context.Context, frames int) (*Result, error) {
	if frames <= 0 {
		return nil, fmt.Errorf("frames must be positive, got %d", frames)
	}

	result := &Result{
		Frames:  make([]Frame, 0, frames+1),
		Metrics: make(map[string]float64),
	}
	for _, m := range r.metrics {
		m.Reset()
	}

	record := func() {
		result.Frames = append(result.Frames, Frame{
			Time:   r.sess.Time,
			Steps:  r.sess.Steps,
			Bodies: engine.CloneBodies(r.sess.Bodies),
		})
		for _, m := range r.metrics {
			m.Observe(r.sess.Bodies, r.sess.Time)
		}
	}

	initialEnergy := r.sess.Energy()
	record()

	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			return result, fmt.Errorf("run canceled at frame %d: %w", i, ctx.Err())
		default:
		}

		r.sess.Advance(r.sess.Nominal())

		if !engine.Finite(r.sess.Bodies) {
			return result, &FrameError{Frame: i, Time: r.sess.Time, Wrapped: ErrDiverged}
		}

		record()
	}

	finalEnergy := r.sess.Energy()
	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}
	result.SubSteps = r.sess.Steps
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// Roundtrip advances a fresh session forward for the given frames, flips
// the direction of time, advances the same span again, and reports the
// worst position and velocity deviation from the starting state.
func Roundtrip(ctx context.Context, sc *scene.Scene, frames int) (posErr, velErr float64, err error) {
	if err := sc.Validate(); err != nil {
		return 0, 0, err
	}

	sess := sc.Session()
	start := engine.CloneBodies(sess.Bodies)

	for leg := 0; leg < 2; leg++ {
		for i := 0; i < frames; i++ {
			select {
			case <-ctx.Done():
				return 0, 0, ctx.Err()
			default:
			}
			sess.Advance(sess.Nominal())
			if !engine.Finite(sess.Bodies) {
				return 0, 0, &FrameError{Frame: i, Time: sess.Time, Wrapped: ErrDiverged}
			}
		}
		sess.Reverse()
	}

	for i := range start {
		posErr = math.Max(posErr, sess.Bodies[i].Pos.Distance(start[i].Pos))
		velErr = math.Max(velErr, sess.Bodies[i].Vel.Distance(start[i].Vel))
	}
	return posErr, velErr, nil
}
