package runner

import (
	"errors"
	"fmt"
)

// ErrDiverged indicates a non-finite body state, usually the result of a
// coincident-center resolution.
var ErrDiverged = errors.New("runner: non-finite body state")

// FrameError wraps an error with the frame it occurred in.
type FrameError struct {
	Frame   int
	Time    float64
	Wrapped error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %d (t=%.4f): %v", e.Frame, e.Time, e.Wrapped)
}

func (e *FrameError) Unwrap() error {
	return e.Wrapped
}
