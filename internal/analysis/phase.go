package analysis

import (
	"github.com/san-kum/colsim/internal/engine"
)

// PhasePortrait holds one body's position-velocity trajectory, the x
// coordinate against the x velocity.
type PhasePortrait struct {
	Body   int
	Points []struct{ X, Y float64 }
}

// GeneratePhasePortrait advances the session one nominal frame at a time
// and records the body's phase point each frame. Returns nil for an
// out-of-range body.
func GeneratePhasePortrait(sess *engine.Session, body, frames int) *PhasePortrait {
	if body < 0 || body >= len(sess.Bodies) {
		return nil
	}

	portrait := &PhasePortrait{
		Body:   body,
		Points: make([]struct{ X, Y float64 }, 0, frames),
	}

	for i := 0; i < frames; i++ {
		sess.Advance(sess.Nominal())
		b := sess.Bodies[body]
		portrait.Points = append(portrait.Points, struct{ X, Y float64 }{
			X: b.Pos.X,
			Y: b.Vel.X,
		})
	}

	return portrait
}

// PortraitFromSeries builds a portrait from recorded position and
// velocity columns of a stored run.
func PortraitFromSeries(xs, vxs []float64, body int) *PhasePortrait {
	n := len(xs)
	if len(vxs) < n {
		n = len(vxs)
	}

	portrait := &PhasePortrait{
		Body:   body,
		Points: make([]struct{ X, Y float64 }, 0, n),
	}
	for i := 0; i < n; i++ {
		portrait.Points = append(portrait.Points, struct{ X, Y float64 }{X: xs[i], Y: vxs[i]})
	}
	return portrait
}

// Bounds returns the extent of the portrait, for plot scaling.
func (p *PhasePortrait) Bounds() (minX, maxX, minY, maxY float64) {
	if len(p.Points) == 0 {
		return 0, 0, 0, 0
	}
	minX, maxX = p.Points[0].X, p.Points[0].X
	minY, maxY = p.Points[0].Y, p.Points[0].Y
	for _, pt := range p.Points {
		if pt.X < minX {
			minX = pt.X
		}
		if pt.X > maxX {
			maxX = pt.X
		}
		if pt.Y < minY {
			minY = pt.Y
		}
		if pt.Y > maxY {
			maxY = pt.Y
		}
	}
	return
}
