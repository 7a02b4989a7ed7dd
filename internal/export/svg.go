// Package export renders stored runs as standalone SVG documents.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/colsim/internal/storage"
	"github.com/san-kum/colsim/internal/viz"
)

const background = "#0a0a0a"

// strokes is the per-body color cycle.
var strokes = []string{"#00ff88", "#00ccff", "#ff00ff", "#ffcc00", "#ff4444", "#88ddff"}

func openSVG(sb *strings.Builder, width, height float64) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)
}

// RunToSVG renders every body of a stored run: one polyline per body, a
// dot at the start and a circle at the final position drawn to the body's
// world radius. Bodies share one uniform scale so circles stay round.
func RunToSVG(meta *storage.RunMetadata, data *storage.RunData, width, height int) string {
	n := data.BodyCount()
	if n == 0 || len(data.States) < 2 {
		return ""
	}

	radius := func(body int) float64 {
		if body < len(meta.Radii) {
			return meta.Radii[body]
		}
		return 0
	}

	first := data.States[0]
	minX, maxX := first[0], first[0]
	minY, maxY := first[1], first[1]
	for _, row := range data.States {
		for b := 0; b < n; b++ {
			r := radius(b)
			x, y := row[b*4], row[b*4+1]
			if x-r < minX {
				minX = x - r
			}
			if x+r > maxX {
				maxX = x + r
			}
			if y-r < minY {
				minY = y - r
			}
			if y+r > maxY {
				maxY = y + r
			}
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.05
	minY -= rangeY * 0.05
	rangeX *= 1.1
	rangeY *= 1.1

	scale := float64(width) / rangeX
	if s := float64(height) / rangeY; s < scale {
		scale = s
	}
	ox := (float64(width) - rangeX*scale) / 2
	oy := (float64(height) - rangeY*scale) / 2
	toScreen := func(x, y float64) (float64, float64) {
		return ox + (x-minX)*scale, float64(height) - oy - (y-minY)*scale
	}

	var sb strings.Builder
	openSVG(&sb, float64(width), float64(height))

	for b := 0; b < n; b++ {
		stroke := strokes[b%len(strokes)]
		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, stroke)
		for i, row := range data.States {
			x, y := toScreen(row[b*4], row[b*4+1])
			if i == 0 {
				fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
			}
		}
		sb.WriteString("\"/>\n")

		sx, sy := toScreen(first[b*4], first[b*4+1])
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="2.5" fill="%s"/>`+"\n", sx, sy, stroke)

		last := data.States[len(data.States)-1]
		ex, ey := toScreen(last[b*4], last[b*4+1])
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="%s" stroke-width="1.5"/>`+"\n",
			ex, ey, radius(b)*scale, stroke)
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// PolylineToSVG renders a single point series, such as a phase portrait,
// as one stroked path.
func PolylineToSVG(points []struct{ X, Y float64 }, width, height int, stroke string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder
	openSVG(&sb, float64(width), float64(height))
	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, stroke)
	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}
	sb.WriteString("\"/>\n</svg>")
	return sb.String()
}

// CanvasToSVG converts a Braille canvas to SVG, one circle per lit dot.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder
	openSVG(&sb, width, height)
	sb.WriteString(`<g fill="#00ff00">` + "\n")

	// Braille dot-to-bit mapping
	pixelMap := [4][2]int{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}

	dotRadius := scale * 0.4

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r < 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f"/>`+"\n", cx, cy, dotRadius)
					}
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
