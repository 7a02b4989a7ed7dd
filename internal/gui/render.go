package gui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	rl.BeginMode2D(a.Camera)
	a.drawGrid()
	a.drawWorld()
	rl.EndMode2D()

	a.DrawHUD()

	rl.EndDrawing()
}

// drawGrid covers the visible world rect with unit lines, axes slightly
// brighter.
func (a *App) drawGrid() {
	tl := rl.GetScreenToWorld2D(rl.NewVector2(0, 0), a.Camera)
	br := rl.GetScreenToWorld2D(rl.NewVector2(screenW, screenH), a.Camera)

	step := float32(1.0)
	for a.Camera.Zoom*step < 12 {
		step *= 5
	}

	for x := float32(math.Floor(float64(tl.X/step))) * step; x <= br.X; x += step {
		col := ColGrid
		if x == 0 {
			col = ColTextDim
		}
		rl.DrawLineV(rl.NewVector2(x, tl.Y), rl.NewVector2(x, br.Y), col)
	}
	for y := float32(math.Floor(float64(tl.Y/step))) * step; y <= br.Y; y += step {
		col := ColGrid
		if y == 0 {
			col = ColTextDim
		}
		rl.DrawLineV(rl.NewVector2(tl.X, y), rl.NewVector2(br.X, y), col)
	}
}

func (a *App) drawWorld() {
	// Trails fade toward the tail
	for i, trail := range a.Trails {
		col := bodyColors[i%len(bodyColors)]
		for j := 1; j < len(trail); j++ {
			alpha := float32(j) / float32(len(trail))
			rl.DrawLineV(toView(trail[j-1]), toView(trail[j]), rl.ColorAlpha(col, alpha*0.5))
		}
	}

	for i := range a.Sess.Bodies {
		b := &a.Sess.Bodies[i]
		col := bodyColors[i%len(bodyColors)]
		center := toView(b.Pos)
		r := float32(b.Radius)

		rl.DrawCircleV(center, r, rl.ColorAlpha(col, 0.35))
		if f := a.Flash[i]; f > 0.05 {
			rl.DrawCircleV(center, r, rl.ColorAlpha(rl.White, float32(f)*0.6))
		}
		rl.DrawRing(center, r*0.94, r, 0, 360, 48, col)

		// Velocity vector
		tip := toView(b.Pos.Add(b.Vel.Scale(0.2)))
		rl.DrawLineV(center, tip, ColAccent)
	}

	if a.CursorActive {
		center := toView(a.CursorWorld)
		rl.DrawRing(center, 0.45, 0.5, 0, 360, 32, rl.ColorAlpha(ColSelect, 0.4))
		rl.DrawRing(center, 1.15, 1.2, 0, 360, 32, rl.ColorAlpha(ColSelect, 0.2))
	}
}

func (a *App) DrawHUD() {
	a.drawText("colsim", 30, 30, 24, ColSelect)
	a.drawText(fmt.Sprintf(":: %s", a.Scene.Name), 140, 34, 16, ColText)

	a.DrawTelemetry()

	status := "RUNNING"
	col := ColSelect
	if a.Diverged {
		status = "DIVERGED"
		col = rl.Red
	} else if !a.Running {
		status = "PAUSED"
		col = ColTextDim
	}
	a.drawText(status, 1150, 30, 16, col)
	if a.Sess.Direction < 0 {
		a.drawText("<< REVERSE", 1040, 30, 16, ColAccent)
	}

	a.drawText(fmt.Sprintf("T %.2fs", a.Sess.Time), 30, 70, 16, ColText)
	a.drawText(fmt.Sprintf("STEPS %d (%d/frame)", a.Sess.Steps, a.FrameSteps), 30, 94, 16, ColText)
	a.drawText(fmt.Sprintf("E %.3f", a.Sess.Energy()), 30, 118, 16, ColText)
	gravity := "GRAVITY off"
	if a.Sess.Stepper.Gravity {
		gravity = fmt.Sprintf("GRAVITY G=%.2f", a.Sess.Stepper.G)
	}
	a.drawText(gravity, 30, 142, 16, ColText)

	a.drawText("[SPACE] PAUSE  [T] REVERSE  [R] RESET  [G] GRAVITY  [LMB] PULL  [RMB] PUSH  [Q] QUIT", 540, 680, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 30, 680, 14, ColTextDim)

	// Sound Level
	if a.Audio != nil && a.Audio.Active {
		sum := (a.Audio.Bass + a.Audio.Mid + a.Audio.High) / 3.0
		bars := int(sum * 20)
		if bars > 20 {
			bars = 20
		}
		barStr := ""
		for i := 0; i < bars; i++ {
			barStr += "|"
		}
		a.drawText(fmt.Sprintf("SND [%-20s]", barStr), 30, 650, 14, ColAccent)
	}
}

func (a *App) DrawTelemetry() {
	if len(a.Telemetry) < 2 {
		return
	}

	rectX, rectY := 30, 560
	width, height := 400, 60

	minVal, maxVal := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := float32(rectX) + (float32(i)/float32(len(a.Telemetry)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	a.drawText(fmt.Sprintf("E: %.2e", a.Telemetry[len(a.Telemetry)-1]), rectX+width+10, rectY+height-10, 14, ColText)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}
