package gui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/colsim/internal/audio"
	"github.com/san-kum/colsim/internal/engine"
	"github.com/san-kum/colsim/internal/scene"
)

// Theme Colors (Monochrome Hyper-Minimalist)
var (
	ColBg      = rl.NewColor(10, 10, 10, 255)    // Deep Black
	ColAccent  = rl.NewColor(180, 180, 180, 255) // Soft White
	ColSelect  = rl.NewColor(255, 255, 255, 255) // Bright White
	ColText    = rl.NewColor(140, 140, 140, 255) // Neutral Gray
	ColTextDim = rl.NewColor(60, 60, 60, 255)    // Dark Gray (Subtle)
	ColGrid    = rl.NewColor(30, 30, 30, 255)    // Barely visible grid
)

// bodyColors cycles per body index.
var bodyColors = []rl.Color{
	rl.NewColor(0, 255, 136, 255),
	rl.NewColor(0, 204, 255, 255),
	rl.NewColor(255, 0, 255, 255),
	rl.NewColor(255, 204, 0, 255),
	rl.NewColor(255, 68, 68, 255),
	rl.NewColor(136, 221, 255, 255),
}

const (
	screenW      = 1280
	screenH      = 720
	maxTrail     = 50
	telemetryCap = 200
	pullStrength = 50.0
)

type App struct {
	Scene *scene.Scene
	Sess  *engine.Session

	Camera     rl.Camera2D
	ZoomTarget float32

	Running    bool
	Diverged   bool
	ShouldQuit bool

	Trails     [][]engine.Vec2
	Flash      []float64 // per-body impact glow, decays every frame
	Telemetry  []float64 // Ring buffer for the energy graph
	FrameSteps int

	CursorWorld  engine.Vec2
	CursorActive bool

	prevVel []engine.Vec2

	Font  rl.Font
	Audio *audio.Processor
}

// initWindow opens the 1280x720 window at 60 FPS with the default exit
// key disabled.
func initWindow() {
	rl.InitWindow(screenW, screenH, "colsim")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// fitZoom picks pixels-per-unit so every body, with travel slack, is on
// screen.
func fitZoom(bodies []engine.Body) float32 {
	extent := 1.0
	for i := range bodies {
		b := &bodies[i]
		if e := math.Abs(b.Pos.X) + b.Radius; e > extent {
			extent = e
		}
		if e := math.Abs(b.Pos.Y) + b.Radius; e > extent {
			extent = e
		}
	}
	zoom := (float64(screenH)/2 - 60) / (extent * 1.5)
	if zoom < 2 {
		zoom = 2
	}
	return float32(zoom)
}

// NewApp builds the GUI state for a validated scene. withAudio starts the
// sonification stream; failure to open a device leaves the app silent.
func NewApp(sc *scene.Scene, withAudio bool) *App {
	sess := sc.Session()
	app := &App{
		Scene:     sc,
		Sess:      sess,
		Running:   true,
		Trails:    make([][]engine.Vec2, len(sess.Bodies)),
		Flash:     make([]float64, len(sess.Bodies)),
		Telemetry: make([]float64, 0, telemetryCap),
		prevVel:   make([]engine.Vec2, len(sess.Bodies)),
		Font:      loadFont(),
	}
	zoom := fitZoom(sess.Bodies)
	app.ZoomTarget = zoom
	app.Camera = rl.Camera2D{
		Offset: rl.NewVector2(screenW/2, screenH/2),
		Target: rl.NewVector2(0, 0),
		Zoom:   zoom,
	}

	if withAudio {
		proc := audio.NewProcessor()
		if err := proc.Start(); err != nil {
			fmt.Printf("audio disabled: %v\n", err)
		} else {
			app.Audio = proc
		}
	}
	return app
}

// Run opens the window and blocks until it closes.
func Run(sc *scene.Scene, withAudio bool) {
	initWindow()
	defer rl.CloseWindow()
	app := NewApp(sc, withAudio)
	if app.Audio != nil {
		defer app.Audio.Stop()
	}
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() && !a.ShouldQuit {
		a.Update()
		a.Draw()
	}
}

// toView maps a world point into raylib's y-down camera space.
func toView(p engine.Vec2) rl.Vector2 {
	return rl.NewVector2(float32(p.X), float32(-p.Y))
}

// mouseWorld returns the cursor position in world coordinates.
func (a *App) mouseWorld() engine.Vec2 {
	v := rl.GetScreenToWorld2D(rl.GetMousePosition(), a.Camera)
	return engine.Vec2{X: float64(v.X), Y: float64(-v.Y)}
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyQ) {
		a.ShouldQuit = true
		return
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyT) {
		a.Sess.Reverse()
	}
	if rl.IsKeyPressed(rl.KeyG) {
		a.Sess.Stepper.Gravity = !a.Sess.Stepper.Gravity
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.reset()
	}

	// Pan
	pan := 8.0 / a.Camera.Zoom
	if rl.IsKeyDown(rl.KeyW) {
		a.Camera.Target.Y -= pan
	}
	if rl.IsKeyDown(rl.KeyS) {
		a.Camera.Target.Y += pan
	}
	if rl.IsKeyDown(rl.KeyA) {
		a.Camera.Target.X -= pan
	}
	if rl.IsKeyDown(rl.KeyD) {
		a.Camera.Target.X += pan
	}

	// Zoom with inertia
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.ZoomTarget *= 1 + wheel*0.1
		if a.ZoomTarget < 2 {
			a.ZoomTarget = 2
		}
		if a.ZoomTarget > 400 {
			a.ZoomTarget = 400
		}
	}
	a.Camera.Zoom += (a.ZoomTarget - a.Camera.Zoom) * 0.15

	// Hand of God: pull with the left button, push with the right
	cursor := a.mouseWorld()
	strength := 0.0
	if rl.IsMouseButtonDown(rl.MouseLeftButton) {
		strength = pullStrength
	} else if rl.IsMouseButtonDown(rl.MouseRightButton) {
		strength = -pullStrength
	}
	a.CursorWorld = cursor
	a.CursorActive = strength != 0
	if a.CursorActive && a.Running && !a.Diverged {
		a.applyNudge(cursor, strength)
	}

	if a.Running && !a.Diverged {
		a.step()
	}

	if a.Audio != nil {
		a.Audio.UpdatePhysics(a.Sess.Energy())
	}
}

// applyNudge accelerates every body toward (or away from) the cursor for
// one frame, falling off with squared distance.
func (a *App) applyNudge(cursor engine.Vec2, strength float64) {
	dt := a.Sess.Nominal()
	for i := range a.Sess.Bodies {
		b := &a.Sess.Bodies[i]
		d := cursor.Sub(b.Pos)
		r2 := d.LengthSq()
		if r2 < 0.25 {
			r2 = 0.25
		}
		accel := strength / r2
		b.Vel = b.Vel.Add(d.Scale(accel * dt / math.Sqrt(r2)))
	}
}

// step advances one display frame and fires audio pulses for any
// collision seen as a velocity discontinuity.
func (a *App) step() {
	for i := range a.Sess.Bodies {
		a.prevVel[i] = a.Sess.Bodies[i].Vel
	}

	a.FrameSteps = a.Sess.Advance(a.Sess.Nominal())

	if !engine.Finite(a.Sess.Bodies) {
		a.Diverged = true
		a.Running = false
		return
	}

	impulse := 0.0
	for i := range a.Sess.Bodies {
		a.Flash[i] *= 0.88
		dv := a.Sess.Bodies[i].Vel.Sub(a.prevVel[i]).Length()
		if dv > 0.5 {
			a.Flash[i] = 1
		}
		if dv > impulse {
			impulse = dv
		}
	}
	if a.Audio != nil && impulse > 0.5 {
		a.Audio.Pulse(impulse)
	}

	a.Telemetry = append(a.Telemetry, a.Sess.Energy())
	if len(a.Telemetry) > telemetryCap {
		a.Telemetry = a.Telemetry[1:]
	}

	for i := range a.Sess.Bodies {
		a.Trails[i] = append(a.Trails[i], a.Sess.Bodies[i].Pos)
		if len(a.Trails[i]) > maxTrail {
			a.Trails[i] = a.Trails[i][1:]
		}
	}
}

func (a *App) reset() {
	a.Sess.Reset()
	a.Diverged = false
	a.Running = true
	a.Telemetry = a.Telemetry[:0]
	for i := range a.Trails {
		a.Trails[i] = a.Trails[i][:0]
		a.Flash[i] = 0
	}
}
