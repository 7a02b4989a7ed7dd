package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/colsim/internal/engine"
	"github.com/san-kum/colsim/internal/scene"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
	trailCapacity   = 120
)

var (
	canvasStyle  = lipgloss.NewStyle().Padding(1, 2)
	statsStyle   = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	reverseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	divergeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	graphStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

// Model drives the terminal view of a running session: a braille canvas
// on the left, live numbers on the right.
type Model struct {
	sess          *engine.Session
	name          string
	width, height int
	canvas        *Canvas
	scale         float64
	running       bool
	diverged      bool
	showHelp      bool
	trails        [][]struct{ x, y int }
	energyHistory []float64
	frameSteps    int
}

// NewModel builds the live view for a validated scene.
func NewModel(sc *scene.Scene) Model {
	sess := sc.Session()
	m := Model{
		sess:          sess,
		name:          sc.Name,
		width:         width,
		height:        height,
		canvas:        NewCanvas(width, height),
		running:       true,
		trails:        make([][]struct{ x, y int }, len(sess.Bodies)),
		energyHistory: make([]float64, 0, historyCapacity),
	}
	m.scale = fitScale(sess.Bodies, m.width*2, m.height*4)
	return m
}

// fitScale picks a sub-pixels-per-unit factor that keeps every body, with
// some slack for travel, inside the canvas.
func fitScale(bodies []engine.Body, cw, ch int) float64 {
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
	half := float64(ch)/2 - 4
	if w := float64(cw)/2 - 4; w < half {
		half = w
	}
	s := half / (extent * 1.5)
	if s < 1 {
		s = 1
	}
	return s
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "t":
			m.sess.Reverse()
		case "r":
			m.reset()
		case "g":
			m.sess.Stepper.Gravity = !m.sess.Stepper.Gravity
		case "+", "=":
			m.scale *= 1.25
		case "-", "_":
			m.scale /= 1.25
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running && !m.diverged {
			m.step()
		}
		m.draw()
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// step advances the session by one display frame.
func (m *Model) step() {
	m.frameSteps = m.sess.Advance(m.sess.Nominal())
	if !engine.Finite(m.sess.Bodies) {
		m.diverged = true
		m.running = false
		return
	}
	m.energyHistory = append(m.energyHistory, m.sess.Energy())
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

// reset restores the scene's starting bodies and clears the view state.
func (m *Model) reset() {
	m.sess.Reset()
	m.diverged = false
	m.energyHistory = m.energyHistory[:0]
	for i := range m.trails {
		m.trails[i] = m.trails[i][:0]
	}
}

// project maps world coordinates to canvas sub-pixels, y up.
func (m *Model) project(x, y float64) (int, int) {
	cw, ch := m.width*2, m.height*4
	sx := cw/2 + int(math.Round(x*m.scale))
	sy := ch/2 - int(math.Round(y*m.scale))
	return sx, sy
}

func (m *Model) draw() {
	m.canvas.Clear()
	for i := range m.sess.Bodies {
		b := &m.sess.Bodies[i]
		x, y := m.project(b.Pos.X, b.Pos.Y)
		m.trails[i] = append(m.trails[i], struct{ x, y int }{x, y})
		if len(m.trails[i]) > trailCapacity {
			m.trails[i] = m.trails[i][1:]
		}
		for _, pt := range m.trails[i] {
			m.canvas.Set(pt.x, pt.y)
		}
		m.canvas.DrawCircle(x, y, int(math.Round(b.Radius*m.scale)))
		m.canvas.Set(x, y)
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	status := "RUNNING"
	if m.diverged {
		status = divergeStyle.Render("DIVERGED (r to reset)")
	} else if !m.running {
		status = "PAUSED"
	}
	direction := "FORWARD"
	if m.sess.Direction < 0 {
		direction = reverseStyle.Render("REVERSE")
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.name)) + "\n")
	s.WriteString(fmt.Sprintf("%s\n\n", status))
	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.sess.Time)) + "\n")
	s.WriteString(labelStyle.Render("Direction") + direction + "\n")
	s.WriteString(labelStyle.Render("Sub-steps") + valueStyle.Render(fmt.Sprintf("%d (%d/frame)", m.sess.Steps, m.frameSteps)) + "\n")
	s.WriteString(labelStyle.Render("Carry") + valueStyle.Render(fmt.Sprintf("%.5fs", m.sess.Carry())) + "\n")
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.3f", m.sess.Energy())) + "\n")
	gravity := "off"
	if m.sess.Stepper.Gravity {
		gravity = fmt.Sprintf("on (G=%.2f)", m.sess.Stepper.G)
	}
	s.WriteString(labelStyle.Render("Gravity") + valueStyle.Render(gravity) + "\n")

	s.WriteString("\nBODIES\n")
	for i := range m.sess.Bodies {
		b := &m.sess.Bodies[i]
		line := fmt.Sprintf("%d  m=%-5.2g (%6.2f,%6.2f) |v|=%.2f", i, b.Mass, b.Pos.X, b.Pos.Y, b.Speed())
		s.WriteString("  " + valueStyle.Render(line) + "\n")
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause T:Reverse R:Reset\nG:Gravity +/-:Zoom Q:Quit ?:Help"))
	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume simulation  ║
║  T        - Reverse time direction   ║
║  R        - Reset simulation         ║
║  G        - Toggle gravity           ║
║  + / -    - Zoom in / out            ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}
