package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/colsim/internal/analysis"
	"github.com/san-kum/colsim/internal/audio"
	"github.com/san-kum/colsim/internal/engine"
	"github.com/san-kum/colsim/internal/export"
	"github.com/san-kum/colsim/internal/gui"
	"github.com/san-kum/colsim/internal/optim"
	"github.com/san-kum/colsim/internal/runner"
	"github.com/san-kum/colsim/internal/scene"
	"github.com/san-kum/colsim/internal/storage"
	"github.com/san-kum/colsim/internal/viz"
)

var (
	dataDir    string
	configFile string
	frames     int
	gravityOn  bool
	gravityG   float64
	nominal    float64
	floor      float64
	bodyIdx    int
	svgOut     string
	svgStyle   string
	svgWidth   int
	svgHeight  int
	withSound  bool
	duration   float64
	presetName string
	perturb    float64
)

// addSceneFlags attaches the flags shared by every command that builds a
// simulation from a preset or scene file.
func addSceneFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "scene file path (yaml)")
	cmd.Flags().BoolVar(&gravityOn, "gravity", false, "enable mutual gravity")
	cmd.Flags().Float64Var(&gravityG, "g", 1.0, "gravitational constant")
	cmd.Flags().Float64Var(&nominal, "nominal", 1.0/60, "nominal sub-step (s)")
	cmd.Flags().Float64Var(&floor, "floor", 1.0/3000, "sub-step floor (s)")
}

// resolveScene builds the scene for a command: optional preset argument,
// then --config replacing it, then individual flag overrides.
func resolveScene(cmd *cobra.Command, args []string) (*scene.Scene, error) {
	sc := scene.DefaultScene()
	if len(args) > 0 {
		p := scene.GetPreset(args[0])
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", args[0], scene.ListPresets())
		}
		sc = p
	}
	if configFile != "" {
		loaded, err := scene.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load scene: %w", err)
		}
		sc = loaded
	}
	if cmd.Flags().Changed("gravity") {
		sc.Gravity.Enabled = gravityOn
	}
	if cmd.Flags().Changed("g") {
		sc.Gravity.G = gravityG
	}
	if cmd.Flags().Changed("nominal") {
		sc.Stepping.Nominal = nominal
	}
	if cmd.Flags().Changed("floor") {
		sc.Stepping.Floor = floor
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "colsim",
		Short: "time-reversible collision simulation lab",
		Run: func(cmd *cobra.Command, args []string) {
			// Default to the GUI on the impact scene when no command given
			gui.Run(scene.DefaultScene(), false)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".colsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a scene and store the result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScene,
	}
	addSceneFlags(runCmd)
	runCmd.Flags().IntVar(&frames, "frames", 600, "display frames to simulate")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "run a scene with live terminal visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSceneFlags(liveCmd)

	guiCmd := &cobra.Command{
		Use:   "gui [preset]",
		Short: "run a scene in the graphical window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := resolveScene(cmd, args)
			if err != nil {
				return err
			}
			gui.Run(sc, withSound)
			return nil
		},
	}
	addSceneFlags(guiCmd)
	guiCmd.Flags().BoolVar(&withSound, "sound", false, "sonify collisions")

	soundCmd := &cobra.Command{
		Use:   "sound [preset]",
		Short: "sonify a scene without video",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSound,
	}
	addSceneFlags(soundCmd)
	soundCmd.Flags().Float64Var(&duration, "time", 30.0, "duration (s)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot stored run series",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase portrait of one body",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().IntVar(&bodyIdx, "body", 0, "body index")
	phaseCmd.Flags().StringVar(&svgOut, "svg", "", "write the portrait as SVG instead")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of one body",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&bodyIdx, "body", 0, "body index")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "render stored trajectories as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  renderSVG,
	}
	svgCmd.Flags().StringVar(&svgOut, "out", "", "output path (default <run_id>.svg)")
	svgCmd.Flags().StringVar(&svgStyle, "style", "lines", "lines or dots")
	svgCmd.Flags().IntVar(&svgWidth, "width", 960, "image width")
	svgCmd.Flags().IntVar(&svgHeight, "height", 720, "image height")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenes",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range scene.ListPresets() {
				p := scene.GetPreset(name)
				gravity := ""
				if p.Gravity.Enabled {
					gravity = "  gravity"
				}
				fmt.Printf("  %-10s %d bodies%s\n", name, len(p.Bodies), gravity)
			}
			return nil
		},
	}

	reverseCmd := &cobra.Command{
		Use:   "reverse [preset]",
		Short: "measure time-reversal error over a round trip",
		Args:  cobra.MaximumNArgs(1),
		RunE:  reverseCheck,
	}
	addSceneFlags(reverseCmd)
	reverseCmd.Flags().IntVar(&frames, "frames", 240, "frames per leg")

	chaosCmd := &cobra.Command{
		Use:   "chaos [preset]",
		Short: "estimate the largest Lyapunov exponent of a scene",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runChaos,
	}
	addSceneFlags(chaosCmd)
	chaosCmd.Flags().IntVar(&frames, "frames", 600, "frames to advance")
	chaosCmd.Flags().Float64Var(&perturb, "perturb", 1e-6, "initial position offset")

	tuneCmd := &cobra.Command{
		Use:   "tune [preset]",
		Short: "grid-search stepping parameters for round-trip accuracy",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTune,
	}
	addSceneFlags(tuneCmd)
	tuneCmd.Flags().Float64Var(&duration, "time", 4.0, "simulated seconds per leg")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark stepping across body counts and floors",
		RunE:  benchScenes,
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a starter scene file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "scene.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			sc := scene.DefaultScene()
			if presetName != "" {
				if p := scene.GetPreset(presetName); p != nil {
					sc = p
				} else {
					return fmt.Errorf("unknown preset: %s (available: %v)", presetName, scene.ListPresets())
				}
			}
			if err := scene.Save(path, sc); err != nil {
				return err
			}
			fmt.Printf("wrote %s (%s)\n", path, sc.Name)
			return nil
		},
	}
	initCmd.Flags().StringVar(&presetName, "preset", "", "preset to write")

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, soundCmd, listCmd, plotCmd, phaseCmd,
		analyzeCmd, exportCSVCmd, exportJSONCmd, svgCmd, presetsCmd, reverseCmd,
		chaosCmd, tuneCmd, benchCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runScene(cmd *cobra.Command, args []string) error {
	sc, err := resolveScene(cmd, args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	r, err := runner.New(sc)
	if err != nil {
		return err
	}

	fmt.Printf("running %s...\n", sc.Name)
	start := time.Now()

	result, err := r.Run(context.Background(), frames)
	if err != nil {
		if result == nil || len(result.Frames) == 0 {
			return err
		}
		fmt.Printf("run stopped early: %v\n", err)
	}

	elapsed := time.Since(start)

	runID, err := st.SaveRun(sc, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", len(result.Frames))
	fmt.Printf("sub-steps: %d\n", result.SubSteps)
	fmt.Printf("energy drift: %.3e\n", result.EnergyDrift)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	sc, err := resolveScene(cmd, args)
	if err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewModel(sc))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func runSound(cmd *cobra.Command, args []string) error {
	sc, err := resolveScene(cmd, args)
	if err != nil {
		return err
	}

	proc := audio.NewProcessor()
	if err := proc.Start(); err != nil {
		return err
	}
	defer proc.Stop()

	sess := sc.Session()
	prev := make([]engine.Vec2, len(sess.Bodies))

	fmt.Printf("sonifying %s for %.0fs\n", sc.Name, duration)

	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	total := int(duration * 60)
	for i := 0; i < total; i++ {
		<-ticker.C

		for j := range sess.Bodies {
			prev[j] = sess.Bodies[j].Vel
		}
		sess.Advance(sess.Nominal())
		if !engine.Finite(sess.Bodies) {
			return fmt.Errorf("simulation diverged at t=%.3f", sess.Time)
		}

		impulse := 0.0
		for j := range sess.Bodies {
			if dv := sess.Bodies[j].Vel.Sub(prev[j]).Length(); dv > impulse {
				impulse = dv
			}
		}
		if impulse > 0.5 {
			proc.Pulse(impulse)
		}
		proc.UpdatePhysics(sess.Energy())
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENE\tTIME\tFRAMES\tBODIES\tSUBSTEPS\tDRIFT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%.2e\n",
			run.ID,
			run.Scene,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			len(run.Radii),
			run.SubSteps,
			run.EnergyDrift,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.LoadMeta(runID)
	if err != nil {
		return err
	}
	data, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(data.States) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scene: %s\n", meta.Scene)
	fmt.Printf("samples: %d\n\n", len(data.States))

	bodies := data.BodyCount()
	maxBodies := 3
	if bodies > maxBodies {
		bodies = maxBodies
	}

	for b := 0; b < bodies; b++ {
		xs, _, vxs, vys, err := data.BodySeries(b)
		if err != nil {
			return err
		}

		graph := asciigraph.Plot(xs,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("body %d x position", b)),
		)
		fmt.Println(graph)
		fmt.Println()

		speeds := make([]float64, len(vxs))
		for i := range vxs {
			speeds[i] = math.Hypot(vxs[i], vys[i])
		}
		graph = asciigraph.Plot(speeds,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("body %d speed", b)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.LoadMeta(runID)
	if err != nil {
		return err
	}
	data, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	xs, _, vxs, _, err := data.BodySeries(bodyIdx)
	if err != nil {
		return err
	}
	portrait := analysis.PortraitFromSeries(xs, vxs, bodyIdx)
	if len(portrait.Points) == 0 {
		return fmt.Errorf("no data to plot")
	}

	if svgOut != "" {
		svg := export.PolylineToSVG(portrait.Points, 800, 600, "#00ccff")
		if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgOut)
		return nil
	}

	fmt.Printf("phase portrait: %s\n", meta.ID)
	fmt.Printf("body %d: x vs vx\n\n", bodyIdx)

	xMin, xMax, yMin, yMax := portrait.Bounds()
	xRange := xMax - xMin
	yRange := yMax - yMin
	if xRange == 0 {
		xRange = 1
	}
	if yRange == 0 {
		yRange = 1
	}

	width := 70
	height := 20
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	pts := portrait.Points
	for i, p := range pts {
		px := int(float64(width-1) * (p.X - xMin) / xRange)
		py := int(float64(height-1) * (p.Y - yMin) / yRange)
		py = height - 1 - py // Flip y-axis
		if px >= 0 && px < width && py >= 0 && py < height {
			if i < len(pts)/3 {
				canvas[py][px] = '.'
			} else if i < 2*len(pts)/3 {
				canvas[py][px] = 'o'
			} else {
				canvas[py][px] = '●'
			}
		}
	}

	fmt.Printf("  %.2f ┌", yMax)
	for i := 0; i < width; i++ {
		fmt.Print("─")
	}
	fmt.Println("┐")

	for i := range canvas {
		if i == height/2 {
			fmt.Printf("  %.2f │", (yMax+yMin)/2)
		} else {
			fmt.Print("       │")
		}
		fmt.Print(string(canvas[i]))
		fmt.Println("│")
	}

	fmt.Printf("  %.2f └", yMin)
	for i := 0; i < width; i++ {
		fmt.Print("─")
	}
	fmt.Println("┘")

	fmt.Printf("       %.2f", xMin)
	padding := width - 20
	for i := 0; i < padding; i++ {
		fmt.Print(" ")
	}
	fmt.Printf("%.2f\n", xMax)

	fmt.Printf("\nLegend: . = early, o = middle, ● = late\n")

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.LoadMeta(runID)
	if err != nil {
		return err
	}
	data, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	xs, _, _, _, err := data.BodySeries(bodyIdx)
	if err != nil {
		return err
	}

	rate := 60.0
	if meta.Nominal > 0 {
		rate = 1.0 / meta.Nominal
	}

	sp := analysis.PowerSpectrum(xs, rate)
	if len(sp.Power) == 0 {
		return fmt.Errorf("run too short for analysis, need at least 4 samples")
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("body %d x series, %d samples at %.1f Hz\n\n", bodyIdx, len(xs), rate)

	quarter := len(sp.Power) / 4
	if quarter < 2 {
		quarter = len(sp.Power)
	}
	graph := asciigraph.Plot(sp.Power[:quarter],
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum"),
	)
	fmt.Println(graph)
	fmt.Println()

	peaks := sp.Peaks(3)
	if len(peaks) == 0 {
		fmt.Println("no spectral peaks found")
		return nil
	}
	fmt.Println("peaks:")
	for _, pk := range peaks {
		fmt.Printf("  %.3f hz (power %.3g)\n", pk.Freq, pk.Power)
	}
	if peaks[0].Freq > 0 {
		fmt.Printf("dominant period: %.3f s\n", 1.0/peaks[0].Freq)
	}

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	data, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(data.States) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time", "steps"}
	for b := 0; b < data.BodyCount(); b++ {
		header = append(header,
			fmt.Sprintf("x%d", b), fmt.Sprintf("y%d", b),
			fmt.Sprintf("vx%d", b), fmt.Sprintf("vy%d", b))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, row := range data.States {
		record := []string{
			strconv.FormatFloat(data.Times[i], 'f', 6, 64),
			strconv.FormatUint(data.Steps[i], 10),
		}
		for _, val := range row {
			record = append(record, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.LoadMeta(runID)
	if err != nil {
		return err
	}
	data, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSONStdout(meta, data)
}

func renderSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.LoadMeta(runID)
	if err != nil {
		return err
	}
	data, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	var svg string
	switch svgStyle {
	case "lines":
		svg = export.RunToSVG(meta, data, svgWidth, svgHeight)
	case "dots":
		svg = dotTrajectories(meta, data)
	default:
		return fmt.Errorf("unknown style: %s (want lines or dots)", svgStyle)
	}
	if svg == "" {
		return fmt.Errorf("run has no trajectory to render")
	}

	out := svgOut
	if out == "" {
		out = runID + ".svg"
	}
	if err := os.WriteFile(out, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", out)
	return nil
}

// dotTrajectories rasterizes every body path onto a Braille canvas, with
// a filled disc at each final position, and exports the lit dots.
func dotTrajectories(meta *storage.RunMetadata, data *storage.RunData) string {
	if len(data.States) < 2 {
		return ""
	}

	c := viz.NewCanvas(120, 45)
	cw, ch := c.Width*2, c.Height*4

	n := data.BodyCount()
	minX, maxX := data.States[0][0], data.States[0][0]
	minY, maxY := data.States[0][1], data.States[0][1]
	for _, row := range data.States {
		for b := 0; b < n; b++ {
			x, y := row[b*4], row[b*4+1]
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
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

	toPixel := func(x, y float64) (int, int) {
		px := int((x-minX)/rangeX*float64(cw-5)) + 2
		py := ch - 3 - int((y-minY)/rangeY*float64(ch-5))
		return px, py
	}

	for b := 0; b < n; b++ {
		prevX, prevY := toPixel(data.States[0][b*4], data.States[0][b*4+1])
		for _, row := range data.States[1:] {
			px, py := toPixel(row[b*4], row[b*4+1])
			c.DrawLine(prevX, prevY, px, py)
			prevX, prevY = px, py
		}
	}

	last := data.States[len(data.States)-1]
	for b := 0; b < n; b++ {
		px, py := toPixel(last[b*4], last[b*4+1])
		r := 1
		if b < len(meta.Radii) {
			r = int(meta.Radii[b] / rangeX * float64(cw-5))
		}
		c.FillCircle(px, py, r)
	}

	return export.CanvasToSVG(c, 4)
}

func reverseCheck(cmd *cobra.Command, args []string) error {
	sc, err := resolveScene(cmd, args)
	if err != nil {
		return err
	}

	fmt.Printf("round trip on %s: %d frames out, %d frames back\n", sc.Name, frames, frames)

	posErr, velErr, err := runner.Roundtrip(context.Background(), sc, frames)
	if err != nil {
		return err
	}

	fmt.Printf("max position error: %.3e\n", posErr)
	fmt.Printf("max velocity error: %.3e\n", velErr)
	return nil
}

func runChaos(cmd *cobra.Command, args []string) error {
	sc, err := resolveScene(cmd, args)
	if err != nil {
		return err
	}

	lambda := analysis.LyapunovExponent(sc, frames, perturb)

	fmt.Printf("scene:    %s\n", sc.Name)
	fmt.Printf("frames:   %d\n", frames)
	fmt.Printf("perturb:  %.1e\n", perturb)
	fmt.Printf("lyapunov: %+.4f /s\n", lambda)
	if lambda > 0.01 {
		fmt.Println("\nnearby starts separate exponentially; reversals will lose precision fast")
	} else {
		fmt.Println("\nno exponential divergence detected over this window")
	}
	return nil
}

func runTune(cmd *cobra.Command, args []string) error {
	sc, err := resolveScene(cmd, args)
	if err != nil {
		return err
	}

	search := optim.NewGridSearch(
		[]string{"nominal", "floor"},
		[][]float64{
			{1.0 / 30, 1.0 / 60, 1.0 / 120},
			{1.0 / 1500, 1.0 / 3000, 1.0 / 6000, 1.0 / 12000},
		},
	)

	fmt.Printf("tuning %s over %.1fs round trips\n\n", sc.Name, duration)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NOMINAL\tFLOOR\tPOS ERR\tVEL ERR\tCOST")

	best, score, err := search.Search(context.Background(), func(ctx context.Context, params map[string]float64) (float64, error) {
		trial := *sc
		trial.Stepping.Nominal = params["nominal"]
		trial.Stepping.Floor = params["floor"]

		legFrames := int(duration/params["nominal"] + 0.5)
		if legFrames < 1 {
			legFrames = 1
		}

		posErr, velErr, err := runner.Roundtrip(ctx, &trial, legFrames)
		if err != nil {
			fmt.Fprintf(w, "%.5f\t%.5f\t%v\t\t\n", params["nominal"], params["floor"], err)
			return 0, err
		}

		cost := posErr + velErr
		fmt.Fprintf(w, "%.5f\t%.5f\t%.3e\t%.3e\t%.3e\n",
			params["nominal"], params["floor"], posErr, velErr, cost)
		return cost, nil
	})
	w.Flush()
	if err != nil {
		return err
	}
	if best == nil {
		return fmt.Errorf("no stepping combination completed")
	}

	fmt.Printf("\nbest: nominal=%.5f floor=%.5f (cost %.3e)\n", best["nominal"], best["floor"], score)
	return nil
}

func benchScenes(cmd *cobra.Command, args []string) error {
	bodyCounts := []int{2, 8, 16, 32}
	floors := []float64{1.0 / 1000, 1.0 / 3000, 1.0 / 6000}
	const benchFrames = 300

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODIES\tFLOOR\tFRAMES\tSUBSTEPS\tTIME\tSTEPS/SEC")

	for _, n := range bodyCounts {
		for _, fl := range floors {
			sc := ringScene(n)
			sc.Stepping.Floor = fl

			sess := sc.Session()
			start := time.Now()
			for i := 0; i < benchFrames; i++ {
				sess.Advance(sess.Nominal())
			}
			elapsed := time.Since(start)

			stepsPerSec := float64(sess.Steps) / elapsed.Seconds()
			fmt.Fprintf(w, "%d\t%.5f\t%d\t%d\t%v\t%.0f\n",
				n, fl, benchFrames, sess.Steps, elapsed, stepsPerSec)
		}
	}

	return w.Flush()
}

// ringScene arranges n bodies on a circle, all drifting inward so the
// bench exercises plenty of close approaches.
func ringScene(n int) *scene.Scene {
	cfg := engine.DefaultConfig()
	sc := &scene.Scene{
		Name:     fmt.Sprintf("ring%d", n),
		Gravity:  scene.GravityConfig{G: cfg.G},
		Stepping: scene.StepConfig{Nominal: cfg.Nominal, Floor: cfg.Floor},
	}
	for i := 0; i < n; i++ {
		angle := float64(i) * 2 * math.Pi / float64(n)
		sc.Bodies = append(sc.Bodies, scene.BodyConfig{
			X:      12 * math.Cos(angle),
			Y:      12 * math.Sin(angle),
			VX:     -2 * math.Cos(angle),
			VY:     -2 * math.Sin(angle),
			Radius: 0.5,
			Mass:   1,
		})
	}
	return sc
}
