package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/gogpu/gg"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/sketches/internal/canvas"
	"github.com/san-kum/sketches/internal/config"
	"github.com/san-kum/sketches/internal/curve"
	"github.com/san-kum/sketches/internal/export"
	"github.com/san-kum/sketches/internal/gui"
	"github.com/san-kum/sketches/internal/imagesrc"
	"github.com/san-kum/sketches/internal/loop"
	"github.com/san-kum/sketches/internal/particles"
	"github.com/san-kum/sketches/internal/storage"
	"github.com/san-kum/sketches/internal/vec"
	"github.com/san-kum/sketches/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	seed       int64
	logLevel   string
	width      int
	height     int
	frameRate  int
	// render
	frames    int
	format    string
	every     int
	pressAt   string
	dragTo    string
	releaseAt int
	outPath   string
	realtime  bool
	// tui
	tuiSketch string
)

var logger *slog.Logger

func main() {
	rootCmd := &cobra.Command{
		Use:           "sketches",
		Short:         "interactive particle and curve sketches",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".sketches", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 keeps the configured one)")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.IntVar(&width, "width", 0, "canvas width")
	pf.IntVar(&height, "height", 0, "canvas height")
	pf.IntVar(&frameRate, "fps", 0, "frame rate")

	particlesCmd := &cobra.Command{
		Use:   "particles [image]",
		Short: "open the particle field in a window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWindow(cmd, "particles", args)
		},
	}

	curveCmd := &cobra.Command{
		Use:   "curve",
		Short: "open the curve editor in a window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWindow(cmd, "curve", args)
		},
	}

	tuiCmd := &cobra.Command{
		Use:   "tui [image]",
		Short: "run a sketch in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTUI,
	}
	tuiCmd.Flags().StringVar(&tuiSketch, "sketch", "particles", "sketch to run (particles, curve)")

	renderCmd := &cobra.Command{
		Use:   "render <particles|curve> [image]",
		Short: "render frames headlessly into a run directory",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  renderSketch,
	}
	renderCmd.Flags().IntVar(&frames, "frames", 120, "number of frames")
	renderCmd.Flags().StringVar(&format, "format", "png", "frame format (png, svg)")
	renderCmd.Flags().IntVar(&every, "every", 0, "save every n-th frame (0 saves only the last)")
	renderCmd.Flags().StringVar(&pressAt, "press", "", "press the pointer at x,y on the first frame")
	renderCmd.Flags().StringVar(&dragTo, "drag", "", "drag the pressed pointer to x,y over the run")
	renderCmd.Flags().IntVar(&releaseAt, "release", -1, "release the pointer at this frame")
	renderCmd.Flags().StringVar(&outPath, "out", "", "also write the last frame to this path")
	renderCmd.Flags().BoolVar(&realtime, "realtime", false, "pace frames at the configured fps")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list render runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}
	runsCmd.AddCommand(
		&cobra.Command{
			Use:   "show [run_id]",
			Short: "plot a run's per-frame stats",
			Args:  cobra.ExactArgs(1),
			RunE:  showRun,
		},
		&cobra.Command{
			Use:   "export [run_id]",
			Short: "export a run as JSON",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
			},
		},
	)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "init <path>",
		Short: "write the effective configuration to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	})

	rootCmd.AddCommand(particlesCmd, curveCmd, tuiCmd, renderCmd, runsCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func setupLogging() error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	gg.SetLogger(logger.With("lib", "gg"))
	return nil
}

// loadConfig layers the configuration: defaults or the config file, then
// the preset, then any flag the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if preset != "" && !config.Apply(cfg, preset) {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("width") {
		cfg.Canvas.Width = width
	}
	if flags.Changed("height") {
		cfg.Canvas.Height = height
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadImage resolves the particle source: the argument, then the configured
// path, then the built-in radial pattern.
func loadImage(cfg *config.Config, args []string) (imagesrc.Sampler, string, error) {
	path := cfg.Image
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		logger.Info("no image given, using built-in pattern")
		return imagesrc.Radial(cfg.Canvas.Width/4, cfg.Canvas.Height/4), "", nil
	}
	img, err := imagesrc.Load(path)
	if err != nil {
		return nil, "", err
	}
	// sampling never reads finer than the canvas, so large photos shrink once
	iw, ih := img.Size()
	if w, h := min(iw, cfg.Canvas.Width), min(ih, cfg.Canvas.Height); w < iw || h < ih {
		logger.Debug("downsampling image", "from", fmt.Sprintf("%dx%d", iw, ih), "to", fmt.Sprintf("%dx%d", w, h))
		img = img.Scaled(w, h)
	}
	return img, path, nil
}

func newSketch(name string, cfg *config.Config, args []string) (loop.Sketch, string, error) {
	switch name {
	case "particles":
		src, path, err := loadImage(cfg, args)
		if err != nil {
			return nil, "", err
		}
		sim, err := particles.New(cfg, src, logger)
		return sim, path, err
	case "curve":
		ed, err := curve.NewEditor(cfg, logger)
		return ed, "", err
	}
	return nil, "", fmt.Errorf("unknown sketch: %s (available: particles, curve)", name)
}

func runWindow(cmd *cobra.Command, name string, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sk, _, err := newSketch(name, cfg, args)
	if err != nil {
		return err
	}
	return gui.Run(name, sk, cfg.FPS, logger)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sk, _, err := newSketch(tuiSketch, cfg, args)
	if err != nil {
		return err
	}
	// keep log output from tearing the alt screen
	logger = slog.New(slog.DiscardHandler)
	return viz.Run(tuiSketch, sk, min(cfg.FPS, 30), logger)
}

func parsePoint(s string) (float64, float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected x,y, got %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, err
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func newGesture() (*loop.Gesture, error) {
	if pressAt == "" {
		return nil, nil
	}
	x, y, err := parsePoint(pressAt)
	if err != nil {
		return nil, fmt.Errorf("--press: %w", err)
	}
	g := &loop.Gesture{From: vec.New(x, y), To: vec.New(x, y), Release: releaseAt, Frames: frames}
	if dragTo != "" {
		if x, y, err = parsePoint(dragTo); err != nil {
			return nil, fmt.Errorf("--drag: %w", err)
		}
		g.To = vec.New(x, y)
	}
	return g, nil
}

func frameStats(sk loop.Sketch, i int) storage.FrameStats {
	st := storage.FrameStats{Frame: i}
	switch s := sk.(type) {
	case *particles.Sim:
		ps := s.Stats()
		st.Particles = ps.Particles
		st.Pushed = ps.Pushed
		st.KineticEnergy = ps.KineticEnergy
		st.MeanDisplacement = ps.MeanDisplacement
		st.MaxScale = ps.MaxScale
	case *curve.Editor:
		st.Points = len(s.Points())
	}
	return st
}

func renderSketch(cmd *cobra.Command, args []string) error {
	name := args[0]
	if frames < 1 {
		return fmt.Errorf("--frames must be at least 1")
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	fmtKind, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	if outPath != "" && filepath.Ext(outPath) == "" {
		outPath += fmtKind.Ext()
	}
	g, err := newGesture()
	if err != nil {
		return err
	}
	sk, imgPath, err := newSketch(name, cfg, args[1:])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	run, err := st.Create(storage.RunMetadata{
		Sketch: name,
		Seed:   cfg.Seed,
		Preset: preset,
		Image:  imgPath,
		Width:  cfg.Canvas.Width,
		Height: cfg.Canvas.Height,
		Format: string(fmtKind),
	})
	if err != nil {
		return err
	}

	peak := 0.0
	driver := loop.New(sk, cfg.FPS)
	driver.OnFrame = func(i int, surf canvas.Surface) error {
		fs := frameStats(sk, i)
		run.Record(fs)
		peak = max(peak, fs.KineticEnergy)

		last := i == frames-1
		if !last && (every <= 0 || i%every != 0) {
			return nil
		}
		frame := surf.(export.Frame)
		if err := run.WriteFrame(i, frame.WriteFile); err != nil {
			return err
		}
		if last && outPath != "" {
			return frame.WriteFile(outPath)
		}
		return nil
	}
	surfaces := func(int) (canvas.Surface, error) {
		return export.NewFrame(fmtKind, cfg.Canvas.Width, cfg.Canvas.Height)
	}

	logger.Info("rendering", "sketch", name, "frames", frames, "format", fmtKind, "run", run.ID())
	start := time.Now()

	if realtime {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		events := make(chan canvas.Event)
		go func() {
			defer close(events)
			tick := time.NewTicker(time.Second / time.Duration(cfg.FPS))
			defer tick.Stop()
			for i := 0; i < frames; i++ {
				for _, ev := range g.Events(i) {
					select {
					case events <- ev:
					case <-ctx.Done():
						return
					}
				}
				select {
				case <-tick.C:
				case <-ctx.Done():
					return
				}
			}
		}()
		err = driver.Run(ctx, surfaces, events, frames)
	} else {
		for i := 0; i < frames && err == nil; i++ {
			var surf canvas.Surface
			if surf, err = surfaces(i); err == nil {
				err = driver.Step(surf, g.Events(i)...)
			}
		}
	}
	if err != nil {
		return err
	}

	run.SetMetric("peak_energy", peak)
	run.SetMetric("elapsed_seconds", time.Since(start).Seconds())
	meta, err := run.Close()
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start).Round(time.Millisecond))
	fmt.Printf("run id: %s\n", meta.ID)
	fmt.Printf("dir: %s\n", run.Dir())
	fmt.Printf("frames: %d (%d written)\n", meta.Frames, len(meta.Files))
	if outPath != "" {
		fmt.Printf("last frame: %s\n", outPath)
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
		fmt.Printf("no runs found in %s\n", st.Dir())
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSKETCH\tTIME\tFRAMES\tSIZE\tFORMAT\tSEED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%dx%d\t%s\t%d\n",
			run.ID,
			run.Sketch,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Width, run.Height,
			run.Format,
			run.Seed,
		)
	}

	return w.Flush()
}

type plot struct {
	caption string
	pick    func(storage.FrameStats) float64
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tRINGS\tPARTICLES\tDOT\tDECAY\tFORCE")

	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		count := 0
		for _, r := range particles.Rings(cfg.Layout) {
			count += r.Count
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%g\t%v\t%s\n",
			name,
			cfg.Layout.RingCount,
			count,
			cfg.Layout.DotRadius,
			cfg.Layout.DecaySpacing,
			cfg.Physics.ForceMode,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	rows, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("sketch: %s\n", meta.Sketch)
	fmt.Printf("frames: %d\n\n", len(rows))

	plots := []plot{
		{"kinetic energy", func(f storage.FrameStats) float64 { return f.KineticEnergy }},
		{"particles pushed", func(f storage.FrameStats) float64 { return float64(f.Pushed) }},
		{"mean displacement", func(f storage.FrameStats) float64 { return f.MeanDisplacement }},
	}
	if meta.Sketch == "curve" {
		plots = []plot{{"points", func(f storage.FrameStats) float64 { return float64(f.Points) }}}
	}

	for _, p := range plots {
		graph := asciigraph.Plot(storage.Series(rows, p.pick),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(p.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	for name, val := range meta.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}
	return nil
}
