package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/rs/zerolog"
	"github.com/san-kum/chirpsim/internal/audio"
	"github.com/san-kum/chirpsim/internal/automation"
	"github.com/san-kum/chirpsim/internal/chirp"
	"github.com/san-kum/chirpsim/internal/config"
	"github.com/san-kum/chirpsim/internal/dynamo"
	"github.com/san-kum/chirpsim/internal/export"
	"github.com/san-kum/chirpsim/internal/logging"
	"github.com/san-kum/chirpsim/internal/physics"
	"github.com/san-kum/chirpsim/internal/scene"
	"github.com/san-kum/chirpsim/internal/storage"
	"github.com/san-kum/chirpsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	logLevel   string
	logFormat  string

	m1, m2             float64
	alpha, beta, gamma float64
	frameRate          float64
	omega              float64
	duration           float64
	omega0             float64
	timeStep           float64
	maxFrames          int
	ringdownFrames     int
	visualScale        float64
	theme              string
	fitEach            bool

	outDir  string
	gifOut  bool
	svgOut  bool
	wavOut  bool
	saveRun bool

	sampleRate   int
	pitchScale   float64
	shiftHz      float64
	playAudio    bool
	stepsPerTick int
	solve        bool

	logger zerolog.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "chirpsim",
		Short: "binary black hole orbits, chirps and ringdowns",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.New(logLevel, logFormat, os.Stderr)
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".chirpsim", "data directory for saved runs")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error, off)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "log format (console, json)")

	orbitCmd := &cobra.Command{
		Use:   "orbit",
		Short: "render a constant-rate orbit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScene(cmd, "orbit")
		},
	}
	addBinaryFlags(orbitCmd)
	addOutputFlags(orbitCmd)
	orbitCmd.Flags().Float64Var(&frameRate, "fps", config.DefaultFrameRate, "frames per second")
	orbitCmd.Flags().Float64Var(&omega, "omega", 0, "rotations per second (0 = 40/(m1+m2))")
	orbitCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration in seconds")

	inspiralCmd := &cobra.Command{
		Use:   "inspiral",
		Short: "render a chirping inspiral up to merger and ringdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScene(cmd, "inspiral")
		},
	}
	addBinaryFlags(inspiralCmd)
	addOutputFlags(inspiralCmd)
	addInspiralFlags(inspiralCmd)
	inspiralCmd.Flags().BoolVar(&wavOut, "wav", false, "write the chirp as a stereo wav (plus, cross)")
	inspiralCmd.Flags().Float64Var(&pitchScale, "pitch", 1, "pitch scale for the wav")
	inspiralCmd.Flags().IntVar(&sampleRate, "rate", 2048, "wav sample rate")

	liveCmd := &cobra.Command{
		Use:   "live [scene]",
		Short: "animate a scene in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addBinaryFlags(liveCmd)
	addInspiralFlags(liveCmd)
	liveCmd.Flags().Float64Var(&frameRate, "fps", config.DefaultFrameRate, "frames per second")
	liveCmd.Flags().Float64Var(&omega, "omega", 0, "rotations per second (0 = 40/(m1+m2))")
	liveCmd.Flags().StringVar(&theme, "theme", "night", "colour theme")
	liveCmd.Flags().StringVar(&outDir, "out", ".", "directory for recorded gifs")
	liveCmd.Flags().IntVar(&stepsPerTick, "steps", 0, "frames advanced per redraw (0 = auto)")

	gameCmd := &cobra.Command{
		Use:   "game [event]",
		Short: "guess the masses behind a detected chirp",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGame,
	}
	gameCmd.Flags().Float64Var(&m1, "m1", 30, "guessed primary mass (Msun)")
	gameCmd.Flags().Float64Var(&m2, "m2", 30, "guessed secondary mass (Msun)")
	gameCmd.Flags().IntVar(&sampleRate, "rate", 2048, "template sample rate")
	gameCmd.Flags().BoolVar(&playAudio, "play", false, "play the event chirp then your guess")
	gameCmd.Flags().Float64Var(&pitchScale, "pitch", 1, "pitch scale for playback")
	gameCmd.Flags().BoolVar(&solve, "solve", false, "search the mass grid for the best match instead")

	listenCmd := &cobra.Command{
		Use:   "listen [event]",
		Short: "play a chirp through the default audio device",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runListen,
	}
	listenCmd.Flags().Float64Var(&m1, "m1", 36, "primary mass (Msun)")
	listenCmd.Flags().Float64Var(&m2, "m2", 29, "secondary mass (Msun)")
	listenCmd.Flags().Float64Var(&pitchScale, "pitch", 1, "pitch scale")
	listenCmd.Flags().Float64Var(&shiftHz, "shift", 0, "shift every frequency up by this many Hz")
	listenCmd.Flags().IntVar(&sampleRate, "rate", audio.SampleRate, "playback sample rate")
	listenCmd.Flags().BoolVar(&wavOut, "wav", false, "write chirp.wav instead of playing")
	listenCmd.Flags().StringVar(&outDir, "out", ".", "output directory for --wav")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run frames to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSCENE\tM1\tM2\tDESCRIPTION")
			for _, name := range config.ListPresets() {
				p := config.Presets[name]
				fmt.Fprintf(w, "%s\t%s\t%.1f\t%.1f\t%s\n", name, p.Scene, p.M1, p.M2, p.Description)
			}
			return w.Flush()
		},
	}

	eventsCmd := &cobra.Command{
		Use:   "events",
		Short: "list catalog events for the game",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "EVENT\tM1\tM2\tCHIRP MASS")
			for _, name := range chirp.EventNames() {
				e := chirp.Events[name]
				fmt.Fprintf(w, "%s\t%.1f\t%.2f\t%.2f\n", e.Name, e.M1, e.M2, physics.ChirpMass(e.M1, e.M2))
			}
			return w.Flush()
		},
	}

	batchCmd := &cobra.Command{
		Use:   "batch [scenario]",
		Short: "run every scene of a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().BoolVar(&saveRun, "save", true, "save each run to the data directory")

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a config file with the defaults (or a preset)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "chirpsim.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			cfg := config.DefaultConfig()
			if preset != "" {
				if cfg = config.GetPreset(preset); cfg == nil {
					return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
				}
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}

	rootCmd.AddCommand(orbitCmd, inspiralCmd, liveCmd, gameCmd, listenCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, presetsCmd, eventsCmd, batchCmd, initCmd)
	addWaveCommands(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addBinaryFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&m1, "m1", 36, "primary mass (Msun)")
	cmd.Flags().Float64Var(&m2, "m2", 29, "secondary mass (Msun)")
	cmd.Flags().Float64Var(&alpha, "alpha", config.DefaultAlpha, "first Euler angle (deg)")
	cmd.Flags().Float64Var(&beta, "beta", config.DefaultBeta, "inclination (deg)")
	cmd.Flags().Float64Var(&gamma, "gamma", config.DefaultGamma, "roll angle and initial phase (deg)")
	cmd.Flags().Float64Var(&visualScale, "scale", 0, "disk radius per Msun (0 = auto)")
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&outDir, "out", ".", "output directory")
	cmd.Flags().BoolVar(&gifOut, "gif", true, "write an animated gif")
	cmd.Flags().BoolVar(&svgOut, "svg", false, "write the projected track as svg")
	cmd.Flags().BoolVar(&saveRun, "save", false, "save the run to the data directory")
	cmd.Flags().StringVar(&theme, "theme", "night", "colour theme")
	cmd.Flags().BoolVar(&fitEach, "fit-each", false, "refit the view to every frame")
}

func addInspiralFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&omega0, "omega0", config.DefaultOmega0, "initial orbital angular frequency (rad/s)")
	cmd.Flags().Float64Var(&timeStep, "dt", 0, "time step in seconds (0 = 1/omega_max)")
	cmd.Flags().IntVar(&maxFrames, "max-frames", config.DefaultMaxFrames, "rendered inspiral frames (0 = all)")
	cmd.Flags().IntVar(&ringdownFrames, "ringdown", config.DefaultRingdown, "ringdown frames after merger")
}

// resolveConfig layers defaults, config file, environment, preset and the
// flags the user actually set.
func resolveConfig(cmd *cobra.Command, sceneName string) (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if preset != "" {
		p, ok := config.Presets[preset]
		if !ok {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		p.Apply(cfg)
	}
	if sceneName != "" {
		cfg.Scene = sceneName
	}

	flags := cmd.Flags()
	set := func(name string, apply func()) {
		if flags.Lookup(name) != nil && flags.Changed(name) {
			apply()
		}
	}
	set("m1", func() { cfg.Binary.M1 = m1 })
	set("m2", func() { cfg.Binary.M2 = m2 })
	set("alpha", func() { cfg.Binary.Alpha = alpha })
	set("beta", func() { cfg.Binary.Beta = beta })
	set("gamma", func() { cfg.Binary.Gamma = gamma })
	set("scale", func() { cfg.Render.VisualScale = visualScale })
	set("fps", func() { cfg.Orbit.FrameRate = frameRate })
	set("omega", func() { cfg.Orbit.Omega = omega })
	set("time", func() { cfg.Orbit.Duration = duration })
	set("omega0", func() { cfg.Inspiral.Omega0 = omega0 })
	set("dt", func() { cfg.Inspiral.TimeStep = timeStep })
	set("max-frames", func() { cfg.Inspiral.MaxFrames = maxFrames })
	set("ringdown", func() { cfg.Inspiral.RingdownFrames = ringdownFrames })
	set("theme", func() { cfg.Render.Theme = theme })
	set("fit-each", func() { cfg.Render.FitEach = fitEach })
	set("out", func() { cfg.Output.Dir = outDir })
	set("gif", func() { cfg.Output.GIF = gifOut })
	set("svg", func() { cfg.Output.SVG = svgOut })
	set("wav", func() { cfg.Output.WAV = wavOut })
	set("save", func() { cfg.Output.Save = saveRun })
	set("pitch", func() { cfg.Audio.PitchScale = pitchScale })
	set("rate", func() { cfg.Audio.SampleRate = sampleRate })

	if !cmd.Flags().Changed("log-level") && cfg.Log.Level != "" {
		logger = logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	}
	return cfg, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runScene(cmd *cobra.Command, sceneName string) error {
	cfg, err := resolveConfig(cmd, sceneName)
	if err != nil {
		return err
	}
	th, ok := viz.GetTheme(cfg.Render.Theme)
	if !ok {
		logger.Warn().Str("theme", cfg.Render.Theme).Strs("available", viz.ThemeNames()).Msg("unknown theme, using night")
	}

	sc, err := scene.New(cfg, scene.NewRegistry(), logger)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("running %s scene (m1=%.1f, m2=%.1f)...\n", cfg.Scene, cfg.Binary.M1, cfg.Binary.M2)
	start := time.Now()
	res, err := sc.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("frames: %d recorded, %d rendered, %d ringdown\n", res.Kinematics.Frames(), len(res.Frames), len(res.Ringdown))
	if res.Termination != dynamo.Running {
		fmt.Printf("termination: %s\n", res.Termination)
	}

	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		return err
	}
	base := filepath.Join(cfg.Output.Dir, cfg.Scene)

	if cfg.Output.GIF {
		opts := export.DefaultGIFOptions()
		opts.Width, opts.Height = cfg.Render.Width, cfg.Render.Height
		opts.Theme = th
		opts.FitEach = cfg.Render.FitEach
		opts.Delay = max(1, int(100/cfg.Orbit.FrameRate+0.5))
		if err := writeFile(base+".gif", func(f *os.File) error { return export.GIF(f, res.All(), opts) }); err != nil {
			return err
		}
	}
	if cfg.Output.SVG {
		svg := export.TrackSVG(res.Frames, cfg.Render.Width, cfg.Render.Height, th)
		if svg == "" {
			logger.Warn().Msg("not enough frames for a track")
		} else if err := os.WriteFile(base+".svg", []byte(svg), 0644); err != nil {
			return err
		} else {
			fmt.Printf("wrote %s.svg\n", base)
		}
	}
	if cfg.Output.WAV {
		co := chirpOptions(cfg.Audio.SampleRate, cfg.Audio.PitchScale)
		co.FLower = cfg.Audio.FLower
		wf, err := chirp.Template(cfg.Binary.M1, cfg.Binary.M2, co)
		if err != nil {
			return err
		}
		if err := writeFile(base+".wav", func(f *os.File) error {
			return audio.WriteWAV(f, cfg.Audio.SampleRate, wf.Plus, wf.Cross)
		}); err != nil {
			return err
		}
	}
	if cfg.Output.Save {
		st := storage.New(dataDir, logger)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(res.Metadata(cfg, preset), res.Rows())
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	sceneName := ""
	if len(args) > 0 {
		sceneName = args[0]
	}
	cfg, err := resolveConfig(cmd, sceneName)
	if err != nil {
		return err
	}
	th, _ := viz.GetTheme(cfg.Render.Theme)

	sc, err := scene.New(cfg, scene.NewRegistry(), logger)
	if err != nil {
		return err
	}
	artist, err := sc.Artist()
	if err != nil {
		return err
	}

	opts := viz.LiveOptions{
		Title:        fmt.Sprintf("%s %.1f + %.1f", cfg.Scene, cfg.Binary.M1, cfg.Binary.M2),
		StepsPerTick: stepsPerTick,
		TickRate:     time.Duration(float64(time.Second) / cfg.Orbit.FrameRate),
		Theme:        th,
		Recorder: func(frames []viz.RenderFrame) error {
			if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
				return err
			}
			path := filepath.Join(cfg.Output.Dir, fmt.Sprintf("live_%d.gif", time.Now().Unix()))
			opts := export.DefaultGIFOptions()
			opts.Theme = th
			return writeFile(path, func(f *os.File) error { return export.GIF(f, frames, opts) })
		},
	}
	if ib, ok := sc.Kinematics().(*physics.InspiralingBinary); ok {
		rd, err := sc.Remnant()
		if err != nil {
			return err
		}
		opts.Ringdown = rd
		opts.RingdownTicks = cfg.Inspiral.RingdownFrames
		if opts.StepsPerTick == 0 {
			// Spread the whole inspiral over about ten seconds of animation.
			total := ib.CoalescenceTime() / ib.TimeStep()
			opts.StepsPerTick = max(1, int(total/(10*cfg.Orbit.FrameRate)))
		}
	}

	p := tea.NewProgram(viz.NewModel(sc.Kinematics(), artist, opts))
	_, err = p.Run()
	return err
}

func runBatch(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	base, err := resolveConfig(cmd, "")
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("scenario %s: %d steps\n", scenario.Name, len(scenario.Steps))
	results, err := automation.RunScenario(ctx, scenario, base, scene.NewRegistry(), logger)
	if err != nil {
		return err
	}

	var st *storage.Store
	if saveRun {
		st = storage.New(dataDir, logger)
		if err := st.Init(); err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tSCENE\tM1\tM2\tFRAMES\tEND\tRUN")
	for i, r := range results {
		runID, end := "-", "-"
		if r.Result.Termination != dynamo.Running {
			end = r.Result.Termination.String()
		}
		if st != nil {
			if runID, err = st.Save(r.Result.Metadata(r.Config, r.Step.Label()), r.Result.Rows()); err != nil {
				return err
			}
		}
		fmt.Fprintf(w, "%d\t%s\t%.1f\t%.1f\t%d\t%s\t%s\n",
			i+1, r.Config.Scene, r.Config.Binary.M1, r.Config.Binary.M2,
			r.Result.Kinematics.Frames(), end, runID)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir, logger)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENE\tTIME\tM1\tM2\tFRAMES\tEND")
	for _, run := range runs {
		end := run.Termination
		if end == "" {
			end = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1f\t%.1f\t%d\t%s\n",
			run.ID,
			run.Scene,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.M1,
			run.M2,
			run.Frames,
			end,
		)
	}
	return w.Flush()
}

type plotSeries struct {
	caption string
	value   func(storage.FrameRow) float64
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir, logger)

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
	fmt.Printf("scene: %s\n", meta.Scene)
	fmt.Printf("frames: %d\n\n", len(rows))

	series := []plotSeries{
		{"primary x", func(r storage.FrameRow) float64 { return r.Primary.X() }},
		{"primary depth", func(r storage.FrameRow) float64 { return r.Primary.Depth() }},
	}
	if meta.Scene == "inspiral" {
		series = append(series,
			plotSeries{"separation (km)", func(r storage.FrameRow) float64 { return r.Radius }},
			plotSeries{"omega (rad/s)", func(r storage.FrameRow) float64 { return r.Omega }},
		)
	}

	for _, s := range series {
		data := make([]float64, len(rows))
		for i, r := range rows {
			data[i] = s.value(r)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir, logger)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir, logger)
	rows, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"time", "primary_x", "primary_y", "secondary_x", "secondary_y", "separation"}); err != nil {
		return err
	}
	for _, r := range rows {
		row := []string{strconv.FormatFloat(r.Time, 'f', 6, 64)}
		for _, v := range []float64{r.Primary.X(), r.Primary.Y(), r.Secondary.X(), r.Secondary.Y(), r.Radius} {
			row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
