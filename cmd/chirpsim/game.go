package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/chirpsim/internal/audio"
	"github.com/san-kum/chirpsim/internal/chirp"
	"github.com/san-kum/chirpsim/internal/optim"
	"github.com/san-kum/chirpsim/internal/physics"
	"github.com/spf13/cobra"
)

// plotWindow is how much of the end of each chirp the game draws.
const plotWindow = 0.25

func chirpOptions(rate int, pitch float64) chirp.Options {
	o := chirp.DefaultOptions()
	o.SampleRate = float64(rate)
	o.PitchScale = pitch
	return o
}

func runGame(cmd *cobra.Command, args []string) error {
	// Flag variables are shared between commands, so read this command's own.
	m1, m2 := floatFlag(cmd, "m1"), floatFlag(cmd, "m2")
	sampleRate, pitchScale := intFlag(cmd, "rate"), floatFlag(cmd, "pitch")
	solve, playAudio := boolFlag(cmd, "solve"), boolFlag(cmd, "play")

	name := "GW150914"
	if len(args) > 0 {
		name = args[0]
	}
	ev, err := chirp.LookupEvent(name)
	if err != nil {
		return err
	}

	opts := chirpOptions(sampleRate, 1)
	target, err := chirp.Template(ev.M1, ev.M2, opts)
	if err != nil {
		return err
	}
	if solve {
		return solveEvent(ev, target, opts)
	}

	guess, err := chirp.Template(m1, m2, opts)
	if err != nil {
		return fmt.Errorf("your guess: %w", err)
	}

	match := chirp.Match(target, guess)
	res := chirp.Verdict(match)
	logger.Debug().Str("event", ev.Name).Float64("m1", m1).Float64("m2", m2).Float64("match", match).Msg("scored guess")

	fmt.Println(strings.ToUpper(ev.Name))
	fmt.Println(ev.Description)
	fmt.Println()
	fmt.Printf("your guess: m1 = %.1f, m2 = %.1f (chirp mass %.2f)\n", m1, m2, physics.ChirpMass(m1, m2))
	fmt.Printf("chirp length: event %.2fs, guess %.2fs\n\n", target.Duration(), guess.Duration())

	n := int(plotWindow * opts.SampleRate)
	graph := asciigraph.PlotMany([][]float64{tail(target.Plus, n), tail(guess.Plus, n)},
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
		asciigraph.Caption("event (blue) vs guess (red), aligned at merger"),
	)
	fmt.Println(graph)
	fmt.Println()
	fmt.Printf("match: %d%%\n", res.Percent())
	fmt.Println(res.Render())

	if !playAudio {
		return nil
	}
	ctx, cancel := signalContext()
	defer cancel()
	for _, w := range []struct {
		label  string
		m1, m2 float64
	}{{ev.Name, ev.M1, ev.M2}, {"your guess", m1, m2}} {
		wf, err := chirp.Template(w.m1, w.m2, chirpOptions(audio.SampleRate, pitchScale))
		if err != nil {
			return err
		}
		fmt.Printf("playing %s...\n", w.label)
		if err := audio.Play(ctx, wf.Plus, audio.SampleRate); err != nil {
			return err
		}
	}
	return nil
}

func floatFlag(cmd *cobra.Command, name string) float64 {
	v, _ := cmd.Flags().GetFloat64(name)
	return v
}

func intFlag(cmd *cobra.Command, name string) int {
	v, _ := cmd.Flags().GetInt(name)
	return v
}

func boolFlag(cmd *cobra.Command, name string) bool {
	v, _ := cmd.Flags().GetBool(name)
	return v
}

func stringFlag(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}

func tail(x []float64, n int) []float64 {
	if n <= 0 || n >= len(x) {
		return x
	}
	return x[len(x)-n:]
}

func runListen(cmd *cobra.Command, args []string) error {
	sampleRate, pitchScale := intFlag(cmd, "rate"), floatFlag(cmd, "pitch")
	shiftHz, wavOut, outDir := floatFlag(cmd, "shift"), boolFlag(cmd, "wav"), stringFlag(cmd, "out")

	a, b := floatFlag(cmd, "m1"), floatFlag(cmd, "m2")
	label := fmt.Sprintf("%.1f + %.1f Msun", a, b)
	if len(args) > 0 {
		ev, err := chirp.LookupEvent(args[0])
		if err != nil {
			return err
		}
		a, b, label = ev.M1, ev.M2, ev.Name
	}

	wf, err := chirp.Template(a, b, chirpOptions(sampleRate, pitchScale))
	if err != nil {
		return err
	}
	samples := wf.Plus
	if shiftHz != 0 {
		samples, _ = audio.Split(audio.FreqShift(samples, shiftHz, sampleRate))
	}

	fmt.Printf("%s: %.2fs, merger at %.0f Hz, loudest at %.0f Hz\n",
		label, wf.Duration(), wf.MergerFreq, audio.DominantFrequency(samples, sampleRate))

	if wavOut {
		return writeFile(filepath.Join(outDir, "chirp.wav"), func(f *os.File) error {
			return audio.WriteWAV(f, sampleRate, samples)
		})
	}

	ctx, cancel := signalContext()
	defer cancel()
	return audio.Play(ctx, samples, sampleRate)
}

// solveEvent scans the slider range of the game for the masses whose
// template matches the event best.
func solveEvent(ev chirp.Event, target chirp.Waveform, opts chirp.Options) error {
	ctx, cancel := signalContext()
	defer cancel()

	masses := optim.Linspace(5, 50, 10)
	g := optim.NewGridSearch([]string{"m1", "m2"}, [][]float64{masses, masses})
	best, score, err := g.Search(ctx, func(p map[string]float64) (float64, error) {
		if p["m2"] > p["m1"] {
			return 0, fmt.Errorf("m2 > m1")
		}
		wf, err := chirp.Template(p["m1"], p["m2"], opts)
		if err != nil {
			return 0, err
		}
		return chirp.Match(target, wf), nil
	})
	if err != nil {
		return err
	}
	if best == nil {
		return fmt.Errorf("no grid point could be scored")
	}

	res := chirp.Verdict(score)
	fmt.Printf("%s: best of %d grid points is m1 = %.0f, m2 = %.0f (catalog %.1f, %.1f)\n",
		ev.Name, g.Evaluated(), best["m1"], best["m2"], ev.M1, ev.M2)
	fmt.Printf("match: %d%%\n", res.Percent())
	fmt.Println(res.Render())
	return nil
}
