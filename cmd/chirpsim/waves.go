package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/chirpsim/internal/audio"
	"github.com/spf13/cobra"
)

var (
	noteF0, noteF1 float64
	noteA0, noteA1 float64
	noteSeconds    float64
	phaseFreq      float64
)

func addWaveCommands(root *cobra.Command) {
	noteCmd := &cobra.Command{
		Use:   "note",
		Short: "play a note whose pitch and loudness ramp over time",
		Args:  cobra.NoArgs,
		RunE:  runNote,
	}
	noteCmd.Flags().Float64Var(&noteF0, "f0", 220, "starting frequency (Hz)")
	noteCmd.Flags().Float64Var(&noteF1, "f1", 220, "final frequency (Hz)")
	noteCmd.Flags().Float64Var(&noteA0, "a0", 1, "starting amplitude")
	noteCmd.Flags().Float64Var(&noteA1, "a1", 1, "final amplitude")
	noteCmd.Flags().Float64Var(&noteSeconds, "seconds", 3, "length in seconds")
	noteCmd.Flags().IntVar(&sampleRate, "rate", audio.SampleRate, "sample rate")
	noteCmd.Flags().BoolVar(&wavOut, "wav", false, "write note.wav instead of playing")
	noteCmd.Flags().StringVar(&outDir, "out", ".", "output directory for --wav")

	phaseCmd := &cobra.Command{
		Use:   "phase [degrees]",
		Short: "add a tone to a phase-shifted copy of itself",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPhase,
	}
	phaseCmd.Flags().Float64Var(&phaseFreq, "freq", 200, "tone frequency (Hz)")
	phaseCmd.Flags().Float64Var(&noteSeconds, "seconds", 4, "length in seconds")
	phaseCmd.Flags().IntVar(&sampleRate, "rate", audio.SampleRate, "sample rate")
	phaseCmd.Flags().BoolVar(&wavOut, "wav", false, "write phase.wav instead of playing")
	phaseCmd.Flags().BoolVar(&playAudio, "play", false, "play the superposed tone")
	phaseCmd.Flags().StringVar(&outDir, "out", ".", "output directory for --wav")

	root.AddCommand(noteCmd, phaseCmd)
}

func ramp(from, to, seconds float64) func(float64) float64 {
	return func(t float64) float64 {
		if seconds <= 0 {
			return from
		}
		return from + (to-from)*t/seconds
	}
}

func runNote(cmd *cobra.Command, args []string) error {
	noteSeconds, sampleRate := floatFlag(cmd, "seconds"), intFlag(cmd, "rate")
	wavOut, outDir := boolFlag(cmd, "wav"), stringFlag(cmd, "out")
	if noteSeconds <= 0 || sampleRate <= 0 {
		return fmt.Errorf("seconds and rate must be > 0")
	}
	samples := audio.VarNote(ramp(noteF0, noteF1, noteSeconds), ramp(noteA0, noteA1, noteSeconds), noteSeconds, sampleRate)
	fmt.Printf("note: %.0f -> %.0f Hz over %.1fs, loudest at %.0f Hz\n",
		noteF0, noteF1, noteSeconds, audio.DominantFrequency(samples, sampleRate))

	if wavOut {
		return writeFile(filepath.Join(outDir, "note.wav"), func(f *os.File) error {
			return audio.WriteWAV(f, sampleRate, samples)
		})
	}
	ctx, cancel := signalContext()
	defer cancel()
	return audio.Play(ctx, samples, sampleRate)
}

func runPhase(cmd *cobra.Command, args []string) error {
	deg := 90.0
	if len(args) > 0 {
		v, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("phase %q: %w", args[0], err)
		}
		deg = v
	}
	noteSeconds, sampleRate := floatFlag(cmd, "seconds"), intFlag(cmd, "rate")
	wavOut, playAudio, outDir := boolFlag(cmd, "wav"), boolFlag(cmd, "play"), stringFlag(cmd, "out")
	if noteSeconds <= 0 || sampleRate <= 0 || phaseFreq <= 0 {
		return fmt.Errorf("freq, seconds and rate must be > 0")
	}

	const amp = 7
	ref := audio.Tone(phaseFreq, noteSeconds, amp, sampleRate)
	shifted := audio.PhasedTone(phaseFreq, deg*math.Pi/180, noteSeconds, amp, sampleRate)
	sum, err := audio.Superpose(ref, shifted)
	if err != nil {
		return err
	}

	peak := 0.0
	for _, v := range sum {
		peak = math.Max(peak, math.Abs(v))
	}
	fmt.Printf("phase %.0f deg: combined peak %.2f of %.0f (%.0f%%)\n", deg, peak, 2.0*amp, 100*peak/(2*amp))

	// Three cycles are enough to see the interference.
	n := min(len(sum), int(3*float64(sampleRate)/phaseFreq))
	if n > 1 {
		graph := asciigraph.PlotMany([][]float64{ref[:n], shifted[:n], sum[:n]},
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.SeriesColors(asciigraph.Gold, asciigraph.Blue, asciigraph.Green),
			asciigraph.Caption("reference, shifted, sum"),
		)
		fmt.Println(graph)
	}

	switch {
	case wavOut:
		return writeFile(filepath.Join(outDir, "phase.wav"), func(f *os.File) error {
			return audio.WriteWAV(f, sampleRate, sum)
		})
	case playAudio:
		ctx, cancel := signalContext()
		defer cancel()
		return audio.Play(ctx, sum, sampleRate)
	}
	return nil
}
