package chirp

import (
	"fmt"
	"math"

	"github.com/san-kum/chirpsim/internal/dynamo"
	"github.com/san-kum/chirpsim/internal/physics"
)

// Options controls template generation.
type Options struct {
	SampleRate float64 // Hz
	FLower     float64 // starting gravitational-wave frequency, Hz
	// PitchScale multiplies every frequency while keeping the duration,
	// which moves the chirp into the audible band.
	PitchScale float64
	// TailCycles is the e-folding time of the post-merger tail in cycles
	// of the merger frequency.
	TailCycles float64
}

func DefaultOptions() Options {
	return Options{SampleRate: 2048, FLower: 20, PitchScale: 1, TailCycles: 1.5}
}

func (o Options) validate() error {
	for _, c := range []struct {
		name string
		v    float64
	}{
		{"sample_rate", o.SampleRate},
		{"f_lower", o.FLower},
		{"pitch_scale", o.PitchScale},
		{"tail_cycles", o.TailCycles},
	} {
		if err := dynamo.Positive(c.name, c.v); err != nil {
			return err
		}
	}
	return nil
}

// Waveform is a sampled chirp. Times are measured relative to the merger,
// so they are negative during the inspiral.
type Waveform struct {
	SampleRate float64
	Times      []float64
	Plus       []float64
	Cross      []float64
	Frequency  []float64 // instantaneous frequency, Hz
	MergerFreq float64
}

func (w Waveform) Len() int { return len(w.Plus) }

// Duration is the span covered by the samples, in seconds.
func (w Waveform) Duration() float64 {
	return float64(len(w.Plus)) / w.SampleRate
}

// Template builds the chirp of a binary with masses m1 and m2 (solar masses).
// The inspiral ends at the merger frequency ωmax/π, capped below Nyquist.
func Template(m1, m2 float64, opts Options) (Waveform, error) {
	if err := dynamo.Positive("m1", m1); err != nil {
		return Waveform{}, fmt.Errorf("chirp template: %w", err)
	}
	if err := dynamo.Positive("m2", m2); err != nil {
		return Waveform{}, fmt.Errorf("chirp template: %w", err)
	}
	if err := opts.validate(); err != nil {
		return Waveform{}, fmt.Errorf("chirp template: %w", err)
	}

	c3 := physics.SpeedOfLight * physics.SpeedOfLight * physics.SpeedOfLight
	tm := physics.GravitationalConstant * physics.ChirpMass(m1, m2) / c3 // seconds

	fMerge := physics.MergerOmega(m1, m2) / math.Pi
	fEnd := math.Min(fMerge, 0.45*opts.SampleRate/opts.PitchScale)
	if opts.FLower >= fEnd {
		return Waveform{}, &dynamo.ParameterError{Name: "f_lower", Value: opts.FLower, Rule: fmt.Sprintf("must be below the end frequency %.4g Hz", fEnd)}
	}

	tauOf := func(f float64) float64 {
		return 5.0 / 256 * math.Pow(tm, -5.0/3) * math.Pow(math.Pi*f, -8.0/3)
	}
	freqOf := func(tau float64) float64 {
		return math.Pow(5/(256*tau), 3.0/8) * math.Pow(tm, -5.0/8) / math.Pi
	}
	phaseOf := func(tau float64) float64 {
		return -2 * math.Pow(tau/(5*tm), 5.0/8)
	}

	tau0, tauEnd := tauOf(opts.FLower), tauOf(fEnd)
	dt := 1 / opts.SampleRate
	nInspiral := int((tau0-tauEnd)/dt) + 1

	damp := opts.TailCycles / fEnd
	nTail := int(5 * damp / dt)

	n := nInspiral + nTail
	w := Waveform{
		SampleRate: opts.SampleRate,
		Times:      make([]float64, n),
		Plus:       make([]float64, n),
		Cross:      make([]float64, n),
		Frequency:  make([]float64, n),
		MergerFreq: fEnd * opts.PitchScale,
	}

	phi0 := phaseOf(tau0)
	fLast := freqOf(tau0 - float64(nInspiral-1)*dt)
	var lastPhase, lastAmp float64
	for i := 0; i < nInspiral; i++ {
		tau := tau0 - float64(i)*dt
		f := freqOf(tau)
		amp := math.Pow(f/fLast, 2.0/3)
		phase := opts.PitchScale * (phaseOf(tau) - phi0)
		w.Times[i] = -tau + tauEnd
		w.Frequency[i] = opts.PitchScale * f
		w.Plus[i] = amp * math.Cos(phase)
		w.Cross[i] = amp * math.Sin(phase)
		lastPhase, lastAmp = phase, amp
	}

	for j := 1; j <= nTail; j++ {
		i := nInspiral + j - 1
		t := float64(j) * dt
		amp := lastAmp * math.Exp(-t/damp)
		phase := lastPhase + 2*math.Pi*w.MergerFreq*t
		w.Times[i] = w.Times[nInspiral-1] + t
		w.Frequency[i] = w.MergerFreq
		w.Plus[i] = amp * math.Cos(phase)
		w.Cross[i] = amp * math.Sin(phase)
	}
	return w, nil
}
