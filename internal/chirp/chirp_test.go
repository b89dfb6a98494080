package chirp

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/chirpsim/internal/dynamo"
	"github.com/san-kum/chirpsim/internal/physics"
)

func mustTemplate(t *testing.T, m1, m2 float64) Waveform {
	t.Helper()
	w, err := Template(m1, m2, DefaultOptions())
	if err != nil {
		t.Fatalf("Template(%g, %g): %v", m1, m2, err)
	}
	return w
}

func TestTemplateChirpsUpwards(t *testing.T) {
	w := mustTemplate(t, 35.6, 30.6)

	if w.Len() == 0 || len(w.Times) != w.Len() || len(w.Cross) != w.Len() || len(w.Frequency) != w.Len() {
		t.Fatalf("inconsistent lengths")
	}
	if f := w.Frequency[0]; math.Abs(f-20) > 0.5 {
		t.Errorf("starting frequency = %g Hz, want ~20", f)
	}
	fMerge := physics.MergerOmega(35.6, 30.6) / math.Pi
	if math.Abs(w.MergerFreq-fMerge) > 1e-9 {
		t.Errorf("merger frequency = %g, want %g", w.MergerFreq, fMerge)
	}

	for i := 1; i < w.Len(); i++ {
		if w.Frequency[i] < w.Frequency[i-1] {
			t.Fatalf("frequency dropped at sample %d", i)
		}
		if w.Times[i] <= w.Times[i-1] {
			t.Fatalf("time not increasing at sample %d", i)
		}
	}
	if w.Times[0] >= 0 {
		t.Errorf("inspiral should start before the merger, t0 = %g", w.Times[0])
	}
}

func TestTemplatePeakNearMerger(t *testing.T) {
	w := mustTemplate(t, 30, 28)
	peak, at := 0.0, 0
	for i := range w.Plus {
		if a := math.Hypot(w.Plus[i], w.Cross[i]); a > peak {
			peak, at = a, i
		}
	}
	if math.Abs(peak-1) > 1e-9 {
		t.Errorf("peak amplitude = %g, want 1", peak)
	}
	if math.Abs(w.Times[at]) > 0.01 {
		t.Errorf("peak at t = %g, want near the merger", w.Times[at])
	}
	if last := math.Hypot(w.Plus[w.Len()-1], w.Cross[w.Len()-1]); last > 0.01 {
		t.Errorf("tail not damped, final amplitude %g", last)
	}
}

func TestLighterBinariesChirpLonger(t *testing.T) {
	heavy := mustTemplate(t, 35, 30)
	light := mustTemplate(t, 14, 8)
	if light.Duration() <= heavy.Duration() {
		t.Errorf("light duration %g should exceed heavy duration %g", light.Duration(), heavy.Duration())
	}
}

func TestTemplateCapsBelowNyquist(t *testing.T) {
	w := mustTemplate(t, 5, 5)
	if w.MergerFreq >= 0.5*w.SampleRate {
		t.Errorf("merger frequency %g not below Nyquist", w.MergerFreq)
	}
}

func TestTemplateInvalid(t *testing.T) {
	if _, err := Template(0, 10, DefaultOptions()); !errors.Is(err, dynamo.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter for zero mass, got %v", err)
	}
	opts := DefaultOptions()
	opts.SampleRate = 0
	if _, err := Template(10, 10, opts); !errors.Is(err, dynamo.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter for zero sample rate, got %v", err)
	}
	opts = DefaultOptions()
	opts.FLower = 5000
	if _, err := Template(10, 10, opts); !errors.Is(err, dynamo.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter for f_lower above merger, got %v", err)
	}
}

func TestMatchIdenticalIsPerfect(t *testing.T) {
	w := mustTemplate(t, 35.6, 30.6)
	m := Match(w, w)
	if m < 0.99 || m > 1 {
		t.Errorf("self match = %g", m)
	}
	if got := Verdict(m).Message; got != "Perfect!" {
		t.Errorf("verdict = %q", got)
	}
}

func TestMatchDecreasesWithMassMismatch(t *testing.T) {
	event := mustTemplate(t, 35.6, 30.6)
	near := Match(event, mustTemplate(t, 34, 31))
	far := Match(event, mustTemplate(t, 10, 8))

	if near <= far {
		t.Errorf("near match %g should beat far match %g", near, far)
	}
	if far >= 0.75 {
		t.Errorf("very different masses matched too well: %g", far)
	}
}

func TestOverlapFindsShift(t *testing.T) {
	w := mustTemplate(t, 30, 28)
	shift := 100
	plus := make([]float64, w.Len()+shift)
	cross := make([]float64, w.Len()+shift)
	copy(plus[shift:], w.Plus)
	copy(cross[shift:], w.Cross)

	m, lag := Overlap(plus, cross, w.Plus, w.Cross)
	if m < 0.99 {
		t.Errorf("shifted overlap = %g", m)
	}
	if lag != shift {
		t.Errorf("lag = %d, want %d", lag, shift)
	}
}

func TestOverlapDegenerate(t *testing.T) {
	if m, _ := Overlap(nil, nil, []float64{1}, []float64{0}); m != 0 {
		t.Errorf("empty input gave %g", m)
	}
	if m, _ := Overlap([]float64{0, 0}, []float64{0, 0}, []float64{1}, []float64{0}); m != 0 {
		t.Errorf("silent input gave %g", m)
	}
}

func TestVerdictBands(t *testing.T) {
	tests := []struct {
		match float64
		want  string
	}{
		{0, "Calculating Match..."},
		{0.1, "Different chirps, try again!"},
		{0.25, "Different chirps, try again!"},
		{0.3, "Slight overlap, try again!"},
		{0.5, "Slight overlap, try again!"},
		{0.6, "Getting closer... try again!"},
		{0.8, "Almost there... try again!"},
		{0.994, "Almost there... try again!"},
		{0.996, "Perfect!"},
		{1, "Perfect!"},
	}
	for _, tt := range tests {
		if got := Verdict(tt.match); got.Message != tt.want {
			t.Errorf("Verdict(%g) = %q, want %q", tt.match, got.Message, tt.want)
		}
	}
	if p := Verdict(0.456).Percent(); p != 46 {
		t.Errorf("Percent = %d, want 46", p)
	}
}

func TestLookupEvent(t *testing.T) {
	e, err := LookupEvent("gw150914")
	if err != nil {
		t.Fatal(err)
	}
	if e.Name != "GW150914" || e.M1 < e.M2 {
		t.Errorf("unexpected event %+v", e)
	}
	if _, err := LookupEvent("GW000000"); err == nil {
		t.Error("expected error for unknown event")
	}
	names := EventNames()
	if len(names) != len(Events) || names[0] != "GW150914" {
		t.Errorf("EventNames = %v", names)
	}
}
