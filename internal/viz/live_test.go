package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/chirpsim/internal/physics"
)

func newOrbitModel(t *testing.T, opts LiveOptions) Model {
	t.Helper()
	b, err := physics.NewBinary(physics.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	a, err := NewBinaryArtist(b, 0.01)
	if err != nil {
		t.Fatal(err)
	}
	return NewModel(b, a, opts)
}

func tick(m Model, n int) Model {
	for i := 0; i < n; i++ {
		next, _ := m.Update(TickMsg(time.Now()))
		m = next.(Model)
	}
	return m
}

func key(m Model, k string) Model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
	return next.(Model)
}

func TestLiveModelAdvancesAndPauses(t *testing.T) {
	m := newOrbitModel(t, LiveOptions{Title: "orbit", StepsPerTick: 2})
	if m.kin.Frames() != 1 {
		t.Fatalf("expected the initial frame, got %d", m.kin.Frames())
	}

	m = tick(m, 5)
	if m.kin.Frames() != 11 {
		t.Errorf("expected 11 frames after 5 ticks, got %d", m.kin.Frames())
	}

	m = key(m, " ")
	m = tick(m, 5)
	if m.kin.Frames() != 11 {
		t.Errorf("paused model kept stepping: %d frames", m.kin.Frames())
	}

	view := m.View()
	if !strings.Contains(view, "ORBIT") || !strings.Contains(view, "PAUSED") {
		t.Errorf("view missing title or status:\n%s", view)
	}
}

func TestLiveModelRingdownAfterMerger(t *testing.T) {
	ib, err := physics.NewInspiralingBinary(physics.InspiralParams{M1: 30, M2: 28, Omega0: 100})
	if err != nil {
		t.Fatal(err)
	}
	a, err := NewBinaryArtist(ib, 1)
	if err != nil {
		t.Fatal(err)
	}
	rd := DefaultRingdown(58, 1)
	m := NewModel(ib, a, LiveOptions{StepsPerTick: 1000, Ringdown: &rd, RingdownTicks: 3})

	m = tick(m, 2)
	if m.phase != phaseRingdown {
		t.Fatalf("expected ringdown phase, got %d", m.phase)
	}
	m = tick(m, 3)
	if m.phase != phaseDone {
		t.Errorf("expected done after ringdown ticks, got %d", m.phase)
	}
	if f := m.current(); len(f.Ellipses) != 1 {
		t.Errorf("last frame should be the remnant, got %+v", f)
	}
	if !strings.Contains(m.View(), "MERGED") {
		t.Error("view should report the merger")
	}
}

func TestLiveModelRecording(t *testing.T) {
	var got []RenderFrame
	m := newOrbitModel(t, LiveOptions{Recorder: func(frames []RenderFrame) error {
		got = frames
		return nil
	}})

	m = key(m, "g")
	m = tick(m, 4)
	m = key(m, "g")

	if len(got) != 4 {
		t.Fatalf("recorder got %d frames, want 4", len(got))
	}
	if m.recording || m.captured != nil {
		t.Error("recording state not reset")
	}
}

func TestLiveModelScrubAndTheme(t *testing.T) {
	m := newOrbitModel(t, LiveOptions{})
	m = tick(m, 10)

	m = key(m, "[")
	if m.playHead != len(m.history)-2 {
		t.Errorf("playHead = %d, want %d", m.playHead, len(m.history)-2)
	}
	m = key(m, "]")
	m = key(m, "]")
	if m.playHead != -1 {
		t.Errorf("scrubbing past the end should follow live, got %d", m.playHead)
	}

	first := m.opts.Theme.Name
	m = key(m, "t")
	if m.opts.Theme.Name == first {
		t.Error("theme did not cycle")
	}
}
