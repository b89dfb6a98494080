package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/chirpsim/internal/dynamo"
)

func TestInspiralGW150914TerminatesAtMerger(t *testing.T) {
	ib, err := NewInspiralingBinary(InspiralParams{M1: 30, M2: 28, Alpha: 50, Beta: 30, Omega0: 1})
	if err != nil {
		t.Fatalf("new inspiral: %v", err)
	}

	end := ib.Inspiral()
	if end == dynamo.Running {
		t.Fatal("inspiral did not terminate")
	}

	radii := ib.Radii()
	times := ib.Times()
	if len(radii) != ib.Frames() || len(times) != ib.Frames() || len(ib.Omegas()) != ib.Frames() {
		t.Fatalf("timeline out of lockstep: %d radii, %d times, %d frames", len(radii), len(times), ib.Frames())
	}
	if ib.Frames() < 2 {
		t.Fatalf("expected many frames, got %d", ib.Frames())
	}

	for i := 1; i < len(radii); i++ {
		if radii[i] > radii[i-1] {
			t.Fatalf("radius increased at frame %d: %g -> %g", i, radii[i-1], radii[i])
		}
		if times[i] <= times[i-1] {
			t.Fatalf("time not increasing at frame %d", i)
		}
	}

	last := radii[len(radii)-1]
	switch end {
	case dynamo.Merged:
		if last > ib.MergerSeparation() {
			t.Errorf("merged with r = %g > rmax = %g", last, ib.MergerSeparation())
		}
	case dynamo.Breakdown:
		if !errors.Is(ib.Err(), dynamo.ErrNumericDomain) {
			t.Errorf("breakdown without numeric-domain cause: %v", ib.Err())
		}
	}

	for i := 0; i < ib.Frames(); i++ {
		p := ib.Frame(i)
		for _, v := range []float64{p.Primary.Depth(), p.Primary.X(), p.Primary.Y(), p.Secondary.Depth(), p.Secondary.X(), p.Secondary.Y()} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("frame %d contains non-finite coordinate", i)
			}
		}
	}
}

func TestInspiralInitialFrame(t *testing.T) {
	p := InspiralParams{M1: 30, M2: 28, Alpha: 50, Beta: 30, Gamma: 95, Omega0: 20}
	ib, err := NewInspiralingBinary(p)
	if err != nil {
		t.Fatal(err)
	}

	if ib.Frames() != 1 {
		t.Fatalf("expected initial frame, got %d frames", ib.Frames())
	}
	if math.Abs(ib.Omega()-p.Omega0)/p.Omega0 > 1e-9 {
		t.Errorf("initial omega = %g, want %g", ib.Omega(), p.Omega0)
	}
	if want := KeplerRadius(58, p.Omega0); math.Abs(ib.Radius()-want)/want > 1e-9 {
		t.Errorf("initial radius = %g, want %g", ib.Radius(), want)
	}
	if math.Abs(ib.TimeStep()-1/ib.MergerOmega()) > 1e-18 {
		t.Errorf("default time step = %g, want 1/omegamax", ib.TimeStep())
	}
	if ib.Times()[0] != 0 {
		t.Errorf("first frame time = %g", ib.Times()[0])
	}
}

func TestInspiralEvolveAndTermination(t *testing.T) {
	ib, err := NewInspiralingBinary(InspiralParams{M1: 30, M2: 28, Alpha: 50, Beta: 30, Omega0: 20})
	if err != nil {
		t.Fatal(err)
	}

	if err := ib.Evolve(5); err != nil {
		t.Fatalf("evolve: %v", err)
	}
	if ib.Frames() != 6 {
		t.Errorf("expected 6 frames, got %d", ib.Frames())
	}
	if ib.Omega() <= 20 {
		t.Errorf("omega should chirp upwards, got %g", ib.Omega())
	}

	err = ib.Evolve(1 << 30)
	if !errors.Is(err, dynamo.ErrMerged) {
		t.Fatalf("expected ErrMerged after running out, got %v", err)
	}
	frames := ib.Frames()

	if err := ib.Step(); !errors.Is(err, dynamo.ErrMerged) {
		t.Errorf("Step after termination = %v, want ErrMerged", err)
	}
	if ib.Inspiral() == dynamo.Running {
		t.Error("terminal state must not be left")
	}
	if ib.Frames() != frames {
		t.Errorf("terminal binary grew from %d to %d frames", frames, ib.Frames())
	}
}

func TestInspiralAlreadyMerged(t *testing.T) {
	omega := MergerOmega(10, 10) * 2
	ib, err := NewInspiralingBinary(InspiralParams{M1: 10, M2: 10, Omega0: omega})
	if err != nil {
		t.Fatal(err)
	}
	if ib.Termination() != dynamo.Merged {
		t.Errorf("expected merged at construction, got %s", ib.Termination())
	}
	if ib.Inspiral(); ib.Frames() != 1 {
		t.Errorf("expected only the initial frame, got %d", ib.Frames())
	}
}

func TestInspiralBreakdownGuard(t *testing.T) {
	// A time step far larger than tc jumps straight past coalescence.
	ib, err := NewInspiralingBinary(InspiralParams{M1: 30, M2: 28, Omega0: 1}, WithTimeStep(1e6))
	if err != nil {
		t.Fatal(err)
	}

	if end := ib.Inspiral(); end != dynamo.Breakdown {
		t.Fatalf("expected breakdown, got %s", end)
	}
	if !errors.Is(ib.Err(), dynamo.ErrNumericDomain) {
		t.Errorf("expected ErrNumericDomain cause, got %v", ib.Err())
	}
	if ib.Frames() != 1 || len(ib.Times()) != 1 {
		t.Errorf("breakdown must not record a frame, got %d frames", ib.Frames())
	}
	if math.IsNaN(ib.Radius()) || math.IsNaN(ib.Phase1()) {
		t.Error("breakdown leaked NaN into the state")
	}
}

func TestNewInspiralingBinaryInvalid(t *testing.T) {
	tests := []struct {
		name string
		p    InspiralParams
		opts []Option
	}{
		{"zero m1", InspiralParams{M1: 0, M2: 10, Omega0: 1}, nil},
		{"negative m2", InspiralParams{M1: 10, M2: -1, Omega0: 1}, nil},
		{"zero omega0", InspiralParams{M1: 10, M2: 10, Omega0: 0}, nil},
		{"negative time step", InspiralParams{M1: 10, M2: 10, Omega0: 1}, []Option{WithTimeStep(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ib, err := NewInspiralingBinary(tt.p, tt.opts...)
			if !errors.Is(err, dynamo.ErrInvalidParameter) {
				t.Fatalf("expected ErrInvalidParameter, got %v", err)
			}
			if ib != nil {
				t.Error("expected nil binary")
			}
		})
	}
}
