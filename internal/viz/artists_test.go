package viz

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/chirpsim/internal/dynamo"
	"github.com/san-kum/chirpsim/internal/physics"
)

// fixed is a kinematics stub replaying a fixed list of pairs.
type fixed struct {
	pairs  []dynamo.Pair
	m1, m2 float64
}

func (f *fixed) Step() error                { return nil }
func (f *fixed) Project() dynamo.Pair       { return f.pairs[len(f.pairs)-1] }
func (f *fixed) Evolve(n int) error         { return nil }
func (f *fixed) CurrentState() dynamo.State { return dynamo.State{Frame: len(f.pairs) - 1} }
func (f *fixed) Frames() int                { return len(f.pairs) }
func (f *fixed) Frame(i int) dynamo.Pair    { return f.pairs[i] }
func (f *fixed) Masses() (float64, float64) { return f.m1, f.m2 }

func TestBinaryArtistDrawOrder(t *testing.T) {
	k := &fixed{
		m1: 30, m2: 10,
		pairs: []dynamo.Pair{
			{Primary: dynamo.Projected{0.5, 1, 2}, Secondary: dynamo.Projected{-0.5, -1, -2}},
			{Primary: dynamo.Projected{-0.5, 1, 2}, Secondary: dynamo.Projected{0.5, -1, -2}},
			{Primary: dynamo.Projected{0, 1, 0}, Secondary: dynamo.Projected{0, -1, 0}},
		},
	}
	a, err := NewBinaryArtist(k, 0.01)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		frame int
		front Body
	}{
		{0, Primary},
		{1, Secondary},
		{2, Secondary},
	}
	for _, tt := range tests {
		f := a.Frame(tt.frame)
		if len(f.Disks) != 2 {
			t.Fatalf("frame %d: expected 2 disks, got %d", tt.frame, len(f.Disks))
		}
		back, front := f.Disks[0], f.Disks[1]
		if front.Body != tt.front {
			t.Errorf("frame %d: front body = %d, want %d", tt.frame, front.Body, tt.front)
		}
		if back.Z != 1 || front.Z != 2 {
			t.Errorf("frame %d: z-order = (%d, %d), want (1, 2)", tt.frame, back.Z, front.Z)
		}
		if front.Depth < back.Depth {
			t.Errorf("frame %d: nearer body drawn first", tt.frame)
		}
	}

	f := a.Frame(0)
	if f.Disks[1].X != 1 || f.Disks[1].Y != 2 {
		t.Errorf("primary centre = (%g, %g), want (1, 2)", f.Disks[1].X, f.Disks[1].Y)
	}
	if math.Abs(f.Disks[1].Radius-0.3) > 1e-12 || math.Abs(f.Disks[0].Radius-0.1) > 1e-12 {
		t.Errorf("radii = %g, %g; want scale*mass", f.Disks[1].Radius, f.Disks[0].Radius)
	}
}

func TestBinaryArtistFollowsBinary(t *testing.T) {
	b, err := physics.NewBinary(physics.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Evolve(60); err != nil {
		t.Fatal(err)
	}
	a, err := NewBinaryArtist(b, 1.0/100)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < a.Frames(); i++ {
		f := a.Frame(i)
		if f.Index != i || f.Disks[0].Depth > f.Disks[1].Depth {
			t.Fatalf("frame %d out of order: %+v", i, f)
		}
	}
}

func TestNewBinaryArtistRejectsBadScale(t *testing.T) {
	k := &fixed{m1: 1, m2: 1, pairs: []dynamo.Pair{{}}}
	if _, err := NewBinaryArtist(k, 0); !errors.Is(err, dynamo.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestRingdown(t *testing.T) {
	r, err := NewRingdown(58, 0.3, 20, 0.01)
	if err != nil {
		t.Fatal(err)
	}

	if got := r.Amplitude(0); got != 0.3 {
		t.Errorf("Amplitude(0) = %g, want a0", got)
	}
	// cos(4π·i/τ) is 1 again at i = τ/2.
	if got, want := r.Amplitude(10), 0.3*math.Exp(-0.5); math.Abs(got-want) > 1e-12 {
		t.Errorf("Amplitude(10) = %g, want %g", got, want)
	}

	prev := math.Inf(1)
	for i := 0; i <= 200; i += 10 {
		a := math.Abs(r.Amplitude(i))
		if a > prev+1e-15 {
			t.Errorf("envelope grew at frame %d", i)
		}
		prev = a
	}

	h, w := r.HeightWidth(0)
	if math.Abs(h-0.58*1.3) > 1e-12 || math.Abs(w-0.58*0.7) > 1e-12 {
		t.Errorf("HeightWidth(0) = (%g, %g)", h, w)
	}
	for i := 0; i < 100; i++ {
		h, w := r.HeightWidth(i)
		if math.Abs(h+w-2*0.58) > 1e-12 {
			t.Fatalf("frame %d: height + width = %g, want 2·s·M", i, h+w)
		}
	}

	f := r.Frame(3)
	if len(f.Ellipses) != 1 || len(f.Disks) != 0 || f.Index != 3 {
		t.Errorf("unexpected ringdown frame %+v", f)
	}
}

func TestDefaultRingdownFrameFromValue(t *testing.T) {
	f := DefaultRingdown(20, 0.01).Frame(5)
	if len(f.Ellipses) != 1 || f.Index != 5 {
		t.Fatalf("unexpected ringdown frame %+v", f)
	}
	h, w := DefaultRingdown(20, 0.01).HeightWidth(5)
	if f.Ellipses[0].Height != h || f.Ellipses[0].Width != w {
		t.Errorf("frame ellipse %+v, want height %g width %g", f.Ellipses[0], h, w)
	}
}

func TestNewRingdownInvalid(t *testing.T) {
	tests := []struct {
		name              string
		m, a0, tau, scale float64
	}{
		{"zero mass", 0, 0.3, 20, 1},
		{"zero tau", 10, 0.3, 0, 1},
		{"negative scale", 10, 0.3, 20, -1},
		{"amplitude too large", 10, 1, 20, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRingdown(tt.m, tt.a0, tt.tau, tt.scale); !errors.Is(err, dynamo.ErrInvalidParameter) {
				t.Errorf("expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}
