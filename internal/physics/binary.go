package physics

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/chirpsim/internal/dynamo"
)

// Params configures a constant-rate [Binary].
type Params struct {
	M1, M2    float64 // masses
	Alpha     float64 // degrees
	Beta      float64 // degrees
	Gamma     float64 // degrees; also seeds the initial phase
	FrameRate float64 // frames per unit time
	Omega     float64 // rotations per unit time
}

// DefaultParams returns an equal-mass binary turning once per second at 30 fps.
func DefaultParams() Params {
	return Params{
		M1:        10,
		M2:        10,
		Alpha:     50,
		Beta:      30,
		Gamma:     0,
		FrameRate: 30,
		Omega:     1,
	}
}

func (p Params) Validate() error {
	for _, check := range []struct {
		name  string
		value float64
	}{
		{"m1", p.M1},
		{"m2", p.M2},
		{"frame_rate", p.FrameRate},
		{"omega", p.Omega},
	} {
		if err := dynamo.Positive(check.name, check.value); err != nil {
			return err
		}
	}
	return nil
}

func (p Params) Orientation() Orientation {
	return Orientation{Alpha: p.Alpha, Beta: p.Beta, Gamma: p.Gamma}
}

// Option customises a kinematics model at construction.
type Option func(*options)

type options struct {
	initialPhase float64
	timeStep     float64
}

// WithInitialPhase seeds the primary's orbital phase in radians instead of
// taking it from the Gamma roll angle.
func WithInitialPhase(phase float64) Option {
	return func(o *options) { o.initialPhase = phase }
}

// WithTimeStep overrides the inspiral time step (default 1/ωmax).
// It has no effect on a constant-rate Binary.
func WithTimeStep(dt float64) Option {
	return func(o *options) { o.timeStep = dt }
}

func applyOptions(gamma float64, opts []Option) options {
	o := options{initialPhase: mgl64.DegToRad(gamma)}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Binary is two point masses on a circular orbit of unit separation,
// turning at a constant rate.
type Binary struct {
	params    Params
	rot       mgl64.Mat3
	phase1    float64
	steps     int
	primary   []dynamo.Projected
	secondary []dynamo.Projected
}

// NewBinary validates p and returns a binary with an empty frame history.
func NewBinary(p Params, opts ...Option) (*Binary, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("new binary: %w", err)
	}
	o := applyOptions(p.Gamma, opts)
	return &Binary{
		params:    p,
		rot:       p.Orientation().Matrix(),
		phase1:    WrapPhase(o.initialPhase),
		primary:   make([]dynamo.Projected, 0, 64),
		secondary: make([]dynamo.Projected, 0, 64),
	}, nil
}

func (b *Binary) Params() Params                { return b.params }
func (b *Binary) Masses() (m1, m2 float64)      { return b.params.M1, b.params.M2 }
func (b *Binary) Radius() float64               { return 1 }
func (b *Binary) Omega() float64                { return b.params.Omega }
func (b *Binary) Phase1() float64               { return b.phase1 }
func (b *Binary) Phase2() float64               { return b.phase1 + math.Pi }
func (b *Binary) Matrix() mgl64.Mat3            { return b.rot }
func (b *Binary) Frames() int                   { return len(b.primary) }
func (b *Binary) Frame(i int) dynamo.Pair       { return dynamo.Pair{Primary: b.primary[i], Secondary: b.secondary[i]} }
func (b *Binary) PositionPrimary() mgl64.Vec3   { p1, _ := b.positions(); return p1 }
func (b *Binary) PositionSecondary() mgl64.Vec3 { _, p2 := b.positions(); return p2 }

func (b *Binary) positions() (mgl64.Vec3, mgl64.Vec3) {
	return BodyPositions(b.Radius(), b.params.M1, b.params.M2, b.phase1)
}

// Step advances the phase by 2π·ω/frameRate.
func (b *Binary) Step() error {
	b.phase1 = WrapPhase(b.phase1 + twoPi*b.params.Omega/b.params.FrameRate)
	b.steps++
	return nil
}

func (b *Binary) Project() dynamo.Pair {
	p1, p2 := b.positions()
	return ProjectPair(b.rot, p1, p2)
}

// Evolve steps, projects and appends n frames.
func (b *Binary) Evolve(n int) error {
	if n < 0 {
		return &dynamo.ParameterError{Name: "n_steps", Value: float64(n), Rule: "must be >= 0"}
	}
	for i := 0; i < n; i++ {
		_ = b.Step()
		pair := b.Project()
		b.primary = append(b.primary, pair.Primary)
		b.secondary = append(b.secondary, pair.Secondary)
	}
	return nil
}

func (b *Binary) CurrentState() dynamo.State {
	return dynamo.State{
		Frame:  len(b.primary) - 1,
		Time:   float64(b.steps) / b.params.FrameRate,
		Phase1: b.phase1,
		Phase2: b.Phase2(),
		Omega:  b.params.Omega,
		Radius: 1,
	}
}
