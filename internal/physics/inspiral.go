package physics

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/chirpsim/internal/dynamo"
)

// InspiralParams configures an [InspiralingBinary].
type InspiralParams struct {
	M1, M2             float64 // solar masses
	Alpha, Beta, Gamma float64 // degrees
	Omega0             float64 // initial orbital angular frequency
}

func DefaultInspiralParams() InspiralParams {
	return InspiralParams{M1: 10, M2: 10, Alpha: 50, Beta: 30, Gamma: 0, Omega0: 1}
}

func (p InspiralParams) Validate() error {
	if err := dynamo.Positive("m1", p.M1); err != nil {
		return err
	}
	if err := dynamo.Positive("m2", p.M2); err != nil {
		return err
	}
	return dynamo.Positive("omega0", p.Omega0)
}

func (p InspiralParams) Orientation() Orientation {
	return Orientation{Alpha: p.Alpha, Beta: p.Beta, Gamma: p.Gamma}
}

// InspiralingBinary shrinks a circular orbit along the leading-order chirp
// law until the separation reaches MergerSeparation.
//
// Times, frequencies, radii and projected positions are recorded in lockstep;
// frame 0 is the configuration at construction.
type InspiralingBinary struct {
	params   InspiralParams
	rot      mgl64.Mat3
	mass     float64
	mc       float64
	tc       float64
	rmax     float64
	omegaMax float64
	dt       float64

	t      float64
	phase1 float64
	omega  float64
	radius float64

	state dynamo.Termination
	cause error

	times     []float64
	omegas    []float64
	radii     []float64
	primary   []dynamo.Projected
	secondary []dynamo.Projected
}

// NewInspiralingBinary derives the chirp constants from p and records the
// initial frame.
func NewInspiralingBinary(p InspiralParams, opts ...Option) (*InspiralingBinary, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("new inspiraling binary: %w", err)
	}
	o := applyOptions(p.Gamma, opts)

	ib := &InspiralingBinary{
		params:   p,
		rot:      p.Orientation().Matrix(),
		mass:     p.M1 + p.M2,
		mc:       ChirpMass(p.M1, p.M2),
		rmax:     MergerSeparation(p.M1, p.M2),
		omegaMax: MergerOmega(p.M1, p.M2),
		phase1:   WrapPhase(o.initialPhase),
	}
	ib.tc = CoalescenceTime(ib.mc, p.Omega0)

	ib.dt = 1 / ib.omegaMax
	if o.timeStep != 0 {
		if err := dynamo.Positive("time_step", o.timeStep); err != nil {
			return nil, fmt.Errorf("new inspiraling binary: %w", err)
		}
		ib.dt = o.timeStep
	}

	ib.omega = ChirpOmega(ib.mc, ib.tc, 0)
	ib.radius = KeplerRadius(ib.mass, ib.omega)
	if ib.radius <= ib.rmax {
		ib.state = dynamo.Merged
	}

	capacity := 1024
	if est := ib.tc / ib.dt; est > 0 && est < 1<<20 {
		capacity = int(est) + 2
	}
	ib.times = make([]float64, 0, capacity)
	ib.omegas = make([]float64, 0, capacity)
	ib.radii = make([]float64, 0, capacity)
	ib.primary = make([]dynamo.Projected, 0, capacity)
	ib.secondary = make([]dynamo.Projected, 0, capacity)
	ib.record()

	return ib, nil
}

func (ib *InspiralingBinary) Params() InspiralParams    { return ib.params }
func (ib *InspiralingBinary) Masses() (m1, m2 float64)  { return ib.params.M1, ib.params.M2 }
func (ib *InspiralingBinary) ChirpMass() float64        { return ib.mc }
func (ib *InspiralingBinary) CoalescenceTime() float64  { return ib.tc }
func (ib *InspiralingBinary) MergerSeparation() float64 { return ib.rmax }
func (ib *InspiralingBinary) MergerOmega() float64      { return ib.omegaMax }
func (ib *InspiralingBinary) TimeStep() float64         { return ib.dt }
func (ib *InspiralingBinary) Omega() float64            { return ib.omega }
func (ib *InspiralingBinary) Radius() float64           { return ib.radius }
func (ib *InspiralingBinary) Phase1() float64           { return ib.phase1 }
func (ib *InspiralingBinary) Phase2() float64           { return ib.phase1 + math.Pi }
func (ib *InspiralingBinary) Matrix() mgl64.Mat3        { return ib.rot }
func (ib *InspiralingBinary) Frames() int               { return len(ib.primary) }

// Termination reports the state machine position.
func (ib *InspiralingBinary) Termination() dynamo.Termination { return ib.state }

// Err returns the numeric-domain cause after a breakdown, nil otherwise.
func (ib *InspiralingBinary) Err() error { return ib.cause }

func (ib *InspiralingBinary) Frame(i int) dynamo.Pair {
	return dynamo.Pair{Primary: ib.primary[i], Secondary: ib.secondary[i]}
}

// Times returns a copy of the elapsed time of every recorded frame.
func (ib *InspiralingBinary) Times() []float64 { return append([]float64(nil), ib.times...) }

// Radii returns a copy of the separation of every recorded frame.
func (ib *InspiralingBinary) Radii() []float64 { return append([]float64(nil), ib.radii...) }

// Omegas returns a copy of the orbital frequency of every recorded frame.
func (ib *InspiralingBinary) Omegas() []float64 { return append([]float64(nil), ib.omegas...) }

func (ib *InspiralingBinary) Project() dynamo.Pair {
	p1, p2 := BodyPositions(ib.radius, ib.params.M1, ib.params.M2, ib.phase1)
	return ProjectPair(ib.rot, p1, p2)
}

// Step advances time by one time step and the phase with the frequency at
// the new time. It returns ErrMerged once the binary is terminal, including
// when this step left the real domain of the frequency law.
func (ib *InspiralingBinary) Step() error {
	if ib.state != dynamo.Running {
		return &dynamo.StepError{Frame: len(ib.times) - 1, Time: ib.t, Wrapped: dynamo.ErrMerged}
	}
	if ib.radius <= ib.rmax {
		ib.state = dynamo.Merged
		return &dynamo.StepError{Frame: len(ib.times) - 1, Time: ib.t, Wrapped: dynamo.ErrMerged}
	}

	t := ib.t + ib.dt
	omega := ChirpOmega(ib.mc, ib.tc, t)
	radius := KeplerRadius(ib.mass, omega)
	if ib.tc-t <= 0 || !finite(omega) || !finite(radius) {
		ib.state = dynamo.Breakdown
		ib.cause = &dynamo.StepError{Frame: len(ib.times), Time: t, Wrapped: dynamo.ErrNumericDomain}
		return &dynamo.StepError{Frame: len(ib.times) - 1, Time: ib.t, Wrapped: dynamo.ErrMerged}
	}

	ib.t = t
	ib.omega = omega
	ib.radius = radius
	ib.phase1 = WrapPhase(ib.phase1 + twoPi*omega*ib.dt)
	if radius <= ib.rmax {
		ib.state = dynamo.Merged
	}
	return nil
}

// Evolve records up to n further frames. It stops early with ErrMerged when
// the binary terminates first.
func (ib *InspiralingBinary) Evolve(n int) error {
	if n < 0 {
		return &dynamo.ParameterError{Name: "n_steps", Value: float64(n), Rule: "must be >= 0"}
	}
	for i := 0; i < n; i++ {
		if err := ib.Step(); err != nil {
			return err
		}
		ib.record()
	}
	return nil
}

// Inspiral steps until the merger boundary or the numeric-domain guard
// stops the orbit, and returns how it ended.
func (ib *InspiralingBinary) Inspiral() dynamo.Termination {
	for ib.state == dynamo.Running {
		if ib.Step() != nil {
			break
		}
		ib.record()
	}
	return ib.state
}

func (ib *InspiralingBinary) CurrentState() dynamo.State {
	return dynamo.State{
		Frame:  len(ib.times) - 1,
		Time:   ib.t,
		Phase1: ib.phase1,
		Phase2: ib.Phase2(),
		Omega:  ib.omega,
		Radius: ib.radius,
	}
}

func (ib *InspiralingBinary) record() {
	pair := ib.Project()
	ib.times = append(ib.times, ib.t)
	ib.omegas = append(ib.omegas, ib.omega)
	ib.radii = append(ib.radii, ib.radius)
	ib.primary = append(ib.primary, pair.Primary)
	ib.secondary = append(ib.secondary, pair.Secondary)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
