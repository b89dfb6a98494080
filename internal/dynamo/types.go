package dynamo

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Projected is a viewer-frame vector laid out as (depth, x, y).
type Projected mgl64.Vec3

func (p Projected) Depth() float64 { return p[0] }
func (p Projected) X() float64     { return p[1] }
func (p Projected) Y() float64     { return p[2] }

// Vec returns the underlying mathgl vector.
func (p Projected) Vec() mgl64.Vec3 { return mgl64.Vec3(p) }

// Pair holds both projected bodies for a single frame.
type Pair struct {
	Primary   Projected
	Secondary Projected
}

// State is a snapshot of an orbit after its latest step.
type State struct {
	Frame  int
	Time   float64
	Phase1 float64
	Phase2 float64
	Omega  float64
	Radius float64
}

// Kinematics is implemented by every orbit stepper.
type Kinematics interface {
	// Step advances the orbital phase by one frame without recording it.
	Step() error
	// Project returns the current positions rotated into the viewer frame.
	Project() Pair
	// Evolve steps, projects and records n frames.
	Evolve(n int) error
	CurrentState() State
	Frames() int
	// Frame returns recorded frame i; i must be in [0, Frames()).
	Frame(i int) Pair
}

// Masses is implemented by kinematics that expose their body masses.
type Masses interface {
	Masses() (m1, m2 float64)
}

// Termination describes why a terminating stepper stopped.
type Termination int

const (
	Running Termination = iota
	Merged
	Breakdown
)

func (t Termination) String() string {
	switch t {
	case Running:
		return "inspiraling"
	case Merged:
		return "merged"
	case Breakdown:
		return "breakdown"
	default:
		return "unknown"
	}
}
