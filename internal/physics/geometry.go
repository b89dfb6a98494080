package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/chirpsim/internal/dynamo"
)

// Orientation holds the three viewing angles in degrees.
//
//	Alpha: rotation about the orbital z-axis
//	Beta:  inclination about the resulting x-axis
//	Gamma: roll about the final z-axis
type Orientation struct {
	Alpha, Beta, Gamma float64
}

// D returns the rotation by Alpha about z.
func (o Orientation) D() mgl64.Mat3 { return rotZ(o.Alpha) }

// C returns the rotation by Beta about x.
func (o Orientation) C() mgl64.Mat3 {
	s, c := math.Sincos(mgl64.DegToRad(o.Beta))
	return mgl64.Mat3FromRows(
		mgl64.Vec3{1, 0, 0},
		mgl64.Vec3{0, c, s},
		mgl64.Vec3{0, -s, c},
	)
}

// B returns the rotation by Gamma about z.
func (o Orientation) B() mgl64.Mat3 { return rotZ(o.Gamma) }

// Matrix composes A = B·C·D; gamma is applied last.
func (o Orientation) Matrix() mgl64.Mat3 {
	return o.B().Mul3(o.C()).Mul3(o.D())
}

func rotZ(deg float64) mgl64.Mat3 {
	s, c := math.Sincos(mgl64.DegToRad(deg))
	return mgl64.Mat3FromRows(
		mgl64.Vec3{c, s, 0},
		mgl64.Vec3{-s, c, 0},
		mgl64.Vec3{0, 0, 1},
	)
}

// Project rotates a body-plane vector into the viewer frame.
func Project(a mgl64.Mat3, v mgl64.Vec3) dynamo.Projected {
	return dynamo.Projected(a.Mul3x1(v))
}

// Unproject inverts [Project]; A is orthogonal so its inverse is Aᵀ.
func Unproject(a mgl64.Mat3, p dynamo.Projected) mgl64.Vec3 {
	return a.Transpose().Mul3x1(p.Vec())
}

// MassFractions returns the orbital-radius weights m2/(m1+m2) and
// m1/(m1+m2). The smaller weight is taken as the complement of the larger
// one so the two always sum to exactly 1.
func MassFractions(m1, m2 float64) (f1, f2 float64) {
	total := m1 + m2
	if m2 >= m1 {
		f1 = m2 / total
		return f1, 1 - f1
	}
	f2 = m1 / total
	return 1 - f2, f2
}

// BodyPositions returns both bodies in the orbital plane for separation r
// and primary phase phase1. The secondary sits at phase1 + π.
func BodyPositions(r, m1, m2, phase1 float64) (p1, p2 mgl64.Vec3) {
	f1, f2 := MassFractions(m1, m2)
	s1, c1 := math.Sincos(phase1)
	s2, c2 := math.Sincos(phase1 + math.Pi)
	p1 = mgl64.Vec3{c1, s1, 0}.Mul(r * f1)
	p2 = mgl64.Vec3{c2, s2, 0}.Mul(r * f2)
	return p1, p2
}

// ProjectPair projects both body-plane positions with A.
func ProjectPair(a mgl64.Mat3, p1, p2 mgl64.Vec3) dynamo.Pair {
	return dynamo.Pair{Primary: Project(a, p1), Secondary: Project(a, p2)}
}

// WrapPhase reduces an angle to [0, 2π).
func WrapPhase(phase float64) float64 {
	phase = math.Mod(phase, twoPi)
	if phase < 0 {
		phase += twoPi
	}
	if phase >= twoPi {
		return 0
	}
	return phase
}

// PhaseDistance is the absolute angular distance between a and b in [0, π].
func PhaseDistance(a, b float64) float64 {
	d := WrapPhase(a - b)
	if d > math.Pi {
		d = twoPi - d
	}
	return d
}
