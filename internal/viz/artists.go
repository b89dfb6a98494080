package viz

import (
	"fmt"
	"math"

	"github.com/san-kum/chirpsim/internal/dynamo"
)

// Body identifies which member of the binary a disk belongs to.
type Body int

const (
	Primary Body = iota + 1
	Secondary
)

// Disk is one body as it should appear on screen.
type Disk struct {
	Body   Body
	X, Y   float64
	Radius float64
	Depth  float64
	Z      int // 1 is drawn first, 2 on top
}

// Ellipse is the remnant drawn during ringdown, centred on (X, Y).
type Ellipse struct {
	X, Y          float64
	Width, Height float64
}

// RenderFrame is everything that has to be drawn for a single frame, in
// back-to-front order.
type RenderFrame struct {
	Index    int
	Disks    []Disk
	Ellipses []Ellipse
}

// BinaryArtist turns recorded kinematics frames into disks.
type BinaryArtist struct {
	Kinematics dynamo.Kinematics
	M1, M2     float64
	Scale      float64 // disk radius per unit mass
}

// NewBinaryArtist takes the masses from k when it exposes them.
func NewBinaryArtist(k dynamo.Kinematics, scale float64) (*BinaryArtist, error) {
	ms, ok := k.(dynamo.Masses)
	if !ok {
		return nil, fmt.Errorf("viz: %T does not expose its masses", k)
	}
	if err := dynamo.Positive("visual_scale", scale); err != nil {
		return nil, err
	}
	m1, m2 := ms.Masses()
	return &BinaryArtist{Kinematics: k, M1: m1, M2: m2, Scale: scale}, nil
}

func (a *BinaryArtist) Frames() int { return a.Kinematics.Frames() }

// Frame returns the disks for recorded frame i. The body with the greater
// depth is nearer the viewer and comes last; on equal depth the secondary
// is on top.
func (a *BinaryArtist) Frame(i int) RenderFrame {
	pair := a.Kinematics.Frame(i)
	d1 := Disk{
		Body:   Primary,
		X:      pair.Primary.X(),
		Y:      pair.Primary.Y(),
		Radius: a.Scale * a.M1,
		Depth:  pair.Primary.Depth(),
	}
	d2 := Disk{
		Body:   Secondary,
		X:      pair.Secondary.X(),
		Y:      pair.Secondary.Y(),
		Radius: a.Scale * a.M2,
		Depth:  pair.Secondary.Depth(),
	}

	if d1.Depth > d2.Depth {
		d2.Z, d1.Z = 1, 2
		return RenderFrame{Index: i, Disks: []Disk{d2, d1}}
	}
	d1.Z, d2.Z = 1, 2
	return RenderFrame{Index: i, Disks: []Disk{d1, d2}}
}

// Ringdown is the damped oscillation of the merged remnant.
type Ringdown struct {
	M          float64
	Amplitude0 float64
	Tau        float64 // e-folding time in frames
	Scale      float64
}

// DefaultRingdown matches the remnant of a binary of total mass m.
func DefaultRingdown(m, scale float64) Ringdown {
	return Ringdown{M: m, Amplitude0: 0.3, Tau: 20, Scale: scale}
}

func NewRingdown(m, amplitude0, tau, scale float64) (*Ringdown, error) {
	if err := dynamo.Positive("m", m); err != nil {
		return nil, err
	}
	if err := dynamo.Positive("tau", tau); err != nil {
		return nil, err
	}
	if err := dynamo.Positive("visual_scale", scale); err != nil {
		return nil, err
	}
	if math.IsNaN(amplitude0) || math.Abs(amplitude0) >= 1 {
		return nil, &dynamo.ParameterError{Name: "amplitude0", Value: amplitude0, Rule: "must satisfy |a0| < 1"}
	}
	return &Ringdown{M: m, Amplitude0: amplitude0, Tau: tau, Scale: scale}, nil
}

// Amplitude is a0·exp(−i/τ)·cos(4πi/τ).
func (r Ringdown) Amplitude(i int) float64 {
	x := float64(i) / r.Tau
	return r.Amplitude0 * math.Exp(-x) * math.Cos(4*math.Pi*x)
}

func (r Ringdown) HeightWidth(i int) (height, width float64) {
	a := r.Amplitude(i)
	size := r.Scale * r.M
	return size * (1 + a), size * (1 - a)
}

func (r Ringdown) Frame(i int) RenderFrame {
	h, w := r.HeightWidth(i)
	return RenderFrame{Index: i, Ellipses: []Ellipse{{Width: w, Height: h}}}
}
