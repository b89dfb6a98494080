package viz

import (
	"math"
	"testing"
)

func TestFitView(t *testing.T) {
	e := Extent{MinX: -2, MinY: -1, MaxX: 2, MaxY: 1}
	v := FitView(e, 100, 100, 0)

	if v.Scale != 25 {
		t.Errorf("scale = %g, want 25", v.Scale)
	}
	if x, y := v.ToPixel(0, 0); x != 50 || y != 50 {
		t.Errorf("centre maps to (%d, %d)", x, y)
	}
	if x, y := v.ToPixel(2, 1); x != 100 || y != 25 {
		t.Errorf("corner maps to (%d, %d), want (100, 25)", x, y)
	}
	if v.Length(0.4) != 10 {
		t.Errorf("Length(0.4) = %d", v.Length(0.4))
	}
}

func TestFitViewDegenerate(t *testing.T) {
	v := FitView(Extent{MinX: 1, MinY: 1, MaxX: 1, MaxY: 1}, 40, 40, 0.1)
	if v.Scale != 1 || v.CenterX != 1 || v.CenterY != 1 {
		t.Errorf("point extent gave %+v", v)
	}
	if v := FitView(Bounds(), 40, 40, 0.1); v.Scale != 1 {
		t.Errorf("empty extent gave %+v", v)
	}
}

func TestBounds(t *testing.T) {
	f := RenderFrame{
		Disks: []Disk{
			{X: 1, Y: 0, Radius: 0.5},
			{X: -1, Y: 0, Radius: 0.25},
		},
	}
	e := Bounds(f, RenderFrame{Ellipses: []Ellipse{{Width: 1, Height: 4}}})
	want := Extent{MinX: -1.25, MinY: -2, MaxX: 1.5, MaxY: 2}
	if e != want {
		t.Errorf("Bounds = %+v, want %+v", e, want)
	}
}

func TestDrawFrontBodyOccludes(t *testing.T) {
	c := NewCanvas(20, 10)
	v := View{Scale: 1, W: 40, H: 40}
	f := RenderFrame{
		Disks: []Disk{
			{Body: Secondary, X: 0, Y: 0, Radius: 8, Z: 1},
			{Body: Primary, X: 4, Y: 0, Radius: 4, Z: 2},
		},
	}
	Draw(c, f, v)

	cx, cy := v.ToPixel(4, 0)
	if !c.Get(cx, cy) {
		t.Error("front disk not drawn")
	}
	// The halo ring around the front disk is erased from the back disk.
	if c.Get(cx-5, cy) {
		t.Error("front disk halo missing")
	}
	bx, by := v.ToPixel(-6, 0)
	if !c.Get(bx, by) {
		t.Error("visible part of the back disk missing")
	}
}

func TestDrawRingdownEllipse(t *testing.T) {
	c := NewCanvas(20, 10)
	r := DefaultRingdown(60, 0.1)
	f := r.Frame(0)
	v := FitView(Bounds(f), 40, 40, 0.1)
	Draw(c, f, v)

	h, _ := r.HeightWidth(0)
	x, y := v.ToPixel(0, h/2)
	if !c.Get(x, y) {
		t.Errorf("ellipse top (%d, %d) not drawn", x, y)
	}
	if math.IsInf(v.Scale, 0) {
		t.Error("non-finite view scale")
	}
}

func TestOrbitExtent(t *testing.T) {
	f := RenderFrame{Disks: []Disk{{X: 3, Y: 4, Radius: 1}, {X: -0.6, Y: -0.8, Radius: 0.5}}}
	want := Extent{MinX: -6, MinY: -6, MaxX: 6, MaxY: 6}
	if e := OrbitExtent(f); e != want {
		t.Errorf("OrbitExtent = %+v, want %+v", e, want)
	}
	if e := OrbitExtent(); !e.empty() {
		t.Errorf("OrbitExtent of nothing = %+v", e)
	}
}
