package viz

import "math"

// View maps world coordinates onto a pixel raster of W x H. World y points
// up, pixel y points down.
type View struct {
	CenterX, CenterY float64
	Scale            float64 // pixels per world unit
	W, H             int
}

// Extent is an axis-aligned world rectangle.
type Extent struct {
	MinX, MinY, MaxX, MaxY float64
}

func emptyExtent() Extent {
	return Extent{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
}

func (e *Extent) add(x, y, rx, ry float64) {
	e.MinX = math.Min(e.MinX, x-rx)
	e.MaxX = math.Max(e.MaxX, x+rx)
	e.MinY = math.Min(e.MinY, y-ry)
	e.MaxY = math.Max(e.MaxY, y+ry)
}

func (e Extent) empty() bool { return e.MinX > e.MaxX || e.MinY > e.MaxY }

// Bounds returns the world extent covered by the given frames.
func Bounds(frames ...RenderFrame) Extent {
	e := emptyExtent()
	for _, f := range frames {
		for _, d := range f.Disks {
			e.add(d.X, d.Y, d.Radius, d.Radius)
		}
		for _, el := range f.Ellipses {
			e.add(el.X, el.Y, el.Width/2, el.Height/2)
		}
	}
	return e
}

// OrbitExtent is the square centred on the origin that contains every
// body of f wherever it sits on its orbit.
func OrbitExtent(frames ...RenderFrame) Extent {
	half := 0.0
	for _, f := range frames {
		for _, d := range f.Disks {
			half = math.Max(half, math.Hypot(d.X, d.Y)+d.Radius)
		}
		for _, el := range f.Ellipses {
			half = math.Max(half, math.Hypot(el.X, el.Y)+math.Max(el.Width, el.Height)/2)
		}
	}
	if half == 0 {
		return emptyExtent()
	}
	return Extent{MinX: -half, MinY: -half, MaxX: half, MaxY: half}
}

// FitView centres e in a w x h raster with margin (fraction of the
// shorter side) left free on every side. Aspect ratio is preserved.
func FitView(e Extent, w, h int, margin float64) View {
	v := View{W: w, H: h, Scale: 1}
	if e.empty() {
		return v
	}
	v.CenterX = (e.MinX + e.MaxX) / 2
	v.CenterY = (e.MinY + e.MaxY) / 2

	usable := 1 - 2*margin
	if usable <= 0 {
		usable = 1
	}
	spanX, spanY := e.MaxX-e.MinX, e.MaxY-e.MinY
	sx, sy := math.Inf(1), math.Inf(1)
	if spanX > 0 {
		sx = float64(w) * usable / spanX
	}
	if spanY > 0 {
		sy = float64(h) * usable / spanY
	}
	if s := math.Min(sx, sy); !math.IsInf(s, 0) {
		v.Scale = s
	}
	return v
}

// ToPixel converts a world point to raster coordinates.
func (v View) ToPixel(x, y float64) (int, int) {
	px := float64(v.W)/2 + (x-v.CenterX)*v.Scale
	py := float64(v.H)/2 - (y-v.CenterY)*v.Scale
	return int(math.Round(px)), int(math.Round(py))
}

// Length converts a world distance to pixels.
func (v View) Length(d float64) int {
	return int(math.Round(d * v.Scale))
}

// Draw paints f onto c back to front. Each disk first erases a one-pixel
// halo so that a nearer body visibly occludes a farther one.
func Draw(c *Canvas, f RenderFrame, v View) {
	if c == nil {
		return
	}
	for _, d := range f.Disks {
		x, y := v.ToPixel(d.X, d.Y)
		r := v.Length(d.Radius)
		c.ClearDisk(x, y, r+1)
		c.FillDisk(x, y, r)
	}
	for _, el := range f.Ellipses {
		x, y := v.ToPixel(el.X, el.Y)
		c.StrokeEllipse(x, y, v.Length(el.Width/2), v.Length(el.Height/2))
	}
}
