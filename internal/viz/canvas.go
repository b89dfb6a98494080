package viz

import (
	"math"
	"strings"
)

const brailleBlank = '⠀'

// dotBits maps a sub-pixel inside a 2x4 Braille cell to its bit in the
// U+2800 block. Rows run top to bottom, columns left to right.
var dotBits = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a monochrome raster drawn with Braille cells. Each cell holds
// 2x4 sub-pixels, so a cols x rows canvas addresses (2*cols) x (4*rows)
// pixels with the origin at the top left.
type Canvas struct {
	cols, rows int
	dots       []uint8
}

func NewCanvas(cols, rows int) *Canvas {
	return &Canvas{cols: cols, rows: rows, dots: make([]uint8, cols*rows)}
}

// PixelSize returns the canvas size in sub-pixels.
func (c *Canvas) PixelSize() (w, h int) { return 2 * c.cols, 4 * c.rows }

// locate returns the cell index and bit for pixel (x, y); ok is false
// when the pixel lies outside the canvas.
func (c *Canvas) locate(x, y int) (cell int, bit uint8, ok bool) {
	w, h := c.PixelSize()
	if x < 0 || y < 0 || x >= w || y >= h {
		return 0, 0, false
	}
	return (y/4)*c.cols + x/2, dotBits[y%4][x%2], true
}

// Set lights the sub-pixel at (x, y). Pixels off the canvas are ignored.
func (c *Canvas) Set(x, y int) {
	if i, b, ok := c.locate(x, y); ok {
		c.dots[i] |= b
	}
}

func (c *Canvas) Unset(x, y int) {
	if i, b, ok := c.locate(x, y); ok {
		c.dots[i] &^= b
	}
}

// Get reports whether the sub-pixel at (x, y) is lit.
func (c *Canvas) Get(x, y int) bool {
	i, b, ok := c.locate(x, y)
	return ok && c.dots[i]&b != 0
}

func (c *Canvas) Clear() {
	clear(c.dots)
}

// FillDisk lights every pixel within r of (cx, cy).
func (c *Canvas) FillDisk(cx, cy, r int) { c.disk(cx, cy, r, c.Set) }

// ClearDisk blanks every pixel within r of (cx, cy). Bodies are drawn on
// top of a cleared halo so that overlapping disks stay distinguishable.
func (c *Canvas) ClearDisk(cx, cy, r int) { c.disk(cx, cy, r, c.Unset) }

func (c *Canvas) disk(cx, cy, r int, plot func(x, y int)) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				plot(cx+dx, cy+dy)
			}
		}
	}
}

// StrokeEllipse outlines the axis-aligned ellipse with semi-axes rx, ry.
// A flattened ellipse degenerates to its diagonal.
func (c *Canvas) StrokeEllipse(cx, cy, rx, ry int) {
	if rx <= 0 || ry <= 0 {
		c.segment(cx-rx, cy-ry, cx+rx, cy+ry)
		return
	}
	n := max(8*(rx+ry), 16)
	px, py := cx+rx, cy
	for i := 1; i <= n; i++ {
		s, co := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		x := cx + int(math.Round(float64(rx)*co))
		y := cy + int(math.Round(float64(ry)*s))
		c.segment(px, py, x, y)
		px, py = x, y
	}
}

// segment lights a straight run of pixels from (x0, y0) to (x1, y1),
// both ends included.
func (c *Canvas) segment(x0, y0, x1, y1 int) {
	n := max(abs(x1-x0), abs(y1-y0))
	if n == 0 {
		c.Set(x0, y0)
		return
	}
	for k := 0; k <= n; k++ {
		f := float64(k) / float64(n)
		c.Set(x0+int(math.Round(f*float64(x1-x0))), y0+int(math.Round(f*float64(y1-y0))))
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	b.Grow(c.rows * (c.cols*3 + 1))
	for i, d := range c.dots {
		b.WriteRune(brailleBlank + rune(d))
		if (i+1)%c.cols == 0 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
