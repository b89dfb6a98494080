package export

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/chirpsim/internal/dynamo"
	"github.com/san-kum/chirpsim/internal/viz"
)

const (
	idxBackground uint8 = iota
	idxPrimary
	idxSecondary
	idxRemnant
	idxEdge
)

// GIFOptions controls animation export.
type GIFOptions struct {
	Width, Height int
	Delay         int // per frame, in 1/100 s
	Theme         viz.Theme
	Margin        float64
	// FitEach refits the view to every frame, which keeps a shrinking
	// inspiral filling the picture.
	FitEach bool
	// Stride keeps every Stride-th frame; the last frame is always kept.
	Stride int
}

func DefaultGIFOptions() GIFOptions {
	return GIFOptions{Width: 480, Height: 480, Delay: 3, Theme: viz.ThemeNight, Margin: 0.05, Stride: 1}
}

// Palette returns the indexed colours used when rasterising with t.
func Palette(t viz.Theme) color.Palette {
	cols := []lipgloss.Color{t.Background, t.Primary, t.Secondary, t.Remnant, t.Text}
	p := make(color.Palette, len(cols))
	for i, c := range cols {
		r, g, b := viz.RGB(c)
		p[i] = color.RGBA{R: r, G: g, B: b, A: 0xff}
	}
	return p
}

// Decimate keeps every stride-th frame plus the final one.
func Decimate(frames []viz.RenderFrame, stride int) []viz.RenderFrame {
	if stride <= 1 || len(frames) == 0 {
		return frames
	}
	out := make([]viz.RenderFrame, 0, len(frames)/stride+2)
	for i := 0; i < len(frames); i += stride {
		out = append(out, frames[i])
	}
	if last := frames[len(frames)-1]; out[len(out)-1].Index != last.Index {
		out = append(out, last)
	}
	return out
}

// Rasterize draws a single frame onto a paletted image. Disks are filled in
// the order given, so the nearer body is painted last.
func Rasterize(f viz.RenderFrame, v viz.View, pal color.Palette) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, v.W, v.H), pal)
	for _, d := range f.Disks {
		idx := idxPrimary
		if d.Body == viz.Secondary {
			idx = idxSecondary
		}
		x, y := v.ToPixel(d.X, d.Y)
		r := float64(v.Length(d.Radius))
		fillEllipse(img, x, y, r, r, idx)
		strokeEllipse(img, x, y, r, r, idxEdge)
	}
	for _, el := range f.Ellipses {
		x, y := v.ToPixel(el.X, el.Y)
		rx := el.Width / 2 * v.Scale
		ry := el.Height / 2 * v.Scale
		fillEllipse(img, x, y, rx, ry, idxRemnant)
		strokeEllipse(img, x, y, rx, ry, idxEdge)
	}
	return img
}

// GIF encodes frames as a looping animation. Frames are rasterised in
// parallel; they must not be mutated while GIF runs.
func GIF(w io.Writer, frames []viz.RenderFrame, opts GIFOptions) error {
	if len(frames) == 0 {
		return fmt.Errorf("export: no frames to encode")
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return &dynamo.ParameterError{Name: "size", Value: float64(opts.Width * opts.Height), Rule: "width and height must be > 0"}
	}
	if opts.Delay <= 0 {
		opts.Delay = 3
	}
	if opts.Theme.Name == "" {
		opts.Theme = viz.ThemeNight
	}

	frames = Decimate(frames, opts.Stride)
	pal := Palette(opts.Theme)
	fixed := viz.FitView(viz.OrbitExtent(frames...), opts.Width, opts.Height, opts.Margin)

	images := make([]*image.Paletted, len(frames))
	dynamo.ParallelFor(len(frames), 8, func(start, end int) {
		for i := start; i < end; i++ {
			v := fixed
			if opts.FitEach {
				v = viz.FitView(viz.OrbitExtent(frames[i]), opts.Width, opts.Height, opts.Margin)
			}
			images[i] = Rasterize(frames[i], v, pal)
		}
	})

	anim := gif.GIF{LoopCount: 0}
	for _, img := range images {
		anim.Image = append(anim.Image, img)
		anim.Delay = append(anim.Delay, opts.Delay)
	}
	if err := gif.EncodeAll(w, &anim); err != nil {
		return fmt.Errorf("export: encode gif: %w", err)
	}
	return nil
}

func fillEllipse(img *image.Paletted, cx, cy int, rx, ry float64, idx uint8) {
	if rx <= 0 || ry <= 0 {
		img.SetColorIndex(cx, cy, idx)
		return
	}
	x0, x1 := cx-int(rx)-1, cx+int(rx)+1
	y0, y1 := cy-int(ry)-1, cy+int(ry)+1
	for y := y0; y <= y1; y++ {
		dy := float64(y-cy) / ry
		for x := x0; x <= x1; x++ {
			dx := float64(x-cx) / rx
			if dx*dx+dy*dy <= 1 {
				img.SetColorIndex(x, y, idx)
			}
		}
	}
}

func strokeEllipse(img *image.Paletted, cx, cy int, rx, ry float64, idx uint8) {
	if rx <= 1 || ry <= 1 {
		return
	}
	x0, x1 := cx-int(rx)-1, cx+int(rx)+1
	y0, y1 := cy-int(ry)-1, cy+int(ry)+1
	for y := y0; y <= y1; y++ {
		dy := float64(y-cy) / ry
		for x := x0; x <= x1; x++ {
			dx := float64(x-cx) / rx
			d := dx*dx + dy*dy
			inner := (1 - 1/rx) * (1 - 1/ry)
			if d <= 1 && d > inner {
				img.SetColorIndex(x, y, idx)
			}
		}
	}
}
