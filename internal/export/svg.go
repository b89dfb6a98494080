package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/chirpsim/internal/viz"
)

func svgHeader(sb *strings.Builder, width, height int, background string) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))
}

// FrameSVG renders a single frame as vector shapes.
func FrameSVG(f viz.RenderFrame, width, height int, theme viz.Theme) string {
	v := viz.FitView(viz.OrbitExtent(f), width, height, 0.05)

	var sb strings.Builder
	svgHeader(&sb, width, height, string(theme.Background))
	for _, d := range f.Disks {
		fill := theme.Primary
		if d.Body == viz.Secondary {
			fill = theme.Secondary
		}
		x, y := v.ToPixel(d.X, d.Y)
		sb.WriteString(fmt.Sprintf(`<circle cx="%d" cy="%d" r="%.1f" fill="%s" stroke="%s"/>
`, x, y, d.Radius*v.Scale, fill, theme.Text))
	}
	for _, el := range f.Ellipses {
		x, y := v.ToPixel(el.X, el.Y)
		sb.WriteString(fmt.Sprintf(`<ellipse cx="%d" cy="%d" rx="%.1f" ry="%.1f" fill="%s" stroke="%s"/>
`, x, y, el.Width/2*v.Scale, el.Height/2*v.Scale, theme.Remnant, theme.Text))
	}
	sb.WriteString("</svg>")
	return sb.String()
}

// TrackSVG draws the path traced by each body over all frames. Frames
// without disks (ringdown) are skipped.
func TrackSVG(frames []viz.RenderFrame, width, height int, theme viz.Theme) string {
	tracks := map[viz.Body][]viz.Disk{}
	var withDisks []viz.RenderFrame
	for _, f := range frames {
		if len(f.Disks) == 0 {
			continue
		}
		withDisks = append(withDisks, f)
		for _, d := range f.Disks {
			tracks[d.Body] = append(tracks[d.Body], d)
		}
	}
	if len(withDisks) < 2 {
		return ""
	}

	// Bodies shrink to points so the track fills the picture.
	e := viz.Bounds(pointsOnly(withDisks)...)
	v := viz.FitView(e, width, height, 0.1)

	var sb strings.Builder
	svgHeader(&sb, width, height, string(theme.Background))
	for _, body := range []viz.Body{viz.Primary, viz.Secondary} {
		stroke := theme.Primary
		if body == viz.Secondary {
			stroke = theme.Secondary
		}
		pts := tracks[body]
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, stroke))
		for i, d := range pts {
			x, y := v.ToPixel(d.X, d.Y)
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%d,%d", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%d,%d", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}
	sb.WriteString("</svg>")
	return sb.String()
}

func pointsOnly(frames []viz.RenderFrame) []viz.RenderFrame {
	out := make([]viz.RenderFrame, len(frames))
	for i, f := range frames {
		disks := make([]viz.Disk, len(f.Disks))
		for j, d := range f.Disks {
			d.Radius = 0
			disks[j] = d
		}
		out[i] = viz.RenderFrame{Index: f.Index, Disks: disks}
	}
	return out
}
