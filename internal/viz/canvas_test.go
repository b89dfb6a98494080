package viz

import (
	"strings"
	"testing"
)

func TestCanvasSetGetUnset(t *testing.T) {
	c := NewCanvas(4, 2)
	if w, h := c.PixelSize(); w != 8 || h != 8 {
		t.Fatalf("PixelSize = %dx%d, want 8x8", w, h)
	}

	c.Set(3, 5)
	if !c.Get(3, 5) {
		t.Error("pixel not set")
	}
	if c.Get(2, 5) || c.Get(3, 4) {
		t.Error("neighbouring pixel set")
	}
	c.Unset(3, 5)
	if c.Get(3, 5) {
		t.Error("pixel still set after Unset")
	}

	c.Set(-1, 0)
	c.Set(100, 100)
	if c.Get(-1, 0) || c.Get(100, 100) {
		t.Error("out of range pixels must be ignored")
	}
}

func TestCanvasFillDisk(t *testing.T) {
	c := NewCanvas(20, 10)
	c.FillDisk(20, 20, 5)

	if !c.Get(20, 20) || !c.Get(25, 20) || !c.Get(20, 15) {
		t.Error("disk centre or rim not filled")
	}
	if c.Get(26, 20) || c.Get(24, 24) {
		t.Error("pixels outside the disk filled")
	}

	c.ClearDisk(20, 20, 2)
	if c.Get(20, 20) || c.Get(22, 20) {
		t.Error("ClearDisk left pixels behind")
	}
	if !c.Get(25, 20) {
		t.Error("ClearDisk cleared outside its radius")
	}
}

func TestCanvasStrokeEllipse(t *testing.T) {
	c := NewCanvas(20, 10)
	c.StrokeEllipse(20, 20, 10, 5)

	for _, p := range [][2]int{{30, 20}, {10, 20}, {20, 25}, {20, 15}} {
		if !c.Get(p[0], p[1]) {
			t.Errorf("ellipse misses (%d, %d)", p[0], p[1])
		}
	}
	if c.Get(20, 20) {
		t.Error("ellipse outline must not fill the centre")
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(3, 2)
	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	for _, l := range lines {
		if l != "⠀⠀⠀" {
			t.Errorf("empty canvas line = %q", l)
		}
	}

	c.Set(0, 0)
	c.Clear()
	if c.Get(0, 0) {
		t.Error("Clear left a pixel set")
	}
}

func TestCanvasFlatEllipseIsDiagonal(t *testing.T) {
	c := NewCanvas(10, 5)
	c.StrokeEllipse(10, 10, 4, 0)
	if !c.Get(6, 10) || !c.Get(14, 10) || !c.Get(10, 10) {
		t.Error("flattened ellipse should draw its major axis")
	}
}
