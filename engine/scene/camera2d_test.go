package scene

import (
	"math"
	"testing"
)

func close32(a, b float32) bool { return math.Abs(float64(a-b)) < 1e-4 }

func TestCameraMapsCanvasCorners(t *testing.T) {
	c := NewCamera2D(800, 600)
	vp := c.VP()
	tests := map[string]struct {
		x, y, nx, ny float32
	}{
		"top left":     {0, 0, -1, 1},
		"bottom right": {800, 600, 1, -1},
		"center":       {400, 300, 0, 0},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			x, y := apply(vp, tt.x, tt.y)
			if !close32(x, tt.nx) || !close32(y, tt.ny) {
				t.Fatalf("(%v,%v) -> (%v,%v), want (%v,%v)", tt.x, tt.y, x, y, tt.nx, tt.ny)
			}
		})
	}
}

func TestToCanvasInvertsVP(t *testing.T) {
	c := NewCamera2D(800, 600)
	c.SetZoom(2)
	c.Move(30, -10)
	c.Rotate(0.3)
	vp := c.VP()
	for _, p := range [][2]float32{{0, 0}, {800, 600}, {123, 456}} {
		cx, cy := c.ToCanvas(p[0], p[1])
		nx, ny := apply(vp, cx, cy)
		wantX, wantY := 2*p[0]/800-1, 1-2*p[1]/600
		if !close32(nx, wantX) || !close32(ny, wantY) {
			t.Fatalf("window %v -> ndc (%v,%v), want (%v,%v)", p, nx, ny, wantX, wantY)
		}
	}
}

func TestZoomIsClamped(t *testing.T) {
	c := NewCamera2D(10, 10)
	c.SetZoom(0)
	if c.Zoom != 0.05 {
		t.Fatalf("zoom = %v", c.Zoom)
	}
}
