package scene

import "math"

// Camera2D is an orthographic camera over a y-down pixel canvas with the
// origin at the top left.
type Camera2D struct {
	Width, Height float32
	X, Y          float32
	RotationRad   float32
	Zoom          float32 // 1 = no zoom
	vp            [16]float32
	dirty         bool
}

func NewCamera2D(width, height int) *Camera2D {
	c := &Camera2D{Zoom: 1}
	c.SetViewportPixels(width, height)
	c.Recalculate()
	return c
}

func (c *Camera2D) SetViewportPixels(w, h int) {
	c.Width, c.Height = float32(w), float32(h)
	c.dirty = true
}

func (c *Camera2D) Move(dx, dy float32) { c.X += dx; c.Y += dy; c.dirty = true }
func (c *Camera2D) Rotate(dRad float32) { c.RotationRad += dRad; c.dirty = true }
func (c *Camera2D) SetZoom(z float32) {
	if z < 0.05 {
		z = 0.05
	}
	c.Zoom = z
	c.dirty = true
}

func (c *Camera2D) VP() [16]float32 {
	if c.dirty {
		c.Recalculate()
	}
	return c.vp
}

func (c *Camera2D) Recalculate() {
	// Bottom below top flips y so canvas rows grow downward.
	z := c.Zoom
	proj := ortho(0, c.Width/z, c.Height/z, 0, -1, 1)

	// Rotation pivots on the canvas center.
	cx, cy := c.Width/(2*z), c.Height/(2*z)
	view := mul(
		translate(cx, cy, 0),
		mul(rotateZ(-c.RotationRad), translate(-c.X-cx, -c.Y-cy, 0)),
	)

	c.vp = mul(proj, view)
	c.dirty = false
}

// ToCanvas maps a window pixel to canvas coordinates.
func (c *Camera2D) ToCanvas(x, y float32) (float32, float32) {
	z := c.Zoom
	cx, cy := c.Width/(2*z), c.Height/(2*z)
	px, py := x/z-cx, y/z-cy
	s := float32(math.Sin(float64(c.RotationRad)))
	co := float32(math.Cos(float64(c.RotationRad)))
	return px*co - py*s + cx + c.X, px*s + py*co + cy + c.Y
}

// ---- tiny mat helpers (column-major, GLSL-style) ----

func translate(x, y, z float32) [16]float32 {
	return [16]float32{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}
}

func rotateZ(a float32) [16]float32 {
	c := float32(math.Cos(float64(a)))
	s := float32(math.Sin(float64(a)))
	return [16]float32{
		c, s, 0, 0,
		-s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

func ortho(l, r, b, t, n, f float32) [16]float32 {
	rl := 1 / (r - l)
	tb := 1 / (t - b)
	fn := 1 / (f - n)
	return [16]float32{
		2 * rl, 0, 0, 0,
		0, 2 * tb, 0, 0,
		0, 0, -2 * fn, 0,
		-(r + l) * rl, -(t + b) * tb, -(f + n) * fn, 1,
	}
}

// mul returns a·b.
func mul(a, b [16]float32) [16]float32 {
	var out [16]float32
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[i+4*j] = a[i+0]*b[0+4*j] + a[i+4]*b[1+4*j] + a[i+8]*b[2+4*j] + a[i+12]*b[3+4*j]
		}
	}
	return out
}

// apply transforms a point by a column-major matrix.
func apply(m [16]float32, x, y float32) (float32, float32) {
	return m[0]*x + m[4]*y + m[12], m[1]*x + m[5]*y + m[13]
}
