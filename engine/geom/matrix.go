package geom

import "math"

// Matrix is a 3x3 affine transform in column-major order.
// Only indices 0,1,3,4,6,7 (a,b,c,d,e,f) carry data; 2,5,8 stay 0,0,1.
//
//	| a c e |
//	| b d f |
//	| 0 0 1 |
type Matrix [9]float64

// Identity returns the identity transform.
func Identity() Matrix { return Matrix{1, 0, 0, 0, 1, 0, 0, 0, 1} }

func (m *Matrix) Reset() *Matrix {
	*m = Identity()
	return m
}

func (m *Matrix) Set(src Matrix) *Matrix {
	*m = src
	return m
}

// Multiply post-multiplies m by n (m = m * n).
func (m *Matrix) Multiply(n Matrix) *Matrix {
	a, b, c, d, e, f := m[0], m[1], m[3], m[4], m[6], m[7]
	m[0] = a*n[0] + c*n[1]
	m[1] = b*n[0] + d*n[1]
	m[3] = a*n[3] + c*n[4]
	m[4] = b*n[3] + d*n[4]
	m[6] = a*n[6] + c*n[7] + e
	m[7] = b*n[6] + d*n[7] + f
	return m
}

func (m *Matrix) Translate(x, y float64) *Matrix {
	m[6] += m[0]*x + m[3]*y
	m[7] += m[1]*x + m[4]*y
	return m
}

func (m *Matrix) Scale(sx, sy float64) *Matrix {
	m[0] *= sx
	m[1] *= sx
	m[3] *= sy
	m[4] *= sy
	return m
}

func (m *Matrix) Rotate(rad float64) *Matrix {
	cos, sin := math.Cos(rad), math.Sin(rad)
	a, b, c, d := m[0], m[1], m[3], m[4]
	m[0] = a*cos + c*sin
	m[1] = b*cos + d*sin
	m[3] = c*cos - a*sin
	m[4] = d*cos - b*sin
	return m
}

// Skew applies a shear where sx and sy are tangent factors along each axis.
func (m *Matrix) Skew(sx, sy float64) *Matrix {
	a, b, c, d := m[0], m[1], m[3], m[4]
	m[0] = a + c*sy
	m[1] = b + d*sy
	m[3] = c + a*sx
	m[4] = d + b*sx
	return m
}

// RotateAt rotates around the pivot (x, y).
func (m *Matrix) RotateAt(x, y, rad float64) *Matrix {
	return m.Translate(x, y).Rotate(rad).Translate(-x, -y)
}

// ScaleAt scales around the pivot (x, y).
func (m *Matrix) ScaleAt(x, y, sx, sy float64) *Matrix {
	return m.Translate(x, y).Scale(sx, sy).Translate(-x, -y)
}

// SkewAt shears around the pivot (x, y).
func (m *Matrix) SkewAt(x, y, sx, sy float64) *Matrix {
	return m.Translate(x, y).Skew(sx, sy).Translate(-x, -y)
}

// Apply maps a point through the transform.
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[3]*y + m[6], m[1]*x + m[4]*y + m[7]
}

// Project builds the clip-space projection of a w*h pixel canvas.
// flip is -1 for a y-down canvas rendered to the default framebuffer.
func (m *Matrix) Project(flip, w, h float64) *Matrix {
	m.Reset()
	m[0] = 2 / w
	m[4] = 2 * flip / h
	m[6] = -1
	m[7] = -flip
	return m
}
