// Package easing maps easing ids to interpolation curves used by transitions.
package easing

import (
	"math"
	"sync"
)

// Func maps linear progress in [0,1] to eased progress.
type Func func(t float64) float64

// Get evaluates f with t clamped to [0,1].
func (f Func) Get(t float64) float64 {
	switch {
	case t <= 0:
		return f(0)
	case t >= 1:
		return f(1)
	}
	return f(t)
}

func Linear(t float64) float64 { return t }

// CubicBezier returns a CSS-style cubic-bezier curve through (0,0), (x1,y1), (x2,y2), (1,1).
func CubicBezier(x1, y1, x2, y2 float64) Func {
	cx := 3 * x1
	bx := 3*(x2-x1) - cx
	ax := 1 - cx - bx
	cy := 3 * y1
	by := 3*(y2-y1) - cy
	ay := 1 - cy - by

	sampleX := func(s float64) float64 { return ((ax*s+bx)*s + cx) * s }
	sampleY := func(s float64) float64 { return ((ay*s+by)*s + cy) * s }
	slopeX := func(s float64) float64 { return (3*ax*s+2*bx)*s + cx }

	return func(t float64) float64 {
		if t <= 0 || t >= 1 {
			return t
		}
		// Newton first, bisection as fallback.
		s := t
		for i := 0; i < 8; i++ {
			x := sampleX(s) - t
			if math.Abs(x) < 1e-6 {
				return sampleY(s)
			}
			d := slopeX(s)
			if math.Abs(d) < 1e-6 {
				break
			}
			s -= x / d
		}
		lo, hi := 0.0, 1.0
		s = t
		for i := 0; i < 32; i++ {
			x := sampleX(s)
			if math.Abs(x-t) < 1e-6 {
				break
			}
			if x < t {
				lo = s
			} else {
				hi = s
			}
			s = (lo + hi) / 2
		}
		return sampleY(s)
	}
}

// Registry resolves easing ids. Unknown ids resolve to Linear.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]Func
}

func NewRegistry() *Registry {
	r := &Registry{funcs: map[string]Func{}}
	r.Register("linear", Linear)
	r.Register("ease", CubicBezier(0.25, 0.1, 0.25, 1))
	r.Register("ease-in", CubicBezier(0.42, 0, 1, 1))
	r.Register("ease-out", CubicBezier(0, 0, 0.58, 1))
	r.Register("ease-in-out", CubicBezier(0.42, 0, 0.58, 1))
	return r
}

func (r *Registry) Register(id string, f Func) {
	r.mu.Lock()
	r.funcs[id] = f
	r.mu.Unlock()
}

func (r *Registry) Get(id string) Func {
	r.mu.RLock()
	f, ok := r.funcs[id]
	r.mu.RUnlock()
	if !ok {
		return Linear
	}
	return f
}
