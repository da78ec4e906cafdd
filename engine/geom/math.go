package geom

import "math"

func Clamp(v, lo, hi float64) float64 {
	return math.Max(math.Min(v, hi), lo)
}

func Radians(deg float64) float64 { return deg * math.Pi / 180 }

func Degrees(rad float64) float64 { return rad * 180 / math.Pi }

// ModRadians wraps an angle into [0, 2π).
func ModRadians(rad float64) float64 {
	const tau = math.Pi * 2
	r := math.Mod(rad, tau)
	if r < 0 {
		r += tau
	}
	return r
}

// ModDegrees wraps an angle into [0, 360).
func ModDegrees(deg float64) float64 {
	r := math.Mod(deg, 360)
	if r < 0 {
		r += 360
	}
	return r
}

// RoundTo rounds v to the given number of decimals.
func RoundTo(v float64, decimals int) float64 {
	if decimals <= 0 {
		return math.Round(v)
	}
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

func Dist(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

func Lerp(a, b, t float64) float64 { return a*(1-t) + b*t }

// Rect is an axis-aligned rectangle.
type Rect struct{ X, Y, W, H float64 }
