package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

// FrameMs is the reference frame length velocities are expressed against.
const FrameMs = 16.0

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Frames converts a millisecond delta into reference frames.
func Frames(dtMs float64) float64 {
	return dtMs / FrameMs
}

// AngleTo returns the bearing from a to b.
func AngleTo(a, b cp.Vector) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X)
}

// Toward returns a vector of the given length pointing from a to b. A zero
// separation yields the zero vector.
func Toward(a, b cp.Vector, length float64) cp.Vector {
	d := b.Sub(a)
	l := d.Length()
	if l == 0 {
		return cp.Vector{}
	}
	return d.Mult(length / l)
}

// WithLength rescales v to the given length, keeping its heading.
func WithLength(v cp.Vector, length float64) cp.Vector {
	l := v.Length()
	if l == 0 {
		return cp.Vector{}
	}
	return v.Mult(length / l)
}
