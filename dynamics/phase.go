package dynamics

import "math"

// TwoPi is one full turn.
const TwoPi = 2 * math.Pi

// Wrap maps any finite angle into [0, 2π).
func Wrap(x float64) float64 {
	x = math.Mod(x, TwoPi)
	if x < 0 {
		x += TwoPi
	}
	if x >= TwoPi {
		// math.Mod of a tiny negative can round up to exactly 2π.
		x = 0
	}
	return x
}

// WrapSigned maps any finite angle into [-π, π).
func WrapSigned(x float64) float64 {
	return Wrap(x+math.Pi) - math.Pi
}

// Coherence returns the order parameter |mean(exp(iφ))| in [0,1].
// An empty slice has coherence 0.
func Coherence(phases []float64) float64 {
	if len(phases) == 0 {
		return 0
	}
	var re, im float64
	for _, p := range phases {
		s, c := math.Sincos(p)
		re += c
		im += s
	}
	r := math.Hypot(re, im) / float64(len(phases))
	if r > 1 {
		r = 1
	}
	return r
}
