// SPDX-License-Identifier: MIT
// Package: entangle/builder
//
// geometry.go: 3D point sets for the crystal layers.
//
// Determinism:
//   • Every generator is a pure function of its arguments; no RNG.
//   • Point order is fixed and documented, since vertex indices follow it.

package builder

import "math"

// Vec3 is a point in 3D space.
type Vec3 [3]float64

// Scale returns v multiplied by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Dist returns the Euclidean distance between a and b.
func Dist(a, b Vec3) float64 {
	dx, dy, dz := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// IcosahedronVertices returns the 12 vertices of a regular icosahedron on the
// unit sphere, using the golden-ratio construction (0,±1,±φ), (±1,±φ,0), (±φ,0,±1).
func IcosahedronVertices() []Vec3 {
	phi := (1 + math.Sqrt(5)) / 2
	raw := []Vec3{
		{0, 1, phi}, {0, -1, phi}, {0, 1, -phi}, {0, -1, -phi},
		{1, phi, 0}, {-1, phi, 0}, {1, -phi, 0}, {-1, -phi, 0},
		{phi, 0, 1}, {-phi, 0, 1}, {phi, 0, -1}, {-phi, 0, -1},
	}
	norm := math.Sqrt(1 + phi*phi)
	out := make([]Vec3, len(raw))
	for i, v := range raw {
		out[i] = v.Scale(1 / norm)
	}

	return out
}

// TriadVertices returns an equilateral triangle of the given radius in the
// z=0 plane at angles 0°, 120° and 240°.
func TriadVertices(radius float64) []Vec3 {
	h := radius * math.Sqrt(3) / 2
	return []Vec3{
		{radius, 0, 0},
		{-radius / 2, h, 0},
		{-radius / 2, -h, 0},
	}
}

// FibonacciSphere spreads n points evenly over a sphere of the given radius.
// Points run from the +y pole (i=0) to the -y pole (i=n-1); a single point
// sits on the equator.
//
// Complexity: O(n).
func FibonacciSphere(n int, radius float64) []Vec3 {
	if n <= 0 {
		return nil
	}
	golden := math.Pi * (3 - math.Sqrt(5)) // golden angle
	out := make([]Vec3, n)
	for i := 0; i < n; i++ {
		y := 0.0
		if n > 1 {
			y = 1 - (float64(i)/float64(n-1))*2
		}
		r := math.Sqrt(1 - y*y)
		theta := golden * float64(i)
		out[i] = Vec3{math.Cos(theta) * r * radius, y * radius, math.Sin(theta) * r * radius}
	}

	return out
}
