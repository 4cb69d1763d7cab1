// Package geom provides the small amount of 3D vector geometry needed for
// dislocation character analysis.
package geom

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ErrZeroVector is returned when an angle is requested against a vector with
// no direction. Upstream data guarantees non-degenerate line segments and
// Burgers vectors, so hitting this means a precondition was violated.
var ErrZeroVector = errors.New("geom: zero-length vector has no direction")

// Vec3 is a point or displacement in 3D space.
type Vec3 [3]float64

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]}
}

// Dot returns the inner product of v and o.
func (v Vec3) Dot(o Vec3) float64 {
	return floats.Dot(v[:], o[:])
}

// Norm returns the Euclidean length of v.
func (v Vec3) Norm() float64 {
	return floats.Norm(v[:], 2)
}

// IsZero reports whether every component of v is exactly zero.
func (v Vec3) IsZero() bool {
	return v[0] == 0 && v[1] == 0 && v[2] == 0
}

// LineAngle returns the unsigned angle, in degrees in [0, 90], between the
// lines spanned by a and b. Neither input needs to be normalized, and the
// sign of either vector is irrelevant: a segment and its reverse, or a
// Burgers vector and its negative, yield the same angle. The cosine is
// always clamped into [0, 1] before the inverse cosine so floating-point
// rounding can never push it out of domain.
func LineAngle(a, b Vec3) (float64, error) {
	na := a.Norm()
	nb := b.Norm()
	if na == 0 || nb == 0 {
		return 0, ErrZeroVector
	}
	c := math.Abs(a.Dot(b)) / (na * nb)
	if c > 1 {
		c = 1
	}
	return math.Acos(c) * 180 / math.Pi, nil
}
