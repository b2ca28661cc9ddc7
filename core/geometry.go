package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// degenerateTol is the squared-length threshold below which a vector is
// treated as zero (or a vector sum as antipodal).
const degenerateTol = 1e-24

// Normalize projects an arbitrary point onto the unit sphere.
// The zero vector has no direction and is rejected.
func Normalize(p mgl64.Vec3) (mgl64.Vec3, error) {
	l2 := p.Dot(p)
	if l2 < degenerateTol {
		return mgl64.Vec3{}, &DegenerateInputError{Op: "Normalize", Reason: "zero vector"}
	}
	return p.Mul(1 / math.Sqrt(l2)), nil
}

// SlerpMidpoint returns the point on the great circle through unit vectors
// a and b that is equidistant from both. For a non-antipodal pair this is
// the normalized vector sum; the chord midpoint and the spherical midpoint
// share a direction, so the projection is exact up to rounding. Antipodal
// input has no unique midpoint and is rejected.
func SlerpMidpoint(a, b mgl64.Vec3) (mgl64.Vec3, error) {
	sum := a.Add(b)
	if sum.Dot(sum) < degenerateTol {
		return mgl64.Vec3{}, &DegenerateInputError{Op: "SlerpMidpoint", Reason: "antipodal endpoints"}
	}
	return Normalize(sum)
}

// SubdivideTriangle splits the spherical triangle (v0, v1, v2) into four
// sub-triangles by bisecting each edge on the sphere: one corner triangle
// per original vertex, then the center triangle of the three midpoints.
// Winding order of the parent is preserved in every child.
func SubdivideTriangle(v0, v1, v2 mgl64.Vec3) ([4][3]mgl64.Vec3, error) {
	var out [4][3]mgl64.Vec3
	m01, err := SlerpMidpoint(v0, v1)
	if err != nil {
		return out, err
	}
	m12, err := SlerpMidpoint(v1, v2)
	if err != nil {
		return out, err
	}
	m20, err := SlerpMidpoint(v2, v0)
	if err != nil {
		return out, err
	}
	out = [4][3]mgl64.Vec3{
		{v0, m01, m20},
		{v1, m12, m01},
		{v2, m20, m12},
		{m01, m12, m20},
	}
	return out, nil
}
