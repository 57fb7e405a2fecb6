package geom

import "math"

// Intersects reports whether the cone and the sphere overlap, using the
// direct angular formulation.
//
// The sphere is reduced to a secondary sector with the same apex as the cone,
// bounded by the circle where the sphere meets the cone's supporting sphere.
// Two sectors sharing an apex overlap iff the sum of their half-angles α+β
// exceeds the angle γ between their axes.
//
// Intersects is the ground truth for IntersectsOptimized; prefer the latter on
// hot paths.
func Intersects(cone SphericalCone, sphere Sphere) bool {
	assertArgs(cone, sphere)

	v := sphere.Origin.Sub(cone.Origin)
	d2 := v.Norm2()
	cr, sr := cone.Range, sphere.Radius

	if reach := cr + sr; d2 >= reach*reach {
		return false
	}
	// An apex inside (or on the centre of) the sphere always overlaps.
	if d2 < sr*sr || d2 == 0 {
		return true
	}

	d := math.Sqrt(d2)
	beta := secondaryHalfAngle(d2, cr, sr)
	gamma := math.Acos(clampUnit(v.Dot(cone.Forward) / d))

	return cone.HalfAngle.Radians()+beta > gamma
}

// secondaryHalfAngle returns β, the half-angle under which the relevant part
// of a sphere of radius sr at squared distance d2 is seen from the apex of a
// cone with range cr. Both cases agree at d2 == sr²+cr².
func secondaryHalfAngle(d2, cr, sr float64) float64 {
	d := math.Sqrt(d2)
	if d2 < sr*sr+cr*cr {
		return math.Asin(clampUnit(sr / d))
	}
	return math.Acos(clampUnit((d2 - sr*sr + cr*cr) / (2 * cr * d)))
}

// IntersectsOptimized returns the same result as Intersects without inverse
// trigonometry and with a single division.
//
// α+β > γ is rewritten as cos(α+β) < cos(γ) and expanded to
// cos(α)·cos(β) − sin(α)·sin(β) < cos(γ). Both sides are scaled by d so that
// cos(γ)·d is a plain dot product and the β terms come out of the triangle
// formed by the apex, the sphere centre and the intersection circle.
func IntersectsOptimized(cone SphericalCone, sphere Sphere) bool {
	assertArgs(cone, sphere)
	return intersects(PrecomputeConeInvariants(cone), cone.Origin, cone.Forward, cone.Range, sphere)
}
