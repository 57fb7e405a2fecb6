package geom

import (
	"math"

	"github.com/golang/geo/r3"
)

// ConeInvariants holds the per-cone terms of the optimized predicate. It is
// an immutable value owned by the caller and may be shared between goroutines.
type ConeInvariants struct {
	CosAlpha float64
	SinAlpha float64
	InvRange float64
}

// PrecomputeConeInvariants computes cos(α), sin(α) and 1/Cr once for a cone
// that is going to be tested against many spheres.
func PrecomputeConeInvariants(cone SphericalCone) ConeInvariants {
	sin, cos := math.Sincos(cone.HalfAngle.Radians())
	return ConeInvariants{
		CosAlpha: cos,
		SinAlpha: sin,
		InvRange: 1 / cone.Range,
	}
}

// IntersectsBatch is IntersectsOptimized with the cone invariants supplied by
// the caller. Given invariants from PrecomputeConeInvariants of the same cone
// the result is bit-identical to IntersectsOptimized.
func IntersectsBatch(inv ConeInvariants, origin, forward r3.Vector, rng float64, sphere Sphere) bool {
	assertBatchArgs(inv, origin, forward, rng, sphere)
	return intersects(inv, origin, forward, rng, sphere)
}

func intersects(inv ConeInvariants, origin, forward r3.Vector, rng float64, sphere Sphere) bool {
	v := sphere.Origin.Sub(origin)
	d2 := v.Norm2()
	sr := sphere.Radius

	if reach := rng + sr; d2 >= reach*reach {
		return false
	}
	if d2 < sr*sr || d2 == 0 {
		return true
	}

	sinB, cosB := secondaryTerms(d2, sr, rng, inv.InvRange)

	// Past α+β = π the sector pair covers every direction, while cos(α+β)
	// turns back up. β ≤ π/2 so this can only happen for an obtuse cone:
	// β > π−α  <=>  cos(β)·d < −cos(α)·d, compared squared.
	if inv.CosAlpha < 0 && cosB*cosB < inv.CosAlpha*inv.CosAlpha*d2 {
		return true
	}

	return inv.CosAlpha*cosB-inv.SinAlpha*sinB < v.Dot(forward)
}

// secondaryTerms returns sin(β)·d and cos(β)·d.
//
// Case A (d² < Sr²+Cr²): sin(β)·d = Sr.
// Case B: cos(β)·d = (d²−Sr²+Cr²)/(2·Cr), which divides only by the cone.
// The other term is sqrt(d² − known²). Its argument is clamped to zero: near
// the case boundary round-off can push it slightly negative, and a NaN would
// silently force the comparison to false.
func secondaryTerms(d2, sr, rng, invRange float64) (sinB, cosB float64) {
	sr2 := sr * sr
	caseA := d2 < sr2+rng*rng

	known := selectf(caseA, sr, (d2-sr2+rng*rng)*0.5*invRange)
	derived := math.Sqrt(math.Max(d2-known*known, 0))

	return selectf(caseA, known, derived), selectf(caseA, derived, known)
}

// selectf picks between two already computed values, keeping the case split
// a data select rather than divergent control flow.
func selectf(cond bool, a, b float64) float64 {
	if cond {
		return a
	}
	return b
}

func clampUnit(x float64) float64 {
	return math.Max(-1, math.Min(1, x))
}
