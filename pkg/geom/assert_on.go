//go:build geomassert

package geom

import "github.com/golang/geo/r3"

// assertionsEnabled reports whether predicate entry checks are compiled in.
const assertionsEnabled = true

// assertArgs panics on a precondition violation. Enabled with -tags geomassert.
func assertArgs(c SphericalCone, s Sphere) {
	if err := c.Validate(); err != nil {
		panic("geom: invalid cone: " + err.Error())
	}
	if err := s.Validate(); err != nil {
		panic("geom: invalid sphere: " + err.Error())
	}
}

func assertBatchArgs(inv ConeInvariants, origin, forward r3.Vector, rng float64, s Sphere) {
	assertArgs(SphericalCone{Origin: origin, Forward: forward, Range: rng}, s)
	if inv.InvRange*rng < 1-1e-12 || inv.InvRange*rng > 1+1e-12 {
		panic("geom: invariants were computed for a different range")
	}
}
