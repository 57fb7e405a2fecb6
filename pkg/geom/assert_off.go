//go:build !geomassert

package geom

import "github.com/golang/geo/r3"

const assertionsEnabled = false

func assertArgs(SphericalCone, Sphere) {}

func assertBatchArgs(ConeInvariants, r3.Vector, r3.Vector, float64, Sphere) {}
