// Package geom provides the spherical sector vs sphere culling predicate used
// to decide whether a spot light can reach a grid cell.
package geom

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
)

// unitTolerance bounds |‖forward‖² − 1| for a direction to count as unit length.
// Directions normalized in float32 and widened to float64 stay well inside it.
const unitTolerance = 1e-6

// Validation errors.
var (
	ErrNonUnitForward   = errors.New("forward is not unit length")
	ErrNonPositiveRange = errors.New("range must be positive")
	ErrHalfAngleRange   = errors.New("half-angle must be in [0, pi)")
	ErrNegativeRadius   = errors.New("radius must be non-negative")
	ErrNonFinite        = errors.New("value is not finite")
)

// SphericalCone is the bounding volume of a spot light: the part of the
// supporting sphere of radius Range around Origin that lies within HalfAngle
// of Forward.
type SphericalCone struct {
	Origin    r3.Vector
	Forward   r3.Vector // must be unit length
	Range     float64
	HalfAngle s1.Angle // [0, pi); pi/2 is a hemisphere
}

// Sphere is a bounding sphere, typically of a grid cell.
type Sphere struct {
	Origin r3.Vector
	Radius float64
}

// Validate reports whether the cone satisfies the predicate preconditions.
func (c SphericalCone) Validate() error {
	if !finiteVec(c.Origin) || !finiteVec(c.Forward) {
		return fmt.Errorf("cone origin/forward: %w", ErrNonFinite)
	}
	if math.Abs(c.Forward.Norm2()-1) > unitTolerance {
		return fmt.Errorf("%w: |forward| = %g", ErrNonUnitForward, c.Forward.Norm())
	}
	if !(c.Range > 0) || math.IsInf(c.Range, 0) {
		return fmt.Errorf("%w: got %g", ErrNonPositiveRange, c.Range)
	}
	if a := c.HalfAngle.Radians(); !(a >= 0 && a < math.Pi) {
		return fmt.Errorf("%w: got %g", ErrHalfAngleRange, a)
	}
	return nil
}

// Validate reports whether the sphere satisfies the predicate preconditions.
func (s Sphere) Validate() error {
	if !finiteVec(s.Origin) || math.IsInf(s.Radius, 0) {
		return fmt.Errorf("sphere: %w", ErrNonFinite)
	}
	if !(s.Radius >= 0) {
		return fmt.Errorf("%w: got %g", ErrNegativeRadius, s.Radius)
	}
	return nil
}

func finiteVec(v r3.Vector) bool {
	for _, x := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
