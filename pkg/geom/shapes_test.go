package geom

import (
	"errors"
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
)

func TestSphericalConeValidate(t *testing.T) {
	valid := SphericalCone{Forward: r3.Vector{Z: 1}, Range: 10, HalfAngle: 0.3}

	tests := []struct {
		name   string
		modify func(*SphericalCone)
		want   error
	}{
		{"valid", func(*SphericalCone) {}, nil},
		{"hemisphere", func(c *SphericalCone) { c.HalfAngle = math.Pi / 2 }, nil},
		{"float32 normalized forward", func(c *SphericalCone) {
			c.Forward = r3.Vector{X: float64(float32(0.6)), Z: float64(float32(0.8))}
		}, nil},
		{"non-unit forward", func(c *SphericalCone) { c.Forward = r3.Vector{Z: 2} }, ErrNonUnitForward},
		{"zero forward", func(c *SphericalCone) { c.Forward = r3.Vector{} }, ErrNonUnitForward},
		{"zero range", func(c *SphericalCone) { c.Range = 0 }, ErrNonPositiveRange},
		{"negative range", func(c *SphericalCone) { c.Range = -1 }, ErrNonPositiveRange},
		{"NaN range", func(c *SphericalCone) { c.Range = math.NaN() }, ErrNonPositiveRange},
		{"negative angle", func(c *SphericalCone) { c.HalfAngle = -0.1 }, ErrHalfAngleRange},
		{"angle of pi", func(c *SphericalCone) { c.HalfAngle = s1.Angle(math.Pi) }, ErrHalfAngleRange},
		{"infinite origin", func(c *SphericalCone) { c.Origin.X = math.Inf(1) }, ErrNonFinite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.modify(&c)
			err := c.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSphereValidate(t *testing.T) {
	tests := []struct {
		sphere Sphere
		want   error
	}{
		{Sphere{Radius: 1}, nil},
		{Sphere{}, nil},
		{Sphere{Radius: -0.5}, ErrNegativeRadius},
		{Sphere{Radius: math.NaN()}, ErrNegativeRadius},
		{Sphere{Origin: r3.Vector{Y: math.NaN()}, Radius: 1}, ErrNonFinite},
	}

	for _, tt := range tests {
		err := tt.sphere.Validate()
		if tt.want == nil && err != nil {
			t.Errorf("%+v: Validate() = %v, want nil", tt.sphere, err)
		}
		if tt.want != nil && !errors.Is(err, tt.want) {
			t.Errorf("%+v: Validate() = %v, want %v", tt.sphere, err, tt.want)
		}
	}
}

// Release builds must stay non-crashing on contract violations.
func TestInvalidInputDoesNotPanic(t *testing.T) {
	if assertionsEnabled {
		t.Skip("assertions enabled")
	}
	cone := SphericalCone{Forward: r3.Vector{Z: 3}, Range: -1, HalfAngle: 7}
	sphere := Sphere{Origin: r3.Vector{Z: 1}, Radius: -2}

	_ = Intersects(cone, sphere)
	_ = IntersectsOptimized(cone, sphere)
	_ = IntersectsBatch(PrecomputeConeInvariants(cone), cone.Origin, cone.Forward, cone.Range, sphere)
}

func TestAssertionsPanic(t *testing.T) {
	if !assertionsEnabled {
		t.Skip("build with -tags geomassert")
	}
	defer func() {
		if recover() == nil {
			t.Error("expected panic for non-unit forward")
		}
	}()
	IntersectsOptimized(SphericalCone{Forward: r3.Vector{Z: 3}, Range: 1}, Sphere{Radius: 1})
}
