package geom

import (
	"math"
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
)

func TestPrecomputeConeInvariants(t *testing.T) {
	tests := []struct {
		angle s1.Angle
		rng   float64
		cos   float64
		sin   float64
		inv   float64
	}{
		{0, 1, 1, 0, 1},
		{math.Pi / 2, 4, 0, 1, 0.25},
		{math.Pi / 3, 10, 0.5, math.Sqrt(3) / 2, 0.1},
	}

	for _, tt := range tests {
		inv := PrecomputeConeInvariants(SphericalCone{Forward: r3.Vector{Z: 1}, Range: tt.rng, HalfAngle: tt.angle})
		if math.Abs(inv.CosAlpha-tt.cos) > 1e-15 {
			t.Errorf("angle %v: CosAlpha = %g, want %g", tt.angle, inv.CosAlpha, tt.cos)
		}
		if math.Abs(inv.SinAlpha-tt.sin) > 1e-15 {
			t.Errorf("angle %v: SinAlpha = %g, want %g", tt.angle, inv.SinAlpha, tt.sin)
		}
		if inv.InvRange != tt.inv {
			t.Errorf("range %g: InvRange = %g, want %g", tt.rng, inv.InvRange, tt.inv)
		}
	}
}

func TestBatchMatchesOptimized(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 500; i++ {
		c := randCone(rng)
		inv := PrecomputeConeInvariants(c)

		for j := 0; j < 200; j++ {
			var s Sphere
			if j%2 == 0 {
				s = randSphere(rng)
			} else {
				s = Sphere{
					Origin: c.Origin.Add(randUnit(rng).Mul(rng.Float64() * c.Range)),
					Radius: randPositive(rng, c.Range/2),
				}
			}
			if got, want := IntersectsBatch(inv, c.Origin, c.Forward, c.Range, s), IntersectsOptimized(c, s); got != want {
				t.Fatalf("cone %d sphere %d: batch=%v optimized=%v\ncone=%+v\nsphere=%+v", i, j, got, want, c, s)
			}
		}
	}
}

func BenchmarkIntersects(b *testing.B) {
	rng := rand.New(rand.NewSource(8))
	c := randCone(rng)
	spheres := make([]Sphere, 1024)
	for i := range spheres {
		spheres[i] = Sphere{Origin: c.Origin.Add(randPoint(rng, c.Range)), Radius: randPositive(rng, c.Range/8)}
	}

	b.Run("reference", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			Intersects(c, spheres[i&1023])
		}
	})
	b.Run("optimized", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			IntersectsOptimized(c, spheres[i&1023])
		}
	})
	b.Run("batch", func(b *testing.B) {
		inv := PrecomputeConeInvariants(c)
		for i := 0; i < b.N; i++ {
			IntersectsBatch(inv, c.Origin, c.Forward, c.Range, spheres[i&1023])
		}
	})
}
