// Package lighting provides spot light definitions for light culling and GPU upload.
package lighting

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"

	"github.com/Faultbox/sectorcull/pkg/geom"
)

// MaxSpotLights is the maximum number of spot lights supported in shaders.
const MaxSpotLights = 32

// DefaultRange replaces non-positive light ranges.
const DefaultRange = 100.0

// SpotLight represents a spot light source.
type SpotLight struct {
	Position   mgl32.Vec3 // World position
	Direction  mgl32.Vec3 // Beam axis, normalized on use
	Color      [3]float32 // RGB color (0-1 range)
	Range      float32    // Maximum influence distance
	OuterAngle float32    // Half-angle of the beam in degrees
	Intensity  float32    // Light intensity multiplier
}

// Sanitize clamps color to 0-1 and replaces a non-positive range with DefaultRange.
func (l SpotLight) Sanitize() SpotLight {
	// Clamp color values to 0-1 range (authoring tools may exceed it)
	for i := 0; i < 3; i++ {
		l.Color[i] = mgl32.Clamp(l.Color[i], 0, 1)
	}
	if l.Range <= 0 {
		l.Range = DefaultRange
	}
	if l.Intensity == 0 {
		l.Intensity = 1.0
	}
	return l
}

// Cone returns the bounding spherical sector of the light.
func (l SpotLight) Cone() (geom.SphericalCone, error) {
	if l.Direction.Len() == 0 {
		return geom.SphericalCone{}, fmt.Errorf("spot light direction: %w", geom.ErrNonUnitForward)
	}
	dir := l.Direction.Normalize()

	cone := geom.SphericalCone{
		Origin:    vec64(l.Position),
		Forward:   vec64(dir),
		Range:     float64(l.Range),
		HalfAngle: s1.Angle(mgl32.DegToRad(l.OuterAngle)),
	}
	if err := cone.Validate(); err != nil {
		return geom.SphericalCone{}, fmt.Errorf("spot light: %w", err)
	}
	return cone, nil
}

func vec64(v mgl32.Vec3) r3.Vector {
	return r3.Vector{X: float64(v.X()), Y: float64(v.Y()), Z: float64(v.Z())}
}

// SpotLightBuffer holds lights for GPU upload.
type SpotLightBuffer struct {
	Lights []SpotLight
	Count  int
}

// NewSpotLightBuffer creates an empty spot light buffer.
func NewSpotLightBuffer() *SpotLightBuffer {
	return &SpotLightBuffer{
		Lights: make([]SpotLight, 0, MaxSpotLights),
	}
}

// Clear removes all lights from the buffer.
func (b *SpotLightBuffer) Clear() {
	b.Lights = b.Lights[:0]
	b.Count = 0
}

// AddLight adds a spot light to the buffer.
// Returns false if buffer is full.
func (b *SpotLightBuffer) AddLight(light SpotLight) bool {
	if b.Count >= MaxSpotLights {
		return false
	}
	b.Lights = append(b.Lights, light.Sanitize())
	b.Count++
	return true
}

// SetLights replaces all lights in the buffer.
// Truncates to MaxSpotLights if necessary.
func (b *SpotLightBuffer) SetLights(lights []SpotLight) {
	b.Clear()
	for _, l := range lights {
		if !b.AddLight(l) {
			break
		}
	}
}

// GetPositions returns positions as a flat float32 slice for GPU upload.
// Format: [x0, y0, z0, x1, y1, z1, ...]
func (b *SpotLightBuffer) GetPositions() []float32 {
	result := make([]float32, MaxSpotLights*3)
	for i, light := range b.Lights {
		copy(result[i*3:i*3+3], light.Position[:])
	}
	return result
}

// GetDirections returns normalized beam directions as a flat float32 slice.
func (b *SpotLightBuffer) GetDirections() []float32 {
	result := make([]float32, MaxSpotLights*3)
	for i, light := range b.Lights {
		if light.Direction.Len() == 0 {
			continue
		}
		dir := light.Direction.Normalize()
		copy(result[i*3:i*3+3], dir[:])
	}
	return result
}

// GetRanges returns ranges as a flat float32 slice for GPU upload.
func (b *SpotLightBuffer) GetRanges() []float32 {
	result := make([]float32, MaxSpotLights)
	for i, light := range b.Lights {
		result[i] = light.Range
	}
	return result
}

// GetCosHalfAngles returns cos(half-angle) per light, the form shaders test
// the beam against.
func (b *SpotLightBuffer) GetCosHalfAngles() []float32 {
	result := make([]float32, MaxSpotLights)
	for i, light := range b.Lights {
		result[i] = float32(math.Cos(float64(mgl32.DegToRad(light.OuterAngle))))
	}
	return result
}

// Cones converts every buffered light to its bounding sector.
func (b *SpotLightBuffer) Cones() ([]geom.SphericalCone, error) {
	cones := make([]geom.SphericalCone, 0, len(b.Lights))
	for i, light := range b.Lights {
		c, err := light.Cone()
		if err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
		cones = append(cones, c)
	}
	return cones, nil
}
