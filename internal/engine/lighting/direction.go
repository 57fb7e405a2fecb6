package lighting

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// SpotDirection converts yaw/pitch angles in degrees to a beam direction.
// Yaw is rotation around the Y axis (0 faces +Z), pitch is elevation from
// the horizon (negative points down). The result is normalized.
func SpotDirection(yaw, pitch float32) mgl32.Vec3 {
	yawRad := float64(mgl32.DegToRad(yaw))
	pitchRad := float64(mgl32.DegToRad(pitch))

	x := math.Cos(pitchRad) * math.Sin(yawRad)
	y := math.Sin(pitchRad)
	z := math.Cos(pitchRad) * math.Cos(yawRad)

	return mgl32.Vec3{float32(x), float32(y), float32(z)}.Normalize()
}
