// Package lighting converts light angles into shader directions.
package lighting

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Default sun placement: the light travels along (-1, -1, -1).
const (
	DefaultAzimuth   = 45
	DefaultElevation = 35.26439
)

// SunDirection converts azimuth/elevation angles in degrees to a unit vector
// pointing towards the sun. Azimuth rotates around the Y axis starting at +Z;
// elevation is measured up from the horizon.
func SunDirection(azimuth, elevation float32) mgl32.Vec3 {
	az := float64(mgl32.DegToRad(azimuth))
	el := float64(mgl32.DegToRad(elevation))

	// Spherical to Cartesian conversion
	return mgl32.Vec3{
		float32(math.Cos(el) * math.Sin(az)),
		float32(math.Sin(el)),
		float32(math.Cos(el) * math.Cos(az)),
	}
}

// LightDirection returns the direction the sunlight travels, the value the
// obj program expects in uLightDir.
func LightDirection(azimuth, elevation float32) mgl32.Vec3 {
	return SunDirection(azimuth, elevation).Mul(-1)
}
