// Package camera provides camera implementations for 3D rendering.
package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// Projection defaults.
const (
	DefaultFovY = gomath.Pi * 0.25
	DefaultNear = 0.1
	DefaultFar  = 1000.0
)

// Perspective returns a projection matrix for the given viewport size with
// the default field of view and clip planes. A zero height is treated as 1.
func Perspective(width, height int) mgl32.Mat4 {
	if height <= 0 {
		height = 1
	}
	if width <= 0 {
		width = 1
	}
	return mgl32.Perspective(DefaultFovY, float32(width)/float32(height), DefaultNear, DefaultFar)
}

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	Center mgl32.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        17.0,
		RotationX:       0.6,
		RotationY:       gomath.Pi * 0.25,
		MinDistance:     0.5,
		MaxDistance:     500.0,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() mgl32.Vec3 {
	sx, cx := gomath.Sincos(float64(c.RotationX))
	sy, cy := gomath.Sincos(float64(c.RotationY))
	offset := mgl32.Vec3{
		float32(cx * sy),
		float32(sx),
		float32(cx * cy),
	}
	return c.Center.Add(offset.Mul(c.Distance))
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Center, mgl32.Vec3{0, 1, 0})
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity
	c.RotationX = mgl32.Clamp(c.RotationX, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = mgl32.Clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

// FitToBounds centres the camera on a bounding box and backs off far enough
// to keep it in view.
func (c *OrbitCamera) FitToBounds(minB, maxB mgl32.Vec3) {
	c.Center = minB.Add(maxB).Mul(0.5)
	c.Distance = fitDistance(minB, maxB)
	if c.Distance > c.MaxDistance {
		c.MaxDistance = c.Distance * 2
	}
	c.RotationX = 0.6 // Look down at ~35 degrees
	c.RotationY = gomath.Pi * 0.25
}

// fitDistance returns the distance at which a sphere enclosing the box fills
// the default vertical field of view.
func fitDistance(minB, maxB mgl32.Vec3) float32 {
	radius := maxB.Sub(minB).Len() * 0.5
	if radius <= 0 {
		radius = 1
	}
	return radius / float32(gomath.Sin(DefaultFovY*0.5))
}
