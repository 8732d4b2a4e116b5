package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// LookRadiansPerPixel is the mouse-look rotation per pixel of drag.
const LookRadiansPerPixel = 1.0 / 150.0

// Movement is one frame of camera input.
type Movement struct {
	Forward, Back bool // W, S
	Left, Right   bool // A, D
	Down, Up      bool // Q, E
	Fast          bool // Left shift doubles speed

	Look   bool    // Right mouse button held
	DX, DY float32 // Mouse motion in pixels since last frame
}

// FreeCamera is a fly camera stored as a world transform: column 0 is right,
// column 1 up, column 2 backward and column 3 the position.
type FreeCamera struct {
	world      mgl32.Mat4
	projection mgl32.Mat4

	Speed   float32 // Units per second
	WorldUp mgl32.Vec3
}

// NewFreeCamera creates a camera at (10,10,10) looking at the origin.
func NewFreeCamera(width, height int, speed float32) *FreeCamera {
	c := &FreeCamera{
		projection: Perspective(width, height),
		Speed:      speed,
		WorldUp:    mgl32.Vec3{0, 1, 0},
	}
	c.LookAt(mgl32.Vec3{10, 10, 10}, mgl32.Vec3{}, c.WorldUp)
	return c
}

// LookAt places the camera at eye facing center.
func (c *FreeCamera) LookAt(eye, center, up mgl32.Vec3) {
	c.world = mgl32.LookAtV(eye, center, up).Inv()
}

// World returns the camera's world transform.
func (c *FreeCamera) World() mgl32.Mat4 { return c.world }

// SetWorld replaces the camera's world transform.
func (c *FreeCamera) SetWorld(w mgl32.Mat4) { c.world = w }

// Position returns the camera position.
func (c *FreeCamera) Position() mgl32.Vec3 { return c.world.Col(3).Vec3() }

// View returns the inverse of the world transform.
func (c *FreeCamera) View() mgl32.Mat4 { return c.world.Inv() }

// Projection returns the current projection matrix.
func (c *FreeCamera) Projection() mgl32.Mat4 { return c.projection }

// ProjectionView returns Projection * View.
func (c *FreeCamera) ProjectionView() mgl32.Mat4 {
	return c.projection.Mul4(c.View())
}

// Resize rebuilds the projection for a new viewport size.
func (c *FreeCamera) Resize(width, height int) {
	c.projection = Perspective(width, height)
}

// Update applies one frame of movement. Translation follows the camera's
// own axes; mouse look pitches around the local right axis and yaws around
// WorldUp.
func (c *FreeCamera) Update(dt float32, m Movement) {
	right := c.world.Col(0)
	up := c.world.Col(1)
	forward := c.world.Col(2)
	pos := c.world.Col(3)

	step := dt * c.Speed
	if m.Fast {
		step *= 2
	}

	if m.Forward {
		pos = pos.Sub(forward.Mul(step))
	}
	if m.Back {
		pos = pos.Add(forward.Mul(step))
	}
	if m.Left {
		pos = pos.Sub(right.Mul(step))
	}
	if m.Right {
		pos = pos.Add(right.Mul(step))
	}
	if m.Down {
		pos = pos.Sub(up.Mul(step))
	}
	if m.Up {
		pos = pos.Add(up.Mul(step))
	}
	c.world.SetCol(3, pos)

	if !m.Look {
		return
	}
	if m.DY != 0 {
		rot := mgl32.HomogRotate3D(-m.DY*LookRadiansPerPixel, right.Vec3().Normalize())
		right, up, forward = rot.Mul4x1(right), rot.Mul4x1(up), rot.Mul4x1(forward)
	}
	if m.DX != 0 {
		rot := mgl32.HomogRotate3D(-m.DX*LookRadiansPerPixel, c.WorldUp)
		right, up, forward = rot.Mul4x1(right), rot.Mul4x1(up), rot.Mul4x1(forward)
	}
	c.world.SetCol(0, right)
	c.world.SetCol(1, up)
	c.world.SetCol(2, forward)
}

// FitToBounds moves the camera back along its current view direction until
// the bounding box fits the field of view.
func (c *FreeCamera) FitToBounds(minB, maxB mgl32.Vec3) {
	center := minB.Add(maxB).Mul(0.5)
	back := c.world.Col(2).Vec3()
	if back.Len() == 0 {
		back = mgl32.Vec3{0, 0, 1}
	}
	eye := center.Add(back.Normalize().Mul(fitDistance(minB, maxB)))
	c.LookAt(eye, center, c.WorldUp)
}
