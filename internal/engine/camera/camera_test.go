package camera

import (
	gomath "math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-4

// vecNear compares with an absolute tolerance; components near zero pick up
// float noise from the trig in the rotations.
func vecNear(a, b mgl32.Vec3) bool {
	return a.Sub(b).Len() < eps
}

func matNear(a, b mgl32.Mat4) bool {
	for i := range a {
		if d := a[i] - b[i]; d > eps || d < -eps {
			return false
		}
	}
	return true
}

func TestNewFreeCamera(t *testing.T) {
	c := NewFreeCamera(800, 600, 10)

	if got := c.Position(); !vecNear(got, mgl32.Vec3{10, 10, 10}) {
		t.Errorf("Position = %v, want (10,10,10)", got)
	}
	// Camera looks at the origin: backward axis points from origin to eye.
	back := c.World().Col(2).Vec3()
	want := mgl32.Vec3{1, 1, 1}.Normalize()
	if !vecNear(back, want) {
		t.Errorf("backward axis = %v, want %v", back, want)
	}
	// View is the inverse of the world transform.
	if !matNear(c.View().Mul4(c.World()), mgl32.Ident4()) {
		t.Error("View * World is not identity")
	}
}

func TestFreeCameraTranslate(t *testing.T) {
	tests := []struct {
		name string
		move Movement
		axis int
		sign float32
		mul  float32
	}{
		{"forward", Movement{Forward: true}, 2, -1, 1},
		{"back", Movement{Back: true}, 2, 1, 1},
		{"left", Movement{Left: true}, 0, -1, 1},
		{"right", Movement{Right: true}, 0, 1, 1},
		{"down", Movement{Down: true}, 1, -1, 1},
		{"up", Movement{Up: true}, 1, 1, 1},
		{"fast forward", Movement{Forward: true, Fast: true}, 2, -1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewFreeCamera(800, 600, 10)
			start := c.Position()
			axis := c.World().Col(tt.axis).Vec3()

			c.Update(0.5, tt.move)

			want := start.Add(axis.Mul(tt.sign * tt.mul * 5))
			if got := c.Position(); !vecNear(got, want) {
				t.Errorf("Position = %v, want %v", got, want)
			}
		})
	}
}

func TestFreeCameraLookRequiresButton(t *testing.T) {
	c := NewFreeCamera(800, 600, 10)
	before := c.World()
	c.Update(0.016, Movement{DX: 40, DY: 40})
	if c.World() != before {
		t.Error("mouse motion without Look changed the camera")
	}
}

func TestFreeCameraYaw(t *testing.T) {
	c := NewFreeCamera(800, 600, 10)
	c.LookAt(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})

	// 150*pi/2 pixels to the left turns the camera a quarter turn.
	c.Update(0, Movement{Look: true, DX: -150 * gomath.Pi / 2})

	back := c.World().Col(2).Vec3()
	if !vecNear(back, mgl32.Vec3{1, 0, 0}) {
		t.Errorf("backward axis = %v, want (1,0,0)", back)
	}
	if !vecNear(c.Position(), mgl32.Vec3{0, 0, 5}) {
		t.Errorf("yaw moved the camera to %v", c.Position())
	}
}

func TestFreeCameraPitch(t *testing.T) {
	c := NewFreeCamera(800, 600, 10)
	c.LookAt(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})

	// Dragging down by a quarter turn tilts the view to face straight down.
	c.Update(0, Movement{Look: true, DY: 150 * gomath.Pi / 2})

	back := c.World().Col(2).Vec3()
	if !vecNear(back, mgl32.Vec3{0, 1, 0}) {
		t.Errorf("backward axis = %v, want (0,1,0)", back)
	}
	right := c.World().Col(0).Vec3()
	if !vecNear(right, mgl32.Vec3{1, 0, 0}) {
		t.Errorf("pitch changed right axis to %v", right)
	}
}

func TestFreeCameraFitToBounds(t *testing.T) {
	c := NewFreeCamera(800, 600, 10)
	c.FitToBounds(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1})

	dist := c.Position().Len()
	want := float32(gomath.Sqrt(3) / gomath.Sin(DefaultFovY/2))
	if gomath.Abs(float64(dist-want)) > 1e-3 {
		t.Errorf("distance = %v, want %v", dist, want)
	}
	// Still looking along the original diagonal.
	dir := c.Position().Normalize()
	if !vecNear(dir, mgl32.Vec3{1, 1, 1}.Normalize()) {
		t.Errorf("direction = %v", dir)
	}
}

func TestPerspective(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		aspect        float32
	}{
		{"landscape", 1280, 720, 1280.0 / 720.0},
		{"square", 512, 512, 1},
		{"zero height", 640, 0, 640},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Perspective(tt.width, tt.height)
			want := mgl32.Perspective(DefaultFovY, tt.aspect, DefaultNear, DefaultFar)
			if !matNear(got, want) {
				t.Errorf("Perspective(%d, %d) = %v, want %v", tt.width, tt.height, got, want)
			}
		})
	}
}

func TestOrbitCamera(t *testing.T) {
	c := NewOrbitCamera()
	c.Center = mgl32.Vec3{1, 2, 3}
	c.Distance = 10
	c.RotationX = 0
	c.RotationY = 0

	if got := c.Position(); !vecNear(got, mgl32.Vec3{1, 2, 13}) {
		t.Errorf("Position = %v, want (1,2,13)", got)
	}

	c.HandleDrag(0, 10000)
	if c.RotationX != c.MaxPitch {
		t.Errorf("pitch = %v, want clamped to %v", c.RotationX, c.MaxPitch)
	}

	c.HandleZoom(1000)
	if c.Distance != c.MinDistance {
		t.Errorf("distance = %v, want clamped to %v", c.Distance, c.MinDistance)
	}
}

func TestOrbitCameraFitToBounds(t *testing.T) {
	c := NewOrbitCamera()
	c.FitToBounds(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{2, 4, 6})

	if !vecNear(c.Center, mgl32.Vec3{1, 2, 3}) {
		t.Errorf("Center = %v, want (1,2,3)", c.Center)
	}
	if c.Distance <= 0 || c.Distance > c.MaxDistance {
		t.Errorf("Distance = %v out of range", c.Distance)
	}
}
