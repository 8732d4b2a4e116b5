package lighting

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func vecNear(a, b mgl32.Vec3, eps float32) bool {
	return a.Sub(b).Len() < eps
}

func TestSunDirection(t *testing.T) {
	tests := []struct {
		name      string
		azimuth   float32
		elevation float32
		want      mgl32.Vec3
	}{
		{"north horizon", 0, 0, mgl32.Vec3{0, 0, 1}},
		{"east horizon", 90, 0, mgl32.Vec3{1, 0, 0}},
		{"zenith", 123, 90, mgl32.Vec3{0, 1, 0}},
		{"south low", 180, 30, mgl32.Vec3{0, 0.5, -0.8660254}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SunDirection(tt.azimuth, tt.elevation)
			if !vecNear(got, tt.want, 1e-5) {
				t.Errorf("SunDirection(%v, %v) = %v, want %v", tt.azimuth, tt.elevation, got, tt.want)
			}
			if l := got.Len(); l < 0.9999 || l > 1.0001 {
				t.Errorf("length = %v, want 1", l)
			}
		})
	}
}

func TestLightDirectionDefault(t *testing.T) {
	got := LightDirection(DefaultAzimuth, DefaultElevation)
	want := mgl32.Vec3{-1, -1, -1}.Normalize()
	if !vecNear(got, want, 1e-4) {
		t.Errorf("LightDirection(defaults) = %v, want %v", got, want)
	}
}
