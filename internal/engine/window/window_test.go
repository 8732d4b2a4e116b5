package window

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func TestWindowFlags(t *testing.T) {
	tests := []struct {
		name       string
		cfg        Config
		fullscreen bool
	}{
		{"windowed", Config{Width: 800, Height: 600}, false},
		{"fullscreen", Config{Fullscreen: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := windowFlags(tt.cfg)
			if flags&sdl.WINDOW_OPENGL == 0 || flags&sdl.WINDOW_RESIZABLE == 0 {
				t.Errorf("flags %#x missing OPENGL or RESIZABLE", flags)
			}
			if got := flags&sdl.WINDOW_FULLSCREEN_DESKTOP == sdl.WINDOW_FULLSCREEN_DESKTOP; got != tt.fullscreen {
				t.Errorf("desktop fullscreen = %v, want %v", got, tt.fullscreen)
			}
		})
	}
}

func TestGLAttributes(t *testing.T) {
	want := map[sdl.GLattr]int{
		sdl.GL_CONTEXT_MAJOR_VERSION: 4,
		sdl.GL_CONTEXT_MINOR_VERSION: 1,
		sdl.GL_CONTEXT_PROFILE_MASK:  sdl.GL_CONTEXT_PROFILE_CORE,
		sdl.GL_DOUBLEBUFFER:          1,
		sdl.GL_DEPTH_SIZE:            24,
	}
	got := glAttributes()
	if len(got) != len(want) {
		t.Fatalf("got %d attributes, want %d", len(got), len(want))
	}
	for _, a := range got {
		if v, ok := want[a.attr]; !ok || v != a.value {
			t.Errorf("attribute %d = %d, want %d", a.attr, a.value, v)
		}
	}
}

func TestSwapInterval(t *testing.T) {
	if swapInterval(true) != 1 || swapInterval(false) != 0 {
		t.Error("swapInterval should map vsync on/off to 1/0")
	}
}
