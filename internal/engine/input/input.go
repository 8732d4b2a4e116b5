// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/objview/internal/engine/camera"
	"github.com/Faultbox/objview/internal/event"
)

// Input turns SDL events into dispatcher events and keeps the keyboard and
// mouse state the camera reads each frame.
type Input struct {
	events *event.Dispatcher

	keys    map[sdl.Scancode]bool
	buttons map[uint8]bool

	mouseX, mouseY int32
	dx, dy         int32
	wheel          float32
}

// New creates an input handler publishing to events.
func New(events *event.Dispatcher) *Input {
	return &Input{
		events:  events,
		keys:    make(map[sdl.Scancode]bool),
		buttons: make(map[uint8]bool),
	}
}

// Update polls SDL events and handles them.
// Returns true if the application should quit.
func (i *Input) Update() bool {
	i.BeginFrame()
	quit := false
	for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
		if i.Handle(e) {
			quit = true
		}
	}
	return quit
}

// BeginFrame resets the per-frame mouse deltas.
func (i *Input) BeginFrame() {
	i.dx, i.dy = 0, 0
	i.wheel = 0
}

// Handle processes one SDL event and reports whether it requests quitting.
func (i *Input) Handle(e sdl.Event) bool {
	switch e := e.(type) {
	case *sdl.QuitEvent:
		return true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			i.events.Publish(&event.WindowResize{Width: int(e.Data1), Height: int(e.Data2)})
		}

	case *sdl.KeyboardEvent:
		sc := e.Keysym.Scancode
		if e.Type == sdl.KEYDOWN {
			i.keys[sc] = true
			i.events.Publish(&event.KeyPressed{Key: int(sc), Repeat: e.Repeat != 0})
			if sc == sdl.SCANCODE_ESCAPE {
				return true
			}
		} else if e.Type == sdl.KEYUP {
			i.keys[sc] = false
			i.events.Publish(&event.KeyReleased{Key: int(sc)})
		}

	case *sdl.MouseMotionEvent:
		i.mouseX, i.mouseY = e.X, e.Y
		i.dx += e.XRel
		i.dy += e.YRel

	case *sdl.MouseButtonEvent:
		i.mouseX, i.mouseY = e.X, e.Y
		i.buttons[e.Button] = e.Type == sdl.MOUSEBUTTONDOWN

	case *sdl.MouseWheelEvent:
		i.wheel += float32(e.Y)
	}
	return false
}

// KeyDown reports whether a key is held.
func (i *Input) KeyDown(sc sdl.Scancode) bool {
	return i.keys[sc]
}

// ButtonDown reports whether a mouse button (sdl.BUTTON_LEFT, ...) is held.
func (i *Input) ButtonDown(button uint8) bool {
	return i.buttons[button]
}

// MousePosition returns the last known cursor position in window pixels.
func (i *Input) MousePosition() (x, y int) {
	return int(i.mouseX), int(i.mouseY)
}

// Wheel returns the scroll amount since BeginFrame.
func (i *Input) Wheel() float32 {
	return i.wheel
}

// Movement maps the current state onto fly-camera controls: WASD and QE
// translate, left shift doubles speed and the right button enables look.
func (i *Input) Movement() camera.Movement {
	return camera.Movement{
		Forward: i.keys[sdl.SCANCODE_W],
		Back:    i.keys[sdl.SCANCODE_S],
		Left:    i.keys[sdl.SCANCODE_A],
		Right:   i.keys[sdl.SCANCODE_D],
		Down:    i.keys[sdl.SCANCODE_Q],
		Up:      i.keys[sdl.SCANCODE_E],
		Fast:    i.keys[sdl.SCANCODE_LSHIFT],
		Look:    i.buttons[sdl.BUTTON_RIGHT],
		DX:      float32(i.dx),
		DY:      float32(i.dy),
	}
}
