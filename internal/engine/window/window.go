// Package window opens the SDL2 window the standalone viewer draws into,
// with an OpenGL 4.1 core context.
package window

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"
)

// Config describes the window to open.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
}

// Window owns the SDL window and its GL context. It must be created and
// used on the locked main thread.
type Window struct {
	win *sdl.Window
	ctx sdl.GLContext
	log *zap.Logger
}

type glAttribute struct {
	attr  sdl.GLattr
	value int
}

// glAttributes requests a double-buffered 4.1 core context with a 24-bit
// depth buffer, the newest core profile macOS offers.
func glAttributes() []glAttribute {
	return []glAttribute{
		{sdl.GL_CONTEXT_MAJOR_VERSION, 4},
		{sdl.GL_CONTEXT_MINOR_VERSION, 1},
		{sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE},
		{sdl.GL_DOUBLEBUFFER, 1},
		{sdl.GL_DEPTH_SIZE, 24},
	}
}

// windowFlags maps cfg onto SDL window flags. Fullscreen uses the desktop
// resolution rather than switching display modes.
func windowFlags(cfg Config) uint32 {
	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}
	return flags
}

// swapInterval maps the vsync setting onto SDL_GL_SetSwapInterval.
func swapInterval(vsync bool) int {
	if vsync {
		return 1
	}
	return 0
}

// New opens the window, creates its context and loads the GL entry points.
func New(cfg Config, log *zap.Logger) (*Window, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("initializing SDL: %w", err)
	}
	for _, a := range glAttributes() {
		if err := sdl.GLSetAttribute(a.attr, a.value); err != nil {
			sdl.Quit()
			return nil, fmt.Errorf("setting GL attribute %d: %w", a.attr, err)
		}
	}

	w := &Window{log: log}
	var err error
	w.win, err = sdl.CreateWindow(cfg.Title,
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width), int32(cfg.Height), windowFlags(cfg))
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("creating window: %w", err)
	}
	if w.ctx, err = w.win.GLCreateContext(); err != nil {
		w.Close()
		return nil, fmt.Errorf("creating GL context: %w", err)
	}
	if err := gl.Init(); err != nil {
		w.Close()
		return nil, fmt.Errorf("loading GL: %w", err)
	}
	if err := sdl.GLSetSwapInterval(swapInterval(cfg.VSync)); err != nil {
		log.Warn("swap interval not applied", zap.Bool("vsync", cfg.VSync), zap.Error(err))
	}

	width, height := w.Size()
	log.Info("window open",
		zap.String("title", cfg.Title),
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.String("gl", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)
	return w, nil
}

// Close releases the context and window and shuts SDL down. It is safe to
// call on a partly constructed Window.
func (w *Window) Close() {
	if w.ctx != nil {
		sdl.GLDeleteContext(w.ctx)
		w.ctx = nil
	}
	if w.win != nil {
		w.win.Destroy()
		w.win = nil
	}
	sdl.Quit()
	w.log.Debug("window closed")
}

// SwapBuffers presents the back buffer.
func (w *Window) SwapBuffers() { w.win.GLSwap() }

// Size returns the drawable size in pixels.
func (w *Window) Size() (width, height int) {
	wi, hi := w.win.GLGetDrawableSize()
	return int(wi), int(hi)
}

// SetTitle replaces the title bar text.
func (w *Window) SetTitle(title string) { w.win.SetTitle(title) }
