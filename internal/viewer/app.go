package viewer

import (
	"fmt"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/objview/internal/config"
	"github.com/Faultbox/objview/internal/engine/camera"
	"github.com/Faultbox/objview/internal/engine/input"
	"github.com/Faultbox/objview/internal/engine/scene"
	"github.com/Faultbox/objview/internal/engine/window"
	"github.com/Faultbox/objview/internal/event"
	"github.com/Faultbox/objview/internal/texture"
	"github.com/Faultbox/objview/pkg/encoding"
	"github.com/Faultbox/objview/pkg/objmodel"
)

// App is the standalone viewer: one window, one model, a free camera.
type App struct {
	cfg     *config.Config
	log     *zap.Logger
	running bool

	window   *window.Window
	events   *event.Dispatcher
	input    *input.Input
	textures *texture.Manager
	scene    *scene.Scene
	camera   *camera.FreeCamera
	session  *Session
	stats    *FrameStats

	subs []event.Subscription
}

// Create opens the window, builds the renderers and loads cfg.Viewer.Model.
// A model that fails to load is logged; the viewer still starts.
func Create(cfg *config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	charset, err := encoding.Lookup(cfg.Textures.Charset)
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:    cfg,
		log:    log,
		events: event.NewDispatcher(log.Named("event")),
		stats:  NewFrameStats(),
	}

	// Create window (this also creates OpenGL context)
	a.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	}, log.Named("window"))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	fsys := objmodel.OSFileSystem{}
	a.textures, err = texture.NewManager(texture.Options{
		Source:   fsys,
		Uploader: scene.GLUploader{Anisotropy: 8},
		MaxSize:  cfg.Textures.MaxSize,
		Logger:   log.Named("texture"),
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create texture manager: %w", err)
	}

	a.scene, err = scene.New(scene.Config{
		Background:     cfg.Viewer.Background,
		RenderSkybox:   cfg.Viewer.RenderSkybox,
		SkyboxDir:      cfg.Viewer.SkyboxDir,
		MaxTexture:     cfg.Textures.MaxSize,
		LightAzimuth:   cfg.Viewer.LightAzimuth,
		LightElevation: cfg.Viewer.LightElevation,
	}, a.textures, fsys, log.Named("scene"))
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}

	w, h := a.window.Size()
	gl.Viewport(0, 0, int32(w), int32(h))
	a.camera = camera.NewFreeCamera(w, h, cfg.Viewer.CameraSpeed)
	a.input = input.New(a.events)

	a.session = NewSession(a.events, objmodel.Options{
		FS:      fsys,
		Logger:  log.Named("objmodel"),
		Charset: charset,
	}, log)
	a.session.OnChange = a.scene.SetModel

	a.subs = append(a.subs,
		event.Subscribe(a.events, a.onResize),
		event.Subscribe(a.events, a.onKey),
		event.Subscribe(a.events, a.onLoaded),
		event.Subscribe(a.events, a.onLoadFailed),
	)

	if cfg.Viewer.Model != "" {
		a.events.Publish(&event.ModelLoadRequested{Path: cfg.Viewer.Model, Scale: cfg.Viewer.Scale})
	}

	log.Info("viewer initialized")
	return a, nil
}

// Events returns the viewer's dispatcher.
func (a *App) Events() *event.Dispatcher {
	return a.events
}

// Run starts the main loop and returns when the window is closed.
func (a *App) Run() error {
	a.running = true
	lastTime := time.Now()

	a.log.Info("starting render loop")

	for a.running {
		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now

		// 1. Process input
		if a.input.Update() {
			a.running = false
			break
		}
		a.events.Flush()

		// 2. Update
		a.camera.Update(float32(dt.Seconds()), a.input.Movement())

		// 3. Render
		a.scene.Render(a.camera)
		if code := gl.GetError(); code != gl.NO_ERROR {
			return fmt.Errorf("render error: GL error 0x%x", code)
		}

		// 4. Present
		a.window.SwapBuffers()

		if a.stats.Tick(dt) && a.cfg.Viewer.ShowFrameData {
			a.window.SetTitle(fmt.Sprintf("%s - %.3f ms/frame (%.1f FPS)",
				a.title(), a.stats.Milliseconds(), a.stats.FPS()))
		}
	}

	return nil
}

func (a *App) title() string {
	path, _ := a.session.Current()
	if path == "" {
		return a.cfg.Window.Title
	}
	return a.cfg.Window.Title + " - " + path
}

// onResize rebuilds the projection and viewport for the new size.
func (a *App) onResize(e *event.WindowResize) {
	a.camera.Resize(e.Width, e.Height)
	gl.Viewport(0, 0, int32(e.Width), int32(e.Height))
	a.log.Debug("window resized", zap.Int("width", e.Width), zap.Int("height", e.Height))
	e.Handle()
}

// onKey handles viewer shortcuts: F frames the model, K toggles the skybox.
func (a *App) onKey(e *event.KeyPressed) {
	if e.Repeat {
		return
	}
	switch sdl.Scancode(e.Key) {
	case sdl.SCANCODE_F:
		a.frameModel()
		e.Handle()
	case sdl.SCANCODE_K:
		a.scene.RenderSkybox = !a.scene.RenderSkybox
		e.Handle()
	}
}

func (a *App) onLoaded(e *event.ModelLoaded) {
	a.window.SetTitle(a.title())
}

func (a *App) onLoadFailed(e *event.ModelLoadFailed) {
	a.log.Error("model load failed",
		zap.String("file", e.Path),
		zap.String("fallback", e.Fallback),
		zap.Error(e.Err))
	a.window.SetTitle(a.title())
}

func (a *App) frameModel() {
	m := a.session.Model()
	if !m.IsLoaded() {
		return
	}
	minB, maxB := scene.ModelBounds(m)
	a.camera.FitToBounds(minB, maxB)
}

// Close releases everything Create built, in reverse order.
func (a *App) Close() {
	a.log.Info("closing viewer")

	for _, s := range a.subs {
		a.events.Unsubscribe(s)
	}
	a.subs = nil
	if a.session != nil {
		a.session.Close()
	}
	if a.scene != nil {
		a.scene.Destroy()
	}
	if a.textures != nil {
		a.textures.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
