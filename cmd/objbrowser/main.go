// objbrowser is an interactive OBJ model browser with an ImGui control panel.
package main

import (
	"flag"
	"fmt"
	_ "image/jpeg" // JPEG decoder
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/objview/internal/config"
	"github.com/Faultbox/objview/internal/engine/camera"
	"github.com/Faultbox/objview/internal/engine/framebuffer"
	"github.com/Faultbox/objview/internal/engine/scene"
	"github.com/Faultbox/objview/internal/engine/ui"
	"github.com/Faultbox/objview/internal/event"
	"github.com/Faultbox/objview/internal/logger"
	"github.com/Faultbox/objview/internal/texture"
	"github.com/Faultbox/objview/internal/viewer"
	"github.com/Faultbox/objview/pkg/encoding"
	"github.com/Faultbox/objview/pkg/objmodel"
)

func main() {
	runtime.LockOSThread()

	snapshotDir := flag.String("snapshots", filepath.Join(os.TempDir(), "objbrowser"), "Directory for F12 snapshots")
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	app, err := NewApp(cfg, *snapshotDir, logger.Named("browser"))
	if err != nil {
		logger.Error("failed to create browser", zap.Error(err))
		os.Exit(1)
	}
	defer app.Close()

	app.Run()

	if err := cfg.Save(); err != nil {
		logger.Warn("failed to save settings", zap.Error(err))
	}
}

// App represents the model browser state.
type App struct {
	cfg *config.Config
	log *zap.Logger

	ui       *ui.Backend
	events   *event.Dispatcher
	textures *texture.Manager
	scene    *scene.Scene
	session  *viewer.Session
	stats    *viewer.FrameStats
	subs     []event.Subscription

	// Preview state
	preview   *framebuffer.Framebuffer
	free      *camera.FreeCamera
	orbit     *camera.OrbitCamera
	useOrbit  bool
	lastFrame time.Time
	hovered   bool

	// Picking state
	selected  int // Mesh index, -1 for none
	pressAt   imgui.Vec2
	pressed   bool
	gridPoint mgl32.Vec3
	gridHit   bool

	// Options panel state
	modelPath  string
	scale      float32
	background [3]float32
	status     string
	statusErr  bool

	// Snapshot state
	snapshotDir       string
	snapshotRequested bool
	notifyMsg         string
	notifyTime        time.Time
}

// NewApp creates the browser window and its renderers.
func NewApp(cfg *config.Config, snapshotDir string, log *zap.Logger) (*App, error) {
	charset, err := encoding.Lookup(cfg.Textures.Charset)
	if err != nil {
		return nil, err
	}

	app := &App{
		cfg:         cfg,
		log:         log,
		events:      event.NewDispatcher(log.Named("event")),
		stats:       viewer.NewFrameStats(),
		orbit:       camera.NewOrbitCamera(),
		useOrbit:    true,
		selected:    -1,
		modelPath:   cfg.Viewer.Model,
		scale:       cfg.Viewer.Scale,
		background:  cfg.Viewer.Background,
		snapshotDir: snapshotDir,
	}

	if err := os.MkdirAll(app.snapshotDir, 0755); err != nil {
		log.Warn("could not create snapshot dir", zap.Error(err))
	}

	app.ui, err = ui.NewBackend(ui.Config{
		Title:      "OBJ Browser",
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Background: mgl32.Vec3{0.1, 0.1, 0.12},
	}, log.Named("ui"))
	if err != nil {
		return nil, err
	}

	fsys := objmodel.OSFileSystem{}
	app.textures, err = texture.NewManager(texture.Options{
		Source:   fsys,
		Uploader: scene.GLUploader{Anisotropy: 8},
		MaxSize:  cfg.Textures.MaxSize,
		Logger:   log.Named("texture"),
	})
	if err != nil {
		return nil, fmt.Errorf("texture manager: %w", err)
	}

	app.scene, err = scene.New(scene.Config{
		Background:     cfg.Viewer.Background,
		RenderSkybox:   cfg.Viewer.RenderSkybox,
		SkyboxDir:      cfg.Viewer.SkyboxDir,
		MaxTexture:     cfg.Textures.MaxSize,
		LightAzimuth:   cfg.Viewer.LightAzimuth,
		LightElevation: cfg.Viewer.LightElevation,
	}, app.textures, fsys, log.Named("scene"))
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("scene: %w", err)
	}

	app.preview, err = framebuffer.New(previewInitialSize, previewInitialSize)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("preview framebuffer: %w", err)
	}
	app.free = camera.NewFreeCamera(previewInitialSize, previewInitialSize, cfg.Viewer.CameraSpeed)

	app.session = viewer.NewSession(app.events, objmodel.Options{
		FS:      fsys,
		Logger:  log.Named("objmodel"),
		Charset: charset,
	}, log)
	app.session.OnChange = app.scene.SetModel

	app.subs = append(app.subs,
		event.Subscribe(app.events, app.onLoaded),
		event.Subscribe(app.events, app.onLoadFailed),
	)

	if cfg.Viewer.Model != "" {
		app.requestLoad()
	}
	return app, nil
}

// Close cleans up resources.
func (app *App) Close() {
	for _, s := range app.subs {
		app.events.Unsubscribe(s)
	}
	app.subs = nil
	if app.session != nil {
		app.session.Close()
		app.session = nil
	}
	if app.preview != nil {
		app.preview.Destroy()
		app.preview = nil
	}
	if app.scene != nil {
		app.scene.Destroy()
		app.scene = nil
	}
	if app.textures != nil {
		app.textures.Close()
		app.textures = nil
	}
}

// Run starts the main application loop.
func (app *App) Run() {
	app.lastFrame = time.Now()
	app.ui.Run(app.render)
}

// requestLoad queues the options panel's path and scale for loading.
func (app *App) requestLoad() {
	app.events.Post(&event.ModelLoadRequested{Path: app.modelPath, Scale: app.scale})
}

func (app *App) onLoaded(e *event.ModelLoaded) {
	app.modelPath = e.Path
	app.cfg.Viewer.Model = e.Path
	app.cfg.Viewer.Scale = app.scale
	app.status = fmt.Sprintf("Loaded %s: %d meshes, %d materials", filepath.Base(e.Path), e.Meshes, e.Materials)
	app.statusErr = false
	app.ui.SetWindowTitle("OBJ Browser - " + filepath.Base(e.Path))
	app.selected = -1
	app.frameModel()
}

func (app *App) onLoadFailed(e *event.ModelLoadFailed) {
	app.status = fmt.Sprintf("Failed to load %s: %v", filepath.Base(e.Path), e.Err)
	app.statusErr = true
	app.selected = -1
	if e.Fallback != "" {
		app.modelPath = e.Fallback
		app.scale = app.cfg.Viewer.Scale
	}
}

// frameModel points both cameras at the loaded model.
func (app *App) frameModel() {
	m := app.session.Model()
	if !m.IsLoaded() {
		return
	}
	minB, maxB := scene.ModelBounds(m)
	app.orbit.FitToBounds(minB, maxB)
	app.free.FitToBounds(minB, maxB)
}

// render is called each frame to draw the UI.
func (app *App) render() {
	now := time.Now()
	dt := now.Sub(app.lastFrame)
	app.lastFrame = now
	app.stats.Tick(dt)

	// Snapshot the previous frame's preview before it is redrawn
	if app.snapshotRequested {
		app.snapshotRequested = false
		app.saveSnapshot()
	}

	// Loads requested by the dialog goroutine and the options panel
	app.events.Flush()

	app.handleShortcuts()

	app.renderMenuBar()
	app.renderLayout(float32(dt.Seconds()))
	app.renderFrameData()
	app.renderNotification()
}

func (app *App) handleShortcuts() {
	if ui.IsKeyPressed(imgui.KeyF12) {
		app.snapshotRequested = true
	}
	if app.hovered && ui.IsKeyPressed(imgui.KeyF) {
		app.frameModel()
	}
}

// showNotification displays a brief overlay notification message.
func (app *App) showNotification(msg string) {
	app.notifyMsg = msg
	app.notifyTime = time.Now()
}
