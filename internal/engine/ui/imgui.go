// Package ui wraps the cimgui-go SDL backend used by the model browser.
package ui

import (
	"fmt"
	"os"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/objview/internal/engine/camera"
)

// glyphRanges covers Latin text plus the CJK blocks that show up in
// legacy-encoded model, material and texture names.
// Format: pairs of [start, end] values terminated by 0.
var glyphRanges = []imgui.Wchar{
	0x0020, 0x00FF, // Basic Latin + Latin Supplement
	0x0400, 0x04FF, // Cyrillic
	0x3000, 0x30FF, // CJK Symbols and Punctuation, Hiragana, Katakana
	0x3130, 0x318F, // Hangul Compatibility Jamo
	0xAC00, 0xD7AF, // Hangul Syllables
	0, // Terminator
}

// FontPaths lists fonts tried in order for the wide glyph ranges.
var FontPaths = []string{
	"/Library/Fonts/Arial Unicode.ttf",                       // macOS (symlink)
	"/System/Library/Fonts/Supplemental/Arial Unicode.ttf",   // macOS (actual)
	"C:\\Windows\\Fonts\\malgun.ttf",                         // Windows (Malgun Gothic)
	"C:\\Windows\\Fonts\\gulim.ttc",                          // Windows (Gulim)
	"/usr/share/fonts/truetype/noto/NotoSansCJK-Regular.ttc", // Linux
	"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc", // Linux alt
}

// Config describes the backend window.
type Config struct {
	Title      string
	Width      int
	Height     int
	Background mgl32.Vec3
	FontSize   float32
}

// Backend owns the ImGui context, the SDL window and its GL context.
type Backend struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
	log     *zap.Logger
	font    string
}

// NewBackend creates the ImGui window and initializes OpenGL.
func NewBackend(cfg Config, log *zap.Logger) (*Backend, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.FontSize <= 0 {
		cfg.FontSize = 16
	}
	b := &Backend{log: log}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	// Fonts must be added before the first frame
	b.backend.SetAfterCreateContextHook(func() {
		b.loadFont(cfg.FontSize)
	})

	b.backend.SetBgColor(imgui.NewVec4(cfg.Background[0], cfg.Background[1], cfg.Background[2], 1.0))
	b.backend.CreateWindow(cfg.Title, cfg.Width, cfg.Height)

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init opengl: %w", err)
	}
	log.Info("ui backend created",
		zap.String("glVersion", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("font", b.font),
	)
	return b, nil
}

// firstExisting returns the first path for which exists reports true.
func firstExisting(paths []string, exists func(string) bool) string {
	for _, p := range paths {
		if exists(p) {
			return p
		}
	}
	return ""
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (b *Backend) loadFont(size float32) {
	path := firstExisting(FontPaths, fileExists)
	if path == "" {
		b.log.Debug("no wide-glyph font found, using default font")
		return
	}

	fontCfg := imgui.NewFontConfig()
	defer fontCfg.Destroy()

	fonts := imgui.CurrentIO().Fonts()
	if font := fonts.AddFontFromFileTTFV(path, size, fontCfg, &glyphRanges[0]); font == nil {
		b.log.Warn("failed to load font", zap.String("path", path))
		return
	}
	b.font = path
}

// Run starts the main render loop. It returns when the window closes.
func (b *Backend) Run(renderFunc func()) {
	b.backend.Run(renderFunc)
}

// SetWindowTitle updates the window title.
func (b *Backend) SetWindowTitle(title string) {
	b.backend.SetWindowTitle(title)
}

// SetBackground changes the clear colour behind the ImGui windows.
func (b *Backend) SetBackground(c mgl32.Vec3) {
	b.backend.SetBgColor(imgui.NewVec4(c[0], c[1], c[2], 1.0))
}

// Viewport returns the main viewport work area (excluding the menu bar).
func Viewport() (pos, size imgui.Vec2) {
	viewport := imgui.MainViewport()
	return viewport.WorkPos(), viewport.WorkSize()
}

// IsKeyPressed checks if a key was pressed this frame.
func IsKeyPressed(key imgui.Key) bool {
	return imgui.IsKeyChordPressed(imgui.KeyChord(key))
}

// Movement samples the keyboard and mouse into free camera controls.
// Keys are ignored while a text field has focus.
func Movement() camera.Movement {
	io := imgui.CurrentIO()
	if io.WantTextInput() {
		return camera.Movement{}
	}
	delta := io.MouseDelta()
	return camera.Movement{
		Forward: imgui.IsKeyDown(imgui.KeyW),
		Back:    imgui.IsKeyDown(imgui.KeyS),
		Left:    imgui.IsKeyDown(imgui.KeyA),
		Right:   imgui.IsKeyDown(imgui.KeyD),
		Down:    imgui.IsKeyDown(imgui.KeyQ),
		Up:      imgui.IsKeyDown(imgui.KeyE),
		Fast:    imgui.IsKeyDown(imgui.KeyLeftShift),
		Look:    imgui.IsMouseDown(imgui.MouseButtonRight),
		DX:      delta.X,
		DY:      delta.Y,
	}
}
