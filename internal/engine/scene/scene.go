package scene

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/objview/internal/engine/camera"
	"github.com/Faultbox/objview/internal/engine/lighting"
	"github.com/Faultbox/objview/internal/texture"
	"github.com/Faultbox/objview/pkg/objmodel"
)

// Config contains scene configuration options.
type Config struct {
	Background     mgl32.Vec3
	RenderSkybox   bool
	SkyboxDir      string
	MaxTexture     int     // Downscale threshold for skybox faces
	LightAzimuth   float32 // Degrees, see lighting.SunDirection
	LightElevation float32
}

// Scene draws the skybox, the reference grid and one model.
type Scene struct {
	Model *ModelRenderer

	grid      *Grid
	skybox    *Skybox
	selection *Selection
	log       *zap.Logger

	Background   mgl32.Vec3
	RenderSkybox bool
}

// New creates the scene renderers. A skybox that cannot be loaded is logged
// and left out; the rest of the scene still renders.
func New(cfg Config, textures *texture.Manager, src texture.Source, log *zap.Logger) (*Scene, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Scene{
		log:          log,
		Background:   cfg.Background,
		RenderSkybox: cfg.RenderSkybox,
	}

	var err error
	s.Model, err = NewModelRenderer(textures, log.Named("model"))
	if err != nil {
		return nil, fmt.Errorf("creating model renderer: %w", err)
	}

	s.SetSun(cfg.LightAzimuth, cfg.LightElevation)

	s.grid, err = NewGrid()
	if err != nil {
		s.Destroy()
		return nil, fmt.Errorf("creating grid: %w", err)
	}

	s.selection, err = NewSelection()
	if err != nil {
		s.Destroy()
		return nil, fmt.Errorf("creating selection: %w", err)
	}

	if cfg.SkyboxDir != "" {
		s.skybox, err = NewSkybox(src, cfg.SkyboxDir, cfg.MaxTexture, log.Named("skybox"))
		if err != nil {
			log.Warn("skybox disabled", zap.Error(err))
			s.skybox = nil
		}
	}

	return s, nil
}

// SetModel replaces the drawn model and drops any selection.
func (s *Scene) SetModel(m *objmodel.Model) {
	s.selection.Hide()
	s.Model.SetModel(m)
}

// SetSun places the directional light.
func (s *Scene) SetSun(azimuth, elevation float32) {
	s.Model.LightDir = lighting.LightDirection(azimuth, elevation)
}

// Select outlines the given bounds, in model space.
func (s *Scene) Select(minB, maxB mgl32.Vec3) {
	s.selection.SetBox(minB, maxB)
}

// ClearSelection removes the outline.
func (s *Scene) ClearSelection() {
	s.selection.Hide()
}

// HasSkybox reports whether a skybox was loaded.
func (s *Scene) HasSkybox() bool {
	return s.skybox != nil
}

// Render clears the current framebuffer and draws the scene as seen by cam.
func (s *Scene) Render(cam *camera.FreeCamera) {
	s.RenderWithView(cam.View(), cam.Projection(), cam.Position())
}

// RenderWithView draws the scene with explicit matrices.
func (s *Scene) RenderWithView(view, projection mgl32.Mat4, eye mgl32.Vec3) {
	gl.ClearColor(s.Background[0], s.Background[1], s.Background[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	if s.RenderSkybox && s.skybox != nil {
		s.skybox.Render(view, projection)
	}

	projView := projection.Mul4(view)
	s.grid.Render(projView)
	s.Model.Render(projView, eye)
	if m := s.Model.Model(); m != nil {
		s.selection.Render(projView.Mul4(m.WorldMatrix()))
	}

	gl.UseProgram(0)
}

// Destroy releases all resources.
func (s *Scene) Destroy() {
	if s.Model != nil {
		s.Model.Destroy()
	}
	if s.grid != nil {
		s.grid.Destroy()
	}
	if s.selection != nil {
		s.selection.Destroy()
	}
	if s.skybox != nil {
		s.skybox.Destroy()
	}
}
