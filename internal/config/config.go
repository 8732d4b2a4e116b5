// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/objview/internal/engine/lighting"
	"github.com/Faultbox/objview/internal/logger"
	"github.com/Faultbox/objview/pkg/encoding"
)

// Config holds all viewer settings.
type Config struct {
	Window   WindowConfig  `yaml:"window"`
	Viewer   ViewerConfig  `yaml:"viewer"`
	Textures TextureConfig `yaml:"textures"`
	Logging  LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	Title      string `yaml:"title"`
}

// ViewerConfig holds model and scene settings.
type ViewerConfig struct {
	Model          string     `yaml:"model"` // OBJ file opened at start-up
	Scale          float32    `yaml:"scale"`
	Background     [3]float32 `yaml:"background"`
	RenderSkybox   bool       `yaml:"render_skybox"`
	SkyboxDir      string     `yaml:"skybox_dir"`
	CameraSpeed    float32    `yaml:"camera_speed"` // World units per second
	ShowFrameData  bool       `yaml:"show_frame_data"`
	LightAzimuth   float32    `yaml:"light_azimuth"`   // Degrees around Y from +Z
	LightElevation float32    `yaml:"light_elevation"` // Degrees above the horizon
}

// TextureConfig holds texture loading and text decoding settings.
type TextureConfig struct {
	MaxSize int    `yaml:"max_size"` // Larger images are downscaled; 0 disables
	Charset string `yaml:"charset"`  // Encoding of OBJ/MTL text, empty for UTF-8
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			VSync:  true,
			Title:  "OBJ Viewer",
		},
		Viewer: ViewerConfig{
			Scale:          1.0,
			Background:     [3]float32{0.41, 0.7, 0.71},
			RenderSkybox:   true,
			SkyboxDir:      "assets/skybox",
			CameraSpeed:    10,
			ShowFrameData:  true,
			LightAzimuth:   lighting.DefaultAzimuth,
			LightElevation: lighting.DefaultElevation,
		},
		Textures: TextureConfig{
			MaxSize: 4096,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports every setting that cannot be used as-is.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Viewer.Scale <= 0 {
		errs = append(errs, fmt.Errorf("viewer scale %v must be positive", c.Viewer.Scale))
	}
	if c.Viewer.CameraSpeed <= 0 {
		errs = append(errs, fmt.Errorf("camera speed %v must be positive", c.Viewer.CameraSpeed))
	}
	for i, ch := range c.Viewer.Background {
		if ch < 0 || ch > 1 {
			errs = append(errs, fmt.Errorf("background channel %d = %v outside [0,1]", i, ch))
		}
	}
	if c.Viewer.LightElevation < -90 || c.Viewer.LightElevation > 90 {
		errs = append(errs, fmt.Errorf("light elevation %v outside [-90,90]", c.Viewer.LightElevation))
	}
	if c.Textures.MaxSize < 0 {
		errs = append(errs, fmt.Errorf("texture max size %d must not be negative", c.Textures.MaxSize))
	}
	if _, err := encoding.Lookup(c.Textures.Charset); err != nil {
		errs = append(errs, err)
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
