package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagModel      = flag.String("model", "", "OBJ file to open")
	flagScale      = flag.Float64("scale", 0, "Uniform scale applied to model positions")
	flagCharset    = flag.String("charset", "", "Text encoding of OBJ/MTL files (e.g. euc-kr, windows-1252)")
	flagNoSkybox   = flag.Bool("no-skybox", false, "Disable the skybox")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
// A single positional argument is taken as the model path.
func ParseFlags() {
	flag.Parse()
	if *flagModel == "" && flag.NArg() == 1 {
		*flagModel = flag.Arg(0)
	}
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Viewer.ShowFrameData = true
	}
	if *flagModel != "" {
		cfg.Viewer.Model = *flagModel
	}
	if *flagScale > 0 {
		cfg.Viewer.Scale = float32(*flagScale)
	}
	if *flagCharset != "" {
		cfg.Textures.Charset = *flagCharset
	}
	if *flagNoSkybox {
		cfg.Viewer.RenderSkybox = false
	}
	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
}
