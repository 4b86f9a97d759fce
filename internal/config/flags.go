package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagShape      = flag.String("shape", "", "Initial super-primitive shape (cube, cylinder, pill, corridor, torus)")
	flagGridSize   = flag.Int("grid-size", 0, "Voxel grid size stored in the config (the mesh is always contoured on a 128-voxel grid)")
	flagWireframe  = flag.Bool("wireframe", false, "Draw the wireframe overlay on startup")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Set the fullscreen config setting (the viewer always opens a window)")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagShape != "" {
		cfg.Shape.Name = *flagShape
	}
	if *flagGridSize > 0 {
		cfg.Grid.Size = *flagGridSize
	}
	if *flagWireframe {
		cfg.Graphics.Wireframe = true
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
}
