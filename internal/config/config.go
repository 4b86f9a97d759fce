// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Grid     GridConfig     `yaml:"grid"`
	Shape    ShapeConfig    `yaml:"shape"`
	Simplify SimplifyConfig `yaml:"simplify"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	Wireframe  bool `yaml:"wireframe"`
	ShowBBox   bool `yaml:"show_bbox"`
}

// GridConfig holds a voxel grid resolution setting. The viewer does not read
// it: contouring always uses isomesh.GridSize.
type GridConfig struct {
	Size int `yaml:"size"`
}

// ShapeConfig selects the initial super-primitive and its raw parameters.
type ShapeConfig struct {
	Name string     `yaml:"name"` // cube, cylinder, pill, corridor, torus
	S    [4]float32 `yaml:"s"`
	R    [2]float32 `yaml:"r"`
}

// SimplifyConfig mirrors isomesh.Options with yaml tags for persistence.
type SimplifyConfig struct {
	EdgeFraction     float32 `yaml:"edge_fraction"`
	MaxIterations    int     `yaml:"max_iterations"`
	TargetPercentage float32 `yaml:"target_percentage"`
	MaxError         float32 `yaml:"max_error"`
	MaxEdgeSize      float32 `yaml:"max_edge_size"`
	MinAngleCosine   float32 `yaml:"min_angle_cosine"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values, mirroring the
// isomesh package's own reference defaults for grid size and simplifier
// options.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			Wireframe:  false,
			ShowBBox:   false,
		},
		Grid: GridConfig{
			Size: 128,
		},
		Shape: ShapeConfig{
			Name: "cube",
			S:    [4]float32{1, 1, 1, 1},
			R:    [2]float32{0, 0},
		},
		Simplify: SimplifyConfig{
			EdgeFraction:     0.125,
			MaxIterations:    10,
			TargetPercentage: 0.05,
			MaxError:         1.0,
			MaxEdgeSize:      0.5,
			MinAngleCosine:   0.8,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
