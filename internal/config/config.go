// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Render  RenderConfig  `yaml:"render"`
	Data    DataConfig    `yaml:"data"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// Color modes accepted in RenderConfig.ColorMode.
const (
	ColorModeDirection = "direction"
	ColorModeSolid     = "solid"
)

// RenderConfig holds fiber rendering settings.
type RenderConfig struct {
	MaxTracks         int        `yaml:"max_tracks"` // 0 = draw every track
	MaxPointsPerTrack int        `yaml:"max_points_per_track"`
	ColorMode         string     `yaml:"color_mode"`
	LineColor         [3]float32 `yaml:"line_color"`
	LineWidth         float32    `yaml:"line_width"`
	Opacity           float32    `yaml:"opacity"`
	ShowBounds        bool       `yaml:"show_bounds"`
	Background        [3]float32 `yaml:"background"`
}

// DataConfig holds input file paths.
type DataConfig struct {
	TrackFile string `yaml:"track_file"` // .trk file to open at startup
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
			Title:      "Tract Viewer",
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Render: RenderConfig{
			MaxTracks:         1000,
			MaxPointsPerTrack: 0,
			ColorMode:         ColorModeDirection,
			LineColor:         [3]float32{1, 0, 0},
			LineWidth:         1.0,
			Opacity:           1.0,
			ShowBounds:        false,
			Background:        [3]float32{0.1, 0.2, 0.4},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
