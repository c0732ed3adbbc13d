package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagFile       = flag.String("file", "", "TRK file to open")
	flagMaxTracks  = flag.Int("max-tracks", -1, "Maximum tracks to draw (0 = all)")
	flagSolid      = flag.Bool("solid", false, "Use solid line color instead of direction coloring")
	flagBounds     = flag.Bool("bounds", false, "Draw the bounding box")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagSnapshot   = flag.String("snapshot", "", "Render one frame to this PNG file and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
// A single positional argument is taken as the TRK file.
func ParseFlags() {
	flag.Parse()
	if *flagFile == "" && flag.NArg() > 0 {
		*flagFile = flag.Arg(0)
	}
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SnapshotPath returns the PNG path requested via --snapshot.
func SnapshotPath() string {
	return *flagSnapshot
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagFile != "" {
		cfg.Data.TrackFile = *flagFile
	}
	if *flagMaxTracks >= 0 {
		cfg.Render.MaxTracks = *flagMaxTracks
	}
	if *flagSolid {
		cfg.Render.ColorMode = ColorModeSolid
	}
	if *flagBounds {
		cfg.Render.ShowBounds = true
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
