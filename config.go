package main

import (
	"flag"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/ibd1279/vks"
	"go.uber.org/zap/zapcore"
)

const (
	WindowWidth    = 800
	WindowHeight   = 600
	WindowTitle    = "vks tutorial-camera"
	FramesInFlight = 2
	ShaderDir      = "shaders"

	validationLayer = "VK_LAYER_KHRONOS_validation"
)

// Config holds everything the application reads from the command line.
type Config struct {
	Width, Height int
	Title         string
	ShaderDir     string
	LogLevel      zapcore.Level
	Validation    bool

	SelectInstanceLayers     []string
	SelectInstanceExtensions []string
	SelectDeviceExtensions   []string
	FramesInFlight           uint
}

// DefaultConfig returns the configuration used when no flags are given.
func DefaultConfig() Config {
	return Config{
		Width:      WindowWidth,
		Height:     WindowHeight,
		Title:      WindowTitle,
		ShaderDir:  ShaderDir,
		LogLevel:   zapcore.InfoLevel,
		Validation: true,
		SelectInstanceExtensions: []string{
			vks.VK_KHR_GET_PHYSICAL_DEVICE_PROPERTIES_2_EXTENSION_NAME,
			vks.VK_KHR_SURFACE_EXTENSION_NAME,
		},
		SelectDeviceExtensions: []string{
			vks.VK_KHR_SWAPCHAIN_EXTENSION_NAME,
		},
		FramesInFlight: FramesInFlight,
	}
}

// ParseConfig applies command line flags on top of DefaultConfig.
func ParseConfig(name string, args []string) (Config, error) {
	cfg := DefaultConfig()

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.IntVar(&cfg.Width, "width", cfg.Width, "Window width in pixels")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "Window height in pixels")
	fs.StringVar(&cfg.Title, "title", cfg.Title, "Window title")
	fs.StringVar(&cfg.ShaderDir, "shaders", cfg.ShaderDir, "Directory holding cube.vert.spv and cube.frag.spv")
	fs.UintVar(&cfg.FramesInFlight, "frames", cfg.FramesInFlight, "Frames in flight")
	fs.BoolVar(&cfg.Validation, "validation", cfg.Validation, "Enable "+validationLayer)
	fs.TextVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return Config{}, errors.Wrap(err, "parse flags")
	}

	if cfg.Validation {
		cfg.SelectInstanceLayers = append(cfg.SelectInstanceLayers, validationLayer)
	}
	return cfg, cfg.Validate()
}

// Validate rejects configurations the renderer cannot start with.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Newf("invalid window size %dx%d", c.Width, c.Height)
	}
	if c.FramesInFlight == 0 {
		return errors.New("frames in flight must be at least 1")
	}
	if c.ShaderDir == "" {
		return errors.New("shader directory is empty")
	}
	return nil
}

// ShaderPath returns the path of a compiled shader inside ShaderDir.
func (c Config) ShaderPath(name string) string {
	return filepath.Join(c.ShaderDir, name+".spv")
}
