package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig("test", nil)
	require.NoError(t, err)

	assert.Equal(t, WindowWidth, cfg.Width)
	assert.Equal(t, WindowHeight, cfg.Height)
	assert.Equal(t, uint(FramesInFlight), cfg.FramesInFlight)
	assert.Equal(t, zapcore.InfoLevel, cfg.LogLevel)
	assert.Equal(t, []string{validationLayer}, cfg.SelectInstanceLayers)
	assert.NotEmpty(t, cfg.SelectDeviceExtensions)
}

func TestParseConfigFlags(t *testing.T) {
	cfg, err := ParseConfig("test", []string{
		"-width", "1024",
		"-height", "768",
		"-frames", "3",
		"-shaders", "build/spv",
		"-validation=false",
		"-log-level", "debug",
	})
	require.NoError(t, err)

	assert.Equal(t, 1024, cfg.Width)
	assert.Equal(t, 768, cfg.Height)
	assert.Equal(t, uint(3), cfg.FramesInFlight)
	assert.Equal(t, zapcore.DebugLevel, cfg.LogLevel)
	assert.Empty(t, cfg.SelectInstanceLayers)
	assert.Equal(t, filepath.Join("build", "spv", "cube.vert.spv"), cfg.ShaderPath("cube.vert"))
}

func TestParseConfigRejects(t *testing.T) {
	for _, tc := range []struct {
		name string
		args []string
	}{
		{"zero width", []string{"-width", "0"}},
		{"negative height", []string{"-height", "-1"}},
		{"no frames", []string{"-frames", "0"}},
		{"empty shader dir", []string{"-shaders", ""}},
		{"bad level", []string{"-log-level", "loud"}},
		{"unknown flag", []string{"-fullscreen"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseConfig("test", tc.args)
			assert.Error(t, err)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.FramesInFlight = 0
	assert.ErrorContains(t, cfg.Validate(), "frames in flight")

	cfg = DefaultConfig()
	cfg.Width = 0
	assert.ErrorContains(t, cfg.Validate(), "0x600")
}
