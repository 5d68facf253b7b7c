package config

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shaderplay/internal/source"
)

func writeTOML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shaderplay.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDetectMode(t *testing.T) {
	tests := []struct {
		name string
		args []string
		mode Mode
		hwnd uintptr
		rest []string
	}{
		{"none", nil, ModeViewer, 0, []string{}},
		{"flags only", []string{"-width", "10"}, ModeViewer, 0, []string{"-width", "10"}},
		{"screensaver", []string{"/S"}, ModeScreensaver, 0, []string{}},
		{"config", []string{"/c"}, ModeConfig, 0, []string{}},
		{"config with owner", []string{"/c:1234"}, ModeConfig, 0, []string{}},
		{"preview separate", []string{"/p", "4242"}, ModePreview, 4242, []string{}},
		{"preview colon", []string{"/P:77"}, ModePreview, 77, []string{}},
		{"preview without hwnd", []string{"/p", "-debug"}, ModePreview, 0, []string{"-debug"}},
		{"mixed", []string{"-debug", "/s", "-shader", "x.glsl"}, ModeScreensaver, 0, []string{"-debug", "-shader", "x.glsl"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, hwnd, rest := DetectMode(tt.args)
			assert.Equal(t, tt.mode, mode)
			assert.Equal(t, tt.hwnd, hwnd)
			assert.Equal(t, tt.rest, rest)
		})
	}
}

func TestParseDefaults(t *testing.T) {
	t.Setenv(DebugEnv, "")
	cfg, err := Parse(nil, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, ModeViewer, cfg.Mode)
	assert.Equal(t, source.DefaultLocation, cfg.Shader)
	assert.Equal(t, DefaultTitle, cfg.Title)
	assert.Equal(t, DefaultWidth, cfg.Width)
	assert.Equal(t, DefaultHeight, cfg.Height)
	assert.Equal(t, DefaultSamples, cfg.Samples)
	assert.False(t, cfg.Fullscreen)
	assert.False(t, cfg.Debug)
	assert.Equal(t, source.DefaultTimeout, cfg.FetchTimeout.Duration)
}

func TestParseDebugEnv(t *testing.T) {
	t.Setenv(DebugEnv, "1")
	cfg, err := Parse(nil, io.Discard)
	require.NoError(t, err)
	assert.True(t, cfg.Debug)

	cfg, err = Parse([]string{"-debug=false"}, io.Discard)
	require.NoError(t, err)
	assert.False(t, cfg.Debug)
}

func TestFileThenFlags(t *testing.T) {
	t.Setenv(DebugEnv, "")
	path := writeTOML(t, `
shader = "https://example.com/aurora.glsl"
title = "Aurora"
width = 1024
height = 768
fetch_timeout = "3s"
`)
	cfg, err := Parse([]string{"-config", path, "-width", "640"}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/aurora.glsl", cfg.Shader)
	assert.Equal(t, "Aurora", cfg.Title)
	assert.Equal(t, 640, cfg.Width, "explicit flag wins over file")
	assert.Equal(t, 768, cfg.Height)
	assert.Equal(t, 3*time.Second, cfg.FetchTimeout.Duration)
}

func TestUnsetFlagsKeepFileValues(t *testing.T) {
	path := writeTOML(t, "samples = 0\nfullscreen = true\n")
	cfg, err := Parse([]string{"-config", path}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Samples)
	assert.True(t, cfg.Fullscreen)
}

func TestLoadFileErrors(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		_, err := Parse([]string{"-config", filepath.Join(t.TempDir(), "nope.toml")}, io.Discard)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read config")
	})
	t.Run("unknown key", func(t *testing.T) {
		path := writeTOML(t, "colour = \"red\"\n")
		_, err := Parse([]string{"-config", path}, io.Discard)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown keys colour")
	})
	t.Run("bad duration", func(t *testing.T) {
		path := writeTOML(t, "fetch_timeout = \"soon\"\n")
		_, err := Parse([]string{"-config", path}, io.Discard)
		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	_, err := Parse([]string{"-width", "0"}, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "window size")

	_, err = Parse([]string{"-samples", "-1"}, io.Discard)
	require.Error(t, err)

	_, err = Parse([]string{"-timeout", "0s"}, io.Discard)
	require.Error(t, err)
}

func TestParseRejectsStrayArgs(t *testing.T) {
	_, err := Parse([]string{"shader.glsl"}, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected arguments")
}

func TestParseHelp(t *testing.T) {
	_, err := Parse([]string{"-h"}, io.Discard)
	require.Error(t, err)
	assert.True(t, IsHelp(err))
}

func TestScreensaverDefaults(t *testing.T) {
	cfg, err := Parse([]string{"/s"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, ModeScreensaver, cfg.Mode)
	assert.True(t, cfg.Fullscreen)
	assert.Equal(t, source.BuiltinScheme, cfg.Shader)

	cfg, err = Parse([]string{"/s", "-shader", "mine.glsl"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "mine.glsl", cfg.Shader)

	cfg, err = Parse([]string{"/p", "99"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, ModePreview, cfg.Mode)
	assert.Equal(t, uintptr(99), cfg.ParentHWND)
	assert.False(t, cfg.Fullscreen)
	assert.Equal(t, source.BuiltinScheme, cfg.Shader)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "screensaver", ModeScreensaver.String())
	assert.Equal(t, "unknown", Mode(42).String())
}
