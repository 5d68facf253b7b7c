//go:build !js

package main

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"shaderplay/internal/config"
)

func TestParseColor(t *testing.T) {
	assert.Equal(t, color.RGBA{R: 0xD8, G: 0xE8, B: 0xF8, A: 255}, parseColor(WINDOW_BACKGROUND_COLOR))
	assert.Equal(t, color.RGBA{A: 255}, parseColor("blue"))
}

func TestInfoLines(t *testing.T) {
	cfg := config.Default()
	cfg.Shader = "builtin:"
	lines := infoLines(cfg)
	assert.Equal(t, `Shader: built-in "default"`, lines[1])
	assert.Equal(t, "Built-in shaders: default, solid", lines[2])

	cfg.Shader = "https://example.com/a.glsl"
	assert.Equal(t, "Shader: https://example.com/a.glsl", infoLines(cfg)[1])
}
