package hud

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shaderplay/internal/gfx"
)

func TestStats_FPSAndAverage(t *testing.T) {
	s := NewStats()
	for i := 0; i <= 120; i++ {
		s.Observe(float64(i) * 10) // 100 fps
	}

	assert.InDelta(t, 100, s.FPS(), 0.5)
	assert.InDelta(t, 10, s.AverageFrameTime(), 1e-9)
}

func TestStats_WindowDropsOldIntervals(t *testing.T) {
	s := NewStats()
	s.Observe(0)
	s.Observe(100) // one slow frame
	for ms := 110.0; ms <= 7000; ms += 10 {
		s.Observe(ms)
	}
	assert.InDelta(t, 10, s.AverageFrameTime(), 1e-9)
}

func TestStats_Empty(t *testing.T) {
	s := NewStats()
	assert.Zero(t, s.FPS())
	assert.Zero(t, s.AverageFrameTime())
	s.Observe(5)
	assert.Zero(t, s.AverageFrameTime())
}

func TestLines(t *testing.T) {
	s := NewStats()
	lines := Lines(gfx.Frame{Width: 1600, Height: 1200, Time: 1.5}, 800, 600, s)

	require.Len(t, lines, 3)
	assert.Equal(t, "Window: 800x600, Framebuffer: 1600x1200", lines[0])
	assert.Equal(t, "FPS: 0.0  t=1.50s", lines[1])
	assert.Equal(t, "Frame time: 0.00 ms (avg 5s)", lines[2])
}

func TestRasterize(t *testing.T) {
	img := Rasterize([]string{"FPS", "60"})

	assert.Equal(t, TextWidth, img.Bounds().Dx())
	assert.Equal(t, 2*lineHeight+3, img.Bounds().Dy())

	lit := 0
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] > 0 {
			lit++
		}
	}
	assert.Greater(t, lit, 0, "glyphs are drawn")
	// Nothing drawn past the text on the right.
	assert.Zero(t, img.RGBAAt(TextWidth-1, 1).A)
}

func TestProjection(t *testing.T) {
	p := Projection(800, 600)

	topLeft := p.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	bottomRight := p.Mul4x1(mgl32.Vec4{800, 600, 0, 1})
	assert.InDelta(t, -1, topLeft.X(), 1e-6)
	assert.InDelta(t, 1, topLeft.Y(), 1e-6)
	assert.InDelta(t, 1, bottomRight.X(), 1e-6)
	assert.InDelta(t, -1, bottomRight.Y(), 1e-6)
}

func TestQuad(t *testing.T) {
	q := Quad(10, 20, 100, 50)
	require.Len(t, q, 24)
	assert.Equal(t, []float32{10, 70, 0, 1}, q[0:4])
	assert.Equal(t, []float32{110, 70, 1, 1}, q[20:24])
}
