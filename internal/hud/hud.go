// Package hud prepares the debug heads-up display: frame statistics, the
// text bitmap and the screen-space quad it is drawn on.
package hud

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"shaderplay/internal/gfx"
)

const (
	// Window over which the average frame time is computed.
	frameTimeWindow = 5000.0 // ms
	fpsInterval     = 1000.0 // ms

	TextWidth  = 512
	lineHeight = 13
	Margin     = 10
)

var face = basicfont.Face7x13

// Stats tracks FPS and the average frame interval from frame timestamps.
type Stats struct {
	fps        float64
	count      int
	fpsStart   float64
	last       float64
	started    bool
	intervals  []sample
	windowSize float64
}

type sample struct {
	at    float64
	delta float64
}

func NewStats() *Stats {
	return &Stats{windowSize: frameTimeWindow}
}

// Observe records a frame rendered at millis.
func (s *Stats) Observe(millis float64) {
	if !s.started {
		s.started = true
		s.last = millis
		s.fpsStart = millis
		return
	}
	s.intervals = append(s.intervals, sample{at: millis, delta: millis - s.last})
	s.last = millis

	s.count++
	if elapsed := millis - s.fpsStart; elapsed >= fpsInterval {
		s.fps = float64(s.count) / (elapsed / 1000)
		s.count = 0
		s.fpsStart = millis
	}

	cutoff := millis - s.windowSize
	drop := 0
	for drop < len(s.intervals) && s.intervals[drop].at <= cutoff {
		drop++
	}
	s.intervals = s.intervals[drop:]
}

// FPS is the frame rate measured over the last complete second.
func (s *Stats) FPS() float64 { return s.fps }

// AverageFrameTime is the mean frame interval in ms over the last 5 seconds.
func (s *Stats) AverageFrameTime() float64 {
	if len(s.intervals) == 0 {
		return 0
	}
	sum := 0.0
	for _, iv := range s.intervals {
		sum += iv.delta
	}
	return sum / float64(len(s.intervals))
}

// Lines formats the HUD text for a frame.
func Lines(f gfx.Frame, windowW, windowH int, s *Stats) []string {
	return []string{
		fmt.Sprintf("Window: %dx%d, Framebuffer: %dx%d", windowW, windowH, f.Width, f.Height),
		fmt.Sprintf("FPS: %.1f  t=%.2fs", s.FPS(), f.Time),
		fmt.Sprintf("Frame time: %.2f ms (avg 5s)", s.AverageFrameTime()),
	}
}

// Rasterize draws lines in white on a transparent TextWidth-wide image.
func Rasterize(lines []string) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, TextWidth, lineHeight*len(lines)+3))
	draw.Draw(img, img.Bounds(), image.Transparent, image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
	}
	for i, line := range lines {
		d.Dot = fixed.P(0, face.Ascent+i*lineHeight)
		d.DrawString(line)
	}
	return img
}

// Projection maps framebuffer pixels, origin top-left, to clip space.
func Projection(width, height int) mgl32.Mat4 {
	return mgl32.Ortho2D(0, float32(width), float32(height), 0)
}

// Quad returns two triangles (x, y, u, v) covering w x h at (x, y).
func Quad(x, y, w, h float32) []float32 {
	return []float32{
		x, y + h, 0, 1,
		x, y, 0, 0,
		x + w, y, 1, 0,
		x, y + h, 0, 1,
		x + w, y, 1, 0,
		x + w, y + h, 1, 1,
	}
}
