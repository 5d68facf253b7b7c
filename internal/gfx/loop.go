package gfx

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Surface is the drawing surface a Loop renders into.
type Surface interface {
	// LogicalSize is the on-screen size in logical (CSS / screen) pixels.
	LogicalSize() (width, height float64)
	// PixelRatio is device pixels per logical pixel.
	PixelRatio() float64
	BackingSize() (width, height int)
	SetBackingSize(width, height int)
}

// FrameFunc receives milliseconds elapsed since the loop started.
type FrameFunc func(millis float64)

// Scheduler invokes fn once, at the next display refresh. Implementations
// never run two callbacks concurrently.
type Scheduler interface {
	RequestFrame(fn FrameFunc)
}

// Frame describes a rendered tick.
type Frame struct {
	Index      uint64
	Millis     float64
	Time       float32
	Width      int
	Height     int
	Resolution mgl32.Vec2
}

// Overlay draws on top of the quad after each tick. It must leave the
// pipeline's program, vertex array and array buffer bound when it returns.
type Overlay interface {
	DrawOverlay(f Frame)
}

// BackingSize is floor(logical * ratio) per axis. A ratio that is not a
// positive finite number counts as 1.
func BackingSize(logicalWidth, logicalHeight, ratio float64) (int, int) {
	if !(ratio > 0) || math.IsInf(ratio, 1) {
		ratio = 1
	}
	return floorPixels(logicalWidth * ratio), floorPixels(logicalHeight * ratio)
}

func floorPixels(v float64) int {
	if !(v > 0) {
		return 0
	}
	return int(math.Floor(v))
}

// Loop redraws a Pipeline once per scheduled frame and re-arms itself at the
// end of every tick.
type Loop struct {
	pipeline  *Pipeline
	surface   Surface
	scheduler Scheduler
	overlays  []Overlay

	frames uint64
	step   FrameFunc
}

func NewLoop(p *Pipeline, surface Surface, scheduler Scheduler, overlays ...Overlay) *Loop {
	l := &Loop{
		pipeline:  p,
		surface:   surface,
		scheduler: scheduler,
		overlays:  overlays,
	}
	l.step = l.tick
	return l
}

// Start requests the first frame.
func (l *Loop) Start() {
	l.scheduler.RequestFrame(l.step)
}

// Frames is the number of completed ticks.
func (l *Loop) Frames() uint64 { return l.frames }

func (l *Loop) tick(millis float64) {
	gl := l.pipeline.gl

	lw, lh := l.surface.LogicalSize()
	w, h := BackingSize(lw, lh, l.surface.PixelRatio())
	if cw, ch := l.surface.BackingSize(); cw != w || ch != h {
		l.surface.SetBackingSize(w, h)
	}
	w, h = l.surface.BackingSize()
	gl.Viewport(0, 0, w, h)

	res := mgl32.Vec2{float32(w), float32(h)}
	seconds := float32(millis / 1000)
	gl.Uniform2f(l.pipeline.resolution, res.X(), res.Y())
	gl.Uniform1f(l.pipeline.time, seconds)
	gl.DrawArrays(Triangles, 0, QuadVertexCount)

	l.frames++
	if len(l.overlays) > 0 {
		f := Frame{
			Index:      l.frames,
			Millis:     millis,
			Time:       seconds,
			Width:      w,
			Height:     h,
			Resolution: res,
		}
		for _, o := range l.overlays {
			o.DrawOverlay(f)
		}
	}

	l.scheduler.RequestFrame(l.step)
}
