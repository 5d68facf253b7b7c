package gfx_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shaderplay/internal/gfx"
	"shaderplay/internal/gfx/gfxtest"
)

type recordingOverlay struct {
	frames []gfx.Frame
}

func (o *recordingOverlay) DrawOverlay(f gfx.Frame) { o.frames = append(o.frames, f) }

func startLoop(t *testing.T, surface *gfxtest.Surface, overlays ...gfx.Overlay) (*gfxtest.Recorder, *gfxtest.Scheduler, *gfx.Loop) {
	t.Helper()
	rec := gfxtest.NewRecorder()
	p, err := gfx.Bootstrap(rec, solidFragment, nil)
	require.NoError(t, err)

	sched := &gfxtest.Scheduler{}
	loop := gfx.NewLoop(p, surface, sched, overlays...)
	loop.Start()
	require.True(t, sched.Pending(), "Start schedules the first frame")
	return rec, sched, loop
}

func TestBackingSize(t *testing.T) {
	tests := []struct {
		w, h, ratio   float64
		wantW, wantH int
	}{
		{800, 600, 1, 800, 600},
		{800, 600, 2, 1600, 1200},
		{333, 101, 1.5, 499, 151},
		{100.7, 50.2, 1, 100, 50},
		{1280, 720, 1.25, 1600, 900},
		{640, 480, 0, 640, 480},
		{640, 480, -2, 640, 480},
		{640, 480, math.NaN(), 640, 480},
		{0, 0, 2, 0, 0},
		{-10, 20, 1, 0, 20},
	}
	for _, tt := range tests {
		w, h := gfx.BackingSize(tt.w, tt.h, tt.ratio)
		assert.Equal(t, tt.wantW, w, "width for %v x %v @ %v", tt.w, tt.h, tt.ratio)
		assert.Equal(t, tt.wantH, h, "height for %v x %v @ %v", tt.w, tt.h, tt.ratio)
	}
}

func TestBackingSize_FloorForRatiosAboveOne(t *testing.T) {
	for _, ratio := range []float64{1, 1.1, 1.25, 1.5, 1.75, 2, 2.625, 3} {
		for _, size := range []float64{1, 17, 320, 801, 1919.5} {
			w, h := gfx.BackingSize(size, size/2, ratio)
			assert.Equal(t, int(math.Floor(size*ratio)), w)
			assert.Equal(t, int(math.Floor(size/2*ratio)), h)
		}
	}
}

func TestLoop_SingleTick(t *testing.T) {
	surface := &gfxtest.Surface{Width: 400, Height: 300, Ratio: 2}
	rec, sched, loop := startLoop(t, surface)
	before := len(rec.Calls)

	require.True(t, sched.Fire(16))

	draws := rec.Filter("DrawArrays")
	require.Len(t, draws, 1)
	assert.Equal(t, gfx.Triangles, draws[0].Args[0])
	assert.Equal(t, "triangles", draws[0].Args[0].(gfx.Mode).String())
	assert.Equal(t, 0, draws[0].Args[1])
	assert.Equal(t, 6, draws[0].Args[2])

	vp := rec.Filter("Viewport")
	require.Len(t, vp, 1)
	assert.Equal(t, []any{0, 0, 800, 600}, vp[0].Args)

	assert.Equal(t, []float32{800, 600}, rec.UniformValue(gfx.ResolutionUniform))
	assert.Equal(t, []float32{0.016}, rec.UniformValue(gfx.TimeUniform))

	// Order within the tick: viewport, resolution, time, draw.
	tick := rec.Calls[before:]
	var order []string
	for _, c := range tick {
		order = append(order, c.Name)
	}
	assert.Equal(t, []string{"Viewport", "Uniform2f", "Uniform1f", "DrawArrays"}, order)

	assert.True(t, sched.Pending(), "the tick re-arms itself")
	assert.Equal(t, uint64(1), loop.Frames())
	assert.Equal(t, 2, sched.Requests)
	assert.Equal(t, 1, rec.Count("UseProgram"), "program is never re-activated")
}

func TestLoop_ResizeIsIdempotent(t *testing.T) {
	surface := &gfxtest.Surface{Width: 640, Height: 360, Ratio: 1.5}
	rec, sched, _ := startLoop(t, surface)

	sched.Fire(0)
	sched.Fire(16)
	sched.Fire(33)

	assert.Equal(t, 1, surface.Resizes, "unchanged size does not reassign the backing store")
	assert.Equal(t, 960, surface.BackingW)
	assert.Equal(t, 540, surface.BackingH)
	for _, vp := range rec.Filter("Viewport") {
		assert.Equal(t, []any{0, 0, 960, 540}, vp.Args)
	}

	surface.Width = 800
	sched.Fire(50)
	assert.Equal(t, 2, surface.Resizes)
	vps := rec.Filter("Viewport")
	assert.Equal(t, []any{0, 0, 1200, 540}, vps[len(vps)-1].Args)
	assert.Equal(t, []float32{1200, 540}, rec.UniformValue(gfx.ResolutionUniform))
}

func TestLoop_AlreadySizedSurfaceIsNotReassigned(t *testing.T) {
	surface := &gfxtest.Surface{Width: 300, Height: 150, Ratio: 1, BackingW: 300, BackingH: 150}
	_, sched, _ := startLoop(t, surface)

	sched.Fire(0)
	assert.Zero(t, surface.Resizes)
}

func TestLoop_TimeIsMonotonic(t *testing.T) {
	surface := &gfxtest.Surface{Width: 10, Height: 10, Ratio: 1}
	rec, sched, _ := startLoop(t, surface)

	stamps := []float64{0, 16.6, 33.3, 50, 1000, 1016.7, 60000, 3600000}
	for _, ms := range stamps {
		require.True(t, sched.Fire(ms))
	}

	times := rec.Filter("Uniform1f")
	require.Len(t, times, len(stamps))
	for i := 1; i < len(times); i++ {
		assert.Less(t, times[i-1].Args[1].(float32), times[i].Args[1].(float32))
	}
	assert.Equal(t, float32(3600), times[len(times)-1].Args[1])
}

func TestLoop_OverlaysSeeEachFrame(t *testing.T) {
	surface := &gfxtest.Surface{Width: 200, Height: 100, Ratio: 1}
	overlay := &recordingOverlay{}
	rec, sched, _ := startLoop(t, surface, overlay)

	sched.Fire(0)
	sched.Fire(2500)

	require.Len(t, overlay.frames, 2)
	f := overlay.frames[1]
	assert.Equal(t, uint64(2), f.Index)
	assert.Equal(t, 2500.0, f.Millis)
	assert.Equal(t, float32(2.5), f.Time)
	assert.Equal(t, 200, f.Width)
	assert.Equal(t, 100, f.Height)
	assert.Equal(t, float32(200), f.Resolution.X())
	assert.Equal(t, 2, rec.Count("DrawArrays"))
}

func TestLoop_MissingUniformsStillDraw(t *testing.T) {
	rec := gfxtest.NewRecorder()
	rec.MissingUniforms = map[string]bool{gfx.ResolutionUniform: true, gfx.TimeUniform: true}
	p, err := gfx.Bootstrap(rec, solidFragment, nil)
	require.NoError(t, err)

	sched := &gfxtest.Scheduler{}
	gfx.NewLoop(p, &gfxtest.Surface{Width: 8, Height: 8, Ratio: 1}, sched).Start()
	sched.Fire(0)

	assert.Equal(t, 1, rec.Count("DrawArrays"))
	for _, c := range rec.Filter("Uniform1f") {
		assert.Equal(t, gfx.Uniform(-1), c.Args[0])
	}
}
