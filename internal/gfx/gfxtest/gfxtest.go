// Package gfxtest provides in-memory doubles for gfx: a GL context that
// records every call, a surface and a manually fired scheduler.
package gfxtest

import (
	"shaderplay/internal/gfx"
	"shaderplay/internal/glsl"
)

type Call struct {
	Name string
	Args []any
}

// Recorder is a gfx.Context that records calls instead of rendering.
type Recorder struct {
	Lang glsl.Dialect

	// FailCompile makes the listed stages fail with the mapped info log.
	FailCompile map[glsl.Stage]string
	// FailLink makes linking fail with LinkLog.
	FailLink bool
	LinkLog  string
	// MissingUniforms resolve to location -1.
	MissingUniforms map[string]bool

	Calls []Call

	next     uint32
	stages   map[gfx.Shader]glsl.Stage
	sources  map[gfx.Shader]string
	shaders  map[gfx.Shader]bool
	programs map[gfx.Program]bool
	buffers  map[gfx.Buffer][]float32
	uniforms map[string]gfx.Uniform
	values   map[gfx.Uniform][]float32
}

var _ gfx.Context = (*Recorder)(nil)

func NewRecorder() *Recorder {
	return &Recorder{
		stages:   make(map[gfx.Shader]glsl.Stage),
		sources:  make(map[gfx.Shader]string),
		shaders:  make(map[gfx.Shader]bool),
		programs: make(map[gfx.Program]bool),
		buffers:  make(map[gfx.Buffer][]float32),
		uniforms: make(map[string]gfx.Uniform),
		values:   make(map[gfx.Uniform][]float32),
	}
}

func (r *Recorder) record(name string, args ...any) {
	r.Calls = append(r.Calls, Call{Name: name, Args: args})
}

func (r *Recorder) id() uint32 {
	r.next++
	return r.next
}

func (r *Recorder) Dialect() glsl.Dialect { return r.Lang }

func (r *Recorder) CreateShader(stage glsl.Stage) gfx.Shader {
	s := gfx.Shader(r.id())
	r.stages[s] = stage
	r.shaders[s] = true
	r.record("CreateShader", stage)
	return s
}

func (r *Recorder) ShaderSource(s gfx.Shader, src string) {
	r.sources[s] = src
	r.record("ShaderSource", s, src)
}

func (r *Recorder) CompileShader(s gfx.Shader) { r.record("CompileShader", s) }

func (r *Recorder) ShaderCompiled(s gfx.Shader) bool {
	_, fail := r.FailCompile[r.stages[s]]
	return !fail
}

func (r *Recorder) ShaderInfoLog(s gfx.Shader) string { return r.FailCompile[r.stages[s]] }

func (r *Recorder) DeleteShader(s gfx.Shader) {
	delete(r.shaders, s)
	r.record("DeleteShader", s)
}

func (r *Recorder) CreateProgram() gfx.Program {
	p := gfx.Program(r.id())
	r.programs[p] = true
	r.record("CreateProgram")
	return p
}

func (r *Recorder) AttachShader(p gfx.Program, s gfx.Shader) { r.record("AttachShader", p, s) }
func (r *Recorder) LinkProgram(p gfx.Program)                { r.record("LinkProgram", p) }
func (r *Recorder) ProgramLinked(p gfx.Program) bool         { return !r.FailLink }
func (r *Recorder) ProgramInfoLog(p gfx.Program) string      { return r.LinkLog }

func (r *Recorder) DeleteProgram(p gfx.Program) {
	delete(r.programs, p)
	r.record("DeleteProgram", p)
}

func (r *Recorder) UseProgram(p gfx.Program) { r.record("UseProgram", p) }

func (r *Recorder) AttribLocation(p gfx.Program, name string) gfx.Attrib {
	r.record("AttribLocation", p, name)
	return 0
}

func (r *Recorder) UniformLocation(p gfx.Program, name string) gfx.Uniform {
	r.record("UniformLocation", p, name)
	if r.MissingUniforms[name] {
		return -1
	}
	u, ok := r.uniforms[name]
	if !ok {
		u = gfx.Uniform(len(r.uniforms) + 1)
		r.uniforms[name] = u
	}
	return u
}

func (r *Recorder) CreateBuffer() gfx.Buffer {
	b := gfx.Buffer(r.id())
	r.record("CreateBuffer")
	return b
}

func (r *Recorder) BufferData(b gfx.Buffer, data []float32) {
	r.buffers[b] = append([]float32(nil), data...)
	r.record("BufferData", b, len(data))
}

func (r *Recorder) VertexAttribPointer(a gfx.Attrib, size int) {
	r.record("VertexAttribPointer", a, size)
}

func (r *Recorder) Viewport(x, y, width, height int) {
	r.record("Viewport", x, y, width, height)
}

func (r *Recorder) Uniform1f(u gfx.Uniform, v float32) {
	r.values[u] = []float32{v}
	r.record("Uniform1f", u, v)
}

func (r *Recorder) Uniform2f(u gfx.Uniform, x, y float32) {
	r.values[u] = []float32{x, y}
	r.record("Uniform2f", u, x, y)
}

func (r *Recorder) DrawArrays(mode gfx.Mode, first, count int) {
	r.record("DrawArrays", mode, first, count)
}

// Count returns how many times the named call was made.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Index returns the position of the first named call, or -1.
func (r *Recorder) Index(name string) int {
	for i, c := range r.Calls {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Filter returns the named calls in order.
func (r *Recorder) Filter(name string) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Source returns the text last given to ShaderSource for the first shader
// created for stage.
func (r *Recorder) Source(stage glsl.Stage) string {
	for _, c := range r.Filter("ShaderSource") {
		s := c.Args[0].(gfx.Shader)
		if r.stages[s] == stage {
			return r.sources[s]
		}
	}
	return ""
}

func (r *Recorder) LiveShaders() int  { return len(r.shaders) }
func (r *Recorder) LivePrograms() int { return len(r.programs) }

// BufferContents returns the data uploaded to b.
func (r *Recorder) BufferContents(b gfx.Buffer) []float32 { return r.buffers[b] }

// UniformValue returns the last value pushed to the named uniform.
func (r *Recorder) UniformValue(name string) []float32 {
	u, ok := r.uniforms[name]
	if !ok {
		return nil
	}
	return r.values[u]
}

// Surface is an in-memory gfx.Surface.
type Surface struct {
	Width    float64
	Height   float64
	Ratio    float64
	BackingW int
	BackingH int

	// Resizes counts backing store reassignments.
	Resizes int
}

var _ gfx.Surface = (*Surface)(nil)

func (s *Surface) LogicalSize() (float64, float64) { return s.Width, s.Height }
func (s *Surface) PixelRatio() float64             { return s.Ratio }
func (s *Surface) BackingSize() (int, int)         { return s.BackingW, s.BackingH }

func (s *Surface) SetBackingSize(w, h int) {
	s.BackingW, s.BackingH = w, h
	s.Resizes++
}

// Scheduler holds the requested frame until Fire is called.
type Scheduler struct {
	pending  gfx.FrameFunc
	Requests int
}

var _ gfx.Scheduler = (*Scheduler)(nil)

func (s *Scheduler) RequestFrame(fn gfx.FrameFunc) {
	s.pending = fn
	s.Requests++
}

func (s *Scheduler) Pending() bool { return s.pending != nil }

// Fire runs the pending frame with millis and reports whether one was pending.
func (s *Scheduler) Fire(millis float64) bool {
	fn := s.pending
	if fn == nil {
		return false
	}
	s.pending = nil
	fn(millis)
	return true
}
