//go:build !js

// Package glcore implements gfx.Context on desktop OpenGL 3.3 core.
package glcore

import (
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"

	"shaderplay/internal/gfx"
	"shaderplay/internal/glsl"
)

// Context drives the OpenGL context current on the calling thread.
type Context struct {
	vao uint32
}

var _ gfx.Context = (*Context)(nil)

// New loads the GL function pointers for the current context. The core
// profile has no default vertex array, so one is created and left bound
// for the pipeline's attribute state.
func New() (*Context, error) {
	if err := gl.Init(); err != nil {
		return nil, &gfx.ContextUnavailableError{Reason: "load OpenGL 3.3 core", Err: err}
	}
	// Fullscreen quad needs neither.
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)

	c := &Context{}
	gl.GenVertexArrays(1, &c.vao)
	gl.BindVertexArray(c.vao)
	return c, nil
}

// VertexArray is the vertex array object holding the pipeline's attributes.
func (c *Context) VertexArray() uint32 { return c.vao }

// Version reports the GL_VERSION and GL_RENDERER strings.
func (c *Context) Version() (version, renderer string) {
	return gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.RENDERER))
}

func (c *Context) Dialect() glsl.Dialect { return glsl.Core330 }

func (c *Context) CreateShader(stage gfx.Stage) gfx.Shader {
	kind := uint32(gl.VERTEX_SHADER)
	if stage == gfx.FragmentStage {
		kind = gl.FRAGMENT_SHADER
	}
	return gfx.Shader(gl.CreateShader(kind))
}

func (c *Context) ShaderSource(s gfx.Shader, src string) {
	csources, free := gl.Strs(src + "\x00")
	gl.ShaderSource(uint32(s), 1, csources, nil)
	free()
}

func (c *Context) CompileShader(s gfx.Shader) { gl.CompileShader(uint32(s)) }

func (c *Context) ShaderCompiled(s gfx.Shader) bool {
	var status int32
	gl.GetShaderiv(uint32(s), gl.COMPILE_STATUS, &status)
	return status == gl.TRUE
}

func (c *Context) ShaderInfoLog(s gfx.Shader) string {
	var n int32
	gl.GetShaderiv(uint32(s), gl.INFO_LOG_LENGTH, &n)
	if n <= 0 {
		return ""
	}
	buf := make([]byte, n)
	gl.GetShaderInfoLog(uint32(s), n, nil, &buf[0])
	return trimLog(buf)
}

func (c *Context) DeleteShader(s gfx.Shader) { gl.DeleteShader(uint32(s)) }

func (c *Context) CreateProgram() gfx.Program { return gfx.Program(gl.CreateProgram()) }

func (c *Context) AttachShader(p gfx.Program, s gfx.Shader) {
	gl.AttachShader(uint32(p), uint32(s))
}

func (c *Context) LinkProgram(p gfx.Program) { gl.LinkProgram(uint32(p)) }

func (c *Context) ProgramLinked(p gfx.Program) bool {
	var status int32
	gl.GetProgramiv(uint32(p), gl.LINK_STATUS, &status)
	return status == gl.TRUE
}

func (c *Context) ProgramInfoLog(p gfx.Program) string {
	var n int32
	gl.GetProgramiv(uint32(p), gl.INFO_LOG_LENGTH, &n)
	if n <= 0 {
		return ""
	}
	buf := make([]byte, n)
	gl.GetProgramInfoLog(uint32(p), n, nil, &buf[0])
	return trimLog(buf)
}

func (c *Context) DeleteProgram(p gfx.Program) { gl.DeleteProgram(uint32(p)) }
func (c *Context) UseProgram(p gfx.Program)    { gl.UseProgram(uint32(p)) }

func (c *Context) AttribLocation(p gfx.Program, name string) gfx.Attrib {
	return gfx.Attrib(gl.GetAttribLocation(uint32(p), gl.Str(name+"\x00")))
}

func (c *Context) UniformLocation(p gfx.Program, name string) gfx.Uniform {
	return gfx.Uniform(gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00")))
}

func (c *Context) CreateBuffer() gfx.Buffer {
	var b uint32
	gl.GenBuffers(1, &b)
	return gfx.Buffer(b)
}

func (c *Context) BufferData(b gfx.Buffer, data []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(b))
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
}

func (c *Context) VertexAttribPointer(a gfx.Attrib, size int) {
	gl.EnableVertexAttribArray(uint32(a))
	gl.VertexAttribPointer(uint32(a), int32(size), gl.FLOAT, false, 0, gl.PtrOffset(0))
}

func (c *Context) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (c *Context) Uniform1f(u gfx.Uniform, v float32)    { gl.Uniform1f(int32(u), v) }
func (c *Context) Uniform2f(u gfx.Uniform, x, y float32) { gl.Uniform2f(int32(u), x, y) }

func (c *Context) DrawArrays(mode gfx.Mode, first, count int) {
	gl.DrawArrays(glModes[mode], int32(first), int32(count))
}

var glModes = map[gfx.Mode]uint32{
	gfx.Triangles: gl.TRIANGLES,
}

func trimLog(buf []byte) string {
	return strings.TrimRight(string(buf), "\x00")
}
