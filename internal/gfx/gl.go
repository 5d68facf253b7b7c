// Package gfx compiles one full-screen fragment shader and redraws it every
// display refresh.
//
// Bootstrap turns fragment source into an immutable Pipeline; a Loop then
// drives that pipeline from a host Scheduler, one tick per display refresh.
// The GL calls go through Context, the small subset of OpenGL / WebGL both
// hosts implement.
package gfx

import "shaderplay/internal/glsl"

type Stage = glsl.Stage

const (
	VertexStage   = glsl.Vertex
	FragmentStage = glsl.Fragment
)

// Object names. Zero is never a valid name.
type (
	Shader  uint32
	Program uint32
	Buffer  uint32
)

// Uniform is a uniform location; -1 means the program has no such uniform
// and updates to it are ignored.
type Uniform int32

// Attrib is a vertex attribute location; -1 means not found.
type Attrib int32

// Mode is a primitive topology for DrawArrays.
type Mode int

const Triangles Mode = iota

func (m Mode) String() string {
	switch m {
	case Triangles:
		return "triangles"
	default:
		return "unknown"
	}
}

// Context is the subset of a GL context shaderplay drives.
type Context interface {
	Dialect() glsl.Dialect

	CreateShader(stage Stage) Shader
	ShaderSource(s Shader, src string)
	CompileShader(s Shader)
	ShaderCompiled(s Shader) bool
	ShaderInfoLog(s Shader) string
	DeleteShader(s Shader)

	CreateProgram() Program
	AttachShader(p Program, s Shader)
	LinkProgram(p Program)
	ProgramLinked(p Program) bool
	ProgramInfoLog(p Program) string
	DeleteProgram(p Program)
	UseProgram(p Program)

	AttribLocation(p Program, name string) Attrib
	UniformLocation(p Program, name string) Uniform

	CreateBuffer() Buffer
	// BufferData uploads data as float32 with static usage into b bound as
	// the array buffer.
	BufferData(b Buffer, data []float32)
	// VertexAttribPointer enables a and sources it from the bound array
	// buffer as size float components, not normalized, tightly packed.
	VertexAttribPointer(a Attrib, size int)

	Viewport(x, y, width, height int)
	Uniform1f(u Uniform, v float32)
	Uniform2f(u Uniform, x, y float32)
	DrawArrays(mode Mode, first, count int)
}
