//go:build js && wasm

// Package webgl implements gfx on a browser canvas: a WebGL 1 context, the
// canvas as drawing surface and requestAnimationFrame as scheduler.
package webgl

import (
	"encoding/binary"
	"math"
	"syscall/js"

	"shaderplay/internal/gfx"
	"shaderplay/internal/glsl"
)

type glConsts struct {
	vertexShader   int
	fragmentShader int
	compileStatus  int
	linkStatus     int
	arrayBuffer    int
	staticDraw     int
	floatType      int
	triangles      int
}

// Context wraps a WebGLRenderingContext. WebGL objects are JS values, so
// they are kept in a table and handed out as numeric names.
type Context struct {
	gl      js.Value
	consts  glConsts
	objects map[uint32]js.Value
	// uniforms[i] is the WebGLUniformLocation for gfx.Uniform(i).
	uniforms []js.Value
	next     uint32
}

var _ gfx.Context = (*Context)(nil)

// New acquires a "webgl" context from canvas.
func New(canvas js.Value) (*Context, error) {
	if canvas.IsUndefined() || canvas.IsNull() {
		return nil, &gfx.ContextUnavailableError{Reason: "canvas element not found"}
	}
	glv := canvas.Call("getContext", "webgl")
	if glv.IsUndefined() || glv.IsNull() {
		return nil, &gfx.ContextUnavailableError{Reason: "WebGL not supported"}
	}
	c := &Context{
		gl:      glv,
		objects: make(map[uint32]js.Value),
	}
	c.consts = glConsts{
		vertexShader:   glv.Get("VERTEX_SHADER").Int(),
		fragmentShader: glv.Get("FRAGMENT_SHADER").Int(),
		compileStatus:  glv.Get("COMPILE_STATUS").Int(),
		linkStatus:     glv.Get("LINK_STATUS").Int(),
		arrayBuffer:    glv.Get("ARRAY_BUFFER").Int(),
		staticDraw:     glv.Get("STATIC_DRAW").Int(),
		floatType:      glv.Get("FLOAT").Int(),
		triangles:      glv.Get("TRIANGLES").Int(),
	}
	return c, nil
}

func (c *Context) put(v js.Value) uint32 {
	c.next++
	c.objects[c.next] = v
	return c.next
}

func (c *Context) obj(id uint32) js.Value {
	if v, ok := c.objects[id]; ok {
		return v
	}
	return js.Null()
}

func (c *Context) release(id uint32) js.Value {
	v := c.obj(id)
	delete(c.objects, id)
	return v
}

func (c *Context) Dialect() glsl.Dialect { return glsl.ES100 }

func (c *Context) CreateShader(stage gfx.Stage) gfx.Shader {
	kind := c.consts.vertexShader
	if stage == gfx.FragmentStage {
		kind = c.consts.fragmentShader
	}
	return gfx.Shader(c.put(c.gl.Call("createShader", kind)))
}

func (c *Context) ShaderSource(s gfx.Shader, src string) {
	c.gl.Call("shaderSource", c.obj(uint32(s)), src)
}

func (c *Context) CompileShader(s gfx.Shader) {
	c.gl.Call("compileShader", c.obj(uint32(s)))
}

func (c *Context) ShaderCompiled(s gfx.Shader) bool {
	return c.gl.Call("getShaderParameter", c.obj(uint32(s)), c.consts.compileStatus).Truthy()
}

func (c *Context) ShaderInfoLog(s gfx.Shader) string {
	return jsString(c.gl.Call("getShaderInfoLog", c.obj(uint32(s))))
}

func (c *Context) DeleteShader(s gfx.Shader) {
	c.gl.Call("deleteShader", c.release(uint32(s)))
}

func (c *Context) CreateProgram() gfx.Program {
	return gfx.Program(c.put(c.gl.Call("createProgram")))
}

func (c *Context) AttachShader(p gfx.Program, s gfx.Shader) {
	c.gl.Call("attachShader", c.obj(uint32(p)), c.obj(uint32(s)))
}

func (c *Context) LinkProgram(p gfx.Program) {
	c.gl.Call("linkProgram", c.obj(uint32(p)))
}

func (c *Context) ProgramLinked(p gfx.Program) bool {
	return c.gl.Call("getProgramParameter", c.obj(uint32(p)), c.consts.linkStatus).Truthy()
}

func (c *Context) ProgramInfoLog(p gfx.Program) string {
	return jsString(c.gl.Call("getProgramInfoLog", c.obj(uint32(p))))
}

func (c *Context) DeleteProgram(p gfx.Program) {
	c.gl.Call("deleteProgram", c.release(uint32(p)))
}

func (c *Context) UseProgram(p gfx.Program) {
	c.gl.Call("useProgram", c.obj(uint32(p)))
}

func (c *Context) AttribLocation(p gfx.Program, name string) gfx.Attrib {
	return gfx.Attrib(c.gl.Call("getAttribLocation", c.obj(uint32(p)), name).Int())
}

func (c *Context) UniformLocation(p gfx.Program, name string) gfx.Uniform {
	loc := c.gl.Call("getUniformLocation", c.obj(uint32(p)), name)
	if loc.IsNull() || loc.IsUndefined() {
		return -1
	}
	c.uniforms = append(c.uniforms, loc)
	return gfx.Uniform(len(c.uniforms) - 1)
}

func (c *Context) uniform(u gfx.Uniform) js.Value {
	if u < 0 || int(u) >= len(c.uniforms) {
		return js.Null()
	}
	return c.uniforms[u]
}

func (c *Context) CreateBuffer() gfx.Buffer {
	return gfx.Buffer(c.put(c.gl.Call("createBuffer")))
}

func (c *Context) BufferData(b gfx.Buffer, data []float32) {
	c.gl.Call("bindBuffer", c.consts.arrayBuffer, c.obj(uint32(b)))
	c.gl.Call("bufferData", c.consts.arrayBuffer, float32Array(data), c.consts.staticDraw)
}

func (c *Context) VertexAttribPointer(a gfx.Attrib, size int) {
	c.gl.Call("enableVertexAttribArray", int(a))
	c.gl.Call("vertexAttribPointer", int(a), size, c.consts.floatType, false, 0, 0)
}

func (c *Context) Viewport(x, y, width, height int) {
	c.gl.Call("viewport", x, y, width, height)
}

func (c *Context) Uniform1f(u gfx.Uniform, v float32) {
	c.gl.Call("uniform1f", c.uniform(u), v)
}

func (c *Context) Uniform2f(u gfx.Uniform, x, y float32) {
	c.gl.Call("uniform2f", c.uniform(u), x, y)
}

func (c *Context) DrawArrays(mode gfx.Mode, first, count int) {
	c.gl.Call("drawArrays", c.consts.triangles, first, count)
}

// float32Array copies data into a new JS Float32Array.
func float32Array(data []float32) js.Value {
	buf := make([]byte, len(data)*4)
	for i, f := range data {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	bytes := js.Global().Get("Uint8Array").New(len(buf))
	js.CopyBytesToJS(bytes, buf)
	return js.Global().Get("Float32Array").New(bytes.Get("buffer"))
}

func jsString(v js.Value) string {
	if v.IsNull() || v.IsUndefined() {
		return ""
	}
	return v.String()
}
