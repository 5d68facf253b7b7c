//go:build !js

package host

import (
	"github.com/go-gl/gl/v3.3-core/gl"

	"shaderplay/internal/gfx"
	"shaderplay/internal/hud"
)

const hudVertexSource = `#version 330 core
layout(location = 0) in vec2 aPos;
layout(location = 1) in vec2 aTexCoord;
out vec2 TexCoord;
uniform mat4 projection;

void main() {
    gl_Position = projection * vec4(aPos, 0.0, 1.0);
    TexCoord = aTexCoord;
}
`

const hudFragmentSource = `#version 330 core
in vec2 TexCoord;
out vec4 FragColor;
uniform sampler2D textTexture;
uniform vec3 textColor;

void main() {
    FragColor = vec4(textColor, texture(textTexture, TexCoord).a);
}
`

// HUD draws frame statistics in the top-left corner of the window.
type HUD struct {
	win        *Window
	stats      *hud.Stats
	program    uint32
	vao        uint32
	vbo        uint32
	texture    uint32
	projection int32
	textColor  int32
}

var _ gfx.Overlay = (*HUD)(nil)

// NewHUD builds the HUD's program and buffers. ctx must be the window's
// context, already made current.
func NewHUD(win *Window, ctx gfx.Context) (*HUD, error) {
	vs, err := gfx.CompileStage(ctx, gfx.VertexStage, hudVertexSource)
	if err != nil {
		return nil, err
	}
	fs, err := gfx.CompileStage(ctx, gfx.FragmentStage, hudFragmentSource)
	if err != nil {
		ctx.DeleteShader(vs)
		return nil, err
	}
	program, err := gfx.LinkProgram(ctx, vs, fs)
	if err != nil {
		return nil, err
	}

	h := &HUD{win: win, stats: hud.NewStats(), program: uint32(program)}
	h.projection = gl.GetUniformLocation(h.program, gl.Str("projection\x00"))
	h.textColor = gl.GetUniformLocation(h.program, gl.Str("textColor\x00"))

	var s state
	s.save()
	defer s.restore()

	gl.GenVertexArrays(1, &h.vao)
	gl.GenBuffers(1, &h.vbo)
	gl.BindVertexArray(h.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, h.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 6*4*4, nil, gl.DYNAMIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 4*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 4*4, gl.PtrOffset(2*4))

	gl.GenTextures(1, &h.texture)
	gl.BindTexture(gl.TEXTURE_2D, h.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return h, nil
}

func (h *HUD) DrawOverlay(f gfx.Frame) {
	h.stats.Observe(f.Millis)
	ww, wh := h.win.Size()
	img := hud.Rasterize(hud.Lines(f, ww, wh, h.stats))

	var s state
	s.save()
	defer s.restore()

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	defer gl.Disable(gl.BLEND)

	gl.BindTexture(gl.TEXTURE_2D, h.texture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(img.Bounds().Dx()), int32(img.Bounds().Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))

	// Scale text with the framebuffer so it keeps its size on HiDPI screens.
	scale := float32(1)
	if ww > 0 {
		scale = float32(f.Width) / float32(ww)
	}
	quad := hud.Quad(hud.Margin*scale, hud.Margin*scale,
		float32(img.Bounds().Dx())*scale, float32(img.Bounds().Dy())*scale)
	projection := hud.Projection(f.Width, f.Height)

	gl.UseProgram(h.program)
	gl.UniformMatrix4fv(h.projection, 1, false, &projection[0])
	gl.Uniform3f(h.textColor, 1, 1, 1)

	gl.BindVertexArray(h.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, h.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(quad)*4, gl.Ptr(quad))
	gl.ActiveTexture(gl.TEXTURE0)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// state is the GL binding state the HUD changes and puts back.
type state struct {
	program, vao, buffer int32
}

func (s *state) save() {
	gl.GetIntegerv(gl.CURRENT_PROGRAM, &s.program)
	gl.GetIntegerv(gl.VERTEX_ARRAY_BINDING, &s.vao)
	gl.GetIntegerv(gl.ARRAY_BUFFER_BINDING, &s.buffer)
}

func (s *state) restore() {
	gl.UseProgram(uint32(s.program))
	gl.BindVertexArray(uint32(s.vao))
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(s.buffer))
}
