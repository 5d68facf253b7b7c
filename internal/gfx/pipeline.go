package gfx

import (
	"shaderplay/internal/glsl"
	"shaderplay/internal/logging"
)

// VertexSource maps the quad's position attribute straight to clip space.
const VertexSource = `attribute vec2 position;
void main() {
    gl_Position = vec4(position, 0.0, 1.0);
}
`

const (
	PositionAttrib    = "position"
	ResolutionUniform = "u_resolution"
	TimeUniform       = "u_time"
)

// QuadVertices are two triangles covering [-1,1]x[-1,1].
var QuadVertices = []float32{
	-1, -1,
	1, -1,
	-1, 1,
	-1, 1,
	1, -1,
	1, 1,
}

const (
	quadComponents  = 2
	QuadVertexCount = 6
)

// Pipeline is the result of a successful bootstrap: the active program, its
// uniform locations and the uploaded quad. It is not modified afterwards.
type Pipeline struct {
	gl         Context
	program    Program
	quad       Buffer
	resolution Uniform
	time       Uniform
}

func (p *Pipeline) Context() Context { return p.gl }
func (p *Pipeline) Program() Program { return p.program }
func (p *Pipeline) Quad() Buffer     { return p.quad }

// CompileStage compiles src for stage. On failure the shader object is
// deleted and a *ShaderCompileError carries the info log.
func CompileStage(gl Context, stage Stage, src string) (Shader, error) {
	s := gl.CreateShader(stage)
	gl.ShaderSource(s, glsl.Prepare(stage, src, gl.Dialect()))
	gl.CompileShader(s)
	if !gl.ShaderCompiled(s) {
		info := gl.ShaderInfoLog(s)
		gl.DeleteShader(s)
		return 0, &ShaderCompileError{Stage: stage, Log: info}
	}
	return s, nil
}

// LinkProgram links the two stages into a program. The stage objects are
// released either way; on failure so is the program.
func LinkProgram(gl Context, vs, fs Shader) (Program, error) {
	p := gl.CreateProgram()
	gl.AttachShader(p, vs)
	gl.AttachShader(p, fs)
	gl.LinkProgram(p)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)
	if !gl.ProgramLinked(p) {
		info := gl.ProgramInfoLog(p)
		gl.DeleteProgram(p)
		return 0, &ProgramLinkError{Log: info}
	}
	return p, nil
}

// UploadQuad uploads QuadVertices and binds them to program's position
// attribute. The program must be linked and in use.
func UploadQuad(gl Context, program Program, log logging.Logger) Buffer {
	b := gl.CreateBuffer()
	gl.BufferData(b, QuadVertices)
	a := gl.AttribLocation(program, PositionAttrib)
	if a < 0 {
		log.Warnf("Vertex attribute %q not found", PositionAttrib)
		return b
	}
	gl.VertexAttribPointer(a, quadComponents)
	return b
}

// Bootstrap compiles VertexSource and fragmentSource, links and activates the
// program, then looks up its uniforms and uploads the quad. It makes exactly
// one attempt.
func Bootstrap(gl Context, fragmentSource string, log logging.Logger) (*Pipeline, error) {
	if log == nil {
		log = logging.NewNopLogger()
	}

	vs, err := CompileStage(gl, VertexStage, VertexSource)
	if err != nil {
		return nil, err
	}
	fs, err := CompileStage(gl, FragmentStage, fragmentSource)
	if err != nil {
		gl.DeleteShader(vs)
		return nil, err
	}
	program, err := LinkProgram(gl, vs, fs)
	if err != nil {
		return nil, err
	}
	gl.UseProgram(program)

	p := &Pipeline{
		gl:         gl,
		program:    program,
		resolution: gl.UniformLocation(program, ResolutionUniform),
		time:       gl.UniformLocation(program, TimeUniform),
	}
	if p.resolution < 0 {
		log.Debugf("Uniform %s not used by fragment shader", ResolutionUniform)
	}
	if p.time < 0 {
		log.Debugf("Uniform %s not used by fragment shader", TimeUniform)
	}
	p.quad = UploadQuad(gl, program, log)

	log.Debugf("Pipeline ready: program=%d quad=%d dialect=%s", program, p.quad, gl.Dialect())
	return p, nil
}
