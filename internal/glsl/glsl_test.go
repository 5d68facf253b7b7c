package glsl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const esFragment = `precision mediump float;
uniform vec2 u_resolution;
uniform float u_time;
void main() {
    vec2 uv = gl_FragCoord.xy / u_resolution;
    gl_FragColor = vec4(uv, 0.5 + 0.5 * sin(u_time), 1.0);
}
`

func TestPrepare_ES100Unchanged(t *testing.T) {
	assert.Equal(t, esFragment, Prepare(Fragment, esFragment, ES100))
}

func TestPrepare_Core330Fragment(t *testing.T) {
	out := Prepare(Fragment, esFragment, Core330)

	require.True(t, strings.HasPrefix(out, "#version 330 core\n"))
	assert.Contains(t, out, "out vec4 "+FragColorOutput+";")
	assert.Contains(t, out, "#define gl_FragColor "+FragColorOutput)
	assert.Contains(t, out, "#define texture2D texture")
	assert.NotContains(t, out, "#define attribute")
	assert.True(t, strings.HasSuffix(out, "#line 1\n"+esFragment))
}

func TestPrepare_Core330Vertex(t *testing.T) {
	src := "attribute vec2 position;\nvoid main() { gl_Position = vec4(position, 0.0, 1.0); }\n"
	out := Prepare(Vertex, src, Core330)

	assert.Contains(t, out, "#define attribute in")
	assert.Contains(t, out, "#define varying out")
	assert.NotContains(t, out, FragColorOutput)
}

func TestPrepare_KeepsExplicitVersion(t *testing.T) {
	src := "#version 330 core\nout vec4 c;\nvoid main() { c = vec4(1.0); }\n"
	assert.Equal(t, src, Prepare(Fragment, src, Core330))
}

func TestPrepare_VersionInsideCommentIsIgnored(t *testing.T) {
	src := "// #version 100\n/* #version 300 es */\nvoid main() { gl_FragColor = vec4(1.0); }\n"
	out := Prepare(Fragment, src, Core330)
	assert.True(t, strings.HasPrefix(out, "#version 330 core\n"))
}

func TestPrepare_HoistsExtensions(t *testing.T) {
	src := "precision mediump float;\n#extension GL_OES_standard_derivatives : enable\nvoid main() { gl_FragColor = vec4(1.0); }\n"
	out := Prepare(Fragment, src, Core330)

	extAt := strings.Index(out, "#extension GL_OES_standard_derivatives : enable")
	outAt := strings.Index(out, "out vec4")
	require.GreaterOrEqual(t, extAt, 0)
	assert.Less(t, extAt, outAt)
	assert.Equal(t, 1, strings.Count(out, "#extension"))

	// Line count of the body is preserved.
	body := out[strings.Index(out, "#line 1\n")+len("#line 1\n"):]
	assert.Equal(t, strings.Count(src, "\n"), strings.Count(body, "\n"))
}

func TestStripComments(t *testing.T) {
	src := "float a; // trailing\n/* block\nspanning */float b;\n// whole line\nfloat c;"
	out := StripComments(src)

	assert.Equal(t, "float a; \n\nfloat b;\n\nfloat c;", out)
	assert.Equal(t, strings.Count(src, "\n"), strings.Count(out, "\n"))
}

func TestStage_String(t *testing.T) {
	assert.Equal(t, "vertex", Vertex.String())
	assert.Equal(t, "fragment", Fragment.String())
	assert.Equal(t, "GLSL 3.30 core", Core330.String())
}
