// Package glsl adapts fragment and vertex sources to the GLSL dialect a
// context compiles.
//
// Sources are authored in GLSL ES 1.00, the WebGL 1 language. The browser
// compiles them as-is; the desktop OpenGL 3.3 core profile needs a version
// line and a handful of macros for the identifiers core GLSL removed.
package glsl

import (
	"regexp"
	"strings"
)

// Stage is a pipeline stage a source is compiled for.
type Stage int

const (
	Vertex Stage = iota
	Fragment
)

func (s Stage) String() string {
	switch s {
	case Vertex:
		return "vertex"
	case Fragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// Dialect is the GLSL flavour accepted by a context.
type Dialect int

const (
	ES100   Dialect = iota // WebGL 1
	Core330                // desktop OpenGL 3.3 core profile
)

func (d Dialect) String() string {
	switch d {
	case ES100:
		return "GLSL ES 1.00"
	case Core330:
		return "GLSL 3.30 core"
	default:
		return "unknown"
	}
}

// FragColorOutput is the output variable gl_FragColor is mapped onto in Core330.
const FragColorOutput = "shaderplay_FragColor"

var (
	versionPattern   = regexp.MustCompile(`(?m)^[ \t]*#[ \t]*version\b`)
	extensionPattern = regexp.MustCompile(`^[ \t]*#[ \t]*extension\b`)
)

// HasVersion reports whether src declares its own #version outside comments.
func HasVersion(src string) bool {
	return versionPattern.MatchString(StripComments(src))
}

// Prepare returns src ready to compile for stage under dialect. Sources that
// declare a #version are trusted to target the dialect already.
func Prepare(stage Stage, src string, dialect Dialect) string {
	if dialect != Core330 || HasVersion(src) {
		return src
	}

	extensions, body := hoistExtensions(src)

	var b strings.Builder
	b.WriteString("#version 330 core\n")
	for _, ext := range extensions {
		b.WriteString(ext)
		b.WriteByte('\n')
	}
	switch stage {
	case Vertex:
		b.WriteString("#define attribute in\n")
		b.WriteString("#define varying out\n")
	case Fragment:
		b.WriteString("#define varying in\n")
		b.WriteString("#define texture2D texture\n")
		b.WriteString("#define textureCube texture\n")
		b.WriteString("out vec4 " + FragColorOutput + ";\n")
		b.WriteString("#define gl_FragColor " + FragColorOutput + "\n")
	}
	b.WriteString("#line 1\n")
	b.WriteString(body)
	return b.String()
}

// hoistExtensions pulls #extension directives out of src, leaving blank lines
// behind so compiler line numbers still match the input.
func hoistExtensions(src string) ([]string, string) {
	lines := strings.Split(src, "\n")
	var exts []string
	for i, line := range lines {
		if extensionPattern.MatchString(line) {
			exts = append(exts, strings.TrimSpace(line))
			lines[i] = ""
		}
	}
	return exts, strings.Join(lines, "\n")
}
