package glsl

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Input is one channel binding of an exported pass. Channels are not bound
// by shaderplay; they are decoded so exports round-trip without errors.
type Input struct {
	ID      string `json:"id"`
	Channel int    `json:"channel"`
	Src     string `json:"src,omitempty"`
	Type    string `json:"type,omitempty"`
}

type Pass struct {
	Index  int     `json:"index,omitempty"`
	Code   string  `json:"code"`
	Inputs []Input `json:"inputs,omitempty"`
	Type   string  `json:"type,omitempty"`
	Name   string  `json:"name,omitempty"`
}

type Metadata struct {
	URL         string `json:"url,omitempty"`
	ShaderID    string `json:"shader_id,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	NumPasses   int    `json:"num_passes,omitempty"`
}

// Export is a ShaderToy-style JSON export.
type Export struct {
	Metadata *Metadata `json:"metadata,omitempty"`
	Passes   []Pass    `json:"passes"`
}

var ErrNoPasses = errors.New("shader export contains no passes")

// ParseExport decodes a JSON export. Raw control characters inside string
// literals, common in hand-edited exports, are escaped before decoding.
func ParseExport(data []byte) (*Export, error) {
	if len(data) == 0 {
		return nil, errors.New("shader export is empty")
	}
	var exp Export
	if err := json.Unmarshal(escapeControlChars(data), &exp); err != nil {
		return nil, fmt.Errorf("parse shader export: %w", err)
	}
	if len(exp.Passes) == 0 {
		return nil, ErrNoPasses
	}
	return &exp, nil
}

// ImagePass returns the pass rendered to screen: the first pass typed
// "image" or named "Image", else the first pass.
func (e *Export) ImagePass() *Pass {
	for i := range e.Passes {
		if e.Passes[i].Type == "image" || e.Passes[i].Name == "Image" {
			return &e.Passes[i]
		}
	}
	return &e.Passes[0]
}

// FragmentSource wraps the image pass into a fragment program driven by
// u_resolution and u_time.
func (e *Export) FragmentSource() string {
	return WrapMainImage(e.ImagePass().Code)
}

// WrapMainImage turns code defining mainImage(out vec4, in vec2) into a
// GLSL ES 1.00 fragment program. Inputs shaderplay does not supply are
// mapped to constants derived from u_time.
func WrapMainImage(code string) string {
	var b strings.Builder
	b.WriteString(`precision highp float;
uniform vec2 u_resolution;
uniform float u_time;
#define iResolution vec3(u_resolution, 1.0)
#define iTime u_time
#define iTimeDelta (1.0 / 60.0)
#define iFrameRate 60.0
#define iFrame int(u_time * 60.0)
#define iMouse vec4(0.0, 0.0, -1.0, -1.0)
#define iDate vec4(0.0, 0.0, 0.0, u_time)
#define iSampleRate 44100.0
`)
	b.WriteString(StripComments(code))
	b.WriteString(`
void main() {
    mainImage(gl_FragColor, gl_FragCoord.xy);
}
`)
	return b.String()
}

func escapeControlChars(data []byte) []byte {
	out := make([]byte, 0, len(data))
	inString := false
	escaped := false
	for _, c := range data {
		if escaped {
			out = append(out, c)
			escaped = false
			continue
		}
		switch {
		case c == '\\' && inString:
			escaped = true
			out = append(out, c)
		case c == '"':
			inString = !inString
			out = append(out, c)
		case inString && c == '\n':
			out = append(out, '\\', 'n')
		case inString && c == '\r':
			out = append(out, '\\', 'r')
		case inString && c == '\t':
			out = append(out, '\\', 't')
		case inString && c < 0x20:
			out = append(out, fmt.Sprintf("\\u%04x", c)...)
		default:
			out = append(out, c)
		}
	}
	return out
}
