package glsl

import "strings"

// StripComments removes // and /* */ comments from GLSL code. Newlines inside
// block comments are kept so line numbers in compiler logs stay stable.
func StripComments(code string) string {
	var b strings.Builder
	b.Grow(len(code))

	inBlock := false
	for i := 0; i < len(code); i++ {
		c := code[i]
		if inBlock {
			if c == '*' && i+1 < len(code) && code[i+1] == '/' {
				inBlock = false
				i++
			} else if c == '\n' {
				b.WriteByte('\n')
			}
			continue
		}
		if c == '/' && i+1 < len(code) {
			switch code[i+1] {
			case '*':
				inBlock = true
				i++
				continue
			case '/':
				// Skip to end of line, keep the newline itself.
				for i+1 < len(code) && code[i+1] != '\n' {
					i++
				}
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}
