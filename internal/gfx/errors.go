package gfx

import "fmt"

const (
	genericCompileMessage = "Shader compile failed"
	genericLinkMessage    = "Program link failed"
)

// ContextUnavailableError reports that the platform offers no usable
// graphics context. It is never retried.
type ContextUnavailableError struct {
	Reason string
	Err    error
}

func (e *ContextUnavailableError) Error() string {
	msg := "graphics context unavailable"
	if e.Reason != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Reason)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ContextUnavailableError) Unwrap() error { return e.Err }

// ShaderCompileError carries the compiler's info log for a failed stage.
// Its message is the log itself, or a generic message if the log is empty.
type ShaderCompileError struct {
	Stage Stage
	Log   string
}

func (e *ShaderCompileError) Error() string {
	if e.Log == "" {
		return genericCompileMessage
	}
	return e.Log
}

// ProgramLinkError carries the linker's info log.
type ProgramLinkError struct {
	Log string
}

func (e *ProgramLinkError) Error() string {
	if e.Log == "" {
		return genericLinkMessage
	}
	return e.Log
}
