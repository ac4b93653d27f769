// Package apperr defines coded errors shared by every Cortex surface.
package apperr

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrAlreadyExists = errors.New("already exists")
)

// Error codes.
const (
	CodeConfig   = "E_CONFIG"
	CodeNotFound = "E_NOT_FOUND"
	CodeUsage    = "E_USAGE"
	CodeParse    = "E_PARSE"
	CodeRuntime  = "E_RUNTIME"
)

// Process exit codes.
const (
	ExitSuccess     = 0
	ExitError       = 1
	ExitInvalidArgs = 2
	ExitConfig      = 3
	ExitNotFound    = 4
)

// Hint tells an agent what to do about an error code.
type Hint struct {
	Action    string `json:"action"`
	Retryable bool   `json:"retryable"`
}

var hints = map[string]Hint{
	CodeConfig:   {Action: "CHECK_CONFIG"},
	CodeNotFound: {Action: "TRY_DIFFERENT_QUERY"},
	CodeUsage:    {Action: "FIX_ARGS"},
	CodeParse:    {Action: "CHECK_FRONTMATTER"},
	CodeRuntime:  {Action: "ESCALATE"},
}

// HintFor returns the hint for code; unknown codes escalate.
func HintFor(code string) Hint {
	if h, ok := hints[code]; ok {
		return h
	}
	return Hint{Action: "ESCALATE"}
}

// Error is an error with a stable code.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Config returns an E_CONFIG error.
func Config(msg string, err error) *Error {
	return &Error{Code: CodeConfig, Message: msg, Err: err}
}

// Usage returns an E_USAGE error.
func Usage(msg string) *Error {
	return &Error{Code: CodeUsage, Message: msg}
}

// NotFound returns an E_NOT_FOUND error wrapping ErrNotFound.
func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg, Err: ErrNotFound}
}

// Ambiguous returns an E_USAGE error wrapping ErrConflict.
func Ambiguous(msg string) *Error {
	return &Error{Code: CodeUsage, Message: msg, Err: ErrConflict}
}

// Parse returns an E_PARSE error.
func Parse(msg string, err error) *Error {
	return &Error{Code: CodeParse, Message: msg, Err: err}
}

// Runtime returns an E_RUNTIME error.
func Runtime(msg string, err error) *Error {
	return &Error{Code: CodeRuntime, Message: msg, Err: err}
}

// CodeOf returns the code carried by err, or E_RUNTIME.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeRuntime
}

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	switch CodeOf(err) {
	case CodeUsage:
		return ExitInvalidArgs
	case CodeConfig:
		return ExitConfig
	case CodeNotFound:
		return ExitNotFound
	default:
		return ExitError
	}
}
