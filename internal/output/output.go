// Package output renders command results: JSON envelopes for agents and
// pipes, tables for terminals.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/nathanvale/cortex/internal/apperr"
	"github.com/nathanvale/cortex/internal/logging"
	"github.com/nathanvale/cortex/internal/models"
	"github.com/nathanvale/cortex/internal/query"
)

// Envelope statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// SuccessEnvelope wraps successful results.
type SuccessEnvelope struct {
	Status   string   `json:"status"`
	Data     any      `json:"data"`
	Count    *int     `json:"count,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// ErrorDetail carries the code and the agent hint for a failure.
type ErrorDetail struct {
	Code string `json:"code"`
	apperr.Hint
}

// ErrorEnvelope wraps a failure.
type ErrorEnvelope struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Error   ErrorDetail `json:"error"`
}

// Option configures a success envelope.
type Option func(*SuccessEnvelope)

// WithCount sets the count field.
func WithCount(n int) Option {
	return func(e *SuccessEnvelope) {
		e.Count = &n
	}
}

// WithWarnings attaches build warnings; an empty list is omitted.
func WithWarnings(w []string) Option {
	return func(e *SuccessEnvelope) {
		e.Warnings = w
	}
}

// NewSuccess builds a success envelope.
func NewSuccess(data any, opts ...Option) SuccessEnvelope {
	env := SuccessEnvelope{Status: StatusOK, Data: data}
	for _, opt := range opts {
		opt(&env)
	}
	return env
}

// NewError builds the error envelope for err.
func NewError(err error) ErrorEnvelope {
	code := apperr.CodeOf(err)
	return ErrorEnvelope{
		Status:  StatusError,
		Message: err.Error(),
		Error:   ErrorDetail{Code: code, Hint: apperr.HintFor(code)},
	}
}

// Printer writes results to stdout and human messages to stderr.
type Printer struct {
	Stdout io.Writer
	Stderr io.Writer
	// JSON forces envelopes even on a terminal.
	JSON bool
	// Quiet suppresses success output.
	Quiet bool
}

// Structured reports whether results should be JSON rather than tables.
func (p *Printer) Structured() bool {
	return p.JSON || !logging.IsTerminal(p.Stdout)
}

// Success writes one success envelope line, unless quiet.
func (p *Printer) Success(data any, opts ...Option) error {
	if p.Quiet {
		return nil
	}
	return writeLine(p.Stdout, NewSuccess(data, opts...))
}

// Error writes "Error: <msg>" to stderr and, when output is structured, the
// error envelope to stdout.
func (p *Printer) Error(err error) {
	fmt.Fprintf(p.Stderr, "Error: %s\n", err.Error())
	if p.Structured() {
		_ = writeLine(p.Stdout, NewError(err))
	}
}

// Info writes a human message to stderr, unless quiet.
func (p *Printer) Info(format string, args ...any) {
	if p.Quiet {
		return
	}
	fmt.Fprintf(p.Stderr, format+"\n", args...)
}

// Text writes raw text to stdout, unless quiet.
func (p *Printer) Text(s string) {
	if p.Quiet {
		return
	}
	fmt.Fprint(p.Stdout, s)
}

func writeLine(w io.Writer, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("output: marshal envelope: %w", err)
	}
	b = append(b, '\n')
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("output: write: %w", err)
	}
	return nil
}

// DocJSON is the default JSON shape of a document: its merged frontmatter
// plus path and stem.
func DocJSON(d models.Document) map[string]any {
	m := d.Frontmatter.Map()
	m["path"] = d.Path
	m["stem"] = d.Stem
	return m
}

// DocsJSON maps DocJSON over docs.
func DocsJSON(docs []models.Document) []map[string]any {
	out := make([]map[string]any, 0, len(docs))
	for _, d := range docs {
		out = append(out, DocJSON(d))
	}
	return out
}

// DocDetail is DocJSON plus the document body.
func DocDetail(d models.Document) map[string]any {
	m := DocJSON(d)
	m["body"] = d.Body
	return m
}

// Docs shapes docs for a response: projected to fields when any are given,
// otherwise DocsJSON.
func Docs(docs []models.Document, fields []string) any {
	if len(fields) > 0 {
		return query.Project(docs, fields)
	}
	return DocsJSON(docs)
}
