package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathanvale/cortex/internal/apperr"
	"github.com/nathanvale/cortex/internal/models"
)

func ptr(s string) *string { return &s }

func newPrinter() (*Printer, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return &Printer{Stdout: &out, Stderr: &errOut}, &out, &errOut
}

func TestSuccess_OmitsUnsetCountAndEmptyWarnings(t *testing.T) {
	p, out, _ := newPrinter()
	require.NoError(t, p.Success([]string{"a"}, WithWarnings(nil)))
	assert.JSONEq(t, `{"status":"ok","data":["a"]}`, out.String())
	assert.True(t, strings.HasSuffix(out.String(), "\n"))
}

func TestSuccess_CountAndWarnings(t *testing.T) {
	p, out, _ := newPrinter()
	require.NoError(t, p.Success([]int{}, WithCount(0), WithWarnings([]string{"w1"})))
	assert.JSONEq(t, `{"status":"ok","data":[],"count":0,"warnings":["w1"]}`, out.String())
}

func TestSuccess_QuietWritesNothing(t *testing.T) {
	p, out, errOut := newPrinter()
	p.Quiet = true
	require.NoError(t, p.Success("x", WithCount(1)))
	p.Info("Opened: %s", "/x")
	p.Text("table")
	assert.Empty(t, out.String())
	assert.Empty(t, errOut.String())
}

func TestError_EnvelopeWhenPiped(t *testing.T) {
	p, out, errOut := newPrinter()
	p.Error(apperr.NotFound(`No document matching "x".`))

	assert.Equal(t, "Error: No document matching \"x\".\n", errOut.String())
	var env ErrorEnvelope
	require.NoError(t, json.Unmarshal(out.Bytes(), &env))
	assert.Equal(t, StatusError, env.Status)
	assert.Equal(t, apperr.CodeNotFound, env.Error.Code)
	assert.Equal(t, "TRY_DIFFERENT_QUERY", env.Error.Action)
	assert.False(t, env.Error.Retryable)
}

func TestError_PlainErrorEscalates(t *testing.T) {
	p, out, _ := newPrinter()
	p.Error(errors.New("boom"))
	assert.JSONEq(t, `{"status":"error","message":"boom","error":{"code":"E_RUNTIME","action":"ESCALATE","retryable":false}}`, out.String())
}

func TestStructured(t *testing.T) {
	p, _, _ := newPrinter()
	assert.True(t, p.Structured(), "buffers are never terminals")
}

func TestDocJSON(t *testing.T) {
	d := models.Document{
		Path: "/docs/a.md",
		Stem: "a",
		Body: "hidden",
		Frontmatter: models.Frontmatter{
			Title: ptr("A"),
			Tags:  []string{"x"},
			Extra: map[string]any{"source": "web", "path": "ignored"},
		},
	}
	assert.Equal(t, map[string]any{
		"title":  "A",
		"tags":   []string{"x"},
		"source": "web",
		"path":   "/docs/a.md",
		"stem":   "a",
	}, DocJSON(d))
	assert.Len(t, DocsJSON([]models.Document{d, d}), 2)
}
