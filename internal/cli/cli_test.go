package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathanvale/cortex/internal/apperr"
	"github.com/nathanvale/cortex/internal/testutil"
)

type result struct {
	code   int
	stdout string
	stderr string
}

type envelope struct {
	Status   string          `json:"status"`
	Message  string          `json:"message"`
	Count    *int            `json:"count"`
	Warnings []string        `json:"warnings"`
	Data     json.RawMessage `json:"data"`
	Error    struct {
		Code      string `json:"code"`
		Action    string `json:"action"`
		Retryable bool   `json:"retryable"`
	} `json:"error"`
}

func (r result) envelope(t *testing.T) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &env), "stdout: %s", r.stdout)
	return env
}

func run(t *testing.T, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Run(context.Background(), append([]string{"cortex"}, args...), &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

// testConfig writes a docs tree and a config pointing at it, returning the
// config path.
func testConfig(t *testing.T, extra string) string {
	t.Helper()
	t.Setenv("CORTEX_CONFIG", "")
	t.Setenv("LOG_FORMAT", "")
	root := testutil.TestRoot(t)
	testutil.WriteFile(t, root, "docs/plans/auth-design.md", testutil.Doc("title: Auth design\ntype: plan\nstatus: draft\nproject: cortex\ncreated: 2026-01-01\ntags: [auth, security]", "token rotation\n"))
	testutil.WriteFile(t, root, "docs/research/caching.md", testutil.Doc("title: Caching\ntype: research\nstatus: final\ncreated: 2026-02-01\ntags: [perf]", "cache token\n"))
	testutil.WriteFile(t, root, "docs/meetings/standup.md", testutil.Doc("title: Standup\ntype: meeting\ncreated: 2026-03-01", "notes\n"))
	testutil.WriteFile(t, root, "docs/broken.md", "---\ntitle: [unclosed\n---\nbody\n")

	cfg := "sources:\n  - path: " + filepath.Join(root, "docs") + "\n    scope: global\n" + extra
	return testutil.WriteFile(t, root, "config.yaml", cfg)
}

func stems(t *testing.T, env envelope) []string {
	t.Helper()
	var docs []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &docs))
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d["stem"].(string))
	}
	return out
}

func TestList_JSONEnvelope(t *testing.T) {
	cfg := testConfig(t, "")

	r := run(t, "list", "--config", cfg)
	require.Equal(t, apperr.ExitSuccess, r.code, r.stderr)

	env := r.envelope(t)
	assert.Equal(t, "ok", env.Status)
	require.NotNil(t, env.Count)
	assert.Equal(t, 3, *env.Count)
	assert.Equal(t, []string{"standup", "caching", "auth-design"}, stems(t, env))
	require.Len(t, env.Warnings, 1)
	assert.Contains(t, env.Warnings[0], "broken.md")
}

func TestList_Filters(t *testing.T) {
	cfg := testConfig(t, "")

	r := run(t, "ls", "--config", cfg, "--tags", "perf,security")
	require.Equal(t, apperr.ExitSuccess, r.code, r.stderr)
	assert.Equal(t, []string{"caching", "auth-design"}, stems(t, r.envelope(t)))

	r = run(t, "list", "--config", cfg, "--type", "PLAN", "--status", "draft", "--project", "cortex")
	require.Equal(t, apperr.ExitSuccess, r.code, r.stderr)
	assert.Equal(t, []string{"auth-design"}, stems(t, r.envelope(t)))
}

func TestList_FieldsProjection(t *testing.T) {
	cfg := testConfig(t, "")

	r := run(t, "list", "--config", cfg, "--fields", "stem,title")
	require.Equal(t, apperr.ExitSuccess, r.code, r.stderr)

	var docs []map[string]any
	require.NoError(t, json.Unmarshal(r.envelope(t).Data, &docs))
	require.Len(t, docs, 3)
	assert.Equal(t, map[string]any{"stem": "standup", "title": "Standup"}, docs[0])
}

func TestList_Quiet(t *testing.T) {
	cfg := testConfig(t, "")

	r := run(t, "list", "--config", cfg, "--quiet")
	assert.Equal(t, apperr.ExitSuccess, r.code)
	assert.Empty(t, r.stdout)
}

func TestSearch_Limit(t *testing.T) {
	cfg := testConfig(t, "")

	r := run(t, "search", "--config", cfg, "--limit", "1", "TOKEN")
	require.Equal(t, apperr.ExitSuccess, r.code, r.stderr)

	env := r.envelope(t)
	require.NotNil(t, env.Count)
	assert.Equal(t, 1, *env.Count)
	assert.Equal(t, []string{"caching"}, stems(t, env))
}

func TestSearch_UsageErrors(t *testing.T) {
	cfg := testConfig(t, "")

	r := run(t, "search", "--config", cfg)
	assert.Equal(t, apperr.ExitInvalidArgs, r.code)
	assert.Contains(t, r.stderr, "Error: Search requires a query.")
	assert.Equal(t, apperr.CodeUsage, r.envelope(t).Error.Code)

	r = run(t, "search", "--config", cfg, "--limit", "0", "token")
	assert.Equal(t, apperr.ExitInvalidArgs, r.code)
	assert.Contains(t, r.stderr, `Invalid --limit value: "0"`)

	r = run(t, "search", "--config", cfg, "--limit", "abc", "token")
	assert.Equal(t, apperr.ExitInvalidArgs, r.code)
}

func TestMissingConfig(t *testing.T) {
	t.Setenv("CORTEX_CONFIG", "")
	missing := filepath.Join(t.TempDir(), "nope.yaml")

	r := run(t, "list", "--config", missing)
	assert.Equal(t, apperr.ExitConfig, r.code)
	assert.Contains(t, r.stderr, "Config file not found: "+missing)

	env := r.envelope(t)
	assert.Equal(t, "error", env.Status)
	assert.Equal(t, apperr.CodeConfig, env.Error.Code)
	assert.Equal(t, "CHECK_CONFIG", env.Error.Action)
}

func TestOpen_NotFoundAndAmbiguous(t *testing.T) {
	cfg := testConfig(t, "viewer: \"true\"\n")

	r := run(t, "open", "--config", cfg, "stand-up")
	assert.Equal(t, apperr.ExitNotFound, r.code)
	assert.Contains(t, r.stderr, `No document matching "stand-up".`)
	assert.Equal(t, apperr.CodeNotFound, r.envelope(t).Error.Code)

	r = run(t, "open", "--config", cfg, "a")
	assert.Equal(t, apperr.ExitInvalidArgs, r.code)
	assert.Contains(t, r.stderr, "Multiple matches")

	r = run(t, "open", "--config", cfg)
	assert.Equal(t, apperr.ExitInvalidArgs, r.code)
	assert.Contains(t, r.stderr, "Open requires an identifier.")
}

func TestOpen_RunsViewer(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(dir, "opened")
	cfg := testConfig(t, "viewer: [sh, -c, 'printf %s > "+marker+"']\n")

	r := run(t, "open", "--config", cfg, "CACHING")
	require.Equal(t, apperr.ExitSuccess, r.code, r.stderr)

	env := r.envelope(t)
	var data struct {
		Path   string   `json:"path"`
		Stem   string   `json:"stem"`
		Viewer []string `json:"viewer"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "caching", data.Stem)
	assert.Equal(t, "sh", data.Viewer[0])
	assert.Contains(t, r.stderr, "Opened: "+data.Path)

	got, err := os.ReadFile(marker)
	require.NoError(t, err)
	assert.Equal(t, data.Path, string(got))
}

func TestOpen_ViewerFailure(t *testing.T) {
	cfg := testConfig(t, "viewer: \"false\"\n")

	r := run(t, "open", "--config", cfg, "caching")
	assert.Equal(t, apperr.ExitError, r.code)
	assert.Contains(t, r.stderr, "Failed to open")
}

func TestHelp_MachineReadable(t *testing.T) {
	for _, args := range [][]string{nil, {"help"}} {
		r := run(t, args...)
		require.Equal(t, apperr.ExitSuccess, r.code, r.stderr)

		var data helpData
		require.NoError(t, json.Unmarshal(r.envelope(t).Data, &data))
		assert.Equal(t, "list", data.Commands[0].Name)
		assert.NotEmpty(t, data.Flags)
	}
}

func TestUnknownCommand(t *testing.T) {
	r := run(t, "frobnicate")
	assert.Equal(t, apperr.ExitInvalidArgs, r.code)
	assert.Contains(t, r.stderr, "Unknown command: frobnicate.")
}

func TestUnknownFlag(t *testing.T) {
	cfg := testConfig(t, "")

	r := run(t, "list", "--config", cfg, "--bogus")
	assert.Equal(t, apperr.ExitInvalidArgs, r.code)
}

func TestInit(t *testing.T) {
	dir := testutil.TestRoot(t)
	cfgPath := filepath.Join(dir, "conf", "config.yaml")

	r := run(t, "init", "--config", cfgPath)
	require.Equal(t, apperr.ExitSuccess, r.code, r.stderr)

	var res struct {
		ConfigPath string   `json:"config_path"`
		DocsPath   string   `json:"docs_path"`
		Created    bool     `json:"created"`
		Subdirs    []string `json:"subdirs"`
	}
	require.NoError(t, json.Unmarshal(r.envelope(t).Data, &res))
	assert.True(t, res.Created)
	assert.Equal(t, filepath.Join(dir, "conf", "docs"), res.DocsPath)
	assert.DirExists(t, filepath.Join(res.DocsPath, "plans"))

	// The generated config must load and list an empty tree.
	r = run(t, "list", "--config", cfgPath)
	require.Equal(t, apperr.ExitSuccess, r.code, r.stderr)
	assert.Equal(t, 0, *r.envelope(t).Count)

	r = run(t, "init", "--config", cfgPath)
	require.Equal(t, apperr.ExitSuccess, r.code, r.stderr)
	require.NoError(t, json.Unmarshal(r.envelope(t).Data, &res))
	assert.False(t, res.Created)
}

func TestInit_RejectsUnsafeDocsPath(t *testing.T) {
	dir := t.TempDir()

	r := run(t, "init", "--config", filepath.Join(dir, "config.yaml"), "--docs-path", filepath.Join(dir, "docs;rm"))
	assert.Equal(t, apperr.ExitInvalidArgs, r.code)
	assert.True(t, strings.HasPrefix(r.stderr, "Error: Invalid docs path"), r.stderr)
}
