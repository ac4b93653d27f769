package internal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathanvale/cortex/internal/apperr"
	"github.com/nathanvale/cortex/internal/models"
)

func TestAuthConfig_DisabledMode(t *testing.T) {
	cfg := AuthConfig{Mode: "disabled", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled mode should pass: %v", err)
	}
	if cfg.AuthEnabled() {
		t.Error("disabled mode should not be enabled")
	}
}

func TestAuthConfig_EmptyModeDefaultsDisabled(t *testing.T) {
	cfg := AuthConfig{Mode: "", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty mode should default to disabled: %v", err)
	}
	if cfg.Mode != AuthModeDisabled {
		t.Errorf("mode = %q, want %q", cfg.Mode, AuthModeDisabled)
	}
}

func TestAuthConfig_TokenModeValid(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: "mysecret"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("token mode with token should pass: %v", err)
	}
	if !cfg.AuthEnabled() {
		t.Error("token mode should be enabled")
	}
}

func TestAuthConfig_TokenModeEmptyToken(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: ""}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("token mode with empty token should fail")
	}
	if !strings.Contains(err.Error(), "token is empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAuthConfig_InvalidMode(t *testing.T) {
	cfg := AuthConfig{Mode: "magic", Token: "x"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("invalid mode should fail validation")
	}
}

func validConfig() *Config {
	cfg := NewDefaultConfig()
	cfg.Sources = []models.Source{{Path: "~/docs", Scope: models.ScopeGlobal}}
	return cfg
}

func TestConfig_AuthValidationCalled(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.Mode = "token"
	cfg.Auth.Token = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("full config validate should catch auth error")
	}
}

func TestConfig_SourcesRequired(t *testing.T) {
	cfg := NewDefaultConfig()
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, strings.ToLower(err.Error()), "sources")
}

func TestConfig_RejectsBadScope(t *testing.T) {
	cfg := validConfig()
	cfg.Sources = append(cfg.Sources, models.Source{Path: "/x", Scope: "team"})
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sources[1]")
	assert.Contains(t, err.Error(), "scope")
}

func TestConfig_RejectsEmptyViewerProgram(t *testing.T) {
	cfg := validConfig()
	cfg.Viewer = Viewer{"", "-g"}
	assert.Error(t, cfg.Validate())
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestLoadConfig_ViewerForms(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "sources:\n  - path: /d\n    scope: global\nviewer: code -g\n"))
	require.NoError(t, err)
	assert.Equal(t, Viewer{"code", "-g"}, cfg.Viewer)
	assert.Equal(t, 7777, cfg.HTTP.Port)

	cfg, err = LoadConfig(writeConfig(t, "sources:\n  - path: /d\n    scope: project\nviewer: [code, \"%s\"]\n"))
	require.NoError(t, err)
	assert.Equal(t, Viewer{"code", "%s"}, cfg.Viewer)

	cfg, err = LoadConfig(writeConfig(t, "sources:\n  - path: /d\n    scope: global\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{DefaultViewer}, cfg.Viewer.Tokens())
}

func TestLoadConfig_ExpandsEnv(t *testing.T) {
	t.Setenv("CORTEX_TEST_DOCS", "/srv/docs")
	cfg, err := LoadConfig(writeConfig(t, "sources:\n  - path: ${CORTEX_TEST_DOCS}\n    scope: global\n"))
	require.NoError(t, err)
	assert.Equal(t, "/srv/docs", cfg.Sources[0].Path)
}

func TestLoadConfig_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeConfig, apperr.CodeOf(err))
	assert.Equal(t, "Config file not found: "+path, err.Error())
}

func TestLoadConfig_Invalid(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "sources:\n  - path: /d\n    scope: nowhere\n"))
	require.Error(t, err)
	assert.Equal(t, apperr.CodeConfig, apperr.CodeOf(err))
	assert.True(t, strings.HasPrefix(err.Error(), "Invalid config: "), err.Error())
	assert.Equal(t, apperr.ExitConfig, apperr.ExitCode(err))
}

func TestResolveConfigPath(t *testing.T) {
	t.Setenv(EnvRoot, "")
	assert.Equal(t, "/etc/c.yaml", ResolveConfigPath("/etc/c.yaml"))
	assert.Equal(t, filepath.Join(ConfigDir(), ConfigFileName), ResolveConfigPath(""))

	t.Setenv(EnvRoot, "/opt/cortex")
	assert.Equal(t, "/opt/cortex/config.yaml", ResolveConfigPath(""))
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/u")
	for in, want := range map[string]string{
		"~":       "/home/u",
		"~/docs":  "/home/u/docs",
		"/abs":    "/abs",
		"rel/~/x": "rel/~/x",
		"~user/x": "~user/x",
	} {
		got, err := ExpandHome(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
}

func TestExpandHome_NoHome(t *testing.T) {
	t.Setenv("HOME", "")
	_, err := ExpandHome("~/docs")
	require.Error(t, err)
	assert.Equal(t, apperr.CodeConfig, apperr.CodeOf(err))

	got, err := ExpandHome("/abs")
	require.NoError(t, err)
	assert.Equal(t, "/abs", got)
}

func TestExpandedSources(t *testing.T) {
	t.Setenv("HOME", "/home/u")
	cfg := validConfig()
	got, err := cfg.ExpandedSources()
	require.NoError(t, err)
	assert.Equal(t, []models.Source{{Path: "/home/u/docs", Scope: models.ScopeGlobal}}, got)
	assert.Equal(t, "~/docs", cfg.Sources[0].Path)
}
