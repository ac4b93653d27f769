package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/nathanvale/cortex/internal/apperr"
	"github.com/nathanvale/cortex/internal/models"
	pkgconfig "github.com/nathanvale/cortex/pkg/config"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// AppName names the per-user config directory.
const AppName = "cortex"

// Config file name and environment overrides.
const (
	ConfigFileName = "config.yaml"
	EnvConfig      = "CORTEX_CONFIG"
	EnvRoot        = "CORTEX_ROOT"
)

// Config represents the application configuration.
type Config struct {
	Sources []models.Source `yaml:"sources"`
	Viewer  Viewer          `yaml:"viewer"`
	HTTP    HTTPConfig      `yaml:"http"`
	Auth    AuthConfig      `yaml:"auth"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Sources, validation.Required),
		validation.Field(&c.Viewer),
	); err != nil {
		return err
	}
	for i := range c.Sources {
		if err := validateSource(&c.Sources[i]); err != nil {
			return fmt.Errorf("sources[%d]: %w", i, err)
		}
	}
	if err := c.HTTP.Validate(); err != nil {
		return err
	}
	return c.Auth.Validate()
}

func validateSource(s *models.Source) error {
	return validation.ValidateStruct(s,
		validation.Field(&s.Path, validation.Required),
		validation.Field(&s.Scope, validation.Required, validation.In(models.ScopeGlobal, models.ScopeProject)),
	)
}

// ExpandedSources returns the sources with ~ expanded in every path.
func (c *Config) ExpandedSources() ([]models.Source, error) {
	out := make([]models.Source, 0, len(c.Sources))
	for _, s := range c.Sources {
		p, err := ExpandHome(s.Path)
		if err != nil {
			return nil, err
		}
		out = append(out, models.Source{Path: p, Scope: s.Scope})
	}
	return out, nil
}

// Viewer is the external program used by `open`. In YAML it is either a
// single string, split on spaces, or a list of tokens. A token containing %s
// receives the document path; otherwise the path is appended.
type Viewer []string

// DefaultViewer is used when no viewer is configured.
const DefaultViewer = "open"

// UnmarshalYAML accepts a scalar or a sequence.
func (v *Viewer) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		*v = strings.Split(s, " ")
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*v = list
		return nil
	default:
		return fmt.Errorf("viewer: must be a string or a list of strings")
	}
}

// Validate rejects an explicitly configured viewer with an empty program.
func (v Viewer) Validate() error {
	if len(v) > 0 && strings.TrimSpace(v[0]) == "" {
		return errors.New("program must not be empty")
	}
	return nil
}

// Tokens returns the configured tokens, or the default viewer.
func (v Viewer) Tokens() []string {
	if len(v) == 0 {
		return []string{DefaultViewer}
	}
	return v
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// AuthConfig holds authentication configuration for the HTTP API.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local use.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// NewDefaultConfig returns a new Config with sensible default values. Sources
// are left empty; a config file must name at least one.
func NewDefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Port: 7777,
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}

// ConfigDir is the per-user cortex config directory.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// ResolveConfigPath picks the config file: an explicit path (flag or
// CORTEX_CONFIG), then $CORTEX_ROOT/config.yaml, then the XDG config dir.
func ResolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if root := os.Getenv(EnvRoot); root != "" {
		return filepath.Join(root, ConfigFileName)
	}
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// LoadConfig reads and validates the config file at path on top of the
// defaults. Failures are E_CONFIG errors.
func LoadConfig(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	if err := pkgconfig.Load(path, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.Config("Config file not found: "+path, err)
		}
		return nil, apperr.Config("Invalid config: "+strings.TrimPrefix(err.Error(), pkgconfig.ErrInvalid.Error()+": "), err)
	}
	return cfg, nil
}

// ExpandHome expands a leading ~ using $HOME.
func ExpandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home := os.Getenv("HOME")
	if home == "" {
		return "", apperr.Config("Cannot expand ~ in path: HOME environment variable is not set", nil)
	}
	return home + p[1:], nil
}
