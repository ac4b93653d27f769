// Package bootstrap creates the per-user config file and the docs tree.
package bootstrap

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/nathanvale/cortex/internal/apperr"
	"github.com/nathanvale/cortex/internal/models"
)

// Subdirs are created under the docs root.
var Subdirs = []string{"research", "brainstorms", "plans", "decisions", "meetings", "diagrams"}

const header = `# Cortex knowledge system configuration
# Generated by "cortex init". Add more sources as needed, for example:
#   - path: ~/code/*/docs
#     scope: project

`

var safePath = regexp.MustCompile(`^[~/a-zA-Z0-9._\- ]+$`)

// Result describes what Init did.
type Result struct {
	ConfigPath string `json:"config_path"`
	DocsPath   string `json:"docs_path"`
	// Created is false when the config file already existed.
	Created bool     `json:"created"`
	Subdirs []string `json:"subdirs"`
}

type fileConfig struct {
	Sources []models.Source `yaml:"sources"`
	Viewer  string          `yaml:"viewer"`
}

// DefaultConfig renders the config written on first run.
func DefaultConfig(docsPath string) ([]byte, error) {
	body, err := yaml.Marshal(fileConfig{
		Sources: []models.Source{{Path: docsPath, Scope: models.ScopeGlobal}},
		Viewer:  "open",
	})
	if err != nil {
		return nil, fmt.Errorf("bootstrap: render config: %w", err)
	}
	return append([]byte(header), body...), nil
}

// Init creates configPath's directory (0700), writes the default config
// unless one already exists, and creates docsPath with every subdirectory.
// docsPath must be a single line of path-safe characters.
func Init(configPath, docsPath string) (Result, error) {
	if !safePath.MatchString(docsPath) {
		return Result{}, apperr.Usage(fmt.Sprintf("Invalid docs path %q: use letters, digits, '.', '-', '_', spaces and '/'", docsPath))
	}
	docsPath = filepath.Clean(docsPath)
	res := Result{ConfigPath: configPath, DocsPath: docsPath, Subdirs: Subdirs}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o700); err != nil {
		return res, apperr.Runtime("Cannot create config directory", fmt.Errorf("bootstrap: mkdir: %w", err))
	}

	content, err := DefaultConfig(docsPath)
	if err != nil {
		return res, apperr.Runtime("Cannot render default config", err)
	}
	created, err := writeExclusive(configPath, content)
	if err != nil {
		return res, apperr.Runtime("Cannot write "+configPath, err)
	}
	res.Created = created

	for _, sub := range Subdirs {
		if err := os.MkdirAll(filepath.Join(docsPath, sub), 0o700); err != nil {
			return res, apperr.Runtime("Cannot create docs directory", fmt.Errorf("bootstrap: mkdir: %w", err))
		}
	}
	return res, nil
}

// writeExclusive creates path with content; an existing file is left alone.
func writeExclusive(path string, content []byte) (bool, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if errors.Is(err, fs.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("bootstrap: create config: %w", err)
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		return false, fmt.Errorf("bootstrap: write config: %w", err)
	}
	if err := f.Close(); err != nil {
		return false, fmt.Errorf("bootstrap: close config: %w", err)
	}
	return true, nil
}
