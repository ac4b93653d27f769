// Package models defines the domain types for Cortex.
package models

import (
	"encoding/json"
	"log/slog"
)

// Source scopes.
const (
	ScopeGlobal  = "global"
	ScopeProject = "project"
)

// Source is one configured root. Scope is validated but has no effect on
// indexing or querying.
type Source struct {
	Path  string `yaml:"path" json:"path"`
	Scope string `yaml:"scope" json:"scope"`
}

// Recognized frontmatter keys.
const (
	FieldTitle   = "title"
	FieldType    = "type"
	FieldProject = "project"
	FieldStatus  = "status"
	FieldTags    = "tags"
	FieldCreated = "created"
	FieldUpdated = "updated"
)

// Frontmatter holds the recognized keys of a document's YAML block plus every
// other key as passthrough data. A nil pointer (or nil Tags) means the key was
// absent.
type Frontmatter struct {
	Title   *string
	Type    *string
	Project *string
	Status  *string
	Tags    []string
	Created *string
	Updated *string

	// Extra holds unrecognized keys verbatim.
	Extra map[string]any
}

// Get looks up a frontmatter key, recognized or passthrough.
func (f Frontmatter) Get(name string) (any, bool) {
	switch name {
	case FieldTitle:
		return deref(f.Title)
	case FieldType:
		return deref(f.Type)
	case FieldProject:
		return deref(f.Project)
	case FieldStatus:
		return deref(f.Status)
	case FieldCreated:
		return deref(f.Created)
	case FieldUpdated:
		return deref(f.Updated)
	case FieldTags:
		if f.Tags == nil {
			return nil, false
		}
		return f.Tags, true
	}
	v, ok := f.Extra[name]
	return v, ok
}

// Map merges recognized and passthrough keys into a single mapping.
func (f Frontmatter) Map() map[string]any {
	out := make(map[string]any, len(f.Extra)+7)
	for k, v := range f.Extra {
		out[k] = v
	}
	for _, name := range []string{FieldTitle, FieldType, FieldProject, FieldStatus, FieldTags, FieldCreated, FieldUpdated} {
		if v, ok := f.Get(name); ok {
			out[name] = v
		}
	}
	return out
}

// MarshalJSON encodes the merged mapping.
func (f Frontmatter) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Map())
}

// Str returns the value of an optional string field, or "" when absent.
func Str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func deref(p *string) (any, bool) {
	if p == nil {
		return nil, false
	}
	return *p, true
}

// Document is a parsed Markdown file. Identity is the absolute Path.
type Document struct {
	Frontmatter Frontmatter `json:"frontmatter"`
	Body        string      `json:"body"`
	Path        string      `json:"path"`
	Stem        string      `json:"stem"`
}

// IndexHealth counts what one build saw, for diagnostics only.
type IndexHealth struct {
	Sources      int `json:"sources"`
	DirsResolved int `json:"dirs_resolved"`
	FilesScanned int `json:"files_scanned"`
	DocsParsed   int `json:"docs_parsed"`
}

// BuildContext carries the mutable state of a single index build: counters,
// accumulated warnings, and the logger. It is created per build and discarded
// with it.
type BuildContext struct {
	Health   IndexHealth
	Warnings []string
	Logger   *slog.Logger
}

// NewBuildContext returns an empty context. A nil logger falls back to
// slog.Default().
func NewBuildContext(logger *slog.Logger) *BuildContext {
	if logger == nil {
		logger = slog.Default()
	}
	return &BuildContext{Logger: logger}
}

// Warn records msg as a build warning and logs it with the given attributes.
func (bc *BuildContext) Warn(msg string, args ...any) {
	bc.Warnings = append(bc.Warnings, msg)
	bc.Logger.Warn(msg, args...)
}
