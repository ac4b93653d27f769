// Package parser turns Markdown files with YAML frontmatter into documents.
package parser

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"

	"github.com/nathanvale/cortex/internal/models"
)

// MaxFileBytes is the largest file ParseFile will read (1 MiB).
const MaxFileBytes = 1 << 20

const delim = "---"

// yamlFormat is a ---/--- block decoded with yaml.v3, so nested mappings come
// back as map[string]any.
var yamlFormat = frontmatter.NewFormat(delim, delim, yaml.Unmarshal)

// ParseFile reads the Markdown file at path and returns its document, or nil
// when the file is not a document. Files that are skipped for a reason worth
// knowing about (oversized, unreadable, broken YAML, malformed fields) leave a
// warning on bc; plain Markdown without frontmatter is skipped silently.
func ParseFile(path string, bc *models.BuildContext) *models.Document {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil
	}
	if info.Size() > MaxFileBytes {
		bc.Warn(fmt.Sprintf("Skipping oversized file %s (%d bytes)", path, info.Size()),
			slog.String("path", path), slog.Int64("size", info.Size()))
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		bc.Warn(fmt.Sprintf("Cannot read file %s: %v", path, err), slog.String("path", path))
		return nil
	}

	if !bytes.HasPrefix(data, []byte(delim)) {
		return nil
	}

	raw, body, err := Split(data)
	if err != nil {
		bc.Warn(fmt.Sprintf("Failed to parse frontmatter in %s: %v", path, err), slog.String("path", path))
		return nil
	}

	fm, err := Validate(raw)
	if err != nil {
		bc.Warn(fmt.Sprintf("Malformed frontmatter in %s: %v", path, err),
			slog.String("path", path), slog.String("issues", err.Error()))
		fm = Coerce(raw)
	}

	return &models.Document{
		Frontmatter: fm,
		Body:        body,
		Path:        path,
		Stem:        Stem(path),
	}
}

// Split separates the leading frontmatter block from the Markdown body and
// decodes the block as a YAML mapping. A missing closing delimiter is an
// error; an empty block yields an empty mapping.
func Split(data []byte) (map[string]any, string, error) {
	var raw map[string]any
	body, err := frontmatter.MustParse(bytes.NewReader(data), &raw, yamlFormat)
	if err != nil {
		return nil, "", fmt.Errorf("parser: split frontmatter: %w", err)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	for k, v := range raw {
		raw[k] = normalize(v)
	}
	return raw, string(body), nil
}

// Stem returns the file name without its .md extension.
func Stem(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".md")
}

// normalize converts mappings with non-string keys into map[string]any so
// passthrough values always encode as JSON.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = normalize(e)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[fmt.Sprint(k)] = normalize(e)
		}
		return out
	case []any:
		for i, e := range t {
			t[i] = normalize(e)
		}
		return t
	default:
		return v
	}
}
