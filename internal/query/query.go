// Package query filters, searches, sorts, and projects an already-built
// document list. Every function is pure: inputs are never modified.
package query

import (
	"cmp"
	"slices"
	"strings"

	"github.com/nathanvale/cortex/internal/models"
)

// DefaultLimit caps search results when no limit is given.
const DefaultLimit = 20

// Filters selects documents by exact, case-insensitive field values. Empty
// fields are not applied. Tags match when a document has any of them.
type Filters struct {
	Type    string   `json:"type,omitempty"`
	Status  string   `json:"status,omitempty"`
	Project string   `json:"project,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

// Filter returns the documents that pass every active predicate.
func Filter(docs []models.Document, f Filters) []models.Document {
	wantTags := make([]string, 0, len(f.Tags))
	for _, t := range f.Tags {
		if t = strings.TrimSpace(t); t != "" {
			wantTags = append(wantTags, strings.ToLower(t))
		}
	}

	out := make([]models.Document, 0, len(docs))
	for _, d := range docs {
		fm := d.Frontmatter
		if !fieldEquals(fm.Type, f.Type) || !fieldEquals(fm.Status, f.Status) || !fieldEquals(fm.Project, f.Project) {
			continue
		}
		if len(wantTags) > 0 && !hasAnyTag(fm.Tags, wantTags) {
			continue
		}
		out = append(out, d)
	}
	return out
}

func fieldEquals(v *string, want string) bool {
	if want == "" {
		return true
	}
	return v != nil && strings.EqualFold(*v, want)
}

func hasAnyTag(tags, want []string) bool {
	for _, t := range tags {
		if slices.Contains(want, strings.ToLower(t)) {
			return true
		}
	}
	return false
}

// Search returns the documents whose title, type, project, any tag, body, or
// stem contains q, ignoring case.
func Search(docs []models.Document, q string) []models.Document {
	q = strings.ToLower(q)
	out := make([]models.Document, 0)
	for _, d := range docs {
		if matches(d, q) {
			out = append(out, d)
		}
	}
	return out
}

func matches(d models.Document, q string) bool {
	fm := d.Frontmatter
	for _, p := range []*string{fm.Title, fm.Type, fm.Project} {
		if p != nil && contains(*p, q) {
			return true
		}
	}
	for _, t := range fm.Tags {
		if contains(t, q) {
			return true
		}
	}
	return contains(d.Body, q) || contains(d.Stem, q)
}

func contains(s, lowerQ string) bool {
	return strings.Contains(strings.ToLower(s), lowerQ)
}

// Sort returns a copy ordered by created date, newest first, then by path.
// Documents without a created date sort last. Dates compare as plain strings,
// which is correct because the parser normalizes them to YYYY-MM-DD.
func Sort(docs []models.Document) []models.Document {
	out := slices.Clone(docs)
	slices.SortStableFunc(out, func(a, b models.Document) int {
		if c := cmp.Compare(models.Str(b.Frontmatter.Created), models.Str(a.Frontmatter.Created)); c != 0 {
			return c
		}
		return cmp.Compare(a.Path, b.Path)
	})
	return out
}

// Limit returns at most n documents; n <= 0 means DefaultLimit.
func Limit(docs []models.Document, n int) []models.Document {
	if n <= 0 {
		n = DefaultLimit
	}
	if len(docs) <= n {
		return docs
	}
	return docs[:n]
}

// Synthetic projection fields resolved from the document itself.
const (
	FieldPath = "path"
	FieldStem = "stem"
	FieldBody = "body"
)

// Project maps each document to only the requested fields. path, stem, and
// body come from the document; every other name is looked up in the
// frontmatter. Names that resolve to nothing are omitted.
func Project(docs []models.Document, fields []string) []map[string]any {
	out := make([]map[string]any, 0, len(docs))
	for _, d := range docs {
		row := make(map[string]any, len(fields))
		for _, name := range fields {
			switch name {
			case FieldPath:
				row[name] = d.Path
			case FieldStem:
				row[name] = d.Stem
			case FieldBody:
				row[name] = d.Body
			default:
				if v, ok := d.Frontmatter.Get(name); ok {
					row[name] = v
				}
			}
		}
		out = append(out, row)
	}
	return out
}
