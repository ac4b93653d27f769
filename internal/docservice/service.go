// Package docservice answers list, search, and lookup requests. Every call
// rebuilds the index from disk; nothing is cached between calls.
package docservice

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nathanvale/cortex/internal/apperr"
	"github.com/nathanvale/cortex/internal/index"
	"github.com/nathanvale/cortex/internal/models"
	"github.com/nathanvale/cortex/internal/query"
)

// MaxSuggestions caps the "did you mean" list of a failed lookup.
const MaxSuggestions = 5

// Page is the result of one call.
type Page struct {
	Docs []models.Document
	// Total counts every match before limiting.
	Total    int
	Warnings []string
}

// Service coordinates index builds and queries.
type Service struct {
	sources []models.Source
	logger  *slog.Logger
}

// NewService creates a service over already home-expanded sources.
func NewService(sources []models.Source, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{sources: sources, logger: logger}
}

func (s *Service) build(ctx context.Context) (index.Result, error) {
	if err := ctx.Err(); err != nil {
		return index.Result{}, fmt.Errorf("docservice: build: %w", err)
	}
	return index.Build(s.sources, s.logger), nil
}

// List returns the documents matching f, newest first.
func (s *Service) List(ctx context.Context, f query.Filters) (Page, error) {
	res, err := s.build(ctx)
	if err != nil {
		return Page{}, err
	}
	docs := query.Sort(query.Filter(res.Docs, f))
	return Page{Docs: docs, Total: len(docs), Warnings: res.Warnings}, nil
}

// Search returns at most limit documents containing q, newest first, and the
// number of matches before limiting.
func (s *Service) Search(ctx context.Context, q string, limit int) (Page, error) {
	if strings.TrimSpace(q) == "" {
		return Page{}, apperr.Usage("Search requires a query.")
	}
	res, err := s.build(ctx)
	if err != nil {
		return Page{}, err
	}
	matches := query.Sort(query.Search(res.Docs, q))
	return Page{Docs: query.Limit(matches, limit), Total: len(matches), Warnings: res.Warnings}, nil
}

// Resolve finds the single document identified by id: an exact
// case-insensitive stem match, else a unique stem substring match.
func (s *Service) Resolve(ctx context.Context, id string) (Page, error) {
	res, err := s.build(ctx)
	if err != nil {
		return Page{}, err
	}
	doc, err := Match(res.Docs, id)
	if err != nil {
		return Page{Warnings: res.Warnings}, err
	}
	return Page{Docs: []models.Document{doc}, Total: 1, Warnings: res.Warnings}, nil
}

// Match applies the lookup rules of Resolve to docs.
func Match(docs []models.Document, id string) (models.Document, error) {
	want := strings.ToLower(id)

	var matches []models.Document
	for _, d := range docs {
		if strings.ToLower(d.Stem) == want {
			matches = append(matches, d)
		}
	}
	if len(matches) == 0 {
		for _, d := range docs {
			if strings.Contains(strings.ToLower(d.Stem), want) {
				matches = append(matches, d)
			}
		}
	}

	switch len(matches) {
	case 0:
		msg := fmt.Sprintf("No document matching %q.", id)
		if sugg := suggest(docs, want); len(sugg) > 0 {
			msg += " Did you mean:\n  - " + strings.Join(sugg, "\n  - ")
		}
		return models.Document{}, apperr.NotFound(msg)
	case 1:
		return matches[0], nil
	default:
		lines := make([]string, len(matches))
		for i, m := range matches {
			lines[i] = fmt.Sprintf("  - %s (%s)", m.Stem, m.Path)
		}
		return models.Document{}, apperr.Ambiguous(fmt.Sprintf("Multiple matches for %q. Be more specific:\n%s", id, strings.Join(lines, "\n")))
	}
}

// suggest returns stems sharing a word longer than two characters with id.
func suggest(docs []models.Document, id string) []string {
	var words []string
	for _, w := range strings.Split(id, "-") {
		if len(w) > 2 {
			words = append(words, w)
		}
	}
	var out []string
	for _, d := range docs {
		if len(out) == MaxSuggestions {
			break
		}
		stem := strings.ToLower(d.Stem)
		for _, w := range words {
			if strings.Contains(stem, w) {
				out = append(out, d.Stem)
				break
			}
		}
	}
	return out
}
