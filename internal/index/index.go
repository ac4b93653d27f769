// Package index builds the in-memory document index from configured sources.
package index

import (
	"fmt"
	"log/slog"

	"github.com/nathanvale/cortex/internal/models"
	"github.com/nathanvale/cortex/internal/parser"
	"github.com/nathanvale/cortex/internal/storage"
)

// Result is one build's documents, warnings, and counters.
type Result struct {
	Docs     []models.Document
	Warnings []string
	Health   models.IndexHealth
}

// Build resolves, scans, and parses every source in order. A file reachable
// through several sources is indexed once, for the first source that reaches
// it. Per-file and per-directory failures become warnings; Build itself never
// fails.
//
// Source paths must already be home-expanded.
func Build(sources []models.Source, logger *slog.Logger) Result {
	if logger == nil {
		logger = slog.Default()
	}
	bc := models.NewBuildContext(logger.With(slog.String("component", "index")))
	bc.Health.Sources = len(sources)

	var docs []models.Document
	seen := make(map[string]struct{})

	for _, src := range sources {
		dirs := storage.ResolveSource(src.Path, bc)
		bc.Health.DirsResolved += len(dirs)

		for _, dir := range dirs {
			bc.Logger.Debug("scanning",
				slog.String("dir", dir),
				slog.String("scope", src.Scope))

			files := storage.Scan(dir, bc)
			bc.Health.FilesScanned += len(files)

			for _, f := range files {
				if _, ok := seen[f]; ok {
					continue
				}
				seen[f] = struct{}{}

				if doc := parser.ParseFile(f, bc); doc != nil {
					docs = append(docs, *doc)
					bc.Health.DocsParsed++
				}
			}
		}
	}

	h := bc.Health
	switch {
	case h.DirsResolved == 0:
		bc.Warn(fmt.Sprintf("No directories resolved from %d source(s) -- check config.yaml paths", h.Sources),
			slog.Int("sources", h.Sources))
	case h.FilesScanned == 0:
		bc.Warn(fmt.Sprintf("Scanned %d dir(s) but found no .md files -- are sources correct?", h.DirsResolved),
			slog.Int("dirs", h.DirsResolved))
	case h.DocsParsed == 0:
		bc.Warn(fmt.Sprintf("Found %d .md file(s) but none had valid frontmatter", h.FilesScanned),
			slog.Int("files", h.FilesScanned))
	}

	bc.Logger.Debug("index built",
		slog.Int("sources", h.Sources),
		slog.Int("dirs", h.DirsResolved),
		slog.Int("files", h.FilesScanned),
		slog.Int("docs", h.DocsParsed))

	return Result{
		Docs:     docs,
		Warnings: bc.Warnings,
		Health:   h,
	}
}
