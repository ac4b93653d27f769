// Package storage resolves configured source paths into directories and
// lists the Markdown files beneath them.
package storage

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/nathanvale/cortex/internal/models"
)

// IgnoreDirs are directory names whose whole subtree is never scanned,
// wherever they appear below a source root.
var IgnoreDirs = map[string]struct{}{
	".git":           {},
	".obsidian":      {},
	"node_modules":   {},
	".claude":        {},
	".claude-plugin": {},
	"dist":           {},
	"build":          {},
	"coverage":       {},
}

// IsIgnored reports whether a directory name is in IgnoreDirs.
func IsIgnored(name string) bool {
	_, ok := IgnoreDirs[name]
	return ok
}

// ResolveSource expands one home-expanded source path into absolute
// directories.
//
// A path without '*' is returned as its absolute, cleaned form; existence is
// left to Scan. Otherwise the first path segment containing '*' is matched
// against the entries of the directory before it, and the remainder of the
// path is appended to every match. Only matches that then name an existing
// directory are kept. Wildcards in later segments are not expanded.
func ResolveSource(path string, bc *models.BuildContext) []string {
	if !strings.Contains(path, "*") {
		abs, err := filepath.Abs(path)
		if err != nil {
			return []string{filepath.Clean(path)}
		}
		return []string{abs}
	}

	parts := strings.Split(path, "/")
	idx := -1
	for i, p := range parts {
		if strings.Contains(p, "*") {
			idx = i
			break
		}
	}

	pattern := parts[idx]
	prefix := strings.Join(parts[:idx], "/")
	suffix := strings.Join(parts[idx+1:], "/")
	if prefix == "" {
		prefix = "."
		if strings.HasPrefix(path, "/") {
			prefix = "/"
		}
	}

	base, err := filepath.Abs(prefix)
	if err != nil {
		bc.Warn(fmt.Sprintf("Failed to scan glob pattern %s: %v", path, err), slog.String("pattern", path))
		return nil
	}

	entries, err := os.ReadDir(base)
	if err != nil {
		bc.Warn(fmt.Sprintf("Failed to scan glob pattern %s: %v", path, err), slog.String("pattern", path))
		return nil
	}

	var out []string
	for _, e := range entries {
		name := e.Name()
		// Dot entries only match patterns that ask for them, as in a shell.
		if strings.HasPrefix(name, ".") && !strings.HasPrefix(pattern, ".") {
			continue
		}
		ok, err := filepath.Match(pattern, name)
		if err != nil {
			bc.Warn(fmt.Sprintf("Failed to scan glob pattern %s: %v", path, err), slog.String("pattern", path))
			return nil
		}
		if !ok {
			continue
		}
		full := filepath.Join(base, name, suffix)
		info, err := os.Stat(full)
		if err != nil || !info.IsDir() {
			bc.Logger.Debug("skipping non-existent path", slog.String("path", full))
			continue
		}
		out = append(out, full)
	}
	return out
}

// Scan walks dir and returns the absolute path of every *.md file beneath it.
// Ignored directories are pruned with their entire subtree. A failure on dir
// itself is reported as a warning and yields no files.
func Scan(dir string, bc *models.BuildContext) []string {
	info, err := os.Stat(dir)
	if err != nil {
		bc.Warn(fmt.Sprintf("Cannot scan directory %s: %v", dir, err), slog.String("dir", dir))
		return nil
	}
	if !info.IsDir() {
		bc.Warn(fmt.Sprintf("Cannot scan directory %s: not a directory", dir), slog.String("dir", dir))
		return nil
	}

	// WalkDir does not descend through a symlinked root, so walk the target
	// and report paths under dir.
	root, err := filepath.EvalSymlinks(dir)
	if err != nil {
		bc.Warn(fmt.Sprintf("Cannot scan directory %s: %v", dir, err), slog.String("dir", dir))
		return nil
	}

	var files []string
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if p == root {
				return walkErr
			}
			bc.Logger.Debug("scan: skipping unreadable path",
				slog.String("path", p),
				slog.String("error", walkErr.Error()))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if p != root && IsIgnored(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), ".md") {
			rel, relErr := filepath.Rel(root, p)
			if relErr != nil {
				return nil
			}
			files = append(files, filepath.Join(dir, rel))
		}
		return nil
	})
	if err != nil {
		bc.Warn(fmt.Sprintf("Cannot scan directory %s: %v", dir, err), slog.String("dir", dir))
		return nil
	}
	return files
}
