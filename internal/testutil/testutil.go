// Package testutil provides shared test helpers for building document trees.
package testutil

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/nathanvale/cortex/internal/models"
)

// WriteFile writes content to rel under root, creating parent directories,
// and returns the absolute path.
func WriteFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		t.Fatal(err)
	}
	return abs
}

// Doc renders a Markdown document with the given raw YAML frontmatter.
func Doc(frontmatter, body string) string {
	return "---\n" + frontmatter + "\n---\n" + body
}

// TestRoot creates a temporary directory with symlinks resolved, so paths
// compare equal to what the scanner reports.
func TestRoot(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return dir
}

// Logger returns a logger that discards everything below ERROR.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// BuildContext returns a fresh build context with a quiet logger.
func BuildContext() *models.BuildContext {
	return models.NewBuildContext(Logger())
}

// BufferLogger returns a logger writing text records at DEBUG to a buffer.
func BufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}
