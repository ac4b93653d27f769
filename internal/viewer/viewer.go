// Package viewer opens a document in an external program.
package viewer

import (
	"context"
	"io"
	"os"
	"os/exec"
	"slices"
	"strings"

	"github.com/nathanvale/cortex/internal/apperr"
)

// Default is the program used when none is configured.
const Default = "open"

// Placeholder marks where the document path goes.
const Placeholder = "%s"

// Command builds the program and arguments that open path. If any token
// contains the placeholder, the first placeholder in each argument is
// replaced by path; otherwise path is appended.
func Command(tokens []string, path string) (string, []string) {
	if len(tokens) == 0 || tokens[0] == "" {
		tokens = []string{Default}
	}
	name, rest := tokens[0], tokens[1:]

	hasPlaceholder := slices.ContainsFunc(tokens, func(t string) bool {
		return strings.Contains(t, Placeholder)
	})
	args := make([]string, 0, len(rest)+1)
	for _, t := range rest {
		if hasPlaceholder {
			t = strings.Replace(t, Placeholder, path, 1)
		}
		args = append(args, t)
	}
	if !hasPlaceholder {
		args = append(args, path)
	}
	return name, args
}

// Open runs the viewer for path and waits for it to exit. Stdin is inherited.
func Open(ctx context.Context, tokens []string, path string, stdout, stderr io.Writer) error {
	name, args := Command(tokens, path)
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if err := cmd.Run(); err != nil {
		return apperr.Runtime("Failed to open "+path, err)
	}
	return nil
}
