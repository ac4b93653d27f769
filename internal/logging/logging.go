// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
)

// EnvFormat overrides format detection when set to "text" or "json".
const EnvFormat = "LOG_FORMAT"

// Options control level and format selection.
type Options struct {
	Debug bool
	Quiet bool
	JSON  bool
	// Writer receives log lines. Defaults to os.Stderr.
	Writer io.Writer
}

// Level returns WARN, or DEBUG with Debug, or ERROR with Quiet. Quiet wins.
func (o Options) Level() slog.Level {
	switch {
	case o.Quiet:
		return slog.LevelError
	case o.Debug:
		return slog.LevelDebug
	default:
		return slog.LevelWarn
	}
}

// UseJSON reports whether log lines should be JSON: LOG_FORMAT first, then the
// --json flag, then JSON whenever the writer is not a terminal.
func (o Options) UseJSON() bool {
	switch strings.ToLower(os.Getenv(EnvFormat)) {
	case "text":
		return false
	case "json":
		return true
	}
	if o.JSON {
		return true
	}
	return !IsTerminal(o.writer())
}

func (o Options) writer() io.Writer {
	if o.Writer == nil {
		return os.Stderr
	}
	return o.Writer
}

// New builds a logger for opts without installing it.
func New(opts Options) *slog.Logger {
	w := opts.writer()
	level := opts.Level()
	if opts.UseJSON() {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	}
	return slog.New(charmlog.NewWithOptions(w, charmlog.Options{
		Level:           charmlog.Level(level),
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "cortex",
	}))
}

// Setup builds a logger for opts and installs it as the slog default.
func Setup(opts Options) *slog.Logger {
	logger := New(opts)
	slog.SetDefault(logger)
	return logger
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
