// Package logging builds the leveled console logger used across rex.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Options holds configuration for a logger.
type Options struct {
	Level           string
	ReportTimestamp bool
	Prefix          string
}

// DefaultOptions returns the options used for terminal output.
func DefaultOptions() Options {
	return Options{
		Level:  "info",
		Prefix: "rex",
	}
}

// New returns a text logger writing to w.
func New(w io.Writer, opts Options) (*log.Logger, error) {
	level, err := log.ParseLevel(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       log.TextFormatter,
		ReportTimestamp: opts.ReportTimestamp,
		Prefix:          opts.Prefix,
	}), nil
}

// OpenFile returns a logger appending logfmt lines to path together with the
// file to close. An empty path yields a logger that discards everything.
func OpenFile(path string, opts Options) (*log.Logger, io.Closer, error) {
	if path == "" {
		logger, err := New(io.Discard, opts)
		return logger, nopCloser{}, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	opts.ReportTimestamp = true
	logger, err := New(f, opts)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	logger.SetFormatter(log.LogfmtFormatter)
	return logger, f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
