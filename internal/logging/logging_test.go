package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Level = "warn"

	logger, err := New(&buf, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger.Info("hidden")
	logger.Warn("skipped corrupt line", "line", 3)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "skipped corrupt line") || !strings.Contains(out, "line=3") {
		t.Errorf("expected warning with fields, got %q", out)
	}
	if !strings.Contains(out, "rex") {
		t.Errorf("expected prefix in output, got %q", out)
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	opts := DefaultOptions()
	opts.Level = "chatty"

	if _, err := New(&bytes.Buffer{}, opts); err == nil {
		t.Fatal("expected error for invalid level")
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "rex.log")

	logger, closer, err := OpenFile(path, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.Info("tasks saved", "count", 2)
	if err := closer.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	if !strings.Contains(string(data), "count=2") {
		t.Errorf("expected logfmt output, got %q", data)
	}
}

func TestOpenFile_EmptyPathDiscards(t *testing.T) {
	logger, closer, err := OpenFile("", DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.Error("nowhere")
	if err := closer.Close(); err != nil {
		t.Errorf("close failed: %v", err)
	}
}
