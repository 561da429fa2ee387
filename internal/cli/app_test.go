package cli

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/pablasso/rex/internal/config"
	"github.com/pablasso/rex/internal/logging"
)

func TestOpenApp_Notice(t *testing.T) {
	path := dataPath(t)
	if err := os.WriteFile(path, []byte("T | 0 | read book\nT | 7 | broken\n"), 0644); err != nil {
		t.Fatalf("failed to seed tasks: %v", err)
	}
	l, err := logging.New(io.Discard, logging.DefaultOptions())
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	a, err := openApp(&config.Config{DataFile: path}, l)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer a.Close()

	if a.list.Size() != 1 {
		t.Errorf("expected 1 task, got %d", a.list.Size())
	}
	notice := a.notice()
	if !strings.Contains(notice, "skipped 1 unreadable line(s)") {
		t.Errorf("unexpected notice: %q", notice)
	}
	if !strings.Contains(notice, path+".bak") {
		t.Errorf("notice should name the backup, got %q", notice)
	}
}

func TestOpenApp_CleanFileHasNoNotice(t *testing.T) {
	path := dataPath(t)
	if err := os.WriteFile(path, []byte("T | 0 | read book\n"), 0644); err != nil {
		t.Fatalf("failed to seed tasks: %v", err)
	}
	l, err := logging.New(io.Discard, logging.DefaultOptions())
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	a, err := openApp(&config.Config{DataFile: path}, l)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer a.Close()

	if a.notice() != "" {
		t.Errorf("expected no notice, got %q", a.notice())
	}
	if _, err := os.Stat(path + ".bak"); !os.IsNotExist(err) {
		t.Error("a clean file should not be backed up")
	}
}
