package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func noEnv(string) string { return "" }

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	workDir := t.TempDir()

	cfg, err := Load(Options{WorkDir: workDir, UserConfigDir: t.TempDir(), Getenv: noEnv}, Overrides{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want := filepath.Join(workDir, DefaultDataFile); cfg.DataFile != want {
		t.Errorf("DataFile: got %q, want %q", cfg.DataFile, want)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel: got %q, want %q", cfg.LogLevel, DefaultLogLevel)
	}
	if cfg.StrictLoad {
		t.Error("StrictLoad should default to false")
	}
	if cfg.LogFile != "" {
		t.Errorf("LogFile should default to empty, got %q", cfg.LogFile)
	}
}

func TestLoad_Precedence(t *testing.T) {
	workDir := t.TempDir()
	userDir := t.TempDir()

	writeFile(t, filepath.Join(userDir, "rex", "rex.toml"), `
data_file = "user.txt"
log_level = "warn"
log_file = "rex.log"
`)
	writeFile(t, filepath.Join(workDir, "rex.toml"), `
data_file = "project.txt"
`)

	cfg, err := Load(Options{WorkDir: workDir, UserConfigDir: userDir, Getenv: noEnv}, Overrides{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DataFile != filepath.Join(workDir, "project.txt") {
		t.Errorf("project file should override user file, got %q", cfg.DataFile)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("user file value should survive, got %q", cfg.LogLevel)
	}
	if cfg.LogFile != filepath.Join(workDir, "rex.log") {
		t.Errorf("LogFile: got %q", cfg.LogFile)
	}

	env := envMap(map[string]string{"REX_DATA_FILE": "env.txt", "REX_STRICT_LOAD": "true"})
	cfg, err = Load(Options{WorkDir: workDir, UserConfigDir: userDir, Getenv: env}, Overrides{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DataFile != filepath.Join(workDir, "env.txt") {
		t.Errorf("env should override files, got %q", cfg.DataFile)
	}
	if !cfg.StrictLoad {
		t.Error("REX_STRICT_LOAD=true should enable strict load")
	}

	flagPath := "/tmp/flag.txt"
	strict := false
	level := "debug"
	cfg, err = Load(Options{WorkDir: workDir, UserConfigDir: userDir, Getenv: env},
		Overrides{DataFile: &flagPath, StrictLoad: &strict, LogLevel: &level})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DataFile != flagPath {
		t.Errorf("flag should override env, got %q", cfg.DataFile)
	}
	if cfg.StrictLoad {
		t.Error("flag should override env for strict load")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %q", cfg.LogLevel)
	}
}

func TestLoad_HiddenProjectFile(t *testing.T) {
	workDir := t.TempDir()
	writeFile(t, filepath.Join(workDir, ".rex.toml"), `strict_load = true`)

	cfg, err := Load(Options{WorkDir: workDir, UserConfigDir: t.TempDir(), Getenv: noEnv}, Overrides{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.StrictLoad {
		t.Error("expected .rex.toml to be read")
	}
}

func TestLoad_UnknownKey(t *testing.T) {
	workDir := t.TempDir()
	writeFile(t, filepath.Join(workDir, "rex.toml"), `data_fle = "typo.txt"`)

	_, err := Load(Options{WorkDir: workDir, UserConfigDir: t.TempDir(), Getenv: noEnv}, Overrides{})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "unknown keys: data_fle") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"bad level", map[string]string{"REX_LOG_LEVEL": "loud"}, "log_level"},
		{"bad strict", map[string]string{"REX_STRICT_LOAD": "maybe"}, "REX_STRICT_LOAD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(Options{WorkDir: t.TempDir(), UserConfigDir: t.TempDir(), Getenv: envMap(tt.env)}, Overrides{})
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error to mention %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoad_EmptyDataFileOverride(t *testing.T) {
	empty := ""
	_, err := Load(Options{WorkDir: t.TempDir(), UserConfigDir: t.TempDir(), Getenv: noEnv}, Overrides{DataFile: &empty})
	if err == nil {
		t.Fatal("expected error for empty data file")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	if got := expandPath("~/tasks.txt"); got != filepath.Join(home, "tasks.txt") {
		t.Errorf("got %q", got)
	}
	if got := expandPath("relative/tasks.txt"); got != "relative/tasks.txt" {
		t.Errorf("got %q", got)
	}
}
