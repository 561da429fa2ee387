// Package config handles configuration loading and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// Default values.
const (
	DefaultDataFile = ".rex/tasks.txt"
	DefaultLogLevel = "info"
)

// Config holds the full configuration for rex.
type Config struct {
	// DataFile is the task file. Relative paths resolve against the working
	// directory.
	DataFile string `toml:"data_file"`

	// Logging
	LogLevel string `toml:"log_level"`
	LogFile  string `toml:"log_file"`

	// StrictLoad aborts loading when the task file has corrupt lines instead of
	// skipping them.
	StrictLoad bool `toml:"strict_load"`
}

// Overrides carries values set on the command line. Nil fields were not set.
type Overrides struct {
	DataFile   *string
	LogLevel   *string
	StrictLoad *bool
}

// Options controls where Load looks for configuration files.
type Options struct {
	// WorkDir is searched for rex.toml or .rex.toml. Empty means the current
	// directory.
	WorkDir string
	// UserConfigDir overrides os.UserConfigDir, mainly for tests.
	UserConfigDir string
	// Getenv overrides os.Getenv, mainly for tests.
	Getenv func(string) string
}

// Load builds the configuration from, in increasing priority:
// 1. Defaults
// 2. User config file (<user config dir>/rex/rex.toml)
// 3. Project config file (rex.toml or .rex.toml in the working directory)
// 4. Environment variables (REX_*)
// 5. Command line overrides
func Load(opts Options, overrides Overrides) (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	workDir := opts.WorkDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		workDir = wd
	}

	if path := findUserConfigFile(opts.UserConfigDir); path != "" {
		if err := loadConfigFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", path, err)
		}
	}

	if path := findProjectConfigFile(workDir); path != "" {
		if err := loadConfigFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", path, err)
		}
	}

	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	if err := loadFromEnv(cfg, getenv); err != nil {
		return nil, err
	}

	applyOverrides(cfg, overrides)

	if err := finalizeConfig(cfg, workDir); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(cfg *Config) {
	cfg.DataFile = DefaultDataFile
	cfg.LogLevel = DefaultLogLevel
}

// loadConfigFile decodes TOML from path over cfg. Keys missing from the file
// keep their current values; unknown keys are rejected.
func loadConfigFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func findUserConfigFile(dir string) string {
	if dir == "" {
		d, err := os.UserConfigDir()
		if err != nil {
			return ""
		}
		dir = d
	}
	path := filepath.Join(dir, "rex", "rex.toml")
	if fileExists(path) {
		return path
	}
	return ""
}

func findProjectConfigFile(workDir string) string {
	for _, name := range []string{"rex.toml", ".rex.toml"} {
		path := filepath.Join(workDir, name)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

func loadFromEnv(cfg *Config, getenv func(string) string) error {
	if v := getenv("REX_DATA_FILE"); v != "" {
		cfg.DataFile = v
	}
	if v := getenv("REX_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := getenv("REX_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := getenv("REX_STRICT_LOAD"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("REX_STRICT_LOAD: %w", err)
		}
		cfg.StrictLoad = b
	}
	return nil
}

func applyOverrides(cfg *Config, o Overrides) {
	if o.DataFile != nil {
		cfg.DataFile = *o.DataFile
	}
	if o.LogLevel != nil {
		cfg.LogLevel = *o.LogLevel
	}
	if o.StrictLoad != nil {
		cfg.StrictLoad = *o.StrictLoad
	}
}

// finalizeConfig expands and absolutizes paths and validates values.
func finalizeConfig(cfg *Config, workDir string) error {
	if strings.TrimSpace(cfg.DataFile) == "" {
		return errors.New("data_file cannot be empty")
	}
	if _, err := log.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}

	cfg.DataFile = absPath(expandPath(cfg.DataFile), workDir)
	if cfg.LogFile != "" {
		cfg.LogFile = absPath(expandPath(cfg.LogFile), workDir)
	}
	return nil
}

func absPath(p, workDir string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(workDir, p)
}

// expandPath expands a leading ~ and environment variables.
func expandPath(p string) string {
	expanded := os.ExpandEnv(p)
	if expanded == "~" || strings.HasPrefix(expanded, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return expanded
		}
		return filepath.Join(home, strings.TrimPrefix(expanded, "~"))
	}
	return expanded
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
