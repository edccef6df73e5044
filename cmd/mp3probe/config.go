package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// config controls which files mp3probe scans and how chatty it is.
type config struct {
	// Dirs are the directories to scan.
	Dirs []string `yaml:"dirs"`

	// Recursive descends into subdirectories.
	Recursive bool `yaml:"recursive"`

	// Extensions are the file extensions to probe, matched
	// case-insensitively.
	Extensions []string `yaml:"extensions"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

func defaultConfig() config {
	return config{
		Dirs:       []string{"."},
		Extensions: []string{".mp3"},
		LogLevel:   "info",
	}
}

// loadConfig reads a YAML config file, applying defaults for absent keys.
func loadConfig(path string) (config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if len(cfg.Dirs) == 0 {
		cfg.Dirs = []string{"."}
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = []string{".mp3"}
	}
	for i, ext := range cfg.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		cfg.Extensions[i] = ext
	}

	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return config{}, err
	}
	return cfg, nil
}

// parseLevel maps a config log level to its slog equivalent.
func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", level)
	}
}

// matchesExtension reports whether path ends in one of the configured
// extensions, ignoring case.
func (c config) matchesExtension(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range c.Extensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
