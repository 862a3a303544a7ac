// Package config loads the YAML configuration from ~/.pls/config.yaml
// (overridable via PLS_CONFIG), writing built-in defaults on first run.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/pls-go/internal/domain"
	"github.com/doeshing/pls-go/internal/pkg/filesystem"
)

// FileLoader resolves and reads the config file.
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader. An empty path means the default
// location.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load reads the config, creating it with defaults when missing. The file is
// decoded over the built-in defaults, so a hand-trimmed config keeps the
// default for every field (including booleans) it does not mention.
func (l *FileLoader) Load() (domain.Config, error) {
	path := l.resolvePath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := domain.DefaultConfig()
			if err := writeConfig(path, cfg); err != nil {
				return domain.Config{}, err
			}
			return cfg, nil
		}
		return domain.Config{}, err
	}

	cfg := domain.DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

// Path returns the resolved config file location.
func (l *FileLoader) Path() string {
	return l.resolvePath()
}

// EnsureExists writes the default config if the file is missing, returning
// the path. Used by the config-editing command.
func (l *FileLoader) EnsureExists() (string, error) {
	path := l.resolvePath()
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	return path, writeConfig(path, domain.DefaultConfig())
}

func (l *FileLoader) resolvePath() string {
	if l.overridePath != "" {
		return expandPath(l.overridePath)
	}
	if custom := os.Getenv("PLS_CONFIG"); custom != "" {
		return expandPath(custom)
	}
	return filesystem.ConfigPath()
}

func writeConfig(path string, cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o600)
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(filesystem.UserHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}
