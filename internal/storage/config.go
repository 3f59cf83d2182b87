package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the optional config.yaml in the data directory.
// Zero values mean "not set".
type Config struct {
	BaseURL string        `yaml:"base_url,omitempty"`
	Limit   int           `yaml:"limit,omitempty"`
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// ConfigStore manages the config file.
type ConfigStore struct {
	baseDir string // data directory
}

// NewConfigStore creates a new config store.
func NewConfigStore(baseDir string) *ConfigStore {
	return &ConfigStore{baseDir: baseDir}
}

// Path returns the path to config.yaml.
func (s *ConfigStore) Path() string {
	return filepath.Join(s.baseDir, ConfigFile)
}

// Exists returns true if the config file exists.
func (s *ConfigStore) Exists() bool {
	_, err := os.Stat(s.Path())
	return err == nil
}

// Read reads the config file. A missing file yields an empty Config.
func (s *ConfigStore) Read() (*Config, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", s.Path(), err)
	}
	if cfg.Limit < 0 {
		return nil, fmt.Errorf("invalid limit %d in %s", cfg.Limit, s.Path())
	}

	return &cfg, nil
}

// Write writes the config file atomically via a temp file.
func (s *ConfigStore) Write(cfg *Config) error {
	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	tmpFile, err := os.CreateTemp(s.baseDir, "config-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write config: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.Path()); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}
