package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for invidx.
type Config struct {
	Index    IndexConfig    `yaml:"index"`
	Database DatabaseConfig `yaml:"database"`
	Session  SessionConfig  `yaml:"session"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// IndexConfig holds ingestion configuration.
type IndexConfig struct {
	Extension        string   `yaml:"extension"`
	MaxWordLen       int      `yaml:"max_word_len"`
	MaxDocumentIDLen int      `yaml:"max_document_id_len"`
	Includes         []string `yaml:"includes"` // applied when a directory is passed to create
	Excludes         []string `yaml:"excludes"`
}

// DatabaseConfig holds persisted index configuration.
type DatabaseConfig struct {
	Path          string `yaml:"path"`
	MaxLineLen    int    `yaml:"max_line_len"`
	ResumeOnStart bool   `yaml:"resume_on_start"` // load Path when a new session begins
}

// SessionConfig holds the location of the session journal.
type SessionConfig struct {
	Dir string `yaml:"dir"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Index: IndexConfig{
			Extension:        ".txt",
			MaxWordLen:       49,
			MaxDocumentIDLen: 19,
			Includes:         []string{"**/*.txt"},
			Excludes:         []string{"**/.git/**", "**/.invidx/**"},
		},
		Database: DatabaseConfig{
			Path:       "database.txt",
			MaxLineLen: 64 * 1024,
		},
		Session: SessionConfig{
			Dir: ".invidx",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for invidx.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "invidx.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".invidx", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// DatabasePath resolves the database file against dir.
func (c *Config) DatabasePath(dir string) string {
	if filepath.IsAbs(c.Database.Path) {
		return c.Database.Path
	}
	return filepath.Join(dir, c.Database.Path)
}

// SessionDBPath returns the path to the session journal.
func (c *Config) SessionDBPath(dir string) string {
	return filepath.Join(c.sessionDir(dir), "session.db")
}

// EnsureSessionDir ensures the session directory exists.
func (c *Config) EnsureSessionDir(dir string) error {
	return os.MkdirAll(c.sessionDir(dir), 0755)
}

func (c *Config) sessionDir(dir string) string {
	if filepath.IsAbs(c.Session.Dir) {
		return c.Session.Dir
	}
	return filepath.Join(dir, c.Session.Dir)
}
