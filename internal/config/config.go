package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"gitsift/internal/common"
	apperrors "gitsift/pkg/errors"
)

const (
	// FileName is the config file looked up in the working and home directories
	FileName = ".gitsift.yaml"

	// EnvPrefix prefixes every environment override, e.g. GITSIFT_BRANCH
	EnvPrefix = "GITSIFT"

	// EnvConfigFile points at an explicit config file
	EnvConfigFile = EnvPrefix + "_CONFIG"
)

// Config holds the settings shared by every command
type Config struct {
	Repo      string `yaml:"repo" mapstructure:"repo"`
	Branch    string `yaml:"branch" mapstructure:"branch"`
	Host      string `yaml:"host" mapstructure:"host"`
	PageSize  int    `yaml:"page_size" mapstructure:"page_size"`
	Threshold int    `yaml:"threshold" mapstructure:"threshold"`
	Workers   int    `yaml:"workers" mapstructure:"workers"`
}

// Default returns the built-in settings. An empty branch means HEAD.
func Default() *Config {
	return &Config{
		Repo:      ".",
		Branch:    "",
		Host:      "github.com",
		PageSize:  10,
		Threshold: 0,
		Workers:   1,
	}
}

// Validate checks the settings are usable
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Repo) == "":
		return apperrors.ConfigError("repository path must not be empty", "repo")
	case strings.TrimSpace(c.Host) == "":
		return apperrors.ConfigError("host must not be empty", "host")
	case strings.Contains(c.Host, "://"):
		return apperrors.ConfigError(fmt.Sprintf("host %q must not include a scheme", c.Host), "host")
	case c.PageSize < 1:
		return apperrors.ConfigError(fmt.Sprintf("page_size must be at least 1, got %d", c.PageSize), "page_size")
	case c.Threshold < 0:
		return apperrors.ConfigError(fmt.Sprintf("threshold must not be negative, got %d", c.Threshold), "threshold")
	case c.Workers < 1:
		return apperrors.ConfigError(fmt.Sprintf("workers must be at least 1, got %d", c.Workers), "workers")
	}
	return nil
}

// DefaultFile returns the config file path: $GITSIFT_CONFIG when set,
// otherwise FileName in the working directory
func DefaultFile() string {
	if path := os.Getenv(EnvConfigFile); path != "" {
		return path
	}
	return FileName
}

// Load reads the config file at path over the defaults. A missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	cleaned, err := common.CleanPath(path)
	if err != nil {
		return nil, fmt.Errorf("invalid config file path: %w", err)
	}

	cfg := Default()
	data, err := os.ReadFile(cleaned) // #nosec G304 - path is user supplied on purpose
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeConfigInvalid, "failed to parse config file").
			WithContext("path", cleaned)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path, creating parent directories as needed
func Save(path string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	cleaned, err := common.CleanPath(path)
	if err != nil {
		return fmt.Errorf("invalid config file path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cleaned), common.DirPermissionNormal); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(cleaned, data, common.FilePermissionNormal); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Exists reports whether a file exists at path
func Exists(path string) bool {
	cleaned, err := common.CleanPath(path)
	if err != nil {
		return false
	}
	_, err = os.Stat(cleaned)
	return err == nil
}
