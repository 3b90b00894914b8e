// Package config loads mdlist's YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/jcorbin/mdlist/internal/listedit"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the top-level configuration file.
type Config struct {
	Editor EditorConfig    `yaml:"editor"`
	List   listedit.Config `yaml:"list"`
}

// EditorConfig holds the indentation settings a host editor would supply.
type EditorConfig struct {
	TabWidth     int  `yaml:"tab_width"`     // columns per indentation level
	InsertSpaces bool `yaml:"insert_spaces"` // indent with spaces rather than tabs
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Editor: EditorConfig{
			TabWidth:     4,
			InsertSpaces: true,
		},
		List: listedit.DefaultConfig(),
	}
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "mdlist", "config.yaml")
}

// Load reads configuration from the given path.
// If path is empty or doesn't exist, returns defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file %v: %w", path, err)
			}
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Editor.TabWidth == 0 {
		c.Editor.TabWidth = defaults.Editor.TabWidth
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Editor.TabWidth < 1 {
		return fmt.Errorf("%w: editor.tab_width must be at least 1, got %d", ErrInvalid, c.Editor.TabWidth)
	}
	if err := c.List.Validate(); err != nil {
		return fmt.Errorf("%w: list: %v", ErrInvalid, err)
	}
	return nil
}
