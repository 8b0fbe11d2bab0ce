// Package config loads hadbit's optional YAML configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/faizmokh/hadbit/internal/template"
)

// Config holds all hadbit configuration.
type Config struct {
	// DatabasePath overrides the SQLite file location. Empty means the
	// default inside the data directory.
	DatabasePath string `yaml:"database_path"`

	// Debug lowers the log level to debug.
	Debug bool `yaml:"debug"`

	// DefaultStyle is applied to templates created for items without one.
	DefaultStyle StyleConfig `yaml:"default_style"`

	Preview PreviewConfig `yaml:"preview"`
}

// StyleConfig mirrors the template style block.
type StyleConfig struct {
	Icon  string `yaml:"icon"`
	Color string `yaml:"color"`
}

// PreviewConfig controls the live preview of the log form.
type PreviewConfig struct {
	Show bool `yaml:"show"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		DefaultStyle: StyleConfig{
			Icon:  template.DefaultIcon,
			Color: template.DefaultColor,
		},
		Preview: PreviewConfig{Show: true},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	cfg.fillDefaults()
	return cfg, nil
}

// Save writes cfg to path as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// NewTemplate returns an empty template carrying the configured style.
func (c *Config) NewTemplate() template.Template {
	t := template.New()
	t.Style = template.Style{Icon: c.DefaultStyle.Icon, Color: c.DefaultStyle.Color}
	return t
}

func (c *Config) applyEnvOverrides() {
	if path := strings.TrimSpace(os.Getenv("HADBIT_DB")); path != "" {
		c.DatabasePath = path
	}
	if raw := strings.TrimSpace(os.Getenv("HADBIT_DEBUG")); raw != "" {
		if debug, err := strconv.ParseBool(raw); err == nil {
			c.Debug = debug
		}
	}
}

func (c *Config) fillDefaults() {
	if c.DefaultStyle.Icon == "" {
		c.DefaultStyle.Icon = template.DefaultIcon
	}
	if c.DefaultStyle.Color == "" {
		c.DefaultStyle.Color = template.DefaultColor
	}
}
