package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config represents the shh configuration
type Config struct {
	// Output is the default file name for encoded images
	Output string `yaml:"output" mapstructure:"output"`
	// Overwrite allows replacing existing output files
	Overwrite bool `yaml:"overwrite" mapstructure:"overwrite"`

	Log LogConfig `yaml:"log" mapstructure:"log"`
}

// LogConfig configures logging
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
	// File enables rotated file logging when set
	File       string `yaml:"file,omitempty" mapstructure:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
}

var validLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "warning": true, "error": true, "fatal": true,
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Output:    "encoded.png",
		Overwrite: false,
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// SetDefaults registers the default configuration with v
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("output", d.Output)
	v.SetDefault("overwrite", d.Overwrite)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.max_size_mb", d.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.compress", d.Log.Compress)
}

// FromViper builds a validated configuration from everything v has merged:
// defaults, config file, environment and flags
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

// SaveConfig saves configuration to a YAML file
func SaveConfig(config *Config, filename string) error {
	data, err := config.Marshal()
	if err != nil {
		return err
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Marshal renders the configuration as YAML
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Output == "" {
		return fmt.Errorf("output is required")
	}
	if !validLevels[c.Log.Level] {
		return fmt.Errorf("unknown log level: %s", c.Log.Level)
	}
	if c.Log.MaxSizeMB < 0 {
		return fmt.Errorf("log.max_size_mb must not be negative")
	}
	if c.Log.MaxBackups < 0 {
		return fmt.Errorf("log.max_backups must not be negative")
	}
	return nil
}
