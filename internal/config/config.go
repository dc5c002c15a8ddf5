// Package config loads the shell's rc file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultPrompt is printed before each command line.
	DefaultPrompt = "jsh> "

	// DefaultMaxJobs is the job table capacity when the rc file doesn't set
	// one.
	DefaultMaxJobs = 16

	// defaultFileName is the rc file looked up in the user's home directory
	// when no --config flag is given.
	defaultFileName = ".jshrc.yaml"
)

// Config is the shell's configuration.
type Config struct {
	// Prompt is the string printed before each command line.
	Prompt string `yaml:"prompt"`

	// MaxJobs is the fixed capacity of the job table.
	MaxJobs int `yaml:"maxJobs"`

	// Debug enables diagnostic logging, same as the --verbose flag.
	Debug bool `yaml:"debug"`
}

// Default returns a Config with every field at its default.
func Default() *Config {
	return &Config{
		Prompt:  DefaultPrompt,
		MaxJobs: DefaultMaxJobs,
	}
}

// DefaultPath returns the rc file path in the user's home directory, or ""
// when the home directory cannot be determined.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, defaultFileName)
}

// Load reads shell configuration from path. A missing file is only an error
// when explicit is set, i.e. the user named the path themselves; the
// implicit rc file is optional and its absence yields defaults.
func Load(path string, explicit bool) (*Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}

		return nil, fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)

	if err := decoder.Decode(cfg); err != nil {
		// An empty rc file decodes to EOF; treat it as all-defaults.
		if !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: decode: %w", path, err)
		}
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Prompt == "" {
		c.Prompt = DefaultPrompt
	}

	if c.MaxJobs == 0 {
		c.MaxJobs = DefaultMaxJobs
	}
}

func (c *Config) validate() error {
	if c.MaxJobs < 1 {
		return fmt.Errorf("maxJobs must be a positive integer, got %d", c.MaxJobs)
	}

	return nil
}
