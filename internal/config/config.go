// Package config loads the settings of the automata command.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/geange/automata/codec"
	"github.com/geange/automata/internal/logging"
)

// DefaultOutputPath is where minimized automata are saved unless told otherwise.
const DefaultOutputPath = "minimized_automaton.txt"

var (
	ErrConfigNotFound   = errors.New("config file not found")
	ErrInvalidFormat    = errors.New("invalid config format")
	ErrValidationFailed = errors.New("config validation failed")
)

// Config holds every setting of the automata command.
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Output OutputConfig `yaml:"output"`
}

// LogConfig selects the log level and format.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// OutputConfig controls where and how results are saved.
type OutputConfig struct {
	Path string `yaml:"path"`
	// Format is text or yaml. Empty picks the format from the extension of Path.
	Format string `yaml:"format"`
}

// Default returns the settings used when no config file is given.
func Default() *Config {
	log := logging.DefaultConfig()
	return &Config{
		Log: LogConfig{
			Level:  log.Level,
			Format: log.Format,
		},
		Output: OutputConfig{
			Path: DefaultOutputPath,
		},
	}
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	problems := make([]string, 0)
	if !logging.ValidLevel(c.Log.Level) {
		problems = append(problems, fmt.Sprintf("log.level %q is not one of trace, debug, info, warn, error", c.Log.Level))
	}
	if !logging.ValidFormat(c.Log.Format) {
		problems = append(problems, fmt.Sprintf("log.format %q is not one of json, console", c.Log.Format))
	}
	if strings.TrimSpace(c.Output.Path) == "" {
		problems = append(problems, "output.path is required")
	}
	if c.Output.Format != "" {
		if _, err := codec.ParseFormat(c.Output.Format); err != nil {
			problems = append(problems, fmt.Sprintf("output.format: %v", err))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrValidationFailed, strings.Join(problems, "; "))
	}
	return nil
}

// OutputFormat returns the format results are saved in, empty when it follows the output path.
func (c *Config) OutputFormat() codec.Format {
	if c.Output.Format == "" {
		return ""
	}
	f, _ := codec.ParseFormat(c.Output.Format)
	return f
}

// Loader loads configuration from YAML files.
type Loader struct {
	// ExpandEnv enables environment variable expansion.
	ExpandEnv bool
	// Validate enables configuration validation.
	Validate bool
}

// NewLoader creates a new configuration loader with default settings.
func NewLoader() *Loader {
	return &Loader{
		ExpandEnv: true,
		Validate:  true,
	}
}

// LoaderOption configures the loader.
type LoaderOption func(*Loader)

// WithEnvExpansion enables or disables environment variable expansion.
func WithEnvExpansion(enabled bool) LoaderOption {
	return func(l *Loader) {
		l.ExpandEnv = enabled
	}
}

// WithValidation enables or disables configuration validation.
func WithValidation(enabled bool) LoaderOption {
	return func(l *Loader) {
		l.Validate = enabled
	}
}

// NewLoaderWithOptions creates a loader with the specified options.
func NewLoaderWithOptions(opts ...LoaderOption) *Loader {
	l := NewLoader()
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadFile loads configuration from a file path.
func (l *Loader) LoadFile(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to access config file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrInvalidFormat, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	return l.Load(f)
}

// Load reads YAML configuration from r. Fields left out keep their defaults.
func (l *Loader) Load(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if l.ExpandEnv {
		data = []byte(os.ExpandEnv(string(data)))
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	if l.Validate {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadString loads configuration from a string.
func (l *Loader) LoadString(content string) (*Config, error) {
	return l.Load(strings.NewReader(content))
}
