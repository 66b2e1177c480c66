package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".adventcal"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// Duration is a time.Duration that unmarshals from YAML as either a Go
// duration string ("1500ms", "2s") or a bare integer number of seconds.
// The integer form matches how people naturally write "delay: 2".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var seconds int
	if err := value.Decode(&seconds); err == nil {
		*d = Duration(time.Duration(seconds) * time.Second)
		return nil
	}

	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("duration must be a string or integer seconds: %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// File represents the structure of the .adventcal configuration file.
// Pointer fields distinguish "not set" from "set to the zero value" so
// that an absent key never clobbers a default.
type File struct {
	// Site overrides the crawl target base URL.
	Site string `yaml:"site,omitempty"`

	// Delay overrides the politeness interval.
	Delay *Duration `yaml:"delay,omitempty"`

	// Timeout overrides the per-request timeout.
	Timeout *Duration `yaml:"timeout,omitempty"`

	// UserAgent overrides the User-Agent header.
	UserAgent string `yaml:"user_agent,omitempty"`

	// Output overrides the output root directory.
	Output string `yaml:"output,omitempty"`

	// Headers are extra HTTP headers sent with every request.
	Headers map[string]string `yaml:"headers,omitempty"`
}

// ApplyTo overlays the file's values onto cfg. Only keys present in the
// file are applied; CLI flags are applied after this and win.
func (f *File) ApplyTo(cfg *Config) {
	if f.Site != "" {
		cfg.Site = f.Site
	}
	if f.Delay != nil {
		cfg.Delay = time.Duration(*f.Delay)
	}
	if f.Timeout != nil {
		cfg.Timeout = time.Duration(*f.Timeout)
	}
	if f.UserAgent != "" {
		cfg.UserAgent = f.UserAgent
	}
	if f.Output != "" {
		cfg.OutputDir = f.Output
	}
	if len(f.Headers) > 0 {
		cfg.Headers = f.Headers
	}
}

// LoadConfigFile loads crawler settings from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound. Callers
// decide whether that matters based on whether the path was explicitly
// specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .adventcal in the current directory
// 3. Look for .adventcal in the user's home directory
//
// Returns the path to the configuration file if found, or empty string
// if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
