// Package config loads the optional pkgvet.yaml project file.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/githubnext/pkgvet/pkg/constants"
	"github.com/githubnext/pkgvet/pkg/validation"
	"github.com/goccy/go-yaml"
)

// Config holds the settings shared by every command.
type Config struct {
	// Mode is the default validation mode.
	Mode string `yaml:"mode,omitempty"`

	// ProjectDir holds the Packages/ folder packages are looked up in.
	ProjectDir string `yaml:"project_dir,omitempty"`

	// ResultsDir receives the text and JSON reports.
	ResultsDir string `yaml:"results_dir,omitempty"`

	// Ignore lists doublestar globs, relative to the package root, that are
	// excluded from file scans.
	Ignore []string `yaml:"ignore,omitempty"`

	// Skip lists rule kinds that never run.
	Skip []string `yaml:"skip,omitempty"`

	// Jobs bounds how many packages are validated at once.
	Jobs int `yaml:"jobs,omitempty"`

	// URLTimeout is a Go duration bounding one URL probe.
	URLTimeout string `yaml:"url_timeout,omitempty"`

	// MetricsFile, when set, receives a Prometheus textfile after each run.
	MetricsFile string `yaml:"metrics_file,omitempty"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Mode:       string(validation.ModeStructure),
		ProjectDir: ".",
		ResultsDir: constants.DefaultResultsDir,
		Jobs:       1,
		URLTimeout: "10s",
	}
}

// LoadFromFile reads a config file. Missing fields stay empty so the result
// can be merged over defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Merge overlays the non-empty fields of other onto c.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.Mode != "" {
		c.Mode = other.Mode
	}
	if other.ProjectDir != "" {
		c.ProjectDir = other.ProjectDir
	}
	if other.ResultsDir != "" {
		c.ResultsDir = other.ResultsDir
	}
	if len(other.Ignore) > 0 {
		c.Ignore = slices.Clone(other.Ignore)
	}
	if len(other.Skip) > 0 {
		c.Skip = slices.Clone(other.Skip)
	}
	if other.Jobs != 0 {
		c.Jobs = other.Jobs
	}
	if other.URLTimeout != "" {
		c.URLTimeout = other.URLTimeout
	}
	if other.MetricsFile != "" {
		c.MetricsFile = other.MetricsFile
	}
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	if _, err := validation.ParseMode(c.Mode); err != nil {
		errs = append(errs, err)
	}
	if c.Jobs < 1 {
		errs = append(errs, fmt.Errorf("jobs must be at least 1, got %d", c.Jobs))
	}
	if _, err := c.Timeout(); err != nil {
		errs = append(errs, err)
	}
	for _, pattern := range c.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			errs = append(errs, fmt.Errorf("invalid ignore pattern %q", pattern))
		}
	}
	return errors.Join(errs...)
}

// ValidationMode returns the parsed mode.
func (c *Config) ValidationMode() (validation.Mode, error) {
	return validation.ParseMode(c.Mode)
}

// Timeout returns the parsed URL timeout.
func (c *Config) Timeout() (time.Duration, error) {
	if c.URLTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.URLTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid url_timeout %q: %w", c.URLTimeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("url_timeout must not be negative, got %s", d)
	}
	return d, nil
}

// SkipKinds converts Skip into rule kinds.
func (c *Config) SkipKinds() []validation.Kind {
	kinds := make([]validation.Kind, len(c.Skip))
	for i, s := range c.Skip {
		kinds[i] = validation.Kind(s)
	}
	return kinds
}
