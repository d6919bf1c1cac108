// Package config loads the optional pastac.yaml settings file: optimizer
// pass toggles, the fixed-point iteration bound, and the default output
// format.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/cwbudde/go-pastac/internal/optimizer"
)

// FileName is the settings file looked for next to the source file when no
// explicit path is given.
const FileName = "pastac.yaml"

// Config is the full settings document.
type Config struct {
	Optimizer Optimizer `yaml:"optimizer"`
	Output    Output    `yaml:"output"`
}

// Optimizer configures the fixed-point optimization loop.
type Optimizer struct {
	// Passes toggles individual passes by name; a pass missing from the
	// map stays enabled.
	Passes map[string]bool `yaml:"passes"`
	// MaxIterations bounds the fixed-point loop; 0 means the default.
	MaxIterations int `yaml:"max_iterations"`
}

// Output configures how results and diagnostics are rendered.
type Output struct {
	// Format is "text" or "json".
	Format string `yaml:"format"`
}

// Default returns the settings used when no pastac.yaml exists.
func Default() Config {
	return Config{
		Optimizer: Optimizer{MaxIterations: optimizer.DefaultMaxIterations},
		Output:    Output{Format: "text"},
	}
}

// Load reads and decodes the settings file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a settings document, filling unset fields from Default.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Optimizer.MaxIterations <= 0 {
		cfg.Optimizer.MaxIterations = optimizer.DefaultMaxIterations
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = "text"
	}
	if cfg.Output.Format != "text" && cfg.Output.Format != "json" {
		return Config{}, fmt.Errorf("parsing config: unknown output format %q", cfg.Output.Format)
	}
	for name := range cfg.Optimizer.Passes {
		if !knownPass(name) {
			return Config{}, fmt.Errorf("parsing config: unknown optimizer pass %q", name)
		}
	}
	return cfg, nil
}

// LoadNear returns the settings for compiling sourcePath: the pastac.yaml
// in the source file's directory if one exists, else Default.
func LoadNear(sourcePath string) (Config, error) {
	path := filepath.Join(filepath.Dir(sourcePath), FileName)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, err
	}
	return Load(path)
}

// OptimizerOptions converts the settings into optimizer options.
func (c Config) OptimizerOptions() []optimizer.Option {
	opts := []optimizer.Option{optimizer.WithMaxIterations(c.Optimizer.MaxIterations)}
	for name, enabled := range c.Optimizer.Passes {
		opts = append(opts, optimizer.WithPass(optimizer.Pass(name), enabled))
	}
	return opts
}

func knownPass(name string) bool {
	for _, p := range optimizer.Passes {
		if string(p) == name {
			return true
		}
	}
	return false
}
