// Package config loads the harness configuration for railfuzz runs.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"railfuzz/pkg/generator"
)

// StringOptions configures the random string synthesis used by the demo
// steps.
type StringOptions struct {
	Length   uint32 `yaml:"length"`
	Unicode  bool   `yaml:"unicode"`
	Symbols  bool   `yaml:"symbols"`
	Capitals bool   `yaml:"capitals"`
	Numbers  bool   `yaml:"numbers"`
}

// Config is the harness run configuration.
type Config struct {
	// Seed fixes the run's random stream. Nil draws a seed from system
	// entropy; the plan report displays whichever seed was used.
	Seed *uint64 `yaml:"seed"`
	// Workdir is where file-based steps place their artifacts.
	Workdir string        `yaml:"workdir"`
	String  StringOptions `yaml:"string"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Workdir: filepath.Join(os.TempDir(), "railfuzz"),
		String:  StringOptions{Length: 6},
	}
}

// Load reads a YAML config file, filling unset fields with defaults. An
// empty path, or a path that does not exist, returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.Workdir == "" {
		cfg.Workdir = Default().Workdir
	}
	if cfg.String.Length == 0 {
		cfg.String.Length = Default().String.Length
	}
	return cfg, nil
}

// Spec converts the string options into a generator spec.
func (c *Config) Spec() generator.StringSpec {
	return generator.StringSpec{
		Length:                c.String.Length,
		IncludeUnicode:        c.String.Unicode,
		IncludeSymbol:         c.String.Symbols,
		IncludeCapitalLetters: c.String.Capitals,
		IncludeNumbers:        c.String.Numbers,
	}
}
