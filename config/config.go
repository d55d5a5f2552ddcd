// Package config provides configuration loading and access for the
// tuner.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all tuning-run configuration.
type Config struct {
	Tuner      TunerConfig     `yaml:"tuner"`
	Parameters []ParamConfig   `yaml:"parameters"`
	Objective  ObjectiveConfig `yaml:"objective"`
	Output     OutputConfig    `yaml:"output"`
}

// TunerConfig holds the REVAC loop settings.
type TunerConfig struct {
	Vectors     int   `yaml:"vectors"`     // population size
	Parents     int   `yaml:"parents"`     // selection size
	H           int   `yaml:"h"`           // mutation window radius
	Runs        int   `yaml:"runs"`        // objective calls averaged per vector
	Evaluations int   `yaml:"evaluations"` // total evaluation budget
	Seed        int64 `yaml:"seed"`        // 0 = seed from wall clock
}

// ParamConfig declares one tunable parameter and its inclusive range.
type ParamConfig struct {
	Name string  `yaml:"name"`
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
}

// ObjectiveConfig describes the demo meta-heuristic under tuning.
type ObjectiveConfig struct {
	Function    string `yaml:"function"`    // rosenbrock, trigonometric, or vardim
	Dim         int    `yaml:"dim"`         // benchmark dimensionality
	Generations int    `yaml:"generations"` // GA generations per objective run
	Population  int    `yaml:"population"`  // GA population size
}

// OutputConfig holds output locations.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// Load loads configuration from a YAML file, merging with embedded
// defaults. If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	return cfg, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
