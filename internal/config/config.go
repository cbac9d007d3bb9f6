/*
PURPOSE:
  Defines the configuration structure and loading logic for sirbench.
  Adheres to "Config IS Code" philosophy.

REQUIREMENTS:
  User-specified:
  - Allow configuration of thread counts, workload size and output files.

  Implementation-discovered:
  - Needs to support YAML parsing.
  - Chart output must be tunable (file name, DPI, size) for papers vs. slides.

ARCHITECTURE INTEGRATION:
  - Used by: internal/cli, internal/engine, internal/chart
  - Dependencies: gopkg.in/yaml.v3 (standard for Go config)

ERROR HANDLING:
  - Returns explicit error if config file is invalid.
  - Missing default files fall back to defaults silently.

IMPLEMENTATION RULES:
  - Config struct tags should support yaml.
  - Defaults reproduce the published benchmark (1M simulations, 1..32 threads).

USAGE:
  cfg, err := config.Load("sirbench.yaml")

SELF-HEALING INSTRUCTIONS:
  - If new fields are needed, add to Config struct and update DefaultConfig() and Validate().

RELATED FILES:
  - internal/cli/root.go

MAINTENANCE:
  - Update when adding new tuning parameters.
*/

package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/daryltucker/sirbench/internal/sim"
)

// Config represents the full configuration for sirbench.
type Config struct {
	Simulations   int        `yaml:"simulations"`
	ThreadCounts  []int      `yaml:"thread_counts"`
	ForkThreshold int        `yaml:"fork_threshold"`
	Seed          uint64     `yaml:"seed"`
	SIR           sim.Params `yaml:"sir"`

	OutputDir  string `yaml:"output_dir"`
	OutputFile string `yaml:"output_file"`
	JSONFile   string `yaml:"json_file"`

	Chart ChartConfig `yaml:"chart"`
}

// ChartConfig controls the rendered performance figure.
type ChartConfig struct {
	File   string  `yaml:"file"`
	Title  string  `yaml:"title"`
	DPI    int     `yaml:"dpi"`
	Width  float64 `yaml:"width_in"`
	Height float64 `yaml:"height_in"`
}

// DefaultThreadCounts is used when neither flags nor config name thread counts.
var DefaultThreadCounts = []int{1, 2, 4, 8, 16, 32}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Simulations:   1_000_000,
		ThreadCounts:  slices.Clone(DefaultThreadCounts),
		ForkThreshold: 50_000,
		Seed:          1,
		SIR:           sim.DefaultParams(),
		OutputDir:     ".",
		OutputFile:    "results.csv",
		JSONFile:      "results.jsonl",
		Chart: ChartConfig{
			File:   "performance_analysis.png",
			Title:  "SIR Simulation Parallel Performance Analysis",
			DPI:    300,
			Width:  15,
			Height: 12,
		},
	}
}

// Load reads configuration from a file.
// If path is specified, it attempts to load that file.
// If path is empty, it searches for default files in order.
// If no file found, returns default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	var data []byte
	var err error

	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
	} else {
		defaults := []string{"sirbench.yaml", "sirbench.yml"}
		found := false
		for _, name := range defaults {
			data, err = os.ReadFile(name)
			if err == nil {
				path = name
				found = true
				break
			}
		}
		if !found {
			return cfg, nil
		}
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the values the harness and chart renderer depend on.
func (c *Config) Validate() error {
	var errs []error
	if c.Simulations < 1 {
		errs = append(errs, fmt.Errorf("simulations must be positive, got %d", c.Simulations))
	}
	if len(c.ThreadCounts) == 0 {
		errs = append(errs, errors.New("thread_counts must not be empty"))
	}
	for _, n := range c.ThreadCounts {
		if n < 1 {
			errs = append(errs, fmt.Errorf("thread count must be at least 1, got %d", n))
		}
	}
	if c.ForkThreshold < 1 {
		errs = append(errs, fmt.Errorf("fork_threshold must be positive, got %d", c.ForkThreshold))
	}
	if c.SIR.Population < 1 {
		errs = append(errs, fmt.Errorf("sir.population must be positive, got %d", c.SIR.Population))
	}
	if c.SIR.Beta < 0 || c.SIR.Gamma < 0 || c.SIR.Gamma > 1 {
		errs = append(errs, fmt.Errorf("sir rates out of range (beta=%v, gamma=%v)", c.SIR.Beta, c.SIR.Gamma))
	}
	if c.SIR.MaxDays < 1 {
		errs = append(errs, fmt.Errorf("sir.max_days must be positive, got %d", c.SIR.MaxDays))
	}
	if c.Chart.DPI < 1 {
		errs = append(errs, fmt.Errorf("chart.dpi must be positive, got %d", c.Chart.DPI))
	}
	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		errs = append(errs, fmt.Errorf("chart size must be positive, got %vx%v", c.Chart.Width, c.Chart.Height))
	}
	return errors.Join(errs...)
}
