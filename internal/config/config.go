// Package config handles uvtool configuration loading and management.
package config

import (
	"github.com/Faultbox/uvisland/pkg/island"
	"github.com/Faultbox/uvisland/pkg/view"
)

// Config holds all tool settings.
type Config struct {
	Analyzer AnalyzerConfig `yaml:"analyzer"`
	Picking  PickingConfig  `yaml:"picking"`
	View     ViewConfig     `yaml:"view"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// AnalyzerConfig holds island analysis tunables.
type AnalyzerConfig struct {
	// WeldEpsilon is the UV proximity tolerance for joining
	// near-duplicate vertices into one island. Raising it risks merging
	// legitimately separate islands.
	WeldEpsilon float32 `yaml:"weld_epsilon"`
}

// PickingConfig holds hit-test settings.
type PickingConfig struct {
	// Tolerance is the UV-space slack accepted for near-miss picks at
	// island edges.
	Tolerance float32 `yaml:"tolerance"`
}

// ViewConfig holds UV preview zoom limits.
type ViewConfig struct {
	MinZoom float32 `yaml:"min_zoom"`
	MaxZoom float32 `yaml:"max_zoom"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Analyzer: AnalyzerConfig{
			WeldEpsilon: island.DefaultWeldEpsilon,
		},
		Picking: PickingConfig{
			Tolerance: island.DefaultPickTolerance,
		},
		View: ViewConfig{
			MinZoom: view.DefaultMinZoom,
			MaxZoom: view.DefaultMaxZoom,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Params returns the analyzer parameters described by the config.
func (c *Config) Params() island.Params {
	return island.Params{WeldEpsilon: c.Analyzer.WeldEpsilon}
}
