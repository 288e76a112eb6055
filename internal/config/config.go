// Package config provides configuration management for the incident report
// tools.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"incidencies/internal/normalize"
	"incidencies/internal/validate"
)

// Configuration validation errors.
var (
	ErrMissingInputPath      = errors.New("input.path is required")
	ErrInvalidGibberishLen   = errors.New("validation.gibberish_min_len must be at least 1")
	ErrInvalidVowelRatio     = errors.New("validation.min_vowel_ratio must be between 0 and 1")
	ErrInvalidSymbolFraction = errors.New("validation.max_symbol_fraction must be between 0 and 1")
	ErrInvalidConsonantRun   = errors.New("validation.consonant_run_min must be at least 1")
	ErrInvalidRepeatMin      = errors.New("validation.repeat_min must be at least 2")
	ErrInvalidShortDescLen   = errors.New("validation.short_desc_len must be non-negative")
	ErrNoTimestampFormats    = errors.New("timestamps.formats must list at least one layout")
	ErrInvalidSectionSize    = errors.New("report section sizes must be non-negative")
	ErrInvalidLogLevel       = errors.New("logging.level must be one of: debug, info, warn, error")
)

// Config represents the complete tool configuration.
type Config struct {
	Input      InputConfig      `yaml:"input"`
	Validation ValidationConfig `yaml:"validation"`
	Timestamps TimestampConfig  `yaml:"timestamps"`
	Report     ReportConfig     `yaml:"report"`
	Output     OutputConfig     `yaml:"output"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// InputConfig points at the feed to read.
type InputConfig struct {
	Path string `yaml:"path"`
}

// ValidationConfig tunes the data-quality heuristics.
type ValidationConfig struct {
	GibberishMinLen   int     `yaml:"gibberish_min_len"`
	MinVowelRatio     float64 `yaml:"min_vowel_ratio"`
	MaxSymbolFraction float64 `yaml:"max_symbol_fraction"`
	ConsonantRunMin   int     `yaml:"consonant_run_min"`
	RepeatMin         int     `yaml:"repeat_min"`
	ShortDescLen      int     `yaml:"short_desc_len"`
}

// Thresholds converts the section into validator thresholds.
func (v *ValidationConfig) Thresholds() validate.Thresholds {
	return validate.Thresholds{
		GibberishMinLen:   v.GibberishMinLen,
		MinVowelRatio:     v.MinVowelRatio,
		MaxSymbolFraction: v.MaxSymbolFraction,
		ConsonantRunMin:   v.ConsonantRunMin,
		RepeatMin:         v.RepeatMin,
		ShortDescLen:      v.ShortDescLen,
	}
}

// TimestampConfig lists the layouts tried against timestamp fields.
type TimestampConfig struct {
	Formats []string `yaml:"formats"`
}

// ReportConfig sizes the console report sections.
type ReportConfig struct {
	TopTypes     int  `yaml:"top_types"`
	TopLocations int  `yaml:"top_locations"`
	TopReasons   int  `yaml:"top_reasons"`
	Latest       int  `yaml:"latest"`
	NoColor      bool `yaml:"no_color"`
}

// OutputConfig defines JSON export behavior. An empty path means the export
// lands next to the input file, with a .json extension.
type OutputConfig struct {
	Path        string `yaml:"path"`
	PrettyPrint bool   `yaml:"pretty_print"`
	Enabled     bool   `yaml:"enabled"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the configuration used when no file is given: the
// standard feed name, the historical heuristic tuning and full report
// sections.
func DefaultConfig() *Config {
	t := validate.DefaultThresholds()

	return &Config{
		Input: InputConfig{Path: "Incidencies.xml"},
		Validation: ValidationConfig{
			GibberishMinLen:   t.GibberishMinLen,
			MinVowelRatio:     t.MinVowelRatio,
			MaxSymbolFraction: t.MaxSymbolFraction,
			ConsonantRunMin:   t.ConsonantRunMin,
			RepeatMin:         t.RepeatMin,
			ShortDescLen:      t.ShortDescLen,
		},
		Timestamps: TimestampConfig{
			Formats: append([]string(nil), normalize.DefaultTimestampFormats...),
		},
		Report: ReportConfig{
			TopTypes:     10,
			TopLocations: 10,
			TopReasons:   5,
			Latest:       10,
		},
		Output: OutputConfig{
			PrettyPrint: true,
			Enabled:     true,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// LoadConfig loads configuration from a YAML file. Keys absent from the
// file keep their defaults.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Input.Path == "" {
		return ErrMissingInputPath
	}

	if c.Validation.GibberishMinLen < 1 {
		return ErrInvalidGibberishLen
	}

	if c.Validation.MinVowelRatio < 0 || c.Validation.MinVowelRatio > 1 {
		return ErrInvalidVowelRatio
	}

	if c.Validation.MaxSymbolFraction < 0 || c.Validation.MaxSymbolFraction > 1 {
		return ErrInvalidSymbolFraction
	}

	if c.Validation.ConsonantRunMin < 1 {
		return ErrInvalidConsonantRun
	}

	if c.Validation.RepeatMin < 2 {
		return ErrInvalidRepeatMin
	}

	if c.Validation.ShortDescLen < 0 {
		return ErrInvalidShortDescLen
	}

	if len(c.Timestamps.Formats) == 0 {
		return ErrNoTimestampFormats
	}

	sizes := []int{
		c.Report.TopTypes,
		c.Report.TopLocations,
		c.Report.TopReasons,
		c.Report.Latest,
	}
	for _, size := range sizes {
		if size < 0 {
			return ErrInvalidSectionSize
		}
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Input: %s, Formats: %d, Export: %v}",
		c.Input.Path,
		len(c.Timestamps.Formats),
		c.Output.Enabled,
	)
}
