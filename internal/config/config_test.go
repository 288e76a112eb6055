package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// Helper to create a temp config file.
func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create temp config file: %v", err)
	}

	return configPath
}

// validConfigYAML overrides a little of everything.
const validConfigYAML = `
input:
  path: "data/Incidencies.xml"
validation:
  gibberish_min_len: 8
  min_vowel_ratio: 0.2
  max_symbol_fraction: 0.5
  consonant_run_min: 5
  repeat_min: 4
  short_desc_len: 12
timestamps:
  formats:
    - "2/1/2006 15:04:05"
    - "2/1/2006"
report:
  top_types: 5
  top_locations: 5
  top_reasons: 3
  latest: 4
  no_color: true
output:
  path: "out/incidencies.json"
  pretty_print: false
  enabled: true
logging:
  level: "debug"
`

func TestLoadConfig_Valid(t *testing.T) {
	configPath := createTempConfigFile(t, validConfigYAML)

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Input.Path != "data/Incidencies.xml" {
		t.Errorf("Expected input path 'data/Incidencies.xml', got '%s'", cfg.Input.Path)
	}

	if cfg.Validation.GibberishMinLen != 8 {
		t.Errorf("Expected gibberish_min_len 8, got %d", cfg.Validation.GibberishMinLen)
	}

	if len(cfg.Timestamps.Formats) != 2 {
		t.Errorf("Expected 2 timestamp formats, got %d", len(cfg.Timestamps.Formats))
	}

	if !cfg.Report.NoColor {
		t.Error("Expected no_color true")
	}

	if cfg.Output.PrettyPrint {
		t.Error("Expected pretty_print false")
	}
}

func TestLoadConfig_AbsentKeysKeepDefaults(t *testing.T) {
	configPath := createTempConfigFile(t, "input:\n  path: \"feed.xml\"\n")

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Input.Path != "feed.xml" {
		t.Errorf("Expected input path 'feed.xml', got '%s'", cfg.Input.Path)
	}

	def := DefaultConfig()

	if cfg.Validation != def.Validation {
		t.Errorf("Expected default validation section, got %+v", cfg.Validation)
	}

	if !cfg.Output.Enabled {
		t.Error("Expected export enabled by default")
	}

	if cfg.Report.TopTypes != def.Report.TopTypes {
		t.Errorf("Expected default top_types %d, got %d", def.Report.TopTypes, cfg.Report.TopTypes)
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig("/nonexistent/path/config.yaml")
	if err == nil {
		t.Fatal("Expected error for nonexistent file, got nil")
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	configPath := createTempConfigFile(t, "invalid: yaml: content: [}")

	_, err := LoadConfig(configPath)
	if err == nil {
		t.Fatal("Expected error for invalid YAML, got nil")
	}
}

func TestDefaultConfig_IsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("Default config failed validation: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(c *Config)
		expected error
	}{
		{
			name:     "missing input path",
			mutate:   func(c *Config) { c.Input.Path = "" },
			expected: ErrMissingInputPath,
		},
		{
			name:     "gibberish length zero",
			mutate:   func(c *Config) { c.Validation.GibberishMinLen = 0 },
			expected: ErrInvalidGibberishLen,
		},
		{
			name:     "vowel ratio above one",
			mutate:   func(c *Config) { c.Validation.MinVowelRatio = 1.5 },
			expected: ErrInvalidVowelRatio,
		},
		{
			name:     "negative vowel ratio",
			mutate:   func(c *Config) { c.Validation.MinVowelRatio = -0.1 },
			expected: ErrInvalidVowelRatio,
		},
		{
			name:     "symbol fraction above one",
			mutate:   func(c *Config) { c.Validation.MaxSymbolFraction = 2 },
			expected: ErrInvalidSymbolFraction,
		},
		{
			name:     "consonant run zero",
			mutate:   func(c *Config) { c.Validation.ConsonantRunMin = 0 },
			expected: ErrInvalidConsonantRun,
		},
		{
			name:     "repeat min of one",
			mutate:   func(c *Config) { c.Validation.RepeatMin = 1 },
			expected: ErrInvalidRepeatMin,
		},
		{
			name:     "negative short desc length",
			mutate:   func(c *Config) { c.Validation.ShortDescLen = -1 },
			expected: ErrInvalidShortDescLen,
		},
		{
			name:     "no timestamp formats",
			mutate:   func(c *Config) { c.Timestamps.Formats = nil },
			expected: ErrNoTimestampFormats,
		},
		{
			name:     "negative report section",
			mutate:   func(c *Config) { c.Report.Latest = -1 },
			expected: ErrInvalidSectionSize,
		},
		{
			name:     "unknown log level",
			mutate:   func(c *Config) { c.Logging.Level = "verbose" },
			expected: ErrInvalidLogLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if !errors.Is(err, tt.expected) {
				t.Errorf("Validate() = %v, want %v", err, tt.expected)
			}
		})
	}
}

func TestValidationConfig_Thresholds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Validation.GibberishMinLen = 9
	cfg.Validation.RepeatMin = 5

	th := cfg.Validation.Thresholds()

	if th.GibberishMinLen != 9 {
		t.Errorf("GibberishMinLen = %d, want 9", th.GibberishMinLen)
	}

	if th.RepeatMin != 5 {
		t.Errorf("RepeatMin = %d, want 5", th.RepeatMin)
	}

	if th.MinVowelRatio != cfg.Validation.MinVowelRatio {
		t.Errorf("MinVowelRatio = %v, want %v", th.MinVowelRatio, cfg.Validation.MinVowelRatio)
	}
}

func TestConfig_String(t *testing.T) {
	if DefaultConfig().String() == "" {
		t.Error("Expected non-empty string representation")
	}
}
