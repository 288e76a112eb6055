// Package main provides the record validation command-line tool. It runs the
// data-quality battery over a feed and prints one verdict per record, exiting
// non-zero when any record is flagged so it can gate automated pipelines.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"

	"incidencies/internal/config"
	"incidencies/internal/feed"
	"incidencies/internal/models"
	"incidencies/internal/normalize"
	"incidencies/internal/validate"
	"incidencies/pkg/textutil"
)

// defaultConfigPath is probed when -config is not given.
const defaultConfigPath = "configs/incidencies.yaml"

func main() {
	// Define command-line flags
	configFile := flag.String("config", "", "Path to YAML configuration file")
	feedFile := flag.String("file", "", "Path to the incident XML feed (overrides config)")
	quiet := flag.Bool("quiet", false, "Only print the final summary")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	help := flag.Bool("help", false, "Show usage information")

	flag.Parse()

	if *help {
		printUsage()
		os.Exit(0)
	}

	cfg := loadConfig(*configFile)

	if *noColor || cfg.Report.NoColor {
		color.NoColor = true
	}

	feedPath := cfg.Input.Path
	if *feedFile != "" {
		feedPath = *feedFile
	}

	fmt.Printf("📂 Validating feed: %s\n\n", feedPath)

	records, err := feed.NewParser().ParseFile(feedPath)
	if err != nil {
		log.Fatalf("❌ Failed to read feed: %v\n", err)
	}

	normalizer := normalize.NewNormalizerWithFormats(cfg.Timestamps.Formats)
	validator := validate.NewValidatorWithThresholds(cfg.Validation.Thresholds())

	flagged := 0

	for i, raw := range records {
		rec := normalizer.Normalize(raw)
		verdict := validator.Validate(&rec)

		if verdict.Valid {
			if !*quiet {
				fmt.Printf("%s #%d %s\n", color.GreenString("✔"), i+1, describe(rec))
			}

			continue
		}

		flagged++

		if !*quiet {
			fmt.Printf("%s #%d %s\n", color.RedString("✖"), i+1, describe(rec))

			for _, reason := range verdict.Reasons {
				fmt.Printf("    - %s\n", reason)
			}
		}
	}

	fmt.Println("\n----------------------------------------------------------------")
	fmt.Printf("📈 Summary:\n")
	fmt.Printf("  Records: %d\n", len(records))
	fmt.Printf("  Clean:   %s\n", color.GreenString("%d", len(records)-flagged))
	fmt.Printf("  Flagged: %s\n", color.RedString("%d", flagged))

	if flagged > 0 {
		os.Exit(1)
	}
}

// describe builds the one-line identity shown next to each verdict.
func describe(rec models.Record) string {
	name := rec.Informant
	if name == "" {
		name = "(sin informant)"
	}

	when := rec.TimestampRaw
	if when == "" {
		when = "(sin fecha)"
	}

	return fmt.Sprintf("%s | %s", textutil.Shorten(name, 40), when)
}

// loadConfig resolves the configuration: an explicit -config path, then the
// default location, then built-in defaults.
func loadConfig(path string) *config.Config {
	if path == "" {
		if _, statErr := os.Stat(defaultConfigPath); statErr == nil {
			path = defaultConfigPath
		}
	}

	if path == "" {
		return config.DefaultConfig()
	}

	fmt.Printf("⚙️  Loading configuration from: %s\n", path)

	cfg, err := config.LoadConfig(path)
	if err != nil {
		log.Printf("⚠️  Failed to load config: %v (proceeding with defaults)\n", err)
		return config.DefaultConfig()
	}

	return cfg
}

func printUsage() {
	fmt.Println("Usage: ./bin/validate [OPTIONS]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  ./bin/validate -file Incidencies.xml")
	fmt.Println("  ./bin/validate -file data/Incidencies.xml -quiet")
}
