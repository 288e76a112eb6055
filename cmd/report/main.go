// Package main provides the unified report command that combines feed parsing,
// validation, the console report and the JSON export.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/fatih/color"

	"incidencies/internal/config"
	"incidencies/internal/export"
	"incidencies/internal/feed"
	"incidencies/internal/logger"
	"incidencies/internal/normalize"
	"incidencies/internal/report"
	"incidencies/internal/stats"
	"incidencies/internal/validate"
)

// defaultConfigPath is probed when -config is not given.
const defaultConfigPath = "configs/incidencies.yaml"

func main() {
	// 1. Define Command-Line Flags
	// ----------------------------
	configFile := flag.String("config", "", "Path to YAML configuration file")
	feedFile := flag.String("file", "", "Path to the incident XML feed (overrides config)")
	jsonPath := flag.String("json", "", "Path for the JSON export (default: feed path with .json extension)")
	noExport := flag.Bool("no-export", false, "Skip the JSON export")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	help := flag.Bool("help", false, "Show usage information")

	flag.Parse()

	if *help {
		printUsage()
		os.Exit(0)
	}

	// 2. Load Configuration
	// ---------------------
	cfg := loadConfig(*configFile)

	lg := logger.NewLogger(cfg.Logging.Level)

	if *noColor || cfg.Report.NoColor {
		color.NoColor = true
	}

	feedPath := cfg.Input.Path
	if *feedFile != "" {
		feedPath = *feedFile
	}

	lg.Info("🚀 Starting incident report")

	color.Cyan("Usando archivo XML: %s", feedPath)

	// 3. Ingestion
	// ------------
	startTime := time.Now()

	data, err := os.ReadFile(feedPath)
	if err != nil {
		lg.Error(fmt.Sprintf("❌ Read failed: %v", err))
		os.Exit(1)
	}

	records, err := feed.NewParser().Parse(data)
	if err != nil {
		lg.Error(fmt.Sprintf("❌ Parse failed: %v", err))
		os.Exit(1)
	}

	if len(records) == 0 {
		lg.Warn(fmt.Sprintf("⚠️  No records found in %s", feedPath))
	}

	lg.Info(fmt.Sprintf("✅ Parsed %d records (%d bytes) in %v", len(records), len(data), time.Since(startTime)))

	// 4. Normalization & Validation
	// -----------------------------
	normalizer := normalize.NewNormalizerWithFormats(cfg.Timestamps.Formats)
	validator := validate.NewValidatorWithThresholds(cfg.Validation.Thresholds())

	items := make([]stats.Validated, 0, len(records))

	for _, raw := range records {
		rec := normalizer.Normalize(raw)
		items = append(items, stats.Validated{Record: rec, Verdict: validator.Validate(&rec)})
	}

	summary := stats.Summarize(items)

	lg.Info(fmt.Sprintf("✅ Validated: %d clean, %d with problems", summary.Valid, summary.Invalid))

	// 5. Console Report
	// -----------------
	renderer := report.NewRenderer(os.Stdout, report.Options{
		SourcePath:   feedPath,
		TopTypes:     cfg.Report.TopTypes,
		TopLocations: cfg.Report.TopLocations,
		TopReasons:   cfg.Report.TopReasons,
		Latest:       cfg.Report.Latest,
	})
	renderer.Render(summary, items)

	// 6. JSON Export
	// --------------
	if *noExport || !cfg.Output.Enabled {
		lg.Info(fmt.Sprintf("✨ Done in %v (export skipped)", time.Since(startTime)))
		return
	}

	exportPath := cfg.Output.Path
	if *jsonPath != "" {
		exportPath = *jsonPath
	}

	if exportPath == "" {
		exportPath = export.DefaultPath(feedPath)
	}

	doc := export.Build(feedPath, data, summary, items)

	if err := export.Write(doc, exportPath, cfg.Output.PrettyPrint); err != nil {
		color.Red("Error escribiendo JSON: %v", err)
		os.Exit(1)
	}

	color.Green("JSON escrito en: %s", exportPath)

	lg.Info(fmt.Sprintf("✨ Done in %v", time.Since(startTime)))
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
	fmt.Println("Usage: ./bin/report [OPTIONS]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  ./bin/report -file Incidencies.xml")
	fmt.Println("  ./bin/report -file data/Incidencies.xml -json out/informe.json")
	fmt.Println("  ./bin/report -config configs/incidencies.yaml -no-color")
}
