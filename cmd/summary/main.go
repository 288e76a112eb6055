// Package main provides the quick summary command for feeds whose schema is
// not known in advance: it guesses the interesting fields, filters implausible
// records and prints ranked counters plus a few example records.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"

	"incidencies/internal/feed"
	"incidencies/internal/stats"
)

const (
	// unknownKey labels records missing a field in the generic counters.
	unknownKey = "unknown"

	// counterTop caps every ranked counter section.
	counterTop = 10
)

func main() {
	// Define command-line flags
	feedFile := flag.String("file", "", "Path to the XML feed (default: incidencies.xml)")
	examples := flag.Int("examples", 5, "Number of example records to show")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	help := flag.Bool("help", false, "Show usage information")

	flag.Parse()

	if *help {
		printUsage()
		os.Exit(0)
	}

	if *noColor {
		color.NoColor = true
	}

	feedPath := *feedFile
	if feedPath == "" && flag.NArg() > 0 {
		feedPath = flag.Arg(0)
	}

	if feedPath == "" {
		feedPath = "incidencies.xml"
	}

	data, err := os.ReadFile(feedPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("❌ %v", err))
		os.Exit(1)
	}

	records, err := feed.ParseGeneric(data)
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("❌ %v", err))
		os.Exit(1)
	}

	if len(records) == 0 {
		fmt.Fprintln(os.Stderr, color.RedString("No records found in file %s", feedPath))
		return
	}

	kept, removed := feed.FilterGeneric(records, time.Now())

	byYear := stats.NewCounter()
	byType := stats.NewCounter()
	bySeverity := stats.NewCounter()
	byLocation := stats.NewCounter()

	for _, rec := range kept {
		if rec.Date != nil {
			byYear.Add(strconv.Itoa(rec.Date.Year()))
		} else {
			byYear.Add(unknownKey)
		}

		byType.Add(orUnknown(rec.Type))
		bySeverity.Add(orUnknown(rec.Severity))
		byLocation.Add(orUnknown(rec.Location))
	}

	title := color.New(color.FgCyan, color.Bold)
	heading := color.New(color.Bold)

	title.Println("Incidents summary")
	fmt.Printf(" Total parsed: %d\n", len(kept)+removed)
	fmt.Printf(" Valid: %s  Removed (filtered): %s\n\n",
		color.GreenString("%d", len(kept)),
		color.YellowString("%d", removed))

	printCounter(heading, "Incidents by year", byYear)
	printCounter(heading, "Incidents by type", byType)
	printCounter(heading, "Incidents by severity", bySeverity)
	printCounter(heading, "Top locations", byLocation)

	if *examples <= 0 {
		return
	}

	heading.Printf("Example records (first %d):\n", *examples)

	for i, rec := range kept {
		if i >= *examples {
			break
		}

		printExample(rec)
	}

	fmt.Println()
}

// printCounter prints the ranked top entries of one counter.
func printCounter(heading *color.Color, title string, counter *stats.Counter) {
	heading.Println(title)

	for i, entry := range counter.MostCommon(counterTop) {
		fmt.Printf(" %2d. %-20.20s  %s\n", i+1, entry.Key, color.GreenString("%d", entry.Count))
	}

	fmt.Println()
}

// printExample prints one record as a single line plus its description.
func printExample(rec feed.GenericRecord) {
	date := unknownKey
	if rec.Date != nil {
		date = rec.Date.Format("2006-01-02")
	}

	recType := rec.Type
	if recType == "" {
		recType = "no-type"
	}

	location := rec.Location
	if location == "" {
		location = "no-location"
	}

	id := rec.ID
	if id == "" {
		id = "-"
	}

	fmt.Printf(" - %s | %s | %s | %s\n", color.YellowString(date), color.CyanString(recType), location, id)

	if rec.Description != "" {
		fmt.Printf("    %s\n", clip(rec.Description, 140))
	}
}

// clip hard-truncates long descriptions, keeping the line scannable.
func clip(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}

	return string(runes[:limit-3]) + "..."
}

func orUnknown(s string) string {
	if s == "" {
		return unknownKey
	}

	return s
}

func printUsage() {
	fmt.Println("Usage: ./bin/summary [OPTIONS] [FILE]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  ./bin/summary data/incidents.xml")
	fmt.Println("  ./bin/summary -file data/incidents.xml -examples 3")
	fmt.Println("  ./bin/summary -no-color data/incidents.xml")
}
