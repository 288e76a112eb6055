// Package export serializes one dataset pass into the JSON document
// consumed by downstream tooling.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"incidencies/internal/models"
	"incidencies/internal/stats"
	"incidencies/pkg/metadata"
)

// Document is the top-level export payload. The key names are an
// interchange contract with the notebooks that read these files and must
// not change.
type Document struct {
	Meta      Meta       `json:"meta"`
	Summary   Summary    `json:"summary"`
	Incidents []Incident `json:"incidencias"`
}

// Meta identifies one run and its input file.
type Meta struct {
	RunID        string `json:"run_id"`
	SourceFile   string `json:"source_file"`
	SourceSHA256 string `json:"source_sha256"`
	Total        int    `json:"total"`
	GeneratedAt  string `json:"generated_at"`
}

// Summary mirrors the console report's aggregates.
type Summary struct {
	ByPriority map[string]int    `json:"by_priority"`
	ByType     map[string]int    `json:"by_type"`
	ByLocation map[string]int    `json:"by_location"`
	Funciona   map[string]int    `json:"funciona"`
	Validation ValidationSummary `json:"validation"`
}

// ValidationSummary aggregates the verdicts across the dataset.
type ValidationSummary struct {
	Valid          int            `json:"valid"`
	Invalid        int            `json:"invalid"`
	InvalidReasons map[string]int `json:"invalid_reasons"`
}

// Incident is one exported record: the raw fields plus a positional id,
// the parsed timestamp and the verdict. TimestampISO is null when no
// timestamp could be parsed; InvalidReasons is always an array.
type Incident struct {
	ID int `json:"id"`
	models.RawRecord
	TimestampISO   *string  `json:"timestamp_iso"`
	IsValid        bool     `json:"is_valid"`
	InvalidReasons []string `json:"invalid_reasons"`
}

// Build assembles the export document for one dataset pass. Each run gets
// a fresh id; the source bytes are fingerprinted so a reader can tell
// which exact input produced the export.
func Build(sourceFile string, sourceData []byte, summary *stats.Summary, items []stats.Validated) *Document {
	stamp := metadata.NewStamp(sourceFile, sourceData)

	doc := &Document{
		Meta: Meta{
			RunID:        stamp.RunID,
			SourceFile:   stamp.SourceFile,
			SourceSHA256: stamp.SourceSHA256,
			Total:        summary.Total,
			GeneratedAt:  stamp.GeneratedAt.Format(time.RFC3339),
		},
		Summary: Summary{
			ByPriority: summary.ByPriority.Map(),
			ByType:     summary.ByType.Map(),
			ByLocation: summary.ByLocation.Map(),
			Funciona:   summary.ByOperational.Map(),
			Validation: ValidationSummary{
				Valid:          summary.Valid,
				Invalid:        summary.Invalid,
				InvalidReasons: summary.Reasons.Map(),
			},
		},
		Incidents: make([]Incident, 0, len(items)),
	}

	for idx, item := range items {
		doc.Incidents = append(doc.Incidents, incident(idx, item))
	}

	return doc
}

// Write renders the document to path, creating parent directories as
// needed.
func Write(doc *Document, path string, pretty bool) error {
	var (
		data []byte
		err  error
	)

	if pretty {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal export: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	return nil
}

// DefaultPath derives the export path from the feed path: same directory
// and name, .json extension.
func DefaultPath(feedPath string) string {
	return strings.TrimSuffix(feedPath, filepath.Ext(feedPath)) + ".json"
}

func incident(id int, item stats.Validated) Incident {
	inc := Incident{
		ID:             id,
		RawRecord:      item.Record.RawRecord,
		IsValid:        item.Verdict.Valid,
		InvalidReasons: item.Verdict.Reasons,
	}

	if inc.InvalidReasons == nil {
		inc.InvalidReasons = []string{}
	}

	if item.Record.Parsed != nil {
		iso := item.Record.Parsed.Format("2006-01-02T15:04:05")
		inc.TimestampISO = &iso
	}

	return inc
}
