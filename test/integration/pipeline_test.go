package integration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"incidencies/internal/export"
	"incidencies/internal/feed"
	"incidencies/internal/normalize"
	"incidencies/internal/stats"
	"incidencies/internal/validate"
	"incidencies/pkg/metadata"
)

func TestReportFlow_FixedFeed(t *testing.T) {
	// Path to fixture
	fixturePath := filepath.Join("..", "fixtures", "feed.xml")

	// Read fixture
	data, err := os.ReadFile(fixturePath)
	if err != nil {
		t.Fatalf("Failed to read fixture: %v", err)
	}

	// 1. Ingestion (Simulating 'report' ingestion phase)
	records, err := feed.NewParser().Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(records) != 6 {
		t.Fatalf("Expected 6 records, got %d", len(records))
	}

	// 2. Normalization & Validation
	normalizer := normalize.NewNormalizer()
	validator := validate.NewValidator()

	items := make([]stats.Validated, 0, len(records))

	for _, raw := range records {
		rec := normalizer.Normalize(raw)
		items = append(items, stats.Validated{Record: rec, Verdict: validator.Validate(&rec)})
	}

	for i, wantValid := range []bool{true, true, false, false, false, false} {
		if items[i].Verdict.Valid != wantValid {
			t.Errorf("Expected record %d valid=%v, got %v (%v)", i, wantValid, items[i].Verdict.Valid, items[i].Verdict.Reasons)
		}
	}

	wantMissing := []string{validate.ReasonNoInformant, validate.ReasonBadTimestamp}
	if !reflect.DeepEqual(items[2].Verdict.Reasons, wantMissing) {
		t.Errorf("Expected reasons %v for record 2, got %v", wantMissing, items[2].Verdict.Reasons)
	}

	wantGibberish := []string{"desc gibberish"}
	if !reflect.DeepEqual(items[3].Verdict.Reasons, wantGibberish) {
		t.Errorf("Expected reasons %v for record 3, got %v", wantGibberish, items[3].Verdict.Reasons)
	}

	wantSpam := []string{
		"informant parece un email",
		"ubicacio parece un email",
		"desc parece un email",
		"valor repetido en campos (spam@spam.com) x4",
		validate.ReasonEmailSpam,
	}
	if !reflect.DeepEqual(items[4].Verdict.Reasons, wantSpam) {
		t.Errorf("Expected reasons %v for record 4, got %v", wantSpam, items[4].Verdict.Reasons)
	}

	// 3. Aggregation
	summary := stats.Summarize(items)

	if summary.Total != 6 || summary.Valid != 2 || summary.Invalid != 4 {
		t.Errorf("Expected totals 6/2/4, got %d/%d/%d", summary.Total, summary.Valid, summary.Invalid)
	}

	if got := summary.ByPriority.Get("Alta"); got != 2 {
		t.Errorf("Expected 2 Alta incidents, got %d", got)
	}

	if got := summary.ByLocation.Get(stats.UnknownLabel); got != 1 {
		t.Errorf("Expected 1 incident with unknown location, got %d", got)
	}

	latest := stats.LatestFirst(items)
	if latest[0].Record.Location != "spam@spam.com" {
		t.Errorf("Expected newest incident from the spam record, got location %q", latest[0].Record.Location)
	}

	// 4. Export (Simulating 'report' export phase)
	outPath := filepath.Join(t.TempDir(), "out", "feed.json")

	doc := export.Build(fixturePath, data, summary, items)
	if err := export.Write(doc, outPath, true); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	written, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("Failed to read export: %v", err)
	}

	var round export.Document
	if err := json.Unmarshal(written, &round); err != nil {
		t.Fatalf("Export is not valid JSON: %v", err)
	}

	if round.Meta.Total != 6 {
		t.Errorf("Expected exported total 6, got %d", round.Meta.Total)
	}

	if err := metadata.VerifyDigest(data, round.Meta.SourceSHA256); err != nil {
		t.Errorf("Expected source digest to verify, got %v", err)
	}

	if len(round.Incidents) != 6 {
		t.Fatalf("Expected 6 exported incidents, got %d", len(round.Incidents))
	}

	if round.Incidents[0].TimestampISO == nil || *round.Incidents[0].TimestampISO != "2024-01-12T09:30:00" {
		t.Errorf("Expected first incident timestamp 2024-01-12T09:30:00, got %v", round.Incidents[0].TimestampISO)
	}

	if round.Incidents[2].TimestampISO != nil {
		t.Errorf("Expected nil timestamp for the unparsed record, got %v", *round.Incidents[2].TimestampISO)
	}
}
