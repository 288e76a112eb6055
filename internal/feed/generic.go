package feed

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"

	"incidencies/pkg/textutil"
)

// GenericRecord is one record from a feed whose schema is not known in
// advance. The typed fields are guessed from common element names; Raw
// keeps the full flattened element map for anything the guess misses.
type GenericRecord struct {
	ID          string
	Date        *time.Time
	Type        string
	Severity    string
	Location    string
	Description string
	Raw         map[string]string
}

// GenericDateFormats are tried in order against guessed date fields.
// Single-digit days and months are accepted everywhere.
var GenericDateFormats = []string{
	"2006-1-2",
	"2/1/2006",
	"2006/1/2",
	"2-1-2006",
	"2006-1-2T15:04:05",
}

// Plausibility bounds for generic-mode dates. Years outside them are
// treated as typos rather than data.
const (
	minPlausibleYear = 1900
	futureYearSlack  = 2
)

type genericField struct {
	XMLName xml.Name
	Text    string `xml:",chardata"`
}

type genericEntry struct {
	XMLName  xml.Name
	Text     string         `xml:",chardata"`
	Children []genericField `xml:",any"`
}

type genericDoc struct {
	Entries []genericEntry `xml:",any"`
}

// ParseGeneric decodes feed bytes with no schema assumptions: every child
// element of the document root becomes one record, its child elements
// flattened into a lowercased tag-to-text map with namespaces stripped.
func ParseGeneric(data []byte) ([]GenericRecord, error) {
	var doc genericDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse feed XML: %w", err)
	}

	records := make([]GenericRecord, 0, len(doc.Entries))
	for _, entry := range doc.Entries {
		records = append(records, entry.record())
	}

	return records, nil
}

// ParseLooseDate parses a date in any of the generic formats. A bare
// four-digit year resolves to January 1st of that year. Unparseable input
// yields nil.
func ParseLooseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	for _, layout := range GenericDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}

	if len(s) == 4 && isDigits(s) {
		year, _ := strconv.Atoi(s)
		t := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)

		return &t
	}

	return nil
}

// FilterGeneric drops records that carry no identity at all (no id, no
// parsed date, no type) and records whose year falls outside the plausible
// range relative to now. It returns the kept records plus how many were
// removed.
func FilterGeneric(records []GenericRecord, now time.Time) ([]GenericRecord, int) {
	kept := make([]GenericRecord, 0, len(records))
	removed := 0

	maxYear := now.Year() + futureYearSlack

	for _, rec := range records {
		if rec.ID == "" && rec.Date == nil && rec.Type == "" {
			removed++

			continue
		}

		if rec.Date != nil && (rec.Date.Year() > maxYear || rec.Date.Year() < minPlausibleYear) {
			removed++

			continue
		}

		kept = append(kept, rec)
	}

	return kept, removed
}

func (e genericEntry) record() GenericRecord {
	raw := make(map[string]string, len(e.Children))

	for _, child := range e.Children {
		key := strings.ToLower(child.XMLName.Local)
		if text := textutil.NormalizeSpace(child.Text); text != "" {
			raw[key] = text
		}
	}

	// Flat feeds put the value straight in the entry element.
	if len(e.Children) == 0 {
		if text := textutil.NormalizeSpace(e.Text); text != "" {
			raw[strings.ToLower(e.XMLName.Local)] = text
		}
	}

	return GenericRecord{
		ID:          firstOf(raw, "id", "identificador", "incidenciaid", "codigo"),
		Date:        ParseLooseDate(firstOf(raw, "date", "data", "fecha", "dia")),
		Type:        firstOf(raw, "type", "tipus", "categoria", "categoria_incidencia", "clasificacion"),
		Severity:    firstOf(raw, "severity", "gravedad", "nivel", "prioritat"),
		Location:    firstOf(raw, "location", "municipi", "place", "localitat"),
		Description: firstOf(raw, "description", "descripcio", "detall"),
		Raw:         raw,
	}
}

// firstOf returns the first non-empty value among the given keys.
func firstOf(raw map[string]string, keys ...string) string {
	for _, key := range keys {
		if value := raw[key]; value != "" {
			return value
		}
	}

	return ""
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
