// Package normalize turns raw feed records into records ready for
// validation: fields are whitespace-trimmed and the incident timestamp is
// parsed on a best-effort basis.
package normalize

import (
	"strings"
	"time"

	"incidencies/internal/models"
)

// DefaultTimestampFormats holds the layouts tried against each candidate
// string, most specific first. Day before month, single digits accepted,
// matching how the source form writes dates.
var DefaultTimestampFormats = []string{
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"2/1/2006",
}

// Normalizer cleans raw records and derives the parsed timestamp.
type Normalizer struct {
	formats []string
}

// NewNormalizer creates a normalizer with the default timestamp formats.
func NewNormalizer() *Normalizer {
	return NewNormalizerWithFormats(DefaultTimestampFormats)
}

// NewNormalizerWithFormats creates a normalizer that tries the given
// layouts in order.
func NewNormalizerWithFormats(formats []string) *Normalizer {
	return &Normalizer{formats: formats}
}

// Normalize trims every field and attempts the timestamp parse. It never
// fails: a record whose timestamp matches no layout simply comes back with
// Parsed nil, which the validator reports as a data-quality problem.
func (n *Normalizer) Normalize(raw models.RawRecord) models.Record {
	rec := models.Record{RawRecord: trimFields(raw)}
	rec.Parsed = n.parseTimestamp(rec.TimestampRaw, rec.Date, rec.Time)

	return rec
}

// NormalizeAll normalizes records in order, preserving positions.
func (n *Normalizer) NormalizeAll(raws []models.RawRecord) []models.Record {
	records := make([]models.Record, 0, len(raws))
	for _, raw := range raws {
		records = append(records, n.Normalize(raw))
	}

	return records
}

// parseTimestamp tries the raw timestamp column first, then the separate
// date column joined with the time column. The first layout that fully
// matches a candidate wins.
func (n *Normalizer) parseTimestamp(raw, date, clock string) *time.Time {
	var candidates []string

	if raw != "" {
		candidates = append(candidates, raw)
	}

	if date != "" {
		combined := date
		if clock != "" {
			combined += " " + clock
		}

		candidates = append(candidates, combined)
	}

	for _, candidate := range candidates {
		for _, layout := range n.formats {
			if t, err := time.Parse(layout, candidate); err == nil {
				return &t
			}
		}
	}

	return nil
}

func trimFields(raw models.RawRecord) models.RawRecord {
	raw.TimestampRaw = strings.TrimSpace(raw.TimestampRaw)
	raw.Date = strings.TrimSpace(raw.Date)
	raw.Time = strings.TrimSpace(raw.Time)
	raw.Email = strings.TrimSpace(raw.Email)
	raw.Informant = strings.TrimSpace(raw.Informant)
	raw.Location = strings.TrimSpace(raw.Location)
	raw.EquipmentType = strings.TrimSpace(raw.EquipmentType)
	raw.Model = strings.TrimSpace(raw.Model)
	raw.AssetCode = strings.TrimSpace(raw.AssetCode)
	raw.Description = strings.TrimSpace(raw.Description)
	raw.Priority = strings.TrimSpace(raw.Priority)
	raw.Operational = strings.TrimSpace(raw.Operational)

	return raw
}
