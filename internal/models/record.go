// Package models defines the record types shared by the feed reader, the
// normalizer and the validator.
package models

import "time"

// RawRecord is one incident exactly as extracted from the feed. Every field
// is free text entered by the informant; missing elements map to the empty
// string, never to a nil pointer, so downstream code only ever checks for
// emptiness. The JSON tags are the wire names used by the export document.
type RawRecord struct {
	TimestampRaw  string `json:"timestamp_raw"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Email         string `json:"email"`
	Informant     string `json:"informant"`
	Location      string `json:"ubicacio"`
	EquipmentType string `json:"tipus_equip"`
	Model         string `json:"model"`
	AssetCode     string `json:"codi"`
	Description   string `json:"desc"`
	Priority      string `json:"prioritat"`
	Operational   string `json:"funciona"`
}

// Record is a RawRecord after normalization: whitespace-trimmed fields plus
// the best-effort parsed timestamp. Parsed is nil when no candidate string
// matched any known format; that is an expected outcome, not an error.
type Record struct {
	RawRecord

	Parsed *time.Time `json:"-"`
}
