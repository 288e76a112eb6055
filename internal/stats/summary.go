package stats

import (
	"sort"
	"strings"

	"incidencies/internal/models"
	"incidencies/internal/validate"
)

// UnknownLabel buckets records whose categorical field is empty.
const UnknownLabel = "Desconegut"

// Validated pairs one normalized record with its verdict.
type Validated struct {
	Record  models.Record
	Verdict validate.Verdict
}

// Summary holds the aggregate view of one dataset pass: verdict totals,
// categorical distributions and the ranking of validation failures.
type Summary struct {
	Total   int
	Valid   int
	Invalid int

	ByPriority    *Counter
	ByType        *Counter
	ByLocation    *Counter
	ByOperational *Counter
	Reasons       *Counter
}

// Summarize tallies verdicts and categorical counts in input order, so the
// counters' insertion order mirrors the dataset.
func Summarize(items []Validated) *Summary {
	s := &Summary{
		ByPriority:    NewCounter(),
		ByType:        NewCounter(),
		ByLocation:    NewCounter(),
		ByOperational: NewCounter(),
		Reasons:       NewCounter(),
	}

	for _, item := range items {
		s.Total++

		if item.Verdict.Valid {
			s.Valid++
		} else {
			s.Invalid++
		}

		s.ByPriority.Add(orUnknown(item.Record.Priority))
		s.ByType.Add(orUnknown(item.Record.EquipmentType))
		s.ByLocation.Add(orUnknown(item.Record.Location))
		s.ByOperational.Add(orUnknown(item.Record.Operational))

		for _, reason := range item.Verdict.Reasons {
			s.Reasons.Add(reason)
		}
	}

	return s
}

// HighPriority returns how many incidents read as high priority, matching
// "alta" or "high" case-insensitively inside the priority label.
func (s *Summary) HighPriority() int {
	total := 0

	for _, entry := range s.ByPriority.Items() {
		label := strings.ToLower(entry.Key)
		if strings.Contains(label, "alta") || strings.Contains(label, "high") {
			total += entry.Count
		}
	}

	return total
}

// LatestFirst returns a copy of items ordered newest first by parsed
// timestamp. Records without a parsed timestamp sort last; the sort is
// stable, so equal timestamps keep their dataset order.
func LatestFirst(items []Validated) []Validated {
	out := make([]Validated, len(items))
	copy(out, items)

	sort.SliceStable(out, func(i, j int) bool {
		ti, tj := out[i].Record.Parsed, out[j].Record.Parsed

		switch {
		case ti == nil:
			return false
		case tj == nil:
			return true
		default:
			return ti.After(*tj)
		}
	})

	return out
}

func orUnknown(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return UnknownLabel
	}

	return value
}
