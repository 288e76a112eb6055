package validate

import (
	"fmt"
	"strings"

	"incidencies/internal/models"
)

// Reason strings for the fixed-outcome rules. These are stable identifiers
// as much as display text: the aggregated error ranking and the JSON export
// group by them, so they must not drift between runs.
const (
	ReasonNoInformant     = "sin informant"
	ReasonNoLocation      = "sin ubicació"
	ReasonNoDescription   = "sin descripció"
	ReasonBadTimestamp    = "timestamp no parseado"
	ReasonEmailSpam       = "email repetido en varios campos"
	ReasonShortDesc       = "descripción demasiado corta y no significativa"
	reasonEmailSuffix     = " parece un email"
	reasonGibberishSuffix = " gibberish"
)

// repeatedValueSample caps how much of a repeated value is echoed inside
// its reason string.
const repeatedValueSample = 40

// Verdict is the validation outcome for one record. Reasons is empty
// exactly when Valid is true, and its order follows the rule battery, so
// identical records always produce identical verdicts.
type Verdict struct {
	Valid   bool     `json:"is_valid"`
	Reasons []string `json:"invalid_reasons"`
}

// rule couples one predicate with the reason it contributes. Rules never
// short-circuit each other; every rule sees every record so a bad record
// collects every reason it earns.
type rule func(r *models.Record) (string, bool)

// textField names one free-text field checked by the per-field rules. The
// label is the short field name used inside reason strings.
type textField struct {
	label string
	value func(r *models.Record) string
}

// checkedFields are the free-text fields run through the email-shape and
// gibberish rules, in evaluation order.
var checkedFields = []textField{
	{label: "informant", value: func(r *models.Record) string { return r.Informant }},
	{label: "ubicacio", value: func(r *models.Record) string { return r.Location }},
	{label: "desc", value: func(r *models.Record) string { return r.Description }},
}

// Validator applies the rule battery to normalized records.
type Validator struct {
	thresholds Thresholds
	rules      []rule
}

// NewValidator builds a validator with the default thresholds.
func NewValidator() *Validator {
	return NewValidatorWithThresholds(DefaultThresholds())
}

// NewValidatorWithThresholds builds a validator with the given tuning.
func NewValidatorWithThresholds(t Thresholds) *Validator {
	v := &Validator{thresholds: t}

	v.rules = append(v.rules,
		missing(ReasonNoInformant, checkedFields[0].value),
		missing(ReasonNoLocation, checkedFields[1].value),
		missing(ReasonNoDescription, checkedFields[2].value),
		unparsedTimestamp(),
	)

	for _, f := range checkedFields {
		v.rules = append(v.rules, emailShaped(f))
	}

	for _, f := range checkedFields {
		v.rules = append(v.rules, gibberishField(t, f))
	}

	v.rules = append(v.rules,
		repeatedValue(t),
		emailEverywhere(t),
		shortNoiseDescription(t),
	)

	return v
}

// Validate runs the full battery against one record.
func (v *Validator) Validate(r *models.Record) Verdict {
	var reasons []string

	for _, check := range v.rules {
		if reason, failed := check(r); failed {
			reasons = append(reasons, reason)
		}
	}

	return Verdict{Valid: len(reasons) == 0, Reasons: reasons}
}

// ValidateAll validates records in order, preserving positions.
func (v *Validator) ValidateAll(records []models.Record) []Verdict {
	verdicts := make([]Verdict, 0, len(records))
	for i := range records {
		verdicts = append(verdicts, v.Validate(&records[i]))
	}

	return verdicts
}

func missing(reason string, value func(r *models.Record) string) rule {
	return func(r *models.Record) (string, bool) {
		return reason, strings.TrimSpace(value(r)) == ""
	}
}

func unparsedTimestamp() rule {
	return func(r *models.Record) (string, bool) {
		return ReasonBadTimestamp, r.Parsed == nil
	}
}

func emailShaped(f textField) rule {
	reason := f.label + reasonEmailSuffix

	return func(r *models.Record) (string, bool) {
		val := strings.TrimSpace(f.value(r))

		return reason, val != "" && LooksLikeEmail(val)
	}
}

func gibberishField(t Thresholds, f textField) rule {
	reason := f.label + reasonGibberishSuffix

	return func(r *models.Record) (string, bool) {
		val := strings.TrimSpace(f.value(r))

		return reason, val != "" && t.IsGibberish(val)
	}
}

// spamValues returns the fields compared for cross-field repetition, in the
// order that decides which repeated value gets reported first.
func spamValues(r *models.Record) []string {
	return []string{
		strings.TrimSpace(r.Email),
		strings.TrimSpace(r.Informant),
		strings.TrimSpace(r.Location),
		strings.TrimSpace(r.Description),
		strings.TrimSpace(r.EquipmentType),
	}
}

func repeatedValue(t Thresholds) rule {
	return func(r *models.Record) (string, bool) {
		counts := make(map[string]int)

		var order []string

		for _, val := range spamValues(r) {
			if val == "" {
				continue
			}

			if counts[val] == 0 {
				order = append(order, val)
			}

			counts[val]++
		}

		for _, val := range order {
			if counts[val] >= t.RepeatMin {
				reason := fmt.Sprintf("valor repetido en campos (%s) x%d", truncate(val, repeatedValueSample), counts[val])

				return reason, true
			}
		}

		return "", false
	}
}

func emailEverywhere(t Thresholds) rule {
	return func(r *models.Record) (string, bool) {
		email := strings.TrimSpace(r.Email)
		if email == "" {
			return "", false
		}

		same := 0

		for _, val := range spamValues(r) {
			if val == email {
				same++
			}
		}

		return ReasonEmailSpam, same >= t.RepeatMin
	}
}

func shortNoiseDescription(t Thresholds) rule {
	return func(r *models.Record) (string, bool) {
		desc := strings.TrimSpace(r.Description)
		if desc == "" || len([]rune(desc)) >= t.ShortDescLen {
			return "", false
		}

		return ReasonShortDesc, t.IsGibberish(desc)
	}
}

// truncate shortens a value for display inside a reason string, cutting by
// runes so multi-byte text is never split mid-character.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}

	return string(runes[:maxLen-3]) + "..."
}
