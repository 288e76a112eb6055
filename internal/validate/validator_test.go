package validate

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"incidencies/internal/models"
)

// goodRecord returns a record that passes the whole battery.
func goodRecord() models.Record {
	parsed := time.Date(2024, time.March, 15, 14, 30, 0, 0, time.UTC)

	return models.Record{
		RawRecord: models.RawRecord{
			TimestampRaw:  "15/03/2024 14:30:00",
			Email:         "anna.puig@escola.cat",
			Informant:     "Anna Puig",
			Location:      "Aula 12",
			EquipmentType: "Projector",
			Model:         "Epson EB-X41",
			AssetCode:     "SACE-0231",
			Description:   "El projector no encén, la llum taronja parpelleja",
			Priority:      "Alta",
			Operational:   "No",
		},
		Parsed: &parsed,
	}
}

func TestValidateGoodRecord(t *testing.T) {
	v := NewValidator()

	rec := goodRecord()
	verdict := v.Validate(&rec)

	if !verdict.Valid {
		t.Fatalf("expected valid record, got reasons %v", verdict.Reasons)
	}

	if len(verdict.Reasons) != 0 {
		t.Errorf("valid record must carry no reasons, got %v", verdict.Reasons)
	}
}

func TestValidateEmptyRecord(t *testing.T) {
	v := NewValidator()

	verdict := v.Validate(&models.Record{})

	if verdict.Valid {
		t.Fatal("empty record must be invalid")
	}

	expected := []string{
		ReasonNoInformant,
		ReasonNoLocation,
		ReasonNoDescription,
		ReasonBadTimestamp,
	}

	if !reflect.DeepEqual(verdict.Reasons, expected) {
		t.Errorf("reasons = %v, want %v", verdict.Reasons, expected)
	}
}

func TestValidateWhitespaceCountsAsMissing(t *testing.T) {
	v := NewValidator()

	rec := goodRecord()
	rec.Informant = "   "

	verdict := v.Validate(&rec)

	if verdict.Valid {
		t.Fatal("whitespace-only informant must be invalid")
	}

	if !reflect.DeepEqual(verdict.Reasons, []string{ReasonNoInformant}) {
		t.Errorf("reasons = %v, want only %q", verdict.Reasons, ReasonNoInformant)
	}
}

func TestValidateEmailShapedFields(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(r *models.Record)
		expected string
	}{
		{
			name:     "informant is an email",
			mutate:   func(r *models.Record) { r.Informant = "anna.puig@escola.cat" },
			expected: "informant parece un email",
		},
		{
			name:     "location contains an email",
			mutate:   func(r *models.Record) { r.Location = "aula 3, aviseu a pere@escola.cat" },
			expected: "ubicacio parece un email",
		},
		{
			name:     "description contains an email",
			mutate:   func(r *models.Record) { r.Description = "escriviu a suport@escola.cat quan pugueu" },
			expected: "desc parece un email",
		},
	}

	v := NewValidator()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := goodRecord()
			tt.mutate(&rec)

			verdict := v.Validate(&rec)

			if verdict.Valid {
				t.Fatal("expected invalid record")
			}

			if !reflect.DeepEqual(verdict.Reasons, []string{tt.expected}) {
				t.Errorf("reasons = %v, want only %q", verdict.Reasons, tt.expected)
			}
		})
	}
}

func TestValidateGibberishFields(t *testing.T) {
	v := NewValidator()

	rec := goodRecord()
	rec.Description = "sdfghjklmn"

	verdict := v.Validate(&rec)

	if !reflect.DeepEqual(verdict.Reasons, []string{"desc gibberish"}) {
		t.Errorf("reasons = %v, want only desc gibberish", verdict.Reasons)
	}
}

func TestValidateRepeatedValue(t *testing.T) {
	v := NewValidator()

	rec := goodRecord()
	rec.Informant = "Aula 3"
	rec.Location = "Aula 3"
	rec.EquipmentType = "Aula 3"

	verdict := v.Validate(&rec)

	expected := []string{"valor repetido en campos (Aula 3) x3"}
	if !reflect.DeepEqual(verdict.Reasons, expected) {
		t.Errorf("reasons = %v, want %v", verdict.Reasons, expected)
	}
}

func TestValidateRepeatedValueTruncatesSample(t *testing.T) {
	v := NewValidator()

	long := strings.Repeat("a", 50)

	rec := goodRecord()
	rec.Informant = long
	rec.Location = long
	rec.Description = long

	verdict := v.Validate(&rec)

	want := "valor repetido en campos (" + strings.Repeat("a", 37) + "...) x3"

	found := false

	for _, reason := range verdict.Reasons {
		if reason == want {
			found = true
		}
	}

	if !found {
		t.Errorf("reasons = %v, want to contain %q", verdict.Reasons, want)
	}
}

func TestValidateEmailEverywhere(t *testing.T) {
	v := NewValidator()

	rec := goodRecord()
	rec.Email = "j@e.cat"
	rec.Informant = "j@e.cat"
	rec.Description = "j@e.cat"

	verdict := v.Validate(&rec)

	expected := []string{
		"informant parece un email",
		"desc parece un email",
		"valor repetido en campos (j@e.cat) x3",
		ReasonEmailSpam,
	}

	if !reflect.DeepEqual(verdict.Reasons, expected) {
		t.Errorf("reasons = %v, want %v", verdict.Reasons, expected)
	}
}

func TestValidateShortDescription(t *testing.T) {
	tests := []struct {
		name     string
		desc     string
		expected []string
	}{
		{
			name:     "short gibberish flagged twice",
			desc:     "zzzz",
			expected: []string{"desc gibberish", ReasonShortDesc},
		},
		{
			name:     "short but meaningful passes",
			desc:     "roto",
			expected: nil,
		},
		{
			name:     "long gibberish skips the short rule",
			desc:     "zzzzzzzzzzzz",
			expected: []string{"desc gibberish"},
		},
	}

	v := NewValidator()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := goodRecord()
			rec.Description = tt.desc

			verdict := v.Validate(&rec)

			if !reflect.DeepEqual(verdict.Reasons, tt.expected) {
				t.Errorf("reasons = %v, want %v", verdict.Reasons, tt.expected)
			}
		})
	}
}

func TestValidateIsDeterministic(t *testing.T) {
	v := NewValidator()

	rec := models.Record{
		RawRecord: models.RawRecord{
			Email:       "x@y.zz",
			Informant:   "x@y.zz",
			Location:    "x@y.zz",
			Description: "qq",
		},
	}

	first := v.Validate(&rec)
	second := v.Validate(&rec)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("verdicts differ between runs: %v vs %v", first, second)
	}

	if first.Valid {
		t.Fatal("expected invalid record")
	}
}

func TestValidateAllPreservesOrder(t *testing.T) {
	v := NewValidator()

	records := []models.Record{goodRecord(), {}, goodRecord()}

	verdicts := v.ValidateAll(records)

	if len(verdicts) != 3 {
		t.Fatalf("expected 3 verdicts, got %d", len(verdicts))
	}

	if !verdicts[0].Valid || verdicts[1].Valid || !verdicts[2].Valid {
		t.Errorf("verdict pattern wrong: %v", verdicts)
	}
}
