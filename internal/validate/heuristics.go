// Package validate applies the data-quality rule battery to normalized
// incident records. Every rule contributes a human-readable reason in
// Spanish, the language the on-site technicians read the reports in.
package validate

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// emailPattern matches an email-shaped substring anywhere in a value.
	// It is a shape test, not RFC validation.
	emailPattern = regexp.MustCompile(`[^@\s]+@[^@\s]+\.[^@\s]+`)

	// consonantPattern matches values made of ASCII consonants only.
	consonantPattern = regexp.MustCompile(`(?i)^[bcdfghjklmnpqrstvwxyz]+$`)
)

// vowels are the characters counted toward the vowel ratio, covering the
// plain and accented vowels of the languages the form is filled in with.
const vowels = "aeiouáéíóúàèìòù"

// Thresholds holds the tunable constants behind the text heuristics. The
// defaults reproduce the tuning that worked on the historical feed; they
// are exposed so a different dataset or language can adjust them without
// touching the rules.
type Thresholds struct {
	// GibberishMinLen is the minimum rune count before the ratio checks
	// apply. Shorter values are too ambiguous to judge.
	GibberishMinLen int

	// MinVowelRatio flags long values whose vowel share among letters
	// falls below it.
	MinVowelRatio float64

	// MaxSymbolFraction flags long values where more than this share of
	// runes is neither letter nor digit.
	MaxSymbolFraction float64

	// ConsonantRunMin flags values of at least this many runes made up
	// exclusively of ASCII consonants, regardless of the other checks.
	ConsonantRunMin int

	// RepeatMin is how many fields must share one value, or echo the
	// email, before a record counts as copy-paste spam.
	RepeatMin int

	// ShortDescLen is the rune count under which a description gets the
	// extra gibberish check.
	ShortDescLen int
}

// DefaultThresholds returns the historical tuning.
func DefaultThresholds() Thresholds {
	return Thresholds{
		GibberishMinLen:   6,
		MinVowelRatio:     0.15,
		MaxSymbolFraction: 0.4,
		ConsonantRunMin:   4,
		RepeatMin:         3,
		ShortDescLen:      10,
	}
}

// LooksLikeEmail reports whether s contains an email-shaped substring
// (something@domain.tld).
func LooksLikeEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}

	return emailPattern.MatchString(s)
}

// IsGibberish classifies s as keyboard noise. Long values fail on a low
// vowel ratio or on symbol overload; values of any length fail when they
// are one unbroken run of consonants. Empty input is never gibberish.
func (t Thresholds) IsGibberish(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}

	runes := []rune(s)

	if len(runes) >= t.GibberishMinLen {
		letters, vowelCount, symbols := 0, 0, 0

		for _, r := range runes {
			switch {
			case unicode.IsLetter(r):
				letters++

				if strings.ContainsRune(vowels, unicode.ToLower(r)) {
					vowelCount++
				}
			case !unicode.IsNumber(r):
				symbols++
			}
		}

		if letters > 0 && float64(vowelCount)/float64(letters) < t.MinVowelRatio {
			return true
		}

		if float64(symbols)/float64(max(1, len(runes))) > t.MaxSymbolFraction {
			return true
		}
	}

	return len(runes) >= t.ConsonantRunMin && consonantPattern.MatchString(s)
}
