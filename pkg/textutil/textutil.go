// Package textutil provides display-width aware text helpers for console
// output: collapsing whitespace, shortening at word boundaries, wrapping and
// centering. Widths are terminal cell counts, not byte or rune counts, so
// accented and wide characters line up.
package textutil

import (
	"strings"

	"github.com/clipperhouse/uax29/v2/words"
	"github.com/mattn/go-runewidth"
)

// Ellipsis marks text cut by Shorten.
const Ellipsis = "…"

// NormalizeSpace collapses every run of whitespace to a single space and
// trims the ends.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Shorten collapses whitespace in s and, if the result is wider than width,
// drops trailing words until the text plus the ellipsis fits. A width too
// small for even the first word yields just the ellipsis.
func Shorten(s string, width int) string {
	s = NormalizeSpace(s)
	if runewidth.StringWidth(s) <= width {
		return s
	}

	budget := width - runewidth.StringWidth(Ellipsis)

	var b strings.Builder

	used := 0
	tokens := words.FromString(s)

	for tokens.Next() {
		token := tokens.Value()

		w := runewidth.StringWidth(token)
		if used+w > budget {
			break
		}

		b.WriteString(token)
		used += w
	}

	kept := strings.TrimRight(b.String(), " ")
	if kept == "" {
		return Ellipsis
	}

	return kept + Ellipsis
}

// Wrap breaks s into lines no wider than width, splitting at word
// boundaries. Words wider than a whole line are hard-split. The result is
// never empty; blank input yields a single empty line.
func Wrap(s string, width int) []string {
	s = NormalizeSpace(s)
	if s == "" || width <= 0 {
		return []string{s}
	}

	var (
		lines []string
		line  strings.Builder
		used  int
	)

	flush := func() {
		lines = append(lines, strings.TrimRight(line.String(), " "))
		line.Reset()
		used = 0
	}

	tokens := words.FromString(s)
	for tokens.Next() {
		token := tokens.Value()

		w := runewidth.StringWidth(token)
		if used+w > width && used > 0 {
			flush()

			if token == " " {
				continue
			}
		}

		// A single word wider than the whole line gets cut into pieces.
		for runewidth.StringWidth(token) > width {
			head := runewidth.Truncate(token, width, "")
			lines = append(lines, head)
			token = strings.TrimPrefix(token, head)
		}

		line.WriteString(token)
		used += runewidth.StringWidth(token)
	}

	if line.Len() > 0 || len(lines) == 0 {
		flush()
	}

	return lines
}

// Center pads s with spaces on both sides to the given display width.
// Strings already at or over the width come back unchanged.
func Center(s string, width int) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}

	left := pad / 2

	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}
