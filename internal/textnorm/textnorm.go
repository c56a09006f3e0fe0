package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	reHTML       = regexp.MustCompile(`<[^>]+>`)
	reWhitespace = regexp.MustCompile(`\s+`)
	// C0 and C1 control characters, minus tab/newline/carriage return which
	// the whitespace collapse handles anyway.
	reControlChars = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f\x7f-\x{9f}]`)
)

// Clean normalizes free text for embedding and comparison: Unicode NFKD
// normalization, control character stripping, HTML-like tags collapsed to a
// space, whitespace runs collapsed to one space, trimmed. Empty input yields
// an empty string. Clean is pure and idempotent.
func Clean(text string) string {
	if text == "" {
		return ""
	}

	t := norm.NFKD.String(text)
	t = reControlChars.ReplaceAllString(t, "")
	t = reHTML.ReplaceAllString(t, " ")
	t = reWhitespace.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}

// CleanPrintable is the gentler variant used on catalog metadata (titles,
// overviews): NFKC normalization and removal of non-printable runes, keeping
// composed characters intact so titles like "WALL·E" survive.
func CleanPrintable(text string) string {
	if text == "" {
		return ""
	}

	t := norm.NFKC.String(text)
	var b strings.Builder
	b.Grow(len(t))
	for _, r := range t {
		if unicode.IsPrint(r) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
