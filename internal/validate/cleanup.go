package validate

import (
	"regexp"
	"strings"
)

// genericPhrases are the filler expressions removed surgically during the
// cleanup repair pass.
var genericPhrases = []string{
	"emotional journey",
	"deeply emotional",
	"thought-provoking experience",
	"explores themes of",
	"at its core",
	"ultimately",
	"serves as a reminder",
}

var (
	markdownRegexp      = regexp.MustCompile(`[*_]{1,2}([^*_]+)[*_]{1,2}`)
	parentheticalRegexp = regexp.MustCompile(`\([^)]*\)`)
	multiSpaceRegexp    = regexp.MustCompile(`\s{2,}`)
	spacePunctRegexp    = regexp.MustCompile(`\s+([.,])`)
	genericRegexps      = buildGenericRegexps()
)

func buildGenericRegexps() []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(genericPhrases))
	for _, phrase := range genericPhrases {
		res = append(res, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(phrase)+`\b`))
	}
	return res
}

// CleanupCritic deterministically repairs a flagged critic summary without
// regenerating it: markdown and quotes are stripped, parentheticals and
// known generic phrases removed, whitespace normalized. The caller
// re-validates the result exactly once; if it still fails, the summary
// stays flagged.
func CleanupCritic(text string) string {
	if text == "" {
		return ""
	}

	text = markdownRegexp.ReplaceAllString(text, "$1")
	text = strings.TrimSpace(text)
	text = strings.Trim(text, `"'`)
	text = parentheticalRegexp.ReplaceAllString(text, "")

	for _, re := range genericRegexps {
		text = re.ReplaceAllString(text, "")
	}

	text = multiSpaceRegexp.ReplaceAllString(text, " ")
	text = spacePunctRegexp.ReplaceAllString(text, "$1")

	return strings.TrimSpace(text)
}
