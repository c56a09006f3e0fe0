package validate

import (
	"regexp"
	"strings"
)

// abstractPhrases contribute to the soft validator's abstraction count; two
// or more hits reject the summary.
var abstractPhrases = []string{
	"this film explores",
	"themes of life",
	"human condition",
	"journey of self discovery",
	"explores themes of",
}

// conflictMarkers — at least one must appear so the summary implies some
// kind of tension instead of pure mood description.
var conflictMarkers = map[string]bool{
	"struggle": true, "conflict": true, "threat": true, "pressure": true,
	"collapse": true, "choice": true, "risk": true, "cost": true, "loss": true,
}

var softTokenRegexp = regexp.MustCompile(`[a-z]{4,}`)

// softStopwords are excluded from the premise-grounding overlap check.
var softStopwords = map[string]bool{
	"about": true, "their": true, "there": true, "which": true,
}

// CriticSoft is the lenient second chance applied when the strict critic
// validator rejects: a wider length window, tolerance for one abstract
// phrase, and a grounding check that the summary actually shares vocabulary
// with the premise. A pass here yields the soft_pass verdict, not pass.
func CriticSoft(summary, premise string) (bool, string) {
	if strings.TrimSpace(summary) == "" || strings.TrimSpace(premise) == "" {
		return false, "empty"
	}

	words := strings.Fields(summary)
	if len(words) < 70 || len(words) > 150 {
		return false, "length_out_of_bounds"
	}

	summaryLower := strings.ToLower(summary)
	premiseLower := strings.ToLower(premise)

	abstractHits := 0
	for _, phrase := range abstractPhrases {
		if strings.Contains(summaryLower, phrase) {
			abstractHits++
		}
	}
	if abstractHits >= 2 {
		return false, "too_abstract"
	}

	premiseTokens := make(map[string]bool)
	for _, tok := range softTokenRegexp.FindAllString(premiseLower, -1) {
		if !softStopwords[tok] {
			premiseTokens[tok] = true
		}
	}

	summaryTokens := make(map[string]bool)
	for _, tok := range softTokenRegexp.FindAllString(summaryLower, -1) {
		summaryTokens[tok] = true
	}

	overlap := 0
	for tok := range premiseTokens {
		if summaryTokens[tok] {
			overlap++
		}
	}
	if overlap < 2 {
		return false, "weak_premise_grounding"
	}

	hasConflict := false
	for tok := range summaryTokens {
		if conflictMarkers[tok] {
			hasConflict = true
			break
		}
	}
	if !hasConflict {
		return false, "no_conflict_signal"
	}

	return true, "soft_pass"
}
