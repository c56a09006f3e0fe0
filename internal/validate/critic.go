package validate

import (
	"fmt"
	"regexp"
	"strings"
)

// criticBannedWords are critic-jargon tells; one occurrence fails the
// summary outright.
var criticBannedWords = []string{
	"masterfully", "intricately", "explores", "examines", "delves",
	"narrative", "cinematography", "themes", "symbolizes",
}

// audiencePhrases — at least one must appear so the summary speaks to how
// the movie lands on viewers, not what it is "about".
var audiencePhrases = []string{
	"viewers", "audience", "people", "you feel", "it feels",
}

var (
	criticAbstractRegexp = regexp.MustCompile(`\b(identity|tension|duality|conflict)\b`)
	bulletRegexp         = regexp.MustCompile(`(?m)^\s*[-*•]`)
)

// CriticRules holds the hard-validator thresholds.
type CriticRules struct {
	MinWords int
}

// DefaultCriticRules returns the standard minimum length.
func DefaultCriticRules() CriticRules {
	return CriticRules{MinWords: 60}
}

// Critic checks whether a critic summary sounds human and experiential:
// long enough, free of critic jargon and academic abstractions, written
// from the audience's perspective, and formatted as one plain paragraph.
func Critic(text string, rules CriticRules) (bool, string) {
	if strings.TrimSpace(text) == "" || len(strings.Fields(text)) < rules.MinWords {
		return false, "too_short"
	}

	lowered := strings.ToLower(text)

	for _, word := range criticBannedWords {
		if strings.Contains(lowered, word) {
			return false, fmt.Sprintf("banned_word:%s", word)
		}
	}

	hasAudience := false
	for _, phrase := range audiencePhrases {
		if strings.Contains(lowered, phrase) {
			hasAudience = true
			break
		}
	}
	if !hasAudience {
		return false, "no_audience_perspective"
	}

	if criticAbstractRegexp.MatchString(lowered) {
		return false, "abstract_language"
	}

	if strings.Contains(text, "\n") || bulletRegexp.MatchString(text) {
		return false, "bad_formatting"
	}

	return true, "pass"
}
