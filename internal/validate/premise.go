package validate

import (
	"fmt"
	"regexp"
	"strings"

	"cinecap/internal/core"
)

// abstractPatterns reject premises that drift into theme-speak or meta
// commentary instead of describing the movie literally.
var abstractPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(love|identity|meaning|journey|struggle of|explores)\b`),
	regexp.MustCompile(`\b(director|actor|hero|villain|team|group)\b`),
	regexp.MustCompile(`\b(symbolizes|represents|metaphor)\b`),
}

// premiseGenreKeywords are hard constraints: a premise for a movie in one of
// these genres must mention at least one of the genre's concrete keywords.
// Genres without an entry (or with an empty list) are unconstrained.
var premiseGenreKeywords = map[string][]string{
	"Science Fiction": {"space", "alien", "future", "technology", "planet", "ai", "machine"},
	"Action":          {"fight", "war", "battle", "mission", "threat", "conflict"},
	"Fantasy":         {"magic", "kingdom", "creature", "curse", "power"},
	"Drama":           {"family", "relationship", "life", "choice", "struggle"},
	"Comedy":          {},
}

// PremiseRules bounds the premise word count.
type PremiseRules struct {
	MinWords int
	MaxWords int
}

// DefaultPremiseRules returns the standard word-count window.
func DefaultPremiseRules() PremiseRules {
	return PremiseRules{MinWords: 8, MaxWords: 30}
}

// Premise checks whether a generated premise is concrete and genre-aligned.
// Abstract language is rejected before anything else, so a premise
// containing e.g. "journey" fails with abstract_or_meta_language regardless
// of length or genre fit.
func Premise(premise string, genres []core.Genre, rules PremiseRules) (bool, string) {
	text := strings.ToLower(premise)

	for _, pattern := range abstractPatterns {
		if pattern.MatchString(text) {
			return false, "abstract_or_meta_language"
		}
	}

	for _, g := range genres {
		keywords := premiseGenreKeywords[g.Name]
		if len(keywords) == 0 {
			continue
		}
		found := false
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				found = true
				break
			}
		}
		if !found {
			return false, fmt.Sprintf("missing_genre_keyword:%s", g.Name)
		}
	}

	wordCount := len(strings.Fields(premise))
	if wordCount < rules.MinWords || wordCount > rules.MaxWords {
		return false, "invalid_length"
	}

	return true, "pass"
}
