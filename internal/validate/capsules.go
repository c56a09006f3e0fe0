package validate

import (
	"regexp"
	"strings"

	"cinecap/internal/core"
)

// capsuleAIRegexp catches generated-sounding phrasing inside capsule text.
var capsuleAIRegexp = regexp.MustCompile(`\b(masterfully|intricately|explores|delves)\b`)

// CapsuleRules holds the capsule-set thresholds. The upstream validators
// disagree on the expected count (4 vs 5), so both the target and the
// tolerated minimum are configuration.
type CapsuleRules struct {
	Expected int // Target capsule count
	MinCount int // Smallest tolerated count
	MaxWords int // Per-capsule text cap
}

// DefaultCapsuleRules returns the standard capsule thresholds.
func DefaultCapsuleRules() CapsuleRules {
	return CapsuleRules{Expected: 5, MinCount: 4, MaxWords: 18}
}

// Capsules validates a generated emotional capsule set against the axes
// selected for the movie: count window, axis membership, single-word
// emotion, text length, no AI-sounding phrasing, no duplicate emotions.
func Capsules(capsules []core.Capsule, axes []string, rules CapsuleRules) (bool, string) {
	if len(capsules) == 0 {
		return false, "no_capsules"
	}
	if len(capsules) < rules.MinCount {
		return false, "too_few_capsules"
	}
	if len(capsules) > rules.Expected {
		return false, "too_many_capsules"
	}

	allowed := make(map[string]bool, len(axes))
	for _, axis := range axes {
		allowed[axis] = true
	}

	seenEmotions := make(map[string]bool, len(capsules))

	for _, c := range capsules {
		if c.Axis == "" || c.Emotion == "" || strings.TrimSpace(c.Text) == "" {
			return false, "invalid_structure"
		}
		if !allowed[c.Axis] {
			return false, "invalid_axis"
		}
		if len(strings.Fields(c.Emotion)) != 1 {
			return false, "invalid_emotion"
		}
		if len(strings.Fields(c.Text)) > rules.MaxWords {
			return false, "text_too_long"
		}
		if capsuleAIRegexp.MatchString(strings.ToLower(c.Text)) {
			return false, "ai_language"
		}

		emotion := strings.ToLower(c.Emotion)
		if seenEmotions[emotion] {
			return false, "duplicate_emotion"
		}
		seenEmotions[emotion] = true
	}

	return true, "pass"
}
