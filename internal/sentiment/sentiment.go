package sentiment

import (
	"strings"

	"cinecap/internal/core"
)

// Lexicons for the rule-based model. Matching is on lowercased whole words;
// a single negation token immediately before a hit flips its contribution.
var (
	positiveWords = map[string]bool{
		"good": true, "great": true, "amazing": true, "love": true,
		"loved": true, "excellent": true, "best": true, "enjoy": true,
		"enjoyed": true, "funny": true, "beautiful": true, "powerful": true,
		"brilliant": true, "stunning": true, "perfect": true,
	}

	negativeWords = map[string]bool{
		"bad": true, "worst": true, "hate": true, "awful": true,
		"boring": true, "disappoint": true, "disappointing": true,
		"dull": true, "terrible": true, "poor": true, "annoying": true,
		"weak": true, "mess": true, "forgettable": true,
	}

	negationWords = map[string]bool{
		"not": true, "never": true, "no": true, "isn't": true,
		"wasn't": true, "don't": true, "won't": true, "didn't": true,
	}
)

// Analyze scores free text with the lexicon model. Polarity is the net hit
// count normalized by word count and clamped to [-1, 1]; subjectivity is a
// flat 0.5 for any non-empty text since the lexicon carries no objectivity
// signal. Empty input scores zero on both.
func Analyze(text string) core.Sentiment {
	text = strings.TrimSpace(text)
	if text == "" {
		return core.Sentiment{}
	}

	words := strings.Fields(strings.ToLower(text))

	score := 0
	for i, word := range words {
		word = strings.Trim(word, ".,!?;:\"'()")
		negated := i > 0 && negationWords[strings.Trim(words[i-1], ".,!?;:\"'()")]

		if positiveWords[word] {
			if negated {
				score--
			} else {
				score++
			}
		}
		if negativeWords[word] {
			if negated {
				score++
			} else {
				score--
			}
		}
	}

	polarity := float64(score) / float64(max(len(words), 1))
	if polarity > 1 {
		polarity = 1
	}
	if polarity < -1 {
		polarity = -1
	}

	return core.Sentiment{Polarity: polarity, Subjectivity: 0.5}
}
