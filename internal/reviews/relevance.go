package reviews

import (
	"cinecap/internal/core"
	"cinecap/internal/embed"
)

// ScoreRelevance decides how topical a review is for a movie by comparing
// its embedding against the movie's precomputed context vectors (overview,
// genre keyword string). The context vectors are computed once per movie and
// shared across all of its reviews; this function never embeds anything
// itself.
//
// A nil review vector or an empty context list yields score 0.0, not
// relevant, no index — never an error.
func ScoreRelevance(reviewEmb []float64, contextEmbs [][]float64, threshold float64) core.Relevance {
	if reviewEmb == nil || len(contextEmbs) == 0 {
		return core.Relevance{}
	}

	bestScore := 0.0
	var bestIdx *int

	for i, contextEmb := range contextEmbs {
		if contextEmb == nil {
			continue
		}
		score := embed.Cosine(reviewEmb, contextEmb)
		if score > bestScore {
			bestScore = score
			idx := i
			bestIdx = &idx
		}
	}

	return core.Relevance{
		Score:            bestScore,
		Relevant:         bestScore >= threshold,
		BestContextIndex: bestIdx,
	}
}
