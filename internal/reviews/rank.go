package reviews

import (
	"math"
	"sort"

	"cinecap/internal/core"
)

// Rank orders surviving records descending by (relevance score, text length,
// absolute sentiment polarity), ties broken in that priority order, and
// marks the top maxKeep as keep=true / top_ranked. Everything else becomes
// keep=false / low_rank. The input slice order is left untouched: ranking is
// done on a copy and only the annotations are written back.
func Rank(records []*core.ReviewRecord, maxKeep int) {
	ranked := make([]*core.ReviewRecord, len(records))
	copy(ranked, records)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Relevance.Score != b.Relevance.Score {
			return a.Relevance.Score > b.Relevance.Score
		}
		if a.Length != b.Length {
			return a.Length > b.Length
		}
		return math.Abs(a.Sentiment.Polarity) > math.Abs(b.Sentiment.Polarity)
	})

	for i, r := range ranked {
		if i < maxKeep {
			r.Keep = true
			r.Reason = core.ReasonTopRanked
		} else {
			r.Keep = false
			r.Reason = core.ReasonLowRank
		}
	}
}
