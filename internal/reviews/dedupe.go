package reviews

import (
	"cinecap/internal/core"
	"cinecap/internal/embed"
)

// Dedupe removes near-duplicate reviews by pairwise cosine similarity in
// insertion order: a record is dropped when it is at least threshold similar
// to an earlier kept record, so the first occurrence always wins. Records
// without an embedding cannot be judged duplicates and are always kept.
// O(n²) on the kept set; review counts per movie are small.
func Dedupe(records []*core.ReviewRecord, threshold float64) []*core.ReviewRecord {
	kept := make([]*core.ReviewRecord, 0, len(records))

	for _, r := range records {
		if r.Embedding == nil {
			kept = append(kept, r)
			continue
		}

		duplicate := false
		for _, other := range kept {
			if other.Embedding == nil {
				continue
			}
			if embed.Cosine(r.Embedding, other.Embedding) >= threshold {
				duplicate = true
				break
			}
		}

		if !duplicate {
			kept = append(kept, r)
		}
	}

	return kept
}
