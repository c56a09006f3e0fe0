package embed

import "math"

// Cosine computes the cosine similarity between two vectors. It returns 0.0
// when either vector is nil or empty, when lengths differ, or when either
// vector has zero magnitude. For well-formed inputs the result is symmetric
// and bounded to [-1, 1]; callers compare it against fixed thresholds.
func Cosine(a, b []float64) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0.0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0.0
	}
	return dot / denom
}
