package embed

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"sync"
)

// localDimensions is the vector size of the local model. Small enough to be
// cheap, large enough that near-duplicate reviews land close together.
const localDimensions = 256

// Local is a deterministic hashed character n-gram embedder used when the
// remote provider is disabled or unavailable. The n-gram table is built once
// per instance on first use. It is constructed explicitly and passed to
// consumers so tests can substitute a fake provider.
type Local struct {
	once sync.Once
	idf  map[string]float64
}

// NewLocal creates a local embedding model. The model itself is lazily
// initialized on the first Embed call and is read-only afterwards, so a
// single instance is safe to share across the whole run.
func NewLocal() *Local {
	return &Local{}
}

// Embed implements Provider. It never fails: empty input yields a nil
// vector, everything else yields a unit-normalized vector.
func (l *Local) Embed(_ context.Context, text string) ([]float64, error) {
	l.once.Do(l.init)

	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return nil, nil
	}

	vec := make([]float64, localDimensions)
	for _, gram := range ngrams(text, 3) {
		weight := 1.0
		if w, ok := l.idf[gram]; ok {
			weight = w
		}
		h := fnv.New32a()
		h.Write([]byte(gram))
		idx := int(h.Sum32() % localDimensions)
		// Sign hash decorrelates colliding n-grams.
		if h.Sum32()&1 == 0 {
			vec[idx] += weight
		} else {
			vec[idx] -= weight
		}
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	if norm == 0 {
		return nil, nil
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] /= norm
	}
	return vec, nil
}

// init seeds down-weights for n-grams drawn from high-frequency English
// function words, so shared stopwords contribute less similarity than
// content words do.
func (l *Local) init() {
	stopwords := []string{
		"the", "and", "that", "this", "with", "for", "was", "are",
		"have", "has", "not", "but", "his", "her", "they", "from",
		"you", "all", "very", "just", "about", "out", "its", "one",
	}
	l.idf = make(map[string]float64)
	for _, w := range stopwords {
		for _, gram := range ngrams(" "+w+" ", 3) {
			l.idf[gram] = 0.25
		}
	}
}

func ngrams(text string, n int) []string {
	runes := []rune(text)
	if len(runes) < n {
		return []string{string(runes)}
	}
	grams := make([]string, 0, len(runes)-n+1)
	for i := 0; i+n <= len(runes); i++ {
		grams = append(grams, string(runes[i:i+n]))
	}
	return grams
}
