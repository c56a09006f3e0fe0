package reviews

import (
	"context"
	"unicode/utf8"

	"cinecap/internal/core"
	"cinecap/internal/embed"
	"cinecap/internal/logger"
	"cinecap/internal/sentiment"
	"cinecap/internal/textnorm"
)

// Rules holds the review validation thresholds. The values mirror the
// pipeline defaults but live here so tests and config can override them.
type Rules struct {
	RelevanceThreshold float64
	DuplicateThreshold float64
	MinLength          int
	MaxKeep            int
}

// DefaultRules returns the standard thresholds.
func DefaultRules() Rules {
	return Rules{
		RelevanceThreshold: 0.62,
		DuplicateThreshold: 0.92,
		MinLength:          40,
		MaxKeep:            10,
	}
}

// Processor runs the full review validation for one movie: normalize,
// embed, score, dedupe, rank. The embedding provider is injected so tests
// can use a deterministic fake.
type Processor struct {
	provider embed.Provider
	rules    Rules
}

// NewProcessor creates a review processor with the given embedding provider
// and rules.
func NewProcessor(provider embed.Provider, rules Rules) *Processor {
	return &Processor{provider: provider, rules: rules}
}

// Process validates all reviews of one movie and returns the annotated
// records in original review order. Context vectors are computed exactly
// once per movie and shared across its reviews; review embeddings are
// dropped before the records are returned for persistence (the Embedding
// field is never serialized, and holding thousands of vectors across the
// batch is pointless).
func (p *Processor) Process(ctx context.Context, movie core.Movie) []core.ReviewRecord {
	contextEmbs := p.embedContexts(ctx, movie)

	// Pass 1: normalize, gate on length, embed and score survivors.
	byContent := make(map[string]*core.ReviewRecord)
	order := make([]*core.ReviewRecord, 0, len(movie.Reviews)) // First-seen order, pre-dedupe
	var candidates []*core.ReviewRecord

	for _, raw := range movie.Reviews {
		cleaned := textnorm.Clean(raw)
		if _, dup := byContent[cleaned]; dup {
			continue // Exact duplicate after normalization; the embedding pass would drop it anyway
		}

		record := &core.ReviewRecord{
			Content:   cleaned,
			Length:    utf8.RuneCountInString(cleaned), // Characters, not bytes
			Sentiment: sentiment.Analyze(cleaned),
		}
		byContent[cleaned] = record
		order = append(order, record)

		if record.Length < p.rules.MinLength {
			record.Keep = false
			record.Reason = core.ReasonTooShort
			continue
		}

		record.Embedding = p.embedText(ctx, cleaned)
		record.Relevance = ScoreRelevance(record.Embedding, contextEmbs, p.rules.RelevanceThreshold)
		candidates = append(candidates, record)
	}

	// Pass 2: near-duplicate removal, then ranking of the survivors.
	deduped := Dedupe(candidates, p.rules.DuplicateThreshold)
	Rank(deduped, p.rules.MaxKeep)

	survived := make(map[*core.ReviewRecord]bool, len(deduped))
	for _, r := range deduped {
		survived[r] = true
	}

	// Pass 3: reconcile back onto the original review sequence. Too-short
	// records stay in place; candidates dropped by dedupe are omitted
	// because their first occurrence already represents them.
	final := make([]core.ReviewRecord, 0, len(order))
	for _, r := range order {
		if r.Reason == core.ReasonTooShort || survived[r] {
			r.Embedding = nil
			final = append(final, *r)
		}
	}

	return final
}

func (p *Processor) embedContexts(ctx context.Context, movie core.Movie) [][]float64 {
	var texts []string
	if overview := textnorm.Clean(movie.Overview); overview != "" {
		texts = append(texts, overview)
	}
	if kw := GenreKeywords(movie.Genres); kw != "" {
		texts = append(texts, kw)
	}

	embs := make([][]float64, 0, len(texts))
	for _, t := range texts {
		embs = append(embs, p.embedText(ctx, t))
	}
	return embs
}

// embedText degrades to a nil vector on failure; downstream scoring treats
// nil as "no signal".
func (p *Processor) embedText(ctx context.Context, text string) []float64 {
	vec, err := p.provider.Embed(ctx, text)
	if err != nil {
		logger.Warn("embedding failed", err)
		return nil
	}
	return vec
}
