package reviews

import (
	"context"
	"strings"
	"testing"

	"cinecap/internal/core"
	"cinecap/internal/embed"
)

// fakeProvider returns canned vectors keyed by input text, falling back to a
// fixed default vector. A nil default simulates embedding failure.
type fakeProvider struct {
	vectors map[string][]float64
	def     []float64
	calls   int
}

func (f *fakeProvider) Embed(_ context.Context, text string) ([]float64, error) {
	f.calls++
	if v, ok := f.vectors[text]; ok {
		return v, nil
	}
	return f.def, nil
}

func record(content string, score float64, polarity float64, emb []float64) *core.ReviewRecord {
	return &core.ReviewRecord{
		Content:   content,
		Length:    len(content),
		Sentiment: core.Sentiment{Polarity: polarity, Subjectivity: 0.5},
		Relevance: core.Relevance{Score: score, Relevant: score >= 0.62},
		Embedding: emb,
	}
}

func TestScoreRelevancePicksBestContext(t *testing.T) {
	review := []float64{1, 0}
	contexts := [][]float64{{0, 1}, {1, 0}}

	rel := ScoreRelevance(review, contexts, 0.62)
	if !rel.Relevant {
		t.Error("expected relevant for perfectly matching context")
	}
	if rel.BestContextIndex == nil || *rel.BestContextIndex != 1 {
		t.Errorf("BestContextIndex = %v, want 1", rel.BestContextIndex)
	}
	if rel.Score != 1.0 {
		t.Errorf("Score = %v, want 1.0", rel.Score)
	}
}

func TestScoreRelevanceNilReviewVector(t *testing.T) {
	rel := ScoreRelevance(nil, [][]float64{{1, 0}}, 0.62)
	if rel.Score != 0.0 || rel.Relevant || rel.BestContextIndex != nil {
		t.Errorf("nil review vector should score zero, got %+v", rel)
	}
}

func TestScoreRelevanceEmptyContexts(t *testing.T) {
	rel := ScoreRelevance([]float64{1, 0}, nil, 0.62)
	if rel.Score != 0.0 || rel.Relevant || rel.BestContextIndex != nil {
		t.Errorf("empty context list should score zero, got %+v", rel)
	}
}

func TestScoreRelevanceSkipsNilContexts(t *testing.T) {
	rel := ScoreRelevance([]float64{1, 0}, [][]float64{nil, {1, 0}}, 0.62)
	if rel.BestContextIndex == nil || *rel.BestContextIndex != 1 {
		t.Errorf("BestContextIndex = %v, want 1 (nil context skipped)", rel.BestContextIndex)
	}
}

func TestScoreRelevanceBelowThreshold(t *testing.T) {
	rel := ScoreRelevance([]float64{1, 0}, [][]float64{{0.5, 0.9}}, 0.99)
	if rel.Relevant {
		t.Errorf("score %v below threshold must not be relevant", rel.Score)
	}
}

func TestDedupeFirstOccurrenceWins(t *testing.T) {
	a := record("first telling of the plot", 0.8, 0.1, []float64{1, 0, 0})
	b := record("second telling of the plot", 0.9, 0.2, []float64{0.999, 0.01, 0}) // cosine ~1 with a
	c := record("a completely different take", 0.7, 0.3, []float64{0, 1, 0})

	kept := Dedupe([]*core.ReviewRecord{a, b, c}, 0.92)
	if len(kept) != 2 {
		t.Fatalf("kept %d records, want 2", len(kept))
	}
	if kept[0] != a || kept[1] != c {
		t.Error("dedupe must keep the first occurrence and preserve order")
	}
}

func TestDedupeBelowThresholdKeepsBoth(t *testing.T) {
	a := record("one", 0.8, 0, []float64{1, 0})
	b := record("two", 0.8, 0, []float64{0.5, 0.87}) // cosine ~0.5
	kept := Dedupe([]*core.ReviewRecord{a, b}, 0.92)
	if len(kept) != 2 {
		t.Errorf("kept %d records, want 2 for similarity below threshold", len(kept))
	}
}

func TestDedupeNilEmbeddingAlwaysKept(t *testing.T) {
	a := record("embedded", 0.8, 0, []float64{1, 0})
	b := record("no signal", 0.0, 0, nil)
	c := record("same as first", 0.8, 0, []float64{1, 0})

	kept := Dedupe([]*core.ReviewRecord{a, b, c}, 0.92)
	if len(kept) != 2 {
		t.Fatalf("kept %d records, want 2", len(kept))
	}
	if kept[1] != b {
		t.Error("a record without an embedding must never be dropped")
	}
}

func TestRankCapAndOrdering(t *testing.T) {
	var records []*core.ReviewRecord
	for i := 0; i < 12; i++ {
		content := strings.Repeat("x", 50+i)
		records = append(records, record(content, float64(i)/12.0, 0.1, []float64{1}))
	}

	Rank(records, 10)

	keepCount := 0
	for _, r := range records {
		if r.Keep {
			keepCount++
			if r.Reason != core.ReasonTopRanked {
				t.Errorf("kept record has reason %q, want top_ranked", r.Reason)
			}
		} else if r.Reason != core.ReasonLowRank {
			t.Errorf("dropped record has reason %q, want low_rank", r.Reason)
		}
	}
	if keepCount != 10 {
		t.Errorf("keep count = %d, want exactly 10", keepCount)
	}

	// The two lowest-scoring records must be the dropped ones.
	if records[0].Keep || records[1].Keep {
		t.Error("the lowest ranked records should not be kept")
	}
}

func TestRankTieBreaksOnLengthThenPolarity(t *testing.T) {
	short := record("aa", 0.5, 0.9, []float64{1})
	long := record("aaaa", 0.5, 0.1, []float64{1})
	calm := record("bb", 0.5, 0.1, []float64{1})
	intense := record("cc", 0.5, 0.8, []float64{1})

	Rank([]*core.ReviewRecord{short, long, calm, intense}, 1)

	if !long.Keep {
		t.Error("equal score: longer record should outrank shorter ones")
	}

	Rank([]*core.ReviewRecord{calm, intense}, 1)
	if !intense.Keep {
		t.Error("equal score and length: stronger polarity should win")
	}
}

func TestProcessTooShortExcludedFromRanking(t *testing.T) {
	movie := core.Movie{
		Title:    "Test",
		Overview: "a long overview about space exploration and survival",
		Reviews:  []string{"short but punchy.", strings.Repeat("a solid review of the space movie ", 3)},
	}

	p := NewProcessor(&fakeProvider{def: []float64{1, 0}}, DefaultRules())
	out := p.Process(context.Background(), movie)

	if len(out) != 2 {
		t.Fatalf("got %d records, want 2", len(out))
	}
	first := out[0]
	if first.Keep || first.Reason != core.ReasonTooShort {
		t.Errorf("short review: keep=%v reason=%q, want keep=false reason=too_short", first.Keep, first.Reason)
	}
	if first.Relevance.Score != 0 {
		t.Error("too-short review must not be scored")
	}
}

func TestProcessLengthGateCountsCharactersNotBytes(t *testing.T) {
	// 20 runes of multi-byte text: well over 40 bytes, well under 40
	// characters. The length gate must still drop it.
	movie := core.Movie{
		Title:   "Test",
		Reviews: []string{"素晴らしい映画でした。感動で涙が出ました。"},
	}

	p := NewProcessor(&fakeProvider{def: []float64{1, 0}}, DefaultRules())
	out := p.Process(context.Background(), movie)

	if len(out) != 1 {
		t.Fatalf("got %d records, want 1", len(out))
	}
	if out[0].Keep || out[0].Reason != core.ReasonTooShort {
		t.Errorf("got keep=%v reason=%q, want keep=false reason=too_short", out[0].Keep, out[0].Reason)
	}
	if out[0].Length >= 40 {
		t.Errorf("Length = %d, want the rune count below the 40 minimum", out[0].Length)
	}
}

func TestProcessContextVectorsComputedOnce(t *testing.T) {
	reviewText := strings.Repeat("an engaging story with believable characters ", 2)
	var reviewTexts []string
	for i := 0; i < 5; i++ {
		reviewTexts = append(reviewTexts, reviewText+strings.Repeat("!", i+1))
	}

	movie := core.Movie{
		Overview: "overview text that is long enough to matter",
		Genres:   []core.Genre{{ID: 18, Name: "Drama"}},
		Reviews:  reviewTexts,
	}

	provider := &fakeProvider{def: nil}
	p := NewProcessor(provider, DefaultRules())
	p.Process(context.Background(), movie)

	// 2 context embeds (overview + genre keywords) + one per review.
	want := 2 + len(reviewTexts)
	if provider.calls != want {
		t.Errorf("provider calls = %d, want %d (contexts embedded once)", provider.calls, want)
	}
}

func TestProcessNilEmbeddingMeansUnknownRelevance(t *testing.T) {
	movie := core.Movie{
		Overview: "an overview",
		Reviews:  []string{strings.Repeat("a review long enough to pass the length gate ", 2)},
	}

	p := NewProcessor(&fakeProvider{def: nil}, DefaultRules())
	out := p.Process(context.Background(), movie)

	if len(out) != 1 {
		t.Fatalf("got %d records, want 1", len(out))
	}
	rel := out[0].Relevance
	if rel.Score != 0.0 || rel.Relevant {
		t.Errorf("nil embedding should degrade to zero relevance, got %+v", rel)
	}
}

func TestProcessKeepsOriginalOrderAndCap(t *testing.T) {
	// Scenario C: 12 distinct valid reviews, cap 10.
	var reviewTexts []string
	vectors := map[string][]float64{}
	for i := 0; i < 12; i++ {
		text := strings.Repeat(string(rune('a'+i)), 60)
		reviewTexts = append(reviewTexts, text)
		// Distinct orthogonal-ish embeddings so nothing is deduped.
		vec := make([]float64, 12)
		vec[i] = 1
		vectors[text] = vec
	}

	movie := core.Movie{Overview: "overview", Reviews: reviewTexts}
	p := NewProcessor(&fakeProvider{vectors: vectors, def: []float64{1}}, DefaultRules())
	out := p.Process(context.Background(), movie)

	if len(out) != 12 {
		t.Fatalf("got %d records, want 12", len(out))
	}
	keep := 0
	for i, r := range out {
		if r.Content != textContent(reviewTexts[i]) {
			t.Errorf("record %d out of original order", i)
		}
		if r.Keep {
			keep++
		} else if r.Reason != core.ReasonLowRank {
			t.Errorf("dropped record reason = %q, want low_rank", r.Reason)
		}
		if r.Embedding != nil {
			t.Error("embedding must be discarded before persistence")
		}
	}
	if keep != 10 {
		t.Errorf("keep count = %d, want 10", keep)
	}
}

func textContent(raw string) string {
	return strings.TrimSpace(raw)
}

func TestProcessDedupesNearIdenticalReviews(t *testing.T) {
	// Scenario A: same text, different casing and punctuation.
	a := "This movie was absolutely fantastic, a must see for everyone!"
	b := "this movie was absolutely fantastic, a must see for everyone"

	local := embed.NewLocal()
	p := NewProcessor(local, DefaultRules())
	movie := core.Movie{Overview: "overview text", Reviews: []string{a, b}}

	out := p.Process(context.Background(), movie)
	if len(out) != 1 {
		t.Fatalf("got %d records, want 1 (near-duplicate dropped)", len(out))
	}
	if out[0].Content != a {
		t.Errorf("surviving record = %q, want the first occurrence", out[0].Content)
	}
}

func TestGenreKeywordsExpansion(t *testing.T) {
	got := GenreKeywords([]core.Genre{{ID: 878, Name: "Science Fiction"}})
	if !strings.Contains(got, "Science Fiction") {
		t.Error("keyword string should contain the genre name")
	}
	if !strings.Contains(got, "space") || !strings.Contains(got, "alien") {
		t.Errorf("keyword string missing expansion vocabulary: %q", got)
	}
	if !strings.Contains(got, " . ") {
		t.Errorf("keywords should be joined with ' . ': %q", got)
	}
}

func TestGenreKeywordsDedupes(t *testing.T) {
	got := GenreKeywords([]core.Genre{
		{ID: 9648, Name: "Mystery"},
		{ID: 53, Name: "Thriller"},
	})
	if strings.Count(got, "twist") != 1 {
		t.Errorf("shared vocabulary should appear once: %q", got)
	}
}

func TestGenreKeywordsEmpty(t *testing.T) {
	if got := GenreKeywords(nil); got != "" {
		t.Errorf("GenreKeywords(nil) = %q, want empty", got)
	}
}
