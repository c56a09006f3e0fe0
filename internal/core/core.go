package core

// Genre represents a catalog genre tag.
type Genre struct {
	ID   int    `json:"id"`   // Catalog genre identifier
	Name string `json:"name"` // Human-readable genre name
}

// Movie represents a single content item as it moves through the pipeline.
// Bronze extraction creates it, the silver transform reconciles duplicates,
// and the review validation stage fills in ValidatedReviews.
type Movie struct {
	MovieID          int            `json:"movie_id"`                    // Stable catalog identifier
	IMDBID           string         `json:"imdb_id,omitempty"`           // Cross-reference identifier (tt…)
	Title            string         `json:"title"`                       // Movie title
	Overview         string         `json:"overview"`                    // Descriptive text used as relevance context
	PosterPath       string         `json:"poster_path,omitempty"`       // Poster image path from the catalog
	Genres           []Genre        `json:"genres,omitempty"`            // Ordered genre list from the details endpoint
	GenreID          int            `json:"genre_id,omitempty"`          // Discovery genre the movie was fetched under
	SourceCategory   string         `json:"source_category,omitempty"`   // Category label set at bronze extraction
	SourceCategories []string       `json:"source_categories,omitempty"` // Merged category labels after the silver transform
	VoteCount        int            `json:"vote_count"`                  // Quality metric: number of votes
	VoteAverage      float64        `json:"vote_average"`                // Quality metric: average vote
	Popularity       float64        `json:"popularity"`                  // Quality metric: catalog popularity
	Reviews          []string       `json:"reviews,omitempty"`           // Raw review texts from the reviews endpoint
	ReviewsMissing   bool           `json:"reviews_missing,omitempty"`   // True when the reviews fetch failed or was empty
	ValidatedReviews []ReviewRecord `json:"validated_reviews,omitempty"` // Output of the review validation stage
}

// Sentiment holds polarity in [-1, 1] and subjectivity in [0, 1].
type Sentiment struct {
	Polarity     float64 `json:"polarity"`
	Subjectivity float64 `json:"subjectivity"`
}

// Relevance is the result of scoring a review against precomputed context
// vectors. BestContextIndex is nil when no context produced a score.
type Relevance struct {
	Score            float64 `json:"score"`
	Relevant         bool    `json:"relevant"`
	BestContextIndex *int    `json:"best_context_idx"`
}

// KeepReason explains why a review was kept or dropped.
type KeepReason string

const (
	ReasonTooShort  KeepReason = "too_short"
	ReasonTopRanked KeepReason = "top_ranked"
	ReasonLowRank   KeepReason = "low_rank"
)

// ReviewRecord is one review enriched by the normalizer, embedder, relevance
// scorer and sentiment analyzer. The embedding is ephemeral: it is used by
// the deduplicator and ranker and stripped before the record is persisted.
type ReviewRecord struct {
	Content   string     `json:"content"`   // Normalized review text
	Length    int        `json:"length"`    // Length of the normalized text
	Sentiment Sentiment  `json:"sentiment"` // Polarity and subjectivity
	Relevance Relevance  `json:"relevance"` // Similarity to the movie context
	Embedding []float64  `json:"-"`         // Never serialized
	Keep      bool       `json:"keep"`      // Final keep decision
	Reason    KeepReason `json:"reason"`    // Why the record was kept or dropped
}

// VerdictStatus is the terminal state of a generated artifact.
type VerdictStatus string

const (
	StatusPass     VerdictStatus = "pass"
	StatusSoftPass VerdictStatus = "soft_pass"
	StatusFlagged  VerdictStatus = "flagged"
	StatusSkipped  VerdictStatus = "skipped"
)

// Verdict records how an artifact resolved. Flagged artifacts keep their
// payload together with the last validator reason so they can be repaired or
// reviewed later instead of being silently discarded.
type Verdict struct {
	Status VerdictStatus `json:"status"`
	Reason string        `json:"reason"`
}

// CharacterAnchor is a human-recognizable handle for a movie.
type CharacterAnchor struct {
	Label      string `json:"label"`      // Real character or team name
	Descriptor string `json:"descriptor"` // Short literal description
	Type       string `json:"type"`       // protagonist, antagonist, duo, team, symbolic
}

// Capsule is a short generated snippet tagged with one axis and one emotion.
type Capsule struct {
	Axis    string `json:"axis"`
	Emotion string `json:"emotion"`
	Text    string `json:"text"`
}

// PremiseRecord is the generated one-sentence premise for a movie.
type PremiseRecord struct {
	MovieID    int     `json:"movie_id"`
	Title      string  `json:"title"`
	Premise    string  `json:"premise"`
	Validation Verdict `json:"validation"`
}

// AxesRecord is the selected emotional tension axes for a movie.
type AxesRecord struct {
	MovieID    int      `json:"movie_id"`
	Title      string   `json:"title"`
	Axes       []string `json:"axes"`
	Validation Verdict  `json:"validation"`
}

// AnchorsRecord is the generated character anchor set for a movie.
type AnchorsRecord struct {
	MovieID    int               `json:"movie_id"`
	Title      string            `json:"title"`
	Anchors    []CharacterAnchor `json:"character_anchors"`
	Validation Verdict           `json:"validation"`
}

// CriticRecord is the generated critic summary for a movie.
type CriticRecord struct {
	MovieID    int     `json:"movie_id"`
	Title      string  `json:"title"`
	Summary    string  `json:"critic_summary"`
	Validation Verdict `json:"validation"`
}

// CapsulesRecord is the generated emotional capsule set for a movie.
type CapsulesRecord struct {
	MovieID    int       `json:"movie_id"`
	Title      string    `json:"title"`
	Capsules   []Capsule `json:"emotional_capsules"`
	Validation Verdict   `json:"validation"`
}

// GoldMovie is the merged canonical record joining all artifact tables for
// one movie id.
type GoldMovie struct {
	MovieID  int               `json:"movie_id"`
	Title    string            `json:"title"`
	Premise  string            `json:"premise"`
	Axes     []string          `json:"axes"`
	Anchors  []CharacterAnchor `json:"character_anchors"`
	Critic   string            `json:"critic_summary,omitempty"`
	Capsules []Capsule         `json:"emotional_capsules,omitempty"`
}
