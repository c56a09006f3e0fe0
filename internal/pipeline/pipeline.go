// Package pipeline wires the clients, layers and validators into the
// operator-facing stages. Stages process one movie at a time: a failure on
// one movie is recorded and the run continues.
package pipeline

import (
	"context"

	"github.com/google/uuid"

	"cinecap/internal/config"
	"cinecap/internal/embed"
	"cinecap/internal/layers"
	"cinecap/internal/logger"
	"cinecap/internal/narrative"
	"cinecap/internal/subtitles"
	"cinecap/internal/tmdb"
)

// Silver and gold layer file names. The names are part of the on-disk
// contract between stages.
const (
	SilverMoviesFile    = "movies_silver.json"
	SilverEnrichedFile  = "movies_silver_enriched.json"
	SilverValidatedFile = "movies_silver_validated.json"

	GoldPremisesFile = "movie_premises.json"
	GoldAxesFile     = "movie_axes.json"
	GoldAnchorsFile  = "movie_character_anchors.json"
	GoldCriticsFile  = "movie_critic_summaries.json"
	GoldCapsulesFile = "movie_emotional_capsules.json"
	GoldMoviesFile   = "movies_gold.json"
)

// CatalogClient is the slice of the catalog API the pipeline uses.
type CatalogClient interface {
	Genres(ctx context.Context) (tmdb.GenreList, error)
	Discover(ctx context.Context, genreID, page, minVoteCount int) (tmdb.DiscoverPage, error)
	Reviews(ctx context.Context, movieID int) (tmdb.ReviewPage, error)
	ExternalIDs(ctx context.Context, movieID int) (tmdb.ExternalIDs, error)
	Details(ctx context.Context, movieID int) (tmdb.MovieDetails, error)
	Pause(ctx context.Context) error
}

// SubtitleFetcher is the subtitle lookup the pipeline uses.
type SubtitleFetcher interface {
	Fetch(ctx context.Context, movieID int, imdbID string) subtitles.Result
}

// Pipeline holds the shared collaborators for all stages.
type Pipeline struct {
	cfg      *config.Config
	dirs     layers.Dirs
	catalog  CatalogClient
	textGen  narrative.TextGenerator
	embedder embed.Provider
	subs     SubtitleFetcher
	runID    string
}

// New builds a pipeline. Collaborators a stage does not use may be nil;
// each stage checks what it needs.
func New(cfg *config.Config, catalog CatalogClient, textGen narrative.TextGenerator, embedder embed.Provider, subs SubtitleFetcher) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		dirs:     layers.NewDirs(cfg.App.DataDir),
		catalog:  catalog,
		textGen:  textGen,
		embedder: embedder,
		subs:     subs,
		runID:    uuid.NewString(),
	}
}

// Dirs exposes the layer layout, mainly for the command handlers.
func (p *Pipeline) Dirs() layers.Dirs {
	return p.dirs
}

// Summary counts what a stage did with its items.
type Summary struct {
	Stage     string
	Processed int
	Passed    int
	SoftPass  int
	Flagged   int
	Skipped   int
	Failed    int
}

func (s Summary) log(runID string) {
	logger.Info("stage complete",
		"run_id", runID,
		"stage", s.Stage,
		"processed", s.Processed,
		"passed", s.Passed,
		"soft_pass", s.SoftPass,
		"flagged", s.Flagged,
		"skipped", s.Skipped,
		"failed", s.Failed,
	)
}
