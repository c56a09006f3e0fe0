package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"cinecap/internal/core"
	"cinecap/internal/layers"
	"cinecap/internal/logger"
	"cinecap/internal/reviews"
)

// bronzeReview is the shape of one review row in bronze review files.
type bronzeReview struct {
	Rating  *float64 `json:"rating"`
	Content string   `json:"content"`
}

// FetchReviews downloads reviews for every silver movie into per-movie
// bronze files. A movie whose fetch fails is logged and skipped.
func (p *Pipeline) FetchReviews(ctx context.Context) error {
	if p.catalog == nil {
		return fmt.Errorf("review fetch requires a catalog client")
	}

	var movies []core.Movie
	silverPath := filepath.Join(p.dirs.Silver(), SilverMoviesFile)
	if err := layers.ReadJSON(silverPath, &movies); err != nil {
		return fmt.Errorf("review fetch needs the silver dataset: %w", err)
	}

	summary := Summary{Stage: "fetch-reviews"}
	for _, m := range movies {
		summary.Processed++

		page, err := p.catalog.Reviews(ctx, m.MovieID)
		if err != nil {
			summary.Failed++
			logger.Warn("review fetch failed", err, "movie_id", m.MovieID, "title", m.Title)
			continue
		}

		rows := make([]bronzeReview, 0, len(page.Results))
		for _, r := range page.Results {
			rows = append(rows, bronzeReview{
				Rating:  r.AuthorDetails.Rating,
				Content: strings.TrimSpace(r.Content),
			})
		}

		path := filepath.Join(p.dirs.BronzeReviews(), strconv.Itoa(m.MovieID)+".json")
		if err := layers.WriteJSON(path, rows); err != nil {
			summary.Failed++
			logger.Warn("review save failed", err, "movie_id", m.MovieID)
			continue
		}
		summary.Passed++

		if err := p.catalog.Pause(ctx); err != nil {
			return err
		}
	}

	summary.log(p.runID)
	return nil
}

// Enrich attaches bronze review texts to the silver dataset and writes the
// enriched file.
func (p *Pipeline) Enrich() error {
	var movies []core.Movie
	silverPath := filepath.Join(p.dirs.Silver(), SilverMoviesFile)
	if err := layers.ReadJSON(silverPath, &movies); err != nil {
		return fmt.Errorf("enrich needs the silver dataset: %w", err)
	}

	enriched := layers.EnrichWithReviews(movies, func(movieID int) ([]string, bool) {
		path := filepath.Join(p.dirs.BronzeReviews(), strconv.Itoa(movieID)+".json")
		if !layers.Exists(path) {
			return nil, true
		}
		var rows []bronzeReview
		if err := layers.ReadJSON(path, &rows); err != nil {
			return nil, true
		}
		var texts []string
		for _, r := range rows {
			if t := strings.TrimSpace(r.Content); t != "" {
				texts = append(texts, t)
			}
		}
		return texts, false
	})

	return layers.WriteJSON(filepath.Join(p.dirs.Silver(), SilverEnrichedFile), enriched)
}

// ValidateReviews runs the relevance, dedupe and ranking engine over the
// enriched silver dataset and writes the validated file.
func (p *Pipeline) ValidateReviews(ctx context.Context) error {
	if p.embedder == nil {
		return fmt.Errorf("review validation requires an embedding provider")
	}

	var movies []core.Movie
	enrichedPath := filepath.Join(p.dirs.Silver(), SilverEnrichedFile)
	if err := layers.ReadJSON(enrichedPath, &movies); err != nil {
		return fmt.Errorf("review validation needs the enriched dataset: %w", err)
	}

	rules := reviews.Rules{
		RelevanceThreshold: p.cfg.Reviews.RelevanceThreshold,
		DuplicateThreshold: p.cfg.Reviews.DuplicateThreshold,
		MinLength:          p.cfg.Reviews.MinLength,
		MaxKeep:            p.cfg.Reviews.MaxKeep,
	}
	processor := reviews.NewProcessor(p.embedder, rules)

	summary := Summary{Stage: "validate-reviews"}
	for i := range movies {
		if err := ctx.Err(); err != nil {
			return err
		}
		summary.Processed++

		movies[i].ValidatedReviews = processor.Process(ctx, movies[i])

		kept := 0
		for _, r := range movies[i].ValidatedReviews {
			if r.Keep {
				kept++
			}
		}
		if kept > 0 {
			summary.Passed++
		} else {
			summary.Skipped++
		}
	}

	if err := layers.WriteJSON(filepath.Join(p.dirs.Silver(), SilverValidatedFile), movies); err != nil {
		return err
	}
	summary.log(p.runID)
	return nil
}
