package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"cinecap/internal/core"
	"cinecap/internal/layers"
	"cinecap/internal/logger"
)

// maxDiscoverPages is the catalog API's hard pagination limit.
const maxDiscoverPages = 500

// Extract pulls well-voted English movies for each configured category and
// writes one bronze file per category. Per movie it attaches the true genre
// list from the details endpoint and the IMDb id from external ids.
func (p *Pipeline) Extract(ctx context.Context) error {
	if p.catalog == nil {
		return fmt.Errorf("extract requires a catalog client")
	}

	genreIDs, err := p.resolveGenreIDs(ctx)
	if err != nil {
		return err
	}

	for _, category := range p.cfg.Catalog.Categories {
		var combined []core.Movie
		for _, genreName := range category.Genres {
			id, ok := genreIDs[genreName]
			if !ok {
				logger.Warn("unknown catalog genre, skipping", nil,
					"genre", genreName, "category", category.Label)
				continue
			}
			movies, err := p.discoverGenre(ctx, id, category.Label)
			if err != nil {
				return fmt.Errorf("discover %s: %w", genreName, err)
			}
			combined = append(combined, movies...)
		}

		deduped := dedupeByID(combined)
		ranked := topByVotes(deduped, p.cfg.Catalog.TopPerLabel)

		if err := p.attachDetails(ctx, ranked); err != nil {
			return fmt.Errorf("attach details for %s: %w", category.Label, err)
		}

		path := filepath.Join(p.dirs.Bronze(), category.Label+"_raw.json")
		if err := layers.WriteJSON(path, ranked); err != nil {
			return err
		}
		logger.Info("bronze category written",
			"run_id", p.runID, "category", category.Label, "movies", len(ranked), "path", path)
	}
	return nil
}

// resolveGenreIDs maps catalog genre names to ids.
func (p *Pipeline) resolveGenreIDs(ctx context.Context) (map[string]int, error) {
	list, err := p.catalog.Genres(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch genre catalog: %w", err)
	}
	ids := make(map[string]int, len(list.Genres))
	for _, g := range list.Genres {
		ids[g.Name] = g.ID
	}
	return ids, nil
}

// discoverGenre pages through discover results for one genre, keeping
// English-language movies up to the per-genre cap.
func (p *Pipeline) discoverGenre(ctx context.Context, genreID int, category string) ([]core.Movie, error) {
	limit := p.cfg.Catalog.PerGenreCap
	var movies []core.Movie

	for page := 1; len(movies) < limit && page <= maxDiscoverPages; page++ {
		result, err := p.catalog.Discover(ctx, genreID, page, p.cfg.Catalog.MinVoteCount)
		if err != nil {
			return nil, err
		}
		if len(result.Results) == 0 {
			break
		}

		for _, m := range result.Results {
			if len(movies) >= limit {
				break
			}
			if m.OriginalLanguage != "en" {
				continue
			}
			movies = append(movies, core.Movie{
				MovieID:        m.ID,
				Title:          m.Title,
				Overview:       m.Overview,
				VoteAverage:    m.VoteAverage,
				VoteCount:      m.VoteCount,
				Popularity:     m.Popularity,
				PosterPath:     m.PosterPath,
				GenreID:        genreID,
				SourceCategory: category,
			})
		}

		if err := p.catalog.Pause(ctx); err != nil {
			return nil, err
		}
	}
	return movies, nil
}

// attachDetails fills in true genres and IMDb ids. A failed lookup leaves
// the movie without the enrichment rather than failing the category.
func (p *Pipeline) attachDetails(ctx context.Context, movies []core.Movie) error {
	for i := range movies {
		if err := ctx.Err(); err != nil {
			return err
		}

		details, err := p.catalog.Details(ctx, movies[i].MovieID)
		if err != nil {
			logger.Warn("details fetch failed", err, "movie_id", movies[i].MovieID)
		} else {
			movies[i].Genres = details.Genres
			if details.IMDBID != "" {
				movies[i].IMDBID = details.IMDBID
			}
		}

		if movies[i].IMDBID == "" {
			ids, err := p.catalog.ExternalIDs(ctx, movies[i].MovieID)
			if err != nil {
				logger.Warn("external ids fetch failed", err, "movie_id", movies[i].MovieID)
			} else {
				movies[i].IMDBID = ids.IMDBID
			}
		}

		if err := p.catalog.Pause(ctx); err != nil {
			return err
		}
	}
	return nil
}

func dedupeByID(movies []core.Movie) []core.Movie {
	seen := make(map[int]bool, len(movies))
	var out []core.Movie
	for _, m := range movies {
		if seen[m.MovieID] {
			continue
		}
		seen[m.MovieID] = true
		out = append(out, m)
	}
	return out
}

// topByVotes keeps the n best movies by vote count, then vote average,
// then popularity.
func topByVotes(movies []core.Movie, n int) []core.Movie {
	sorted := append([]core.Movie{}, movies...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].VoteCount != sorted[j].VoteCount {
			return sorted[i].VoteCount > sorted[j].VoteCount
		}
		if sorted[i].VoteAverage != sorted[j].VoteAverage {
			return sorted[i].VoteAverage > sorted[j].VoteAverage
		}
		return sorted[i].Popularity > sorted[j].Popularity
	})
	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
