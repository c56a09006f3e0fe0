package layers

import (
	"regexp"
	"sort"

	"cinecap/internal/core"
	"cinecap/internal/logger"
	"cinecap/internal/textnorm"
)

var imdbIDPattern = regexp.MustCompile(`^tt\d{7,}`)

// ValidIMDBID reports whether an id matches the tt-plus-digits format.
func ValidIMDBID(id string) bool {
	return id != "" && imdbIDPattern.MatchString(id)
}

// MergeStats counts what the silver merge did with its input rows.
type MergeStats struct {
	Input   int // Rows read from bronze
	Dropped int // Rows rejected by quality checks
	Merged  int // Rows folded into an existing movie
	Output  int // Unique movies written
}

// MergeMovies dedupes bronze rows by movie id into the silver dataset.
// Rows with a missing title or an invalid IMDb id are dropped silently and
// only counted. Duplicates keep the best value per field: longest overview,
// max vote metrics, first non-empty poster, merged sorted categories.
func MergeMovies(rows []core.Movie) ([]core.Movie, MergeStats) {
	stats := MergeStats{Input: len(rows)}

	merged := make(map[int]*core.Movie)
	var order []int

	for _, m := range rows {
		title := textnorm.CleanPrintable(m.Title)
		overview := textnorm.CleanPrintable(m.Overview)

		if title == "" || !ValidIMDBID(m.IMDBID) {
			stats.Dropped++
			continue
		}

		category := m.SourceCategory
		genres := dedupeGenres(m.Genres)

		existing, ok := merged[m.MovieID]
		if !ok {
			movie := m
			movie.Title = title
			movie.Overview = overview
			movie.Genres = genres
			movie.SourceCategory = ""
			movie.SourceCategories = nil
			if category != "" {
				movie.SourceCategories = []string{category}
			}
			merged[m.MovieID] = &movie
			order = append(order, m.MovieID)
			continue
		}

		stats.Merged++

		if category != "" {
			existing.SourceCategories = appendUnique(existing.SourceCategories, category)
			sort.Strings(existing.SourceCategories)
		}
		if m.VoteCount > existing.VoteCount {
			existing.VoteCount = m.VoteCount
		}
		if m.VoteAverage > existing.VoteAverage {
			existing.VoteAverage = m.VoteAverage
		}
		if m.Popularity > existing.Popularity {
			existing.Popularity = m.Popularity
		}
		if len(overview) > len(existing.Overview) {
			existing.Overview = overview
		}
		if existing.PosterPath == "" && m.PosterPath != "" {
			existing.PosterPath = m.PosterPath
		}
		if len(genres) > 0 {
			existing.Genres = genres
		}
	}

	out := make([]core.Movie, 0, len(order))
	for _, id := range order {
		out = append(out, *merged[id])
	}
	stats.Output = len(out)

	logger.Info("silver merge complete",
		"input", stats.Input, "dropped", stats.Dropped,
		"merged", stats.Merged, "output", stats.Output)
	return out, stats
}

// EnrichWithReviews attaches per-movie bronze review texts to silver
// movies. loadReviews returns the review texts and whether the source was
// missing or unreadable; a present file with no usable reviews is not
// missing.
func EnrichWithReviews(movies []core.Movie, loadReviews func(movieID int) ([]string, bool)) []core.Movie {
	out := make([]core.Movie, len(movies))
	missing := 0

	for i, m := range movies {
		reviews, isMissing := loadReviews(m.MovieID)
		m.Reviews = reviews
		m.ReviewsMissing = isMissing
		if isMissing {
			missing++
		}
		out[i] = m
	}

	logger.Info("review enrichment complete",
		"movies", len(out), "missing_reviews", missing)
	return out
}

func dedupeGenres(genres []core.Genre) []core.Genre {
	seen := make(map[int]bool, len(genres))
	var out []core.Genre
	for _, g := range genres {
		if seen[g.ID] {
			continue
		}
		seen[g.ID] = true
		out = append(out, g)
	}
	return out
}

func appendUnique(items []string, item string) []string {
	for _, existing := range items {
		if existing == item {
			return items
		}
	}
	return append(items, item)
}
