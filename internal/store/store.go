// Package store is the SQLite warehouse loaded from the gold layer.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"cinecap/internal/core"
	"cinecap/internal/logger"
)

// Store wraps the warehouse database.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (or creates) the warehouse at dbPath and ensures the
// schema exists.
func NewStore(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create warehouse directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open warehouse: %w", err)
	}

	s := &Store{db: db, path: dbPath}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize warehouse: %w", err)
	}
	return s, nil
}

func (s *Store) initialize() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS movies (
			movie_id INTEGER PRIMARY KEY,
			imdb_id TEXT,
			title TEXT,
			overview TEXT,
			poster_path TEXT,
			vote_count INTEGER,
			vote_average REAL,
			popularity REAL
		);`,
		`CREATE TABLE IF NOT EXISTS genres (
			genre_id INTEGER PRIMARY KEY,
			genre_name TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS movie_genres (
			movie_id INTEGER,
			genre_id INTEGER,
			FOREIGN KEY(movie_id) REFERENCES movies(movie_id),
			FOREIGN KEY(genre_id) REFERENCES genres(genre_id)
		);`,
		`CREATE TABLE IF NOT EXISTS movie_source_categories (
			movie_id INTEGER,
			source_category TEXT,
			FOREIGN KEY(movie_id) REFERENCES movies(movie_id)
		);`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the warehouse file path.
func (s *Store) Path() string {
	return s.path
}

// LoadMovies replaces the warehouse tables with the silver movie dataset.
// The load is transactional and idempotent: each run deletes and reinserts.
func (s *Store) LoadMovies(movies []core.Movie) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin load: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"movie_source_categories", "movie_genres", "genres", "movies"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	insertMovie, err := tx.Prepare(`INSERT INTO movies
		(movie_id, imdb_id, title, overview, poster_path, vote_count, vote_average, popularity)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer insertMovie.Close()

	insertGenre, err := tx.Prepare(`INSERT OR IGNORE INTO genres (genre_id, genre_name) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer insertGenre.Close()

	insertMovieGenre, err := tx.Prepare(`INSERT INTO movie_genres (movie_id, genre_id) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer insertMovieGenre.Close()

	insertCategory, err := tx.Prepare(`INSERT INTO movie_source_categories (movie_id, source_category) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer insertCategory.Close()

	for _, m := range movies {
		if _, err := insertMovie.Exec(m.MovieID, m.IMDBID, m.Title, m.Overview,
			m.PosterPath, m.VoteCount, m.VoteAverage, m.Popularity); err != nil {
			return fmt.Errorf("failed to insert movie %d: %w", m.MovieID, err)
		}
		for _, g := range m.Genres {
			if _, err := insertGenre.Exec(g.ID, g.Name); err != nil {
				return fmt.Errorf("failed to insert genre %d: %w", g.ID, err)
			}
			if _, err := insertMovieGenre.Exec(m.MovieID, g.ID); err != nil {
				return fmt.Errorf("failed to link movie %d genre %d: %w", m.MovieID, g.ID, err)
			}
		}
		for _, cat := range m.SourceCategories {
			if _, err := insertCategory.Exec(m.MovieID, cat); err != nil {
				return fmt.Errorf("failed to insert category for movie %d: %w", m.MovieID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit load: %w", err)
	}

	logger.Info("warehouse load complete", "movies", len(movies), "path", s.path)
	return nil
}

// Counts returns the row count per warehouse table.
func (s *Store) Counts() (map[string]int, error) {
	counts := make(map[string]int)
	for _, table := range []string{"movies", "genres", "movie_genres", "movie_source_categories"} {
		var n int
		if err := s.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", table, err)
		}
		counts[table] = n
	}
	return counts, nil
}

// SoundnessReport counts referential problems without enforcing them:
// relation rows pointing at missing movies or genres, and movies with no
// genre or category links.
type SoundnessReport struct {
	OrphanGenreLinks      int // movie_genres rows with unknown movie or genre
	OrphanCategoryLinks   int // category rows with unknown movie
	MoviesWithoutGenres   int
	MoviesWithoutCategory int
}

// Soundness runs the referential checks over the loaded tables.
func (s *Store) Soundness() (SoundnessReport, error) {
	var report SoundnessReport

	queries := []struct {
		dest  *int
		query string
	}{
		{&report.OrphanGenreLinks, `SELECT COUNT(*) FROM movie_genres mg
			LEFT JOIN movies m ON m.movie_id = mg.movie_id
			LEFT JOIN genres g ON g.genre_id = mg.genre_id
			WHERE m.movie_id IS NULL OR g.genre_id IS NULL`},
		{&report.OrphanCategoryLinks, `SELECT COUNT(*) FROM movie_source_categories mc
			LEFT JOIN movies m ON m.movie_id = mc.movie_id
			WHERE m.movie_id IS NULL`},
		{&report.MoviesWithoutGenres, `SELECT COUNT(*) FROM movies m
			WHERE NOT EXISTS (SELECT 1 FROM movie_genres mg WHERE mg.movie_id = m.movie_id)`},
		{&report.MoviesWithoutCategory, `SELECT COUNT(*) FROM movies m
			WHERE NOT EXISTS (SELECT 1 FROM movie_source_categories mc WHERE mc.movie_id = m.movie_id)`},
	}

	for _, q := range queries {
		if err := s.db.QueryRow(q.query).Scan(q.dest); err != nil {
			return report, fmt.Errorf("soundness query failed: %w", err)
		}
	}
	return report, nil
}
