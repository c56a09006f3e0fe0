package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cinecap/internal/core"
	"cinecap/internal/layers"
	"cinecap/internal/logger"
	"cinecap/internal/store"
)

// Transform merges the bronze category files into the silver dataset.
func (p *Pipeline) Transform() error {
	entries, err := os.ReadDir(p.dirs.Bronze())
	if err != nil {
		return fmt.Errorf("transform needs bronze files: %w", err)
	}

	var rows []core.Movie
	files := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), "_raw.json") {
			continue
		}
		var batch []core.Movie
		if err := layers.ReadJSON(filepath.Join(p.dirs.Bronze(), entry.Name()), &batch); err != nil {
			return err
		}
		rows = append(rows, batch...)
		files++
	}
	if files == 0 {
		return fmt.Errorf("no bronze category files under %s", p.dirs.Bronze())
	}

	merged, stats := layers.MergeMovies(rows)
	logger.Info("silver transform",
		"run_id", p.runID, "bronze_files", files,
		"input", stats.Input, "dropped", stats.Dropped, "output", stats.Output)

	return layers.WriteJSON(filepath.Join(p.dirs.Silver(), SilverMoviesFile), merged)
}

// Gold merges all artifact tables into the canonical gold file. Absent
// tables are tolerated so the stage can run on partial pipelines.
func (p *Pipeline) Gold() error {
	tables := layers.GoldTables{}

	var premises []core.PremiseRecord
	if readOptional(filepath.Join(p.dirs.Gold(), GoldPremisesFile), &premises) {
		tables.Premises = layers.IndexPremises(premises)
	}
	var axes []core.AxesRecord
	if readOptional(filepath.Join(p.dirs.Gold(), GoldAxesFile), &axes) {
		tables.Axes = layers.IndexAxes(axes)
	}
	var anchors []core.AnchorsRecord
	if readOptional(filepath.Join(p.dirs.Gold(), GoldAnchorsFile), &anchors) {
		tables.Anchors = layers.IndexAnchors(anchors)
	}
	var critics []core.CriticRecord
	if readOptional(filepath.Join(p.dirs.Gold(), GoldCriticsFile), &critics) {
		tables.Critics = layers.IndexCritics(critics)
	}
	var capsules []core.CapsulesRecord
	if readOptional(filepath.Join(p.dirs.Gold(), GoldCapsulesFile), &capsules) {
		tables.Capsules = layers.IndexCapsules(capsules)
	}

	merged := layers.MergeGold(tables)
	logger.Info("gold merge", "run_id", p.runID, "movies", len(merged))

	return layers.WriteJSON(filepath.Join(p.dirs.Gold(), GoldMoviesFile), merged)
}

// Warehouse loads the silver dataset into the SQLite warehouse and logs
// the soundness report.
func (p *Pipeline) Warehouse() error {
	var movies []core.Movie
	silverPath := filepath.Join(p.dirs.Silver(), SilverMoviesFile)
	if err := layers.ReadJSON(silverPath, &movies); err != nil {
		return fmt.Errorf("warehouse load needs the silver dataset: %w", err)
	}

	s, err := store.NewStore(p.cfg.Warehouse.Path)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.LoadMovies(movies); err != nil {
		return err
	}

	report, err := s.Soundness()
	if err != nil {
		return err
	}
	logger.Info("warehouse soundness",
		"run_id", p.runID,
		"orphan_genre_links", report.OrphanGenreLinks,
		"orphan_category_links", report.OrphanCategoryLinks,
		"movies_without_genres", report.MoviesWithoutGenres,
		"movies_without_categories", report.MoviesWithoutCategory,
	)
	return nil
}

// readOptional reads a layer file if present, returning whether it was.
func readOptional(path string, v interface{}) bool {
	if !layers.Exists(path) {
		return false
	}
	if err := layers.ReadJSON(path, v); err != nil {
		logger.Warn("skipping unreadable layer file", err, "path", path)
		return false
	}
	return true
}
