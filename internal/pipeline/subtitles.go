package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"cinecap/internal/core"
	"cinecap/internal/layers"
	"cinecap/internal/logger"
)

// FetchSubtitles looks up English subtitles for every silver movie with a
// valid IMDb id. The SRT text lands next to a per-movie metadata file so a
// later stage can consume either.
func (p *Pipeline) FetchSubtitles(ctx context.Context) error {
	if p.subs == nil {
		return fmt.Errorf("subtitle fetch requires a subtitle fetcher")
	}

	var movies []core.Movie
	silverPath := filepath.Join(p.dirs.Silver(), SilverMoviesFile)
	if err := layers.ReadJSON(silverPath, &movies); err != nil {
		return fmt.Errorf("subtitle fetch needs the silver dataset: %w", err)
	}

	if err := os.MkdirAll(p.dirs.Subtitles(), 0o755); err != nil {
		return fmt.Errorf("create subtitles directory: %w", err)
	}

	summary := Summary{Stage: "fetch-subtitles"}
	for _, m := range movies {
		if err := ctx.Err(); err != nil {
			return err
		}
		summary.Processed++

		if !layers.ValidIMDBID(m.IMDBID) {
			summary.Skipped++
			continue
		}

		result := p.subs.Fetch(ctx, m.MovieID, m.IMDBID)

		metaPath := filepath.Join(p.dirs.Subtitles(), strconv.Itoa(m.MovieID)+"_meta.json")
		if err := layers.WriteJSON(metaPath, result); err != nil {
			summary.Failed++
			logger.Warn("subtitle metadata save failed", err, "movie_id", m.MovieID)
			continue
		}

		if !result.Found {
			summary.Skipped++
			continue
		}

		srtPath := filepath.Join(p.dirs.Subtitles(), strconv.Itoa(m.MovieID)+".srt")
		if err := os.WriteFile(srtPath, []byte(result.Text), 0o644); err != nil {
			summary.Failed++
			logger.Warn("subtitle save failed", err, "movie_id", m.MovieID)
			continue
		}
		summary.Passed++
	}

	summary.log(p.runID)
	return nil
}
