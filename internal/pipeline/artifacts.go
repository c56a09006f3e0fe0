package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"cinecap/internal/core"
	"cinecap/internal/genval"
	"cinecap/internal/layers"
	"cinecap/internal/llm"
	"cinecap/internal/logger"
	"cinecap/internal/narrative"
	"cinecap/internal/taxonomy"
	"cinecap/internal/validate"
)

// artifactJob adapts one movie's generation closure to the retry runner.
type artifactJob struct {
	name     string
	missing  bool
	generate func(ctx context.Context) (string, error)
	validate func(payload string) (bool, string)
}

func (j artifactJob) Name() string        { return j.name }
func (j artifactJob) MissingInputs() bool { return j.missing }
func (j artifactJob) Generate(ctx context.Context) (string, error) {
	return j.generate(ctx)
}
func (j artifactJob) Validate(payload string) (bool, string) {
	return j.validate(payload)
}

// softArtifactJob adds the lenient second-chance validator.
type softArtifactJob struct {
	artifactJob
	soft func(payload string) (bool, string)
}

func (j softArtifactJob) SoftValidate(payload string) (bool, string) {
	return j.soft(payload)
}

func (p *Pipeline) generatorPause(ctx context.Context) error {
	return llm.Throttle(ctx, time.Duration(p.cfg.AI.Gemini.ThrottleMS)*time.Millisecond)
}

func (p *Pipeline) requireGenerator() error {
	if p.textGen == nil {
		return fmt.Errorf("artifact generation requires a text generator")
	}
	return nil
}

func countOutcome(summary *Summary, out genval.Outcome) {
	switch out.State {
	case genval.StateValidatedPass:
		summary.Passed++
	case genval.StateValidatedSoftPass:
		summary.SoftPass++
	case genval.StateSkipped:
		summary.Skipped++
	default:
		summary.Flagged++
	}
}

// loadValidatedMovies reads the silver dataset the artifact stages work
// from, preferring the review-validated file.
func (p *Pipeline) loadValidatedMovies() ([]core.Movie, error) {
	for _, name := range []string{SilverValidatedFile, SilverEnrichedFile, SilverMoviesFile} {
		path := filepath.Join(p.dirs.Silver(), name)
		if !layers.Exists(path) {
			continue
		}
		var movies []core.Movie
		if err := layers.ReadJSON(path, &movies); err != nil {
			return nil, err
		}
		return movies, nil
	}
	return nil, fmt.Errorf("no silver dataset under %s", p.dirs.Silver())
}

// Premises generates and validates a one-sentence premise per movie.
func (p *Pipeline) Premises(ctx context.Context) error {
	if err := p.requireGenerator(); err != nil {
		return err
	}
	movies, err := p.loadValidatedMovies()
	if err != nil {
		return err
	}

	rules := validate.PremiseRules{
		MinWords: p.cfg.Artifacts.PremiseMinWords,
		MaxWords: p.cfg.Artifacts.PremiseMaxWords,
	}
	runner := genval.Runner{MaxRetries: p.cfg.Artifacts.PremiseRetries}

	summary := Summary{Stage: "premises"}
	records := make([]core.PremiseRecord, 0, len(movies))

	for _, m := range movies {
		if err := ctx.Err(); err != nil {
			return err
		}
		summary.Processed++
		movie := m

		job := artifactJob{
			name:    fmt.Sprintf("premise/%d", movie.MovieID),
			missing: movie.Title == "" || movie.Overview == "",
			generate: func(ctx context.Context) (string, error) {
				if err := p.generatorPause(ctx); err != nil {
					return "", err
				}
				return narrative.GeneratePremise(ctx, p.textGen, movie.Title, movie.Overview)
			},
			validate: func(payload string) (bool, string) {
				return validate.Premise(payload, movie.Genres, rules)
			},
		}

		out := runner.Run(ctx, job)
		countOutcome(&summary, out)

		records = append(records, core.PremiseRecord{
			MovieID:    movie.MovieID,
			Title:      movie.Title,
			Premise:    out.Payload,
			Validation: out.Verdict(),
		})
	}

	if err := layers.WriteJSON(filepath.Join(p.dirs.Gold(), GoldPremisesFile), records); err != nil {
		return err
	}
	summary.log(p.runID)
	return nil
}

// Anchors generates character anchors from each movie's premise.
func (p *Pipeline) Anchors(ctx context.Context) error {
	if err := p.requireGenerator(); err != nil {
		return err
	}

	var premises []core.PremiseRecord
	if err := layers.ReadJSON(filepath.Join(p.dirs.Gold(), GoldPremisesFile), &premises); err != nil {
		return fmt.Errorf("anchor generation needs the premise table: %w", err)
	}

	runner := genval.Runner{MaxRetries: p.cfg.Artifacts.AnchorsRetries}
	summary := Summary{Stage: "anchors"}
	records := make([]core.AnchorsRecord, 0, len(premises))

	for _, pr := range premises {
		if err := ctx.Err(); err != nil {
			return err
		}
		summary.Processed++
		premise := pr

		var parsed []core.CharacterAnchor
		job := artifactJob{
			name:    fmt.Sprintf("anchors/%d", premise.MovieID),
			missing: premise.Premise == "" || premise.Validation.Status == core.StatusSkipped,
			generate: func(ctx context.Context) (string, error) {
				if err := p.generatorPause(ctx); err != nil {
					return "", err
				}
				return narrative.GenerateAnchors(ctx, p.textGen, premise.Title, premise.Premise)
			},
			validate: func(payload string) (bool, string) {
				anchors, parseErr := narrative.ParseAnchors(payload)
				if parseErr != nil {
					return false, "invalid_json"
				}
				parsed = anchors
				ok, reason := validate.Anchors(anchors)
				if ok {
					parsed = validate.FilterAnchors(anchors)
				}
				return ok, reason
			},
		}

		out := runner.Run(ctx, job)
		countOutcome(&summary, out)

		record := core.AnchorsRecord{
			MovieID:    premise.MovieID,
			Title:      premise.Title,
			Validation: out.Verdict(),
		}
		// Flagged records keep the last parseable payload alongside the
		// failure reason so nothing generated is discarded.
		if out.State == genval.StateValidatedPass || out.State == genval.StateFlagged {
			record.Anchors = parsed
		}
		records = append(records, record)
	}

	if err := layers.WriteJSON(filepath.Join(p.dirs.Gold(), GoldAnchorsFile), records); err != nil {
		return err
	}
	summary.log(p.runID)
	return nil
}

// Axes selects emotional tension axes per movie, constrained by the
// genre-derived candidate pool.
func (p *Pipeline) Axes(ctx context.Context) error {
	if err := p.requireGenerator(); err != nil {
		return err
	}

	var premises []core.PremiseRecord
	if err := layers.ReadJSON(filepath.Join(p.dirs.Gold(), GoldPremisesFile), &premises); err != nil {
		return fmt.Errorf("axis selection needs the premise table: %w", err)
	}

	anchorsByID := map[int]core.AnchorsRecord{}
	var anchorRecords []core.AnchorsRecord
	if readOptional(filepath.Join(p.dirs.Gold(), GoldAnchorsFile), &anchorRecords) {
		anchorsByID = layers.IndexAnchors(anchorRecords)
	}

	genresByID, err := p.movieGenres()
	if err != nil {
		return err
	}

	runner := genval.Runner{MaxRetries: p.cfg.Artifacts.AxesRetries}
	summary := Summary{Stage: "axes"}
	records := make([]core.AxesRecord, 0, len(premises))

	for _, pr := range premises {
		if err := ctx.Err(); err != nil {
			return err
		}
		summary.Processed++
		premise := pr

		genreNames := genresByID[premise.MovieID]
		candidates := taxonomy.AllowedAxes(genreNames)

		var anchorLabels []string
		for _, a := range anchorsByID[premise.MovieID].Anchors {
			anchorLabels = append(anchorLabels, a.Label)
		}

		var parsed []string
		job := artifactJob{
			name:    fmt.Sprintf("axes/%d", premise.MovieID),
			missing: premise.Premise == "" || len(candidates) == 0,
			generate: func(ctx context.Context) (string, error) {
				if err := p.generatorPause(ctx); err != nil {
					return "", err
				}
				return narrative.GenerateAxes(ctx, p.textGen, premise.Title, premise.Premise,
					anchorLabels, candidates, p.cfg.Artifacts.MaxPrimaryAxes)
			},
			validate: func(payload string) (bool, string) {
				axes, parseErr := narrative.ParseAxes(payload)
				if parseErr != nil {
					return false, "invalid_json"
				}
				parsed = axes
				return validate.Axes(axes, genreNames)
			},
		}

		out := runner.Run(ctx, job)

		record := core.AxesRecord{
			MovieID:    premise.MovieID,
			Title:      premise.Title,
			Validation: out.Verdict(),
		}
		// Flagged records keep the last parseable payload alongside the
		// failure reason so nothing generated is discarded.
		if out.State == genval.StateValidatedPass || out.State == genval.StateFlagged {
			record.Axes = parsed
		}

		// A rejected generation falls back to the deterministic
		// keyword-overlap selector before the movie is given up on.
		if out.State == genval.StateFlagged {
			anchors := anchorsByID[premise.MovieID].Anchors
			fallback := taxonomy.SelectAxes(genreNames, premise.Premise, anchors, p.cfg.Artifacts.MaxPrimaryAxes)
			if ok, _ := validate.Axes(fallback, genreNames); ok && len(fallback) > 0 {
				record.Axes = fallback
				record.Validation = core.Verdict{Status: core.StatusSoftPass, Reason: "fallback_selector"}
				out.State = genval.StateValidatedSoftPass
				out.Reason = "fallback_selector"
			}
		}

		countOutcome(&summary, out)
		records = append(records, record)
	}

	if err := layers.WriteJSON(filepath.Join(p.dirs.Gold(), GoldAxesFile), records); err != nil {
		return err
	}
	summary.log(p.runID)
	return nil
}

// Critics generates the experiential critic summary per movie. The strict
// validator gets a lenient second chance grounded on the premise.
func (p *Pipeline) Critics(ctx context.Context) error {
	if err := p.requireGenerator(); err != nil {
		return err
	}

	premises, axes, err := p.premisesAndAxes()
	if err != nil {
		return err
	}

	criticRules := validate.CriticRules{MinWords: p.cfg.Artifacts.CriticMinWords}
	runner := genval.Runner{MaxRetries: p.cfg.Artifacts.CriticRetries}
	summary := Summary{Stage: "critics"}
	records := make([]core.CriticRecord, 0, len(premises))

	for _, pr := range premises {
		if err := ctx.Err(); err != nil {
			return err
		}
		summary.Processed++
		premise := pr
		axisRecord := axes[premise.MovieID]

		job := softArtifactJob{
			artifactJob: artifactJob{
				name:    fmt.Sprintf("critic/%d", premise.MovieID),
				missing: premise.Premise == "" || len(axisRecord.Axes) == 0,
				generate: func(ctx context.Context) (string, error) {
					if err := p.generatorPause(ctx); err != nil {
						return "", err
					}
					return narrative.GenerateCritic(ctx, p.textGen, premise.Title, premise.Premise, axisRecord.Axes)
				},
				validate: func(payload string) (bool, string) {
					return validate.Critic(payload, criticRules)
				},
			},
			soft: func(payload string) (bool, string) {
				return validate.CriticSoft(payload, premise.Premise)
			},
		}

		out := runner.Run(ctx, job)
		countOutcome(&summary, out)

		records = append(records, core.CriticRecord{
			MovieID:    premise.MovieID,
			Title:      premise.Title,
			Summary:    out.Payload,
			Validation: out.Verdict(),
		})
	}

	if err := layers.WriteJSON(filepath.Join(p.dirs.Gold(), GoldCriticsFile), records); err != nil {
		return err
	}
	summary.log(p.runID)
	return nil
}

// CleanupCritics repairs flagged critic summaries deterministically and
// re-validates each exactly once. No generation happens here.
func (p *Pipeline) CleanupCritics() error {
	var records []core.CriticRecord
	criticsPath := filepath.Join(p.dirs.Gold(), GoldCriticsFile)
	if err := layers.ReadJSON(criticsPath, &records); err != nil {
		return fmt.Errorf("cleanup needs the critic table: %w", err)
	}

	criticRules := validate.CriticRules{MinWords: p.cfg.Artifacts.CriticMinWords}
	repaired := 0

	for i := range records {
		if records[i].Validation.Status != core.StatusFlagged || records[i].Summary == "" {
			continue
		}

		cleaned := validate.CleanupCritic(records[i].Summary)
		if ok, reason := validate.Critic(cleaned, criticRules); ok {
			records[i].Summary = cleaned
			records[i].Validation = core.Verdict{Status: core.StatusPass, Reason: reason}
			repaired++
		}
	}

	logger.Info("critic cleanup", "run_id", p.runID,
		"records", len(records), "repaired", repaired)
	return layers.WriteJSON(criticsPath, records)
}

// Capsules generates the emotional capsule set per movie.
func (p *Pipeline) Capsules(ctx context.Context) error {
	if err := p.requireGenerator(); err != nil {
		return err
	}

	premises, axes, err := p.premisesAndAxes()
	if err != nil {
		return err
	}

	rules := validate.CapsuleRules{
		Expected: p.cfg.Artifacts.CapsulesExpected,
		MinCount: p.cfg.Artifacts.CapsulesMinCount,
		MaxWords: p.cfg.Artifacts.CapsuleMaxWords,
	}
	runner := genval.Runner{MaxRetries: p.cfg.Artifacts.CapsulesRetries}
	summary := Summary{Stage: "capsules"}
	records := make([]core.CapsulesRecord, 0, len(premises))

	for _, pr := range premises {
		if err := ctx.Err(); err != nil {
			return err
		}
		summary.Processed++
		premise := pr
		axisRecord := axes[premise.MovieID]

		var parsed []core.Capsule
		job := artifactJob{
			name:    fmt.Sprintf("capsules/%d", premise.MovieID),
			missing: premise.Premise == "" || len(axisRecord.Axes) == 0,
			generate: func(ctx context.Context) (string, error) {
				if err := p.generatorPause(ctx); err != nil {
					return "", err
				}
				return narrative.GenerateCapsules(ctx, p.textGen, premise.Premise,
					axisRecord.Axes, rules.Expected)
			},
			validate: func(payload string) (bool, string) {
				capsules, parseErr := narrative.ParseCapsules(payload)
				if parseErr != nil {
					return false, "invalid_format"
				}
				parsed = capsules
				return validate.Capsules(capsules, axisRecord.Axes, rules)
			},
		}

		out := runner.Run(ctx, job)
		countOutcome(&summary, out)

		record := core.CapsulesRecord{
			MovieID:    premise.MovieID,
			Title:      premise.Title,
			Validation: out.Verdict(),
		}
		// Flagged records keep the last parseable payload alongside the
		// failure reason so nothing generated is discarded.
		if out.State == genval.StateValidatedPass || out.State == genval.StateFlagged {
			record.Capsules = parsed
		}
		records = append(records, record)
	}

	if err := layers.WriteJSON(filepath.Join(p.dirs.Gold(), GoldCapsulesFile), records); err != nil {
		return err
	}
	summary.log(p.runID)
	return nil
}

// movieGenres indexes genre names by movie id from the silver dataset.
func (p *Pipeline) movieGenres() (map[int][]string, error) {
	movies, err := p.loadValidatedMovies()
	if err != nil {
		return nil, err
	}
	out := make(map[int][]string, len(movies))
	for _, m := range movies {
		var names []string
		for _, g := range m.Genres {
			names = append(names, g.Name)
		}
		out[m.MovieID] = names
	}
	return out, nil
}

// premisesAndAxes loads the two upstream tables the later artifact stages
// need.
func (p *Pipeline) premisesAndAxes() ([]core.PremiseRecord, map[int]core.AxesRecord, error) {
	var premises []core.PremiseRecord
	if err := layers.ReadJSON(filepath.Join(p.dirs.Gold(), GoldPremisesFile), &premises); err != nil {
		return nil, nil, fmt.Errorf("stage needs the premise table: %w", err)
	}

	axes := map[int]core.AxesRecord{}
	var axisRecords []core.AxesRecord
	if readOptional(filepath.Join(p.dirs.Gold(), GoldAxesFile), &axisRecords) {
		axes = layers.IndexAxes(axisRecords)
	}
	return premises, axes, nil
}
