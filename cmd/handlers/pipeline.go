package handlers

import (
	"context"
	"time"

	"cinecap/internal/config"
	"cinecap/internal/embed"
	"cinecap/internal/llm"
	"cinecap/internal/pipeline"
	"cinecap/internal/subtitles"
	"cinecap/internal/tmdb"
)

// localPipeline builds a pipeline for stages that only touch the data
// layers on disk.
func localPipeline() *pipeline.Pipeline {
	return pipeline.New(config.Get(), nil, nil, nil, nil)
}

// catalogPipeline builds a pipeline with the catalog API client attached.
func catalogPipeline() (*pipeline.Pipeline, error) {
	if err := config.RequireCatalogToken(); err != nil {
		return nil, err
	}
	cfg := config.Get()

	opts := []tmdb.Option{
		tmdb.WithThrottle(time.Duration(cfg.Catalog.ThrottleMS) * time.Millisecond),
	}
	if cfg.Catalog.BaseURL != "" {
		opts = append(opts, tmdb.WithBaseURL(cfg.Catalog.BaseURL))
	}

	client, err := tmdb.NewClient(cfg.Catalog.BearerToken, opts...)
	if err != nil {
		return nil, err
	}
	return pipeline.New(cfg, client, nil, nil, nil), nil
}

// subtitlePipeline builds a pipeline with the subtitle fetcher attached.
func subtitlePipeline() *pipeline.Pipeline {
	fetcher := subtitles.NewFetcher("", 600*time.Millisecond)
	return pipeline.New(config.Get(), nil, nil, nil, fetcher)
}

// embeddingPipeline builds a pipeline with the embedding provider. The
// remote provider is attached only when remote embeddings are enabled and
// a key is configured; the local embedder always backs it.
func embeddingPipeline(ctx context.Context) (*pipeline.Pipeline, error) {
	cfg := config.Get()

	var remote embed.Provider
	if cfg.AI.Gemini.UseRemoteEmbed {
		client, err := llm.NewClient(ctx, cfg.AI.Gemini.Model)
		if err != nil {
			return nil, err
		}
		remote = embed.NewGemini(client)
	}

	provider := embed.NewFallback(remote, embed.NewLocal(), cfg.AI.Gemini.UseRemoteEmbed)
	return pipeline.New(cfg, nil, nil, provider, nil), nil
}

// generatorPipeline builds a pipeline with the text generator attached.
func generatorPipeline(ctx context.Context) (*pipeline.Pipeline, error) {
	if err := config.RequireGeminiKey(); err != nil {
		return nil, err
	}
	cfg := config.Get()

	client, err := llm.NewClient(ctx, cfg.AI.Gemini.Model)
	if err != nil {
		return nil, err
	}
	return pipeline.New(cfg, nil, client, nil, nil), nil
}
