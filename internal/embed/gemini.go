package embed

import "context"

// EmbeddingClient is the slice of the LLM client the remote provider needs.
type EmbeddingClient interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float64, error)
}

// Gemini adapts the Gemini client to the Provider interface.
type Gemini struct {
	client EmbeddingClient
}

// NewGemini wraps an embedding-capable LLM client as a remote Provider.
func NewGemini(client EmbeddingClient) *Gemini {
	return &Gemini{client: client}
}

// Embed implements Provider.
func (g *Gemini) Embed(ctx context.Context, text string) ([]float64, error) {
	return g.client.GenerateEmbedding(ctx, Truncate(text))
}
