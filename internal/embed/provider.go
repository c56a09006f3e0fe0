package embed

import (
	"context"

	"cinecap/internal/logger"
)

// MaxInputChars bounds the text sent to any embedding backend. Longer inputs
// are truncated before embedding to keep latency and cost predictable.
const MaxInputChars = 3500

// Provider converts text into a fixed-length vector. A nil vector with a nil
// error means the provider could not embed the input; downstream consumers
// treat that as "no signal" rather than an error.
type Provider interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Fallback tries a remote provider first when enabled and falls back to the
// local model on any remote failure. If both fail, it returns a nil vector
// and no error: a missing embedding degrades relevance to zero, it never
// aborts the batch.
type Fallback struct {
	Remote    Provider // Optional; consulted only when UseRemote is set
	Local     Provider
	UseRemote bool
}

// NewFallback wires the standard remote-then-local embedding policy.
func NewFallback(remote Provider, local Provider, useRemote bool) *Fallback {
	return &Fallback{Remote: remote, Local: local, UseRemote: useRemote}
}

// Embed implements Provider.
func (f *Fallback) Embed(ctx context.Context, text string) ([]float64, error) {
	text = Truncate(text)
	if text == "" {
		return nil, nil
	}

	if f.UseRemote && f.Remote != nil {
		vec, err := f.Remote.Embed(ctx, text)
		if err == nil && vec != nil {
			return vec, nil
		}
		if err != nil {
			logger.Warn("remote embedding failed, falling back to local", err)
		}
	}

	if f.Local == nil {
		return nil, nil
	}

	vec, err := f.Local.Embed(ctx, text)
	if err != nil {
		logger.Warn("local embedding failed", err)
		return nil, nil
	}
	return vec, nil
}

// Truncate caps text at MaxInputChars bytes without splitting the input
// mid-rune.
func Truncate(text string) string {
	if len(text) <= MaxInputChars {
		return text
	}
	cut := MaxInputChars
	for cut > 0 && !isRuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
