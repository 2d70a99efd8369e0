package mock

import (
	"context"

	"github.com/fwojciec/novelctx"
)

var (
	_ novelctx.Generator          = (*Generator)(nil)
	_ novelctx.Summarizer         = (*Summarizer)(nil)
	_ novelctx.CharacterExtractor = (*CharacterExtractor)(nil)
)

// Generator is a mock implementation of novelctx.Generator.
type Generator struct {
	GenerateFn func(ctx context.Context, prompt string) (string, error)
}

func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	return g.GenerateFn(ctx, prompt)
}

// Summarizer is a mock implementation of novelctx.Summarizer.
type Summarizer struct {
	SummarizeEpisodeFn func(ctx context.Context, episodeID string) (string, error)
}

func (s *Summarizer) SummarizeEpisode(ctx context.Context, episodeID string) (string, error) {
	return s.SummarizeEpisodeFn(ctx, episodeID)
}

// CharacterExtractor is a mock implementation of novelctx.CharacterExtractor.
type CharacterExtractor struct {
	ExtractCharactersFn func(ctx context.Context, episodeID string) ([]*novelctx.Character, error)
}

func (e *CharacterExtractor) ExtractCharacters(ctx context.Context, episodeID string) ([]*novelctx.Character, error) {
	return e.ExtractCharactersFn(ctx, episodeID)
}
