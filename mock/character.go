package mock

import (
	"context"

	"github.com/fwojciec/novelctx"
)

var _ novelctx.CharacterService = (*CharacterService)(nil)

// CharacterService is a mock implementation of novelctx.CharacterService.
type CharacterService struct {
	UpsertCharacterFn func(ctx context.Context, character *novelctx.Character) (novelctx.UpsertResult, error)
	FindCharactersFn  func(ctx context.Context, novelID string) ([]*novelctx.Character, error)
}

func (s *CharacterService) UpsertCharacter(ctx context.Context, character *novelctx.Character) (novelctx.UpsertResult, error) {
	return s.UpsertCharacterFn(ctx, character)
}

func (s *CharacterService) FindCharacters(ctx context.Context, novelID string) ([]*novelctx.Character, error) {
	return s.FindCharactersFn(ctx, novelID)
}
