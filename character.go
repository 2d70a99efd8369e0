package novelctx

import (
	"context"
	"time"
)

// Character represents a named character found in a novel.
type Character struct {
	ID                       string    `json:"id"`
	NovelID                  string    `json:"novelId"`
	Name                     string    `json:"name"`
	Reading                  string    `json:"reading"`
	Aliases                  []string  `json:"aliases"`
	Description              string    `json:"description"`
	FirstAppearanceEpisodeID string    `json:"firstAppearanceEpisodeId"`
	CreatedAt                time.Time `json:"createdAt"`
	UpdatedAt                time.Time `json:"updatedAt"`
}

// Validate returns an error if the character contains invalid fields.
func (c *Character) Validate() error {
	if c.NovelID == "" {
		return Errorf(EINVALID, "character novel ID required")
	}
	if c.Name == "" {
		return Errorf(EINVALID, "character name required")
	}
	return nil
}

// CharacterService represents a service for managing characters.
type CharacterService interface {
	// UpsertCharacter creates the character or merges non-empty fields into
	// the record with the same novel and name. An existing first appearance
	// is never replaced.
	UpsertCharacter(ctx context.Context, character *Character) (UpsertResult, error)

	// FindCharacters retrieves the characters of a novel ordered by name.
	FindCharacters(ctx context.Context, novelID string) ([]*Character, error)
}
