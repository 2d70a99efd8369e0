package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"slices"

	"github.com/fwojciec/novelctx"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ novelctx.CharacterService = (*CharacterService)(nil)

const characterColumns = "id, novel_id, name, reading, aliases, description, first_appearance_episode_id, created_at, updated_at"

// CharacterService implements novelctx.CharacterService using SQLite.
type CharacterService struct {
	db *DB
}

// NewCharacterService creates a new CharacterService.
func NewCharacterService(db *DB) *CharacterService {
	return &CharacterService{db: db}
}

// UpsertCharacter creates the character or merges it into the record with
// the same novel and name. Empty fields never clear stored ones, aliases
// accumulate and the first appearance is kept once set.
func (s *CharacterService) UpsertCharacter(ctx context.Context, character *novelctx.Character) (novelctx.UpsertResult, error) {
	if err := character.Validate(); err != nil {
		return novelctx.UpsertUnchanged, err
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return novelctx.UpsertUnchanged, err
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, "SELECT "+characterColumns+" FROM characters WHERE novel_id = ? AND name = ?",
		character.NovelID, character.Name)
	existing, err := scanCharacter(row)
	if errors.Is(err, sql.ErrNoRows) {
		character.ID = uuid.New().String()
		character.CreatedAt = now()
		character.UpdatedAt = character.CreatedAt
		if character.Aliases == nil {
			character.Aliases = []string{}
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO characters (id, novel_id, name, reading, aliases, description, first_appearance_episode_id, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, character.ID, character.NovelID, character.Name, character.Reading, joinList(character.Aliases),
			character.Description, nullString(character.FirstAppearanceEpisodeID),
			formatTime(character.CreatedAt), formatTime(character.UpdatedAt)); err != nil {
			return novelctx.UpsertUnchanged, err
		}
		return novelctx.UpsertCreated, tx.Commit()
	}
	if err != nil {
		return novelctx.UpsertUnchanged, err
	}

	changed := mergeText(&existing.Reading, character.Reading)
	changed = mergeText(&existing.Description, character.Description) || changed
	for _, alias := range character.Aliases {
		if alias != "" && alias != existing.Name && !slices.Contains(existing.Aliases, alias) {
			existing.Aliases = append(existing.Aliases, alias)
			changed = true
		}
	}
	if existing.FirstAppearanceEpisodeID == "" && character.FirstAppearanceEpisodeID != "" {
		existing.FirstAppearanceEpisodeID = character.FirstAppearanceEpisodeID
		changed = true
	}

	result := novelctx.UpsertUnchanged
	if changed {
		existing.UpdatedAt = now()
		if _, err := tx.ExecContext(ctx, `
			UPDATE characters
			SET reading = ?, aliases = ?, description = ?, first_appearance_episode_id = ?, updated_at = ?
			WHERE id = ?
		`, existing.Reading, joinList(existing.Aliases), existing.Description,
			nullString(existing.FirstAppearanceEpisodeID), formatTime(existing.UpdatedAt), existing.ID); err != nil {
			return novelctx.UpsertUnchanged, err
		}
		result = novelctx.UpsertUpdated
	}

	if err := tx.Commit(); err != nil {
		return novelctx.UpsertUnchanged, err
	}
	*character = *existing
	return result, nil
}

// FindCharacters retrieves the characters of a novel ordered by name.
func (s *CharacterService) FindCharacters(ctx context.Context, novelID string) ([]*novelctx.Character, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+characterColumns+" FROM characters WHERE novel_id = ? ORDER BY name", novelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var characters []*novelctx.Character
	for rows.Next() {
		character, err := scanCharacter(rows)
		if err != nil {
			return nil, err
		}
		characters = append(characters, character)
	}

	return characters, rows.Err()
}

func scanCharacter(row scanner) (*novelctx.Character, error) {
	var character novelctx.Character
	var aliases, createdAt, updatedAt string
	var firstAppearance sql.NullString

	if err := row.Scan(&character.ID, &character.NovelID, &character.Name, &character.Reading, &aliases,
		&character.Description, &firstAppearance, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	character.Aliases = splitList(aliases)
	character.FirstAppearanceEpisodeID = firstAppearance.String

	var err error
	if character.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if character.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &character, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
