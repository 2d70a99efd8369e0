package gemini

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/fwojciec/novelctx"
)

// Ensure CharacterExtractor implements novelctx.CharacterExtractor at compile time.
var _ novelctx.CharacterExtractor = (*CharacterExtractor)(nil)

// CharacterExtractor asks a Generator for the characters of stored
// episodes and saves them on the episode's novel.
type CharacterExtractor struct {
	Generator  novelctx.Generator
	Episodes   novelctx.EpisodeService
	Characters novelctx.CharacterService

	// Tokens is optional. When set, prompts above MaxPromptTokens are refused.
	Tokens          novelctx.TokenCounter
	MaxPromptTokens int
}

// NewCharacterExtractor creates a new CharacterExtractor.
func NewCharacterExtractor(generator novelctx.Generator, episodes novelctx.EpisodeService, characters novelctx.CharacterService) *CharacterExtractor {
	return &CharacterExtractor{
		Generator:       generator,
		Episodes:        episodes,
		Characters:      characters,
		MaxPromptTokens: DefaultMaxPromptTokens,
	}
}

// ExtractCharacters lists the characters of the episode and upserts each
// one with the episode as its first appearance.
func (e *CharacterExtractor) ExtractCharacters(ctx context.Context, episodeID string) ([]*novelctx.Character, error) {
	ep, err := loadEpisode(ctx, e.Episodes, episodeID)
	if err != nil {
		return nil, err
	}

	prompt := BuildCharacterPrompt(ep)
	if err := checkBudget(ctx, e.Tokens, e.MaxPromptTokens, prompt); err != nil {
		return nil, err
	}

	text, err := e.Generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	found, err := ParseCharacters(text)
	if err != nil {
		return nil, err
	}

	characters := make([]*novelctx.Character, 0, len(found))
	for _, c := range found {
		c.NovelID = ep.NovelID
		c.FirstAppearanceEpisodeID = ep.ID
		if _, err := e.Characters.UpsertCharacter(ctx, c); err != nil {
			return nil, err
		}
		characters = append(characters, c)
	}
	return characters, nil
}

type characterJSON struct {
	Name        string   `json:"name"`
	Reading     string   `json:"reading"`
	Aliases     []string `json:"aliases"`
	Description string   `json:"description"`
}

// ParseCharacters decodes a model answer into characters. A surrounding
// markdown code fence is tolerated. Entries without a name are dropped and
// repeated names are merged into the first entry.
func ParseCharacters(text string) ([]*novelctx.Character, error) {
	text = stripCodeFence(text)

	var entries []characterJSON
	if err := json.Unmarshal([]byte(text), &entries); err != nil {
		return nil, novelctx.WrapErrorf(err, novelctx.EINTERNAL, "model returned invalid character list")
	}

	var characters []*novelctx.Character
	byName := make(map[string]*novelctx.Character)
	for _, entry := range entries {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			continue
		}

		c, ok := byName[name]
		if !ok {
			c = &novelctx.Character{Name: name, Aliases: []string{}}
			byName[name] = c
			characters = append(characters, c)
		}
		if c.Reading == "" {
			c.Reading = strings.TrimSpace(entry.Reading)
		}
		if c.Description == "" {
			c.Description = strings.TrimSpace(entry.Description)
		}
		for _, alias := range entry.Aliases {
			if alias = strings.TrimSpace(alias); alias != "" && alias != name {
				c.Aliases = appendUnique(c.Aliases, alias)
			}
		}
	}
	return characters, nil
}

func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[i+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "```"))
}

func appendUnique(items []string, item string) []string {
	for _, existing := range items {
		if existing == item {
			return items
		}
	}
	return append(items, item)
}
