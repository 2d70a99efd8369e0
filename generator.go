package novelctx

import "context"

// Generator produces text from a prompt using a language model.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Summarizer writes summaries of stored episodes.
type Summarizer interface {
	// SummarizeEpisode summarizes the episode's stored content and saves the
	// result on the episode.
	// Returns ENOTFOUND if the episode does not exist and EINVALID if its
	// content has not been fetched.
	SummarizeEpisode(ctx context.Context, episodeID string) (string, error)
}

// CharacterExtractor finds characters in stored episodes.
type CharacterExtractor interface {
	// ExtractCharacters lists the characters appearing in the episode and
	// saves them on its novel.
	ExtractCharacters(ctx context.Context, episodeID string) ([]*Character, error)
}
