package gemini

import (
	"context"
	"strings"

	"github.com/fwojciec/novelctx"
)

// DefaultMaxPromptTokens bounds episode prompts when a TokenCounter is set.
const DefaultMaxPromptTokens = 200_000

// Ensure Summarizer implements novelctx.Summarizer at compile time.
var _ novelctx.Summarizer = (*Summarizer)(nil)

// Summarizer summarizes stored episodes with a Generator and saves the
// summary on the episode.
type Summarizer struct {
	Generator novelctx.Generator
	Episodes  novelctx.EpisodeService

	// Tokens is optional. When set, prompts above MaxPromptTokens are refused.
	Tokens          novelctx.TokenCounter
	MaxPromptTokens int
}

// NewSummarizer creates a new Summarizer.
func NewSummarizer(generator novelctx.Generator, episodes novelctx.EpisodeService) *Summarizer {
	return &Summarizer{
		Generator:       generator,
		Episodes:        episodes,
		MaxPromptTokens: DefaultMaxPromptTokens,
	}
}

// SummarizeEpisode summarizes the episode's content. The episode's summary
// status moves to processing and then to completed or failed.
func (s *Summarizer) SummarizeEpisode(ctx context.Context, episodeID string) (string, error) {
	ep, err := loadEpisode(ctx, s.Episodes, episodeID)
	if err != nil {
		return "", err
	}

	if err := s.Episodes.UpdateEpisodeSummary(ctx, ep.ID, ep.Summary, novelctx.StatusProcessing); err != nil {
		return "", err
	}

	summary, err := s.summarize(ctx, ep)
	if err != nil {
		// Keep the previous summary text so a failed retry loses nothing.
		if uerr := s.Episodes.UpdateEpisodeSummary(ctx, ep.ID, ep.Summary, novelctx.StatusFailed); uerr != nil {
			return "", uerr
		}
		return "", err
	}

	if err := s.Episodes.UpdateEpisodeSummary(ctx, ep.ID, summary, novelctx.StatusCompleted); err != nil {
		return "", err
	}
	return summary, nil
}

func (s *Summarizer) summarize(ctx context.Context, ep *novelctx.Episode) (string, error) {
	prompt := BuildSummaryPrompt(ep)
	if err := checkBudget(ctx, s.Tokens, s.MaxPromptTokens, prompt); err != nil {
		return "", err
	}

	text, err := s.Generator.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// loadEpisode finds an episode whose content has been fetched.
func loadEpisode(ctx context.Context, episodes novelctx.EpisodeService, id string) (*novelctx.Episode, error) {
	if id == "" {
		return nil, novelctx.Errorf(novelctx.EINVALID, "episode ID required")
	}
	ep, err := episodes.FindEpisodeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ep.HasContent() || ep.Content == "" {
		return nil, novelctx.Errorf(novelctx.EINVALID, "episode %d has no fetched content", ep.Number)
	}
	return ep, nil
}

// checkBudget refuses prompts above limit tokens. A nil counter or a
// non-positive limit disables the check.
func checkBudget(ctx context.Context, tokens novelctx.TokenCounter, limit int, prompt string) error {
	if tokens == nil || limit <= 0 {
		return nil
	}
	n, err := tokens.CountTokens(ctx, prompt)
	if err != nil {
		return err
	}
	if n > limit {
		return novelctx.Errorf(novelctx.EINVALID, "prompt has %d tokens, limit is %d", n, limit)
	}
	return nil
}
