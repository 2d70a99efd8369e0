package novelctx

import "context"

// TokenCounter counts model tokens in text. It bounds the size of episode
// prompts sent to a Generator.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
