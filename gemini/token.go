package gemini

import (
	"context"

	"github.com/fwojciec/novelctx"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ novelctx.TokenCounter = (*TokenCounter)(nil)

// TokenCounter measures episode text against a model's vocabulary without
// an API round trip, so prompt budgets are checked before a Generate call.
type TokenCounter struct {
	model string
	local *tokenizer.LocalTokenizer
}

// NewTokenCounter loads the local tokenizer of model. Models without a
// published vocabulary are rejected with EINVALID.
func NewTokenCounter(model string) (*TokenCounter, error) {
	local, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, novelctx.WrapErrorf(err, novelctx.EINVALID, "no local tokenizer for model %q", model)
	}
	return &TokenCounter{model: model, local: local}, nil
}

// Model returns the model whose vocabulary is used for counting.
func (c *TokenCounter) Model() string {
	return c.model
}

// CountTokens returns the size of text sent as a single user turn.
func (c *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if text == "" {
		return 0, nil
	}

	resp, err := c.local.CountTokens(genai.Text(text), nil)
	if err != nil {
		return 0, novelctx.WrapErrorf(err, novelctx.EINTERNAL, "failed to count tokens with %s", c.model)
	}
	return int(resp.TotalTokens), nil
}
