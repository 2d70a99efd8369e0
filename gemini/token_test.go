package gemini_test

import (
	"context"
	"testing"

	"github.com/fwojciec/novelctx"
	"github.com/fwojciec/novelctx/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCounter_CountTokens(t *testing.T) {
	t.Parallel()

	// Use a real model name that the tokenizer supports
	tc, err := gemini.NewTokenCounter("gemini-2.0-flash")
	require.NoError(t, err)

	var _ novelctx.TokenCounter = tc

	t.Run("counts tokens in japanese text", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(context.Background(), "吾輩は猫である。名前はまだ無い。")

		require.NoError(t, err)
		assert.Positive(t, count)
	})

	t.Run("empty string returns zero", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(context.Background(), "")

		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("reports the tokenizer model", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "gemini-2.0-flash", tc.Model())
	})

	t.Run("canceled context returns the context error", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := tc.CountTokens(ctx, "猫")

		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("longer text returns more tokens", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		shortCount, err := tc.CountTokens(ctx, "猫")
		require.NoError(t, err)

		longCount, err := tc.CountTokens(ctx, "吾輩は猫である。名前はまだ無い。どこで生れたかとんと見当がつかぬ。")
		require.NoError(t, err)

		assert.Greater(t, longCount, shortCount)
	})
}

func TestNewTokenCounter_UnknownModel(t *testing.T) {
	t.Parallel()

	_, err := gemini.NewTokenCounter("no-such-model")

	assert.Equal(t, novelctx.EINVALID, novelctx.ErrorCode(err))
}
