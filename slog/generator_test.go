package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/novelctx/mock"
	novelslog "github.com/fwojciec/novelctx/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingGenerator_Generate(t *testing.T) {
	t.Parallel()

	t.Run("logs prompt and response sizes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Generator{
			GenerateFn: func(_ context.Context, prompt string) (string, error) {
				assert.Equal(t, "要約して", prompt)
				return "要約", nil
			},
		}

		gen := novelslog.NewLoggingGenerator(inner, logger)
		text, err := gen.Generate(context.Background(), "要約して")

		require.NoError(t, err)
		assert.Equal(t, "要約", text)
		output := buf.String()
		assert.Contains(t, output, "msg=generate")
		assert.Contains(t, output, "prompt_chars=4")
		assert.Contains(t, output, "response_chars=2")
		assert.Contains(t, output, "duration=")
		assert.NotContains(t, output, "要約して")
	})

	t.Run("logs and returns errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Generator{
			GenerateFn: func(context.Context, string) (string, error) {
				return "", errors.New("quota exceeded")
			},
		}

		gen := novelslog.NewLoggingGenerator(inner, logger)
		_, err := gen.Generate(context.Background(), "prompt")

		require.EqualError(t, err, "quota exceeded")
		assert.Contains(t, buf.String(), `err="quota exceeded"`)
	})
}
