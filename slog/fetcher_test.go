package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/novelctx"
	"github.com/fwojciec/novelctx/mock"
	novelslog "github.com/fwojciec/novelctx/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs fetch with url and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		want := &html.Node{Type: html.DocumentNode}
		inner := &mock.Fetcher{
			FetchFn: func(context.Context, string) (*html.Node, error) {
				return want, nil
			},
		}

		fetcher := novelslog.NewLoggingFetcher(inner, logger)
		doc, err := fetcher.Fetch(context.Background(), "https://ncode.syosetu.com/n1234ab/")

		require.NoError(t, err)
		assert.Same(t, want, doc)
		output := buf.String()
		assert.Contains(t, output, "level=DEBUG")
		assert.Contains(t, output, "msg=fetch")
		assert.Contains(t, output, "url=https://ncode.syosetu.com/n1234ab/")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error code on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(context.Context, string) (*html.Node, error) {
				return nil, novelctx.Errorf(novelctx.ETIMEOUT, "request timed out")
			},
		}

		fetcher := novelslog.NewLoggingFetcher(inner, logger)
		_, err := fetcher.Fetch(context.Background(), "https://ncode.syosetu.com/n1234ab/")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=WARN")
		assert.Contains(t, output, "code=timeout")
		assert.Contains(t, output, `err="request timed out"`)
	})
}
