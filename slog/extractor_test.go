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
)

func TestLoggingExtractor_ExtractMetadata(t *testing.T) {
	t.Parallel()

	t.Run("logs the work and its warnings", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractMetadataFn: func(context.Context, string) (*novelctx.Work, error) {
				return &novelctx.Work{
					Title:    "星の図書館",
					Layout:   novelctx.LayoutWorkLanding,
					Episodes: []novelctx.EpisodeDescriptor{{Number: 1}, {Number: 2}},
					Warnings: []novelctx.Warning{novelctx.WarnSynopsisMissing},
				}, nil
			},
		}

		work, err := novelslog.NewLoggingExtractor(inner, logger).ExtractMetadata(context.Background(), "https://ncode.syosetu.com/n1234ab/")

		require.NoError(t, err)
		assert.Equal(t, "星の図書館", work.Title)
		output := buf.String()
		assert.Contains(t, output, `msg="extract metadata"`)
		assert.Contains(t, output, "episodes=2")
		assert.Contains(t, output, "layout=work_landing")
		assert.Contains(t, output, "level=WARN")
		assert.Contains(t, output, "warning=synopsis_missing")
	})

	t.Run("logs errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractMetadataFn: func(context.Context, string) (*novelctx.Work, error) {
				return nil, novelctx.Errorf(novelctx.EMALFORMED, "broken page")
			},
		}

		_, err := novelslog.NewLoggingExtractor(inner, logger).ExtractMetadata(context.Background(), "https://ncode.syosetu.com/n1234ab/")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=ERROR")
		assert.Contains(t, output, "code=malformed_structure")
	})
}

func TestLoggingExtractor_ExtractContent(t *testing.T) {
	t.Parallel()

	t.Run("warns on an empty body", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractContentFn: func(context.Context, string) (*novelctx.Body, error) {
				body := &novelctx.Body{Container: "novel_honbun"}
				body.Warn(novelctx.WarnEmptyBody)
				return body, nil
			},
		}

		body, err := novelslog.NewLoggingExtractor(inner, logger).ExtractContent(context.Background(), "https://ncode.syosetu.com/n1234ab/1/")

		require.NoError(t, err)
		assert.Empty(t, body.Text)
		output := buf.String()
		assert.NotContains(t, output, "level=DEBUG")
		assert.Contains(t, output, "warning=empty_body")
		assert.Contains(t, output, "url=https://ncode.syosetu.com/n1234ab/1/")
	})

	t.Run("logs container not found", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractContentFn: func(context.Context, string) (*novelctx.Body, error) {
				return nil, novelctx.Errorf(novelctx.ECONTAINER, "no known body container in page")
			},
		}

		_, err := novelslog.NewLoggingExtractor(inner, logger).ExtractContent(context.Background(), "https://ncode.syosetu.com/n1234ab/1/")

		assert.Equal(t, novelctx.ECONTAINER, novelctx.ErrorCode(err))
		assert.Contains(t, buf.String(), "code=container_not_found")
	})
}
