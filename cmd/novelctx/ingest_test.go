package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fwojciec/novelctx"
	main "github.com/fwojciec/novelctx/cmd/novelctx"
	"github.com/fwojciec/novelctx/crawl"
	"github.com/fwojciec/novelctx/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const novelURL = "https://ncode.syosetu.com/n1234ab/"

// newIngester wires an Ingester over mocks that accept every write.
func newIngester(ext *mock.Extractor) *crawl.Ingester {
	return &crawl.Ingester{
		Extractor: ext,
		Novels: &mock.NovelService{
			UpsertNovelFn: func(_ context.Context, n *novelctx.Novel) (novelctx.UpsertResult, error) {
				n.ID = "novel-1"
				return novelctx.UpsertCreated, nil
			},
			MarkNovelScrapedFn: func(context.Context, string, time.Time) error {
				return nil
			},
		},
		Episodes: &mock.EpisodeService{
			UpsertEpisodeFn: func(_ context.Context, ep *novelctx.Episode) (novelctx.UpsertResult, error) {
				ep.ID = ep.URL
				return novelctx.UpsertCreated, nil
			},
			UpdateEpisodeContentFn: func(context.Context, string, novelctx.EpisodeContent) (novelctx.UpsertResult, error) {
				return novelctx.UpsertCreated, nil
			},
		},
		Concurrency: 1,
		RetryDelays: []time.Duration{0},
	}
}

func twoEpisodeWork() *novelctx.Work {
	return &novelctx.Work{
		Title:     "猫の話",
		SourceURL: novelURL,
		Platform:  novelctx.PlatformNarou,
		Episodes: []novelctx.EpisodeDescriptor{
			{URL: novelURL + "1/", Title: "一", Number: 1},
			{URL: novelURL + "2/", Title: "二", Number: 2},
		},
		Warnings: []novelctx.Warning{novelctx.WarnTagsMissing},
	}
}

func TestIngestCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("ingests novel and prints summary", func(t *testing.T) {
		t.Parallel()

		ext := &mock.Extractor{
			ExtractMetadataFn: func(context.Context, string) (*novelctx.Work, error) {
				return twoEpisodeWork(), nil
			},
			ExtractContentFn: func(context.Context, string) (*novelctx.Body, error) {
				return &novelctx.Body{Text: "本文です"}, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   stderr,
			Ingester: newIngester(ext),
		}

		cmd := &main.IngestCmd{URL: novelURL, Concurrency: 2}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), `Created "猫の話" (novel-1)`)
		assert.Contains(t, stdout.String(), "Fetching 2 episodes")
		assert.Contains(t, stdout.String(), "Episodes: 2 new, 0 updated, 0 unchanged")
		assert.Contains(t, stdout.String(), "Bodies: 2 saved, 0 unchanged, 0 skipped, 0 failed (8 chars)")
		assert.Contains(t, stderr.String(), "warning: tags_missing")
		assert.Equal(t, 2, deps.Ingester.Concurrency)
	})

	t.Run("metadata only omits body summary", func(t *testing.T) {
		t.Parallel()

		ext := &mock.Extractor{
			ExtractMetadataFn: func(context.Context, string) (*novelctx.Work, error) {
				return twoEpisodeWork(), nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Ingester: newIngester(ext),
		}

		cmd := &main.IngestCmd{URL: novelURL, MetadataOnly: true}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Episodes: 2 new")
		assert.NotContains(t, stdout.String(), "Bodies:")
	})

	t.Run("reports failed episodes on stderr", func(t *testing.T) {
		t.Parallel()

		ext := &mock.Extractor{
			ExtractMetadataFn: func(context.Context, string) (*novelctx.Work, error) {
				return twoEpisodeWork(), nil
			},
			ExtractContentFn: func(_ context.Context, url string) (*novelctx.Body, error) {
				if url == novelURL+"2/" {
					return nil, novelctx.Errorf(novelctx.ECONTAINER, "no body container")
				}
				return &novelctx.Body{Text: "本文"}, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   stderr,
			Ingester: newIngester(ext),
		}

		cmd := &main.IngestCmd{URL: novelURL}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "skip #2 "+novelURL+"2/: no body container")
		assert.Contains(t, stdout.String(), "1 saved, 0 unchanged, 0 skipped, 1 failed")
	})

	t.Run("returns extraction error", func(t *testing.T) {
		t.Parallel()

		ext := &mock.Extractor{
			ExtractMetadataFn: func(context.Context, string) (*novelctx.Work, error) {
				return nil, novelctx.Errorf(novelctx.EINVALID, "unsupported URL")
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   &bytes.Buffer{},
			Stderr:   stderr,
			Ingester: newIngester(ext),
		}

		cmd := &main.IngestCmd{URL: "ftp://example.com/"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, "error: unsupported URL\n", stderr.String())
	})

	t.Run("rejects inverted range", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
		}

		cmd := &main.IngestCmd{URL: novelURL, From: 5, To: 2}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, novelctx.EINVALID, novelctx.ErrorCode(err))
		assert.Contains(t, stderr.String(), "--from 5 is after --to 2")
	})
}
