package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fwojciec/novelctx"
	main "github.com/fwojciec/novelctx/cmd/novelctx"
	"github.com/fwojciec/novelctx/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowCmd_Run(t *testing.T) {
	t.Parallel()

	fetched := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	episodes := &mock.EpisodeService{
		FindEpisodeByURLFn: func(_ context.Context, url string) (*novelctx.Episode, error) {
			switch url {
			case novelURL + "1/":
				return &novelctx.Episode{
					Number: 1, Title: "始まり", Content: "吾輩は猫である。", FetchedAt: &fetched,
					Summary: "猫が名乗る。", SummaryStatus: novelctx.StatusCompleted,
				}, nil
			case novelURL + "2/":
				return &novelctx.Episode{Number: 2, Title: "続き", SummaryStatus: novelctx.StatusPending}, nil
			}
			return nil, novelctx.Errorf(novelctx.ENOTFOUND, "episode not found")
		},
	}

	run := func(cmd *main.ShowCmd) (string, string, error) {
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		err := cmd.Run(&main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   stderr,
			Episodes: episodes,
		})
		return stdout.String(), stderr.String(), err
	}

	t.Run("prints episode text", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := run(&main.ShowCmd{URL: novelURL + "1/"})

		require.NoError(t, err)
		assert.Equal(t, "# 1. 始まり\n\n吾輩は猫である。\n", stdout)
	})

	t.Run("prints summary", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := run(&main.ShowCmd{URL: novelURL + "1/", Summary: true})

		require.NoError(t, err)
		assert.Contains(t, stdout, "猫が名乗る。")
		assert.NotContains(t, stdout, "吾輩は猫である。")
	})

	t.Run("returns error for unfetched episode", func(t *testing.T) {
		t.Parallel()

		_, stderr, err := run(&main.ShowCmd{URL: novelURL + "2/"})

		require.Error(t, err)
		assert.Equal(t, novelctx.ENOTFOUND, novelctx.ErrorCode(err))
		assert.Contains(t, stderr, "has not been fetched")
	})

	t.Run("returns error for missing summary", func(t *testing.T) {
		t.Parallel()

		_, stderr, err := run(&main.ShowCmd{URL: novelURL + "2/", Summary: true})

		require.Error(t, err)
		assert.Contains(t, stderr, "status pending")
	})

	t.Run("returns not found for unknown episode", func(t *testing.T) {
		t.Parallel()

		_, stderr, err := run(&main.ShowCmd{URL: novelURL + "9/"})

		require.Error(t, err)
		assert.Equal(t, novelctx.ENOTFOUND, novelctx.ErrorCode(err))
		assert.Contains(t, stderr, "not found")
	})
}
