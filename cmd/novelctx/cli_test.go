package main_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	main "github.com/fwojciec/novelctx/cmd/novelctx"
	"github.com/fwojciec/novelctx/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var commands = []string{"ingest", "extract", "list", "episodes", "show", "summarize", "characters", "export"}

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	// Use kong.Exit to prevent os.Exit from being called during tests
	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	for _, cmd := range commands {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestCLI_Defaults(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"ingest", "https://ncode.syosetu.com/n1234ab/"})
	require.NoError(t, err)

	assert.Equal(t, time.Second, cli.RequestDelay())
	assert.Equal(t, 20*time.Second, cli.Timeout)
	assert.Equal(t, "warn", cli.LogLevel)
	assert.Equal(t, gemini.DefaultModel, cli.Model)
	assert.Equal(t, 2, cli.Ingest.Concurrency)
}

func TestCLI_Flags(t *testing.T) {
	t.Parallel()

	t.Run("parses fractional delay", func(t *testing.T) {
		t.Parallel()

		cli := &main.CLI{}
		parser, err := kong.New(cli, kong.Exit(func(int) {}))
		require.NoError(t, err)

		_, err = parser.Parse([]string{"--delay", "0.25", "list"})
		require.NoError(t, err)

		assert.Equal(t, 250*time.Millisecond, cli.RequestDelay())
	})

	t.Run("negative delay disables pause", func(t *testing.T) {
		t.Parallel()

		cli := &main.CLI{Delay: -1}
		assert.Equal(t, time.Duration(0), cli.RequestDelay())
	})

	t.Run("parses repeated headers", func(t *testing.T) {
		t.Parallel()

		cli := &main.CLI{}
		parser, err := kong.New(cli, kong.Exit(func(int) {}))
		require.NoError(t, err)

		_, err = parser.Parse([]string{"-H", "Cookie=over18=yes", "-H", "Referer=https://syosetu.com/", "list"})
		require.NoError(t, err)

		assert.Equal(t, map[string]string{
			"Cookie":  "over18=yes",
			"Referer": "https://syosetu.com/",
		}, cli.Header)
	})

	t.Run("rejects unknown log level", func(t *testing.T) {
		t.Parallel()

		cli := &main.CLI{}
		parser, err := kong.New(cli, kong.Exit(func(int) {}))
		require.NoError(t, err)

		_, err = parser.Parse([]string{"--log-level", "loud", "list"})
		require.Error(t, err)
	})

	t.Run("parses ingest range", func(t *testing.T) {
		t.Parallel()

		cli := &main.CLI{}
		parser, err := kong.New(cli, kong.Exit(func(int) {}))
		require.NoError(t, err)

		_, err = parser.Parse([]string{"ingest", "--from", "3", "--to", "5", "-r", "https://ncode.syosetu.com/n1234ab/"})
		require.NoError(t, err)

		assert.Equal(t, 3, cli.Ingest.From)
		assert.Equal(t, 5, cli.Ingest.To)
		assert.True(t, cli.Ingest.Refetch)
		assert.Equal(t, "https://ncode.syosetu.com/n1234ab/", cli.Ingest.URL)
	})
}
