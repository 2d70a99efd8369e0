package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/novelctx"
	"github.com/fwojciec/novelctx/crawl"
)

// Run executes the ingest command.
func (c *IngestCmd) Run(deps *Dependencies) error {
	if c.From > 0 && c.To > 0 && c.From > c.To {
		fmt.Fprintf(deps.Stderr, "error: --from %d is after --to %d\n", c.From, c.To)
		return novelctx.Errorf(novelctx.EINVALID, "invalid episode range %d-%d", c.From, c.To)
	}

	if c.Concurrency > 0 {
		deps.Ingester.Concurrency = c.Concurrency
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			if event.Total > 0 {
				fmt.Fprintf(deps.Stdout, "  Fetching %d episodes\n", event.Total)
			}
		case crawl.ProgressRetry:
			fmt.Fprintf(deps.Stderr, "  retry %s (attempt %d): %s\n", event.URL, event.Attempt, novelctx.ErrorMessage(event.Error))
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip #%d %s: %s\n", event.Number, event.URL, novelctx.ErrorMessage(event.Error))
		case crawl.ProgressFinished:
			// Summary printed after ingestion completes
		}
	}

	result, err := deps.Ingester.IngestWork(deps.Ctx, c.URL, crawl.IngestOptions{
		MetadataOnly: c.MetadataOnly,
		From:         c.From,
		To:           c.To,
		Refetch:      c.Refetch,
	}, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", novelctx.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "%s %q (%s)\n", capitalize(result.NovelResult.String()), result.Novel.Title, result.Novel.ID)
	for _, w := range result.Warnings {
		fmt.Fprintf(deps.Stderr, "  warning: %s\n", w)
	}
	fmt.Fprintf(deps.Stdout, "  Episodes: %d new, %d updated, %d unchanged\n", result.Created, result.Updated, result.Unchanged)

	if !c.MetadataOnly {
		fmt.Fprintf(deps.Stdout, "  Bodies: %d saved, %d unchanged, %d skipped, %d failed (%s)\n",
			result.Fetched, result.Same, result.Skipped, result.Failed, crawl.FormatChars(result.Chars))
	}

	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
