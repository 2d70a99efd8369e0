package main

import (
	"fmt"

	"github.com/fwojciec/novelctx"
)

// Run executes the summarize command.
func (c *SummarizeCmd) Run(deps *Dependencies) error {
	novel, err := findNovel(deps, c.URL)
	if err != nil {
		return err
	}

	episodes, err := fetchedEpisodes(deps, novel.ID, c.From, c.To)
	if err != nil {
		return err
	}

	var done, skipped, failed int
	for _, ep := range episodes {
		if ep.SummaryStatus == novelctx.StatusCompleted && !c.Force {
			skipped++
			continue
		}
		if _, err := deps.Summarizer.SummarizeEpisode(deps.Ctx, ep.ID); err != nil {
			if deps.Ctx.Err() != nil {
				return deps.Ctx.Err()
			}
			failed++
			fmt.Fprintf(deps.Stderr, "  skip #%d %s: %s\n", ep.Number, ep.Title, novelctx.ErrorMessage(err))
			continue
		}
		done++
		fmt.Fprintf(deps.Stdout, "  Summarized #%d %s\n", ep.Number, ep.Title)
	}

	fmt.Fprintf(deps.Stdout, "Summarized %d episodes of %q (%d already done, %d failed)\n", done, novel.Title, skipped, failed)
	return nil
}
