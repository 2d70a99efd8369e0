package main

import (
	"fmt"

	"github.com/fwojciec/novelctx"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	ep, err := deps.Episodes.FindEpisodeByURL(deps.Ctx, c.URL)
	if novelctx.ErrorCode(err) == novelctx.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: episode %q not found. Ingest its novel first.\n", c.URL)
		return err
	} else if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", novelctx.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "# %d. %s\n\n", ep.Number, ep.Title)

	if c.Summary {
		if ep.SummaryStatus != novelctx.StatusCompleted {
			fmt.Fprintf(deps.Stderr, "error: episode has no summary (status %s). Run 'novelctx summarize' first.\n", ep.SummaryStatus)
			return novelctx.Errorf(novelctx.ENOTFOUND, "episode %q has no summary", c.URL)
		}
		fmt.Fprintln(deps.Stdout, ep.Summary)
		return nil
	}

	if !ep.HasContent() {
		fmt.Fprintf(deps.Stderr, "error: episode has not been fetched. Run 'novelctx ingest' for its novel.\n")
		return novelctx.Errorf(novelctx.ENOTFOUND, "episode %q has no content", c.URL)
	}
	fmt.Fprintln(deps.Stdout, ep.Content)
	return nil
}
