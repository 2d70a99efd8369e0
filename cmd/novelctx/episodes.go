package main

import (
	"fmt"

	"github.com/fwojciec/novelctx"
	"github.com/fwojciec/novelctx/crawl"
)

// Run executes the episodes command.
func (c *EpisodesCmd) Run(deps *Dependencies) error {
	novel, err := findNovel(deps, c.URL)
	if err != nil {
		return err
	}

	episodes, err := deps.Episodes.FindEpisodes(deps.Ctx, novelctx.EpisodeFilter{
		NovelID:        &novel.ID,
		FromNumber:     c.From,
		ToNumber:       c.To,
		WithoutContent: true,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", novelctx.ErrorMessage(err))
		return err
	}

	if len(episodes) == 0 {
		fmt.Fprintf(deps.Stdout, "No episodes stored for %q.\n", novel.Title)
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Episodes of %s (%d shown):\n\n", novel.Title, len(episodes))
	for _, ep := range episodes {
		state := "not fetched"
		if ep.HasContent() {
			state = crawl.FormatChars(ep.CharCount)
		}
		fmt.Fprintf(deps.Stdout, "  %d. %s  [%s, summary %s]\n     %s\n", ep.Number, ep.Title, state, ep.SummaryStatus, ep.URL)
	}

	return nil
}

// findNovel looks up a stored novel by its landing page URL.
func findNovel(deps *Dependencies, url string) (*novelctx.Novel, error) {
	novel, err := deps.Novels.FindNovelByURL(deps.Ctx, url)
	if novelctx.ErrorCode(err) == novelctx.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: novel %q not found. Use 'novelctx ingest %s' first.\n", url, url)
		return nil, err
	} else if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", novelctx.ErrorMessage(err))
		return nil, err
	}
	return novel, nil
}

// fetchedEpisodes returns the novel's episodes in range that have content.
func fetchedEpisodes(deps *Dependencies, novelID string, from, to int) ([]*novelctx.Episode, error) {
	episodes, err := deps.Episodes.FindEpisodes(deps.Ctx, novelctx.EpisodeFilter{
		NovelID:        &novelID,
		FromNumber:     from,
		ToNumber:       to,
		WithoutContent: true,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", novelctx.ErrorMessage(err))
		return nil, err
	}

	fetched := episodes[:0]
	for _, ep := range episodes {
		if ep.HasContent() {
			fetched = append(fetched, ep)
		}
	}
	return fetched, nil
}
