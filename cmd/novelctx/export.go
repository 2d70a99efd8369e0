package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/novelctx"
	"github.com/fwojciec/novelctx/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	novel, err := findNovel(deps, c.URL)
	if err != nil {
		return err
	}

	episodes, err := deps.Episodes.FindEpisodes(deps.Ctx, novelctx.EpisodeFilter{NovelID: &novel.ID})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", novelctx.ErrorMessage(err))
		return err
	}

	n, err := deps.Exporter.ExportNovel(deps.Ctx, novel, episodes)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", novelctx.ErrorMessage(err))
		return err
	}

	dir, err := fs.NovelDir(novel.URL)
	if err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "Exported %d of %d episodes of %q to %s\n", n, len(episodes), novel.Title, filepath.Join(c.Dir, dir))
	return nil
}
