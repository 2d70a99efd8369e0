package main

import (
	"fmt"

	"github.com/fwojciec/novelctx"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	novels, err := deps.Novels.FindNovels(deps.Ctx, novelctx.NovelFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", novelctx.ErrorMessage(err))
		return err
	}

	if len(novels) == 0 {
		fmt.Fprintln(deps.Stdout, "No novels found. Use 'novelctx ingest' to add one.")
		return nil
	}

	for _, n := range novels {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n", n.ID, n.Title, n.Author, n.URL)
	}

	return nil
}
