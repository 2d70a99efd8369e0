package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/novelctx"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	var (
		result   any
		warnings []novelctx.Warning
		err      error
	)
	if c.Content {
		var body *novelctx.Body
		body, err = deps.Extractor.ExtractContent(deps.Ctx, c.URL)
		if err == nil {
			result, warnings = body, body.Warnings
		}
	} else {
		var work *novelctx.Work
		work, err = deps.Extractor.ExtractMetadata(deps.Ctx, c.URL)
		if err == nil {
			result, warnings = work, work.Warnings
		}
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", novelctx.ErrorMessage(err))
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	for _, w := range warnings {
		fmt.Fprintf(deps.Stderr, "warning: %s\n", w)
	}

	switch v := result.(type) {
	case *novelctx.Body:
		fmt.Fprintln(deps.Stdout, v.Text)
	case *novelctx.Work:
		printWork(deps.Stdout, v)
	}
	return nil
}

func printWork(w io.Writer, work *novelctx.Work) {
	fmt.Fprintf(w, "Title:    %s\n", work.Title)
	fmt.Fprintf(w, "Author:   %s\n", work.Author)
	fmt.Fprintf(w, "Layout:   %s\n", work.Layout)
	fmt.Fprintf(w, "Tags:     %s\n", strings.Join(work.Tags, ", "))
	fmt.Fprintf(w, "Synopsis:\n%s\n", indent(work.Synopsis, "  "))

	if len(work.Episodes) == 0 {
		return
	}
	fmt.Fprintf(w, "\nEpisodes (%d total):\n\n", len(work.Episodes))
	for _, ep := range work.Episodes {
		fmt.Fprintf(w, "  %d. %s", ep.Number, ep.Title)
		if ep.PublishedAt != "" {
			fmt.Fprintf(w, "  (%s)", ep.PublishedAt)
		}
		fmt.Fprintf(w, "\n     %s\n", ep.URL)
	}
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
