package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/novelctx"
)

// Run executes the characters command.
func (c *CharactersCmd) Run(deps *Dependencies) error {
	novel, err := findNovel(deps, c.URL)
	if err != nil {
		return err
	}

	if c.Extract {
		episodes, err := fetchedEpisodes(deps, novel.ID, c.From, c.To)
		if err != nil {
			return err
		}
		for _, ep := range episodes {
			found, err := deps.CharacterExtractor.ExtractCharacters(deps.Ctx, ep.ID)
			if err != nil {
				if deps.Ctx.Err() != nil {
					return deps.Ctx.Err()
				}
				fmt.Fprintf(deps.Stderr, "  skip #%d %s: %s\n", ep.Number, ep.Title, novelctx.ErrorMessage(err))
				continue
			}
			fmt.Fprintf(deps.Stdout, "  #%d %s: %d characters\n", ep.Number, ep.Title, len(found))
		}
	}

	characters, err := deps.Characters.FindCharacters(deps.Ctx, novel.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", novelctx.ErrorMessage(err))
		return err
	}

	if len(characters) == 0 {
		fmt.Fprintf(deps.Stdout, "No characters stored for %q. Use 'novelctx characters --extract %s'.\n", novel.Title, novel.URL)
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Characters of %s (%d total):\n\n", novel.Title, len(characters))
	for _, ch := range characters {
		name := ch.Name
		if ch.Reading != "" {
			name += " (" + ch.Reading + ")"
		}
		fmt.Fprintf(deps.Stdout, "  %s\n", name)
		if len(ch.Aliases) > 0 {
			fmt.Fprintf(deps.Stdout, "     aliases: %s\n", strings.Join(ch.Aliases, ", "))
		}
		if ch.Description != "" {
			fmt.Fprintf(deps.Stdout, "     %s\n", ch.Description)
		}
	}

	return nil
}
