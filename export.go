package novelctx

import "context"

// Exporter writes a novel and its fetched episodes outside the database.
type Exporter interface {
	// ExportNovel writes the novel and every episode that has content.
	// It returns the number of episodes written.
	ExportNovel(ctx context.Context, novel *Novel, episodes []*Episode) (int, error)
}
