package mock

import (
	"context"

	"github.com/fwojciec/novelctx"
)

var _ novelctx.Exporter = (*Exporter)(nil)

// Exporter is a mock implementation of novelctx.Exporter.
type Exporter struct {
	ExportNovelFn func(ctx context.Context, novel *novelctx.Novel, episodes []*novelctx.Episode) (int, error)
}

func (e *Exporter) ExportNovel(ctx context.Context, novel *novelctx.Novel, episodes []*novelctx.Episode) (int, error) {
	return e.ExportNovelFn(ctx, novel, episodes)
}
