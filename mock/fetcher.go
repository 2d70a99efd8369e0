package mock

import (
	"context"

	"github.com/fwojciec/novelctx"
	"golang.org/x/net/html"
)

var _ novelctx.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of novelctx.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*html.Node, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*html.Node, error) {
	return f.FetchFn(ctx, url)
}
