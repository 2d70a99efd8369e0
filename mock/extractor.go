package mock

import (
	"context"

	"github.com/fwojciec/novelctx"
)

var _ novelctx.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of novelctx.Extractor.
type Extractor struct {
	ExtractMetadataFn func(ctx context.Context, url string) (*novelctx.Work, error)
	ExtractContentFn  func(ctx context.Context, url string) (*novelctx.Body, error)
}

func (e *Extractor) ExtractMetadata(ctx context.Context, url string) (*novelctx.Work, error) {
	return e.ExtractMetadataFn(ctx, url)
}

func (e *Extractor) ExtractContent(ctx context.Context, url string) (*novelctx.Body, error) {
	return e.ExtractContentFn(ctx, url)
}
