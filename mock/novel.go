package mock

import (
	"context"
	"time"

	"github.com/fwojciec/novelctx"
)

var _ novelctx.NovelService = (*NovelService)(nil)

// NovelService is a mock implementation of novelctx.NovelService.
type NovelService struct {
	UpsertNovelFn      func(ctx context.Context, novel *novelctx.Novel) (novelctx.UpsertResult, error)
	FindNovelByIDFn    func(ctx context.Context, id string) (*novelctx.Novel, error)
	FindNovelByURLFn   func(ctx context.Context, url string) (*novelctx.Novel, error)
	FindNovelsFn       func(ctx context.Context, filter novelctx.NovelFilter) ([]*novelctx.Novel, error)
	MarkNovelScrapedFn func(ctx context.Context, id string, at time.Time) error
}

func (s *NovelService) UpsertNovel(ctx context.Context, novel *novelctx.Novel) (novelctx.UpsertResult, error) {
	return s.UpsertNovelFn(ctx, novel)
}

func (s *NovelService) FindNovelByID(ctx context.Context, id string) (*novelctx.Novel, error) {
	return s.FindNovelByIDFn(ctx, id)
}

func (s *NovelService) FindNovelByURL(ctx context.Context, url string) (*novelctx.Novel, error) {
	return s.FindNovelByURLFn(ctx, url)
}

func (s *NovelService) FindNovels(ctx context.Context, filter novelctx.NovelFilter) ([]*novelctx.Novel, error) {
	return s.FindNovelsFn(ctx, filter)
}

func (s *NovelService) MarkNovelScraped(ctx context.Context, id string, at time.Time) error {
	return s.MarkNovelScrapedFn(ctx, id, at)
}
