package mock

import (
	"context"

	"github.com/fwojciec/novelctx"
)

var _ novelctx.EpisodeService = (*EpisodeService)(nil)

// EpisodeService is a mock implementation of novelctx.EpisodeService.
type EpisodeService struct {
	UpsertEpisodeFn        func(ctx context.Context, episode *novelctx.Episode) (novelctx.UpsertResult, error)
	FindEpisodeByIDFn      func(ctx context.Context, id string) (*novelctx.Episode, error)
	FindEpisodeByURLFn     func(ctx context.Context, url string) (*novelctx.Episode, error)
	FindEpisodesFn         func(ctx context.Context, filter novelctx.EpisodeFilter) ([]*novelctx.Episode, error)
	UpdateEpisodeContentFn func(ctx context.Context, id string, content novelctx.EpisodeContent) (novelctx.UpsertResult, error)
	UpdateEpisodeSummaryFn func(ctx context.Context, id string, summary string, status novelctx.ProcessingStatus) error
}

func (s *EpisodeService) UpsertEpisode(ctx context.Context, episode *novelctx.Episode) (novelctx.UpsertResult, error) {
	return s.UpsertEpisodeFn(ctx, episode)
}

func (s *EpisodeService) FindEpisodeByID(ctx context.Context, id string) (*novelctx.Episode, error) {
	return s.FindEpisodeByIDFn(ctx, id)
}

func (s *EpisodeService) FindEpisodeByURL(ctx context.Context, url string) (*novelctx.Episode, error) {
	return s.FindEpisodeByURLFn(ctx, url)
}

func (s *EpisodeService) FindEpisodes(ctx context.Context, filter novelctx.EpisodeFilter) ([]*novelctx.Episode, error) {
	return s.FindEpisodesFn(ctx, filter)
}

func (s *EpisodeService) UpdateEpisodeContent(ctx context.Context, id string, content novelctx.EpisodeContent) (novelctx.UpsertResult, error) {
	return s.UpdateEpisodeContentFn(ctx, id, content)
}

func (s *EpisodeService) UpdateEpisodeSummary(ctx context.Context, id string, summary string, status novelctx.ProcessingStatus) error {
	return s.UpdateEpisodeSummaryFn(ctx, id, summary, status)
}
