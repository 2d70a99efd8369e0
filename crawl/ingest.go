// Package crawl drives ingestion of serialized works. It extracts a work's
// metadata, stores the work and its episode index, then fetches episode
// bodies concurrently.
package crawl

import (
	"context"
	"time"

	"github.com/fwojciec/novelctx"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of episode bodies fetched at once.
const DefaultConcurrency = 2

// Ingester stores works and their episodes using an Extractor.
type Ingester struct {
	Extractor novelctx.Extractor
	Novels    novelctx.NovelService
	Episodes  novelctx.EpisodeService

	// RateLimiter is optional. When set, every extraction waits on it so
	// that several ingestions can share one request budget per host.
	RateLimiter novelctx.DomainLimiter

	Concurrency int
	RetryDelays []time.Duration

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// IngestOptions selects what IngestWork fetches.
type IngestOptions struct {
	// MetadataOnly stores the work and its episode index without bodies.
	MetadataOnly bool

	// Inclusive episode number range. Zero means unbounded.
	From int
	To   int

	// Refetch fetches bodies that are already stored.
	Refetch bool
}

// includes reports whether the episode number is inside the range.
func (o IngestOptions) includes(number int) bool {
	return (o.From <= 0 || number >= o.From) && (o.To <= 0 || number <= o.To)
}

// Result holds the outcome of an ingestion.
type Result struct {
	Novel       *novelctx.Novel
	NovelResult novelctx.UpsertResult
	Warnings    []novelctx.Warning

	// Episode index upserts.
	Created   int
	Updated   int
	Unchanged int

	// Body fetches.
	Fetched int // stored new or changed bodies
	Same    int // re-fetched bodies identical to the stored ones
	Skipped int // in range but already stored
	Failed  int
	Chars   int
}

// ProgressEvent reports progress during an ingestion.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Number    int
	Attempt   int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressRetry
	ProgressFinished
)

// ProgressFunc is a callback for reporting ingestion progress. It is never
// called concurrently.
type ProgressFunc func(event ProgressEvent)

// fetchResult holds the outcome of fetching one episode body.
type fetchResult struct {
	episode *novelctx.Episode
	outcome novelctx.UpsertResult
	chars   int
	err     error
}

// IngestWork extracts the work at url, stores it with its episode index
// and fetches the selected episode bodies. Metadata and storage failures
// abort the call; a failed episode body is counted and reported through
// progress without stopping the others.
func (i *Ingester) IngestWork(ctx context.Context, url string, opts IngestOptions, progress ProgressFunc) (*Result, error) {
	if progress == nil {
		progress = func(ProgressEvent) {}
	}

	work, err := Retry(ctx, i.retryDelays(), func(ctx context.Context) (*novelctx.Work, error) {
		if err := waitURL(ctx, i.RateLimiter, url); err != nil {
			return nil, err
		}
		return i.Extractor.ExtractMetadata(ctx, url)
	}, func(attempt int, err error) {
		progress(ProgressEvent{Type: ProgressRetry, URL: url, Attempt: attempt, Error: err})
	})
	if err != nil {
		return nil, err
	}

	result := &Result{Warnings: work.Warnings}

	novel := novelctx.NovelFromWork(work)
	if result.NovelResult, err = i.Novels.UpsertNovel(ctx, novel); err != nil {
		return nil, err
	}
	if err := i.Novels.MarkNovelScraped(ctx, novel.ID, i.now()); err != nil {
		return nil, err
	}
	result.Novel = novel

	episodes := make([]*novelctx.Episode, 0, len(work.Episodes))
	for _, d := range work.Episodes {
		ep := novelctx.EpisodeFromDescriptor(novel.ID, d)
		r, err := i.Episodes.UpsertEpisode(ctx, ep)
		if err != nil {
			return nil, err
		}
		switch r {
		case novelctx.UpsertCreated:
			result.Created++
		case novelctx.UpsertUpdated:
			result.Updated++
		default:
			result.Unchanged++
		}
		episodes = append(episodes, ep)
	}

	if opts.MetadataOnly {
		return result, nil
	}

	var targets []*novelctx.Episode
	for _, ep := range episodes {
		if !opts.includes(ep.Number) {
			continue
		}
		if ep.HasContent() && !opts.Refetch {
			result.Skipped++
			continue
		}
		targets = append(targets, ep)
	}

	i.fetchBodies(ctx, targets, result, progress)

	return result, ctx.Err()
}

// fetchBodies fetches and stores targets concurrently. Results are
// collected on the calling goroutine, which is the only one calling
// progress.
func (i *Ingester) fetchBodies(ctx context.Context, targets []*novelctx.Episode, result *Result, progress ProgressFunc) {
	total := len(targets)
	progress(ProgressEvent{Type: ProgressStarted, Total: total})

	resultCh := make(chan fetchResult, total)
	retryCh := make(chan ProgressEvent, total*len(i.retryDelays())+1)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(i.concurrency())

	go func() {
		for _, ep := range targets {
			g.Go(func() error {
				resultCh <- i.fetchBody(gctx, ep, retryCh)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	completed := 0
	for res := range resultCh {
		drainRetries(retryCh, progress)
		completed++

		if res.err != nil {
			result.Failed++
			progress(ProgressEvent{
				Type:      ProgressFailed,
				Completed: completed,
				Total:     total,
				URL:       res.episode.URL,
				Number:    res.episode.Number,
				Error:     res.err,
			})
			continue
		}

		if res.outcome == novelctx.UpsertUnchanged {
			result.Same++
		} else {
			result.Fetched++
		}
		result.Chars += res.chars
		progress(ProgressEvent{
			Type:      ProgressCompleted,
			Completed: completed,
			Total:     total,
			URL:       res.episode.URL,
			Number:    res.episode.Number,
		})
	}
	drainRetries(retryCh, progress)

	progress(ProgressEvent{Type: ProgressFinished, Completed: completed, Total: total})
}

// fetchBody extracts one episode body and stores it.
func (i *Ingester) fetchBody(ctx context.Context, ep *novelctx.Episode, retries chan<- ProgressEvent) fetchResult {
	res := fetchResult{episode: ep}

	body, err := Retry(ctx, i.retryDelays(), func(ctx context.Context) (*novelctx.Body, error) {
		if err := waitURL(ctx, i.RateLimiter, ep.URL); err != nil {
			return nil, err
		}
		return i.Extractor.ExtractContent(ctx, ep.URL)
	}, func(attempt int, err error) {
		select {
		case retries <- ProgressEvent{Type: ProgressRetry, URL: ep.URL, Number: ep.Number, Attempt: attempt, Error: err}:
		default:
		}
	})
	if err != nil {
		res.err = err
		return res
	}

	res.chars = body.CharCount()
	res.outcome, res.err = i.Episodes.UpdateEpisodeContent(ctx, ep.ID, novelctx.EpisodeContent{
		Content:     body.Text,
		CharCount:   res.chars,
		ContentHash: ContentHash(body.Text),
		FetchedAt:   i.now(),
	})
	return res
}

func drainRetries(retries <-chan ProgressEvent, progress ProgressFunc) {
	for {
		select {
		case ev := <-retries:
			progress(ev)
		default:
			return
		}
	}
}

func (i *Ingester) concurrency() int {
	if i.Concurrency <= 0 {
		return DefaultConcurrency
	}
	return i.Concurrency
}

func (i *Ingester) retryDelays() []time.Duration {
	if i.RetryDelays == nil {
		return DefaultRetryDelays()
	}
	return i.RetryDelays
}

func (i *Ingester) now() time.Time {
	if i.Now != nil {
		return i.Now()
	}
	return time.Now()
}
