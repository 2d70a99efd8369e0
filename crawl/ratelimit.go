package crawl

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/fwojciec/novelctx"
	"golang.org/x/time/rate"
)

var _ novelctx.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter spaces requests per host using token buckets. One limiter
// can be shared by several concurrently running ingestions so that their
// combined request rate to a host stays bounded.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
}

// NewDomainLimiter creates a DomainLimiter allowing one request per
// interval to each host, without bursting. A non-positive interval
// disables limiting.
func NewDomainLimiter(interval time.Duration) *DomainLimiter {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
	}
}

// Wait blocks until the rate limit allows a request to the domain.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(d.limit, 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

// waitURL waits on limiter for the host of rawURL. A nil limiter never
// blocks.
func waitURL(ctx context.Context, limiter novelctx.DomainLimiter, rawURL string) error {
	if limiter == nil {
		return nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return novelctx.WrapErrorf(err, novelctx.EINVALID, "invalid URL %q", rawURL)
	}
	return limiter.Wait(ctx, u.Host)
}
