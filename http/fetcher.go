// Package http provides an HTTP-based implementation of novelctx.Fetcher.
// It paces requests with a fixed delay, decodes the declared character
// encoding and parses the response into an HTML tree.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/novelctx"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

const (
	// DefaultDelay is the pause before each request.
	DefaultDelay = 1 * time.Second

	// DefaultFetchTimeout bounds a single request including the body read.
	DefaultFetchTimeout = 20 * time.Second

	// MaxBodyBytes caps how much of a response body is parsed.
	MaxBodyBytes = 16 << 20
)

// DefaultUserAgent identifies requests as a generic desktop browser.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Ensure Fetcher implements novelctx.Fetcher at compile time.
var _ novelctx.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves pages using plain HTTP GET requests.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
	delay   time.Duration
	headers http.Header
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (20s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithDelay sets the pause before each request.
// Defaults to DefaultDelay (1s). Zero disables the pause.
func WithDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.delay = d
	}
}

// WithHeaders merges request headers over the defaults.
// Caller values win on key collision.
func WithHeaders(headers map[string]string) Option {
	return func(f *Fetcher) {
		for k, v := range headers {
			f.headers.Set(k, v)
		}
	}
}

// WithTransport sets the round tripper used by the underlying client.
func WithTransport(rt http.RoundTripper) Option {
	return func(f *Fetcher) {
		f.client.Transport = rt
	}
}

// DefaultHeaders returns the headers sent with every request.
func DefaultHeaders() http.Header {
	h := http.Header{}
	h.Set("User-Agent", DefaultUserAgent)
	h.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
	h.Set("Accept-Language", "ja,en;q=0.8")
	return h
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:  &http.Client{},
		timeout: DefaultFetchTimeout,
		delay:   DefaultDelay,
		headers: DefaultHeaders(),
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client.Timeout = f.timeout

	return f
}

// Delay returns the configured pause before each request.
func (f *Fetcher) Delay() time.Duration {
	return f.delay
}

// Fetch waits for the configured delay, then retrieves and parses the page.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*html.Node, error) {
	if err := sleepContext(ctx, f.delay); err != nil {
		return nil, classify(err, url)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, novelctx.WrapErrorf(err, novelctx.ETRANSPORT, "invalid request for %s", url)
	}
	for k, v := range f.headers {
		req.Header[k] = append([]string(nil), v...)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, classify(err, url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, novelctx.WrapErrorf(
			fmt.Errorf("unexpected status %s", resp.Status),
			novelctx.ETRANSPORT, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := charset.NewReader(io.LimitReader(resp.Body, MaxBodyBytes), resp.Header.Get("Content-Type"))
	if err != nil {
		// The reader sniffs the first bytes of the body, so a stalled
		// response surfaces here.
		return nil, classify(err, url)
	}

	doc, err := html.Parse(body)
	if err != nil {
		return nil, classify(err, url)
	}

	return doc, nil
}

// classify maps a transport error onto ETIMEOUT or ETRANSPORT.
func classify(err error, url string) error {
	if isTimeout(err) {
		return novelctx.WrapErrorf(err, novelctx.ETIMEOUT, "request timed out for %s", url)
	}
	return novelctx.WrapErrorf(err, novelctx.ETRANSPORT, "request failed for %s", url)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
