// Package goquery implements novelctx.Extractor on top of goquery. It reads
// work metadata from either landing page layout and normalizes episode
// bodies into plain text.
package goquery

import (
	"context"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/novelctx"
)

// Ensure Extractor implements novelctx.Extractor at compile time.
var _ novelctx.Extractor = (*Extractor)(nil)

// Extractor fetches pages and extracts works and episode bodies from them.
type Extractor struct {
	fetcher  novelctx.Fetcher
	metadata *MetadataExtractor
	content  *ContentExtractor
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithContainerLocators replaces the body container locators.
func WithContainerLocators(locators ...ContainerLocator) ExtractorOption {
	return func(e *Extractor) {
		e.content = NewContentExtractor(locators...)
	}
}

// NewExtractor creates an Extractor that retrieves pages with fetcher.
func NewExtractor(fetcher novelctx.Fetcher, opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		fetcher:  fetcher,
		metadata: NewMetadataExtractor(),
		content:  NewContentExtractor(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractMetadata fetches the landing page at rawURL and extracts the work.
func (e *Extractor) ExtractMetadata(ctx context.Context, rawURL string) (*novelctx.Work, error) {
	doc, err := e.fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return e.metadata.Extract(doc, rawURL)
}

// ExtractContent fetches the episode page at rawURL and extracts its body.
func (e *Extractor) ExtractContent(ctx context.Context, rawURL string) (*novelctx.Body, error) {
	doc, err := e.fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return e.content.Extract(doc)
}

func (e *Extractor) fetch(ctx context.Context, rawURL string) (*goquery.Document, error) {
	if err := validateURL(rawURL); err != nil {
		return nil, err
	}
	root, err := e.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromNode(root), nil
}

// validateURL accepts absolute http and https URLs only.
func validateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return novelctx.WrapErrorf(err, novelctx.EINVALID, "invalid URL %q", rawURL)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return novelctx.Errorf(novelctx.EINVALID, "URL must be absolute http or https: %q", rawURL)
	}
	return nil
}
