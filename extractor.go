package novelctx

import "context"

// Extractor reads works and episodes from the source platform.
type Extractor interface {
	// ExtractMetadata fetches a work's landing page and returns its metadata
	// and episode list. Recoverable anomalies are reported as warnings on
	// the returned Work.
	ExtractMetadata(ctx context.Context, url string) (*Work, error)

	// ExtractContent fetches an episode page and returns its normalized text.
	// Returns ECONTAINER if the page has no known body container.
	ExtractContent(ctx context.Context, url string) (*Body, error)
}
