package novelctx

import (
	"context"

	"golang.org/x/net/html"
)

// Fetcher retrieves a single page and parses it into a document tree.
type Fetcher interface {
	// Fetch issues one GET request and returns the parsed page. The returned
	// tree is owned by the caller.
	//
	// Returns ETIMEOUT when the request exceeds its deadline and ETRANSPORT
	// for any other network, status or decoding failure. Fetch never retries.
	Fetch(ctx context.Context, url string) (*html.Node, error)
}
