package goquery

import (
	"fmt"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/novelctx"
)

// MetadataExtractor reads a work's bibliographic metadata and episode index
// from a parsed landing page.
type MetadataExtractor struct{}

// NewMetadataExtractor creates a new MetadataExtractor.
func NewMetadataExtractor() *MetadataExtractor {
	return &MetadataExtractor{}
}

// Extract parses doc as the landing page served at sourceURL. The layout is
// chosen from the URL. Missing fields degrade to NotAvailable with a
// warning; only a structurally broken page is an error.
func (e *MetadataExtractor) Extract(doc *goquery.Document, sourceURL string) (work *novelctx.Work, err error) {
	base, err := url.Parse(sourceURL)
	if err != nil {
		return nil, novelctx.WrapErrorf(err, novelctx.EINVALID, "invalid source URL %q", sourceURL)
	}

	defer func() {
		if r := recover(); r != nil {
			work = nil
			err = novelctx.WrapErrorf(fmt.Errorf("%v", r), novelctx.EMALFORMED, "malformed landing page %s", sourceURL)
		}
	}()

	layout := DetectLayout(sourceURL)
	w := &novelctx.Work{
		Tags:      []string{},
		SourceURL: sourceURL,
		Platform:  novelctx.PlatformNarou,
		Layout:    layout,
		Episodes:  []novelctx.EpisodeDescriptor{},
	}

	if err := parserFor(layout).parse(doc.Selection, base, w); err != nil {
		return nil, err
	}
	return w, nil
}
