package goquery

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/novelctx"
)

// ContainerLocator names a selector that may hold an episode body.
type ContainerLocator struct {
	Name     string
	Selector string
}

// DefaultContainerLocators lists the body containers used by the site over
// time, oldest first. The first one present in a page wins.
var DefaultContainerLocators = []ContainerLocator{
	{Name: "novel_honbun", Selector: "div#novel_honbun"},
	{Name: "novel_view", Selector: "div.novel_view"},
	{Name: "js-novel-text", Selector: "div.js-novel-text.p-novel__text"},
}

// ContentExtractor locates the body container of an episode page and
// normalizes it into plain text.
type ContentExtractor struct {
	locators []ContainerLocator
}

// NewContentExtractor creates a ContentExtractor trying locators in order.
// DefaultContainerLocators are used when none are given.
func NewContentExtractor(locators ...ContainerLocator) *ContentExtractor {
	if len(locators) == 0 {
		locators = DefaultContainerLocators
	}
	return &ContentExtractor{locators: locators}
}

// Extract returns the normalized body of the episode page. It fails with
// ECONTAINER when no known container is present. An empty container is
// not an error; the body carries WarnEmptyBody instead.
func (e *ContentExtractor) Extract(doc *goquery.Document) (body *novelctx.Body, err error) {
	defer func() {
		if r := recover(); r != nil {
			body = nil
			err = novelctx.WrapErrorf(fmt.Errorf("%v", r), novelctx.EMALFORMED, "malformed episode page")
		}
	}()

	for _, loc := range e.locators {
		container := doc.Find(loc.Selector).First()
		if container.Length() == 0 {
			continue
		}

		b := &novelctx.Body{
			Text:      Normalize(container),
			Container: loc.Name,
		}
		if b.Text == "" {
			b.Warn(novelctx.WarnEmptyBody)
		}
		return b, nil
	}

	return nil, novelctx.Errorf(novelctx.ECONTAINER, "no known body container in page")
}
