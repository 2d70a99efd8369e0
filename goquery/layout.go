package goquery

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/novelctx"
)

// infoSummaryPath marks the label/value info page of a work.
const infoSummaryPath = "/novelview/infotop/"

// Labels of the info page's label/value list.
const (
	labelAuthor   = "作者名"
	labelSynopsis = "あらすじ"
	labelKeywords = "キーワード"
)

// authorPrefixes are stripped from plain-text author attributions.
var authorPrefixes = []string{"作者：", "作者:"}

// publishedAtPattern finds the first timestamp in an update cell. A second
// "revised" timestamp may follow and is ignored.
var publishedAtPattern = regexp.MustCompile(`\d{4}/\d{2}/\d{2} \d{2}:\d{2}`)

// DetectLayout returns the page layout implied by a landing page URL.
func DetectLayout(rawURL string) novelctx.Layout {
	if strings.Contains(rawURL, infoSummaryPath) {
		return novelctx.LayoutInfoSummary
	}
	return novelctx.LayoutWorkLanding
}

// layoutParser fills a Work from one page layout.
type layoutParser interface {
	parse(doc *goquery.Selection, base *url.URL, w *novelctx.Work) error
}

func parserFor(layout novelctx.Layout) layoutParser {
	switch layout {
	case novelctx.LayoutInfoSummary:
		return infoSummaryParser{}
	default:
		return workLandingParser{}
	}
}

// workLandingParser reads the work's index page.
type workLandingParser struct{}

func (workLandingParser) parse(doc *goquery.Selection, base *url.URL, w *novelctx.Work) error {
	w.Title = textOr(doc.Find("h1.p-novel__title").First(), w, novelctx.WarnTitleMissing)

	if author := doc.Find("div.p-novel__author").First(); author.Length() > 0 {
		if link := author.Find("a").First(); link.Length() > 0 {
			w.Author = textOf(link)
		} else {
			w.Author = stripAuthorPrefix(textOf(author))
		}
	} else {
		w.Author = novelctx.NotAvailable
		w.Warn(novelctx.WarnAuthorMissing)
	}

	if synopsis := doc.Find("#novel_ex").First(); synopsis.Length() > 0 {
		w.Synopsis = joinedText(synopsis, "\n")
	} else {
		w.Synopsis = novelctx.NotAvailable
		w.Warn(novelctx.WarnSynopsisMissing)
	}

	description, _ := doc.Find(`meta[property="og:description"]`).First().Attr("content")
	if tags := strings.Fields(description); len(tags) > 0 {
		w.Tags = tags
	} else {
		w.Warn(novelctx.WarnTagsMissing)
	}

	return parseEpisodeList(doc, base, w)
}

// parseEpisodeList walks the episode index. Chapter headings set the label
// prepended to the titles that follow them; numbering runs across chapters.
func parseEpisodeList(doc *goquery.Selection, base *url.URL, w *novelctx.Work) error {
	list := doc.Find("div.p-eplist").First()
	if list.Length() == 0 {
		w.Warn(novelctx.WarnEpisodeListMissing)
		return nil
	}

	var (
		chapter string
		number  = 1
		err     error
	)
	list.Children().EachWithBreak(func(_ int, item *goquery.Selection) bool {
		switch {
		case item.HasClass("p-eplist__chapter-title"):
			chapter = textOf(item)

		case item.HasClass("p-eplist__sublist"):
			link := item.Find("a.p-eplist__subtitle").First()
			href, ok := link.Attr("href")
			href = strings.TrimSpace(href)
			if !ok || href == "" {
				return true
			}

			ref, parseErr := url.Parse(href)
			if parseErr != nil {
				err = novelctx.WrapErrorf(parseErr, novelctx.EMALFORMED, "invalid episode link %q", href)
				return false
			}

			title := textOf(link)
			if chapter != "" {
				title = chapter + " " + title
			}

			ep := novelctx.EpisodeDescriptor{
				URL:    base.ResolveReference(ref).String(),
				Title:  title,
				Number: number,
			}
			if update := item.Find("div.p-eplist__update").First(); update.Length() > 0 {
				ep.PublishedAt = publishedAtPattern.FindString(joinedText(update, " "))
			}
			if ep.PublishedAt == "" {
				w.Warn(novelctx.WarnTimestampMissing)
			}

			w.Episodes = append(w.Episodes, ep)
			number++
		}
		return true
	})

	return err
}

// infoSummaryParser reads the label/value info page. Fields are located by
// label text so their order on the page does not matter.
type infoSummaryParser struct{}

func (infoSummaryParser) parse(doc *goquery.Selection, _ *url.URL, w *novelctx.Work) error {
	w.Title = textOr(doc.Find("h1.p-infotop-title").First(), w, novelctx.WarnTitleMissing)

	if value, ok := infoValue(doc, labelAuthor); ok {
		if link := value.Find("a").First(); link.Length() > 0 {
			w.Author = textOf(link)
		} else {
			w.Author = textOf(value)
		}
	} else {
		w.Author = novelctx.NotAvailable
		w.Warn(novelctx.WarnAuthorMissing)
	}

	if value, ok := infoValue(doc, labelSynopsis); ok {
		w.Synopsis = joinedText(value, "\n")
	} else {
		w.Synopsis = novelctx.NotAvailable
		w.Warn(novelctx.WarnSynopsisMissing)
	}

	if value, ok := infoValue(doc, labelKeywords); ok {
		if tags := strings.Fields(joinedText(value, " ")); len(tags) > 0 {
			w.Tags = tags
		}
	}
	if len(w.Tags) == 0 {
		w.Warn(novelctx.WarnTagsMissing)
	}

	return nil
}

// infoValue returns the value cell that follows the first label cell whose
// text matches label.
func infoValue(doc *goquery.Selection, label string) (*goquery.Selection, bool) {
	want := labelKey(label)
	var value *goquery.Selection
	doc.Find("dt.p-infotop-data__title").EachWithBreak(func(_ int, dt *goquery.Selection) bool {
		if labelKey(textOf(dt)) != want {
			return true
		}
		if dd := dt.NextAllFiltered("dd.p-infotop-data__value").First(); dd.Length() > 0 {
			value = dd
		}
		return false
	})
	return value, value != nil
}

// textOr returns the selection's text, or NotAvailable with a warning when
// the selection is empty.
func textOr(sel *goquery.Selection, w *novelctx.Work, warning novelctx.Warning) string {
	if sel.Length() == 0 {
		w.Warn(warning)
		return novelctx.NotAvailable
	}
	return textOf(sel)
}

func stripAuthorPrefix(s string) string {
	for _, prefix := range authorPrefixes {
		s = strings.TrimPrefix(s, prefix)
	}
	return strings.TrimSpace(s)
}
