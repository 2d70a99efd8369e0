package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// textOf returns the selection's text with every text node trimmed and
// concatenated.
func textOf(sel *goquery.Selection) string {
	return joinedText(sel, "")
}

// joinedText trims every descendant text node of the selection, drops the
// empty ones and joins the rest with sep.
func joinedText(sel *goquery.Selection, sep string) string {
	var parts []string
	for _, n := range sel.Nodes {
		walkText(n, func(s string) {
			if s = strings.TrimSpace(s); s != "" {
				parts = append(parts, s)
			}
		})
	}
	return strings.Join(parts, sep)
}

// nodeText concatenates the descendant text nodes of n verbatim.
func nodeText(n *html.Node) string {
	var b strings.Builder
	walkText(n, func(s string) {
		b.WriteString(s)
	})
	return b.String()
}

func walkText(n *html.Node, fn func(string)) {
	if n.Type == html.TextNode {
		fn(n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkText(c, fn)
	}
}

// labelKey folds a label for comparison so that width variants of the same
// text (full-width colons, half-width kana) compare equal.
func labelKey(s string) string {
	return norm.NFKC.String(strings.TrimSpace(s))
}
