package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var (
	// lineIDPattern matches the ids of paragraph-level blocks in a body.
	lineIDPattern = regexp.MustCompile(`^L\d+$`)

	horizontalSpace = regexp.MustCompile(`[ \t]+`)
	lineEdgeSpace   = regexp.MustCompile(`[ \t]*\n[ \t]*`)
	extraBlankLines = regexp.MustCompile(`\n{3,}`)
)

// Normalize converts a body container into plain text. Ruby annotations are
// replaced by their base reading, line breaks inside a paragraph become
// single newlines and paragraphs are separated by one blank line.
//
// Only paragraphs whose id looks like "L<n>" are read. Running the output
// back through Normalize (one paragraph per blank-line separated block)
// returns it unchanged.
func Normalize(container *goquery.Selection) string {
	var paragraphs []string
	container.Find("p[id]").Each(func(_ int, p *goquery.Selection) {
		id, _ := p.Attr("id")
		if !lineIDPattern.MatchString(id) {
			return
		}
		if text := paragraphText(p.Get(0)); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})

	text := strings.Join(paragraphs, "\n\n")
	text = horizontalSpace.ReplaceAllString(text, " ")
	text = lineEdgeSpace.ReplaceAllString(text, "\n")
	text = extraBlankLines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// paragraphText flattens the children of one paragraph block.
func paragraphText(p *html.Node) string {
	var b strings.Builder
	for c := p.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.TextNode:
			b.WriteString(c.Data)
		case c.Type != html.ElementNode:
			continue
		case c.Data == "br":
			// Adjacent breaks collapse into one.
			if b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
				b.WriteByte('\n')
			}
		case c.Data == "ruby":
			b.WriteString(baseReading(c))
		default:
			b.WriteString(nodeText(c))
		}
	}
	return strings.TrimSpace(b.String())
}

// baseReading returns the annotated text of a ruby element. The rb children
// and bare text are preferred; otherwise the rt and rp text is cut out of
// the element's full text. Annotation text never survives.
func baseReading(ruby *html.Node) string {
	var b strings.Builder
	for c := ruby.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.TextNode:
			b.WriteString(c.Data)
		case c.Type == html.ElementNode && c.Data == "rb":
			b.WriteString(nodeText(c))
		}
	}
	reading := b.String()

	if reading == "" {
		reading = nodeText(ruby)
		for _, annotation := range findElements(ruby, "rt", "rp") {
			if s := nodeText(annotation); s != "" {
				reading = strings.ReplaceAll(reading, s, "")
			}
		}
	}

	return strings.TrimSpace(reading)
}

// findElements returns the descendant elements of n with one of the given
// tag names, in document order.
func findElements(n *html.Node, tags ...string) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				for _, tag := range tags {
					if c.Data == tag {
						found = append(found, c)
						break
					}
				}
			}
			walk(c)
		}
	}
	walk(n)
	return found
}
