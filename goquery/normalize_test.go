package goquery_test

import (
	"fmt"
	"html"
	"strings"
	"testing"

	gq "github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/novelctx/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	t.Run("joins paragraphs with one blank line", func(t *testing.T) {
		t.Parallel()

		got := normalize(t, `<p id="L1">最初の段落。</p><p id="L2">次の段落。</p>`)

		assert.Equal(t, "最初の段落。\n\n次の段落。", got)
	})

	t.Run("resolves ruby to its base text", func(t *testing.T) {
		t.Parallel()

		got := normalize(t, `<p id="L1"><ruby><rb>漢字</rb><rp>(</rp><rt>かんじ</rt><rp>)</rp></ruby>を読む。</p>`)

		assert.Equal(t, "漢字を読む。", got)
		assert.NotContains(t, got, "かんじ")
		assert.NotContains(t, got, "(")
	})

	t.Run("resolves ruby without rb element", func(t *testing.T) {
		t.Parallel()

		got := normalize(t, `<p id="L1"><ruby>漢字<rt>かんじ</rt></ruby>を読む。</p>`)

		assert.Equal(t, "漢字を読む。", got)
		assert.NotContains(t, got, "かんじ")
	})

	t.Run("cuts annotations out when base text is nested", func(t *testing.T) {
		t.Parallel()

		got := normalize(t, `<p id="L1"><ruby><span>魔法</span><rt>まほう</rt></ruby></p>`)

		assert.Equal(t, "魔法", got)
	})

	t.Run("turns line breaks into single newlines", func(t *testing.T) {
		t.Parallel()

		got := normalize(t, `<p id="L1">一行目<br><br>二行目<br/>三行目</p>`)

		assert.Equal(t, "一行目\n二行目\n三行目", got)
	})

	t.Run("ignores a leading line break", func(t *testing.T) {
		t.Parallel()

		got := normalize(t, `<p id="L1"><br>本文</p>`)

		assert.Equal(t, "本文", got)
	})

	t.Run("keeps text of other inline elements", func(t *testing.T) {
		t.Parallel()

		got := normalize(t, `<p id="L1">彼は<span class="em">本当に</span><a href="#">来た</a>。</p>`)

		assert.Equal(t, "彼は本当に来た。", got)
	})

	t.Run("drops empty paragraphs", func(t *testing.T) {
		t.Parallel()

		got := normalize(t, `<p id="L1">一</p><p id="L2">   </p><p id="L3"><br></p><p id="L4">二</p>`)

		assert.Equal(t, "一\n\n二", got)
	})

	t.Run("skips blocks without a line id", func(t *testing.T) {
		t.Parallel()

		got := normalize(t, `<p id="Lp1">前書き</p><p id="L1">本文</p><p>注記</p><p id="La1">後書き</p>`)

		assert.Equal(t, "本文", got)
	})

	t.Run("collapses whitespace runs", func(t *testing.T) {
		t.Parallel()

		got := normalize(t, "<p id=\"L1\">a \t  b\n\n\n\nc</p><p id=\"L2\">\t\td  e</p>")

		assert.Equal(t, "a b\n\nc\n\nd e", got)
		assert.NotContains(t, got, "\n\n\n")
		assert.NotContains(t, got, "  ")
		assert.NotContains(t, got, "\t")
	})

	t.Run("returns empty string for empty container", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, normalize(t, ``))
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		inputs := []string{
			`<p id="L1"><ruby><rb>漢字</rb><rt>かんじ</rt></ruby>を  読む。<br>次の行</p><p id="L2"></p><p id="L3">「台詞」&amp;&lt;記号&gt;</p>`,
			"<p id=\"L1\">a \t b\n\n\n\nc</p><p id=\"L2\">x<br><br>  y  </p>",
			`<p id="L1"><br><br>line<br> indented<br></p>`,
			"<p id=\"L1\">a \n\n\n b</p>",
			"<p id=\"L1\">台詞。 \n\n次</p>",
			"<p id=\"L1\">行末 \t<br>\t 行頭</p>",
		}
		for i, input := range inputs {
			first := normalize(t, input)
			second := normalize(t, asTree(first))
			assert.Equal(t, first, second, "input %d", i)
			assert.NotRegexp(t, `[ \t]\n|\n[ \t]`, first, "input %d", i)
		}
	})
}

// normalize runs Normalize over body placed inside a container element.
func normalize(t *testing.T, body string) string {
	t.Helper()
	doc, err := gq.NewDocumentFromReader(strings.NewReader(`<div id="root">` + body + `</div>`))
	require.NoError(t, err)
	return goquery.Normalize(doc.Find("#root"))
}

// asTree renders normalized text back into paragraph markup: one block per
// blank-line separated paragraph and a line break per newline.
func asTree(text string) string {
	var b strings.Builder
	for i, para := range strings.Split(text, "\n\n") {
		lines := strings.Split(para, "\n")
		for j := range lines {
			lines[j] = html.EscapeString(lines[j])
		}
		fmt.Fprintf(&b, `<p id="L%d">%s</p>`, i+1, strings.Join(lines, "<br>"))
	}
	return b.String()
}
