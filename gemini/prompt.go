package gemini

import (
	"fmt"
	"strings"

	"github.com/fwojciec/novelctx"
)

// BuildSummaryPrompt builds the prompt asking for a summary of one episode.
func BuildSummaryPrompt(ep *novelctx.Episode) string {
	var sb strings.Builder
	sb.WriteString("Summarize the following episode in Japanese in at most five sentences. ")
	sb.WriteString("Mention the characters involved and the events that move the story forward.\n\n")
	writeEpisode(&sb, ep)
	return sb.String()
}

// BuildCharacterPrompt builds the prompt asking for the characters of one
// episode as a JSON list.
func BuildCharacterPrompt(ep *novelctx.Episode) string {
	var sb strings.Builder
	sb.WriteString("List every named character who appears in the following episode. ")
	sb.WriteString(`Answer with a JSON array of objects with the keys "name", "reading", "aliases" and "description". `)
	sb.WriteString(`"reading" is the kana reading of the name when the text gives one, otherwise an empty string. `)
	sb.WriteString(`"aliases" lists other names the character is called by. `)
	sb.WriteString(`"description" is one sentence about the character's role. Answer [] if there are none.`)
	sb.WriteString("\n\n")
	writeEpisode(&sb, ep)
	return sb.String()
}

func writeEpisode(sb *strings.Builder, ep *novelctx.Episode) {
	sb.WriteString("<episode>\n")
	fmt.Fprintf(sb, "<number>%d</number>\n", ep.Number)
	fmt.Fprintf(sb, "<title>%s</title>\n", ep.Title)
	fmt.Fprintf(sb, "<content>%s</content>\n", ep.Content)
	sb.WriteString("</episode>\n")
}
