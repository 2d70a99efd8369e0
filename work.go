package novelctx

import (
	"time"
	"unicode/utf8"
)

// PlatformNarou identifies works hosted on the syosetu ("narou") platform.
const PlatformNarou = "narou"

// NotAvailable is stored in text fields the source page did not provide.
const NotAvailable = "N/A"

// PublishedAtLayout is the time layout of EpisodeDescriptor.PublishedAt.
const PublishedAtLayout = "2006/01/02 15:04"

// jst is the zone publication timestamps are printed in.
var jst = time.FixedZone("JST", 9*60*60)

// Layout identifies the page layout a work's metadata was read from.
type Layout string

// Supported landing page layouts.
const (
	// LayoutWorkLanding is the work's index page with the episode list.
	LayoutWorkLanding Layout = "work_landing"
	// LayoutInfoSummary is the label/value info page. It has no episode list.
	LayoutInfoSummary Layout = "info_summary"
)

// Warning describes a recoverable anomaly found while extracting a page.
// Warnings never change the outcome of an extraction call.
type Warning string

// Warnings reported by extractors.
const (
	WarnTitleMissing       Warning = "title_missing"
	WarnAuthorMissing      Warning = "author_missing"
	WarnSynopsisMissing    Warning = "synopsis_missing"
	WarnTagsMissing        Warning = "tags_missing"
	WarnEpisodeListMissing Warning = "episode_list_missing"
	WarnTimestampMissing   Warning = "timestamp_missing"
	WarnEmptyBody          Warning = "empty_body"
)

// Work holds the bibliographic metadata of a serialized work and the
// ordered list of its published episodes.
type Work struct {
	Title     string   `json:"title"`
	Author    string   `json:"author"`
	Synopsis  string   `json:"synopsis"`
	Tags      []string `json:"tags"`
	SourceURL string   `json:"sourceUrl"`
	Platform  string   `json:"platform"`
	Layout    Layout   `json:"layout"`

	// Episodes are in site order (chapter-major). Numbers start at 1 and
	// are contiguous across chapters.
	Episodes []EpisodeDescriptor `json:"episodes"`

	Warnings []Warning `json:"warnings,omitempty"`
}

// Warn records w once.
func (w *Work) Warn(warning Warning) {
	w.Warnings = appendWarning(w.Warnings, warning)
}

// EpisodeDescriptor locates a single installment of a work.
type EpisodeDescriptor struct {
	URL    string `json:"url"`
	Title  string `json:"title"` // Prefixed with the chapter label when grouped.
	Number int    `json:"number"`

	// PublishedAt is "YYYY/MM/DD HH:MM" or empty when the index showed none.
	PublishedAt string `json:"publishedAt,omitempty"`
}

// PublishedTime parses PublishedAt. The zero time is returned when the
// descriptor has no timestamp.
func (d EpisodeDescriptor) PublishedTime() (time.Time, error) {
	if d.PublishedAt == "" {
		return time.Time{}, nil
	}
	return ParsePublishedAt(d.PublishedAt)
}

// ParsePublishedAt parses a "YYYY/MM/DD HH:MM" timestamp printed in JST.
func ParsePublishedAt(s string) (time.Time, error) {
	t, err := time.ParseInLocation(PublishedAtLayout, s, jst)
	if err != nil {
		return time.Time{}, Errorf(EINVALID, "invalid publication timestamp %q", s)
	}
	return t, nil
}

// Body is the normalized plain text of one episode.
type Body struct {
	// Text has paragraphs separated by a single blank line and carries no
	// markup or ruby annotation.
	Text string `json:"text"`

	// Container names the markup container the text was read from.
	Container string `json:"container"`

	Warnings []Warning `json:"warnings,omitempty"`
}

// Warn records w once.
func (b *Body) Warn(warning Warning) {
	b.Warnings = appendWarning(b.Warnings, warning)
}

// CharCount returns the number of characters (runes) in the text.
func (b *Body) CharCount() int {
	return utf8.RuneCountInString(b.Text)
}

func appendWarning(warnings []Warning, w Warning) []Warning {
	for _, existing := range warnings {
		if existing == w {
			return warnings
		}
	}
	return append(warnings, w)
}
