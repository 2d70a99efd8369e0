package novelctx

import (
	"context"
	"time"
)

// ProcessingStatus tracks an analysis step for a stored record.
type ProcessingStatus string

// Processing states.
const (
	StatusPending    ProcessingStatus = "pending"
	StatusProcessing ProcessingStatus = "processing"
	StatusCompleted  ProcessingStatus = "completed"
	StatusFailed     ProcessingStatus = "failed"
)

// Episode represents a stored installment of a novel.
type Episode struct {
	ID          string     `json:"id"`
	NovelID     string     `json:"novelId"`
	URL         string     `json:"url"`
	Title       string     `json:"title"`
	Number      int        `json:"number"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`

	Content     string     `json:"content"`
	CharCount   int        `json:"charCount"`
	ContentHash string     `json:"contentHash"`
	FetchedAt   *time.Time `json:"fetchedAt,omitempty"`

	Summary       string           `json:"summary"`
	SummaryStatus ProcessingStatus `json:"summaryStatus"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate returns an error if the episode contains invalid fields.
func (e *Episode) Validate() error {
	if e.NovelID == "" {
		return Errorf(EINVALID, "episode novel ID required")
	}
	if e.URL == "" {
		return Errorf(EINVALID, "episode URL required")
	}
	if e.Number < 1 {
		return Errorf(EINVALID, "episode number must be positive")
	}
	return nil
}

// HasContent reports whether the episode body has been fetched.
func (e *Episode) HasContent() bool {
	return e.FetchedAt != nil
}

// EpisodeFromDescriptor builds the storable record for an extracted
// descriptor. An unparseable timestamp is dropped.
func EpisodeFromDescriptor(novelID string, d EpisodeDescriptor) *Episode {
	ep := &Episode{
		NovelID: novelID,
		URL:     d.URL,
		Title:   d.Title,
		Number:  d.Number,
	}
	if t, err := d.PublishedTime(); err == nil && !t.IsZero() {
		ep.PublishedAt = &t
	}
	return ep
}

// EpisodeContent is the fetched body of an episode.
type EpisodeContent struct {
	Content     string
	CharCount   int
	ContentHash string
	FetchedAt   time.Time
}

// EpisodeService represents a service for managing episodes.
type EpisodeService interface {
	// UpsertEpisode creates the episode or merges changed index fields
	// (title, number, publication time) into the record with the same URL.
	// Content and summary fields are left untouched.
	UpsertEpisode(ctx context.Context, episode *Episode) (UpsertResult, error)

	// FindEpisodeByID retrieves an episode by ID.
	// Returns ENOTFOUND if episode does not exist.
	FindEpisodeByID(ctx context.Context, id string) (*Episode, error)

	// FindEpisodeByURL retrieves an episode by its page URL.
	// Returns ENOTFOUND if episode does not exist.
	FindEpisodeByURL(ctx context.Context, url string) (*Episode, error)

	// FindEpisodes retrieves episodes matching the filter ordered by number.
	FindEpisodes(ctx context.Context, filter EpisodeFilter) ([]*Episode, error)

	// UpdateEpisodeContent stores a fetched body.
	// Returns ENOTFOUND if episode does not exist.
	UpdateEpisodeContent(ctx context.Context, id string, content EpisodeContent) (UpsertResult, error)

	// UpdateEpisodeSummary stores a summary and its processing status.
	// Returns ENOTFOUND if episode does not exist.
	UpdateEpisodeSummary(ctx context.Context, id string, summary string, status ProcessingStatus) error
}

// EpisodeFilter represents a filter for FindEpisodes.
type EpisodeFilter struct {
	NovelID *string `json:"novelId"`

	// Inclusive episode number range. Zero means unbounded.
	FromNumber int `json:"fromNumber"`
	ToNumber   int `json:"toNumber"`

	// When true, only episodes without fetched content are returned.
	MissingContent bool `json:"missingContent"`

	// Skip the content column when only index fields are needed.
	WithoutContent bool `json:"withoutContent"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
