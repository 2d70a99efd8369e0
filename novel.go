package novelctx

import (
	"context"
	"time"
)

// UpsertResult reports what an upsert did to the stored record.
type UpsertResult int

// Upsert outcomes.
const (
	UpsertUnchanged UpsertResult = iota
	UpsertCreated
	UpsertUpdated
)

// String returns the outcome as a lowercase word.
func (r UpsertResult) String() string {
	switch r {
	case UpsertCreated:
		return "created"
	case UpsertUpdated:
		return "updated"
	default:
		return "unchanged"
	}
}

// Novel represents a stored work.
type Novel struct {
	ID            string     `json:"id"`
	URL           string     `json:"url"`
	Platform      string     `json:"platform"`
	Title         string     `json:"title"`
	Author        string     `json:"author"`
	Synopsis      string     `json:"synopsis"`
	Tags          []string   `json:"tags"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	LastScrapedAt *time.Time `json:"lastScrapedAt,omitempty"`
}

// Validate returns an error if the novel contains invalid fields.
func (n *Novel) Validate() error {
	if n.URL == "" {
		return Errorf(EINVALID, "novel URL required")
	}
	if n.Title == "" {
		return Errorf(EINVALID, "novel title required")
	}
	return nil
}

// NovelFromWork builds the storable record for extracted metadata.
func NovelFromWork(w *Work) *Novel {
	return &Novel{
		URL:      w.SourceURL,
		Platform: w.Platform,
		Title:    w.Title,
		Author:   w.Author,
		Synopsis: w.Synopsis,
		Tags:     w.Tags,
	}
}

// NovelService represents a service for managing novels.
type NovelService interface {
	// UpsertNovel creates the novel or merges changed fields into the record
	// with the same URL. The novel's ID and timestamps are filled in.
	UpsertNovel(ctx context.Context, novel *Novel) (UpsertResult, error)

	// FindNovelByID retrieves a novel by ID.
	// Returns ENOTFOUND if novel does not exist.
	FindNovelByID(ctx context.Context, id string) (*Novel, error)

	// FindNovelByURL retrieves a novel by its landing page URL.
	// Returns ENOTFOUND if novel does not exist.
	FindNovelByURL(ctx context.Context, url string) (*Novel, error)

	// FindNovels retrieves novels matching the filter.
	FindNovels(ctx context.Context, filter NovelFilter) ([]*Novel, error)

	// MarkNovelScraped records that the novel's landing page was read.
	// Returns ENOTFOUND if novel does not exist.
	MarkNovelScraped(ctx context.Context, id string, at time.Time) error
}

// NovelFilter represents a filter for FindNovels.
type NovelFilter struct {
	ID       *string `json:"id"`
	URL      *string `json:"url"`
	Platform *string `json:"platform"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
