package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/fwojciec/novelctx"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ novelctx.EpisodeService = (*EpisodeService)(nil)

const episodeColumns = "id, novel_id, url, title, number, published_at, content, char_count, content_hash, fetched_at, summary, summary_status, created_at, updated_at"

// episodeIndexColumns selects everything but the content body.
const episodeIndexColumns = "id, novel_id, url, title, number, published_at, '', char_count, content_hash, fetched_at, summary, summary_status, created_at, updated_at"

// EpisodeService implements novelctx.EpisodeService using SQLite.
type EpisodeService struct {
	db *DB
}

// NewEpisodeService creates a new EpisodeService.
func NewEpisodeService(db *DB) *EpisodeService {
	return &EpisodeService{db: db}
}

// UpsertEpisode creates the episode or merges its index fields into the
// record with the same URL.
func (s *EpisodeService) UpsertEpisode(ctx context.Context, episode *novelctx.Episode) (novelctx.UpsertResult, error) {
	if err := episode.Validate(); err != nil {
		return novelctx.UpsertUnchanged, err
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return novelctx.UpsertUnchanged, err
	}
	defer tx.Rollback()

	existing, err := findEpisode(ctx, tx, "url = ?", episode.URL)
	if novelctx.ErrorCode(err) == novelctx.ENOTFOUND {
		episode.ID = uuid.New().String()
		episode.CreatedAt = now()
		episode.UpdatedAt = episode.CreatedAt
		if episode.SummaryStatus == "" {
			episode.SummaryStatus = novelctx.StatusPending
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO episodes (id, novel_id, url, title, number, published_at, summary_status, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, episode.ID, episode.NovelID, episode.URL, episode.Title, episode.Number,
			formatNullTime(episode.PublishedAt), string(episode.SummaryStatus),
			formatTime(episode.CreatedAt), formatTime(episode.UpdatedAt)); err != nil {
			return novelctx.UpsertUnchanged, err
		}
		return novelctx.UpsertCreated, tx.Commit()
	}
	if err != nil {
		return novelctx.UpsertUnchanged, err
	}

	changed := mergeText(&existing.Title, episode.Title)
	if episode.Number != existing.Number {
		existing.Number = episode.Number
		changed = true
	}
	if episode.PublishedAt != nil && (existing.PublishedAt == nil || !episode.PublishedAt.Equal(*existing.PublishedAt)) {
		t := episode.PublishedAt.UTC()
		existing.PublishedAt = &t
		changed = true
	}

	result := novelctx.UpsertUnchanged
	if changed {
		existing.UpdatedAt = now()
		if _, err := tx.ExecContext(ctx, `
			UPDATE episodes SET title = ?, number = ?, published_at = ?, updated_at = ?
			WHERE id = ?
		`, existing.Title, existing.Number, formatNullTime(existing.PublishedAt),
			formatTime(existing.UpdatedAt), existing.ID); err != nil {
			return novelctx.UpsertUnchanged, err
		}
		result = novelctx.UpsertUpdated
	}

	if err := tx.Commit(); err != nil {
		return novelctx.UpsertUnchanged, err
	}
	*episode = *existing
	return result, nil
}

// FindEpisodeByID retrieves an episode by ID.
func (s *EpisodeService) FindEpisodeByID(ctx context.Context, id string) (*novelctx.Episode, error) {
	return findEpisode(ctx, s.db, "id = ?", id)
}

// FindEpisodeByURL retrieves an episode by its page URL.
func (s *EpisodeService) FindEpisodeByURL(ctx context.Context, url string) (*novelctx.Episode, error) {
	return findEpisode(ctx, s.db, "url = ?", url)
}

// FindEpisodes retrieves episodes matching the filter ordered by number.
func (s *EpisodeService) FindEpisodes(ctx context.Context, filter novelctx.EpisodeFilter) ([]*novelctx.Episode, error) {
	var query strings.Builder
	var args []any

	columns := episodeColumns
	if filter.WithoutContent {
		columns = episodeIndexColumns
	}
	query.WriteString("SELECT " + columns + " FROM episodes WHERE 1=1")

	if filter.NovelID != nil {
		query.WriteString(" AND novel_id = ?")
		args = append(args, *filter.NovelID)
	}
	if filter.FromNumber > 0 {
		query.WriteString(" AND number >= ?")
		args = append(args, filter.FromNumber)
	}
	if filter.ToNumber > 0 {
		query.WriteString(" AND number <= ?")
		args = append(args, filter.ToNumber)
	}
	if filter.MissingContent {
		query.WriteString(" AND fetched_at IS NULL")
	}

	query.WriteString(" ORDER BY number, url")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var episodes []*novelctx.Episode
	for rows.Next() {
		episode, err := scanEpisode(rows)
		if err != nil {
			return nil, err
		}
		episodes = append(episodes, episode)
	}

	return episodes, rows.Err()
}

// UpdateEpisodeContent stores a fetched body. The result is UpsertCreated
// for the first body, UpsertUpdated when the hash changed and
// UpsertUnchanged otherwise. The fetch time is recorded in every case.
func (s *EpisodeService) UpdateEpisodeContent(ctx context.Context, id string, content novelctx.EpisodeContent) (novelctx.UpsertResult, error) {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return novelctx.UpsertUnchanged, err
	}
	defer tx.Rollback()

	var fetchedAt sql.NullString
	var hash string
	err = tx.QueryRowContext(ctx, "SELECT fetched_at, content_hash FROM episodes WHERE id = ?", id).Scan(&fetchedAt, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return novelctx.UpsertUnchanged, novelctx.Errorf(novelctx.ENOTFOUND, "episode not found")
	}
	if err != nil {
		return novelctx.UpsertUnchanged, err
	}

	result := novelctx.UpsertUpdated
	switch {
	case !fetchedAt.Valid:
		result = novelctx.UpsertCreated
	case hash == content.ContentHash:
		result = novelctx.UpsertUnchanged
	}

	if content.FetchedAt.IsZero() {
		content.FetchedAt = now()
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE episodes SET content = ?, char_count = ?, content_hash = ?, fetched_at = ?, updated_at = ?
		WHERE id = ?
	`, content.Content, content.CharCount, content.ContentHash, formatTime(content.FetchedAt),
		formatTime(now()), id); err != nil {
		return novelctx.UpsertUnchanged, err
	}

	return result, tx.Commit()
}

// UpdateEpisodeSummary stores a summary and its processing status.
func (s *EpisodeService) UpdateEpisodeSummary(ctx context.Context, id string, summary string, status novelctx.ProcessingStatus) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE episodes SET summary = ?, summary_status = ?, updated_at = ?
		WHERE id = ?
	`, summary, string(status), formatTime(now()), id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return novelctx.Errorf(novelctx.ENOTFOUND, "episode not found")
	}
	return nil
}

func findEpisode(ctx context.Context, q querier, where string, arg any) (*novelctx.Episode, error) {
	row := q.QueryRowContext(ctx, "SELECT "+episodeColumns+" FROM episodes WHERE "+where, arg)
	episode, err := scanEpisode(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, novelctx.Errorf(novelctx.ENOTFOUND, "episode not found")
	}
	return episode, err
}

func scanEpisode(row scanner) (*novelctx.Episode, error) {
	var episode novelctx.Episode
	var status, createdAt, updatedAt string
	var publishedAt, fetchedAt sql.NullString

	if err := row.Scan(&episode.ID, &episode.NovelID, &episode.URL, &episode.Title, &episode.Number, &publishedAt,
		&episode.Content, &episode.CharCount, &episode.ContentHash, &fetchedAt,
		&episode.Summary, &status, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	episode.SummaryStatus = novelctx.ProcessingStatus(status)

	var err error
	if episode.PublishedAt, err = parseNullTime(publishedAt, "published_at"); err != nil {
		return nil, err
	}
	if episode.FetchedAt, err = parseNullTime(fetchedAt, "fetched_at"); err != nil {
		return nil, err
	}
	if episode.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if episode.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &episode, nil
}
