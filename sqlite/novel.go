package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/fwojciec/novelctx"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ novelctx.NovelService = (*NovelService)(nil)

// querier is implemented by *DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

const novelColumns = "id, url, platform, title, author, synopsis, tags, created_at, updated_at, last_scraped_at"

// NovelService implements novelctx.NovelService using SQLite.
type NovelService struct {
	db *DB
}

// NewNovelService creates a new NovelService.
func NewNovelService(db *DB) *NovelService {
	return &NovelService{db: db}
}

// UpsertNovel creates the novel or merges it into the record with the same
// URL. Placeholder values (empty or novelctx.NotAvailable) and empty tag
// lists never replace stored data.
func (s *NovelService) UpsertNovel(ctx context.Context, novel *novelctx.Novel) (novelctx.UpsertResult, error) {
	if err := novel.Validate(); err != nil {
		return novelctx.UpsertUnchanged, err
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return novelctx.UpsertUnchanged, err
	}
	defer tx.Rollback()

	existing, err := findNovel(ctx, tx, "url = ?", novel.URL)
	if novelctx.ErrorCode(err) == novelctx.ENOTFOUND {
		novel.ID = uuid.New().String()
		novel.CreatedAt = now()
		novel.UpdatedAt = novel.CreatedAt
		if novel.Tags == nil {
			novel.Tags = []string{}
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO novels (id, url, platform, title, author, synopsis, tags, created_at, updated_at, last_scraped_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, novel.ID, novel.URL, novel.Platform, novel.Title, novel.Author, novel.Synopsis, joinList(novel.Tags),
			formatTime(novel.CreatedAt), formatTime(novel.UpdatedAt), formatNullTime(novel.LastScrapedAt)); err != nil {
			return novelctx.UpsertUnchanged, err
		}
		return novelctx.UpsertCreated, tx.Commit()
	}
	if err != nil {
		return novelctx.UpsertUnchanged, err
	}

	changed := mergeText(&existing.Platform, novel.Platform)
	changed = mergeText(&existing.Title, novel.Title) || changed
	changed = mergeText(&existing.Author, novel.Author) || changed
	changed = mergeText(&existing.Synopsis, novel.Synopsis) || changed
	if len(novel.Tags) > 0 && !slices.Equal(existing.Tags, novel.Tags) {
		existing.Tags = novel.Tags
		changed = true
	}

	result := novelctx.UpsertUnchanged
	if changed {
		existing.UpdatedAt = now()
		if _, err := tx.ExecContext(ctx, `
			UPDATE novels
			SET platform = ?, title = ?, author = ?, synopsis = ?, tags = ?, updated_at = ?
			WHERE id = ?
		`, existing.Platform, existing.Title, existing.Author, existing.Synopsis, joinList(existing.Tags),
			formatTime(existing.UpdatedAt), existing.ID); err != nil {
			return novelctx.UpsertUnchanged, err
		}
		result = novelctx.UpsertUpdated
	}

	if err := tx.Commit(); err != nil {
		return novelctx.UpsertUnchanged, err
	}
	*novel = *existing
	return result, nil
}

// FindNovelByID retrieves a novel by ID.
func (s *NovelService) FindNovelByID(ctx context.Context, id string) (*novelctx.Novel, error) {
	return findNovel(ctx, s.db, "id = ?", id)
}

// FindNovelByURL retrieves a novel by its landing page URL.
func (s *NovelService) FindNovelByURL(ctx context.Context, url string) (*novelctx.Novel, error) {
	return findNovel(ctx, s.db, "url = ?", url)
}

// FindNovels retrieves novels matching the filter, most recently updated first.
func (s *NovelService) FindNovels(ctx context.Context, filter novelctx.NovelFilter) ([]*novelctx.Novel, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + novelColumns + " FROM novels WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.Platform != nil {
		query.WriteString(" AND platform = ?")
		args = append(args, *filter.Platform)
	}

	query.WriteString(" ORDER BY updated_at DESC, title")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var novels []*novelctx.Novel
	for rows.Next() {
		novel, err := scanNovel(rows)
		if err != nil {
			return nil, err
		}
		novels = append(novels, novel)
	}

	return novels, rows.Err()
}

// MarkNovelScraped records when the novel's landing page was read.
func (s *NovelService) MarkNovelScraped(ctx context.Context, id string, at time.Time) error {
	result, err := s.db.ExecContext(ctx, "UPDATE novels SET last_scraped_at = ? WHERE id = ?", formatTime(at), id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return novelctx.Errorf(novelctx.ENOTFOUND, "novel not found")
	}
	return nil
}

func findNovel(ctx context.Context, q querier, where string, arg any) (*novelctx.Novel, error) {
	row := q.QueryRowContext(ctx, "SELECT "+novelColumns+" FROM novels WHERE "+where, arg)
	novel, err := scanNovel(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, novelctx.Errorf(novelctx.ENOTFOUND, "novel not found")
	}
	return novel, err
}

func scanNovel(row scanner) (*novelctx.Novel, error) {
	var novel novelctx.Novel
	var tags, createdAt, updatedAt string
	var lastScrapedAt sql.NullString

	if err := row.Scan(&novel.ID, &novel.URL, &novel.Platform, &novel.Title, &novel.Author, &novel.Synopsis,
		&tags, &createdAt, &updatedAt, &lastScrapedAt); err != nil {
		return nil, err
	}

	novel.Tags = splitList(tags)

	var err error
	if novel.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if novel.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	if novel.LastScrapedAt, err = parseNullTime(lastScrapedAt, "last_scraped_at"); err != nil {
		return nil, err
	}

	return &novel, nil
}

// mergeText replaces *stored with incoming unless incoming is a placeholder.
// It reports whether the stored value changed.
func mergeText(stored *string, incoming string) bool {
	if incoming == "" || incoming == novelctx.NotAvailable || incoming == *stored {
		return false
	}
	*stored = incoming
	return true
}
