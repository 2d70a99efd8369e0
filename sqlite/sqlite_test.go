package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/novelctx"
	"github.com/fwojciec/novelctx/sqlite"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

// createNovel stores a novel for tests that need a parent record.
func createNovel(t *testing.T, db *sqlite.DB, url string) *novelctx.Novel {
	t.Helper()
	novel := &novelctx.Novel{
		URL:      url,
		Platform: novelctx.PlatformNarou,
		Title:    "星の図書館",
		Author:   "山田 太郎",
	}
	_, err := sqlite.NewNovelService(db).UpsertNovel(context.Background(), novel)
	require.NoError(t, err)
	return novel
}

func TestDB_Open(t *testing.T) {
	t.Parallel()

	t.Run("creates schema on first open", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(":memory:")
		err := db.Open()
		require.NoError(t, err)
		defer db.Close()

		ctx := context.Background()
		for _, table := range []string{"novels", "episodes", "characters"} {
			var count int
			err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count)
			require.NoError(t, err, table)
		}
	})

	t.Run("reopens an existing database", func(t *testing.T) {
		t.Parallel()

		dbPath := t.TempDir() + "/test.db"
		db := sqlite.NewDB(dbPath)
		require.NoError(t, db.Open())
		createNovel(t, db, "https://ncode.syosetu.com/n1234ab/")
		require.NoError(t, db.Close())

		db = sqlite.NewDB(dbPath)
		require.NoError(t, db.Open())
		defer db.Close()

		found, err := sqlite.NewNovelService(db).FindNovelByURL(context.Background(), "https://ncode.syosetu.com/n1234ab/")
		require.NoError(t, err)
		require.Equal(t, "星の図書館", found.Title)
	})

	t.Run("returns error for invalid path", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB("/nonexistent/path/db.sqlite")
		err := db.Open()
		require.Error(t, err)
	})

	t.Run("enables WAL mode for file-based databases", func(t *testing.T) {
		t.Parallel()

		dbPath := t.TempDir() + "/test.db"
		db := sqlite.NewDB(dbPath)
		err := db.Open()
		require.NoError(t, err)
		defer db.Close()

		ctx := context.Background()
		var journalMode string
		err = db.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&journalMode)
		require.NoError(t, err)
		require.Equal(t, "wal", journalMode)
	})
}
