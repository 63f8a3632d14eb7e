package files

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/docusage/internal/common"
	"github.com/dmitrijs2005/docusage/internal/server/migrations"
	"github.com/dmitrijs2005/docusage/internal/server/models"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func newSQLiteRepo(t *testing.T) (*SQLiteRepository, int64) {
	t.Helper()
	ctx := context.Background()

	db, err := sql.Open("sqlite", "file:"+filepath.Join(t.TempDir(), "files.db")+"?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	p, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.SQLite())
	require.NoError(t, err)
	_, err = p.Up(ctx)
	require.NoError(t, err)

	var userID int64
	err = db.QueryRowContext(ctx,
		`INSERT INTO users (email, password_hash, created_at) VALUES ('u@e.com', 'h', 0) RETURNING id`).Scan(&userID)
	require.NoError(t, err)

	return NewSQLiteRepository(db), userID
}

func TestSQLiteRepository_SaveListGet(t *testing.T) {
	repo, userID := newSQLiteRepo(t)
	ctx := context.Background()

	clock := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return clock }

	a, err := repo.Save(ctx, &models.File{ID: "id-a", UserID: userID, Filename: "a.pdf", StorageKey: "1/a.pdf", ContentType: "application/pdf", Size: 3})
	require.NoError(t, err)
	assert.True(t, clock.Equal(a.CreatedAt))

	clock = clock.Add(time.Minute)
	_, err = repo.Save(ctx, &models.File{ID: "id-b", UserID: userID, Filename: "b.txt", StorageKey: "1/b.txt", ContentType: "text/plain", Size: 4})
	require.NoError(t, err)

	list, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "id-b", list[0].ID)
	assert.Equal(t, "id-a", list[1].ID)

	got, err := repo.GetByID(ctx, userID, "id-a")
	require.NoError(t, err)
	assert.Equal(t, "a.pdf", got.Filename)
	assert.Equal(t, int64(3), got.Size)

	_, err = repo.GetByID(ctx, userID+1, "id-a")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSQLiteRepository_SaveReplacesSameKey(t *testing.T) {
	repo, userID := newSQLiteRepo(t)
	ctx := context.Background()

	_, err := repo.Save(ctx, &models.File{ID: "first", UserID: userID, Filename: "a.txt", StorageKey: "1/a.txt", ContentType: "text/plain", Size: 1})
	require.NoError(t, err)

	second, err := repo.Save(ctx, &models.File{ID: "second", UserID: userID, Filename: "a.txt", StorageKey: "1/a.txt", ContentType: "text/plain", Size: 9})
	require.NoError(t, err)
	assert.Equal(t, "first", second.ID)

	list, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(9), list[0].Size)
}

func TestSQLiteRepository_UnknownUserRejected(t *testing.T) {
	repo, userID := newSQLiteRepo(t)

	_, err := repo.Save(context.Background(), &models.File{ID: "x", UserID: userID + 100, Filename: "a", StorageKey: "k", ContentType: "text/plain"})
	assert.Error(t, err)
}

func TestSQLiteRepository_EmptyList(t *testing.T) {
	repo, userID := newSQLiteRepo(t)

	list, err := repo.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
