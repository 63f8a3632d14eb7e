package users

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/docusage/internal/common"
	"github.com/dmitrijs2005/docusage/internal/server/migrations"
	"github.com/dmitrijs2005/docusage/internal/server/models"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteRepo(t *testing.T) *SQLiteRepository {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "users.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	p, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.SQLite())
	require.NoError(t, err)
	_, err = p.Up(context.Background())
	require.NoError(t, err)

	return NewSQLiteRepository(db)
}

func TestSQLiteRepository_CreateAndFind(t *testing.T) {
	repo := newSQLiteRepo(t)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }
	ctx := context.Background()

	created, err := repo.Create(ctx, &models.User{Email: "u@e.com", PasswordHash: "h1"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.True(t, now.Equal(created.CreatedAt))

	byEmail, err := repo.FindByEmail(ctx, "u@e.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
	assert.Equal(t, "h1", byEmail.PasswordHash)
	assert.True(t, now.Equal(byEmail.CreatedAt))

	byID, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "u@e.com", byID.Email)
}

func TestSQLiteRepository_EmailIsCaseSensitive(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, &models.User{Email: "U@e.com", PasswordHash: "h"})
	require.NoError(t, err)

	_, err = repo.FindByEmail(ctx, "u@e.com")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = repo.Create(ctx, &models.User{Email: "u@e.com", PasswordHash: "h"})
	assert.NoError(t, err)
}

func TestSQLiteRepository_NotFound(t *testing.T) {
	repo := newSQLiteRepo(t)

	_, err := repo.FindByEmail(context.Background(), "ghost@e.com")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = repo.FindByID(context.Background(), 999)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSQLiteRepository_DuplicateEmail(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	first, err := repo.Create(ctx, &models.User{Email: "u@e.com", PasswordHash: "first"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &models.User{Email: "u@e.com", PasswordHash: "second"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	stored, err := repo.FindByEmail(ctx, "u@e.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, stored.ID)
	assert.Equal(t, "first", stored.PasswordHash)
}

func TestSQLiteRepository_ConcurrentCreateOneWins(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	const n = 8
	var (
		wg   sync.WaitGroup
		errs = make([]error, n)
	)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = repo.Create(ctx, &models.User{Email: "race@e.com", PasswordHash: "h"})
		}()
	}
	wg.Wait()

	var ok, dup int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, common.ErrorAlreadyExists):
			dup++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, dup)
}
