package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/docusage/internal/common"
	"github.com/dmitrijs2005/docusage/internal/dbx"
	"github.com/dmitrijs2005/docusage/internal/server/models"
)

// SQLiteRepository is the SQLite flavour of PostgresRepository.
// created_at is stored as unix seconds.
type SQLiteRepository struct {
	db  dbx.DBTX
	now func() time.Time
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

func (r *SQLiteRepository) Save(ctx context.Context, file *models.File) (*models.File, error) {
	query := `
		INSERT INTO files (id, user_id, filename, storage_key, content_type, size, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (storage_key)
		DO UPDATE SET
			content_type = excluded.content_type,
			size = excluded.size,
			created_at = excluded.created_at
		RETURNING id, created_at
	`
	var createdAt int64
	err := r.db.QueryRowContext(ctx, query,
		file.ID, file.UserID, file.Filename, file.StorageKey, file.ContentType, file.Size, r.now().Unix()).
		Scan(&file.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	file.CreatedAt = time.Unix(createdAt, 0).UTC()
	return file, nil
}

func (r *SQLiteRepository) ListByUser(ctx context.Context, userID int64) ([]*models.File, error) {
	query := `
		SELECT id, user_id, filename, storage_key, content_type, size, created_at FROM files
		WHERE user_id = ?
		ORDER BY created_at DESC, filename
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select files: %w", err)
	}
	defer rows.Close()

	var result []*models.File
	for rows.Next() {
		item, err := scanSQLiteFile(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, userID int64, id string) (*models.File, error) {
	query := `
		SELECT id, user_id, filename, storage_key, content_type, size, created_at FROM files
		WHERE id = ? AND user_id = ?
	`
	item, err := scanSQLiteFile(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to select file: %w", err)
	}
	return item, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSQLiteFile(s scanner) (*models.File, error) {
	var (
		item      models.File
		createdAt int64
	)
	if err := s.Scan(&item.ID, &item.UserID, &item.Filename, &item.StorageKey, &item.ContentType, &item.Size, &createdAt); err != nil {
		return nil, err
	}
	item.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &item, nil
}
