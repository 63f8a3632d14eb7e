package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/docusage/internal/common"
	"github.com/dmitrijs2005/docusage/internal/dbx"
	"github.com/dmitrijs2005/docusage/internal/server/models"
)

// PostgresRepository implements file metadata storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Save upserts by storage_key. A re-upload keeps the original id and
// refreshes size, content type and timestamp.
func (r *PostgresRepository) Save(ctx context.Context, file *models.File) (*models.File, error) {
	query := `
		INSERT INTO files (id, user_id, filename, storage_key, content_type, size)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (storage_key)
		DO UPDATE SET
			content_type = EXCLUDED.content_type,
			size = EXCLUDED.size,
			created_at = now()
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		file.ID, file.UserID, file.Filename, file.StorageKey, file.ContentType, file.Size).
		Scan(&file.ID, &file.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return file, nil
}

// ListByUser returns all files of userID ordered by created_at descending.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*models.File, error) {
	query := `
		SELECT id, user_id, filename, storage_key, content_type, size, created_at FROM files
		WHERE user_id = $1
		ORDER BY created_at DESC, filename
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select files: %w", err)
	}
	defer rows.Close()

	var result []*models.File
	for rows.Next() {
		var item models.File
		if err := rows.Scan(&item.ID, &item.UserID, &item.Filename, &item.StorageKey, &item.ContentType, &item.Size, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID returns a single file owned by userID.
func (r *PostgresRepository) GetByID(ctx context.Context, userID int64, id string) (*models.File, error) {
	query := `
		SELECT id, user_id, filename, storage_key, content_type, size, created_at FROM files
		WHERE id = $1 AND user_id = $2
	`
	result := &models.File{}
	err := r.db.QueryRowContext(ctx, query, id, userID).
		Scan(&result.ID, &result.UserID, &result.Filename, &result.StorageKey, &result.ContentType, &result.Size, &result.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to select file: %w", err)
	}
	return result, nil
}
