// Package files stores metadata of uploaded documents. The content itself
// lives in a blob store; see package storage.
package files

import (
	"context"

	"github.com/dmitrijs2005/docusage/internal/server/models"
)

type Repository interface {
	// Save inserts file, or replaces the row with the same storage key.
	// ID and CreatedAt are filled in from the stored row.
	Save(ctx context.Context, file *models.File) (*models.File, error)
	// ListByUser returns the user's files, newest first.
	ListByUser(ctx context.Context, userID int64) ([]*models.File, error)
	// GetByID returns the file if it belongs to userID, common.ErrorNotFound otherwise.
	GetByID(ctx context.Context, userID int64, id string) (*models.File, error)
}
