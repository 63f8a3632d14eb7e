// Package users is the user directory: persisted accounts looked up by
// email or id. Missing rows are reported as common.ErrorNotFound and a
// duplicate email on Create as common.ErrorAlreadyExists.
package users

import (
	"context"

	"github.com/dmitrijs2005/docusage/internal/server/models"
)

type Repository interface {
	// Create inserts user and fills in ID and CreatedAt.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
}
