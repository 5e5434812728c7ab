// Package users stores registered accounts. Implementations exist for SQL
// databases (PostgreSQL, SQLite), MongoDB and process memory.
package users

import (
	"context"

	"github.com/dmitrijs2005/taskflow/internal/server/models"
)

// Repository persists users.
//
// Create returns common.ErrorAlreadyExists when the email is taken; the Get
// methods return common.ErrorNotFound for a missing user.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}
