// Package tasks stores task records. Every write is scoped to the owning
// user, and updates are guarded by the record version.
package tasks

import (
	"context"

	"github.com/dmitrijs2005/taskflow/internal/server/models"
)

// Repository persists tasks.
//
// GetByID returns common.ErrorNotFound for an unknown id regardless of owner;
// ownership decisions are left to the caller. Update writes only when id,
// owner and Version all match, returning common.ErrVersionConflict otherwise,
// and yields the task with its bumped Version. Delete returns
// common.ErrorNotFound when no row with that id and owner exists.
type Repository interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	GetByID(ctx context.Context, id string) (*models.Task, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Task, error)
	Update(ctx context.Context, task *models.Task) (*models.Task, error)
	Delete(ctx context.Context, id, ownerID string) error
}
