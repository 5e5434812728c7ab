package tasks

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/dmitrijs2005/taskflow/internal/common"
	"github.com/dmitrijs2005/taskflow/internal/server/models"
)

// MemoryRepository keeps tasks in process memory. Stored values are copied
// on the way in and out so callers never share state with the store.
type MemoryRepository struct {
	mu    sync.RWMutex
	tasks map[string]models.Task
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{tasks: make(map[string]models.Task)}
}

func (r *MemoryRepository) Create(_ context.Context, task *models.Task) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[task.ID]; ok {
		return nil, common.ErrorAlreadyExists
	}
	r.tasks[task.ID] = *task
	return task, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tasks[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &t, nil
}

func (r *MemoryRepository) ListByOwner(_ context.Context, ownerID string) ([]*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Task, 0)
	for _, t := range r.tasks {
		if t.OwnerID == ownerID {
			result = append(result, &t)
		}
	}

	slices.SortFunc(result, func(a, b *models.Task) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return result, nil
}

func (r *MemoryRepository) Update(_ context.Context, task *models.Task) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.tasks[task.ID]
	if !ok || cur.OwnerID != task.OwnerID || cur.Version != task.Version {
		return nil, common.ErrVersionConflict
	}

	cur.Title = task.Title
	cur.Description = task.Description
	cur.Status = task.Status
	cur.Version++
	r.tasks[task.ID] = cur

	return &cur, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok || t.OwnerID != ownerID {
		return common.ErrorNotFound
	}
	delete(r.tasks, id)
	return nil
}
