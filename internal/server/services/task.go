package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskflow/internal/common"
	"github.com/dmitrijs2005/taskflow/internal/server/models"
	"github.com/dmitrijs2005/taskflow/internal/server/repositories/repomanager"
	tasksrepo "github.com/dmitrijs2005/taskflow/internal/server/repositories/tasks"
	"github.com/google/uuid"
)

// TaskInput carries the client fields of a new task. Nil pointers mean the
// field was omitted.
type TaskInput struct {
	Title       string
	Description *string
	Status      *string
}

// TaskPatch carries a partial update. Only non-nil fields are applied.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *string
}

func (p TaskPatch) empty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil
}

// TaskService is the access controller in front of the task store. Every
// operation is scoped to ownerID, the authenticated caller; lookups by id
// report a missing task before an ownership mismatch.
type TaskService struct {
	tasks tasksrepo.Repository
	now   func() time.Time
	newID func() string
}

// NewTaskService constructs a TaskService over the manager's tasks repository.
func NewTaskService(m repomanager.RepositoryManager) *TaskService {
	return &TaskService{
		tasks: m.Tasks(),
		now:   func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		newID: uuid.NewString,
	}
}

// List returns the owner's tasks, newest first. The result is never nil.
func (s *TaskService) List(ctx context.Context, ownerID string) ([]*models.Task, error) {
	list, err := s.tasks.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}
	if list == nil {
		list = []*models.Task{}
	}
	return list, nil
}

// Create stores a new task owned by ownerID. Status defaults to pending.
func (s *TaskService) Create(ctx context.Context, ownerID string, in TaskInput) (*models.Task, error) {
	t := &models.Task{
		ID:        s.newID(),
		OwnerID:   ownerID,
		Title:     strings.TrimSpace(in.Title),
		Status:    models.TaskStatusPending,
		Version:   1,
		CreatedAt: s.now(),
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Status != nil {
		t.Status = *in.Status
	}

	if err := validateTask(t); err != nil {
		return nil, err
	}

	created, err := s.tasks.Create(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("error creating task: %w", err)
	}
	return created, nil
}

// Get returns one task owned by ownerID.
func (s *TaskService) Get(ctx context.Context, taskID, ownerID string) (*models.Task, error) {
	return s.lookupOwned(ctx, taskID, ownerID)
}

// Update applies patch to the task. The write is conditioned on the version
// read here, so a concurrent update in between yields common.ErrVersionConflict.
func (s *TaskService) Update(ctx context.Context, taskID, ownerID string, patch TaskPatch) (*models.Task, error) {
	cur, err := s.lookupOwned(ctx, taskID, ownerID)
	if err != nil {
		return nil, err
	}
	if patch.empty() {
		return cur, nil
	}

	next := *cur
	if patch.Title != nil {
		next.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		next.Description = *patch.Description
	}
	if patch.Status != nil {
		next.Status = *patch.Status
	}

	if err := validateTask(&next); err != nil {
		return nil, err
	}

	updated, err := s.tasks.Update(ctx, &next)
	if err != nil {
		if errors.Is(err, common.ErrVersionConflict) {
			return nil, common.ErrVersionConflict
		}
		return nil, fmt.Errorf("error updating task: %w", err)
	}
	return updated, nil
}

// Delete removes the task.
func (s *TaskService) Delete(ctx context.Context, taskID, ownerID string) error {
	if _, err := s.lookupOwned(ctx, taskID, ownerID); err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, taskID, ownerID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error deleting task: %w", err)
	}
	return nil
}

// lookupOwned loads the task and checks it belongs to ownerID. A missing
// task is reported as common.ErrorNotFound before ownership is considered.
func (s *TaskService) lookupOwned(ctx context.Context, taskID, ownerID string) (*models.Task, error) {
	if uuid.Validate(taskID) != nil {
		return nil, common.ErrorNotFound
	}

	t, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error loading task: %w", err)
	}

	if t.OwnerID != ownerID {
		return nil, common.ErrForbidden
	}
	return t, nil
}

func validateTask(t *models.Task) error {
	v := newValidator()
	v.checkTitle(t.Title)
	v.checkDescription(t.Description)
	v.checkStatus(t.Status)
	return v.err()
}
