package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/taskflow/internal/client/client"
	"github.com/dmitrijs2005/taskflow/internal/client/models"
	"github.com/dmitrijs2005/taskflow/internal/client/repositories/session"
)

const StatusCompleted = "completed"

var ErrNothingToUpdate = errors.New("nothing to update")

// TaskService runs task operations with the saved session's token.
type TaskService interface {
	List(ctx context.Context) ([]models.Task, error)
	Add(ctx context.Context, in models.TaskInput) (*models.Task, error)
	Update(ctx context.Context, id string, in models.TaskInput) (*models.Task, error)
	Done(ctx context.Context, id string) (*models.Task, error)
	Delete(ctx context.Context, id string) error
}

type taskService struct {
	client   client.Client
	sessions session.Repository
}

func NewTaskService(c client.Client, s session.Repository) TaskService {
	return &taskService{client: c, sessions: s}
}

func (t *taskService) List(ctx context.Context) ([]models.Task, error) {
	token, err := currentToken(t.sessions)
	if err != nil {
		return nil, err
	}
	list, err := t.client.ListTasks(ctx, token)
	return list, expireSession(t.sessions, err)
}

func (t *taskService) Add(ctx context.Context, in models.TaskInput) (*models.Task, error) {
	token, err := currentToken(t.sessions)
	if err != nil {
		return nil, err
	}
	task, err := t.client.CreateTask(ctx, token, in)
	return task, expireSession(t.sessions, err)
}

func (t *taskService) Update(ctx context.Context, id string, in models.TaskInput) (*models.Task, error) {
	if in.Title == nil && in.Description == nil && in.Status == nil {
		return nil, ErrNothingToUpdate
	}
	token, err := currentToken(t.sessions)
	if err != nil {
		return nil, err
	}
	task, err := t.client.UpdateTask(ctx, token, id, in)
	return task, expireSession(t.sessions, err)
}

func (t *taskService) Done(ctx context.Context, id string) (*models.Task, error) {
	status := StatusCompleted
	return t.Update(ctx, id, models.TaskInput{Status: &status})
}

func (t *taskService) Delete(ctx context.Context, id string) error {
	token, err := currentToken(t.sessions)
	if err != nil {
		return err
	}
	return expireSession(t.sessions, t.client.DeleteTask(ctx, token, id))
}
