package client

import (
	"context"

	"github.com/dmitrijs2005/taskflow/internal/client/models"
)

// Client is the TaskFlow API surface used by the CLI.
type Client interface {
	Register(ctx context.Context, username, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Me(ctx context.Context, token string) (*models.User, error)
	Ping(ctx context.Context) error

	ListTasks(ctx context.Context, token string) ([]models.Task, error)
	CreateTask(ctx context.Context, token string, in models.TaskInput) (*models.Task, error)
	UpdateTask(ctx context.Context, token, id string, in models.TaskInput) (*models.Task, error)
	DeleteTask(ctx context.Context, token, id string) error
}
