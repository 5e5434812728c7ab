package services

import (
	"context"

	"github.com/dmitrijs2005/taskflow/internal/client/models"
	"github.com/dmitrijs2005/taskflow/internal/client/repositories/session"
)

type memSession struct {
	token   string
	cleared int
}

func (m *memSession) Load() (string, error) {
	if m.token == "" {
		return "", session.ErrNoSession
	}
	return m.token, nil
}

func (m *memSession) Save(token string) error { m.token = token; return nil }
func (m *memSession) Clear() error            { m.token = ""; m.cleared++; return nil }

type fakeClient struct {
	// inputs captured
	lastToken    string
	lastID       string
	lastInput    models.TaskInput
	lastEmail    string
	lastPassword string
	lastUsername string

	// outputs preset
	token   string
	user    *models.User
	tasks   []models.Task
	task    *models.Task
	err     error
	pingErr error
}

func (f *fakeClient) Register(_ context.Context, username, email, password string) (string, error) {
	f.lastUsername, f.lastEmail, f.lastPassword = username, email, password
	return f.token, f.err
}

func (f *fakeClient) Login(_ context.Context, email, password string) (string, error) {
	f.lastEmail, f.lastPassword = email, password
	return f.token, f.err
}

func (f *fakeClient) Me(_ context.Context, token string) (*models.User, error) {
	f.lastToken = token
	return f.user, f.err
}

func (f *fakeClient) Ping(context.Context) error { return f.pingErr }

func (f *fakeClient) ListTasks(_ context.Context, token string) ([]models.Task, error) {
	f.lastToken = token
	return f.tasks, f.err
}

func (f *fakeClient) CreateTask(_ context.Context, token string, in models.TaskInput) (*models.Task, error) {
	f.lastToken, f.lastInput = token, in
	return f.task, f.err
}

func (f *fakeClient) UpdateTask(_ context.Context, token, id string, in models.TaskInput) (*models.Task, error) {
	f.lastToken, f.lastID, f.lastInput = token, id, in
	return f.task, f.err
}

func (f *fakeClient) DeleteTask(_ context.Context, token, id string) error {
	f.lastToken, f.lastID = token, id
	return f.err
}
