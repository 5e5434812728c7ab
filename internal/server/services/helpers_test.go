package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/taskflow/internal/server/models"
	"github.com/dmitrijs2005/taskflow/internal/server/repositories/repomanager"
	tasksrepo "github.com/dmitrijs2005/taskflow/internal/server/repositories/tasks"
	usersrepo "github.com/dmitrijs2005/taskflow/internal/server/repositories/users"
)

var errStore = errors.New("store unavailable")

// fakeManager serves whatever repositories a test plugs in.
type fakeManager struct {
	users usersrepo.Repository
	tasks tasksrepo.Repository
}

var _ repomanager.RepositoryManager = (*fakeManager)(nil)

func (m *fakeManager) RunMigrations(context.Context) error { return nil }
func (m *fakeManager) Users() usersrepo.Repository         { return m.users }
func (m *fakeManager) Tasks() tasksrepo.Repository         { return m.tasks }
func (m *fakeManager) Ping(context.Context) error          { return nil }
func (m *fakeManager) Close(context.Context) error         { return nil }

type fakeUsersRepo struct {
	createErr error
	getOut    *models.User
	getErr    error
	created   *models.User
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = u
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(context.Context, string) (*models.User, error) {
	return f.getOut, f.getErr
}

func (f *fakeUsersRepo) GetByID(context.Context, string) (*models.User, error) {
	return f.getOut, f.getErr
}

// countingHasher records how many hashes and comparisons ran.
type countingHasher struct {
	hashes   int
	compares int
	hashErr  error
}

func (h *countingHasher) Hash(password string) (string, error) {
	h.hashes++
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "hashed:" + password, nil
}

func (h *countingHasher) Compare(hash, password string) error {
	h.compares++
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

type fakeTasksRepo struct {
	getOut    *models.Task
	getErr    error
	listOut   []*models.Task
	listErr   error
	createErr error
	updateErr error
	deleteErr error

	updated     *models.Task
	deleteCalls int
}

func (f *fakeTasksRepo) Create(_ context.Context, t *models.Task) (*models.Task, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return t, nil
}

func (f *fakeTasksRepo) GetByID(context.Context, string) (*models.Task, error) {
	return f.getOut, f.getErr
}

func (f *fakeTasksRepo) ListByOwner(context.Context, string) ([]*models.Task, error) {
	return f.listOut, f.listErr
}

func (f *fakeTasksRepo) Update(_ context.Context, t *models.Task) (*models.Task, error) {
	f.updated = t
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	out := *t
	out.Version++
	return &out, nil
}

func (f *fakeTasksRepo) Delete(context.Context, string, string) error {
	f.deleteCalls++
	return f.deleteErr
}
