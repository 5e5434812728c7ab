package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/dmitrijs2005/taskflow/internal/server/migrations"
	"github.com/dmitrijs2005/taskflow/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/taskflow/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

// goose dialect names.
const (
	DialectPostgres = "pgx"
	DialectSQLite   = "sqlite3"
)

// SQLRepositoryManager vends database/sql repository implementations over a
// single connection pool and applies the embedded goose migrations.
type SQLRepositoryManager struct {
	db      *sql.DB
	dialect string
	fsys    fs.FS
	dir     string
	users   *users.SQLRepository
	tasks   *tasks.SQLRepository
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// NewSQLRepositoryManager binds repositories to db. dialect selects the
// migration set and must be DialectPostgres or DialectSQLite.
func NewSQLRepositoryManager(db *sql.DB, dialect string) (*SQLRepositoryManager, error) {
	m := &SQLRepositoryManager{
		db:      db,
		dialect: dialect,
		users:   users.NewSQLRepository(db),
		tasks:   tasks.NewSQLRepository(db),
	}

	switch dialect {
	case DialectPostgres:
		m.fsys, m.dir = migrations.Postgres, "postgres"
	case DialectSQLite:
		m.fsys, m.dir = migrations.SQLite, "sqlite"
	default:
		return nil, fmt.Errorf("unsupported sql dialect %q", dialect)
	}

	return m, nil
}

// Users returns the users repository bound to the pool.
func (m *SQLRepositoryManager) Users() users.Repository {
	return m.users
}

// Tasks returns the tasks repository bound to the pool.
func (m *SQLRepositoryManager) Tasks() tasks.Repository {
	return m.tasks
}

// RunMigrations sets up goose with the embedded migrations of the manager's
// dialect and runs them against the pool.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(m.fsys)
	if err := goose.SetDialect(m.dialect); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}
	if err := gooseUpContext(ctx, m.db, m.dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}
	return nil
}

func (m *SQLRepositoryManager) Ping(ctx context.Context) error {
	return m.db.PingContext(ctx)
}

func (m *SQLRepositoryManager) Close(_ context.Context) error {
	return m.db.Close()
}
