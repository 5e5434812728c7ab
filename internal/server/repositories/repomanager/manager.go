// Package repomanager owns the storage connection and vends the repositories
// bound to it. One manager exists per storage driver: SQL (PostgreSQL via pgx
// or SQLite), MongoDB and process memory.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/taskflow/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/taskflow/internal/server/repositories/users"
)

// RepositoryManager is the storage backend seen by the application.
//
// RunMigrations brings the backend schema (tables or indexes) up to date and
// must succeed before serving. Ping reports reachability for health checks.
type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Users() users.Repository
	Tasks() tasks.Repository
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
