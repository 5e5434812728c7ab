package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/taskflow/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/taskflow/internal/server/repositories/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoRepositoryManager vends MongoDB repositories sharing one client.
type MongoRepositoryManager struct {
	client *mongo.Client
	users  *users.MongoRepository
	tasks  *tasks.MongoRepository
}

// NewMongoRepositoryManager binds repositories to database on client.
func NewMongoRepositoryManager(client *mongo.Client, database string) *MongoRepositoryManager {
	db := client.Database(database)
	return &MongoRepositoryManager{
		client: client,
		users:  users.NewMongoRepository(db),
		tasks:  tasks.NewMongoRepository(db),
	}
}

func (m *MongoRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *MongoRepositoryManager) Tasks() tasks.Repository {
	return m.tasks
}

// RunMigrations creates the indexes the repositories rely on, including the
// unique email index.
func (m *MongoRepositoryManager) RunMigrations(ctx context.Context) error {
	if err := m.users.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}
	if err := m.tasks.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}
	return nil
}

func (m *MongoRepositoryManager) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

func (m *MongoRepositoryManager) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
