package repomanager

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskflow/internal/dbx"
	"github.com/dmitrijs2005/taskflow/internal/server/config"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	_ "modernc.org/sqlite"
)

const connectTimeout = 5 * time.Second

// Seams for tests.
var (
	dbOpen       = dbx.Open
	mongoConnect = func(ctx context.Context, uri string) (*mongo.Client, error) {
		return mongo.Connect(ctx, options.Client().ApplyURI(uri))
	}
)

// Open connects to the backend named by c.StorageDriver and verifies it is
// reachable. Migrations are not applied; call RunMigrations afterwards.
func Open(ctx context.Context, c *config.Config) (RepositoryManager, error) {
	switch c.StorageDriver {
	case config.DriverPostgres:
		db, err := dbOpen(ctx, "pgx", c.DatabaseDSN, dbx.PoolConfig{
			MaxOpenConns:    25,
			MaxIdleConns:    25,
			ConnMaxIdleTime: 5 * time.Minute,
			PingTimeout:     connectTimeout,
		})
		if err != nil {
			return nil, err
		}
		return NewSQLRepositoryManager(db, DialectPostgres)

	case config.DriverSQLite:
		// SQLite serialises writers; a single connection avoids SQLITE_BUSY.
		db, err := dbOpen(ctx, "sqlite", c.DatabaseDSN, dbx.PoolConfig{
			MaxOpenConns: 1,
			PingTimeout:  connectTimeout,
		})
		if err != nil {
			return nil, err
		}
		return NewSQLRepositoryManager(db, DialectSQLite)

	case config.DriverMongo:
		client, err := mongoConnect(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("mongo connect error: %w", err)
		}
		pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
			_ = client.Disconnect(ctx)
			return nil, fmt.Errorf("mongo ping error: %w", err)
		}
		return NewMongoRepositoryManager(client, c.MongoDatabase), nil

	case config.DriverMemory:
		return NewInMemoryRepositoryManager(), nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}
}
