// Package server wires the TaskFlow application: storage, schema bootstrap,
// token and password services, tracing and the REST API, and runs it until
// the process is signalled to stop.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/taskflow/internal/logging"
	"github.com/dmitrijs2005/taskflow/internal/otelx"
	"github.com/dmitrijs2005/taskflow/internal/server/auth"
	"github.com/dmitrijs2005/taskflow/internal/server/config"
	"github.com/dmitrijs2005/taskflow/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/taskflow/internal/server/rest"
	"github.com/dmitrijs2005/taskflow/internal/server/services"
)

// Version is set at build time with -ldflags "-X ...server.Version=...".
var Version = "dev"

var (
	openStorage = repomanager.Open
	setupOtel   = otelx.Setup
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	storage  repomanager.RepositoryManager
	server   *rest.Server
	shutdown otelx.ShutdownFunc
}

// NewApp opens storage, applies the bundled schema and assembles the HTTP
// server. Any failure here must stop the process before it listens.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel).With("service", c.ServiceName)
	return newApp(ctx, c, logger)
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	tokens, err := auth.NewTokenService(c.SecretKey, c.AccessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("token service init error: %w", err)
	}

	shutdown, err := setupOtel(ctx, c.OTLPEndpoint, c.ServiceName, Version)
	if err != nil {
		return nil, fmt.Errorf("tracing init error: %w", err)
	}

	m, err := openStorage(ctx, c)
	if err != nil {
		_ = shutdown(ctx)
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	if err := m.RunMigrations(ctx); err != nil {
		_ = m.Close(ctx)
		_ = shutdown(ctx)
		return nil, err
	}

	users := services.NewUserService(m, auth.NewBcryptHasher(c.BcryptCost))
	tasks := services.NewTaskService(m)

	s := rest.NewServer(c, logger, users, tasks, tokens, m, rest.WithVersion(Version))

	logger.Info(ctx, "application initialized",
		"driver", c.StorageDriver,
		"environment", c.Environment,
		"version", Version,
	)

	return &App{config: c, logger: logger, storage: m, server: s, shutdown: shutdown}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) error {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, "http server error", "error", err)
		cancelFunc()
		return err
	}
	return nil
}

// Run serves until ctx is cancelled or SIGINT/SIGTERM arrives, then closes
// storage and flushes traces.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var (
		wg     sync.WaitGroup
		runErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		runErr = app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.logger.Info(ctx, "Stopping app...")

	closeCtx, cancel := context.WithTimeout(context.Background(), app.config.GracePeriod())
	defer cancel()

	if err := app.storage.Close(closeCtx); err != nil {
		app.logger.Error(closeCtx, "storage close error", "error", err)
	}
	if err := app.shutdown(closeCtx); err != nil {
		app.logger.Error(closeCtx, "tracing shutdown error", "error", err)
	}

	return runErr
}
