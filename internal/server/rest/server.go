// Package rest exposes the TaskFlow HTTP API: registration and login, and
// ownership-scoped task CRUD behind a bearer-token gate.
package rest

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/taskflow/internal/logging"
	"github.com/dmitrijs2005/taskflow/internal/server/config"
	"github.com/dmitrijs2005/taskflow/internal/server/models"
	"github.com/dmitrijs2005/taskflow/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/dmitrijs2005/taskflow/internal/server/rest"

// Users is the account service used by the auth handlers.
type Users interface {
	Register(ctx context.Context, email, password, displayName string) (*models.User, error)
	Verify(ctx context.Context, email, password string) (*models.User, error)
	Get(ctx context.Context, id string) (*models.User, error)
}

// Tasks is the ownership-enforcing task service.
type Tasks interface {
	List(ctx context.Context, ownerID string) ([]*models.Task, error)
	Create(ctx context.Context, ownerID string, in services.TaskInput) (*models.Task, error)
	Get(ctx context.Context, taskID, ownerID string) (*models.Task, error)
	Update(ctx context.Context, taskID, ownerID string, patch services.TaskPatch) (*models.Task, error)
	Delete(ctx context.Context, taskID, ownerID string) error
}

// Tokens issues and verifies access tokens.
type Tokens interface {
	Issue(subjectID string) (string, error)
	Verify(token string) (string, error)
}

// Pinger reports storage reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	config  *config.Config
	logger  logging.Logger
	users   Users
	tasks   Tasks
	tokens  Tokens
	storage Pinger
	tracer  trace.Tracer
	version string
}

type Option func(*Server)

// WithTracerProvider overrides the global tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Server) { s.tracer = tp.Tracer(tracerName) }
}

// WithVersion sets the build version reported by /healthz.
func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

func NewServer(c *config.Config, l logging.Logger, users Users, tasks Tasks, tokens Tokens, storage Pinger, opts ...Option) *Server {
	s := &Server{
		config:  c,
		logger:  l.With("module", "rest"),
		users:   users,
		tasks:   tasks,
		tokens:  tokens,
		storage: storage,
		tracer:  otel.GetTracerProvider().Tracer(tracerName),
		version: "dev",
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Handler builds the router. Every API route is served both at the root and
// under /api.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(s.tracing)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.config.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With", "X-Auth-Token"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	s.routes(r)
	r.Route("/api", s.routes)

	return r
}

func (s *Server) routes(r chi.Router) {
	r.Get("/healthz", s.handleHealth)

	r.Post("/auth/register", s.handleRegister)
	r.Post("/auth/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Get("/auth/me", s.handleMe)

		r.Get("/tasks", s.handleListTasks)
		r.Post("/tasks", s.handleCreateTask)
		r.Get("/tasks/{id}", s.handleGetTask)
		r.Put("/tasks/{id}", s.handleUpdateTask)
		r.Delete("/tasks/{id}", s.handleDeleteTask)
	})
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.HTTPAddr)
	if err != nil {
		return fmt.Errorf("listen error: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully,
// waiting up to the configured shutdown timeout for in-flight requests.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.GracePeriod())
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown error: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
