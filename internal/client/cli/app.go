package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/taskflow/internal/client/client"
	"github.com/dmitrijs2005/taskflow/internal/client/config"
	"github.com/dmitrijs2005/taskflow/internal/client/repositories/session"
	"github.com/dmitrijs2005/taskflow/internal/client/services"
)

type App struct {
	config      *config.Config
	authService services.AuthService
	taskService services.TaskService
	reader      *bufio.Reader
	out         io.Writer
	userName    string
	loggedIn    bool
}

func NewApp(c *config.Config) (*App, error) {
	apiClient, err := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	store := session.NewFileRepository(c.TokenFile)

	return &App{
		config:      c,
		authService: services.NewAuthService(apiClient, store),
		taskService: services.NewTaskService(apiClient, store),
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.loggedIn
}

func (a *App) refreshStatus(ctx context.Context) {
	u, err := a.authService.Whoami(ctx)
	if err != nil {
		a.loggedIn, a.userName = false, ""
		return
	}
	a.loggedIn, a.userName = true, u.Email
}

func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.userName)
}

// Run executes args as a single command, or starts the interactive loop
// when args is empty.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return dispatch(ctx, a, args[0], args[1:])
	}

	if err := a.authService.Ping(ctx); err != nil {
		fmt.Fprintf(a.out, "warning: %v\n", err)
	}
	a.refreshStatus(ctx)

	fmt.Fprintln(a.out, "Welcome to TaskFlow CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
	return nil
}
