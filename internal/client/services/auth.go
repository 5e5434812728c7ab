// Package services contains application services for the TaskFlow CLI:
// account operations that manage the saved session, and task operations
// that run on behalf of it.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskflow/internal/client/client"
	"github.com/dmitrijs2005/taskflow/internal/client/models"
	"github.com/dmitrijs2005/taskflow/internal/client/repositories/session"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Register, Login: obtain a token from the server and persist it.
//   - Logout: forget the saved token. Tokens are stateless, so nothing is sent to the server.
//   - Whoami: resolve the saved token to the account.
//   - Ping: check server liveness.
type AuthService interface {
	Register(ctx context.Context, username, email string, password []byte) error
	Login(ctx context.Context, email string, password []byte) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) (*models.User, error)
	Ping(ctx context.Context) error
}

type authService struct {
	client   client.Client
	sessions session.Repository
}

func NewAuthService(c client.Client, s session.Repository) AuthService {
	return &authService{client: c, sessions: s}
}

func (a *authService) Register(ctx context.Context, username, email string, password []byte) error {
	token, err := a.client.Register(ctx, username, email, string(password))
	if err != nil {
		return err
	}
	return a.sessions.Save(token)
}

func (a *authService) Login(ctx context.Context, email string, password []byte) error {
	token, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		return err
	}
	return a.sessions.Save(token)
}

func (a *authService) Logout(context.Context) error {
	return a.sessions.Clear()
}

func (a *authService) Whoami(ctx context.Context) (*models.User, error) {
	token, err := currentToken(a.sessions)
	if err != nil {
		return nil, err
	}
	u, err := a.client.Me(ctx, token)
	return u, expireSession(a.sessions, err)
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func currentToken(s session.Repository) (string, error) {
	token, err := s.Load()
	if errors.Is(err, session.ErrNoSession) {
		return "", client.ErrNotLoggedIn
	}
	if err != nil {
		return "", err
	}
	return token, nil
}

// expireSession drops a token the server no longer accepts.
func expireSession(s session.Repository, err error) error {
	if !errors.Is(err, client.ErrUnauthorized) {
		return err
	}
	if clearErr := s.Clear(); clearErr != nil {
		return fmt.Errorf("%w: %v", err, clearErr)
	}
	return fmt.Errorf("%w: session expired, please log in again", client.ErrNotLoggedIn)
}
