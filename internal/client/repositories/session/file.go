// Package session persists the CLI's access token between invocations.
package session

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/taskflow/internal/filex"
)

// Repository stores a single bearer token. Load returns ErrNoSession when
// nothing has been saved.
type Repository interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

var ErrNoSession = errors.New("no saved session")

// FileRepository keeps the token in a file readable only by the owner.
type FileRepository struct {
	path string
}

func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

func (r *FileRepository) Load() (string, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNoSession
	}
	if err != nil {
		return "", fmt.Errorf("read session: %w", err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNoSession
	}
	return token, nil
}

func (r *FileRepository) Save(token string) error {
	if err := filex.WriteFileAtomic(r.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func (r *FileRepository) Clear() error {
	if err := os.Remove(r.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
