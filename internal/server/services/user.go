// Package services contains server-side business logic. UserService handles
// registration and credential checks; TaskService enforces task ownership.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskflow/internal/common"
	"github.com/dmitrijs2005/taskflow/internal/server/auth"
	"github.com/dmitrijs2005/taskflow/internal/server/models"
	"github.com/dmitrijs2005/taskflow/internal/server/repositories/repomanager"
	usersrepo "github.com/dmitrijs2005/taskflow/internal/server/repositories/users"
	"github.com/google/uuid"
)

// dummyPassword is hashed when the service is built and compared against when
// a login names an unknown email, so both failure paths run one bcrypt
// comparison and nothing else.
const dummyPassword = "taskflow-timing-equaliser"

// UserService provides account operations:
// - Register: validate, hash and store a new user
// - Verify: check an email/password pair
// - Get: load a user by id
type UserService struct {
	users     usersrepo.Repository
	hasher    auth.PasswordHasher
	now       func() time.Time
	newID     func() string
	dummyHash string
}

// NewUserService constructs a UserService over the manager's users repository.
func NewUserService(m repomanager.RepositoryManager, hasher auth.PasswordHasher) *UserService {
	dummyHash, _ := hasher.Hash(dummyPassword)
	return &UserService{
		users:     m.Users(),
		hasher:    hasher,
		now:       func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		newID:     uuid.NewString,
		dummyHash: dummyHash,
	}
}

// NormalizeEmail trims surrounding space and lower-cases the address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user. It fails with common.ErrDuplicateEmail when the
// email is taken and with *common.ValidationError on bad input.
func (s *UserService) Register(ctx context.Context, email, password, displayName string) (*models.User, error) {
	email = NormalizeEmail(email)
	displayName = strings.TrimSpace(displayName)

	v := newValidator()
	v.checkEmail(email)
	v.checkPassword(password)
	v.checkDisplayName(displayName)
	if err := v.err(); err != nil {
		return nil, err
	}

	_, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, common.ErrDuplicateEmail
	case !errors.Is(err, common.ErrorNotFound):
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		ID:           s.newID(),
		Email:        email,
		PasswordHash: hash,
		DisplayName:  displayName,
		CreatedAt:    s.now(),
	}

	u, err := s.users.Create(ctx, user)
	if err != nil {
		// Lost an insert race on the unique email index.
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Verify returns the user identified by email when password matches.
// Unknown email and wrong password both fail with common.ErrInvalidCredentials.
func (s *UserService) Verify(ctx context.Context, email, password string) (*models.User, error) {
	email = NormalizeEmail(email)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_ = s.hasher.Compare(s.dummyHash, password)
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, common.ErrInvalidCredentials
	}
	return user, nil
}

// Get returns the user with the given id or common.ErrorNotFound.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	if uuid.Validate(id) != nil {
		return nil, common.ErrorNotFound
	}

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	return u, nil
}
