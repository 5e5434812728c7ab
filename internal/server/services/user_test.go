package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/taskflow/internal/common"
	"github.com/dmitrijs2005/taskflow/internal/server/auth"
	"github.com/dmitrijs2005/taskflow/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newMemoryUserService(t *testing.T) *UserService {
	t.Helper()
	return NewUserService(repomanager.NewInMemoryRepositoryManager(), auth.NewBcryptHasher(bcrypt.MinCost))
}

func TestRegister_StoresNormalisedUserWithBcryptHash(t *testing.T) {
	s := newMemoryUserService(t)

	u, err := s.Register(context.Background(), "  Alice@Example.COM ", "pw123456", " alice ")
	require.NoError(t, err)

	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, "alice", u.DisplayName)
	assert.NotEqual(t, "pw123456", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("pw123456")))
	assert.False(t, u.CreatedAt.IsZero())
}

func TestRegister_DuplicateEmail(t *testing.T) {
	s := newMemoryUserService(t)
	ctx := context.Background()

	_, err := s.Register(ctx, "u1@example.com", "pw123456", "u1")
	require.NoError(t, err)

	// Same address, different case and padding.
	_, err = s.Register(ctx, " U1@example.com", "another1", "other")
	require.ErrorIs(t, err, common.ErrDuplicateEmail)
}

func TestRegister_DuplicateLeavesStoredUserUntouched(t *testing.T) {
	s := newMemoryUserService(t)
	ctx := context.Background()

	orig, err := s.Register(ctx, "u1@example.com", "pw123456", "first")
	require.NoError(t, err)

	_, err = s.Register(ctx, "u1@example.com", "different9", "second")
	require.ErrorIs(t, err, common.ErrDuplicateEmail)

	u, err := s.Verify(ctx, "u1@example.com", "pw123456")
	require.NoError(t, err)
	assert.Equal(t, orig.ID, u.ID)
	assert.Equal(t, "first", u.DisplayName)
	assert.True(t, u.CreatedAt.Equal(orig.CreatedAt))

	_, err = s.Verify(ctx, "u1@example.com", "different9")
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestRegister_InsertRaceMapsToDuplicate(t *testing.T) {
	repo := &fakeUsersRepo{getErr: common.ErrorNotFound, createErr: common.ErrorAlreadyExists}
	s := NewUserService(&fakeManager{users: repo}, &countingHasher{})

	_, err := s.Register(context.Background(), "a@example.com", "pw123456", "")
	require.ErrorIs(t, err, common.ErrDuplicateEmail)
}

func TestRegister_Validation(t *testing.T) {
	s := newMemoryUserService(t)

	tests := []struct {
		name     string
		email    string
		password string
		display  string
		field    string
	}{
		{"empty email", "   ", "pw123456", "", "email"},
		{"long email", strings.Repeat("a", 250) + "@x.io", "pw123456", "", "email"},
		{"empty password", "a@example.com", "", "", "password"},
		{"short password", "a@example.com", "12345", "", "password"},
		{"long password", "a@example.com", strings.Repeat("p", 73), "", "password"},
		{"long username", "a@example.com", "pw123456", strings.Repeat("n", 51), "username"},
		{"nul in username", "a@example.com", "pw123456", "a\x00", "username"},
		{"nul in email", "a\x00@example.com", "pw123456", "", "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Register(context.Background(), tt.email, tt.password, tt.display)
			require.ErrorIs(t, err, common.ErrValidation)

			var ve *common.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Contains(t, ve.Fields, tt.field)
		})
	}
}

func TestRegister_StoreErrors(t *testing.T) {
	repo := &fakeUsersRepo{getErr: errStore}
	s := NewUserService(&fakeManager{users: repo}, &countingHasher{})
	_, err := s.Register(context.Background(), "a@example.com", "pw123456", "")
	require.ErrorIs(t, err, errStore)

	repo = &fakeUsersRepo{getErr: common.ErrorNotFound, createErr: errStore}
	s = NewUserService(&fakeManager{users: repo}, &countingHasher{})
	_, err = s.Register(context.Background(), "a@example.com", "pw123456", "")
	require.ErrorIs(t, err, errStore)

	repo = &fakeUsersRepo{getErr: common.ErrorNotFound}
	s = NewUserService(&fakeManager{users: repo}, &countingHasher{hashErr: errors.New("too long")})
	_, err = s.Register(context.Background(), "a@example.com", "pw123456", "")
	require.ErrorContains(t, err, "error hashing password")
	assert.Nil(t, repo.created)
}

func TestVerify_Success(t *testing.T) {
	s := newMemoryUserService(t)
	ctx := context.Background()

	reg, err := s.Register(ctx, "u1@example.com", "pw123456", "u1")
	require.NoError(t, err)

	u, err := s.Verify(ctx, "U1@EXAMPLE.com ", "pw123456")
	require.NoError(t, err)
	assert.Equal(t, reg.ID, u.ID)
}

func TestVerify_UnknownEmailAndWrongPasswordAreIndistinguishable(t *testing.T) {
	hasher := &countingHasher{}
	m := repomanager.NewInMemoryRepositoryManager()
	s := NewUserService(m, hasher)
	ctx := context.Background()

	_, err := s.Register(ctx, "u1@example.com", "pw123456", "u1")
	require.NoError(t, err)

	_, errWrong := s.Verify(ctx, "u1@example.com", "wrong-password")
	_, errUnknown := s.Verify(ctx, "ghost@example.com", "pw123456")

	require.ErrorIs(t, errWrong, common.ErrInvalidCredentials)
	require.ErrorIs(t, errUnknown, common.ErrInvalidCredentials)
	assert.Equal(t, errWrong.Error(), errUnknown.Error())
	// Both paths performed exactly one comparison.
	assert.Equal(t, 2, hasher.compares)
}

func TestVerify_DummyHashIsPreparedUpFront(t *testing.T) {
	hasher := &countingHasher{}
	s := NewUserService(repomanager.NewInMemoryRepositoryManager(), hasher)
	require.Equal(t, 1, hasher.hashes)

	for range 3 {
		_, err := s.Verify(context.Background(), "ghost@example.com", "pw123456")
		require.ErrorIs(t, err, common.ErrInvalidCredentials)
	}

	assert.Equal(t, 1, hasher.hashes, "unknown-email logins only compare")
	assert.Equal(t, 3, hasher.compares)
}

func TestVerify_StoreError(t *testing.T) {
	repo := &fakeUsersRepo{getErr: errStore}
	s := NewUserService(&fakeManager{users: repo}, &countingHasher{})

	_, err := s.Verify(context.Background(), "a@example.com", "pw123456")
	require.ErrorIs(t, err, errStore)
	assert.NotErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestGet(t *testing.T) {
	s := newMemoryUserService(t)
	ctx := context.Background()

	reg, err := s.Register(ctx, "u1@example.com", "pw123456", "u1")
	require.NoError(t, err)

	u, err := s.Get(ctx, reg.ID)
	require.NoError(t, err)
	assert.Equal(t, "u1@example.com", u.Email)

	_, err = s.Get(ctx, "not-a-uuid")
	require.ErrorIs(t, err, common.ErrorNotFound)

	_, err = s.Get(ctx, "6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	require.ErrorIs(t, err, common.ErrorNotFound)

	repo := &fakeUsersRepo{getErr: errStore}
	_, err = NewUserService(&fakeManager{users: repo}, &countingHasher{}).Get(ctx, reg.ID)
	require.ErrorIs(t, err, errStore)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "bob@example.com", NormalizeEmail("\t Bob@Example.Com \n"))
	assert.Equal(t, "", NormalizeEmail("   "))
}
