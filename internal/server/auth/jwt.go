// Package auth implements password hashing and signed identity tokens.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskflow/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenValidity is how long an issued token stays valid.
const DefaultTokenValidity = time.Hour

var ErrMissingSigningSecret = errors.New("token signing secret is empty")

// Claims are the registered JWT claims we issue; Subject carries the user id.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenErrorReason is an internal classification of a rejected token.
// It is meant for logs only and must not reach clients.
type TokenErrorReason string

const (
	ReasonMalformed TokenErrorReason = "malformed"
	ReasonSignature TokenErrorReason = "signature"
	ReasonExpired   TokenErrorReason = "expired"
	ReasonClaims    TokenErrorReason = "claims"
)

// TokenError is returned by TokenService.Verify for every rejected token.
// It always matches common.ErrInvalidToken; expired tokens also match
// common.ErrTokenExpired.
type TokenError struct {
	Reason TokenErrorReason
	Err    error
}

func (e *TokenError) Error() string {
	return "invalid token: " + string(e.Reason)
}

func (e *TokenError) Unwrap() error {
	return e.Err
}

func (e *TokenError) Is(target error) bool {
	switch target {
	case common.ErrInvalidToken:
		return true
	case common.ErrTokenExpired:
		return e.Reason == ReasonExpired
	}
	return false
}

// TokenService issues and verifies HS256 tokens with a server-held secret.
type TokenService struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

type TokenOption func(*TokenService)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) { s.now = now }
}

// NewTokenService refuses an empty secret. A non-positive validity falls
// back to DefaultTokenValidity.
func NewTokenService(secret string, validity time.Duration, opts ...TokenOption) (*TokenService, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrMissingSigningSecret
	}
	if validity <= 0 {
		validity = DefaultTokenValidity
	}

	s := &TokenService{secret: []byte(secret), validity: validity, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Issue signs a token for subjectID that expires validity after now.
func (s *TokenService) Issue(subjectID string) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.validity)),
		},
	})

	return token.SignedString(s.secret)
}

// Verify checks the signature, then the time claims, and returns the subject.
func (s *TokenService) Verify(tokenString string) (string, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithStrictDecoding(),
	)
	if err != nil {
		return "", &TokenError{Reason: classify(err), Err: err}
	}

	if claims.Subject == "" {
		return "", &TokenError{Reason: ReasonClaims, Err: errors.New("empty subject")}
	}

	return claims.Subject, nil
}

func classify(err error) TokenErrorReason {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ReasonMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return ReasonSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return ReasonExpired
	default:
		return ReasonClaims
	}
}
