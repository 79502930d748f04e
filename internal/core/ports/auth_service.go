package ports

import (
	"context"
	"time"

	"github.com/secureapp/identity-service/internal/core/domain"
)

// LoginResult is returned on successful authentication. Roles preserves the
// store's assignment order for display; authorization treats it as a set.
type LoginResult struct {
	Token      string
	Username   string
	Roles      []string
	Expiration time.Time
}

// RegisterInput carries already-sanitized identity fields plus the plaintext
// password, which the service hashes before it touches any store.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type AuthService interface {
	// Login verifies credentials and mints a token. Any credential failure
	// is domain.ErrInvalidCredentials regardless of cause.
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
}
