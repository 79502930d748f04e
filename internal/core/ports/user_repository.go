package ports

import (
	"context"

	"github.com/secureapp/identity-service/internal/core/domain"
)

// UserRepository is the credential store gateway. Implementations are
// responsible for parameterized access and for enforcing the uniqueness of
// username and email; the core only translates their violation signal.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Create persists a new user. A uniqueness violation on username or
	// email is returned as domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// Search returns users whose username or email contains term as a
	// literal substring. The term must already be sanitized by the caller.
	Search(ctx context.Context, term string) ([]*domain.User, error)
}
