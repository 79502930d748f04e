package ports

import "context"

// RoleService manages the user↔role relation.
//
// Absence of the target user is a soft failure (false, nil); only storage
// problems surface as errors. Assign and Remove are idempotent: repeating a
// call leaves the same end state and still reports success.
type RoleService interface {
	Assign(ctx context.Context, userID, role string) (bool, error)
	Remove(ctx context.Context, userID, role string) (bool, error)
	ListRoles(ctx context.Context, userID string) ([]string, error)
	// EnsureWellKnownRoles idempotently creates the fixed role set.
	// Run once at process start.
	EnsureWellKnownRoles(ctx context.Context) error
}
