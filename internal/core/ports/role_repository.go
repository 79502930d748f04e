package ports

import "context"

// RoleRepository persists the role set and the user↔role relation.
// Binding uniqueness is the store's job: concurrent AddBinding calls for the
// same pair must both report success with a single binding as the end state.
type RoleRepository interface {
	RoleExists(ctx context.Context, name string) (bool, error)
	CreateRole(ctx context.Context, name string) error
	HasBinding(ctx context.Context, userID, role string) (bool, error)
	AddBinding(ctx context.Context, userID, role string) error
	RemoveBinding(ctx context.Context, userID, role string) error
	// ListRoles returns role names in assignment order. Unknown users yield
	// an empty slice, not an error.
	ListRoles(ctx context.Context, userID string) ([]string, error)
}
