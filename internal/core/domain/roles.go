package domain

// Well-known role names. Roles beyond these can be created lazily on first
// assignment, but the API surface only accepts names from this set.
const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// WellKnownRoles is the fixed set ensured to exist at startup.
var WellKnownRoles = []string{RoleAdmin, RoleUser}

// IsKnownRole reports whether name is one of the well-known roles.
func IsKnownRole(name string) bool {
	for _, r := range WellKnownRoles {
		if r == name {
			return true
		}
	}
	return false
}
