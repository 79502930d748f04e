package domain

import "errors"

// ErrInvalidCredentials is returned for any login failure regardless of
// cause, so callers cannot distinguish "unknown user" from "wrong password".
var ErrInvalidCredentials = errors.New("invalid credentials")

var ErrUserNotFound = errors.New("user not found")

// ErrUserExists signals the store's uniqueness constraint on username or email.
var ErrUserExists = errors.New("user already exists")

// ErrTooManyAttempts signals the login limiter threshold was reached.
var ErrTooManyAttempts = errors.New("too many login attempts")

// ErrRoleUnknown is returned when a role name outside the well-known set
// reaches the role endpoints.
var ErrRoleUnknown = errors.New("unknown role")
