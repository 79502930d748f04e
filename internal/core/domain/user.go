package domain

import "time"

// User models an identity known to the system. PasswordHash is opaque to
// every layer except the auth service and is never serialized or logged.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}
