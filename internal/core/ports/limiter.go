package ports

import "context"

// LoginLimiter throttles brute-force attempts per username. Backed by Redis
// in production; failures of the limiter itself must not block logins.
type LoginLimiter interface {
	// TooManyAttempts reports whether the username is currently locked out.
	TooManyAttempts(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}
