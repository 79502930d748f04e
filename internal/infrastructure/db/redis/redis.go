// Package redis wires the Redis-backed login throttle. The client is shared
// process-wide; the limiter is the only component writing to it.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

// Config holds the connection settings for the throttle store.
type Config struct {
	Addr string
	DB   int
}

// Connect opens a client and verifies the server is reachable before the
// service starts accepting logins. An unreachable throttle store is a
// startup failure.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}
