package db

import (
	"context"
	"time"
)

// Store is the database facade used by the service.
type Store interface {
	Pinger
	HashReader
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HashReader provides read-only hash operations.
type HashReader interface {
	HGet(ctx context.Context, key, field string) (string, error)
	HGetAll(ctx context.Context, key string) (map[string]string, error)
}
