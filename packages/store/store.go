// Package store provides the key-value persistence used by the response hook.
//
// Values are arbitrary decoded JSON values: nil, bool, float64, string,
// []any and map[string]any. Backends that persist outside the process encode
// values as JSON so they decode back to the same types.
package store

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ErrUnsupportedScheme is returned by Open for unknown connection strings.
var ErrUnsupportedScheme = errors.New("unsupported store scheme")

// Entry is a single key-value pair returned by All.
type Entry struct {
	Key   string
	Value any
}

// Store is an asynchronous key-value store shared across requests.
type Store interface {
	// Get returns the value for key and whether it was present. A present key
	// may hold a nil value.
	Get(ctx context.Context, key string) (any, bool, error)
	Set(ctx context.Context, key string, value any) error
	Remove(ctx context.Context, key string) error
	// All returns every entry sorted by key.
	All(ctx context.Context) ([]Entry, error)
	Clear(ctx context.Context) error
	Close() error
}

// Open creates a store from a connection string.
// Supported formats:
// - memory: (or empty)
// - sqlite://path/to/store.db
// - sqlite:./store.db
// - redis://:password@host:port/db
func Open(connStr string, opts ...RedisOption) (Store, error) {
	connStr = strings.TrimSpace(connStr)

	switch {
	case connStr == "", connStr == "memory", connStr == "memory:":
		return NewMemory(), nil
	case strings.HasPrefix(connStr, "sqlite://"):
		return NewSQLite(strings.TrimPrefix(connStr, "sqlite://"))
	case strings.HasPrefix(connStr, "sqlite:"):
		return NewSQLite(strings.TrimPrefix(connStr, "sqlite:"))
	}

	u, err := url.Parse(connStr)
	if err != nil {
		return nil, fmt.Errorf("invalid connection string: %w", err)
	}

	switch u.Scheme {
	case "redis":
		cfg := RedisConfig{Addr: u.Host}
		if u.Port() == "" {
			cfg.Addr = u.Host + ":6379"
		}
		if u.User != nil {
			cfg.Password, _ = u.User.Password()
		}
		if db := strings.TrimPrefix(u.Path, "/"); db != "" {
			n, err := strconv.Atoi(db)
			if err != nil {
				return nil, fmt.Errorf("invalid redis database %q: %w", db, err)
			}
			cfg.DB = n
		}
		return NewRedis(cfg, opts...), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, u.Scheme)
	}
}
