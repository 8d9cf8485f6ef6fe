// Package storage contains the backend-agnostic database contract used to
// execute generated DDL, and a kind-keyed factory that backends register with
// at init time.
package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"sqlddl/internal/ddl"
)

// Repository is an open database handle.
//
// PrimaryKey makes every Repository a ddl.Schema, so REFERENCES clauses that
// name no column resolve against the live database.
type Repository interface {
	// Exec executes a single statement.
	Exec(ctx context.Context, sql string) error
	// PrimaryKey returns the declared primary-key columns of table in key
	// order, or nil when the table has none.
	PrimaryKey(ctx context.Context, table string) ([]string, error)
	// Close releases the underlying connection.
	Close()
}

var _ ddl.Schema = Repository(nil)

// Config selects and configures a backend.
type Config struct {
	// Kind is the registered backend name, e.g. "sqlite".
	Kind string
	// DSN is passed to the backend driver unchanged.
	DSN string
}

// Factory opens a Repository for a Config.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register registers (or replaces) the factory for kind.
func Register(kind string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[kind] = f
}

// New opens a Repository using the factory registered for cfg.Kind.
func New(ctx context.Context, cfg Config) (Repository, error) {
	mu.RLock()
	f, ok := factories[cfg.Kind]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: unsupported kind %q (registered: %v)", cfg.Kind, ListKinds())
	}
	return f(ctx, cfg)
}

// ListKinds returns the registered kinds, sorted.
func ListKinds() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
