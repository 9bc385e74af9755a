// Package kv persists small string values under string keys. It plays the
// role of browser local storage for the homepage: every running termhome
// instance that opens the same backing file shares the same values, and
// instances backed by SQLite are told about each other's changes.
package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikbrunner/termhome/internal/config"
)

var ErrClosed = errors.New("kv: store is closed")

// Store is a synchronous key/value store.
// Get reports ok=false for keys that were never set or were deleted.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}

// Watcher reports keys changed by other store instances sharing the same
// backing file. Changes made through the watching instance itself are never
// reported. Watch blocks until ctx is done.
type Watcher interface {
	Watch(ctx context.Context, fn func(key string)) error
}

// Open opens the store selected by cfg.
func Open(cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return NewSQLiteStore(cfg.Path, cfg.PollInterval)
	case config.DriverJSON:
		return NewFileStore(cfg.Path), nil
	case config.DriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownDriver, cfg.Driver)
	}
}
