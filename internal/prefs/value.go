// Package prefs layers typed, forgiving persistence over a kv.Store.
//
// Every preference follows the same rules: a missing, unreadable or malformed
// value reads as "not set" and the caller falls back to a default; a failed
// write is logged and otherwise ignored, leaving in-memory state in charge.
package prefs

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/nikbrunner/termhome/internal/kv"
)

// Value is a JSON-encoded T stored under a fixed key.
type Value[T any] struct {
	store kv.Store
	key   string
	log   *slog.Logger
}

// NewValue binds key in store to type T.
func NewValue[T any](store kv.Store, key string, log *slog.Logger) Value[T] {
	return Value[T]{store: store, key: key, log: log}
}

// Key returns the storage key.
func (v Value[T]) Key() string {
	return v.key
}

// Load returns the stored value. ok is false when the key is absent, the
// stored value cannot be read or decoded, or it is a bare JSON null.
func (v Value[T]) Load() (val T, ok bool) {
	raw, found, err := v.store.Get(v.key)
	if err != nil {
		v.log.Warn("read failed", "key", v.key, "error", err)
		return val, false
	}
	if !found {
		return val, false
	}
	if strings.TrimSpace(raw) == "null" {
		v.log.Warn("discarding null value", "key", v.key)
		return val, false
	}
	if err := json.Unmarshal([]byte(raw), &val); err != nil {
		v.log.Warn("discarding malformed value", "key", v.key, "error", err)
		var zero T
		return zero, false
	}
	return val, true
}

// Save encodes and stores val. The error is logged before it is returned,
// so callers that cannot do anything about it may drop it.
func (v Value[T]) Save(val T) error {
	data, err := json.Marshal(val)
	if err != nil {
		v.log.Error("encode failed", "key", v.key, "error", err)
		return err
	}
	if err := v.store.Set(v.key, string(data)); err != nil {
		v.log.Warn("write failed", "key", v.key, "error", err)
		return err
	}
	return nil
}

// Delete removes the key. Failures are logged and returned.
func (v Value[T]) Delete() error {
	if err := v.store.Delete(v.key); err != nil {
		v.log.Warn("delete failed", "key", v.key, "error", err)
		return err
	}
	return nil
}
