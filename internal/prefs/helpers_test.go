package prefs_test

import (
	"errors"

	"github.com/nikbrunner/termhome/internal/kv"
)

var errQuota = errors.New("quota exceeded")

// flakyStore wraps a MemoryStore and fails writes while failWrites is set.
type flakyStore struct {
	*kv.MemoryStore
	failWrites bool
	writes     int
}

func newFlakyStore() *flakyStore {
	return &flakyStore{MemoryStore: kv.NewMemoryStore()}
}

func (f *flakyStore) Set(key, value string) error {
	f.writes++
	if f.failWrites {
		return errQuota
	}
	return f.MemoryStore.Set(key, value)
}
