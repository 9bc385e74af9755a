package prefs_test

import (
	"testing"

	"github.com/nikbrunner/termhome/internal/kv"
	"github.com/nikbrunner/termhome/internal/logging"
	"github.com/nikbrunner/termhome/internal/prefs"
	"gotest.tools/v3/assert"
)

func TestCollapseStore_DefaultOnlyBeforeSave(t *testing.T) {
	store := kv.NewMemoryStore()
	c := prefs.NewCollapseStore(store, logging.Discard())

	assert.Equal(t, c.Read("x", true), true)
	assert.Equal(t, c.Read("x", false), false)

	c.Write("x", false)

	assert.Equal(t, c.Read("x", true), false)
	assert.Equal(t, c.Read("x", false), false)

	raw, ok, _ := store.Get("section-x")
	assert.Equal(t, ok, true)
	assert.Equal(t, raw, `{"collapsed":false}`)
}

func TestCollapseStore_WriteBeforeReadIsDropped(t *testing.T) {
	store := kv.NewMemoryStore()
	assert.NilError(t, store.Set("section-xkcd", `{"collapsed":true}`))

	c := prefs.NewCollapseStore(store, logging.Discard())
	c.Write("xkcd", false)

	raw, _, _ := store.Get("section-xkcd")
	assert.Equal(t, raw, `{"collapsed":true}`)
	assert.Equal(t, c.Read("xkcd", false), true)

	// Once read, writes go through.
	c.Write("xkcd", false)
	raw, _, _ = store.Get("section-xkcd")
	assert.Equal(t, raw, `{"collapsed":false}`)
}

func TestCollapseStore_StoredValueSurvivesNewStore(t *testing.T) {
	store := kv.NewMemoryStore()

	first := prefs.NewCollapseStore(store, logging.Discard())
	assert.Equal(t, first.Toggle("latest-logs", false), true)

	second := prefs.NewCollapseStore(store, logging.Discard())
	assert.Equal(t, second.Read("latest-logs", false), true)
}

func TestCollapseStore_UnusableRecords(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"malformed json", "{collapsed:"},
		{"missing field", `{}`},
		{"null field", `{"collapsed":null}`},
		{"wrong type", `{"collapsed":"yes"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := kv.NewMemoryStore()
			assert.NilError(t, store.Set("section-x", tt.raw))

			c := prefs.NewCollapseStore(store, logging.Discard())
			assert.Equal(t, c.Read("x", true), true)
			assert.Equal(t, c.Read("x", false), false)
		})
	}
}

func TestCollapseStore_WriteFailureIsNotFatal(t *testing.T) {
	store := newFlakyStore()
	c := prefs.NewCollapseStore(store, logging.Discard())

	c.Read("x", false)
	store.failWrites = true
	c.Write("x", true)

	assert.Equal(t, store.writes, 1)
	assert.Equal(t, c.Read("x", false), false)
}
