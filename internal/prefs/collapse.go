package prefs

import (
	"log/slog"
	"sync"

	"github.com/nikbrunner/termhome/internal/kv"
)

// CollapseKey returns the storage key for a section's collapse record.
func CollapseKey(sectionID string) string {
	return "section-" + sectionID
}

type collapseRecord struct {
	Collapsed *bool `json:"collapsed"`
}

// CollapseStore persists the collapsed flag of each section.
type CollapseStore struct {
	store kv.Store
	log   *slog.Logger

	mu   sync.Mutex
	read map[string]bool // sections whose stored state has been read
}

// NewCollapseStore creates a CollapseStore over store.
func NewCollapseStore(store kv.Store, log *slog.Logger) *CollapseStore {
	return &CollapseStore{
		store: store,
		log:   log,
		read:  make(map[string]bool),
	}
}

// Read returns the stored collapsed flag, or defaultValue when nothing usable
// is stored. It also unlocks Write for the section.
func (c *CollapseStore) Read(sectionID string, defaultValue bool) bool {
	c.mu.Lock()
	c.read[sectionID] = true
	c.mu.Unlock()

	rec, ok := c.value(sectionID).Load()
	if !ok || rec.Collapsed == nil {
		return defaultValue
	}
	return *rec.Collapsed
}

// Write persists the collapsed flag. Callers must Read the section first:
// a Write for a section this CollapseStore has not read yet is dropped, so
// a caller's default cannot clobber a stored value. Toggle does both.
func (c *CollapseStore) Write(sectionID string, collapsed bool) {
	c.mu.Lock()
	ready := c.read[sectionID]
	c.mu.Unlock()
	if !ready {
		c.log.Debug("dropping collapse write before first read", "section", sectionID)
		return
	}

	_ = c.value(sectionID).Save(collapseRecord{Collapsed: &collapsed})
}

// Toggle flips the section's flag and returns the new value.
func (c *CollapseStore) Toggle(sectionID string, defaultValue bool) bool {
	next := !c.Read(sectionID, defaultValue)
	c.Write(sectionID, next)
	return next
}

func (c *CollapseStore) value(sectionID string) Value[collapseRecord] {
	return NewValue[collapseRecord](c.store, CollapseKey(sectionID), c.log)
}
