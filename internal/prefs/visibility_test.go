package prefs_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/nikbrunner/termhome/internal/broadcast"
	"github.com/nikbrunner/termhome/internal/kv"
	"github.com/nikbrunner/termhome/internal/logging"
	"github.com/nikbrunner/termhome/internal/prefs"
	"gotest.tools/v3/assert"
)

func TestRegistry_ReadDefaultsFalse(t *testing.T) {
	r := prefs.NewRegistry(kv.NewMemoryStore(), broadcast.New(), logging.Discard())
	for _, c := range prefs.Components {
		assert.Equal(t, r.Read(c), false, string(c))
	}
}

func TestRegistry_TogglePersistsStrings(t *testing.T) {
	store := kv.NewMemoryStore()
	r := prefs.NewRegistry(store, broadcast.New(), logging.Discard())

	assert.Equal(t, r.Toggle(prefs.Radio), true)
	raw, _, _ := store.Get("minimized-radio")
	assert.Equal(t, raw, "true")

	assert.Equal(t, r.Toggle(prefs.Radio), false)
	raw, _, _ = store.Get("minimized-radio")
	assert.Equal(t, raw, "false")
}

func TestRegistry_OnlyTrueIsMinimized(t *testing.T) {
	store := kv.NewMemoryStore()
	r := prefs.NewRegistry(store, broadcast.New(), logging.Discard())

	for _, raw := range []string{"TRUE", "1", "yes", "", "false"} {
		assert.NilError(t, store.Set("minimized-stock-ticker", raw))
		assert.Equal(t, r.Read(prefs.StockTicker), false, raw)
	}
}

func TestRegistry_ToggleNotifiesSameProcessObservers(t *testing.T) {
	store := kv.NewMemoryStore()
	bus := broadcast.New()
	header := prefs.NewRegistry(store, bus, logging.Discard())
	footer := prefs.NewRegistry(store, bus, logging.Discard())

	var seen []bool
	cancel := footer.Subscribe(prefs.NewsTicker, func(minimized bool) { seen = append(seen, minimized) })

	var events []broadcast.Event
	bus.Subscribe("minimized-news-ticker", func(ev broadcast.Event) { events = append(events, ev) })

	header.Toggle(prefs.NewsTicker)
	header.Toggle(prefs.Radio)
	header.Toggle(prefs.NewsTicker)

	assert.DeepEqual(t, seen, []bool{true, false})
	assert.DeepEqual(t, events, []broadcast.Event{
		{Key: "minimized-news-ticker", Value: true},
		{Key: "minimized-news-ticker", Value: false},
	})

	cancel()
	header.Toggle(prefs.NewsTicker)
	assert.Equal(t, len(seen), 2)
}

func TestRegistry_SubscribersRereadStore(t *testing.T) {
	store := kv.NewMemoryStore()
	bus := broadcast.New()
	r := prefs.NewRegistry(store, bus, logging.Discard())

	var seen []bool
	r.Subscribe(prefs.Radio, func(minimized bool) { seen = append(seen, minimized) })

	// A stale event value must not win over the stored value.
	assert.NilError(t, store.Set("minimized-radio", "true"))
	bus.Publish(broadcast.Event{Key: "minimized-radio", Value: false})

	assert.DeepEqual(t, seen, []bool{true})
}

func TestRegistry_ToggleWriteFailureStillBroadcasts(t *testing.T) {
	store := newFlakyStore()
	store.failWrites = true
	r := prefs.NewRegistry(store, broadcast.New(), logging.Discard())

	var seen []bool
	r.Subscribe(prefs.Radio, func(minimized bool) { seen = append(seen, minimized) })

	assert.Equal(t, r.Toggle(prefs.Radio), true)
	assert.DeepEqual(t, seen, []bool{false})
}

func TestRegistry_WatchDeliversOtherInstanceChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	local, err := kv.NewSQLiteStore(path, 10*time.Millisecond)
	assert.NilError(t, err)
	defer local.Close()
	remote, err := kv.NewSQLiteStore(path, 10*time.Millisecond)
	assert.NilError(t, err)
	defer remote.Close()

	bus := broadcast.New()
	r := prefs.NewRegistry(local, bus, logging.Discard())

	seen := make(chan bool, 4)
	r.Subscribe(prefs.StockTicker, func(minimized bool) { seen <- minimized })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Watch(ctx, local)
	time.Sleep(50 * time.Millisecond)

	other := prefs.NewRegistry(remote, broadcast.New(), logging.Discard())
	assert.NilError(t, remote.Set("section-xkcd", `{"collapsed":true}`))
	other.Toggle(prefs.StockTicker)

	select {
	case minimized := <-seen:
		assert.Equal(t, minimized, true)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for cross-instance change")
	}
}

func TestParseComponent(t *testing.T) {
	c, err := prefs.ParseComponent("news-ticker")
	assert.NilError(t, err)
	assert.Equal(t, c, prefs.NewsTicker)

	_, err = prefs.ParseComponent("weather")
	assert.ErrorContains(t, err, "unknown component")
}
