package prefs

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nikbrunner/termhome/internal/broadcast"
	"github.com/nikbrunner/termhome/internal/kv"
)

// Component is a header widget that can be minimized.
type Component string

const (
	StockTicker Component = "stock-ticker"
	NewsTicker  Component = "news-ticker"
	Radio       Component = "radio"
)

// Components lists every minimizable component in display order.
var Components = []Component{NewsTicker, StockTicker, Radio}

// ParseComponent validates a component name.
func ParseComponent(s string) (Component, error) {
	for _, c := range Components {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown component %q", s)
}

const visibilityPrefix = "minimized-"

// VisibilityKey returns the storage key for a component's minimized flag.
func VisibilityKey(c Component) string {
	return visibilityPrefix + string(c)
}

// Registry tracks which components are minimized. The stored value is the
// string "true" or "false".
type Registry struct {
	store kv.Store
	bus   *broadcast.Bus
	log   *slog.Logger
}

// NewRegistry creates a Registry. A nil bus uses broadcast.Default.
func NewRegistry(store kv.Store, bus *broadcast.Bus, log *slog.Logger) *Registry {
	if bus == nil {
		bus = broadcast.Default
	}
	return &Registry{store: store, bus: bus, log: log}
}

// Read reports whether c is minimized. Anything but a stored true is false.
func (r *Registry) Read(c Component) bool {
	minimized, _ := r.value(c).Load()
	return minimized
}

// Toggle flips the minimized flag of c, persists it and announces the change
// to observers in this process. It returns the new value.
func (r *Registry) Toggle(c Component) bool {
	next := !r.Read(c)
	_ = r.value(c).Save(next)
	r.bus.Publish(broadcast.Event{Key: VisibilityKey(c), Value: next})
	return next
}

// Subscribe calls fn with the freshly read value whenever c changes, whether
// the change came from this process or from another instance (see Watch).
func (r *Registry) Subscribe(c Component, fn func(minimized bool)) (cancel func()) {
	return r.bus.Subscribe(VisibilityKey(c), func(broadcast.Event) {
		fn(r.Read(c))
	})
}

// Watch forwards changes made by other instances to subscribers until ctx is
// done. It blocks; run it in its own goroutine.
func (r *Registry) Watch(ctx context.Context, w kv.Watcher) error {
	return w.Watch(ctx, func(key string) {
		if !strings.HasPrefix(key, visibilityPrefix) {
			return
		}
		c, err := ParseComponent(strings.TrimPrefix(key, visibilityPrefix))
		if err != nil {
			r.log.Debug("ignoring change for unknown component", "key", key)
			return
		}
		r.bus.Publish(broadcast.Event{Key: key, Value: r.Read(c)})
	})
}

func (r *Registry) value(c Component) Value[bool] {
	return NewValue[bool](r.store, VisibilityKey(c), r.log)
}
