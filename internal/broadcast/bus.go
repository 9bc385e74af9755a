// Package broadcast delivers change events to observers inside one process.
//
// Cross-instance changes arrive through kv.Watcher, but a watcher never
// reports the instance's own writes. The bus closes that gap: whoever writes
// a shared value publishes on the bus, and every observer of the same key in
// this process hears about it.
package broadcast

import "sync"

// Event announces that the value stored under Key changed.
type Event struct {
	Key   string
	Value bool
}

// Bus is a publish/subscribe registry keyed by storage key.
// The zero value is not usable; use New.
type Bus struct {
	mu   sync.Mutex
	next int
	subs map[string][]subscription
}

type subscription struct {
	id int
	fn func(Event)
}

// Default is the process-wide bus.
var Default = New()

// New creates an empty Bus.
func New() *Bus {
	return &Bus{subs: make(map[string][]subscription)}
}

// Subscribe registers fn for events on key. The returned function removes
// the subscription and is safe to call more than once.
func (b *Bus) Subscribe(key string, fn func(Event)) (unsubscribe func()) {
	b.mu.Lock()
	b.next++
	id := b.next
	b.subs[key] = append(b.subs[key], subscription{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(key, id) })
	}
}

// Publish calls every subscriber of ev.Key in subscription order.
// Handlers run outside the lock, so they may subscribe or publish.
func (b *Bus) Publish(ev Event) {
	b.mu.Lock()
	subs := make([]subscription, len(b.subs[ev.Key]))
	copy(subs, b.subs[ev.Key])
	b.mu.Unlock()

	for _, s := range subs {
		s.fn(ev)
	}
}

// Subscribers returns the number of subscriptions for key.
func (b *Bus) Subscribers(key string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[key])
}

func (b *Bus) remove(key string, id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subs[key]
	for i, s := range subs {
		if s.id == id {
			b.subs[key] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	if len(b.subs[key]) == 0 {
		delete(b.subs, key)
	}
}
