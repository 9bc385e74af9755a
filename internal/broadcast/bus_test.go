package broadcast_test

import (
	"testing"

	"github.com/nikbrunner/termhome/internal/broadcast"
	"gotest.tools/v3/assert"
)

func TestBus_PublishReachesOnlyMatchingKey(t *testing.T) {
	bus := broadcast.New()

	var radio, news []broadcast.Event
	bus.Subscribe("minimized-radio", func(ev broadcast.Event) { radio = append(radio, ev) })
	bus.Subscribe("minimized-news-ticker", func(ev broadcast.Event) { news = append(news, ev) })

	bus.Publish(broadcast.Event{Key: "minimized-radio", Value: true})

	assert.DeepEqual(t, radio, []broadcast.Event{{Key: "minimized-radio", Value: true}})
	assert.Equal(t, len(news), 0)
}

func TestBus_SubscriptionOrder(t *testing.T) {
	bus := broadcast.New()

	var order []int
	bus.Subscribe("k", func(broadcast.Event) { order = append(order, 1) })
	bus.Subscribe("k", func(broadcast.Event) { order = append(order, 2) })
	bus.Subscribe("k", func(broadcast.Event) { order = append(order, 3) })

	bus.Publish(broadcast.Event{Key: "k"})
	assert.DeepEqual(t, order, []int{1, 2, 3})
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := broadcast.New()

	calls := 0
	unsubscribe := bus.Subscribe("k", func(broadcast.Event) { calls++ })
	other := bus.Subscribe("k", func(broadcast.Event) {})
	assert.Equal(t, bus.Subscribers("k"), 2)

	unsubscribe()
	unsubscribe()
	assert.Equal(t, bus.Subscribers("k"), 1)

	bus.Publish(broadcast.Event{Key: "k"})
	assert.Equal(t, calls, 0)

	other()
	assert.Equal(t, bus.Subscribers("k"), 0)
}

func TestBus_HandlerMaySubscribeDuringPublish(t *testing.T) {
	bus := broadcast.New()

	late := 0
	bus.Subscribe("k", func(broadcast.Event) {
		bus.Subscribe("k", func(broadcast.Event) { late++ })
	})

	// The subscription added mid-publish only sees later events.
	bus.Publish(broadcast.Event{Key: "k"})
	assert.Equal(t, late, 0)

	bus.Publish(broadcast.Event{Key: "k"})
	assert.Equal(t, late, 1)
}
