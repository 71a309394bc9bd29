package live

import (
	"context"
	"sync"
)

// FetchFunc re-runs a standing query and returns the full result set.
type FetchFunc func(ctx context.Context) (interface{}, error)

// Subscription is one live view of a query: the full result set is delivered
// on subscribe and again after every matching change, until cancelled.
type Subscription struct {
	ch     chan interface{}
	cancel context.CancelFunc
	once   sync.Once
	err    error
}

// Updates returns the snapshot stream. The channel closes when the
// subscription ends; check Err afterwards.
func (s *Subscription) Updates() <-chan interface{} {
	return s.ch
}

// Cancel tears the subscription down. Safe to call more than once; only the
// first call has any effect.
func (s *Subscription) Cancel() {
	s.once.Do(s.cancel)
}

// Err reports why the subscription ended. Only meaningful after Updates has
// been closed. A cancelled subscription reports nil.
func (s *Subscription) Err() error {
	return s.err
}

// Hub turns change notifications into full-snapshot re-deliveries.
type Hub struct {
	broker Broker
}

// NewHub creates a hub over the given broker.
func NewHub(broker Broker) *Hub {
	return &Hub{broker: broker}
}

// Notify announces that records under the topic changed.
func (h *Hub) Notify(ctx context.Context, topic string) {
	h.broker.Publish(ctx, topic)
}

// Subscribe opens a live subscription on a topic. The fetch func runs once
// immediately and then after every notification. A fetch failure ends the
// subscription with the error surfaced exactly once via Err; there is no
// retry.
func (h *Hub) Subscribe(ctx context.Context, topic string, fetch FetchFunc) *Subscription {
	ctx, cancel := context.WithCancel(ctx)
	sub := &Subscription{
		ch:     make(chan interface{}, 1),
		cancel: cancel,
	}

	notify, stop := h.broker.Subscribe(ctx, topic)

	go func() {
		defer close(sub.ch)
		defer stop()
		defer cancel()

		if !h.deliver(ctx, sub, fetch) {
			return
		}
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-notify:
				if !ok {
					return
				}
				if !h.deliver(ctx, sub, fetch) {
					return
				}
			}
		}
	}()

	return sub
}

// deliver fetches the current result set and pushes it to the consumer.
// Returns false when the subscription should end.
func (h *Hub) deliver(ctx context.Context, sub *Subscription, fetch FetchFunc) bool {
	snapshot, err := fetch(ctx)
	if err != nil {
		sub.err = err
		return false
	}
	select {
	case <-ctx.Done():
		return false
	case sub.ch <- snapshot:
		return true
	}
}
