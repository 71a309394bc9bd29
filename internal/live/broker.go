package live

import (
	"context"
	"sync"

	"schoolbook/internal/cache"
)

// Topics double as redis pub/sub channel names.
const (
	TopicAppointments = "live:appointments"
	TopicMessages     = "live:messages"
)

// Broker fans change notifications out to standing subscriptions. A
// notification carries no payload: subscribers re-run their query.
type Broker interface {
	Publish(ctx context.Context, topic string)
	Subscribe(ctx context.Context, topic string) (notify <-chan struct{}, stop func())
}

// RedisBroker distributes notifications over redis pub/sub so every server
// instance sees writes made by any of them. When redis is unavailable it
// degrades to no notifications, matching the fail-safe cache wrapper.
type RedisBroker struct {
	cache *cache.Client
}

// Ensure RedisBroker implements Broker
var _ Broker = (*RedisBroker)(nil)

// NewRedisBroker creates a broker on top of the shared redis client.
func NewRedisBroker(c *cache.Client) *RedisBroker {
	return &RedisBroker{cache: c}
}

// Publish announces a change on the topic.
func (b *RedisBroker) Publish(ctx context.Context, topic string) {
	_ = b.cache.Publish(ctx, topic, "changed")
}

// Subscribe opens a notification stream for the topic. The stop func is
// idempotent and must be called when the subscriber goes away.
func (b *RedisBroker) Subscribe(ctx context.Context, topic string) (<-chan struct{}, func()) {
	notify := make(chan struct{}, 1)
	pubsub := b.cache.Subscribe(ctx, topic)
	if pubsub == nil {
		// redis unavailable: subscription stays silent
		return notify, func() {}
	}

	done := make(chan struct{})
	go func() {
		defer close(notify)
		msgs := pubsub.Channel()
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			case _, ok := <-msgs:
				if !ok {
					return
				}
				// coalesce: one pending notification is enough
				select {
				case notify <- struct{}{}:
				default:
				}
			}
		}
	}()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			close(done)
			_ = pubsub.Close()
		})
	}
	return notify, stop
}

// MemoryBroker is an in-process Broker used by tests.
type MemoryBroker struct {
	mu   sync.Mutex
	subs map[string]map[int]chan struct{}
	next int
}

// Ensure MemoryBroker implements Broker
var _ Broker = (*MemoryBroker)(nil)

// NewMemoryBroker creates an in-process broker.
func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{subs: make(map[string]map[int]chan struct{})}
}

// Publish announces a change on the topic.
func (b *MemoryBroker) Publish(ctx context.Context, topic string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs[topic] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Subscribe opens a notification stream for the topic.
func (b *MemoryBroker) Subscribe(ctx context.Context, topic string) (<-chan struct{}, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[int]chan struct{})
	}
	id := b.next
	b.next++
	ch := make(chan struct{}, 1)
	b.subs[topic][id] = ch

	var once sync.Once
	stop := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs[topic], id)
			b.mu.Unlock()
		})
	}
	return ch, stop
}
