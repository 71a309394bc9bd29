package live

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func recvSnapshot(t *testing.T, sub *Subscription) interface{} {
	t.Helper()
	select {
	case snapshot, ok := <-sub.Updates():
		assert.True(t, ok, "updates channel closed unexpectedly")
		return snapshot
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
		return nil
	}
}

func waitClosed(t *testing.T, sub *Subscription) {
	t.Helper()
	select {
	case _, ok := <-sub.Updates():
		assert.False(t, ok, "expected updates channel to be closed")
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for channel close")
	}
}

func TestHub_SubscribeDeliversInitialSnapshot(t *testing.T) {
	hub := NewHub(NewMemoryBroker())

	sub := hub.Subscribe(context.Background(), TopicAppointments, func(ctx context.Context) (interface{}, error) {
		return []string{"a", "b"}, nil
	})
	defer sub.Cancel()

	assert.Equal(t, []string{"a", "b"}, recvSnapshot(t, sub))
}

func TestHub_NotifyTriggersRefetch(t *testing.T) {
	hub := NewHub(NewMemoryBroker())

	n := 0
	sub := hub.Subscribe(context.Background(), TopicAppointments, func(ctx context.Context) (interface{}, error) {
		n++
		return n, nil
	})
	defer sub.Cancel()

	assert.Equal(t, 1, recvSnapshot(t, sub))

	hub.Notify(context.Background(), TopicAppointments)
	assert.Equal(t, 2, recvSnapshot(t, sub))

	hub.Notify(context.Background(), TopicAppointments)
	assert.Equal(t, 3, recvSnapshot(t, sub))
}

func TestHub_TopicsAreIndependent(t *testing.T) {
	hub := NewHub(NewMemoryBroker())

	sub := hub.Subscribe(context.Background(), TopicMessages, func(ctx context.Context) (interface{}, error) {
		return "messages", nil
	})
	defer sub.Cancel()

	assert.Equal(t, "messages", recvSnapshot(t, sub))

	// a change on the other topic must not wake this subscription
	hub.Notify(context.Background(), TopicAppointments)

	select {
	case <-sub.Updates():
		t.Fatal("received snapshot for an unrelated topic")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHub_FetchErrorEndsSubscription(t *testing.T) {
	hub := NewHub(NewMemoryBroker())

	sub := hub.Subscribe(context.Background(), TopicAppointments, func(ctx context.Context) (interface{}, error) {
		return nil, assert.AnError
	})
	defer sub.Cancel()

	waitClosed(t, sub)
	assert.ErrorIs(t, sub.Err(), assert.AnError)
}

func TestHub_CancelClosesUpdates(t *testing.T) {
	hub := NewHub(NewMemoryBroker())

	sub := hub.Subscribe(context.Background(), TopicAppointments, func(ctx context.Context) (interface{}, error) {
		return "snapshot", nil
	})

	recvSnapshot(t, sub)
	sub.Cancel()
	// safe to call again
	sub.Cancel()

	waitClosed(t, sub)
	assert.NoError(t, sub.Err())
}

func TestHub_ContextCancelEndsSubscription(t *testing.T) {
	hub := NewHub(NewMemoryBroker())
	ctx, cancel := context.WithCancel(context.Background())

	sub := hub.Subscribe(ctx, TopicAppointments, func(ctx context.Context) (interface{}, error) {
		return "snapshot", nil
	})

	recvSnapshot(t, sub)
	cancel()
	waitClosed(t, sub)
}

func TestMemoryBroker_StopRemovesSubscriber(t *testing.T) {
	broker := NewMemoryBroker()

	notify, stop := broker.Subscribe(context.Background(), TopicAppointments)
	broker.Publish(context.Background(), TopicAppointments)

	select {
	case <-notify:
	case <-time.After(time.Second):
		t.Fatal("expected a notification")
	}

	stop()
	stop() // idempotent

	broker.Publish(context.Background(), TopicAppointments)
	select {
	case <-notify:
		t.Fatal("stopped subscriber still notified")
	case <-time.After(100 * time.Millisecond):
	}
}
