package observer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitDeliversToSubscriber(t *testing.T) {
	h := NewHub(4, nil)
	sub := h.Subscribe("s1")

	h.Emit(Event{Kind: "result", ContextID: "c1"})

	select {
	case ev := <-sub.Events():
		assert.Equal(t, "result", ev.Kind)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestEmitDropsOnFullQueueWithoutBlocking(t *testing.T) {
	h := NewHub(1, nil)
	sub := h.Subscribe("s1")

	h.Emit(Event{Kind: "a"})
	done := make(chan struct{})
	go func() {
		h.Emit(Event{Kind: "b"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Emit blocked on a full subscriber queue")
	}

	assert.Equal(t, int64(1), h.Dropped("s1"))
	_ = sub
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	h := NewHub(4, nil)
	sub := h.Subscribe("s1")
	h.Unsubscribe("s1")

	_, ok := <-sub.Events()
	assert.False(t, ok)
}

func TestDrainStopsOnContextCancel(t *testing.T) {
	h := NewHub(4, nil)
	sub := h.Subscribe("s1")

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- Drain(ctx, sub, func(Event) error { return nil }) }()

	cancel()
	select {
	case err := <-errCh:
		require.Error(t, err)
	case <-time.After(time.Second):
		t.Fatal("Drain did not stop on cancel")
	}
}
