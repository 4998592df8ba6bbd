// Package observer implements the kernel's read-only notification side
// channel: a bounded, per-subscriber fan-out of every Result and
// FailureEvent the Guard produces. Grounded on the teacher's
// BackgroundObserverManager (internal/shards/observer_manager.go), but
// simplified to the one property the specification actually needs —
// observers can never affect an admission outcome, so emit is
// non-blocking and a full subscriber queue drops the event rather than
// propagating backpressure into the Guard.
package observer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"mek/internal/logging"
)

// Event is one notification the hub fans out: either a successful Result
// or a FailureResult, carried as an opaque payload so the hub itself never
// needs to import the admission packages that produce them.
type Event struct {
	Kind      string // "result" | "failure"
	ContextID string
	Payload   any
	EmittedAt time.Time
}

// Subscriber receives Events through a bounded channel.
type Subscriber struct {
	name string
	ch   chan Event
}

// Events returns the channel a subscriber should range over.
func (s *Subscriber) Events() <-chan Event { return s.ch }

// Name returns the subscriber's registered name.
func (s *Subscriber) Name() string { return s.name }

// Hub fans Events out to every registered Subscriber without blocking
// the emitting goroutine and without letting a slow or stalled
// subscriber affect any other subscriber or the emitter itself.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]*Subscriber
	queueSize   int
	log         *zap.Logger
	dropped     map[string]int64
}

// NewHub constructs a Hub whose subscriber channels each have capacity
// queueSize. A queueSize <= 0 defaults to 64.
func NewHub(queueSize int, base *zap.Logger) *Hub {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &Hub{
		subscribers: make(map[string]*Subscriber),
		queueSize:   queueSize,
		log:         logging.For(base, logging.CategoryObserver),
		dropped:     make(map[string]int64),
	}
}

// Subscribe registers a new Subscriber under name, replacing any prior
// subscriber with the same name.
func (h *Hub) Subscribe(name string) *Subscriber {
	h.mu.Lock()
	defer h.mu.Unlock()
	sub := &Subscriber{name: name, ch: make(chan Event, h.queueSize)}
	h.subscribers[name] = sub
	return sub
}

// Unsubscribe removes name and closes its channel.
func (h *Hub) Unsubscribe(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if sub, ok := h.subscribers[name]; ok {
		close(sub.ch)
		delete(h.subscribers, name)
	}
}

// Emit delivers ev to every current subscriber without blocking. A
// subscriber whose queue is full has the event dropped for it and a
// counter incremented; Emit itself never returns an error and never
// blocks the caller, since admission outcomes must never depend on
// observer liveness.
func (h *Hub) Emit(ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for name, sub := range h.subscribers {
		select {
		case sub.ch <- ev:
		default:
			h.dropped[name]++
			h.log.Warn("observer queue full, dropping event", zap.String("subscriber", name), zap.String("kind", ev.Kind))
		}
	}
}

// Dropped returns how many events have been dropped for name so far.
func (h *Hub) Dropped(name string) int64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.dropped[name]
}

// Drain runs fn for every Event received by sub until ctx is cancelled or
// sub's channel is closed, using an errgroup so a panic or error inside
// fn surfaces through Drain's return rather than crashing silently. This
// mirrors how the campaign intelligence gatherer fans work out with
// errgroup rather than raw goroutines.
func Drain(ctx context.Context, sub *Subscriber, fn func(Event) error) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("observer: subscriber %s panicked: %v", sub.name, r)
			}
		}()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case ev, ok := <-sub.Events():
				if !ok {
					return nil
				}
				if err := fn(ev); err != nil {
					return err
				}
			}
		}
	})
	return g.Wait()
}
