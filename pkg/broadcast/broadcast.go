package broadcast

import (
	"context"
	"sync"
)

// Subscriber receives events from a Broadcaster.
// Implementations must be safe for concurrent use.
type Subscriber[T any] interface {
	// Receive returns the channel events arrive on. The channel is closed
	// when the subscriber is closed, so ranging over it terminates cleanly.
	// The context parameter lets remote implementations respect cancellation
	// during blocking reads; the in-memory implementation does not use it.
	Receive(ctx context.Context) <-chan T

	// Close tears down the subscription and closes the receive channel.
	// Close is idempotent.
	Close() error
}

// Broadcaster fans events out to multiple subscribers.
// Implementations must never block the publisher on a slow consumer;
// dropping events for that consumer is the expected behavior.
type Broadcaster[T any] interface {
	// Subscribe creates a subscriber that receives every subsequent event.
	// The context bounds the subscription: when it is canceled the
	// subscription is cleaned up automatically.
	Subscribe(ctx context.Context) Subscriber[T]

	// Broadcast delivers an event to all active subscribers. Events may be
	// dropped for subscribers whose buffers are full.
	Broadcast(ctx context.Context, event T) error

	// Close shuts the broadcaster down and closes every subscriber.
	// After Close, Subscribe returns already-closed subscribers and
	// Broadcast is a no-op.
	Close() error
}

type subscriber[T any] struct {
	ch     chan T
	closed bool
	mu     sync.RWMutex
}

func newSubscriber[T any](bufferSize int) *subscriber[T] {
	return &subscriber[T]{
		ch: make(chan T, bufferSize),
	}
}

func (s *subscriber[T]) Receive(ctx context.Context) <-chan T {
	return s.ch
}

func (s *subscriber[T]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		close(s.ch)
		s.closed = true
	}
	return nil
}

func (s *subscriber[T]) send(event T) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false
	}

	select {
	case s.ch <- event:
		return true
	default:
		return false
	}
}
