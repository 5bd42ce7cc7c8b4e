package transport

import (
	"context"
	"errors"
	"sync"
)

// MemoryBroker is an in-process Transport. Tests use it both as the client's
// transport and as a stand-in relay: the test side subscribes to outbound
// destinations and publishes to the per-user topics. Delivery is synchronous
// and in subscription order, so per-topic arrival order holds trivially.
type MemoryBroker struct {
	mu     sync.RWMutex
	subs   map[string][]HandlerFunc
	closed bool
}

// NewMemoryBroker creates an empty broker.
func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{
		subs: make(map[string][]HandlerFunc),
	}
}

// Connect implements Transport. The broker is always reachable.
func (b *MemoryBroker) Connect(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return errors.New("broker is closed")
	}
	return nil
}

// Subscribe registers a handler for a topic.
func (b *MemoryBroker) Subscribe(topic string, fn HandlerFunc) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return errors.New("broker is closed")
	}
	b.subs[topic] = append(b.subs[topic], fn)
	return nil
}

// Publish delivers the body to every handler subscribed to the destination.
// Unknown destinations are dropped.
func (b *MemoryBroker) Publish(destination string, body []byte) error {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return errors.New("broker is closed")
	}
	subs := make([]HandlerFunc, len(b.subs[destination]))
	copy(subs, b.subs[destination])
	b.mu.RUnlock()

	for _, fn := range subs {
		fn(body)
	}
	return nil
}

// Close drops all subscriptions and rejects further use.
func (b *MemoryBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.subs = make(map[string][]HandlerFunc)
	return nil
}
