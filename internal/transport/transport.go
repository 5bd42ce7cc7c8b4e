// Package transport provides the publish/subscribe contract to the chat
// relay, a WebSocket implementation of it, and an in-memory broker for
// tests and loopback use.
package transport

import "context"

// HandlerFunc receives the raw JSON event body published on a topic.
type HandlerFunc func(body []byte)

// Transport abstracts the relay connection. Implementations must invoke
// handlers subscribed to the same topic in arrival order; no ordering is
// guaranteed across topics.
type Transport interface {
	// Connect establishes the connection. It must be called before
	// Subscribe or Publish.
	Connect(ctx context.Context) error

	// Subscribe registers a handler for a topic.
	Subscribe(topic string, fn HandlerFunc) error

	// Publish sends an event body to a destination.
	Publish(destination string, body []byte) error

	// Close tears the connection down.
	Close() error
}
