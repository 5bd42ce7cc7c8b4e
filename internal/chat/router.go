package chat

import (
	"log/slog"

	"github.com/thiagoazevedo/hotchat/pkg/protocol"
)

// Router demultiplexes inbound events by topic into typed handlers. Each
// topic binds to exactly one handler; the payload is decoded before
// dispatch. Routing is pure and synchronous: a malformed body is logged and
// dropped, an unknown topic is ignored.
type Router struct {
	logger   *slog.Logger
	handlers map[string]func(body []byte)
}

// NewRouter creates a router with no bindings. A nil logger falls back to
// slog.Default().
func NewRouter(logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		logger:   logger,
		handlers: make(map[string]func([]byte)),
	}
}

// BindMessage routes a topic's events to a direct-message handler.
func (r *Router) BindMessage(topic string, fn func(protocol.Message)) {
	r.handlers[topic] = func(body []byte) {
		msg, err := protocol.DecodeMessage(body)
		if err != nil {
			r.warn(topic, err)
			return
		}
		fn(msg)
	}
}

// BindMessageBatch routes a topic's events to an offline-batch handler.
func (r *Router) BindMessageBatch(topic string, fn func([]protocol.Message)) {
	r.handlers[topic] = func(body []byte) {
		msgs, err := protocol.DecodeMessages(body)
		if err != nil {
			r.warn(topic, err)
			return
		}
		fn(msgs)
	}
}

// BindContacts routes a topic's events to a roster handler.
func (r *Router) BindContacts(topic string, fn func([]protocol.User)) {
	r.handlers[topic] = func(body []byte) {
		users, err := protocol.DecodeUsers(body)
		if err != nil {
			r.warn(topic, err)
			return
		}
		fn(users)
	}
}

// BindBlockResult routes a topic's events to a block-result handler.
func (r *Router) BindBlockResult(topic string, fn func(protocol.BlockResult)) {
	r.handlers[topic] = func(body []byte) {
		res, err := protocol.DecodeBlockResult(body)
		if err != nil {
			r.warn(topic, err)
			return
		}
		fn(res)
	}
}

// Handle dispatches one inbound event to the handler bound to its topic.
func (r *Router) Handle(topic string, body []byte) {
	h, ok := r.handlers[topic]
	if !ok {
		return
	}
	h(body)
}

// Topics returns every topic the router has a binding for.
func (r *Router) Topics() []string {
	out := make([]string, 0, len(r.handlers))
	for topic := range r.handlers {
		out = append(out, topic)
	}
	return out
}

func (r *Router) warn(topic string, err error) {
	r.logger.Warn("dropping malformed event", "topic", topic, "error", err)
}
