// Package session owns the single relay connection: its lifecycle state,
// its topic subscriptions, and the outbound event dispatcher.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/thiagoazevedo/hotchat/internal/chat"
	"github.com/thiagoazevedo/hotchat/internal/transport"
	"github.com/thiagoazevedo/hotchat/pkg/protocol"
)

// State is the connection lifecycle state.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateFailed
)

// String returns the string representation of State.
func (s State) String() string {
	switch s {
	case StateConnecting:
		return "CONNECTING"
	case StateConnected:
		return "CONNECTED"
	case StateFailed:
		return "FAILED"
	default:
		return "DISCONNECTED"
	}
}

// Session is the process-wide owner of the transport handle. On a
// successful connect it subscribes every router-bound topic and announces
// this user as online. Failures move the session to StateFailed and are
// returned to the caller; there is no automatic retry.
type Session struct {
	email     string
	transport transport.Transport
	router    *chat.Router
	logger    *slog.Logger

	mu    sync.Mutex
	state State
}

// New creates a disconnected session for the logged-in user. A nil logger
// falls back to slog.Default().
func New(email string, t transport.Transport, r *chat.Router, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		email:     email,
		transport: t,
		router:    r,
		logger:    logger,
	}
}

// Connect dials the relay, subscribes all bound topics, and publishes the
// presence announce. Calling Connect while connecting or connected is a
// no-op; duplicate subscriptions can never be taken because subscriptions
// happen only on the Connecting to Connected edge. Connect after a failure
// or a disconnect starts clean.
func (s *Session) Connect(ctx context.Context) error {
	s.mu.Lock()
	if s.state == StateConnecting || s.state == StateConnected {
		s.mu.Unlock()
		return nil
	}
	s.state = StateConnecting
	s.mu.Unlock()

	if err := s.transport.Connect(ctx); err != nil {
		s.fail()
		return fmt.Errorf("failed to connect session: %w", err)
	}

	for _, topic := range s.router.Topics() {
		if err := s.transport.Subscribe(topic, func(body []byte) {
			s.router.Handle(topic, body)
		}); err != nil {
			s.fail()
			return fmt.Errorf("failed to subscribe to %s: %w", topic, err)
		}
	}

	body, err := protocol.Encode(protocol.Presence{UserEmailFrom: s.email})
	if err != nil {
		s.fail()
		return err
	}
	if err := s.transport.Publish(protocol.DestAddUser, body); err != nil {
		s.fail()
		return fmt.Errorf("failed to announce presence: %w", err)
	}

	s.mu.Lock()
	s.state = StateConnected
	s.mu.Unlock()

	s.logger.Info("session connected", "email", s.email)
	return nil
}

// Publish sends an event body to a destination. Every other component
// reaches the transport only through here; none of them may reconnect or
// close it.
func (s *Session) Publish(destination string, body []byte) error {
	if s.State() != StateConnected {
		return fmt.Errorf("session is not connected")
	}
	return s.transport.Publish(destination, body)
}

// Disconnect closes the transport. Safe to call in any state.
func (s *Session) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateConnected || s.state == StateConnecting {
		if err := s.transport.Close(); err != nil {
			s.logger.Warn("error closing transport", "error", err)
		}
	}
	s.state = StateDisconnected
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Email returns the logged-in user's email.
func (s *Session) Email() string {
	return s.email
}

func (s *Session) fail() {
	// Best-effort teardown so a later Connect starts from a clean
	// transport rather than a half-subscribed one.
	_ = s.transport.Close()

	s.mu.Lock()
	s.state = StateFailed
	s.mu.Unlock()
}
