package session

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/thiagoazevedo/hotchat/internal/chat"
	"github.com/thiagoazevedo/hotchat/pkg/protocol"
)

// Guard violations rejected before any local or network effect.
var (
	ErrEmptyMessage   = errors.New("message content is empty")
	ErrNotConnected   = errors.New("session is not connected")
	ErrContactBlocked = errors.New("contact is blocked")
)

// Dispatcher builds outbound events and applies their optimistic local
// effects. Sending is optimistic (the message is appended locally before
// the relay sees it); block toggles are not, because block state must stay
// server-authoritative.
type Dispatcher struct {
	session *Session
	store   *chat.ConversationStore
	blocks  *chat.BlockTracker
	logger  *slog.Logger
	now     func() time.Time
}

// NewDispatcher creates a dispatcher bound to the session's stores. A nil
// logger falls back to slog.Default().
func NewDispatcher(s *Session, store *chat.ConversationStore, blocks *chat.BlockTracker, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		session: s,
		store:   store,
		blocks:  blocks,
		logger:  logger,
		now:     time.Now,
	}
}

// SendMessage appends the message to the contact's thread and emits the
// send event. Empty content, a disconnected session, and a blocked contact
// are rejected before any side effect. A publish failure after the local
// append is logged and not rolled back, so the message can show as sent
// without ever reaching the relay.
func (d *Dispatcher) SendMessage(to protocol.User, content string) error {
	if content == "" {
		return ErrEmptyMessage
	}
	if d.session.State() != StateConnected {
		return ErrNotConnected
	}
	if d.blocks.State(to.Email) == chat.BlockBlocked {
		return ErrContactBlocked
	}

	d.store.Append(to.ID, protocol.Message{
		UserEmailFrom: d.session.Email(),
		UserEmailTo:   to.Email,
		Content:       content,
		Date:          d.now(),
	})

	body, err := protocol.Encode(protocol.ChatMessage{
		UserEmailFrom: d.session.Email(),
		UserEmailTo:   to.Email,
		Content:       content,
	})
	if err != nil {
		d.logger.Warn("message kept locally but not sent", "error", err)
		return nil
	}
	if err := d.session.Publish(protocol.DestSendMessage, body); err != nil {
		d.logger.Warn("message kept locally but not sent", "to", to.Email, "error", err)
	}
	return nil
}

// ToggleBlock emits the block toggle. No local state changes until the
// confirmation event comes back on the block topic.
func (d *Dispatcher) ToggleBlock(to protocol.User, block bool) error {
	return d.publishUserBlock(protocol.DestBlockContact, to, block)
}

// CheckBlock asks the relay to resolve the current block status for a
// contact. Sent whenever a conversation is opened.
func (d *Dispatcher) CheckBlock(to protocol.User) error {
	return d.publishUserBlock(protocol.DestCheckBlockContact, to, false)
}

func (d *Dispatcher) publishUserBlock(destination string, to protocol.User, block bool) error {
	if d.session.State() != StateConnected {
		return ErrNotConnected
	}

	body, err := protocol.Encode(protocol.UserBlock{
		UserFrom: protocol.UserRef{Email: d.session.Email()},
		UserTo:   protocol.UserRef{Email: to.Email},
		Block:    block,
	})
	if err != nil {
		return err
	}
	if err := d.session.Publish(destination, body); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", destination, err)
	}
	return nil
}
