// Package chat holds the client-side chat state: per-contact conversation
// threads, the contact roster, block relations, and the inbound event router.
package chat

import (
	"sync"

	"github.com/thiagoazevedo/hotchat/pkg/protocol"
)

// Conversation is one contact's thread. History is append-only; Visible
// marks the thread currently shown; Unread marks the roster entry when a
// message arrived while the thread was hidden.
type Conversation struct {
	ContactID int
	History   []protocol.Message
	Visible   bool
	Unread    bool
}

// AppendFunc observes every append so the view can render the new message
// at the end of the thread.
type AppendFunc func(contactID int, msg protocol.Message)

// ConversationStore maps contact id to its Conversation. Conversations are
// created lazily and never destroyed during a session. At most one
// conversation is visible at a time.
type ConversationStore struct {
	mu       sync.RWMutex
	convs    map[int]*Conversation
	onAppend AppendFunc
}

// NewConversationStore creates an empty store. onAppend may be nil.
func NewConversationStore(onAppend AppendFunc) *ConversationStore {
	return &ConversationStore{
		convs:    make(map[int]*Conversation),
		onAppend: onAppend,
	}
}

// Ensure creates the conversation for a contact if absent. Existing
// conversations are returned unchanged.
func (s *ConversationStore) Ensure(contactID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLocked(contactID)
}

func (s *ConversationStore) ensureLocked(contactID int) *Conversation {
	c, ok := s.convs[contactID]
	if !ok {
		c = &Conversation{ContactID: contactID}
		s.convs[contactID] = c
	}
	return c
}

// Append adds a message to the end of a contact's history. The conversation
// is created if this is the first message ever for the contact.
func (s *ConversationStore) Append(contactID int, msg protocol.Message) {
	s.mu.Lock()
	c := s.ensureLocked(contactID)
	c.History = append(c.History, msg)
	onAppend := s.onAppend
	s.mu.Unlock()

	if onAppend != nil {
		onAppend(contactID, msg)
	}
}

// Select makes a contact's conversation the visible one, hides all others,
// and clears the contact's unread mark. Selecting the already-selected
// contact leaves the same visibility state.
func (s *ConversationStore) Select(contactID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.convs {
		c.Visible = false
	}
	c := s.ensureLocked(contactID)
	c.Visible = true
	c.Unread = false
}

// MarkUnreadIfHidden sets the unread mark for a contact whose conversation
// is not currently visible. Cleared only by Select.
func (s *ConversationStore) MarkUnreadIfHidden(contactID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.ensureLocked(contactID)
	if !c.Visible {
		c.Unread = true
	}
}

// History returns a copy of a contact's message history in append order.
func (s *ConversationStore) History(contactID int) []protocol.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.convs[contactID]
	if !ok {
		return nil
	}
	out := make([]protocol.Message, len(c.History))
	copy(out, c.History)
	return out
}

// Selected returns the id of the visible conversation, if any.
func (s *ConversationStore) Selected() (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for id, c := range s.convs {
		if c.Visible {
			return id, true
		}
	}
	return 0, false
}

// Unread reports whether a contact has the unread mark set.
func (s *ConversationStore) Unread(contactID int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.convs[contactID]
	return ok && c.Unread
}
