package chat

import (
	"sync"

	"github.com/thiagoazevedo/hotchat/pkg/protocol"
)

// ContactList holds the roster as last broadcast by the relay. Every
// broadcast fully replaces the previous roster; nothing is merged.
type ContactList struct {
	mu       sync.RWMutex
	contacts []protocol.User
}

// NewContactList creates an empty roster.
func NewContactList() *ContactList {
	return &ContactList{}
}

// Replace installs a new roster, dropping the logged-in user's own entry.
// Last write wins; no ordering beyond "most recent received" is assumed.
func (l *ContactList) Replace(users []protocol.User, selfEmail string) {
	next := make([]protocol.User, 0, len(users))
	for _, u := range users {
		if u.Email == selfEmail {
			continue
		}
		next = append(next, u)
	}

	l.mu.Lock()
	l.contacts = next
	l.mu.Unlock()
}

// Contacts returns the current roster in broadcast order.
func (l *ContactList) Contacts() []protocol.User {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]protocol.User, len(l.contacts))
	copy(out, l.contacts)
	return out
}

// ByID looks a contact up by its numeric id.
func (l *ContactList) ByID(id int) (protocol.User, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, u := range l.contacts {
		if u.ID == id {
			return u, true
		}
	}
	return protocol.User{}, false
}

// ByEmail looks a contact up by its email.
func (l *ContactList) ByEmail(email string) (protocol.User, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, u := range l.contacts {
		if u.Email == email {
			return u, true
		}
	}
	return protocol.User{}, false
}
