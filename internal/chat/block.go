package chat

import "sync"

// BlockState is the server-confirmed block relation toward one contact.
type BlockState int

const (
	BlockUnknown BlockState = iota
	BlockUnblocked
	BlockBlocked
)

// String returns the string representation of BlockState.
func (s BlockState) String() string {
	switch s {
	case BlockUnblocked:
		return "UNBLOCKED"
	case BlockBlocked:
		return "BLOCKED"
	default:
		return "UNKNOWN"
	}
}

// BlockTracker holds per-contact block state, keyed by email. State moves
// out of BlockUnknown only on server-confirmed events; requesting a toggle
// never changes it. Apply is idempotent and order-independent, so the block
// confirmation and the check response may arrive in either order, or
// repeatedly, with the same outcome.
type BlockTracker struct {
	mu     sync.RWMutex
	states map[string]BlockState
}

// NewBlockTracker creates a tracker with every contact in BlockUnknown.
func NewBlockTracker() *BlockTracker {
	return &BlockTracker{
		states: make(map[string]BlockState),
	}
}

// Apply records a server-confirmed block result for a contact. Last write
// wins.
func (t *BlockTracker) Apply(email string, blocked bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if blocked {
		t.states[email] = BlockBlocked
	} else {
		t.states[email] = BlockUnblocked
	}
}

// State returns the current block state for a contact.
func (t *BlockTracker) State(email string) BlockState {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.states[email]
}
