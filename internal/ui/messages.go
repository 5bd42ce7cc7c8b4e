package ui

import "github.com/thiagoazevedo/hotchat/pkg/protocol"

// Messages delivered into the Bubble Tea program by the event wiring. The
// transport receive goroutine never touches the model directly; it mutates
// the stores and sends one of these so the view re-reads them on the
// program's own loop.

// ConversationUpdatedMsg signals new content in a contact's thread.
type ConversationUpdatedMsg struct {
	ContactID int
}

// RosterUpdatedMsg signals a contact-list broadcast was applied.
type RosterUpdatedMsg struct{}

// BlockUpdatedMsg signals a block confirmation or check response was
// applied for a contact. Notice carries the server's confirmation text,
// empty for check responses.
type BlockUpdatedMsg struct {
	Email  string
	Notice string
}

// historyLoadedMsg delivers a finished history fetch.
type historyLoadedMsg struct {
	messages []protocol.Message
}

// historyFailedMsg delivers a failed history fetch.
type historyFailedMsg struct {
	err error
}
