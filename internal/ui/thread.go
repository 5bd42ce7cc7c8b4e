package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/thiagoazevedo/hotchat/internal/chat"
	"github.com/thiagoazevedo/hotchat/pkg/protocol"
)

// viewThread renders the open conversation: the thread viewport pinned to
// the newest message, or the blocked banner, plus the message input.
func (m Model) viewThread() string {
	contact, ok := m.selectedContact()
	if !ok {
		empty := helpStyle.Render("select a contact to start chatting")
		return paneStyle.
			Width(m.threadWidth()).
			Height(m.threadHeight() + 2).
			Render(empty)
	}

	header := titleStyle.Render(contact.Name)

	var body string
	if m.blocks.State(contact.Email) == chat.BlockBlocked {
		body = blockedBannerStyle.Render(
			"Contact blocked. You will not receive their messages and cannot send any.")
	} else {
		body = m.thread.View()
	}

	input := m.input.View()
	if m.blocks.State(contact.Email) == chat.BlockBlocked {
		input = helpStyle.Render("sending disabled")
	}

	content := lipgloss.JoinVertical(lipgloss.Left, header, body, input)
	return paneStyle.
		Width(m.threadWidth()).
		Render(content)
}

// refreshThread rebuilds the viewport content from the selected
// conversation and pins the scroll position to the newest message.
// Rendering is append-only in effect: history order is arrival order.
func (m *Model) refreshThread() {
	id, ok := m.store.Selected()
	if !ok {
		m.thread.SetContent("")
		return
	}

	var b strings.Builder
	for _, msg := range m.store.History(id) {
		b.WriteString(m.renderMessage(msg))
		b.WriteString("\n")
	}
	m.thread.SetContent(b.String())
	m.thread.GotoBottom()
}

func (m *Model) renderMessage(msg protocol.Message) string {
	ts := timestampStyle.Render(protocol.FormatTimestamp(msg.Date))
	if msg.UserEmailFrom == m.self.Email {
		return ownMessageStyle.Render("you: "+msg.Content) + " " + ts
	}
	return theirMessageStyle.Render(msg.Content) + " " + ts
}
