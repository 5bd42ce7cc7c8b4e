// Package ui renders the chat panels: the contact roster, the selected
// conversation thread, the message input, and the history view. Each panel
// is re-rendered from the structured stores; no state lives in the view.
package ui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/thiagoazevedo/hotchat/internal/api"
	"github.com/thiagoazevedo/hotchat/internal/chat"
	"github.com/thiagoazevedo/hotchat/internal/session"
	"github.com/thiagoazevedo/hotchat/pkg/protocol"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
)

// focusArea is the pane keyboard input goes to.
type focusArea int

const (
	focusContacts focusArea = iota
	focusInput
	focusHistory
)

// Model is the root view over the chat stores.
type Model struct {
	self       protocol.User
	store      *chat.ConversationStore
	contacts   *chat.ContactList
	blocks     *chat.BlockTracker
	dispatcher *session.Dispatcher
	backend    *api.Client

	focus  focusArea
	cursor int

	input     textinput.Model
	thread    viewport.Model
	histStart textinput.Model
	histEnd   textinput.Model

	showHistory  bool
	historyRows  []protocol.Message
	status       string
	notice       string
	width        int
	height       int
	ready        bool
}

// New creates the root model over the shared stores.
func New(self protocol.User, store *chat.ConversationStore, contacts *chat.ContactList, blocks *chat.BlockTracker, dispatcher *session.Dispatcher, backend *api.Client) Model {
	input := textinput.New()
	input.Placeholder = "Type a message"
	input.CharLimit = 500

	histStart := textinput.New()
	histStart.Placeholder = "DD/MM/YYYY"
	histStart.CharLimit = 10
	histEnd := textinput.New()
	histEnd.Placeholder = "DD/MM/YYYY"
	histEnd.CharLimit = 10

	return Model{
		self:       self,
		store:      store,
		contacts:   contacts,
		blocks:     blocks,
		dispatcher: dispatcher,
		backend:    backend,
		input:      input,
		thread:     viewport.New(40, 10),
		histStart:  histStart,
		histEnd:    histEnd,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles one message on the program loop.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.thread.Width = m.threadWidth()
		m.thread.Height = m.threadHeight()
		m.ready = true
		m.refreshThread()
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)

	case ConversationUpdatedMsg:
		if id, ok := m.store.Selected(); ok && id == msg.ContactID {
			m.refreshThread()
		}
		return m, nil

	case RosterUpdatedMsg:
		if n := len(m.contacts.Contacts()); m.cursor >= n && n > 0 {
			m.cursor = n - 1
		}
		return m, nil

	case BlockUpdatedMsg:
		if msg.Notice != "" {
			m.notice = msg.Notice
		}
		m.refreshThread()
		return m, nil

	case historyLoadedMsg:
		m.historyRows = msg.messages
		m.status = ""
		return m, nil

	case historyFailedMsg:
		m.status = "error fetching history: " + msg.err.Error()
		return m, nil
	}

	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab":
		if !m.showHistory {
			m.focus = m.nextFocus()
			m.syncFocus()
			return m, nil
		}
	case "ctrl+h":
		if _, ok := m.selectedContact(); ok {
			m.showHistory = !m.showHistory
			m.historyRows = nil
			m.status = ""
			if m.showHistory {
				m.focus = focusHistory
			} else {
				m.focus = focusInput
			}
			m.syncFocus()
			return m, nil
		}
	case "esc":
		if m.showHistory {
			m.showHistory = false
			m.focus = focusInput
			m.syncFocus()
			return m, nil
		}
	}

	switch m.focus {
	case focusContacts:
		return m.updateContactKeys(msg)
	case focusInput:
		return m.updateInputKeys(msg)
	case focusHistory:
		return m.updateHistoryKeys(msg)
	}
	return m, nil
}

func (m Model) updateContactKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	contacts := m.contacts.Contacts()
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(contacts)-1 {
			m.cursor++
		}
	case "enter":
		if m.cursor < len(contacts) {
			m.selectContact(contacts[m.cursor])
		}
	}
	return m, nil
}

// selectContact opens a contact's thread: exactly one conversation becomes
// visible, the unread mark clears, and a block-status check goes out so the
// send affordances resolve.
func (m *Model) selectContact(u protocol.User) {
	m.store.Select(u.ID)
	m.showHistory = false
	m.notice = ""
	m.status = ""
	if err := m.dispatcher.CheckBlock(u); err != nil {
		m.status = "could not check block status"
	}
	m.focus = focusInput
	m.syncFocus()
	m.refreshThread()
}

func (m Model) updateInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		contact, ok := m.selectedContact()
		if !ok {
			return m, nil
		}
		if m.blocks.State(contact.Email) == chat.BlockBlocked {
			// Send control is disabled while blocked.
			return m, nil
		}
		err := m.dispatcher.SendMessage(contact, m.input.Value())
		switch {
		case errors.Is(err, session.ErrEmptyMessage):
			m.status = "message required"
		case errors.Is(err, session.ErrContactBlocked):
			m.status = "contact is blocked"
		case errors.Is(err, session.ErrNotConnected):
			m.status = "not connected"
		case err == nil:
			m.input.Reset()
			m.status = ""
			m.refreshThread()
		}
		return m, nil
	}

	if msg.String() == "ctrl+b" {
		if contact, ok := m.selectedContact(); ok {
			block := m.blocks.State(contact.Email) != chat.BlockBlocked
			if err := m.dispatcher.ToggleBlock(contact, block); err != nil {
				m.status = "could not send block request"
			}
			// No local change: the tracker moves on the confirmation event.
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateHistoryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		if m.histStart.Focused() {
			m.histStart.Blur()
			m.histEnd.Focus()
		} else {
			m.histEnd.Blur()
			m.histStart.Focus()
		}
		return m, nil
	case "enter":
		contact, ok := m.selectedContact()
		if !ok {
			return m, nil
		}
		query := api.HistoryQuery{
			UserEmailFrom: m.self.Email,
			UserEmailTo:   contact.Email,
			Start:         m.histStart.Value(),
			End:           m.histEnd.Value(),
		}
		if err := query.Validate(); err != nil {
			if errors.Is(err, api.ErrPeriodRequired) {
				m.status = "period required"
			} else {
				m.status = err.Error()
			}
			return m, nil
		}
		m.status = "fetching history..."
		return m, fetchHistory(m.backend, query)
	}

	var cmd tea.Cmd
	if m.histStart.Focused() {
		m.histStart, cmd = m.histStart.Update(msg)
	} else {
		m.histEnd, cmd = m.histEnd.Update(msg)
	}
	return m, cmd
}

// fetchHistory runs the history request off the program loop.
func fetchHistory(backend *api.Client, query api.HistoryQuery) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		messages, err := backend.FetchHistory(ctx, query)
		if err != nil {
			return historyFailedMsg{err: err}
		}
		return historyLoadedMsg{messages: messages}
	}
}

func (m *Model) nextFocus() focusArea {
	if m.focus == focusContacts {
		if _, ok := m.selectedContact(); ok {
			return focusInput
		}
		return focusContacts
	}
	return focusContacts
}

func (m *Model) syncFocus() {
	m.input.Blur()
	m.histStart.Blur()
	m.histEnd.Blur()
	switch m.focus {
	case focusInput:
		m.input.Focus()
	case focusHistory:
		m.histStart.Focus()
	}
}

func (m *Model) selectedContact() (protocol.User, bool) {
	id, ok := m.store.Selected()
	if !ok {
		return protocol.User{}, false
	}
	return m.contacts.ByID(id)
}

// View renders the roster next to the thread (or history) panel.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	left := m.viewContacts()
	var right string
	if m.showHistory {
		right = m.viewHistory()
	} else {
		right = m.viewThread()
	}

	panels := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	return lipgloss.JoinVertical(lipgloss.Left, panels, m.viewStatusBar())
}

func (m Model) viewStatusBar() string {
	switch {
	case m.status != "":
		return statusStyle.Render(m.status)
	case m.notice != "":
		return noticeStyle.Render(m.notice)
	default:
		return helpStyle.Render("tab: switch pane  enter: send/select  ctrl+b: block/unblock  ctrl+h: history  ctrl+c: quit")
	}
}

func (m Model) contactsWidth() int {
	w := m.width / 3
	if w < 24 {
		w = 24
	}
	return w
}

func (m Model) threadWidth() int {
	return m.width - m.contactsWidth() - 6
}

func (m Model) threadHeight() int {
	h := m.height - 8
	if h < 4 {
		h = 4
	}
	return h
}
