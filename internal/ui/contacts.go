package ui

import "strings"

// viewContacts renders the roster pane: presence dot, contact name (bold
// while unread), cursor highlight, and an underline on the open thread.
func (m Model) viewContacts() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Contacts"))
	b.WriteString("\n\n")

	contacts := m.contacts.Contacts()
	if len(contacts) == 0 {
		b.WriteString(helpStyle.Render("nobody here yet"))
	}

	selectedID, hasSelection := m.store.Selected()
	for i, u := range contacts {
		dot := offlineDotStyle.Render("○")
		if u.Online {
			dot = onlineDotStyle.Render("●")
		}

		name := u.Name
		if m.store.Unread(u.ID) {
			name = unreadNameStyle.Render(name)
		}
		if hasSelection && u.ID == selectedID {
			name = selectedRowStyle.Render(name)
		}

		row := dot + " " + name
		if m.focus == focusContacts && i == m.cursor {
			row = cursorRowStyle.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}

	return paneStyle.
		Width(m.contactsWidth()).
		Height(m.threadHeight() + 2).
		Render(b.String())
}
