package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// viewHistory renders the history panel: the date-range form and, after a
// fetch, the matching messages read-only.
func (m Model) viewHistory() string {
	contact, ok := m.selectedContact()
	if !ok {
		return paneStyle.Width(m.threadWidth()).Render("")
	}

	header := titleStyle.Render("History with " + contact.Name)
	form := lipgloss.JoinHorizontal(lipgloss.Top,
		"from "+m.histStart.View(),
		"  to "+m.histEnd.View(),
	)

	var rows strings.Builder
	for _, msg := range m.historyRows {
		rows.WriteString(m.renderMessage(msg))
		rows.WriteString("\n")
	}
	if len(m.historyRows) == 0 {
		rows.WriteString(helpStyle.Render("enter a period and press enter"))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		header,
		form,
		"",
		rows.String(),
		helpStyle.Render("esc: back to chat"),
	)
	return paneStyle.
		Width(m.threadWidth()).
		Render(content)
}
