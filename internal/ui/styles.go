package ui

import "github.com/charmbracelet/lipgloss"

var (
	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	onlineDotStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	offlineDotStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	unreadNameStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	cursorRowStyle    = lipgloss.NewStyle().Reverse(true)
	selectedRowStyle  = lipgloss.NewStyle().Underline(true)
	ownMessageStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	theirMessageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	timestampStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	blockedBannerStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("196")).
				Padding(1, 2)

	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("108"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)
