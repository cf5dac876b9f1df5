package core

import "github.com/charmbracelet/lipgloss"

var (
	PaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
	FocusedPaneStyle = PaneStyle.BorderForeground(colorAccent)

	PaneTitleStyle  = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	RowStyle        = lipgloss.NewStyle().Foreground(colorText)
	CursorRowStyle  = lipgloss.NewStyle().Foreground(colorText).Background(colorSurface1).Bold(true)
	MarkedRowStyle  = lipgloss.NewStyle().Foreground(colorPeach)
	EmptyPaneStyle  = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
	ButtonStyle     = lipgloss.NewStyle().Foreground(colorAccent).Padding(0, 1)
	DisabledButton  = lipgloss.NewStyle().Foreground(colorDisabled).Padding(0, 1)
	HintStyle       = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Background(colorSurface0)
	statusErrBarStyle = lipgloss.NewStyle().
				Foreground(colorError).
				Background(colorSurface0)
	footerStyle = lipgloss.NewStyle().
			Background(colorMantle)
)
