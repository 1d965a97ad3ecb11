package components

import (
	"strings"

	"github.com/theirongolddev/snowball/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar. A non-empty msg replaces
// the right-hand info; isErr colors it as a failure.
func RenderStatusBar(width int, info, msg string, isErr bool) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	left := style.Render(" [?]help  [p]ay  [s]ave run  [q]uit")

	right := style.Render(info + " ")
	if msg != "" {
		msgStyle := style.Foreground(t.Green)
		if isErr {
			msgStyle = style.Foreground(t.Red)
		}
		right = msgStyle.Render(msg + " ")
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	return lipgloss.NewStyle().Background(t.Surface).Width(width).
		Render(left + style.Render(strings.Repeat(" ", padding)) + right)
}

