package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/snowball/internal/cli"
	"github.com/theirongolddev/snowball/internal/config"
	"github.com/theirongolddev/snowball/internal/tui/components"
	"github.com/theirongolddev/snowball/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	cfg := loadConfigOrDefault()

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)

	type field struct {
		label string
		value string
	}

	budget := []field{
		{"Groceries per pay", cli.FormatMoney(a.state.Settings.Groceries)},
		{"Buffer per pay", cli.FormatMoney(a.state.Settings.Buffer)},
		{"Lump-sum rule", strconv.Itoa(a.state.Settings.LumpRule) + "%"},
		{"Pay cycle", fmt.Sprintf("%d days", a.cycleDays)},
		{"Theme", theme.Active.Name},
	}
	files := []field{
		{"Config file", config.Path()},
		{"Data file", config.DataFile(cfg)},
		{"Log level", config.LogLevel(cfg)},
	}
	if files[1].value == "" {
		files[1].value = "(default)"
	}

	render := func(fields []field) string {
		var b strings.Builder
		for i, f := range fields {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(labelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")))
			b.WriteString(valueStyle.Render(f.value))
		}
		return b.String()
	}

	body := render(budget) + "\n\n" + accentStyle.Render("[Enter] edit settings")

	return components.ContentCard("Settings", body, cw) + "\n" +
		components.ContentCard("Files", render(files), cw)
}
