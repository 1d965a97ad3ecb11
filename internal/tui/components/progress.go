package components

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/snowball/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ColorForPayoff returns a color for how much of a balance a payment clears:
// the closer to fully paid, the greener.
func ColorForPayoff(pct float64) string {
	t := theme.Active
	switch {
	case pct >= 0.999:
		return string(t.GreenBright)
	case pct >= 0.5:
		return string(t.Green)
	case pct >= 0.1:
		return string(t.Yellow)
	default:
		return string(t.TextMuted)
	}
}

func clampPct(pct float64) float64 {
	if pct < 0 || pct != pct {
		return 0
	}
	if pct > 1 {
		return 1
	}
	return pct
}

// ProgressBar renders a simple block bar with a percentage.
func ProgressBar(pct float64, width int) string {
	t := theme.Active
	pct = clampPct(pct)

	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}

	barColor := lipgloss.Color(ColorForPayoff(pct))
	filledStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	b.WriteString(filledStyle.Render(strings.Repeat("█", filled)))
	b.WriteString(emptyStyle.Render(strings.Repeat("░", width-filled)))

	return b.String() + spaceStyle.Render(" ") + pctStyle.Render(fmt.Sprintf("%.0f%%", pct*100))
}

// PayoffBar renders a labeled bar showing the share of a balance this
// pay clears, followed by a right-hand note such as the new balance.
func PayoffBar(label string, pct float64, note string, labelW, barWidth int) string {
	t := theme.Active
	pct = clampPct(pct)

	bar := progress.New(
		progress.WithSolidFill(ColorForPayoff(pct)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorForPayoff(pct))).Background(t.Surface).Bold(true)
	noteStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	if len(label) > labelW {
		label = label[:labelW]
	}

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		bar.ViewAs(pct) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%3.0f%%", pct*100)) +
		spaceStyle.Render("  ") +
		noteStyle.Render(note)
}
