package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/snowball/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var blocks = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	peak := 0.0
	for _, v := range values {
		peak = math.Max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	style := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

	var buf strings.Builder
	buf.Grow(len(values) * 3)
	for _, v := range values {
		idx := 1 + int(v/peak*float64(len(blocks)-2))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 1 {
			idx = 1
		}
		buf.WriteRune(blocks[idx])
	}

	return style.Render(buf.String())
}

// sample picks n evenly spaced values, always keeping the first and last.
func sample(values []float64, n int) []float64 {
	if n >= len(values) || n < 2 {
		return values
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = values[i*(len(values)-1)/(n-1)]
	}
	return out
}

// BalanceChart renders a column chart of a shrinking balance, one column
// per pay cycle, starting from the current total.
func BalanceChart(start float64, balances []float64, width, height int) string {
	if len(balances) == 0 {
		return ""
	}
	t := theme.Active

	values := append([]float64{start}, balances...)

	top := 0.0
	for _, v := range values {
		top = math.Max(top, v)
	}
	if top <= 0 {
		top = 1
	}

	topLabel := AxisMoney(top)
	labelW := len(topLabel)
	if labelW < 2 {
		labelW = 2
	}

	chartW := width - labelW - 1
	if chartW < 4 {
		chartW = 4
	}
	values = sample(values, chartW)
	colW := chartW / len(values)
	if colW > 3 {
		colW = 3
	}
	if colW < 1 {
		colW = 1
	}
	if height < 2 {
		height = 2
	}

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	barStyle := lipgloss.NewStyle().Foreground(t.Blue).Background(t.Surface)
	clearStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)

	var b strings.Builder
	for row := height; row >= 1; row-- {
		label := ""
		if row == height {
			label = topLabel
		}
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", labelW, label)))
		b.WriteString(axisStyle.Render("│"))

		rowTop := top * float64(row) / float64(height)
		rowBottom := top * float64(row-1) / float64(height)
		for _, v := range values {
			cell := " "
			switch {
			case v >= rowTop:
				cell = string(blocks[8])
			case v > rowBottom:
				idx := int((v - rowBottom) / (rowTop - rowBottom) * 8)
				cell = string(blocks[max(1, min(idx, 8))])
			}
			b.WriteString(barStyle.Render(strings.Repeat(cell, colW)))
		}
		b.WriteString("\n")
	}

	axisLen := colW * len(values)
	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", labelW, "0")))
	b.WriteString(axisStyle.Render("└" + strings.Repeat("─", axisLen)))
	b.WriteString("\n")

	right := fmt.Sprintf("%d pays", len(balances))
	if balances[len(balances)-1] <= 0.01 {
		right = "debt free"
	}
	gap := axisLen - len("now") - len(right)
	if gap < 1 {
		gap = 1
	}
	b.WriteString(axisStyle.Render(strings.Repeat(" ", labelW+1) + "now" + strings.Repeat(" ", gap)))
	if right == "debt free" {
		b.WriteString(clearStyle.Render(right))
	} else {
		b.WriteString(axisStyle.Render(right))
	}

	return b.String()
}

// AxisMoney formats a dollar amount compactly for chart axes,
// e.g. 950 -> "$950", 12500 -> "$12.5k".
func AxisMoney(v float64) string {
	switch {
	case v >= 1e6:
		return fmt.Sprintf("$%.1fM", v/1e6)
	case v >= 1e4:
		return fmt.Sprintf("$%.0fk", v/1e3)
	case v >= 1e3:
		return fmt.Sprintf("$%.1fk", v/1e3)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}
