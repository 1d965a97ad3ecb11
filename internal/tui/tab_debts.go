package tui

import (
	"sort"
	"strconv"
	"strings"

	"github.com/theirongolddev/snowball/internal/cli"
	"github.com/theirongolddev/snowball/internal/money"
	"github.com/theirongolddev/snowball/internal/tui/components"
	"github.com/theirongolddev/snowball/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (a App) updateDebtsKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "a":
		a.debtVals = &DebtValues{}
		cmd := a.showForm(formDebtAdd, newDebtForm("Add debt", a.debtVals))
		return a, cmd
	case "e", "enter":
		if len(a.state.Debts) == 0 {
			return a, nil
		}
		vals := debtValuesFrom(a.state.Debts[a.debtCursor])
		a.debtVals = &vals
		cmd := a.showForm(formDebtEdit, newDebtForm("Edit debt", a.debtVals))
		return a, cmd
	case "D", "delete":
		if len(a.state.Debts) == 0 {
			return a, nil
		}
		name := a.state.Debts[a.debtCursor].Name
		a.state.Debts = append(a.state.Debts[:a.debtCursor:a.debtCursor], a.state.Debts[a.debtCursor+1:]...)
		a.debtCursor = moveCursor("", a.debtCursor, len(a.state.Debts))
		a.persist("Removed " + name)
		return a, nil
	}
	a.debtCursor = moveCursor(key, a.debtCursor, len(a.state.Debts))
	return a, nil
}

// snowballOrder maps each debt index to its payoff position (1 = first),
// or 0 when the debt is already cleared.
func (a App) snowballOrder() map[int]int {
	idx := make([]int, 0, len(a.state.Debts))
	for i, d := range a.state.Debts {
		if d.Balance > money.Tolerance {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(x, y int) bool {
		return a.state.Debts[idx[x]].Balance < a.state.Debts[idx[y]].Balance
	})
	order := make(map[int]int, len(idx))
	for pos, i := range idx {
		order[i] = pos + 1
	}
	return order
}

func (a App) renderDebtsTab(cw int) string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	innerW := components.CardInnerWidth(cw)

	var total, mins float64
	for _, d := range a.state.Debts {
		total += d.Balance
		mins += d.MinimumPayment
	}

	metrics := []components.Metric{
		{Label: "Total balance", Value: cli.FormatMoney(total), Tone: components.ToneAccent},
		{Label: "Minimums per pay", Value: cli.FormatMoney(mins)},
		{Label: "Debts", Value: strconv.Itoa(len(a.state.Debts))},
	}

	var body strings.Builder
	if len(a.state.Debts) == 0 {
		body.WriteString(muted.Render("No debts. Press a to add one."))
	} else {
		order := a.snowballOrder()
		titles := []string{"Name", "Balance", "Minimum", "Order", "Share of total"}
		rows := make([][]string, len(a.state.Debts))
		for i, d := range a.state.Debts {
			pos := "paid"
			if n, ok := order[i]; ok {
				pos = "#" + strconv.Itoa(n)
			}
			rows[i] = []string{d.Name, cli.FormatMoney(d.Balance), cli.FormatMoney(d.MinimumPayment), pos, ""}
		}
		widths := columnWidths(titles, rows)
		left := map[int]bool{4: true}

		body.WriteString(tableHeader(titles, widths, left))
		for i, row := range rows {
			share := 0.0
			if total > 0 {
				share = a.state.Debts[i].Balance / total
			}
			row[4] = strings.Repeat("█", int(share*float64(widths[4])+0.5))
			body.WriteString("\n")
			body.WriteString(tableRow(row, widths, left, i == a.debtCursor, innerW))
		}
	}
	body.WriteString("\n\n")
	body.WriteString(muted.Render("[j/k] select  [a] add  [e] edit  [D] delete"))

	return components.MetricCardRow(metrics, cw) + "\n" +
		components.ContentCard("Debts (smallest balance gets the extra first)", body.String(), cw)
}
