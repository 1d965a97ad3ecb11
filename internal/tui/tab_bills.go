package tui

import (
	"strconv"
	"strings"

	"github.com/theirongolddev/snowball/internal/cli"
	"github.com/theirongolddev/snowball/internal/model"
	"github.com/theirongolddev/snowball/internal/tui/components"
	"github.com/theirongolddev/snowball/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// paysPerYear converts every-pay bills to a monthly equivalent.
const paysPerYear = 26

func (a App) updateBillsKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "a":
		a.billVals = &BillValues{Frequency: string(model.Monthly), DueDay: "1"}
		cmd := a.showForm(formBillAdd, newBillForm(a.billVals))
		return a, cmd
	case "D", "delete":
		if len(a.state.Bills) == 0 {
			return a, nil
		}
		name := a.state.Bills[a.billCursor].Name
		a.state.Bills = append(a.state.Bills[:a.billCursor:a.billCursor], a.state.Bills[a.billCursor+1:]...)
		a.billCursor = moveCursor("", a.billCursor, len(a.state.Bills))
		a.persist("Removed " + name)
		return a, nil
	}
	a.billCursor = moveCursor(key, a.billCursor, len(a.state.Bills))
	return a, nil
}

// monthlyEquivalent estimates what the bill list costs per month.
func monthlyEquivalent(bills []model.Bill) float64 {
	var total float64
	for _, b := range bills {
		switch b.Frequency {
		case model.Monthly:
			total += b.Amount
		case model.Biweekly:
			total += b.Amount * paysPerYear / 12
		}
	}
	return total
}

func (a App) renderBillsTab(cw int) string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	innerW := components.CardInnerWidth(cw)

	dueNow := map[string]bool{}
	if a.result != nil {
		for _, it := range a.result.BillsDue.Items {
			dueNow[it.Name] = true
		}
	}

	metrics := []components.Metric{
		{Label: "Monthly equivalent", Value: cli.FormatMoney(monthlyEquivalent(a.state.Bills)), Tone: components.ToneAccent},
		{Label: "Bills", Value: strconv.Itoa(len(a.state.Bills))},
	}
	if a.result != nil {
		metrics = append(metrics, components.Metric{
			Label: "Due this cycle",
			Value: cli.FormatMoney(a.result.BillsDue.Total),
			Note:  "before " + cli.FormatDate(a.result.NextPayDate),
		})
	}

	var body strings.Builder
	if len(a.state.Bills) == 0 {
		body.WriteString(muted.Render("No bills. Press a to add one."))
	} else {
		titles := []string{"Name", "Amount", "Frequency", "Due", "This pay"}
		rows := make([][]string, len(a.state.Bills))
		for i, b := range a.state.Bills {
			due := "every pay"
			if b.Frequency == model.Monthly {
				due = "day " + strconv.Itoa(b.DueDay)
			}
			mark := ""
			if dueNow[b.Name] {
				mark = "●"
			}
			rows[i] = []string{b.Name, cli.FormatMoney(b.Amount), string(b.Frequency), due, mark}
		}
		widths := columnWidths(titles, rows)
		left := map[int]bool{2: true, 3: true}

		body.WriteString(tableHeader(titles, widths, left))
		for i, row := range rows {
			body.WriteString("\n")
			body.WriteString(tableRow(row, widths, left, i == a.billCursor, innerW))
		}
	}
	body.WriteString("\n\n")
	body.WriteString(muted.Render("[j/k] select  [a] add  [D] delete"))

	return components.MetricCardRow(metrics, cw) + "\n" + components.ContentCard("Bills", body.String(), cw)
}
