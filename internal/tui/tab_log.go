package tui

import (
	"errors"
	"strconv"
	"strings"

	"github.com/theirongolddev/snowball/internal/cli"
	"github.com/theirongolddev/snowball/internal/store"
	"github.com/theirongolddev/snowball/internal/tui/components"
	"github.com/theirongolddev/snowball/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	log "github.com/sirupsen/logrus"
)

func (a App) updateLogKey(key string) (tea.Model, tea.Cmd) {
	if key == "D" || key == "delete" {
		a.deleteSelectedRun()
		return a, nil
	}
	a.logCursor = moveCursor(key, a.logCursor, len(a.state.Log))
	return a, nil
}

func (a *App) deleteSelectedRun() {
	if len(a.state.Log) == 0 {
		return
	}
	id := a.state.Log[a.logCursor].ID
	if err := a.store.DeleteLog(id); err != nil && !errors.Is(err, store.ErrNotFound) {
		log.WithError(err).Error("deleting run")
		a.setStatus("Delete failed: "+err.Error(), true)
		return
	}
	a.state.Log = append(a.state.Log[:a.logCursor:a.logCursor], a.state.Log[a.logCursor+1:]...)
	a.logCursor = moveCursor("", a.logCursor, len(a.state.Log))
	a.setStatus("Run removed", false)
}

func (a App) renderLogTab(cw int) string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	innerW := components.CardInnerWidth(cw)

	var totalExtra, totalPay float64
	extras := make([]float64, len(a.state.Log))
	for i, e := range a.state.Log {
		totalExtra += e.Extra
		totalPay += e.Pay
		extras[i] = e.Extra
	}

	metrics := []components.Metric{
		{Label: "Saved runs", Value: strconv.Itoa(len(a.state.Log))},
		{Label: "Total pay", Value: cli.FormatMoney(totalPay)},
		{Label: "Total extra snowballed", Value: cli.FormatMoney(totalExtra), Tone: components.ToneGood,
			Note: components.Sparkline(extras, t.Green)},
	}

	var body strings.Builder
	if len(a.state.Log) == 0 {
		body.WriteString(muted.Render("No saved runs. Plan a paycheck with p, then press s."))
	} else {
		titles := []string{"Date", "Pay", "Bills", "Groceries", "Extra", "Target", "Target pay"}
		rows := make([][]string, len(a.state.Log))
		for i, e := range a.state.Log {
			target := e.Target
			if target == "" {
				target = "-"
			}
			rows[i] = []string{
				cli.FormatDate(e.RunDate),
				cli.FormatMoney(e.Pay),
				cli.FormatMoney(e.Bills),
				cli.FormatMoney(e.Groceries),
				cli.FormatMoney(e.Extra),
				target,
				cli.FormatMoney(e.TargetPayment),
			}
		}
		widths := columnWidths(titles, rows)
		left := map[int]bool{5: true}

		body.WriteString(tableHeader(titles, widths, left))
		for i, row := range rows {
			body.WriteString("\n")
			body.WriteString(tableRow(row, widths, left, i == a.logCursor, innerW))
		}
	}
	body.WriteString("\n\n")
	body.WriteString(muted.Render("[j/k] select  [D] delete  ·  [s] on any tab saves the current plan"))

	return components.MetricCardRow(metrics, cw) + "\n" + components.ContentCard("Run log", body.String(), cw)
}
