package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/snowball/internal/cli"
	"github.com/theirongolddev/snowball/internal/model"
	"github.com/theirongolddev/snowball/internal/tui/components"
	"github.com/theirongolddev/snowball/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderPlanTab(cw int) string {
	if a.result == nil {
		return a.renderPlanEmpty(cw)
	}
	r := *a.result

	var b strings.Builder
	b.WriteString(components.MetricCardRow(planMetrics(r), cw))
	b.WriteString("\n")

	compact := a.isCompactLayout()
	half := components.LayoutRow(cw, 2)
	leftW, rightW := half[0], half[1]
	if compact {
		leftW, rightW = cw, cw
	}

	bills := components.ContentCard(
		fmt.Sprintf("Bills due before %s", cli.FormatDate(r.NextPayDate)),
		renderBillsDue(r.BillsDue, components.CardInnerWidth(leftW)), leftW)
	payments := components.ContentCard("Payments this pay",
		renderPayments(r.Allocations, components.CardInnerWidth(leftW)), leftW)
	forecast := components.ContentCard("Payoff forecast (no interest)",
		renderForecast(r, components.CardInnerWidth(rightW)), rightW)
	health := components.ContentCard("Health", renderHealth(r.Issues), rightW)

	if compact {
		b.WriteString(health + "\n" + payments + "\n" + bills + "\n" + forecast)
		return b.String()
	}

	b.WriteString(components.CardRow([]string{payments, health}))
	b.WriteString("\n")
	b.WriteString(components.CardRow([]string{bills, forecast}))
	return b.String()
}

func (a App) renderPlanEmpty(cw int) string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	accent := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)

	var total, mins float64
	for _, d := range a.state.Debts {
		total += d.Balance
		mins += d.MinimumPayment
	}

	metrics := []components.Metric{
		{Label: "Total debt", Value: cli.FormatMoney(total), Note: fmt.Sprintf("%d debts", len(a.state.Debts))},
		{Label: "Minimums per pay", Value: cli.FormatMoney(mins)},
		{Label: "Groceries + buffer", Value: cli.FormatMoney(a.state.Settings.Groceries + a.state.Settings.Buffer)},
	}

	body := muted.Render("No paycheck entered yet.") + "\n\n" +
		muted.Render("Press ") + accent.Render("p") +
		muted.Render(" to enter a paycheck and build this pay's snowball plan.")

	return components.MetricCardRow(metrics, cw) + "\n" + components.ContentCard("Plan", body, cw)
}

func planMetrics(r model.PlanResult) []components.Metric {
	avail := components.Metric{
		Label: "Available for debt",
		Value: cli.FormatMoney(r.AvailableForDebt),
		Note:  "minimums " + cli.FormatMoney(r.MinimumsTotal),
		Tone:  components.ToneGood,
	}
	if r.AvailableForDebt < r.MinimumsTotal {
		avail.Tone = components.ToneBad
	}

	extra := components.Metric{Label: "Extra to snowball", Value: cli.FormatMoney(r.Extra), Tone: components.ToneAccent}
	if len(r.Allocations) > 0 {
		extra.Note = "to " + r.Allocations[0].Name
	}

	free := components.Metric{Label: "Debt free", Value: "-", Note: "beyond forecast"}
	if r.Forecast.DebtFree != nil {
		free.Value = cli.FormatDate(*r.Forecast.DebtFree)
		free.Note = fmt.Sprintf("in %d pays", len(r.Forecast.Balances))
		free.Tone = components.ToneGood
		if !r.Forecast.Cleared() {
			free.Note = "partial forecast"
			free.Tone = components.ToneAccent
		}
	} else if len(r.Allocations) == 0 {
		free.Value = "now"
		free.Note = "no balances"
		free.Tone = components.ToneGood
	}

	protected := components.Metric{
		Label: "Protected",
		Value: cli.FormatMoney(r.ProtectedTotal),
		Note:  "bills " + cli.FormatMoney(r.BillsDue.Total),
	}
	if r.ProtectedTotal > r.Pay {
		protected.Tone = components.ToneBad
	}

	return []components.Metric{
		{Label: "Pay", Value: cli.FormatMoney(r.Pay), Note: cli.FormatDate(r.RunDate)},
		protected,
		avail,
		extra,
		free,
	}
}

func renderBillsDue(bd model.BillsDue, innerW int) string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	if len(bd.Items) == 0 {
		return muted.Render("Nothing due this cycle.")
	}

	titles := []string{"Bill", "Due", "Amount"}
	rows := make([][]string, 0, len(bd.Items))
	for _, it := range bd.Items {
		rows = append(rows, []string{it.Name, it.Due.String(), cli.FormatMoney(it.Amount)})
	}
	widths := columnWidths(titles, rows)
	left := map[int]bool{1: true}

	var b strings.Builder
	b.WriteString(tableHeader(titles, widths, left))
	for _, row := range rows {
		b.WriteString("\n")
		b.WriteString(tableRow(row, widths, left, false, innerW))
	}
	b.WriteString("\n")
	b.WriteString(tableRow([]string{"Total", "", cli.FormatMoney(bd.Total)}, widths, left, false, innerW))
	return b.String()
}

func renderPayments(allocs []model.Allocation, innerW int) string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	if len(allocs) == 0 {
		return muted.Render("No debts with a balance.")
	}

	labelW := 0
	for _, al := range allocs {
		labelW = max(labelW, len(al.Name))
	}
	labelW = min(labelW, 20)

	barW := innerW - labelW - 36
	if barW < 8 {
		barW = 8
	}

	var b strings.Builder
	var total float64
	for i, al := range allocs {
		pct := 0.0
		if al.Balance > 0 {
			pct = al.Payment / al.Balance
		}
		note := fmt.Sprintf("%s → %s", cli.FormatMoney(al.Payment), cli.FormatMoney(al.NewBalance()))
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(components.PayoffBar(al.Name, pct, note, labelW, barW))
		total += al.Payment
	}
	b.WriteString("\n\n")
	b.WriteString(muted.Render("Total to debt  ") + value.Render(cli.FormatMoney(total)))
	return b.String()
}

func renderForecast(r model.PlanResult, innerW int) string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	warn := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)

	fc := r.Forecast
	if len(fc.Payoffs) == 0 {
		if len(r.Allocations) == 0 {
			return muted.Render("Nothing to forecast.")
		}
		return warn.Render("Forecast unavailable.")
	}

	titles := []string{"Debt", "Paid off", "In"}
	rows := make([][]string, 0, len(fc.Payoffs))
	for _, p := range fc.Payoffs {
		days := int(p.Date.Sub(r.RunDate).Hours()/24 + 0.5)
		rows = append(rows, []string{p.Name, cli.FormatDate(p.Date), cli.FormatCycles(days/r.CycleDays, r.CycleDays)})
	}
	widths := columnWidths(titles, rows)

	var b strings.Builder
	b.WriteString(tableHeader(titles, widths, nil))
	for _, row := range rows {
		b.WriteString("\n")
		b.WriteString(tableRow(row, widths, nil, false, innerW))
	}
	if !fc.Cleared() {
		b.WriteString("\n")
		b.WriteString(warn.Render(fmt.Sprintf("Not every debt clears within %d pays.", len(fc.Balances))))
	}

	var start float64
	for _, al := range r.Allocations {
		start += al.Balance
	}
	if chart := components.BalanceChart(start, fc.Balances, innerW, 5); chart != "" {
		b.WriteString("\n\n")
		b.WriteString(chart)
	}
	return b.String()
}

func renderHealth(issues []model.Issue) string {
	t := theme.Active
	ok := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	danger := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Bold(true)

	if len(issues) == 0 {
		return ok.Render("✓ Everything is covered. Snowball is safe.")
	}

	lines := make([]string, len(issues))
	for i, is := range issues {
		if is.Severity == model.Danger {
			lines[i] = danger.Render("✗ " + is.Message)
		} else {
			lines[i] = ok.Render("✓ " + is.Message)
		}
	}
	return strings.Join(lines, "\n")
}
