package cli

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/snowball/internal/model"
)

// RenderIssues renders budget-health issues, or the all-clear line when
// there are none.
func RenderIssues(issues []model.Issue) string {
	if len(issues) == 0 {
		return "  " + okStyle.Render("Everything is covered. Snowball is safe.") + "\n"
	}

	var b strings.Builder
	for _, is := range issues {
		line := "• " + is.Message
		switch is.Severity {
		case model.Danger:
			line = dangerStyle.Render(line)
		default:
			line = okStyle.Render(line)
		}
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// BillsTable builds the "bills due before next pay" table.
func BillsTable(bd model.BillsDue) Table {
	rows := make([][]string, 0, len(bd.Items)+2)
	for _, it := range bd.Items {
		rows = append(rows, []string{it.Name, it.Due.String(), FormatMoney(it.Amount)})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"TOTAL", "", FormatMoney(bd.Total)})

	return Table{
		Title:   "Bills due before next pay",
		Headers: []string{"Bill", "Due", "Amount"},
		Rows:    rows,
	}
}

// AllocationTable builds the "debt payments this pay" table.
func AllocationTable(allocs []model.Allocation) Table {
	rows := make([][]string, 0, len(allocs)+2)
	var total float64
	for _, a := range allocs {
		rows = append(rows, []string{
			a.Name,
			FormatMoney(a.Balance),
			FormatMoney(a.MinimumPayment),
			FormatMoney(a.Payment),
			FormatMoney(a.NewBalance()),
		})
		total += a.Payment
	}
	if len(allocs) > 0 {
		rows = append(rows, []string{"---"})
		rows = append(rows, []string{"TOTAL", "", "", FormatMoney(total), ""})
	}

	return Table{
		Title:   "Debt payments this pay",
		Headers: []string{"Card", "Balance", "Min", "Pay", "New balance"},
		Rows:    rows,
	}
}

// ForecastTable builds the payoff forecast table.
func ForecastTable(r model.PlanResult) Table {
	rows := make([][]string, 0, len(r.Forecast.Payoffs))
	for _, p := range r.Forecast.Payoffs {
		cycles := 0
		if r.CycleDays > 0 {
			cycles = int(p.Date.Sub(r.RunDate).Hours()/24+0.5) / r.CycleDays
		}
		rows = append(rows, []string{p.Name, FormatDate(p.Date), FormatCycles(cycles, r.CycleDays)})
	}

	return Table{
		Title:   "Approx payoff forecast (no interest)",
		Headers: []string{"Card", "Payoff date", "In"},
		Rows:    rows,
	}
}

// RenderPlan renders a full plan report.
func RenderPlan(r model.PlanResult) string {
	var b strings.Builder

	b.WriteString(RenderTitle(fmt.Sprintf("SNOWBALL PLAN  %s → %s", FormatDate(r.RunDate), FormatDate(r.NextPayDate))))
	b.WriteString("\n\n")

	b.WriteString(RenderTable(Table{
		Headers: []string{"Summary", "Amount"},
		Rows: [][]string{
			{"Pay", FormatMoney(r.Pay)},
			{"---"},
			{"Bills due", FormatMoney(r.BillsDue.Total)},
			{"Groceries", FormatMoney(r.Groceries)},
			{"Buffer", FormatMoney(r.Buffer)},
			{"Protected", FormatMoney(r.ProtectedTotal)},
			{"---"},
			{"Available for debt", FormatMoney(r.AvailableForDebt)},
			{"Card minimums", FormatMoney(r.MinimumsTotal)},
			{"Extra to snowball", FormatMoney(r.Extra)},
		},
	}))
	b.WriteString("\n")

	b.WriteString(RenderTable(BillsTable(r.BillsDue)))
	b.WriteString("\n")

	if len(r.Allocations) > 0 {
		b.WriteString(RenderTable(AllocationTable(r.Allocations)))
		b.WriteString("\n")

		b.WriteString("  " + headerStyle.Render("Payoff progress this pay") + "\n")
		width := 0
		for _, a := range r.Allocations {
			if len(a.Name) > width {
				width = len(a.Name)
			}
		}
		for _, a := range r.Allocations {
			pct := 0.0
			if a.Balance > 0 {
				pct = a.Payment / a.Balance
			}
			fmt.Fprintf(&b, "  %-*s  %s\n", width, a.Name, RenderProgressBar(pct, 24))
		}
		b.WriteString("\n")
	} else {
		b.WriteString("  " + mutedStyle.Render("No debts with a balance.") + "\n\n")
	}

	if r.Forecast.DebtFree != nil {
		fmt.Fprintf(&b, "  Estimated debt-free date: %s\n", okStyle.Render(FormatDate(*r.Forecast.DebtFree)))
		if !r.Forecast.Cleared() {
			b.WriteString("  " + warnStyle.Render(fmt.Sprintf("Not every debt clears within %d pays.", len(r.Forecast.Balances))) + "\n")
		}
	} else {
		b.WriteString("  " + warnStyle.Render("Forecast unavailable.") + "\n")
	}
	if len(r.Forecast.Payoffs) > 0 {
		b.WriteString(RenderTable(ForecastTable(r)))
	}
	b.WriteString("\n")

	b.WriteString(RenderIssues(r.Issues))
	return b.String()
}
