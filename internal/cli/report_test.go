package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/snowball/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePlan() model.PlanResult {
	run := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.Local)
	debtFree := time.Date(2025, time.August, 11, 0, 0, 0, 0, time.Local)
	return model.PlanResult{
		RunDate:          run,
		NextPayDate:      time.Date(2025, time.June, 16, 0, 0, 0, 0, time.Local),
		CycleDays:        14,
		Pay:              600,
		Groceries:        250,
		ProtectedTotal:   250,
		AvailableForDebt: 350,
		MinimumsTotal:    65,
		Extra:            285,
		BillsDue: model.BillsDue{
			Items: []model.BillDue{{Name: "Car Loan", Amount: 286, Due: model.EveryPayDue}},
			Total: 286,
		},
		Allocations: []model.Allocation{
			{Name: "Capital One Gold", Balance: 300, MinimumPayment: 25, Payment: 300},
			{Name: "Simplii", Balance: 1500, MinimumPayment: 40, Payment: 50},
		},
		Forecast: model.Forecast{
			Payoffs: []model.Payoff{
				{Name: "Capital One Gold", Date: time.Date(2025, time.June, 16, 0, 0, 0, 0, time.Local)},
				{Name: "Simplii", Date: debtFree},
			},
			Balances: []float64{1450, 1100, 750, 400, 0},
			DebtFree: &debtFree,
		},
	}
}

func TestAllocationTable(t *testing.T) {
	tbl := AllocationTable(samplePlan().Allocations)

	require.Len(t, tbl.Rows, 4)
	assert.Equal(t, []string{"Capital One Gold", "$300.00", "$25.00", "$300.00", "$0.00"}, tbl.Rows[0])
	assert.Equal(t, []string{"Simplii", "$1,500.00", "$40.00", "$50.00", "$1,450.00"}, tbl.Rows[1])
	assert.Equal(t, []string{"TOTAL", "", "", "$350.00", ""}, tbl.Rows[3])
}

func TestBillsTable(t *testing.T) {
	tbl := BillsTable(samplePlan().BillsDue)
	require.Len(t, tbl.Rows, 3)
	assert.Equal(t, []string{"Car Loan", "every pay", "$286.00"}, tbl.Rows[0])
	assert.Equal(t, []string{"TOTAL", "", "$286.00"}, tbl.Rows[2])
}

func TestForecastTable(t *testing.T) {
	tbl := ForecastTable(samplePlan())
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, []string{"Capital One Gold", "2025-06-16", "2w"}, tbl.Rows[0])
	assert.Equal(t, []string{"Simplii", "2025-08-11", "2.3mo"}, tbl.Rows[1])
}

func TestRenderPlan(t *testing.T) {
	out := RenderPlan(samplePlan())

	for _, want := range []string{
		"SNOWBALL PLAN",
		"Extra to snowball",
		"$285.00",
		"Capital One Gold",
		"Estimated debt-free date",
		"2025-08-11",
		"Everything is covered",
	} {
		assert.Contains(t, out, want)
	}
}

func TestRenderPlanWithoutDebtsOrForecast(t *testing.T) {
	r := samplePlan()
	r.Allocations = nil
	r.Forecast = model.Forecast{}
	r.Issues = []model.Issue{{Severity: model.Danger, Message: "Bills + groceries + buffer ($250.00) exceed pay ($200.00)."}}

	out := RenderPlan(r)
	assert.Contains(t, out, "No debts with a balance.")
	assert.Contains(t, out, "Forecast unavailable.")
	assert.Contains(t, out, "exceed pay")
	assert.False(t, strings.Contains(out, "Everything is covered"))
}

func TestRenderPlanPartialForecast(t *testing.T) {
	r := samplePlan()
	r.Forecast.Payoffs = r.Forecast.Payoffs[:1]
	first := r.Forecast.Payoffs[0].Date
	r.Forecast.DebtFree = &first
	r.Forecast.Balances = []float64{1450, 1400}

	out := RenderPlan(r)
	assert.Contains(t, out, "Estimated debt-free date: 2025-06-16")
	assert.Contains(t, out, "Not every debt clears within 2 pays.")
	assert.NotContains(t, out, "Forecast unavailable.")
}

func TestRenderTableAlignsColumns(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Name", "Amount"},
		Rows:    [][]string{{"a", "$1.00"}, {"---"}, {"longer", "$10.00"}},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 7)
	assert.Contains(t, lines[3], "a")
	assert.Contains(t, lines[3], "$1.00")
}
