package planner

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/theirongolddev/snowball/internal/dates"
	"github.com/theirongolddev/snowball/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation(dates.ISO, s, time.Local)
	require.NoError(t, err)
	return d
}

func sampleDebts() []model.Debt {
	return []model.Debt{
		{Name: "Simplii", Balance: 1500, MinimumPayment: 40},
		{Name: "Capital One Gold", Balance: 300, MinimumPayment: 25},
	}
}

func TestBillsDue(t *testing.T) {
	bills := []model.Bill{
		{Name: "Rent", Amount: 1650, Frequency: model.Monthly, DueDay: 1},
		{Name: "Rogers", Amount: 264.83, Frequency: model.Monthly, DueDay: 23},
		{Name: "Car Loan", Amount: 286, Frequency: model.Biweekly},
		{Name: "Capital One", Amount: 300, Frequency: model.Monthly, DueDay: 18},
		{Name: "Belair Direct", Amount: 226, Frequency: model.Monthly, DueDay: 28},
		{Name: "Broken low", Amount: 5, Frequency: model.Monthly, DueDay: 0},
		{Name: "Broken high", Amount: 5, Frequency: model.Monthly, DueDay: 32},
		{Name: "Yearly", Amount: 99, Frequency: "yearly", DueDay: 20},
	}

	got := BillsDue(bills, mustDate(t, "2025-06-10"), mustDate(t, "2025-06-24"))

	require.Len(t, got.Items, 3)
	assert.Equal(t, "Capital One", got.Items[0].Name)
	assert.Equal(t, "2025-06-18", got.Items[0].Due.String())
	assert.Equal(t, "Rogers", got.Items[1].Name)
	assert.Equal(t, "2025-06-23", got.Items[1].Due.String())
	assert.Equal(t, "Car Loan", got.Items[2].Name)
	assert.Equal(t, "every pay", got.Items[2].Due.String())
	assert.InDelta(t, 300+264.83+286, got.Total, eps)
}

func TestBillsDueWindowEdgesAreInclusive(t *testing.T) {
	bills := []model.Bill{
		{Name: "Start", Amount: 10, Frequency: model.Monthly, DueDay: 10},
		{Name: "End", Amount: 20, Frequency: model.Monthly, DueDay: 24},
	}
	got := BillsDue(bills, mustDate(t, "2025-06-10").Add(15*time.Hour), mustDate(t, "2025-06-24"))
	require.Len(t, got.Items, 2)
	assert.InDelta(t, 30, got.Total, eps)
}

func TestBillsDueClampsShortMonths(t *testing.T) {
	bills := []model.Bill{{Name: "Month end", Amount: 50, Frequency: model.Monthly, DueDay: 31}}
	got := BillsDue(bills, mustDate(t, "2025-04-20"), mustDate(t, "2025-05-04"))
	require.Len(t, got.Items, 1)
	assert.Equal(t, "2025-04-30", got.Items[0].Due.String())
}

func TestBillsDueBiweeklyAlwaysIncluded(t *testing.T) {
	bills := []model.Bill{
		{Name: "Easy Financial", Amount: 182, Frequency: model.Biweekly},
		{Name: "Car Loan", Amount: 286, Frequency: model.Biweekly, DueDay: 99},
	}
	run := mustDate(t, "2025-06-10")

	for _, next := range []time.Time{run, dates.AddDays(run, 1), dates.AddDays(run, 60), dates.AddDays(run, -5)} {
		got := BillsDue(bills, run, next)
		require.Len(t, got.Items, 2)
		assert.Equal(t, "Easy Financial", got.Items[0].Name, "input order kept among every-pay bills")
		assert.InDelta(t, 468, got.Total, eps)
	}
}

func TestBillsDueInvertedWindowMatchesNoMonthlyBills(t *testing.T) {
	bills := []model.Bill{{Name: "Rent", Amount: 1650, Frequency: model.Monthly, DueDay: 12}}
	got := BillsDue(bills, mustDate(t, "2025-06-10"), mustDate(t, "2025-06-01"))
	assert.Empty(t, got.Items)
	assert.Zero(t, got.Total)
}

func TestActiveDebtsFiltersAndSorts(t *testing.T) {
	debts := []model.Debt{
		{Name: "B", Balance: 500},
		{Name: "paid", Balance: 0.01},
		{Name: "A", Balance: 500},
		{Name: "tiny", Balance: 0.02},
	}
	got := ActiveDebts(debts)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"tiny", "B", "A"}, []string{got[0].Name, got[1].Name, got[2].Name})
	assert.Equal(t, "B", debts[0].Name, "input must not be reordered")
}

func TestAllocateCapsAndCarries(t *testing.T) {
	res := Allocate(sampleDebts(), 350)

	assert.InDelta(t, 65, res.MinimumsTotal, eps)
	assert.InDelta(t, 285, res.Extra, eps)
	require.Len(t, res.Allocations, 2)

	assert.Equal(t, "Capital One Gold", res.Allocations[0].Name)
	assert.InDelta(t, 300, res.Allocations[0].Payment, eps)
	assert.Equal(t, "Simplii", res.Allocations[1].Name)
	assert.InDelta(t, 50, res.Allocations[1].Payment, eps)
	assert.Zero(t, res.Surplus)
}

func TestAllocateSurplusWhenEverythingIsPaid(t *testing.T) {
	debts := []model.Debt{
		{Name: "A", Balance: 100, MinimumPayment: 10},
		{Name: "B", Balance: 50, MinimumPayment: 50},
	}
	res := Allocate(debts, 600)

	require.Len(t, res.Allocations, 2)
	assert.InDelta(t, 50, res.Allocations[0].Payment, eps)
	assert.InDelta(t, 100, res.Allocations[1].Payment, eps)
	assert.InDelta(t, 450, res.Surplus, eps)
}

func TestAllocateKeepsMinimumsWhenUnderfunded(t *testing.T) {
	res := Allocate(sampleDebts(), 30)

	assert.Zero(t, res.Extra)
	require.Len(t, res.Allocations, 2)
	assert.InDelta(t, 25, res.Allocations[0].Payment, eps)
	assert.InDelta(t, 40, res.Allocations[1].Payment, eps)
}

func TestAllocateMinimumAboveBalanceIsCapped(t *testing.T) {
	debts := []model.Debt{
		{Name: "Almost done", Balance: 15, MinimumPayment: 25},
		{Name: "Big", Balance: 900, MinimumPayment: 30},
	}
	res := Allocate(debts, 55)

	assert.InDelta(t, 15, res.Allocations[0].Payment, eps)
	assert.InDelta(t, 40, res.Allocations[1].Payment, eps)
	assert.Zero(t, res.Surplus)
}

func TestAllocateEmpty(t *testing.T) {
	res := Allocate(nil, 500)
	assert.Empty(t, res.Allocations)
	assert.Zero(t, res.Surplus)
	assert.InDelta(t, 500, res.Extra, eps)
}

func TestAllocateInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 500; i++ {
		n := rng.Intn(6)
		debts := make([]model.Debt, n)
		for j := range debts {
			debts[j] = model.Debt{
				Balance:        math.Round(rng.Float64()*200000) / 100,
				MinimumPayment: math.Round(rng.Float64()*20000) / 100,
			}
		}
		available := math.Round(rng.Float64()*300000) / 100

		res := Allocate(debts, available)

		var paid float64
		for _, a := range res.Allocations {
			require.GreaterOrEqual(t, a.Payment, 0.0)
			require.LessOrEqual(t, a.Payment, a.Balance)
			paid += a.Payment
		}

		if res.Surplus > 0 {
			last := res.Allocations[len(res.Allocations)-1]
			assert.Equal(t, last.Balance, last.Payment, "surplus only leaves a fully paid last debt")
			assert.InDelta(t, res.MinimumsTotal+res.Extra, paid+res.Surplus, 1e-6)
		} else {
			assert.InDelta(t, res.MinimumsTotal+res.Extra, paid, 0.0100001)
		}
	}
}

func TestForecastSnowball(t *testing.T) {
	run := mustDate(t, "2025-06-02")
	fc := Forecast(ActiveDebts(sampleDebts()), 350, 14, run)

	require.Len(t, fc.Payoffs, 2)
	assert.Equal(t, "Capital One Gold", fc.Payoffs[0].Name)
	assert.Equal(t, "2025-06-16", fc.Payoffs[0].Date.Format(dates.ISO))
	assert.Equal(t, "Simplii", fc.Payoffs[1].Name)
	assert.Equal(t, "2025-08-11", fc.Payoffs[1].Date.Format(dates.ISO))
	require.NotNil(t, fc.DebtFree)
	assert.Equal(t, fc.Payoffs[1].Date, *fc.DebtFree)
	assert.True(t, fc.Cleared())

	require.Len(t, fc.Balances, 5)
	for i, want := range []float64{1460, 1085, 710, 335, 0} {
		assert.InDelta(t, want, fc.Balances[i], 1e-6, "cycle %d", i+1)
	}
}

func TestForecastReordersAsBalancesShrink(t *testing.T) {
	debts := []model.Debt{
		{Name: "Fast", Balance: 400, MinimumPayment: 200},
		{Name: "Slow", Balance: 300, MinimumPayment: 10},
	}
	fc := Forecast(ActiveDebts(debts), 210, 7, mustDate(t, "2025-01-01"))

	require.Len(t, fc.Payoffs, 2)
	assert.Equal(t, "Fast", fc.Payoffs[0].Name)
	assert.Equal(t, "2025-01-15", fc.Payoffs[0].Date.Format(dates.ISO))
	assert.Equal(t, "Slow", fc.Payoffs[1].Name)
}

func TestForecastNoProgressStopsAfterOneCycle(t *testing.T) {
	debts := []model.Debt{{Name: "Stuck", Balance: 1000}}
	fc := Forecast(debts, 0, 14, mustDate(t, "2025-01-01"))
	assert.Empty(t, fc.Payoffs)
	assert.Nil(t, fc.DebtFree)
}

func TestForecastIsBounded(t *testing.T) {
	debts := []model.Debt{
		{Name: "Small", Balance: 20, MinimumPayment: 10},
		{Name: "Huge", Balance: 1_000_000, MinimumPayment: 10},
	}
	fc := Forecast(ActiveDebts(debts), 20, 14, mustDate(t, "2025-01-01"))

	require.Len(t, fc.Payoffs, 1)
	assert.Equal(t, "Small", fc.Payoffs[0].Name)
	assert.Equal(t, "2025-01-29", fc.Payoffs[0].Date.Format(dates.ISO))
	require.NotNil(t, fc.DebtFree, "last payoff found is still reported")
	assert.Equal(t, fc.Payoffs[0].Date, *fc.DebtFree)
	assert.False(t, fc.Cleared())
	assert.Len(t, fc.Balances, MaxForecastCycles)
}

func TestForecastSameCycleClearsLargestFirst(t *testing.T) {
	debts := []model.Debt{
		{Name: "A", Balance: 10, MinimumPayment: 10},
		{Name: "B", Balance: 20, MinimumPayment: 20},
	}
	fc := Forecast(ActiveDebts(debts), 30, 14, mustDate(t, "2025-01-01"))

	require.Len(t, fc.Payoffs, 2)
	assert.Equal(t, "B", fc.Payoffs[0].Name)
	assert.Equal(t, "A", fc.Payoffs[1].Name)
	assert.Equal(t, fc.Payoffs[0].Date, fc.Payoffs[1].Date)
	assert.True(t, fc.Cleared())
}

func TestForecastEmpty(t *testing.T) {
	fc := Forecast(nil, 500, 14, mustDate(t, "2025-01-01"))
	assert.Empty(t, fc.Payoffs)
	assert.Nil(t, fc.DebtFree)
}

func TestForecastTerminatesWhenPaymentExceedsMinimums(t *testing.T) {
	debts := model.DefaultDebts()
	res := Allocate(debts, MinimumsTotal(debts)+400)

	var total float64
	for _, a := range res.Allocations {
		total += a.Payment
	}
	fc := Forecast(res.Debts, total, 14, mustDate(t, "2025-01-01"))

	require.Len(t, fc.Payoffs, len(debts))
	require.NotNil(t, fc.DebtFree)
	assert.False(t, fc.DebtFree.After(dates.AddDays(mustDate(t, "2025-01-01"), 14*MaxForecastCycles)))
}

func TestComputeScenarioCovered(t *testing.T) {
	res := Compute(Input{
		Settings:  model.Settings{Groceries: 250},
		Debts:     sampleDebts(),
		Pay:       600,
		RunDate:   mustDate(t, "2025-06-02").Add(12 * time.Hour),
		CycleDays: 14,
	})

	assert.Equal(t, "2025-06-02", res.RunDate.Format(dates.ISO))
	assert.Equal(t, "2025-06-16", res.NextPayDate.Format(dates.ISO))
	assert.InDelta(t, 250, res.ProtectedTotal, eps)
	assert.InDelta(t, 350, res.AvailableForDebt, eps)
	assert.InDelta(t, 65, res.MinimumsTotal, eps)
	assert.InDelta(t, 285, res.Extra, eps)
	require.Len(t, res.Allocations, 2)
	assert.InDelta(t, 300, res.Allocations[0].Payment, eps)
	assert.InDelta(t, 50, res.Allocations[1].Payment, eps)
	assert.Empty(t, res.Issues)
	assert.False(t, res.HasDanger())
	assert.Len(t, res.Forecast.Payoffs, 2)
}

func TestComputeScenarioPayTooSmall(t *testing.T) {
	res := Compute(Input{
		Settings: model.Settings{Groceries: 250},
		Debts:    sampleDebts(),
		Pay:      200,
		RunDate:  mustDate(t, "2025-06-02"),
	})

	require.Len(t, res.Issues, 1)
	assert.Equal(t, model.Danger, res.Issues[0].Severity)
	assert.Equal(t, "Bills + groceries + buffer ($250.00) exceed pay ($200.00).", res.Issues[0].Message)
	assert.Zero(t, res.AvailableForDebt)
	assert.Zero(t, res.Extra)
	require.Len(t, res.Allocations, 2)
	assert.InDelta(t, 25, res.Allocations[0].Payment, eps)
	assert.InDelta(t, 40, res.Allocations[1].Payment, eps)
}

func TestComputeMinimumsNotCovered(t *testing.T) {
	res := Compute(Input{
		Settings: model.Settings{Groceries: 250},
		Debts:    sampleDebts(),
		Pay:      300,
		RunDate:  mustDate(t, "2025-06-02"),
	})

	require.Len(t, res.Issues, 1)
	assert.Equal(t, model.Danger, res.Issues[0].Severity)
	assert.Contains(t, res.Issues[0].Message, "card minimums ($65.00) are not covered")
	assert.InDelta(t, 50, res.AvailableForDebt, eps)
}

func TestComputeToleratesSubCentShortfall(t *testing.T) {
	res := Compute(Input{
		Settings: model.Settings{Groceries: 250},
		Pay:      249.995,
		RunDate:  mustDate(t, "2025-06-02"),
	})
	assert.Empty(t, res.Issues)
}

func TestComputeSurplusIssue(t *testing.T) {
	res := Compute(Input{
		Debts:   []model.Debt{{Name: "Last card", Balance: 100, MinimumPayment: 10}},
		Pay:     500,
		RunDate: mustDate(t, "2025-06-02"),
	})

	require.Len(t, res.Issues, 1)
	assert.Equal(t, model.OK, res.Issues[0].Severity)
	assert.Equal(t, "All listed debts would be paid off with $400.00 left over.", res.Issues[0].Message)
	assert.InDelta(t, 400, res.Surplus, eps)
}

func TestComputeDefaultsAndClamping(t *testing.T) {
	res := Compute(Input{
		Settings: model.Settings{Groceries: -20, Buffer: math.NaN()},
		Debts:    []model.Debt{{Name: "Negative", Balance: -50, MinimumPayment: -5}},
		Bills:    []model.Bill{{Name: "Every pay", Amount: -10, Frequency: "BIWEEKLY"}},
		Pay:      -100,
		RunDate:  mustDate(t, "2025-06-02"),
	})

	assert.Equal(t, DefaultCycleDays, res.CycleDays)
	assert.Equal(t, "2025-06-16", res.NextPayDate.Format(dates.ISO))
	assert.Zero(t, res.Pay)
	assert.Zero(t, res.ProtectedTotal)
	require.Len(t, res.BillsDue.Items, 1)
	assert.Zero(t, res.BillsDue.Items[0].Amount)
	assert.Empty(t, res.Allocations)
	assert.Empty(t, res.Issues)
	assert.Empty(t, res.Forecast.Payoffs)
	assert.Nil(t, res.Forecast.DebtFree)
}

func TestComputeIncludesBillsInProtectedTotal(t *testing.T) {
	res := Compute(Input{
		Settings: model.Settings{Groceries: 250, Buffer: 50},
		Bills: []model.Bill{
			{Name: "Car Loan", Amount: 286, Frequency: model.Biweekly},
			{Name: "Capital One", Amount: 300, Frequency: model.Monthly, DueDay: 18},
			{Name: "Rent", Amount: 1650, Frequency: model.Monthly, DueDay: 1},
		},
		Pay:       2000,
		RunDate:   mustDate(t, "2025-06-10"),
		CycleDays: 14,
	})

	assert.InDelta(t, 586, res.BillsDue.Total, eps)
	assert.InDelta(t, 886, res.ProtectedTotal, eps)
	assert.InDelta(t, 1114, res.AvailableForDebt, eps)
}
