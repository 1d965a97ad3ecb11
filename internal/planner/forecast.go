package planner

import (
	"sort"
	"time"

	"github.com/theirongolddev/snowball/internal/dates"
	"github.com/theirongolddev/snowball/internal/model"
	"github.com/theirongolddev/snowball/internal/money"
)

// MaxForecastCycles bounds the payoff simulation. Without it a cycle payment
// that never outpaces the balances would loop forever.
const MaxForecastCycles = 80

type simDebt struct {
	name    string
	balance float64
	minimum float64
}

// Forecast estimates when each debt reaches zero if cyclePayment is paid
// every cycleDays days starting at runDate. It ignores interest. Each
// cycle pays every minimum, sends the rest to the smallest balance, and adds
// the minimum of every cleared debt to the amount sent to the smallest.
func Forecast(debts []model.Debt, cyclePayment float64, cycleDays int, runDate time.Time) model.Forecast {
	remaining := make([]simDebt, 0, len(debts))
	for _, d := range debts {
		remaining = append(remaining, simDebt{name: d.Name, balance: d.Balance, minimum: d.MinimumPayment})
	}

	var (
		fc       model.Forecast
		snowball float64
		current  = runDate
	)

	for cycle := 0; cycle < MaxForecastCycles && len(remaining) > 0; cycle++ {
		sort.SliceStable(remaining, func(i, j int) bool {
			return remaining[i].balance < remaining[j].balance
		})

		var minimums float64
		for _, d := range remaining {
			minimums += d.minimum
		}
		extra := money.Clamp(cyclePayment-minimums) + snowball

		for i := range remaining {
			remaining[i].balance = money.Clamp(remaining[i].balance - remaining[i].minimum)
		}
		remaining[0].balance = money.Clamp(remaining[0].balance - extra)

		current = dates.AddDays(current, cycleDays)

		// Debts clearing together are recorded largest balance first.
		for i := len(remaining) - 1; i >= 0; i-- {
			if money.IsZero(remaining[i].balance) {
				snowball += remaining[i].minimum
				fc.Payoffs = append(fc.Payoffs, model.Payoff{Name: remaining[i].name, Date: current})
			}
		}
		kept := remaining[:0]
		for _, d := range remaining {
			if !money.IsZero(d.balance) {
				kept = append(kept, d)
			}
		}
		remaining = kept

		var left float64
		for _, d := range remaining {
			left += d.balance
		}
		fc.Balances = append(fc.Balances, left)

		if cyclePayment <= money.Tolerance {
			break
		}
	}

	if len(fc.Payoffs) > 0 {
		last := fc.Payoffs[len(fc.Payoffs)-1].Date
		fc.DebtFree = &last
	}
	return fc
}
