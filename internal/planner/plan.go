// Package planner turns a paycheck, a bill list and a debt list into a
// snowball payment plan.
//
// Everything here is a pure function of its inputs. Callers own the state
// and decide what to persist.
package planner

import (
	"fmt"
	"time"

	"github.com/theirongolddev/snowball/internal/dates"
	"github.com/theirongolddev/snowball/internal/model"
	"github.com/theirongolddev/snowball/internal/money"

	log "github.com/sirupsen/logrus"
)

// DefaultCycleDays is the pay cycle length used when none is given.
const DefaultCycleDays = 14

// Input is everything one planning run needs.
type Input struct {
	Settings  model.Settings
	Debts     []model.Debt
	Bills     []model.Bill
	Pay       float64
	RunDate   time.Time
	CycleDays int
}

// Compute builds the plan for one paycheck. It never fails: unaffordable
// budgets are reported as danger issues alongside best-effort numbers.
func Compute(in Input) model.PlanResult {
	state := model.Normalize(model.State{Settings: in.Settings, Debts: in.Debts, Bills: in.Bills})

	cycle := in.CycleDays
	if cycle <= 0 {
		cycle = DefaultCycleDays
	}
	runDate := dates.TruncateToDay(in.RunDate)
	nextPay := dates.AddDays(runDate, cycle)

	res := model.PlanResult{
		RunDate:     runDate,
		NextPayDate: nextPay,
		CycleDays:   cycle,
		Pay:         money.Clamp(in.Pay),
		Groceries:   state.Settings.Groceries,
		Buffer:      state.Settings.Buffer,
		BillsDue:    BillsDue(state.Bills, runDate, nextPay),
	}
	res.ProtectedTotal = res.Groceries + res.Buffer + res.BillsDue.Total
	res.AvailableForDebt = money.Clamp(res.Pay - res.ProtectedTotal)

	alloc := Allocate(state.Debts, res.AvailableForDebt)
	res.Allocations = alloc.Allocations
	res.MinimumsTotal = alloc.MinimumsTotal
	res.Extra = alloc.Extra
	res.Surplus = alloc.Surplus

	switch {
	case money.Exceeds(res.ProtectedTotal, res.Pay):
		res.Issues = append(res.Issues, model.Issue{
			Severity: model.Danger,
			Message: fmt.Sprintf("Bills + groceries + buffer (%s) exceed pay (%s).",
				money.Format(res.ProtectedTotal), money.Format(res.Pay)),
		})
	case money.Exceeds(res.ProtectedTotal+res.MinimumsTotal, res.Pay):
		res.Issues = append(res.Issues, model.Issue{
			Severity: model.Danger,
			Message: fmt.Sprintf("After protecting bills/groceries, card minimums (%s) are not covered.",
				money.Format(res.MinimumsTotal)),
		})
	}
	if res.Surplus > 0 {
		res.Issues = append(res.Issues, model.Issue{
			Severity: model.OK,
			Message:  fmt.Sprintf("All listed debts would be paid off with %s left over.", money.Format(res.Surplus)),
		})
	}

	res.Forecast = Forecast(alloc.Debts, res.DebtPaymentTotal(), cycle, runDate)

	log.WithFields(log.Fields{
		"run_date":  runDate.Format(dates.ISO),
		"pay":       res.Pay,
		"protected": res.ProtectedTotal,
		"extra":     res.Extra,
		"debts":     len(res.Allocations),
		"payoffs":   len(res.Forecast.Payoffs),
	}).Debug("computed plan")

	return res
}
