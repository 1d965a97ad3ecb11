// Package model defines the data types shared by the planner, the store and
// the presentation layers.
package model

import (
	"strings"
	"time"

	"github.com/theirongolddev/snowball/internal/dates"
	"github.com/theirongolddev/snowball/internal/money"
)

// Debt is a revolving balance being paid down.
type Debt struct {
	Name           string
	Balance        float64
	MinimumPayment float64
}

// Frequency is how often a bill recurs.
type Frequency string

const (
	Monthly  Frequency = "monthly"
	Biweekly Frequency = "biweekly"
)

// Valid reports whether f is a frequency the planner understands.
func (f Frequency) Valid() bool {
	return f == Monthly || f == Biweekly
}

// Bill is a recurring obligation. DueDay only applies to monthly bills.
type Bill struct {
	Name      string
	Amount    float64
	Frequency Frequency
	DueDay    int
}

// Settings are the flat protected allowances applied to every paycheck.
type Settings struct {
	Groceries float64
	Buffer    float64

	// LumpRule is carried through storage and exports untouched.
	LumpRule int
}

// State is a full snapshot of one user's data.
type State struct {
	Settings Settings
	Debts    []Debt
	Bills    []Bill
	Log      []LogEntry
}

// Normalize returns a copy of s with every amount clamped to a finite,
// non-negative value and text fields trimmed. It is the only place input
// is sanitized; everything downstream assumes normalized data.
func Normalize(s State) State {
	out := State{
		Settings: Settings{
			Groceries: money.Clamp(s.Settings.Groceries),
			Buffer:    money.Clamp(s.Settings.Buffer),
			LumpRule:  s.Settings.LumpRule,
		},
		Debts: make([]Debt, len(s.Debts)),
		Bills: make([]Bill, len(s.Bills)),
		Log:   append([]LogEntry(nil), s.Log...),
	}
	for i, d := range s.Debts {
		out.Debts[i] = Debt{
			Name:           strings.TrimSpace(d.Name),
			Balance:        money.Clamp(d.Balance),
			MinimumPayment: money.Clamp(d.MinimumPayment),
		}
	}
	for i, b := range s.Bills {
		out.Bills[i] = Bill{
			Name:      strings.TrimSpace(b.Name),
			Amount:    money.Clamp(b.Amount),
			Frequency: Frequency(strings.ToLower(strings.TrimSpace(string(b.Frequency)))),
			DueDay:    b.DueDay,
		}
	}
	return out
}

// Due is when a bill falls due within a cycle: either a calendar date or
// every payday.
type Due struct {
	Date     time.Time
	EveryPay bool
}

// EveryPayDue is the due marker for bills paid from every paycheck.
var EveryPayDue = Due{EveryPay: true}

// OnDate returns a Due for a concrete calendar date.
func OnDate(t time.Time) Due {
	return Due{Date: dates.TruncateToDay(t)}
}

// Before orders dated entries chronologically, ahead of every-pay entries.
func (d Due) Before(o Due) bool {
	if d.EveryPay || o.EveryPay {
		return !d.EveryPay && o.EveryPay
	}
	return d.Date.Before(o.Date)
}

func (d Due) String() string {
	if d.EveryPay {
		return "every pay"
	}
	return d.Date.Format(dates.ISO)
}

// BillDue is a bill that falls due before the next payday.
type BillDue struct {
	Name   string
	Amount float64
	Due    Due
}

// BillsDue is the projection of bills onto one pay cycle.
type BillsDue struct {
	Items []BillDue
	Total float64
}

// Allocation is the planned payment toward one debt this cycle.
// Payment never exceeds Balance.
type Allocation struct {
	Name           string
	Balance        float64
	MinimumPayment float64
	Payment        float64
}

// NewBalance is the balance left after this cycle's payment.
func (a Allocation) NewBalance() float64 {
	return money.Clamp(a.Balance - a.Payment)
}

// Severity classifies a budget-health issue.
type Severity string

const (
	Danger Severity = "danger"
	OK     Severity = "ok"
)

// Issue is a budget-health message attached to a plan.
type Issue struct {
	Severity Severity
	Message  string
}

// Payoff is the estimated date a debt reaches zero.
type Payoff struct {
	Name string
	Date time.Time
}

// Forecast is the approximate no-interest payoff schedule.
type Forecast struct {
	Payoffs []Payoff

	// Balances is the total remaining balance after each simulated cycle.
	Balances []float64

	// DebtFree is the date of the last payoff found, or nil when no debt
	// clears within the simulation bound.
	DebtFree *time.Time
}

// Cleared reports whether every simulated debt reached zero.
func (f Forecast) Cleared() bool {
	n := len(f.Balances)
	return n > 0 && f.Balances[n-1] == 0
}

// PlanResult is the complete output of one planning run.
type PlanResult struct {
	RunDate     time.Time
	NextPayDate time.Time
	CycleDays   int

	Pay       float64
	Groceries float64
	Buffer    float64
	BillsDue  BillsDue

	ProtectedTotal   float64
	MinimumsTotal    float64
	AvailableForDebt float64
	Extra            float64

	Allocations []Allocation
	Surplus     float64
	Issues      []Issue
	Forecast    Forecast
}

// DebtPaymentTotal is the sum of this cycle's debt payments.
func (r PlanResult) DebtPaymentTotal() float64 {
	var total float64
	for _, a := range r.Allocations {
		total += a.Payment
	}
	return total
}

// HasDanger reports whether any issue is a danger.
func (r PlanResult) HasDanger() bool {
	for _, is := range r.Issues {
		if is.Severity == Danger {
			return true
		}
	}
	return false
}
