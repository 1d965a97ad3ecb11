package planner

import (
	"sort"

	"github.com/theirongolddev/snowball/internal/model"
	"github.com/theirongolddev/snowball/internal/money"
)

// Allocation is the allocator's output for one cycle.
type Allocation struct {
	// Debts are the unpaid debts in payment order (smallest balance first).
	Debts []model.Debt

	Allocations   []model.Allocation
	MinimumsTotal float64
	Extra         float64

	// Surplus is what remains after every debt is paid in full.
	Surplus float64
}

// ActiveDebts returns the debts with a balance above one cent, sorted by
// ascending balance. Equal balances keep their input order.
func ActiveDebts(debts []model.Debt) []model.Debt {
	active := make([]model.Debt, 0, len(debts))
	for _, d := range debts {
		if d.Balance > money.Tolerance {
			active = append(active, d)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Balance < active[j].Balance
	})
	return active
}

// MinimumsTotal sums the minimum payments of debts.
func MinimumsTotal(debts []model.Debt) float64 {
	var total float64
	for _, d := range debts {
		total += d.MinimumPayment
	}
	return total
}

// Allocate splits availableForDebt across debts using the snowball
// strategy. Every debt is assigned its minimum, whatever is left over after
// minimums goes to the smallest balance, and any payment that would exceed
// a balance is capped and carried to the next debt in order. Minimums are
// assigned in full even when availableForDebt cannot cover them.
func Allocate(debts []model.Debt, availableForDebt float64) Allocation {
	active := ActiveDebts(debts)
	res := Allocation{
		Debts:         active,
		Allocations:   make([]model.Allocation, len(active)),
		MinimumsTotal: MinimumsTotal(active),
	}
	res.Extra = money.Clamp(availableForDebt - res.MinimumsTotal)

	if len(active) == 0 {
		return res
	}

	for i, d := range active {
		res.Allocations[i] = model.Allocation{
			Name:           d.Name,
			Balance:        d.Balance,
			MinimumPayment: d.MinimumPayment,
			Payment:        d.MinimumPayment,
		}
	}
	res.Allocations[0].Payment += res.Extra

	var carry float64
	for i := range res.Allocations {
		a := &res.Allocations[i]
		a.Payment += carry
		carry = 0
		if a.Payment > a.Balance {
			carry = a.Payment - a.Balance
			a.Payment = a.Balance
		}
	}

	if carry > money.Tolerance {
		res.Surplus = carry
	}
	return res
}
