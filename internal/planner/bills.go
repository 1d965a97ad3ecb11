package planner

import (
	"sort"
	"time"

	"github.com/theirongolddev/snowball/internal/dates"
	"github.com/theirongolddev/snowball/internal/model"
)

// BillsDue returns the bills payable from the paycheck received on runDate:
// every-pay bills always, monthly bills whose next occurrence falls within
// [runDate, nextPayDate]. Items are ordered by due date with every-pay bills
// last.
func BillsDue(bills []model.Bill, runDate, nextPayDate time.Time) model.BillsDue {
	var out model.BillsDue

	for _, b := range bills {
		switch b.Frequency {
		case model.Biweekly:
			out.Items = append(out.Items, model.BillDue{Name: b.Name, Amount: b.Amount, Due: model.EveryPayDue})
			out.Total += b.Amount

		case model.Monthly:
			if b.DueDay < 1 || b.DueDay > 31 {
				continue
			}
			due := dates.NextMonthlyOccurrence(runDate, b.DueDay)
			if !dates.InInclusiveRange(due, runDate, nextPayDate) {
				continue
			}
			out.Items = append(out.Items, model.BillDue{Name: b.Name, Amount: b.Amount, Due: model.OnDate(due)})
			out.Total += b.Amount
		}
	}

	sort.SliceStable(out.Items, func(i, j int) bool {
		return out.Items[i].Due.Before(out.Items[j].Due)
	})

	return out
}
