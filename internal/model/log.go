package model

import (
	"time"

	"github.com/google/uuid"
)

// LogEntry records a saved planning run.
type LogEntry struct {
	ID            string
	RunDate       time.Time
	Pay           float64
	Bills         float64
	Groceries     float64
	Extra         float64
	Target        string
	TargetPayment float64
	CreatedAt     time.Time
}

// NewLogEntry captures the headline numbers of r. The target is the first
// (smallest balance) allocation, if any.
func NewLogEntry(r PlanResult, now time.Time) LogEntry {
	e := LogEntry{
		ID:        uuid.NewString(),
		RunDate:   r.RunDate,
		Pay:       r.Pay,
		Bills:     r.BillsDue.Total,
		Groceries: r.Groceries,
		Extra:     r.Extra,
		CreatedAt: now,
	}
	if len(r.Allocations) > 0 {
		e.Target = r.Allocations[0].Name
		e.TargetPayment = r.Allocations[0].Payment
	}
	return e
}
