// Package snapshot reads and writes the full state as JSON. The field names
// follow the browser planner's export format (lumpRule, min, freq, dueDay,
// targetPay) so its export files import directly.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/theirongolddev/snowball/internal/dates"
	"github.com/theirongolddev/snowball/internal/model"

	"github.com/google/uuid"
)

// ErrInvalid is returned when the input is not a usable snapshot.
var ErrInvalid = errors.New("invalid snapshot")

type fileSettings struct {
	Groceries *float64 `json:"groceries,omitempty"`
	Buffer    *float64 `json:"buffer,omitempty"`
	LumpRule  *float64 `json:"lumpRule,omitempty"`
}

type fileDebt struct {
	Name    string  `json:"name"`
	Balance float64 `json:"balance"`
	Min     float64 `json:"min"`
}

type fileBill struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Freq   string  `json:"freq"`
	DueDay float64 `json:"dueDay"`
}

type fileLogEntry struct {
	ID        string  `json:"id,omitempty"`
	RunDate   string  `json:"runDate"`
	Pay       float64 `json:"pay"`
	Bills     float64 `json:"bills"`
	Groceries float64 `json:"groceries"`
	Extra     float64 `json:"extra"`
	Target    string  `json:"target"`
	TargetPay float64 `json:"targetPay"`
	CreatedAt string  `json:"createdAt,omitempty"`
}

type file struct {
	Settings *fileSettings  `json:"settings"`
	Debts    []fileDebt     `json:"debts"`
	Bills    []fileBill     `json:"bills"`
	Log      []fileLogEntry `json:"log"`
}

// Export writes st as indented JSON.
func Export(w io.Writer, st model.State) error {
	lump := float64(st.Settings.LumpRule)
	f := file{
		Settings: &fileSettings{
			Groceries: &st.Settings.Groceries,
			Buffer:    &st.Settings.Buffer,
			LumpRule:  &lump,
		},
		Debts: make([]fileDebt, 0, len(st.Debts)),
		Bills: make([]fileBill, 0, len(st.Bills)),
		Log:   make([]fileLogEntry, 0, len(st.Log)),
	}
	for _, d := range st.Debts {
		f.Debts = append(f.Debts, fileDebt{Name: d.Name, Balance: d.Balance, Min: d.MinimumPayment})
	}
	for _, b := range st.Bills {
		f.Bills = append(f.Bills, fileBill{Name: b.Name, Amount: b.Amount, Freq: string(b.Frequency), DueDay: float64(b.DueDay)})
	}
	for _, e := range st.Log {
		fe := fileLogEntry{
			ID:        e.ID,
			RunDate:   e.RunDate.Format(dates.ISO),
			Pay:       e.Pay,
			Bills:     e.Bills,
			Groceries: e.Groceries,
			Extra:     e.Extra,
			Target:    e.Target,
			TargetPay: e.TargetPayment,
		}
		if !e.CreatedAt.IsZero() {
			fe.CreatedAt = e.CreatedAt.UTC().Format(time.RFC3339)
		}
		f.Log = append(f.Log, fe)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return nil
}

// Import decodes a snapshot. Missing settings fall back to the defaults and
// missing amounts are zero; other values are kept as written, since the
// planner normalizes on entry. Fractional day and percentage numbers are
// truncated. Log entries without an id (older browser exports) or repeating
// an earlier id are given a new one.
func Import(r io.Reader) (model.State, error) {
	var f file
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return model.State{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	st := model.State{Settings: model.DefaultSettings()}
	if f.Settings != nil {
		if f.Settings.Groceries != nil {
			st.Settings.Groceries = *f.Settings.Groceries
		}
		if f.Settings.Buffer != nil {
			st.Settings.Buffer = *f.Settings.Buffer
		}
		if f.Settings.LumpRule != nil {
			st.Settings.LumpRule = int(*f.Settings.LumpRule)
		}
	}

	st.Debts = make([]model.Debt, 0, len(f.Debts))
	for _, d := range f.Debts {
		st.Debts = append(st.Debts, model.Debt{Name: d.Name, Balance: d.Balance, MinimumPayment: d.Min})
	}
	st.Bills = make([]model.Bill, 0, len(f.Bills))
	for _, b := range f.Bills {
		st.Bills = append(st.Bills, model.Bill{Name: b.Name, Amount: b.Amount, Frequency: model.Frequency(b.Freq), DueDay: int(b.DueDay)})
	}

	seen := make(map[string]bool, len(f.Log))
	for i, fe := range f.Log {
		e := model.LogEntry{
			ID:            fe.ID,
			Pay:           fe.Pay,
			Bills:         fe.Bills,
			Groceries:     fe.Groceries,
			Extra:         fe.Extra,
			Target:        fe.Target,
			TargetPayment: fe.TargetPay,
		}
		if e.ID == "" || seen[e.ID] {
			e.ID = uuid.NewString()
		}
		seen[e.ID] = true
		var err error
		if e.RunDate, err = time.ParseInLocation(dates.ISO, fe.RunDate, time.Local); err != nil {
			return model.State{}, fmt.Errorf("%w: log entry %d: run date %q", ErrInvalid, i, fe.RunDate)
		}
		if fe.CreatedAt != "" {
			e.CreatedAt, _ = time.Parse(time.RFC3339, fe.CreatedAt)
		}
		st.Log = append(st.Log, e)
	}

	return st, nil
}
