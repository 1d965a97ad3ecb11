package snapshot

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/snowball/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportImportRoundTrip(t *testing.T) {
	st := model.DefaultState()
	st.Settings.Buffer = 42.5
	st.Log = []model.LogEntry{{
		ID:            "7f1c",
		RunDate:       time.Date(2025, time.June, 2, 0, 0, 0, 0, time.Local),
		Pay:           600,
		Bills:         0,
		Groceries:     250,
		Extra:         285,
		Target:        "Capital One Gold",
		TargetPayment: 300,
		CreatedAt:     time.Date(2025, time.June, 2, 18, 4, 5, 0, time.UTC),
	}}

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, st))

	got, err := Import(&buf)
	require.NoError(t, err)

	assert.Equal(t, st.Settings, got.Settings)
	assert.Equal(t, st.Debts, got.Debts)
	assert.Equal(t, st.Bills, got.Bills)
	require.Len(t, got.Log, 1)
	assert.Equal(t, "7f1c", got.Log[0].ID)
	assert.Equal(t, "2025-06-02", got.Log[0].RunDate.Format("2006-01-02"))
	assert.True(t, st.Log[0].CreatedAt.Equal(got.Log[0].CreatedAt))
	assert.Equal(t, 300.0, got.Log[0].TargetPayment)
}

func TestExportUsesBrowserFieldNames(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, model.State{
		Settings: model.Settings{Groceries: 250, LumpRule: 100},
		Debts:    []model.Debt{{Name: "Simplii", Balance: 1500, MinimumPayment: 40}},
		Bills:    []model.Bill{{Name: "Rent", Amount: 1650, Frequency: model.Monthly, DueDay: 1}},
	}))

	out := buf.String()
	for _, want := range []string{`"groceries": 250`, `"lumpRule": 100`, `"min": 40`, `"freq": "monthly"`, `"dueDay": 1`, `"log": []`} {
		assert.Contains(t, out, want)
	}
}

func TestImportBrowserExport(t *testing.T) {
	in := `{
  "settings": { "groceries": 300, "buffer": 25, "lumpRule": 50 },
  "debts": [
    { "name": "Capital One Gold", "balance": 300, "min": 25 },
    { "name": "Broken", "balance": -4 }
  ],
  "bills": [
    { "name": "Rent", "amount": 1650, "freq": "monthly", "dueDay": 1 },
    { "name": "Car Loan", "amount": 286, "freq": "biweekly", "dueDay": 0 }
  ],
  "log": [
    { "runDate": "2025-05-30", "pay": 2400, "bills": 1650, "groceries": 250, "extra": 12, "target": "Capital One Gold", "targetPay": 37 }
  ]
}`

	st, err := Import(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, model.Settings{Groceries: 300, Buffer: 25, LumpRule: 50}, st.Settings)
	require.Len(t, st.Debts, 2)
	assert.Equal(t, -4.0, st.Debts[1].Balance, "kept as written")
	assert.Equal(t, 0.0, st.Debts[1].MinimumPayment)
	require.Len(t, st.Bills, 2)
	assert.Equal(t, model.Biweekly, st.Bills[1].Frequency)
	require.Len(t, st.Log, 1)
	assert.NotEmpty(t, st.Log[0].ID)
	assert.Equal(t, 37.0, st.Log[0].TargetPayment)
	assert.True(t, st.Log[0].CreatedAt.IsZero())
}

func TestImportKeepsValuesAndTruncatesNumbers(t *testing.T) {
	in := `{
  "settings": { "lumpRule": 62.5 },
  "bills": [
    { "name": " Phone ", "amount": 55, "freq": "Monthly", "dueDay": 15.5 }
  ]
}`
	st, err := Import(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, 62, st.Settings.LumpRule)
	require.Len(t, st.Bills, 1)
	assert.Equal(t, model.Bill{Name: " Phone ", Amount: 55, Frequency: "Monthly", DueDay: 15}, st.Bills[0])
}

func TestImportGivesDuplicateIDsNewOnes(t *testing.T) {
	in := `{"log": [
    { "id": "dup", "runDate": "2025-05-30", "pay": 1 },
    { "id": "dup", "runDate": "2025-06-13", "pay": 2 },
    { "runDate": "2025-06-27", "pay": 3 }
  ]}`
	st, err := Import(strings.NewReader(in))
	require.NoError(t, err)

	require.Len(t, st.Log, 3)
	assert.Equal(t, "dup", st.Log[0].ID)
	ids := map[string]bool{}
	for _, e := range st.Log {
		assert.NotEmpty(t, e.ID)
		ids[e.ID] = true
	}
	assert.Len(t, ids, 3)
	assert.Equal(t, 2.0, st.Log[1].Pay)
}

func TestImportMissingSettingsUsesDefaults(t *testing.T) {
	st, err := Import(strings.NewReader(`{"debts": [], "bills": []}`))
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSettings(), st.Settings)
	assert.Empty(t, st.Log)

	st, err = Import(strings.NewReader(`{"settings": {"buffer": 10}}`))
	require.NoError(t, err)
	assert.Equal(t, 250.0, st.Settings.Groceries)
	assert.Equal(t, 10.0, st.Settings.Buffer)
}

func TestImportRejectsGarbage(t *testing.T) {
	_, err := Import(strings.NewReader(`not json`))
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = Import(strings.NewReader(`{"log": [{"runDate": "yesterday"}]}`))
	assert.ErrorIs(t, err, ErrInvalid)
}
