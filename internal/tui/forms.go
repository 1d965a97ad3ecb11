package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/snowball/internal/cli"
	"github.com/theirongolddev/snowball/internal/config"
	"github.com/theirongolddev/snowball/internal/dates"
	"github.com/theirongolddev/snowball/internal/model"
	"github.com/theirongolddev/snowball/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

func validateMoney(s string) error {
	_, err := cli.ParseMoney(s)
	return err
}

func validateName(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("name is required")
	}
	return nil
}

func validateOptionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	_, err := cli.ParseDate(s)
	return err
}

func parsePositiveInt(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%q is not a positive whole number", s)
	}
	return n, nil
}

func validateCycle(s string) error {
	_, err := parsePositiveInt(s)
	return err
}

func parseDueDay(s string) (int, error) {
	n, err := parsePositiveInt(s)
	if err != nil || n > 31 {
		return 0, fmt.Errorf("due day must be 1-31")
	}
	return n, nil
}

func validateDueDay(s string) error {
	_, err := parseDueDay(s)
	return err
}

func parsePercent(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 || n > 100 {
		return 0, fmt.Errorf("must be a whole percent 0-100")
	}
	return n, nil
}

func validatePercent(s string) error {
	_, err := parsePercent(s)
	return err
}

func moneyString(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// ─── Setup / settings ───────────────────────────────────────────

// SetupValues backs the setup form. Fields are strings so huh inputs can
// bind to them directly.
type SetupValues struct {
	Groceries string
	Buffer    string
	LumpRule  string
	CycleDays string
	Theme     string
}

// SetupValuesFrom prefills the setup form from the current config and settings.
func SetupValuesFrom(cfg config.Config, s model.Settings) SetupValues {
	return SetupValues{
		Groceries: moneyString(s.Groceries),
		Buffer:    moneyString(s.Buffer),
		LumpRule:  strconv.Itoa(s.LumpRule),
		CycleDays: strconv.Itoa(cfg.General.CycleDays),
		Theme:     cfg.Appearance.Theme,
	}
}

// Apply writes the form values into cfg and s.
func (v SetupValues) Apply(cfg *config.Config, s *model.Settings) error {
	groceries, err := cli.ParseMoney(v.Groceries)
	if err != nil {
		return fmt.Errorf("groceries: %w", err)
	}
	buffer, err := cli.ParseMoney(v.Buffer)
	if err != nil {
		return fmt.Errorf("buffer: %w", err)
	}
	lump, err := parsePercent(v.LumpRule)
	if err != nil {
		return fmt.Errorf("lump rule: %w", err)
	}
	cycle, err := parsePositiveInt(v.CycleDays)
	if err != nil {
		return fmt.Errorf("cycle days: %w", err)
	}

	s.Groceries = groceries
	s.Buffer = buffer
	s.LumpRule = lump
	cfg.General.CycleDays = cycle
	if theme.Valid(v.Theme) {
		cfg.Appearance.Theme = v.Theme
	}
	return nil
}

// NewSetupForm builds the setup wizard bound to v.
func NewSetupForm(v *SetupValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to snowball!").
				Description("Protect what each paycheck must cover,\nthen snowball the rest into your smallest debt."),
			huh.NewInput().
				Title("Groceries per pay").
				Description("Set aside from every paycheck before debt.").
				Value(&v.Groceries).
				Validate(validateMoney),
			huh.NewInput().
				Title("Safety buffer per pay").
				Value(&v.Buffer).
				Validate(validateMoney),
			huh.NewInput().
				Title("Lump-sum rule (%)").
				Description("Share of windfalls you intend to send to debt.").
				Value(&v.LumpRule).
				Validate(validatePercent),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Days between paydays").
				Value(&v.CycleDays).
				Validate(validateCycle),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(huh.NewOptions(theme.Names()...)...).
				Value(&v.Theme),
		),
	).WithShowHelp(false)
}

// ─── Paycheck ───────────────────────────────────────────────────

// PayValues backs the paycheck form.
type PayValues struct {
	Pay       string
	RunDate   string
	CycleDays string
}

// Parse converts the form values. An empty run date means today.
func (v PayValues) Parse(now time.Time) (pay float64, runDate time.Time, cycle int, err error) {
	if pay, err = cli.ParseMoney(v.Pay); err != nil {
		return 0, time.Time{}, 0, err
	}
	runDate = dates.TruncateToDay(now)
	if strings.TrimSpace(v.RunDate) != "" {
		if runDate, err = cli.ParseDate(v.RunDate); err != nil {
			return 0, time.Time{}, 0, err
		}
	}
	if cycle, err = parsePositiveInt(v.CycleDays); err != nil {
		return 0, time.Time{}, 0, err
	}
	return pay, runDate, cycle, nil
}

func newPayForm(v *PayValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Paycheck amount").
				Placeholder("2400").
				Value(&v.Pay).
				Validate(validateMoney),
			huh.NewInput().
				Title("Payday").
				Description("YYYY-MM-DD, blank for today").
				Value(&v.RunDate).
				Validate(validateOptionalDate),
			huh.NewInput().
				Title("Days until next pay").
				Value(&v.CycleDays).
				Validate(validateCycle),
		),
	).WithShowHelp(false)
}

// ─── Debts ──────────────────────────────────────────────────────

// DebtValues backs the add/edit debt form.
type DebtValues struct {
	Name    string
	Balance string
	Minimum string
}

func debtValuesFrom(d model.Debt) DebtValues {
	return DebtValues{Name: d.Name, Balance: moneyString(d.Balance), Minimum: moneyString(d.MinimumPayment)}
}

// Debt converts the form values.
func (v DebtValues) Debt() (model.Debt, error) {
	if err := validateName(v.Name); err != nil {
		return model.Debt{}, err
	}
	balance, err := cli.ParseMoney(v.Balance)
	if err != nil {
		return model.Debt{}, err
	}
	minimum, err := cli.ParseMoney(v.Minimum)
	if err != nil {
		return model.Debt{}, err
	}
	return model.Debt{Name: strings.TrimSpace(v.Name), Balance: balance, MinimumPayment: minimum}, nil
}

func newDebtForm(title string, v *DebtValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title(title),
			huh.NewInput().Title("Name").Value(&v.Name).Validate(validateName),
			huh.NewInput().Title("Balance").Value(&v.Balance).Validate(validateMoney),
			huh.NewInput().Title("Minimum payment").Value(&v.Minimum).Validate(validateMoney),
		),
	).WithShowHelp(false)
}

// ─── Bills ──────────────────────────────────────────────────────

// BillValues backs the add bill form.
type BillValues struct {
	Name      string
	Amount    string
	Frequency string
	DueDay    string
}

// Bill converts the form values. Every-pay bills ignore the due day.
func (v BillValues) Bill() (model.Bill, error) {
	if err := validateName(v.Name); err != nil {
		return model.Bill{}, err
	}
	amount, err := cli.ParseMoney(v.Amount)
	if err != nil {
		return model.Bill{}, err
	}
	b := model.Bill{Name: strings.TrimSpace(v.Name), Amount: amount, Frequency: model.Frequency(v.Frequency)}
	if !b.Frequency.Valid() {
		return model.Bill{}, fmt.Errorf("unknown frequency %q", v.Frequency)
	}
	if b.Frequency == model.Monthly {
		if b.DueDay, err = parseDueDay(v.DueDay); err != nil {
			return model.Bill{}, err
		}
	}
	return b, nil
}

func newBillForm(v *BillValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title("Add bill"),
			huh.NewInput().Title("Name").Value(&v.Name).Validate(validateName),
			huh.NewInput().Title("Amount").Value(&v.Amount).Validate(validateMoney),
			huh.NewSelect[string]().
				Title("Frequency").
				Options(
					huh.NewOption("Monthly", string(model.Monthly)),
					huh.NewOption("Every pay (biweekly)", string(model.Biweekly)),
				).
				Value(&v.Frequency),
			huh.NewInput().
				Title("Due day of month").
				Description("Ignored for every-pay bills").
				Value(&v.DueDay).
				Validate(func(s string) error {
					if v.Frequency != string(model.Monthly) {
						return nil
					}
					return validateDueDay(s)
				}),
		),
	).WithShowHelp(false)
}
