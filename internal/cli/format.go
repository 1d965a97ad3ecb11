// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/snowball/internal/dates"
	"github.com/theirongolddev/snowball/internal/money"
)

// FormatMoney formats a dollar amount, e.g. 1234.5 -> "$1,234.50".
func FormatMoney(v float64) string {
	return money.Format(v)
}

// FormatDate formats a date as YYYY-MM-DD, or "-" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(dates.ISO)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatCycles describes a number of pay cycles as weeks or months.
// e.g., (3, 14) -> "6w", (10, 14) -> "4.6mo"
func FormatCycles(cycles, cycleDays int) string {
	days := cycles * cycleDays
	if days <= 0 {
		return "now"
	}
	if days < 60 {
		return fmt.Sprintf("%dw", (days+6)/7)
	}
	return fmt.Sprintf("%.1fmo", float64(days)/30.44)
}

// ParseMoney parses a user-entered amount, accepting "$" and "," decorations.
func ParseMoney(s string) (float64, error) {
	clean := strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	if clean == "" {
		return 0, fmt.Errorf("empty amount")
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("amount %q must not be negative", s)
	}
	v, _ := d.Float64()
	return v, nil
}

// ParseDate parses a YYYY-MM-DD date in the local time zone.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dates.ISO, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return t, nil
}
