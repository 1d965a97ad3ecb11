// Package money holds the cent tolerance and display helpers shared by the
// planner and the presentation layers.
package money

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Tolerance is the absolute amount below which balances and differences are
// treated as zero.
const Tolerance = 0.01

// Clamp returns v, or 0 if v is negative, NaN or infinite.
func Clamp(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// IsZero reports whether v is within one cent of zero.
func IsZero(v float64) bool {
	return math.Abs(v) <= Tolerance
}

// Exceeds reports whether a is greater than b by more than one cent.
func Exceeds(a, b float64) bool {
	return a > b+Tolerance
}

// Round rounds v to whole cents.
func Round(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// Format renders v as a dollar amount with thousands separators,
// e.g. 1234.5 -> "$1,234.50".
func Format(v float64) string {
	d := decimal.NewFromFloat(v).Round(2)
	neg := d.IsNegative()
	if neg {
		d = d.Neg()
	}

	s := d.StringFixed(2)
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	lead := len(whole) % 3
	if lead > 0 {
		b.WriteString(whole[:lead])
	}
	for i := lead; i < len(whole); i += 3 {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(whole[i : i+3])
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}
