// Package money wraps shopspring decimals with the rounding and display
// conventions used throughout the projection output.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

var twelve = decimal.NewFromInt(12)

// Money is a monetary amount with financial precision.
type Money struct {
	decimal.Decimal
}

// FromDecimal wraps a decimal amount.
func FromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// FromFloat creates an amount from a float64.
func FromFloat(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// FromString parses an amount such as "1234.56".
func FromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// Round rounds to cents.
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// Annual converts a monthly amount to annual.
func (m Money) Annual() Money {
	return Money{m.Decimal.Mul(twelve)}
}

// Monthly converts an annual amount to monthly.
func (m Money) Monthly() Money {
	return Money{m.Decimal.Div(twelve)}
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

// Sub returns m - other.
func (m Money) Sub(other Money) Money {
	return Money{m.Decimal.Sub(other.Decimal)}
}

// Format renders the amount as dollars and cents with thousands separators,
// e.g. "$1,234,567.89". Negative amounts render as "-$123.45".
func Format(d decimal.Decimal) string {
	return FromDecimal(d).String()
}

// FormatWhole renders the amount rounded to whole dollars, e.g. "$1,234,568".
func FormatWhole(d decimal.Decimal) string {
	s := d.Round(0).StringFixed(0)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	out := "$" + groupThousands(s)
	if neg {
		return "-" + out
	}
	return out
}

// FormatPercent renders a rate such as 0.0425 as "4.25%".
func FormatPercent(d decimal.Decimal) string {
	return d.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}

// String implements fmt.Stringer with the Format convention.
func (m Money) String() string {
	s := m.Decimal.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	whole, cents, _ := strings.Cut(s, ".")
	out := "$" + groupThousands(whole) + "." + cents
	if neg {
		return "-" + out
	}
	return out
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
