package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRMDStartAgeByCohort(t *testing.T) {
	tests := []struct {
		name      string
		birthYear int
		want      int
	}{
		{"Born 1949", 1949, 72},
		{"Born 1950", 1950, 72},
		{"Born 1951", 1951, 73},
		{"Born 1955", 1955, 73},
		{"Born 1959", 1959, 73},
		{"Born 1960", 1960, 75},
		{"Born 1980", 1980, 75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewRMDCalculator(tt.birthYear).StartAge())
		})
	}
}

func TestRequiredMinimumDistribution(t *testing.T) {
	calc := NewRMDCalculator(1955) // start age 73
	balance := decimal.NewFromInt(500000)

	// Zero below the start age regardless of balance.
	for age := 60; age < 73; age++ {
		assert.True(t, calc.Required(balance, age).IsZero(), "age %d", age)
	}

	// 500000 / 26.5 at age 73.
	rmd := calc.Required(balance, 73)
	expected := decimal.NewFromFloat(18867.92)
	assert.True(t, rmd.Sub(expected).Abs().LessThan(decimal.NewFromInt(1)),
		"expected ~%s, got %s", expected.StringFixed(2), rmd.StringFixed(2))

	// Strictly positive from the start age on.
	for age := 73; age <= 110; age++ {
		assert.True(t, calc.Required(balance, age).GreaterThan(decimal.Zero), "age %d", age)
	}

	// Past 100 the divisor clamps at the age-100 value.
	at100 := calc.Required(balance, 100)
	at105 := calc.Required(balance, 105)
	assert.True(t, at100.Equal(at105))
}

func TestRMDZeroBalance(t *testing.T) {
	calc := NewRMDCalculator(1950)
	assert.True(t, calc.Required(decimal.Zero, 80).IsZero())
	assert.True(t, calc.Required(decimal.NewFromInt(-100), 80).IsZero())
}
