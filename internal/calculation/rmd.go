package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/wealthtrail/household-projector/pkg/dateutil"
)

// RMDCalculator determines Required Minimum Distributions for one person's
// pre-tax balances.
type RMDCalculator struct {
	BirthYear int
}

// NewRMDCalculator creates an RMD calculator for the given birth year.
func NewRMDCalculator(birthYear int) *RMDCalculator {
	return &RMDCalculator{BirthYear: birthYear}
}

// StartAge returns the age at which RMDs begin for this birth-year cohort
// under SECURE Act 2.0.
func (rmd *RMDCalculator) StartAge() int {
	return dateutil.RMDStartAge(rmd.BirthYear)
}

// Required returns the mandatory distribution for the given pre-tax balance
// and age: zero before the start age, otherwise balance divided by the
// Uniform Lifetime Table period. Ages past 100 use the age-100 divisor.
func (rmd *RMDCalculator) Required(preTaxBalance decimal.Decimal, age int) decimal.Decimal {
	if age < rmd.StartAge() || preTaxBalance.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	period, ok := uniformLifetimeTable2025[age]
	if !ok {
		if age > 100 {
			period = uniformLifetimeTable2025[100]
		} else {
			return decimal.Zero
		}
	}
	return preTaxBalance.Div(period)
}
