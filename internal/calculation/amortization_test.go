package calculation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wealthtrail/household-projector/internal/domain"
)

func testMortgage(balance, payment float64, rate float64) *domain.HomeAsset {
	return &domain.HomeAsset{
		Value:           decimal.NewFromInt(450000),
		MortgageBalance: decimal.NewFromFloat(balance),
		InterestRate:    decimal.NewFromFloat(rate),
		MonthlyPayment:  decimal.NewFromFloat(payment),
	}
}

func testBorrower() *domain.Person {
	return &domain.Person{
		Role:          domain.RolePrimary,
		BirthYear:     1970,
		BirthMonth:    6,
		RetirementAge: 65,
		DeathAge:      95,
	}
}

func TestAmortizationPaysOff(t *testing.T) {
	calc := NewAmortizationCalculator(nil)
	home := testMortgage(300000, 1520, 0.045)

	rows := calc.Schedule(home, testBorrower(), 2025, time.January)
	require.NotEmpty(t, rows)
	assert.Less(t, len(rows), maxAmortizationMonths, "schedule must be finite")

	// End balances strictly decrease and the final row retires the loan.
	prev := home.MortgageBalance
	principalSum := decimal.Zero
	for _, r := range rows {
		assert.True(t, r.EndBalance.LessThan(prev),
			"%d-%s: end balance %s did not decrease", r.Year, r.Month, r.EndBalance.StringFixed(2))
		prev = r.EndBalance
		principalSum = principalSum.Add(r.Principal).Add(r.ExtraPrincipal)
	}
	last := rows[len(rows)-1]
	assert.True(t, last.EndBalance.IsZero(), "final end balance %s", last.EndBalance.StringFixed(2))
	assert.True(t, principalSum.Sub(home.MortgageBalance).Abs().LessThan(decimal.NewFromFloat(0.01)),
		"principal sum %s != initial balance", principalSum.StringFixed(2))
}

func TestAmortizationExtraPrincipalShortensLoan(t *testing.T) {
	calc := NewAmortizationCalculator(nil)

	base := testMortgage(300000, 1520, 0.045)
	baseline := calc.Schedule(base, testBorrower(), 2025, time.January)

	extra := testMortgage(300000, 1520, 0.045)
	extra.ExtraPrincipal = decimal.NewFromInt(300)
	accelerated := calc.Schedule(extra, testBorrower(), 2025, time.January)

	assert.Less(t, len(accelerated), len(baseline))
	assert.True(t, accelerated[len(accelerated)-1].EndBalance.IsZero())
}

func TestAmortizationRunawayCap(t *testing.T) {
	calc := NewAmortizationCalculator(nil)

	// A payment below the monthly interest due can never amortize; the walk
	// must stop at the safety cap instead of looping forever.
	home := testMortgage(300000, 1000, 0.045)
	rows := calc.Schedule(home, testBorrower(), 2025, time.January)
	assert.Len(t, rows, maxAmortizationMonths)
	assert.True(t, rows[len(rows)-1].EndBalance.GreaterThan(decimal.Zero))
}

func TestAmortizationPayoffMonthClamp(t *testing.T) {
	calc := NewAmortizationCalculator(nil)
	home := testMortgage(300000, 1520, 0.045)
	home.PayoffYear = 2026
	home.PayoffMonth = 6

	rows := calc.Schedule(home, testBorrower(), 2025, time.January)
	require.Len(t, rows, 18) // Jan 2025 through Jun 2026
	last := rows[len(rows)-1]
	assert.Equal(t, 2026, last.Year)
	assert.Equal(t, time.June, last.Month)
	assert.True(t, last.EndBalance.IsZero())
	// The clamped payoff is split between regular and extra principal.
	assert.True(t, last.Principal.Add(last.ExtraPrincipal).Equal(last.StartBalance))
}

func TestAmortizationAgeDerivedPerMonth(t *testing.T) {
	calc := NewAmortizationCalculator(nil)
	home := testMortgage(50000, 1520, 0.045)

	rows := calc.Schedule(home, testBorrower(), 2025, time.January)
	require.NotEmpty(t, rows)
	// Born June 1970: age 54 through May 2025, 55 from June on.
	for _, r := range rows {
		if r.Year == 2025 && r.Month < time.June {
			assert.Equal(t, 54, r.Age)
		}
		if r.Year == 2025 && r.Month >= time.June {
			assert.Equal(t, 55, r.Age)
		}
	}
}

func TestAnnualSummaries(t *testing.T) {
	calc := NewAmortizationCalculator(nil)
	home := testMortgage(300000, 1520, 0.045)
	rows := calc.Schedule(home, testBorrower(), 2025, time.March)

	summaries := AnnualSummaries(rows)

	// 2025 covers March through December.
	first := summaries[2025]
	paid := decimal.Zero
	var lastBalance decimal.Decimal
	for _, r := range rows {
		if r.Year == 2025 {
			paid = paid.Add(r.TotalPayment)
			lastBalance = r.EndBalance
		}
	}
	assert.True(t, first.TotalPayments.Equal(paid))
	assert.True(t, first.EndOfYearBalance.Equal(lastBalance))

	assert.True(t, summaries[2026].TotalPayments.GreaterThan(first.TotalPayments),
		"a full year pays more than ten months")
}

func TestScheduleNilWithoutMortgage(t *testing.T) {
	calc := NewAmortizationCalculator(nil)
	home := &domain.HomeAsset{Value: decimal.NewFromInt(400000)}
	assert.Nil(t, calc.Schedule(home, testBorrower(), 2025, time.January))
}
