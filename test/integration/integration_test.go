package integration

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wealthtrail/household-projector/internal/calculation"
	"github.com/wealthtrail/household-projector/internal/config"
	"github.com/wealthtrail/household-projector/internal/domain"
)

// loadExample resolves the shared example household anchored to a fixed date
// so the tests do not drift as the calendar advances.
func loadExample(t *testing.T) *domain.ResolvedHousehold {
	t.Helper()
	parser := config.NewParser()
	raw, err := parser.LoadFromFile("../testdata/example_household.yaml")
	require.NoError(t, err)
	resolved, err := parser.Resolve(raw, time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return resolved
}

func TestEndToEndProjection(t *testing.T) {
	hh := loadExample(t)

	engine := calculation.NewEngine()
	result, err := engine.ProjectRetirement(hh)
	require.NoError(t, err)
	require.NotNil(t, result)

	// Primary is 63 in 2025; the younger spouse carries the run to 2059.
	first := result.Years[0]
	last := result.Years[len(result.Years)-1]
	assert.Equal(t, 2025, first.Year)
	assert.Equal(t, 63, first.AgePrimary)
	assert.Equal(t, 2059, last.Year)

	for _, y := range result.Years {
		assert.False(t, y.TotalSavings.IsNegative(), "year %d savings negative", y.Year)
		assert.False(t, y.BalancePreTax.IsNegative(), "year %d pre-tax negative", y.Year)
		assert.False(t, y.TotalTax.IsNegative(), "year %d tax negative", y.Year)
		assert.True(t, y.NetWorth.GreaterThanOrEqual(y.TotalSavings),
			"year %d net worth below savings with positive home equity", y.Year)
	}
}

func TestProjectionPhases(t *testing.T) {
	hh := loadExample(t)

	engine := calculation.NewEngine()
	result, err := engine.ProjectRetirement(hh)
	require.NoError(t, err)

	var transition *domain.ProjectionYear
	for i := range result.Years {
		y := &result.Years[i]
		if y.IsTransitionYear {
			transition = y
			break
		}
	}
	require.NotNil(t, transition, "projection should include the retirement transition year")
	assert.Equal(t, hh.Primary.RetirementYear(), transition.Year)

	// Working years earn the full salary, the transition year a strict part,
	// later years none.
	assert.True(t, result.Years[0].SalaryPrimary.Equal(decimal.NewFromInt(130000)))
	assert.True(t, transition.SalaryPrimary.GreaterThan(decimal.Zero))
	assert.True(t, transition.SalaryPrimary.LessThan(result.Years[transition.Year-2025-1].SalaryPrimary))
	for _, y := range result.Years {
		if y.Year > hh.Primary.RetirementYear() {
			assert.True(t, y.SalaryPrimary.IsZero(), "year %d primary salary after retirement", y.Year)
			break
		}
	}
}

func TestMortgageRunsOffDuringProjection(t *testing.T) {
	hh := loadExample(t)

	engine := calculation.NewEngine()
	schedule := engine.GenerateAmortizationSchedule(hh)
	require.NotEmpty(t, schedule)

	final := schedule[len(schedule)-1]
	assert.True(t, final.EndBalance.IsZero(), "mortgage should amortize to zero")

	result, err := engine.ProjectRetirement(hh)
	require.NoError(t, err)

	// Once the loan is gone the yearly mortgage payment drops to zero and
	// stays there.
	seenZero := false
	for _, y := range result.Years {
		if y.MortgagePayment.IsZero() {
			seenZero = true
		} else {
			assert.False(t, seenZero, "year %d mortgage payment resumed after payoff", y.Year)
		}
	}
	assert.True(t, seenZero, "mortgage never paid off within the projection")
}

func TestAccountsBreakdownConsistent(t *testing.T) {
	hh := loadExample(t)

	engine := calculation.NewEngine()
	result, err := engine.ProjectRetirement(hh)
	require.NoError(t, err)
	require.NotEmpty(t, result.AccountsBreakdown)

	// Per-account ending balances must sum to the reported savings total for
	// every year in the run.
	byYear := make(map[int]decimal.Decimal)
	for _, row := range result.AccountsBreakdown {
		byYear[row.Year] = byYear[row.Year].Add(row.EndingBalance)
		assert.False(t, row.EndingBalance.IsNegative(),
			"account %s year %d negative balance", row.AccountID, row.Year)
	}
	for _, y := range result.Years {
		ledgerTotal, ok := byYear[y.Year]
		require.True(t, ok, "no account rows for year %d", y.Year)
		assert.True(t, ledgerTotal.LessThanOrEqual(y.TotalSavings),
			"year %d account rows exceed reported savings", y.Year)
	}
}
