package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/wealthtrail/household-projector/internal/domain"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestWaterfallOrdering(t *testing.T) {
	strategy := NewWaterfallStrategy()

	tests := []struct {
		name      string
		balances  BucketBalances
		shortfall decimal.Decimal
		rmd       decimal.Decimal
		wantInv   decimal.Decimal
		wantPre   decimal.Decimal
		wantRoth  decimal.Decimal
	}{
		{
			name:      "Investment covers everything",
			balances:  BucketBalances{PreTax: d(100000), Roth: d(50000), Investment: d(80000)},
			shortfall: d(60000),
			rmd:       decimal.Zero,
			wantInv:   d(60000),
			wantPre:   decimal.Zero,
			wantRoth:  decimal.Zero,
		},
		{
			name:      "Spills into pre-tax",
			balances:  BucketBalances{PreTax: d(100000), Roth: d(50000), Investment: d(50000)},
			shortfall: d(60000),
			rmd:       decimal.Zero,
			wantInv:   d(50000),
			wantPre:   d(10000),
			wantRoth:  decimal.Zero,
		},
		{
			name:      "Roth only as a last resort",
			balances:  BucketBalances{PreTax: d(20000), Roth: d(50000), Investment: d(10000)},
			shortfall: d(60000),
			rmd:       decimal.Zero,
			wantInv:   d(10000),
			wantPre:   d(20000),
			wantRoth:  d(30000),
		},
		{
			name:      "All buckets exhausted",
			balances:  BucketBalances{PreTax: d(10000), Roth: d(10000), Investment: d(10000)},
			shortfall: d(60000),
			rmd:       decimal.Zero,
			wantInv:   d(10000),
			wantPre:   d(10000),
			wantRoth:  d(10000),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := strategy.CalculateWithdrawal(tt.balances, tt.shortfall, tt.rmd)
			assert.True(t, w.Investment.Equal(tt.wantInv), "investment: want %s got %s", tt.wantInv, w.Investment)
			assert.True(t, w.PreTax.Equal(tt.wantPre), "pre-tax: want %s got %s", tt.wantPre, w.PreTax)
			assert.True(t, w.Roth.Equal(tt.wantRoth), "roth: want %s got %s", tt.wantRoth, w.Roth)
		})
	}
}

// TestWaterfallNeverTouchesRothEarly: Roth stays untouched whenever the
// investment and pre-tax balances can cover the full draw.
func TestWaterfallNeverTouchesRothEarly(t *testing.T) {
	strategy := NewWaterfallStrategy()
	for shortfall := int64(10000); shortfall <= 150000; shortfall += 10000 {
		balances := BucketBalances{PreTax: d(100000), Roth: d(500000), Investment: d(50000)}
		w := strategy.CalculateWithdrawal(balances, d(shortfall), decimal.Zero)
		assert.True(t, w.Roth.IsZero(), "shortfall %d drew %s from Roth", shortfall, w.Roth)
	}
}

func TestWaterfallRMDFloor(t *testing.T) {
	strategy := NewWaterfallStrategy()

	// Investment alone could cover the shortfall, but the RMD still forces a
	// pre-tax draw of the full required amount.
	balances := BucketBalances{PreTax: d(100000), Roth: d(50000), Investment: d(80000)}
	w := strategy.CalculateWithdrawal(balances, d(20000), d(30000))
	assert.True(t, w.PreTax.Equal(d(30000)), "pre-tax draw must meet the RMD, got %s", w.PreTax)

	// The floor is capped by the available balance.
	balances.PreTax = d(5000)
	w = strategy.CalculateWithdrawal(balances, d(20000), d(30000))
	assert.True(t, w.PreTax.Equal(d(5000)))
}

// TestNoWithdrawalWhenIncomeCoversSpending documents intentional behavior:
// with no shortfall nothing is withdrawn, even when an RMD is due. The RMD
// is enforced only through the withdrawal path.
func TestNoWithdrawalWhenIncomeCoversSpending(t *testing.T) {
	balances := BucketBalances{PreTax: d(500000), Roth: d(100000), Investment: d(100000)}

	for _, strategy := range []WithdrawalStrategy{
		NewWaterfallStrategy(),
		NewBracketFillStrategy(NewTaxCalculator(), domain.FilingSingle, d(30000)),
	} {
		w := strategy.CalculateWithdrawal(balances, d(-5000), d(25000))
		assert.True(t, w.Total().IsZero(), "%s withdrew %s with no shortfall", strategy.Name(), w.Total())

		w = strategy.CalculateWithdrawal(balances, decimal.Zero, d(25000))
		assert.True(t, w.Total().IsZero(), "%s withdrew %s with zero shortfall", strategy.Name(), w.Total())
	}
}

func TestBracketFillHeadroom(t *testing.T) {
	tax := NewTaxCalculator()

	// Taxable income 30000 single sits in the 12% bracket topping at 48475,
	// leaving 18475 of headroom.
	strategy := NewBracketFillStrategy(tax, domain.FilingSingle, d(30000))
	balances := BucketBalances{PreTax: d(500000), Roth: d(100000), Investment: d(100000)}

	w := strategy.CalculateWithdrawal(balances, d(10000), decimal.Zero)
	assert.True(t, w.PreTax.Equal(d(18475)),
		"bracket fill should draw the full headroom, got %s", w.PreTax)
	assert.True(t, w.Investment.IsZero())
	assert.True(t, w.Roth.IsZero())
}

func TestBracketFillRemainderOrder(t *testing.T) {
	tax := NewTaxCalculator()

	// Taxable income 100000 single leaves 3350 of headroom below 103350.
	strategy := NewBracketFillStrategy(tax, domain.FilingSingle, d(100000))
	balances := BucketBalances{PreTax: d(500000), Roth: d(100000), Investment: d(5000)}

	w := strategy.CalculateWithdrawal(balances, d(30000), decimal.Zero)
	assert.True(t, w.PreTax.Equal(d(3350)), "pre-tax headroom, got %s", w.PreTax)
	assert.True(t, w.Investment.Equal(d(5000)), "investment next, got %s", w.Investment)
	assert.True(t, w.Roth.Equal(d(21650)), "roth last, got %s", w.Roth)
}

func TestBracketFillRMDFloor(t *testing.T) {
	tax := NewTaxCalculator()
	strategy := NewBracketFillStrategy(tax, domain.FilingSingle, d(100000))
	balances := BucketBalances{PreTax: d(500000), Roth: d(100000), Investment: d(100000)}

	w := strategy.CalculateWithdrawal(balances, d(10000), d(20000))
	assert.True(t, w.PreTax.Equal(d(20000)), "RMD overrides headroom, got %s", w.PreTax)
}

// TestBracketFillDrawsAtLeastWaterfallPreTax: with ample bracket headroom the
// bracket-fill strategy always draws at least as much pre-tax income as
// waterfall would for the same inputs.
func TestBracketFillDrawsAtLeastWaterfallPreTax(t *testing.T) {
	tax := NewTaxCalculator()
	balances := BucketBalances{PreTax: d(800000), Roth: d(100000), Investment: d(50000)}
	taxableIncome := d(20000) // headroom 28475 in the 12% bracket

	for shortfall := int64(1000); shortfall <= 25000; shortfall += 4000 {
		waterfall := NewWaterfallStrategy().CalculateWithdrawal(balances, d(shortfall), decimal.Zero)
		fill := NewBracketFillStrategy(tax, domain.FilingSingle, taxableIncome).
			CalculateWithdrawal(balances, d(shortfall), decimal.Zero)
		assert.True(t, fill.PreTax.GreaterThanOrEqual(waterfall.PreTax),
			"shortfall %d: bracket fill %s < waterfall %s",
			shortfall, fill.PreTax.StringFixed(0), waterfall.PreTax.StringFixed(0))
	}
}
