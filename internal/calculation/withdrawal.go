package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/wealthtrail/household-projector/internal/domain"
)

// BucketBalances carries the funds available per account-type bucket when a
// withdrawal is planned.
type BucketBalances struct {
	PreTax     decimal.Decimal
	Roth       decimal.Decimal
	Investment decimal.Decimal
}

// Withdrawal is the per-bucket draw a strategy decides on.
type Withdrawal struct {
	PreTax     decimal.Decimal
	Roth       decimal.Decimal
	Investment decimal.Decimal
}

// Total returns the combined draw across buckets.
func (w Withdrawal) Total() decimal.Decimal {
	return w.PreTax.Add(w.Roth).Add(w.Investment)
}

// WithdrawalStrategy decides how much to draw from each account type to cover
// a spending shortfall, subject to the RMD floor on the pre-tax draw.
//
// When the shortfall is zero or negative no withdrawal occurs at all, even in
// an RMD year: the RMD is enforced only through the withdrawal path. This is
// deliberate; the distribution is still reported so callers can surface it.
type WithdrawalStrategy interface {
	CalculateWithdrawal(balances BucketBalances, shortfall, rmd decimal.Decimal) Withdrawal
	Name() string
}

// WaterfallStrategy draws taxable investment first, then pre-tax, then Roth.
// This favors capital-gains-rate income and preserves tax-free Roth growth
// the longest.
type WaterfallStrategy struct{}

// NewWaterfallStrategy creates the default withdrawal strategy.
func NewWaterfallStrategy() *WaterfallStrategy {
	return &WaterfallStrategy{}
}

// CalculateWithdrawal draws max(shortfall, rmd) through the bucket order,
// each bucket capped by its balance, then forces the pre-tax draw up to
// min(rmd, balance) if the pass left it below the RMD floor.
func (ws *WaterfallStrategy) CalculateWithdrawal(balances BucketBalances, shortfall, rmd decimal.Decimal) Withdrawal {
	if shortfall.LessThanOrEqual(decimal.Zero) {
		return Withdrawal{}
	}

	remaining := decimal.Max(shortfall, rmd)
	var w Withdrawal

	w.Investment = decimal.Min(remaining, balances.Investment)
	remaining = remaining.Sub(w.Investment)

	w.PreTax = decimal.Min(remaining, balances.PreTax)
	remaining = remaining.Sub(w.PreTax)

	w.Roth = decimal.Min(remaining, balances.Roth)

	// RMD is a floor on the pre-tax draw, not optional.
	if w.PreTax.LessThan(rmd) {
		w.PreTax = decimal.Min(rmd, balances.PreTax)
	}

	return w
}

// Name returns the strategy identifier.
func (ws *WaterfallStrategy) Name() string {
	return string(domain.StrategyWaterfall)
}

// BracketFillStrategy draws pre-tax funds up to the household's current
// marginal-bracket headroom before touching other buckets. This pushes more
// ordinary-rate income into already-partly-filled lower brackets, lowering
// the average tax rate at the cost of depleting tax-advantaged balances
// faster.
type BracketFillStrategy struct {
	Tax    *TaxCalculator
	Status domain.FilingStatus

	// TaxableIncome is the year's taxable income excluding the withdrawal
	// itself, including any taxable Social Security.
	TaxableIncome decimal.Decimal
}

// NewBracketFillStrategy creates a bracket-fill strategy for one projection
// year's tax position.
func NewBracketFillStrategy(tax *TaxCalculator, status domain.FilingStatus, taxableIncome decimal.Decimal) *BracketFillStrategy {
	return &BracketFillStrategy{Tax: tax, Status: status, TaxableIncome: taxableIncome}
}

// CalculateWithdrawal fills the current federal bracket with pre-tax income
// (never less than the RMD floor), then covers any remaining shortfall from
// taxable investment, then Roth.
func (bf *BracketFillStrategy) CalculateWithdrawal(balances BucketBalances, shortfall, rmd decimal.Decimal) Withdrawal {
	if shortfall.LessThanOrEqual(decimal.Zero) {
		return Withdrawal{}
	}

	headroom := bf.Tax.MarginalBracketTop(bf.TaxableIncome, bf.Status).Sub(bf.TaxableIncome)
	if headroom.LessThan(decimal.Zero) {
		headroom = decimal.Zero
	}

	var w Withdrawal
	w.PreTax = decimal.Min(headroom, balances.PreTax)
	if w.PreTax.LessThan(rmd) {
		w.PreTax = decimal.Min(rmd, balances.PreTax)
	}

	remaining := shortfall.Sub(w.PreTax)
	if remaining.GreaterThan(decimal.Zero) {
		w.Investment = decimal.Min(remaining, balances.Investment)
		remaining = remaining.Sub(w.Investment)
		w.Roth = decimal.Min(remaining, balances.Roth)
	}

	return w
}

// Name returns the strategy identifier.
func (bf *BracketFillStrategy) Name() string {
	return string(domain.StrategyBracketFill)
}
