package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/wealthtrail/household-projector/internal/domain"
)

// TaxCalculator computes federal, state, capital-gains and Social Security
// taxes against the 2025 tables. It is stateless apart from its logger; all
// methods are pure functions of their arguments.
type TaxCalculator struct {
	Logger Logger
}

// NewTaxCalculator creates a tax calculator with a no-op logger.
func NewTaxCalculator() *TaxCalculator {
	return &TaxCalculator{Logger: NopLogger{}}
}

// FederalTax walks the ordered bracket table for the filing status and
// returns the ordinary income tax due. Non-positive income is untaxed;
// unknown filing statuses fall back to single.
func (tc *TaxCalculator) FederalTax(taxableIncome decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	if taxableIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return walkBrackets(taxableIncome, federalBrackets2025[status.Normalize()])
}

// walkBrackets accumulates tax across ordered brackets, stopping once income
// no longer reaches the next bracket floor.
func walkBrackets(income decimal.Decimal, brackets []TaxBracket) decimal.Decimal {
	var total decimal.Decimal
	for _, b := range brackets {
		if income.LessThanOrEqual(b.Min) {
			break
		}
		inBracket := decimal.Min(income, b.Max).Sub(b.Min)
		if inBracket.GreaterThan(decimal.Zero) {
			total = total.Add(inBracket.Mul(b.Rate))
		}
	}
	return total
}

// StandardDeduction returns the deduction for the filing status.
func (tc *TaxCalculator) StandardDeduction(status domain.FilingStatus) decimal.Decimal {
	return standardDeductions2025[status.Normalize()]
}

// ApplyStandardDeduction reduces income by the standard deduction, floored at
// zero.
func (tc *TaxCalculator) ApplyStandardDeduction(income decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	taxable := income.Sub(tc.StandardDeduction(status))
	if taxable.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return taxable
}

// StateTax computes state income tax from the per-state tables. An unknown
// state code is treated as 0% with a logged warning so a bad code degrades
// the projection instead of aborting it.
func (tc *TaxCalculator) StateTax(taxableIncome decimal.Decimal, stateCode string, status domain.FilingStatus) decimal.Decimal {
	if taxableIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	table, ok := stateTaxTables2025[stateCode]
	if !ok {
		tc.Logger.Warnf("unknown state code %q, assuming no state income tax", stateCode)
		return decimal.Zero
	}
	if table.Brackets == nil {
		return taxableIncome.Mul(table.FlatRate)
	}
	return walkBrackets(taxableIncome, stateBracketsFor(table, status))
}

// stateBracketsFor returns the table's brackets adjusted for filing status:
// married-filing-jointly doubles the single-filer limits, everyone else uses
// them as-is.
func stateBracketsFor(table StateTaxTable, status domain.FilingStatus) []TaxBracket {
	if status.Normalize() != domain.FilingMarriedJointly {
		return table.Brackets
	}
	two := decimal.NewFromInt(2)
	doubled := make([]TaxBracket, len(table.Brackets))
	for i, b := range table.Brackets {
		doubled[i] = TaxBracket{Min: b.Min.Mul(two), Max: b.Max.Mul(two), Rate: b.Rate}
	}
	return doubled
}

// CapitalGainsTax taxes long-term gains stacked on top of ordinary income:
// the portion of total income above each rate threshold is taxed at that
// rate, capped by the gains remaining, so gains are taxed at the marginal
// rate implied by total income rather than gains alone.
func (tc *TaxCalculator) CapitalGainsTax(gains, ordinaryIncome decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	if gains.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	thresholds := capGainsThresholds2025[status.Normalize()]
	totalIncome := ordinaryIncome.Add(gains)

	remaining := gains
	var tax decimal.Decimal
	for _, step := range []struct {
		threshold decimal.Decimal
		rate      decimal.Decimal
	}{
		{thresholds.FifteenRateTop, capGainsRate20},
		{thresholds.ZeroRateTop, capGainsRate15},
	} {
		above := totalIncome.Sub(step.threshold)
		if above.LessThan(decimal.Zero) {
			above = decimal.Zero
		}
		amount := decimal.Min(remaining, above)
		if amount.GreaterThan(decimal.Zero) {
			tax = tax.Add(amount.Mul(step.rate))
			remaining = remaining.Sub(amount)
		}
	}
	// Whatever gains remain fall in the 0% bracket.
	return tax
}

// TaxableSocialSecurity returns the federally taxable portion of a Social
// Security benefit. Combined income is other income plus half the benefit;
// up to 50% of benefits are taxable above the first threshold and up to 85%
// above the second, never exceeding 85% of the gross benefit.
func (tc *TaxCalculator) TaxableSocialSecurity(ssBenefit, otherIncome decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	if ssBenefit.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	thresholds := ssThresholds2025[status.Normalize()]
	half := decimal.NewFromFloat(0.5)
	cap85 := decimal.NewFromFloat(0.85)

	combined := otherIncome.Add(ssBenefit.Mul(half))
	switch {
	case combined.LessThanOrEqual(thresholds.First):
		return decimal.Zero
	case combined.LessThanOrEqual(thresholds.Second):
		excess := combined.Sub(thresholds.First).Mul(half)
		return decimal.Min(excess, ssBenefit.Mul(half))
	default:
		base := decimal.Min(thresholds.Second.Sub(thresholds.First).Mul(half), ssBenefit.Mul(half))
		taxable := combined.Sub(thresholds.Second).Mul(cap85).Add(base)
		return decimal.Min(taxable, ssBenefit.Mul(cap85))
	}
}

// MarginalBracketTop returns the upper limit of the federal bracket the given
// taxable income falls in. Used by the bracket-fill withdrawal strategy to
// size its headroom.
func (tc *TaxCalculator) MarginalBracketTop(taxableIncome decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	brackets := federalBrackets2025[status.Normalize()]
	for _, b := range brackets {
		if taxableIncome.LessThan(b.Max) {
			return b.Max
		}
	}
	return brackets[len(brackets)-1].Max
}
