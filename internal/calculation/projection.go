package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/wealthtrail/household-projector/internal/domain"
)

var one = decimal.NewFromInt(1)

// personYear is one household member's resolved status for a projection year.
type personYear struct {
	Alive        bool
	Age          int
	Retired      bool
	IsTransition bool

	// WorkedFraction is 1 in full working years, the pre-birthday share of
	// the transition year, and 0 once fully retired.
	WorkedFraction decimal.Decimal
}

func resolvePersonYear(p *domain.Person, year int) personYear {
	age := p.Age(year)
	py := personYear{
		Alive:          year <= p.BirthYear+p.DeathAge,
		Age:            age,
		Retired:        age >= p.RetirementAge,
		IsTransition:   age == p.RetirementAge,
		WorkedFraction: one,
	}
	switch {
	case py.IsTransition:
		py.WorkedFraction = p.PreRetirementFraction()
	case py.Retired:
		py.WorkedFraction = decimal.Zero
	}
	return py
}

func (py personYear) ownerYear(p *domain.Person) OwnerYear {
	return OwnerYear{
		Age:              py.Age,
		RetirementAge:    p.RetirementAge,
		IsTransitionYear: py.IsTransition,
		WorkedFraction:   p.PreRetirementFraction(),
	}
}

// ProjectRetirement runs the full year-stepping projection from the current
// year through the household's last death age, returning one record per year
// plus the per-account breakdown.
func (e *Engine) ProjectRetirement(hh *domain.ResolvedHousehold) (*domain.ProjectionResult, error) {
	if err := hh.Validate(); err != nil {
		return nil, err
	}

	status := hh.Tax.FilingStatus.Normalize()
	currentAge := hh.Primary.Age(hh.CurrentYear)
	endAge := hh.ProjectionEndAge()

	var mortgageYears map[int]MortgageYearSummary
	if hh.Home.HasMortgage() {
		mortgageYears = AnnualSummaries(e.GenerateAmortizationSchedule(hh))
	}

	rmdCalc := NewRMDCalculator(hh.Primary.BirthYear)
	ledgerState := NewLedgerState(hh.Accounts)

	// Legacy aggregate buckets run in parallel with the itemized ledger for
	// backward-compatible reporting.
	legacy := newLegacyBuckets(hh)

	otherAssets := hh.Assumptions.OtherAssets
	homeValue := decimal.Zero
	if hh.Home != nil {
		homeValue = hh.Home.Value
	}
	homeSold := false

	// Per-stream salary growth factors, compounded once per elapsed year.
	primaryFactor := one
	spouseFactor := one
	sourceFactors := make([]decimal.Decimal, len(hh.IncomeSources))
	for i := range sourceFactors {
		sourceFactors[i] = one
	}
	inflation := one

	livingPre, livingPost := annualLivingExpenses(hh)

	result := &domain.ProjectionResult{
		Years: make([]domain.ProjectionYear, 0, endAge-currentAge+1),
	}

	for age := currentAge; age <= endAge; age++ {
		yearIndex := age - currentAge
		year := hh.CurrentYear + yearIndex
		if yearIndex > 0 {
			inflation = inflation.Mul(one.Add(hh.Assumptions.InflationRate))
			primaryFactor = primaryFactor.Mul(one.Add(hh.Primary.SalaryGrowthRate))
			if hh.Spouse != nil {
				spouseFactor = spouseFactor.Mul(one.Add(hh.Spouse.SalaryGrowthRate))
			}
			for i, src := range hh.IncomeSources {
				sourceFactors[i] = sourceFactors[i].Mul(one.Add(src.GrowthRate))
			}
		}

		primary := resolvePersonYear(&hh.Primary, year)
		var spouse personYear
		if hh.Spouse != nil {
			spouse = resolvePersonYear(hh.Spouse, year)
		}

		// Gross income. Income sources, when configured, replace the
		// primary salary entirely; the spouse salary is separate and is
		// intentionally never prorated in the spouse's transition year.
		salaryPrimary := decimal.Zero
		if primary.Alive {
			if len(hh.IncomeSources) > 0 {
				for i, src := range hh.IncomeSources {
					salaryPrimary = salaryPrimary.Add(src.Amount.Mul(sourceFactors[i]))
				}
			} else {
				salaryPrimary = hh.Primary.Salary.Mul(primaryFactor)
			}
			salaryPrimary = salaryPrimary.Mul(primary.WorkedFraction)
		}

		salarySpouse := decimal.Zero
		if hh.Spouse != nil && spouse.Alive && (!spouse.Retired || spouse.IsTransition) {
			salarySpouse = hh.Spouse.Salary.Mul(spouseFactor)
		}

		ssBenefit := ssBenefitFor(&hh.Primary, primary)
		if hh.Spouse != nil {
			ssBenefit = ssBenefit.Add(ssBenefitFor(hh.Spouse, spouse))
		}

		grossIncome := salaryPrimary.Add(salarySpouse).Add(ssBenefit)

		// Living expenses follow the primary person's phase, blended by
		// months in the transition year, with inflation from year 1 on.
		living := livingPost
		switch {
		case primary.IsTransition:
			living = livingPre.Mul(primary.WorkedFraction).
				Add(livingPost.Mul(one.Sub(primary.WorkedFraction)))
		case !primary.Retired:
			living = livingPre
		}
		living = living.Mul(inflation)

		// Mortgage and home. A configured sale zeroes the home value and
		// loan permanently; proceeds accrue to other assets once.
		mortgagePayment := decimal.Zero
		mortgageBalance := decimal.Zero
		if s, ok := mortgageYears[year]; ok {
			mortgagePayment = s.TotalPayments
			mortgageBalance = s.EndOfYearBalance
		}
		if hh.Home != nil && hh.Home.SaleYear != 0 && year >= hh.Home.SaleYear {
			if !homeSold {
				otherAssets = otherAssets.Add(hh.Home.SaleProceeds)
				homeSold = true
			}
			homeValue = decimal.Zero
			mortgageBalance = decimal.Zero
			if year > hh.Home.SaleYear {
				mortgagePayment = decimal.Zero
			}
		} else if yearIndex > 0 && hh.Home != nil {
			homeValue = homeValue.Mul(one.Add(hh.Home.AppreciationRate))
		}

		totalSpending := living.Add(mortgagePayment)

		// Applicable state: the partial transition year always taxes in the
		// working state.
		taxState := resolveTaxState(&hh.Tax, primary)

		owners := map[domain.Role]OwnerYear{
			domain.RolePrimary: primary.ownerYear(&hh.Primary),
		}
		if hh.Spouse != nil {
			owners[domain.RoleSpouse] = spouse.ownerYear(hh.Spouse)
		}

		contribs := pendingContributions(hh, ledgerState, owners, year)

		// Withdrawals happen only once the primary is retired; the RMD is
		// enforced solely through this path, never as a standalone event.
		otherOrdinary := salaryPrimary.Add(salarySpouse).Sub(contribs.PreTaxEmployee)
		taxableSS := e.Tax.TaxableSocialSecurity(ssBenefit, otherOrdinary, status)
		shortfall := totalSpending.Sub(grossIncome)

		var w Withdrawal
		rmd := decimal.Zero
		if primary.Retired {
			preTaxTotal := ledgerState.BalanceByType(domain.AccountPreTax).Add(legacy.PreTax)
			rmd = rmdCalc.Required(preTaxTotal, primary.Age)
			balances := BucketBalances{
				PreTax:     preTaxTotal,
				Roth:       ledgerState.BalanceByType(domain.AccountRoth).Add(legacy.Roth),
				Investment: ledgerState.BalanceByType(domain.AccountInvestment).Add(legacy.Investment),
			}
			taxableBefore := e.Tax.ApplyStandardDeduction(otherOrdinary.Add(taxableSS), status)
			strategy := e.withdrawalStrategy(hh.Tax.Strategy, status, taxableBefore)
			w = strategy.CalculateWithdrawal(balances, shortfall, rmd)
		}

		// Taxes. Pre-tax withdrawals are ordinary income; the investment
		// draw is taxed as capital gains stacked on ordinary income.
		agi := otherOrdinary.Add(taxableSS).Add(w.PreTax)
		taxable := e.Tax.ApplyStandardDeduction(agi, status)
		federal := e.Tax.FederalTax(taxable, status)
		stateTax := e.Tax.StateTax(taxable, taxState, status)
		capGains := e.Tax.CapitalGainsTax(w.Investment, taxable, status)
		totalTax := federal.Add(stateTax).Add(capGains)
		netIncome := grossIncome.Add(w.Total()).Sub(totalTax)

		// Advance the itemized ledger, then let the legacy buckets absorb
		// whatever draw the itemized accounts could not cover.
		ledgerDraws, legacyDraws := splitWithdrawals(w, ledgerState)
		var accountRows []domain.AccountYear
		ledgerState, accountRows = e.Ledger.Step(ledgerState, LedgerYearInputs{
			Year:        year,
			YearIndex:   yearIndex,
			Owners:      owners,
			Withdrawals: ledgerDraws,
		})
		result.AccountsBreakdown = append(result.AccountsBreakdown, accountRows...)

		legacy.advance(hh.Assumptions.GrowthRate, yearIndex, contribs, legacyDraws)

		balancePreTax := ledgerState.BalanceByType(domain.AccountPreTax).Add(legacy.PreTax)
		balanceRoth := ledgerState.BalanceByType(domain.AccountRoth).Add(legacy.Roth)
		balanceInvestment := ledgerState.BalanceByType(domain.AccountInvestment).Add(legacy.Investment)
		balanceCash := ledgerState.BalanceByType(domain.AccountCash)
		totalSavings := ledgerState.TotalBalance().
			Add(legacy.PreTax).Add(legacy.Roth).Add(legacy.Investment)

		homeEquity := homeValue.Sub(mortgageBalance)
		if homeEquity.LessThan(decimal.Zero) {
			homeEquity = decimal.Zero
		}
		netWorth := totalSavings.Add(homeEquity).Add(otherAssets)

		record := domain.ProjectionYear{
			Year:       year,
			AgePrimary: primary.Age,

			SalaryPrimary:    salaryPrimary,
			SalarySpouse:     salarySpouse,
			SSBenefit:        ssBenefit,
			TaxableSS:        taxableSS,
			TotalGrossIncome: grossIncome,

			AGI:             agi,
			TaxableIncome:   taxable,
			FederalTax:      federal,
			StateTax:        stateTax,
			CapitalGainsTax: capGains,
			TotalTax:        totalTax,
			TaxState:        taxState,

			LivingExpenses:  living,
			MortgagePayment: mortgagePayment,
			TotalExpenses:   totalSpending,

			PreTaxContributions:  contribs.PreTaxEmployee,
			RothContributions:    contribs.Roth,
			InvestmentContribs:   contribs.Investment,
			EmployerMatch:        contribs.EmployerMatch,
			WithdrawalPreTax:     w.PreTax,
			WithdrawalRoth:       w.Roth,
			WithdrawalInvestment: w.Investment,
			RMDRequired:          rmd,

			BalancePreTax:     balancePreTax,
			BalanceRoth:       balanceRoth,
			BalanceInvestment: balanceInvestment,
			BalanceCash:       balanceCash,
			TotalSavings:      totalSavings,

			HomeValue:       homeValue,
			MortgageBalance: mortgageBalance,
			HomeEquity:      homeEquity,
			OtherAssets:     otherAssets,
			NetWorth:        netWorth,

			NetIncome: netIncome,
			CashFlow:  netIncome.Sub(totalSpending),

			PrimaryRetired:   primary.Retired,
			IsTransitionYear: primary.IsTransition || (hh.Spouse != nil && spouse.IsTransition),
			HomeSold:         homeSold,
		}
		if hh.Spouse != nil {
			record.AgeSpouse = spouse.Age
			record.SpouseRetired = spouse.Retired
		}

		result.Years = append(result.Years, record)
	}

	return result, nil
}

// withdrawalStrategy selects the configured strategy for one year's tax
// position, defaulting to waterfall.
func (e *Engine) withdrawalStrategy(strategy domain.WithdrawalStrategy, status domain.FilingStatus, taxableIncome decimal.Decimal) WithdrawalStrategy {
	switch strategy {
	case domain.StrategyBracketFill:
		return NewBracketFillStrategy(e.Tax, status, taxableIncome)
	default:
		return NewWaterfallStrategy()
	}
}

// resolveTaxState picks the state whose tax tables apply this year.
func resolveTaxState(cfg *domain.TaxConfig, primary personYear) string {
	if cfg.RetirementState == "" {
		return cfg.WorkingState
	}
	switch cfg.StateChange.Mode {
	case domain.StateChangeAtAge:
		if primary.Age >= cfg.StateChange.Age {
			return cfg.RetirementState
		}
	default:
		// At retirement: from the first full retirement year onward.
		if primary.Retired && !primary.IsTransition {
			return cfg.RetirementState
		}
	}
	return cfg.WorkingState
}

// annualLivingExpenses sums explicit expense records by phase, falling back
// to the legacy flat totals when none are configured.
func annualLivingExpenses(hh *domain.ResolvedHousehold) (pre, post decimal.Decimal) {
	if len(hh.Expenses) == 0 {
		return hh.Assumptions.PreRetirementSpending, hh.Assumptions.PostRetirementSpending
	}
	for _, exp := range hh.Expenses {
		annual := exp.Annual()
		if exp.PreRetirement {
			pre = pre.Add(annual)
		}
		if exp.PostRetirement {
			post = post.Add(annual)
		}
	}
	return pre, post
}

// ssBenefitFor returns a person's Social Security benefit for the year, zero
// before the claim age or when no benefit is configured.
func ssBenefitFor(p *domain.Person, py personYear) decimal.Decimal {
	if !py.Alive || p.SSClaimAge <= 0 || py.Age < p.SSClaimAge {
		return decimal.Zero
	}
	return p.SSBenefitAnnual
}

// yearContributions aggregates the household's pending contributions for one
// year across itemized accounts and legacy buckets.
type yearContributions struct {
	PreTaxEmployee decimal.Decimal
	Roth           decimal.Decimal
	Investment     decimal.Decimal
	EmployerMatch  decimal.Decimal

	// Legacy per-bucket employee amounts, applied to the legacy balances.
	LegacyPreTax     decimal.Decimal
	LegacyRoth       decimal.Decimal
	LegacyInvestment decimal.Decimal
}

func pendingContributions(hh *domain.ResolvedHousehold, state LedgerState, owners map[domain.Role]OwnerYear, year int) yearContributions {
	var c yearContributions

	for _, st := range state.Accounts {
		owner, ok := owners[st.Account.Owner]
		if !ok {
			continue
		}
		contrib, match := contributionFor(st.Account, owner, year)
		c.EmployerMatch = c.EmployerMatch.Add(match)
		switch st.Account.Type {
		case domain.AccountPreTax:
			c.PreTaxEmployee = c.PreTaxEmployee.Add(contrib)
		case domain.AccountRoth:
			c.Roth = c.Roth.Add(contrib)
		case domain.AccountInvestment:
			c.Investment = c.Investment.Add(contrib)
		}
	}

	addLegacy := func(p *domain.Person, owner OwnerYear) {
		fraction := legacyContributionFraction(p, owner)
		if fraction.IsZero() {
			return
		}
		pre := p.PreTaxContribution.Mul(fraction)
		roth := p.RothContribution.Mul(fraction)
		inv := p.InvestmentContribution.Mul(fraction)
		c.LegacyPreTax = c.LegacyPreTax.Add(pre)
		c.LegacyRoth = c.LegacyRoth.Add(roth)
		c.LegacyInvestment = c.LegacyInvestment.Add(inv)
		c.PreTaxEmployee = c.PreTaxEmployee.Add(pre)
		c.Roth = c.Roth.Add(roth)
		c.Investment = c.Investment.Add(inv)
	}
	addLegacy(&hh.Primary, owners[domain.RolePrimary])
	if hh.Spouse != nil {
		addLegacy(hh.Spouse, owners[domain.RoleSpouse])
	}

	return c
}

// legacyContributionFraction evaluates the legacy buckets' stop rule: an
// explicit contribution-stop age when set, otherwise the retirement age with
// the transition year pro-rated to months worked.
func legacyContributionFraction(p *domain.Person, owner OwnerYear) decimal.Decimal {
	if p.ContributionStopAge > 0 {
		if owner.Age >= p.ContributionStopAge {
			return decimal.Zero
		}
	} else if owner.Age >= p.RetirementAge && !owner.IsTransitionYear {
		return decimal.Zero
	}
	if owner.IsTransitionYear {
		return owner.WorkedFraction
	}
	return one
}

// legacyBuckets carries the aggregate pre-tax/Roth/investment balances that
// predate itemized accounts.
type legacyBuckets struct {
	PreTax     decimal.Decimal
	Roth       decimal.Decimal
	Investment decimal.Decimal
}

func newLegacyBuckets(hh *domain.ResolvedHousehold) *legacyBuckets {
	lb := &legacyBuckets{
		PreTax:     hh.Primary.PreTaxBalance,
		Roth:       hh.Primary.RothBalance,
		Investment: hh.Primary.InvestmentBalance,
	}
	if hh.Spouse != nil {
		lb.PreTax = lb.PreTax.Add(hh.Spouse.PreTaxBalance)
		lb.Roth = lb.Roth.Add(hh.Spouse.RothBalance)
		lb.Investment = lb.Investment.Add(hh.Spouse.InvestmentBalance)
	}
	return lb
}

// advance applies one year of growth, contributions and withdrawals to the
// legacy buckets, flooring at zero. The current year accrues no growth.
func (lb *legacyBuckets) advance(growthRate decimal.Decimal, yearIndex int, c yearContributions, draws map[domain.AccountType]decimal.Decimal) {
	step := func(balance, contrib, draw decimal.Decimal) decimal.Decimal {
		if yearIndex > 0 {
			balance = balance.Mul(one.Add(growthRate))
		}
		balance = balance.Add(contrib).Sub(draw)
		if balance.LessThan(decimal.Zero) {
			return decimal.Zero
		}
		return balance
	}
	lb.PreTax = step(lb.PreTax, c.LegacyPreTax, draws[domain.AccountPreTax])
	lb.Roth = step(lb.Roth, c.LegacyRoth, draws[domain.AccountRoth])
	lb.Investment = step(lb.Investment, c.LegacyInvestment, draws[domain.AccountInvestment])
}

// splitWithdrawals divides the strategy's bucket draws between itemized
// accounts and the legacy buckets: itemized accounts fund what they can and
// the legacy buckets cover the remainder.
func splitWithdrawals(w Withdrawal, state LedgerState) (ledger, legacy map[domain.AccountType]decimal.Decimal) {
	ledger = make(map[domain.AccountType]decimal.Decimal)
	legacy = make(map[domain.AccountType]decimal.Decimal)
	for acctType, draw := range map[domain.AccountType]decimal.Decimal{
		domain.AccountPreTax:     w.PreTax,
		domain.AccountRoth:       w.Roth,
		domain.AccountInvestment: w.Investment,
	} {
		if draw.LessThanOrEqual(decimal.Zero) {
			continue
		}
		available := state.BalanceByType(acctType)
		fromLedger := decimal.Min(draw, available)
		ledger[acctType] = fromLedger
		legacy[acctType] = draw.Sub(fromLedger)
	}
	return ledger, legacy
}
