package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectionYear is one row of the year-by-year ledger, emitted once per
// primary-person age and never mutated afterwards.
type ProjectionYear struct {
	Year       int `json:"year"` // calendar year
	AgePrimary int `json:"age_primary"`
	AgeSpouse  int `json:"age_spouse,omitempty"`

	// Income
	SalaryPrimary    decimal.Decimal `json:"salary_primary"`
	SalarySpouse     decimal.Decimal `json:"salary_spouse"`
	SSBenefit        decimal.Decimal `json:"ss_benefit"`
	TaxableSS        decimal.Decimal `json:"taxable_ss"`
	TotalGrossIncome decimal.Decimal `json:"total_gross_income"`

	// Taxes
	AGI             decimal.Decimal `json:"agi"`
	TaxableIncome   decimal.Decimal `json:"taxable_income"`
	FederalTax      decimal.Decimal `json:"federal_tax"`
	StateTax        decimal.Decimal `json:"state_tax"`
	CapitalGainsTax decimal.Decimal `json:"capital_gains_tax"`
	TotalTax        decimal.Decimal `json:"total_tax"`
	TaxState        string          `json:"tax_state"`

	// Spending
	LivingExpenses  decimal.Decimal `json:"living_expenses"`
	MortgagePayment decimal.Decimal `json:"mortgage_payment"`
	TotalExpenses   decimal.Decimal `json:"total_expenses"`

	// Contributions and withdrawals by bucket
	PreTaxContributions  decimal.Decimal `json:"pre_tax_contributions"`
	RothContributions    decimal.Decimal `json:"roth_contributions"`
	InvestmentContribs   decimal.Decimal `json:"investment_contributions"`
	EmployerMatch        decimal.Decimal `json:"employer_match"`
	WithdrawalPreTax     decimal.Decimal `json:"withdrawal_pre_tax"`
	WithdrawalRoth       decimal.Decimal `json:"withdrawal_roth"`
	WithdrawalInvestment decimal.Decimal `json:"withdrawal_investment"`
	RMDRequired          decimal.Decimal `json:"rmd_required"`

	// End-of-year balances
	BalancePreTax     decimal.Decimal `json:"balance_pre_tax"`
	BalanceRoth       decimal.Decimal `json:"balance_roth"`
	BalanceInvestment decimal.Decimal `json:"balance_investment"`
	BalanceCash       decimal.Decimal `json:"balance_cash"`
	TotalSavings      decimal.Decimal `json:"total_savings"`

	// Net worth components
	HomeValue       decimal.Decimal `json:"home_value"`
	MortgageBalance decimal.Decimal `json:"mortgage_balance"`
	HomeEquity      decimal.Decimal `json:"home_equity"`
	OtherAssets     decimal.Decimal `json:"other_assets"`
	NetWorth        decimal.Decimal `json:"net_worth"`

	NetIncome decimal.Decimal `json:"net_income"`
	CashFlow  decimal.Decimal `json:"cash_flow"`

	PrimaryRetired   bool `json:"primary_retired"`
	SpouseRetired    bool `json:"spouse_retired"`
	IsTransitionYear bool `json:"is_transition_year"`
	HomeSold         bool `json:"home_sold"`
}

// TotalWithdrawals returns the combined draw across all buckets.
func (py *ProjectionYear) TotalWithdrawals() decimal.Decimal {
	return py.WithdrawalPreTax.Add(py.WithdrawalRoth).Add(py.WithdrawalInvestment)
}

// AccountYear is one savings account's ledger row for a single year.
type AccountYear struct {
	AccountID        string          `json:"account_id"`
	AccountName      string          `json:"account_name"`
	Type             AccountType     `json:"type"`
	Year             int             `json:"year"`
	BeginningBalance decimal.Decimal `json:"beginning_balance"`
	Contribution     decimal.Decimal `json:"contribution"`
	EmployerMatch    decimal.Decimal `json:"employer_match"`
	Withdrawal       decimal.Decimal `json:"withdrawal"`
	Growth           decimal.Decimal `json:"growth"`
	EndingBalance    decimal.Decimal `json:"ending_balance"`
}

// AmortizationRow is one calendar month of the mortgage schedule.
type AmortizationRow struct {
	Year           int             `json:"year"`
	Month          time.Month      `json:"month"`
	Age            int             `json:"age"` // primary person's age at payment
	StartBalance   decimal.Decimal `json:"start_balance"`
	Interest       decimal.Decimal `json:"interest"`
	Principal      decimal.Decimal `json:"principal"`
	ExtraPrincipal decimal.Decimal `json:"extra_principal"`
	TotalPayment   decimal.Decimal `json:"total_payment"`
	EndBalance     decimal.Decimal `json:"end_balance"`
}

// ProjectionResult bundles the engine's two output sequences.
type ProjectionResult struct {
	Years             []ProjectionYear `json:"years"`
	AccountsBreakdown []AccountYear    `json:"accounts_breakdown"`
}
