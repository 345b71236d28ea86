package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Role identifies which household member a record belongs to.
type Role string

const (
	RolePrimary Role = "primary"
	RoleSpouse  Role = "spouse"
)

// FilingStatus selects the federal filing status for tax table lookups.
type FilingStatus string

const (
	FilingSingle            FilingStatus = "single"
	FilingMarriedJointly    FilingStatus = "married_jointly"
	FilingMarriedSeparately FilingStatus = "married_separately"
	FilingHeadOfHousehold   FilingStatus = "head_of_household"
)

// Normalize maps any unrecognized filing status to single, the documented
// default for bad input.
func (fs FilingStatus) Normalize() FilingStatus {
	switch fs {
	case FilingSingle, FilingMarriedJointly, FilingMarriedSeparately, FilingHeadOfHousehold:
		return fs
	default:
		return FilingSingle
	}
}

// AccountType classifies a savings account for contribution, withdrawal and
// tax treatment.
type AccountType string

const (
	AccountPreTax     AccountType = "pre_tax"
	AccountRoth       AccountType = "roth"
	AccountInvestment AccountType = "investment"
	AccountCash       AccountType = "cash_savings"
	AccountOther      AccountType = "other"
)

// WithdrawalStrategy selects how retirement shortfalls are funded.
type WithdrawalStrategy string

const (
	StrategyWaterfall   WithdrawalStrategy = "waterfall"
	StrategyBracketFill WithdrawalStrategy = "tax_bracket_fill"
)

// StopMode is the discriminant for a savings account's stop-contributing rule.
type StopMode string

const (
	StopAtRetirement StopMode = "retirement"
	StopAtAge        StopMode = "specific_age"
	StopAtDate       StopMode = "specific_date"
)

// StopRule describes when contributions to an account cease. Exactly one of
// Age or Year is meaningful depending on Mode.
type StopRule struct {
	Mode StopMode `yaml:"mode" json:"mode"`
	Age  int      `yaml:"age,omitempty" json:"age,omitempty"`
	Year int      `yaml:"year,omitempty" json:"year,omitempty"`
}

// StateChangeMode is the discriminant for a retirement-state switch policy.
type StateChangeMode string

const (
	StateChangeAtRetirement StateChangeMode = "at_retirement"
	StateChangeAtAge        StateChangeMode = "at_age"
)

// StateChangePolicy describes when taxation moves from the working state to
// the retirement state.
type StateChangePolicy struct {
	Mode StateChangeMode `yaml:"mode" json:"mode"`
	Age  int             `yaml:"age,omitempty" json:"age,omitempty"`
}

// Person holds the demographic and legacy aggregate financial inputs for one
// household member. It is read-only to the engine.
type Person struct {
	Role          Role `yaml:"role" json:"role"`
	BirthYear     int  `yaml:"birth_year" json:"birth_year"`
	BirthMonth    int  `yaml:"birth_month" json:"birth_month"` // 1-12
	RetirementAge int  `yaml:"retirement_age" json:"retirement_age"`
	DeathAge      int  `yaml:"death_age" json:"death_age"`

	Salary           decimal.Decimal `yaml:"salary" json:"salary"`
	SalaryGrowthRate decimal.Decimal `yaml:"salary_growth_rate" json:"salary_growth_rate"`

	// Legacy aggregate buckets, kept for backward-compatible reporting
	// alongside itemized savings accounts.
	PreTaxBalance          decimal.Decimal `yaml:"pre_tax_balance" json:"pre_tax_balance"`
	PreTaxContribution     decimal.Decimal `yaml:"pre_tax_contribution" json:"pre_tax_contribution"`
	RothBalance            decimal.Decimal `yaml:"roth_balance" json:"roth_balance"`
	RothContribution       decimal.Decimal `yaml:"roth_contribution" json:"roth_contribution"`
	InvestmentBalance      decimal.Decimal `yaml:"investment_balance" json:"investment_balance"`
	InvestmentContribution decimal.Decimal `yaml:"investment_contribution" json:"investment_contribution"`
	ContributionStopAge    int             `yaml:"contribution_stop_age,omitempty" json:"contribution_stop_age,omitempty"`

	// Optional Social Security benefit stream (annual, claimed at SSClaimAge).
	SSBenefitAnnual decimal.Decimal `yaml:"ss_benefit_annual,omitempty" json:"ss_benefit_annual,omitempty"`
	SSClaimAge      int             `yaml:"ss_claim_age,omitempty" json:"ss_claim_age,omitempty"`

	// Married marks a spouse record as participating in the projection.
	Married bool `yaml:"married,omitempty" json:"married,omitempty"`
}

// Age returns the age attained during the given calendar year (age as of the
// birthday occurring in that year).
func (p *Person) Age(calendarYear int) int {
	return calendarYear - p.BirthYear
}

// RetirementYear returns the calendar year in which the person reaches their
// retirement age.
func (p *Person) RetirementYear() int {
	return p.BirthYear + p.RetirementAge
}

// PreRetirementFraction returns the portion of the retirement-transition year
// that falls before the person's birthday month. Months January through the
// month before the birth month count as worked.
func (p *Person) PreRetirementFraction() decimal.Decimal {
	month := p.BirthMonth
	if month < 1 || month > 12 {
		month = 1
	}
	return decimal.NewFromInt(int64(month - 1)).Div(decimal.NewFromInt(12))
}

// SavingsAccount is one itemized financial account tracked by the ledger.
// Balance is never negative; identity is stable across a projection run.
type SavingsAccount struct {
	ID            string          `yaml:"id" json:"id"`
	Name          string          `yaml:"name" json:"name"`
	Type          AccountType     `yaml:"type" json:"type"`
	Owner         Role            `yaml:"owner" json:"owner"`
	Balance       decimal.Decimal `yaml:"balance" json:"balance"`
	Contribution  decimal.Decimal `yaml:"contribution" json:"contribution"`
	EmployerMatch decimal.Decimal `yaml:"employer_match" json:"employer_match"`
	ReturnRate    decimal.Decimal `yaml:"return_rate" json:"return_rate"`
	Stop          StopRule        `yaml:"stop" json:"stop"`
}

// UnmarshalYAML fills in the default stop rule when none is configured.
func (sa *SavingsAccount) UnmarshalYAML(value *yaml.Node) error {
	type alias SavingsAccount
	var aux alias
	if err := value.Decode(&aux); err != nil {
		return err
	}
	*sa = SavingsAccount(aux)
	if sa.Stop.Mode == "" {
		sa.Stop.Mode = StopAtRetirement
	}
	return nil
}

// Expense is a named recurring cost with independent phase flags.
type Expense struct {
	Name           string          `yaml:"name" json:"name"`
	MonthlyAmount  decimal.Decimal `yaml:"monthly_amount" json:"monthly_amount"`
	PreRetirement  bool            `yaml:"pre_retirement" json:"pre_retirement"`
	PostRetirement bool            `yaml:"post_retirement" json:"post_retirement"`
}

// Annual returns the expense's yearly cost.
func (e Expense) Annual() decimal.Decimal {
	return e.MonthlyAmount.Mul(decimal.NewFromInt(12))
}

// IncomeSource is a salary-like stream. When any income sources are present
// they replace the primary person's legacy salary field entirely.
type IncomeSource struct {
	Name       string          `yaml:"name" json:"name"`
	Amount     decimal.Decimal `yaml:"amount" json:"amount"`
	GrowthRate decimal.Decimal `yaml:"growth_rate" json:"growth_rate"`
}

// HomeAsset describes the household's home and its mortgage. One mortgage is
// supported per projection.
type HomeAsset struct {
	Value            decimal.Decimal `yaml:"value" json:"value"`
	AppreciationRate decimal.Decimal `yaml:"appreciation_rate" json:"appreciation_rate"`

	MortgageBalance decimal.Decimal `yaml:"mortgage_balance" json:"mortgage_balance"`
	InterestRate    decimal.Decimal `yaml:"interest_rate" json:"interest_rate"`
	MonthlyPayment  decimal.Decimal `yaml:"monthly_payment" json:"monthly_payment"`
	ExtraPrincipal  decimal.Decimal `yaml:"extra_principal" json:"extra_principal"`
	PayoffYear      int             `yaml:"payoff_year,omitempty" json:"payoff_year,omitempty"`
	PayoffMonth     int             `yaml:"payoff_month,omitempty" json:"payoff_month,omitempty"`

	SaleYear     int             `yaml:"sale_year,omitempty" json:"sale_year,omitempty"`
	SaleMonth    int             `yaml:"sale_month,omitempty" json:"sale_month,omitempty"`
	SaleProceeds decimal.Decimal `yaml:"sale_proceeds,omitempty" json:"sale_proceeds,omitempty"`
}

// HasMortgage reports whether there is an outstanding loan to amortize.
func (h *HomeAsset) HasMortgage() bool {
	return h != nil && h.MortgageBalance.GreaterThan(decimal.Zero)
}

// TaxConfig carries the household's filing and state selections.
type TaxConfig struct {
	FilingStatus    FilingStatus       `yaml:"filing_status" json:"filing_status"`
	WorkingState    string             `yaml:"working_state" json:"working_state"`
	RetirementState string             `yaml:"retirement_state,omitempty" json:"retirement_state,omitempty"`
	StateChange     StateChangePolicy  `yaml:"state_change,omitempty" json:"state_change,omitempty"`
	Strategy        WithdrawalStrategy `yaml:"withdrawal_strategy" json:"withdrawal_strategy"`
}

// Assumptions carries the global projection parameters.
type Assumptions struct {
	InflationRate decimal.Decimal `yaml:"inflation_rate" json:"inflation_rate"`
	GrowthRate    decimal.Decimal `yaml:"growth_rate" json:"growth_rate"`

	// Legacy flat living-expense totals, used when no Expense records exist.
	PreRetirementSpending  decimal.Decimal `yaml:"pre_retirement_spending" json:"pre_retirement_spending"`
	PostRetirementSpending decimal.Decimal `yaml:"post_retirement_spending" json:"post_retirement_spending"`

	OtherAssets decimal.Decimal `yaml:"other_assets,omitempty" json:"other_assets,omitempty"`
}

// Household is the raw, possibly-sparse input as loaded from configuration.
type Household struct {
	Primary       Person           `yaml:"primary" json:"primary"`
	Spouse        *Person          `yaml:"spouse,omitempty" json:"spouse,omitempty"`
	Accounts      []SavingsAccount `yaml:"accounts" json:"accounts"`
	Expenses      []Expense        `yaml:"expenses" json:"expenses"`
	IncomeSources []IncomeSource   `yaml:"income_sources" json:"income_sources"`
	Home          *HomeAsset       `yaml:"home,omitempty" json:"home,omitempty"`
	Tax           TaxConfig        `yaml:"tax" json:"tax"`
	Assumptions   Assumptions      `yaml:"assumptions" json:"assumptions"`
}

// ResolvedHousehold is the fully-merged input snapshot the projection loop
// consumes. Every default has been applied and every override resolved; the
// engine never consults raw configuration.
type ResolvedHousehold struct {
	Primary       Person
	Spouse        *Person // nil unless married and participating
	Accounts      []SavingsAccount
	Expenses      []Expense
	IncomeSources []IncomeSource
	Home          *HomeAsset
	Tax           TaxConfig
	Assumptions   Assumptions

	// CurrentYear and CurrentMonth anchor year zero of the projection.
	CurrentYear  int
	CurrentMonth time.Month
}

// ProjectionEndAge returns the oldest death age among participating persons,
// expressed in primary-person years.
func (rh *ResolvedHousehold) ProjectionEndAge() int {
	end := rh.Primary.DeathAge
	if rh.Spouse != nil {
		// Convert the spouse's death year into the primary's age that year.
		spouseDeathYear := rh.Spouse.BirthYear + rh.Spouse.DeathAge
		if age := rh.Primary.Age(spouseDeathYear); age > end {
			end = age
		}
	}
	return end
}

// Validate enforces the structural invariants the engine depends on.
func (rh *ResolvedHousehold) Validate() error {
	if rh.Primary.Role != RolePrimary {
		return fmt.Errorf("primary person must have role %q, got %q", RolePrimary, rh.Primary.Role)
	}
	if rh.Primary.BirthYear <= 0 {
		return fmt.Errorf("primary birth year is required")
	}
	if rh.Primary.BirthMonth < 1 || rh.Primary.BirthMonth > 12 {
		return fmt.Errorf("primary birth month must be 1-12, got %d", rh.Primary.BirthMonth)
	}
	if rh.Primary.DeathAge < rh.Primary.RetirementAge {
		return fmt.Errorf("primary death age %d cannot precede retirement age %d",
			rh.Primary.DeathAge, rh.Primary.RetirementAge)
	}
	for i, acct := range rh.Accounts {
		if acct.Balance.LessThan(decimal.Zero) {
			return fmt.Errorf("account %s: balance cannot be negative", acct.ID)
		}
		if acct.ID == "" {
			return fmt.Errorf("account at index %d: id is required", i)
		}
	}
	return nil
}
