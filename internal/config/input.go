// Package config loads household configuration files and resolves them into
// the fully-merged snapshot the projection engine consumes.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/wealthtrail/household-projector/internal/domain"
)

// Documented defaults applied during resolution.
const (
	DefaultRetirementAge = 65
	DefaultDeathAge      = 95
	DefaultSSClaimAge    = 67
)

// Parser loads and validates household input files.
type Parser struct{}

// NewParser creates a new input parser.
func NewParser() *Parser {
	return &Parser{}
}

// LoadFromFile reads a YAML household file.
func (p *Parser) LoadFromFile(filename string) (*domain.Household, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var hh domain.Household
	if err := yaml.Unmarshal(data, &hh); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := p.ValidateHousehold(&hh); err != nil {
		return nil, fmt.Errorf("household validation failed: %w", err)
	}

	return &hh, nil
}

// ValidateHousehold checks the raw input for errors that resolution cannot
// repair with defaults.
func (p *Parser) ValidateHousehold(hh *domain.Household) error {
	if hh.Primary.BirthYear <= 0 {
		return fmt.Errorf("primary: birth_year is required")
	}
	if hh.Primary.BirthMonth < 0 || hh.Primary.BirthMonth > 12 {
		return fmt.Errorf("primary: birth_month must be 1-12, got %d", hh.Primary.BirthMonth)
	}
	if hh.Spouse != nil && hh.Spouse.Married && hh.Spouse.BirthYear <= 0 {
		return fmt.Errorf("spouse: birth_year is required for a participating spouse")
	}

	seen := make(map[string]bool)
	for i, acct := range hh.Accounts {
		if acct.ID == "" {
			return fmt.Errorf("accounts[%d]: id is required", i)
		}
		if seen[acct.ID] {
			return fmt.Errorf("accounts[%d]: duplicate id %q", i, acct.ID)
		}
		seen[acct.ID] = true
		if acct.Balance.LessThan(decimal.Zero) {
			return fmt.Errorf("account %s: balance cannot be negative", acct.ID)
		}
		switch acct.Type {
		case domain.AccountPreTax, domain.AccountRoth, domain.AccountInvestment,
			domain.AccountCash, domain.AccountOther:
		default:
			return fmt.Errorf("account %s: unknown type %q", acct.ID, acct.Type)
		}
		switch acct.Stop.Mode {
		case domain.StopAtRetirement, domain.StopAtAge, domain.StopAtDate, "":
		default:
			return fmt.Errorf("account %s: unknown stop mode %q", acct.ID, acct.Stop.Mode)
		}
	}

	if home := hh.Home; home != nil {
		if home.MortgageBalance.GreaterThan(decimal.Zero) && home.MonthlyPayment.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("home: monthly_payment is required when a mortgage balance is set")
		}
		if home.InterestRate.LessThan(decimal.Zero) {
			return fmt.Errorf("home: interest_rate cannot be negative")
		}
	}

	return nil
}

// Resolve merges defaults into the raw input and produces the immutable
// snapshot the engine runs on. Resolution happens once, up front; the
// projection loop never consults raw configuration.
func (p *Parser) Resolve(hh *domain.Household, now time.Time) (*domain.ResolvedHousehold, error) {
	resolved := &domain.ResolvedHousehold{
		Primary:       resolvePerson(hh.Primary, domain.RolePrimary),
		Accounts:      resolveAccounts(hh.Accounts),
		Expenses:      hh.Expenses,
		IncomeSources: hh.IncomeSources,
		Home:          hh.Home,
		Tax:           resolveTax(hh.Tax),
		Assumptions:   hh.Assumptions,
		CurrentYear:   now.Year(),
		CurrentMonth:  now.Month(),
	}

	// A spouse participates only when flagged as married.
	if hh.Spouse != nil && hh.Spouse.Married {
		spouse := resolvePerson(*hh.Spouse, domain.RoleSpouse)
		resolved.Spouse = &spouse
	}

	if err := resolved.Validate(); err != nil {
		return nil, err
	}
	return resolved, nil
}

func resolvePerson(p domain.Person, role domain.Role) domain.Person {
	p.Role = role
	if p.BirthMonth == 0 {
		p.BirthMonth = 1
	}
	if p.RetirementAge == 0 {
		p.RetirementAge = DefaultRetirementAge
	}
	if p.DeathAge == 0 {
		p.DeathAge = DefaultDeathAge
	}
	if p.SSBenefitAnnual.GreaterThan(decimal.Zero) && p.SSClaimAge == 0 {
		p.SSClaimAge = DefaultSSClaimAge
	}
	return p
}

func resolveAccounts(accounts []domain.SavingsAccount) []domain.SavingsAccount {
	resolved := make([]domain.SavingsAccount, len(accounts))
	for i, acct := range accounts {
		if acct.Stop.Mode == "" {
			acct.Stop.Mode = domain.StopAtRetirement
		}
		if acct.Owner == "" {
			acct.Owner = domain.RolePrimary
		}
		resolved[i] = acct
	}
	return resolved
}

func resolveTax(tax domain.TaxConfig) domain.TaxConfig {
	tax.FilingStatus = tax.FilingStatus.Normalize()
	if tax.Strategy == "" {
		tax.Strategy = domain.StrategyWaterfall
	}
	return tax
}
