package calculation

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/wealthtrail/household-projector/internal/domain"
)

// withdrawalAllocationOrder fixes the order in which type-level withdrawal
// totals are applied to individual accounts.
var withdrawalAllocationOrder = []domain.AccountType{
	domain.AccountInvestment,
	domain.AccountPreTax,
	domain.AccountRoth,
	domain.AccountCash,
	domain.AccountOther,
}

// OwnerYear carries one household member's working status for a ledger year.
type OwnerYear struct {
	Age              int
	RetirementAge    int
	IsTransitionYear bool

	// WorkedFraction is 1 in full working years and months-worked/12 in the
	// retirement-transition year.
	WorkedFraction decimal.Decimal
}

// LedgerYearInputs are the per-year inputs to one ledger step.
type LedgerYearInputs struct {
	Year int

	// YearIndex is 0 for the current year, which accrues contributions but
	// no growth.
	YearIndex int

	Owners map[domain.Role]OwnerYear

	// Withdrawals are the type-level totals decided by the withdrawal
	// strategy, to be allocated smallest-balance-first within each type.
	Withdrawals map[domain.AccountType]decimal.Decimal
}

// AccountState is one savings account's balance as of the start of a year.
type AccountState struct {
	Account domain.SavingsAccount
	Balance decimal.Decimal
}

// LedgerState holds every account's state between projection years. Step
// returns a new state rather than mutating, so each year's transition is a
// pure function of the prior state and that year's inputs.
type LedgerState struct {
	Accounts []AccountState
}

// NewLedgerState seeds the ledger from the configured accounts. Negative
// starting balances are clamped to zero.
func NewLedgerState(accounts []domain.SavingsAccount) LedgerState {
	states := make([]AccountState, len(accounts))
	for i, acct := range accounts {
		balance := acct.Balance
		if balance.LessThan(decimal.Zero) {
			balance = decimal.Zero
		}
		states[i] = AccountState{Account: acct, Balance: balance}
	}
	return LedgerState{Accounts: states}
}

// TotalBalance sums every account balance.
func (ls LedgerState) TotalBalance() decimal.Decimal {
	total := decimal.Zero
	for _, st := range ls.Accounts {
		total = total.Add(st.Balance)
	}
	return total
}

// BalanceByType sums the balances of all accounts of one type.
func (ls LedgerState) BalanceByType(t domain.AccountType) decimal.Decimal {
	total := decimal.Zero
	for _, st := range ls.Accounts {
		if st.Account.Type == t {
			total = total.Add(st.Balance)
		}
	}
	return total
}

// Ledger advances itemized savings accounts one year at a time.
type Ledger struct {
	Logger Logger
}

// NewLedger creates an account ledger. A nil logger falls back to NopLogger.
func NewLedger(logger Logger) *Ledger {
	if logger == nil {
		logger = NopLogger{}
	}
	return &Ledger{Logger: logger}
}

// Step advances the ledger by one year in three phases: contribution
// eligibility, withdrawal allocation, then growth and finalization. It
// returns the next year's state and one record per account.
func (lg *Ledger) Step(state LedgerState, in LedgerYearInputs) (LedgerState, []domain.AccountYear) {
	n := len(state.Accounts)
	contributions := make([]decimal.Decimal, n)
	matches := make([]decimal.Decimal, n)
	withdrawals := make([]decimal.Decimal, n)

	// Phase 1: contributions.
	for i, st := range state.Accounts {
		owner, ok := in.Owners[st.Account.Owner]
		if !ok {
			lg.Logger.Warnf("account %s: no household member with role %s, skipping contributions", st.Account.ID, st.Account.Owner)
			contributions[i] = decimal.Zero
			matches[i] = decimal.Zero
			continue
		}
		contributions[i], matches[i] = contributionFor(st.Account, owner, in.Year)
	}

	// Phase 2: allocate type-level withdrawal totals to accounts,
	// smallest balance first within each type.
	for _, acctType := range withdrawalAllocationOrder {
		remaining := in.Withdrawals[acctType]
		if remaining.LessThanOrEqual(decimal.Zero) {
			continue
		}

		var idx []int
		for i, st := range state.Accounts {
			if st.Account.Type == acctType {
				idx = append(idx, i)
			}
		}
		sort.SliceStable(idx, func(a, b int) bool {
			return state.Accounts[idx[a]].Balance.LessThan(state.Accounts[idx[b]].Balance)
		})

		for _, i := range idx {
			if remaining.LessThanOrEqual(decimal.Zero) {
				break
			}
			take := decimal.Min(remaining, state.Accounts[i].Balance)
			withdrawals[i] = take
			remaining = remaining.Sub(take)
		}

		if remaining.GreaterThan(decimal.Zero) {
			lg.Logger.Warnf("year %d: %s withdrawal short by %s across itemized accounts", in.Year, acctType, remaining.StringFixed(2))
		}
	}

	// Phase 3: growth and finalization. The current year accrues no growth.
	next := LedgerState{Accounts: make([]AccountState, n)}
	records := make([]domain.AccountYear, n)
	for i, st := range state.Accounts {
		growth := decimal.Zero
		if in.YearIndex > 0 {
			growth = st.Balance.Mul(st.Account.ReturnRate)
		}

		ending := st.Balance.Add(growth).
			Add(contributions[i]).Add(matches[i]).
			Sub(withdrawals[i])
		if ending.LessThan(decimal.Zero) {
			ending = decimal.Zero
		}

		next.Accounts[i] = AccountState{Account: st.Account, Balance: ending}
		records[i] = domain.AccountYear{
			AccountID:        st.Account.ID,
			AccountName:      st.Account.Name,
			Type:             st.Account.Type,
			Year:             in.Year,
			BeginningBalance: st.Balance,
			Contribution:     contributions[i],
			EmployerMatch:    matches[i],
			Withdrawal:       withdrawals[i],
			Growth:           growth,
			EndingBalance:    ending,
		}
	}

	return next, records
}

// contributionFor evaluates an account's stop rule against its owner's year
// and returns the pending employee contribution and employer match, each
// pro-rated to months worked in the retirement-transition year.
func contributionFor(acct domain.SavingsAccount, owner OwnerYear, year int) (decimal.Decimal, decimal.Decimal) {
	eligible := false
	switch acct.Stop.Mode {
	case domain.StopAtRetirement:
		// The partial transition year still contributes for the months
		// worked before the birthday.
		eligible = owner.Age < owner.RetirementAge || owner.IsTransitionYear
	case domain.StopAtAge:
		eligible = owner.Age < acct.Stop.Age
	case domain.StopAtDate:
		// The stop year itself contributes in full.
		eligible = year <= acct.Stop.Year
	}
	if !eligible {
		return decimal.Zero, decimal.Zero
	}

	fraction := decimal.NewFromInt(1)
	if owner.IsTransitionYear {
		fraction = owner.WorkedFraction
	}
	return acct.Contribution.Mul(fraction), acct.EmployerMatch.Mul(fraction)
}
