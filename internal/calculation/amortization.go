package calculation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wealthtrail/household-projector/internal/domain"
	"github.com/wealthtrail/household-projector/pkg/dateutil"
)

// maxAmortizationMonths caps the schedule walk so inconsistent inputs (a
// payment below the monthly interest due) cannot loop forever.
const maxAmortizationMonths = 600

var monthsPerYear = decimal.NewFromInt(12)

// AmortizationCalculator produces month-by-month mortgage schedules.
type AmortizationCalculator struct {
	Logger Logger
}

// NewAmortizationCalculator creates an amortization calculator. A nil logger
// falls back to NopLogger.
func NewAmortizationCalculator(logger Logger) *AmortizationCalculator {
	if logger == nil {
		logger = NopLogger{}
	}
	return &AmortizationCalculator{Logger: logger}
}

// Schedule walks the loan from the given month until the balance reaches
// zero, the configured payoff month arrives, or the safety cap is hit. The
// payoff month clamps the final payment to exactly retire the balance, with
// the clamp applied to the regular principal first and any excess reported
// as extra principal.
func (ac *AmortizationCalculator) Schedule(home *domain.HomeAsset, primary *domain.Person, startYear int, startMonth time.Month) []domain.AmortizationRow {
	if !home.HasMortgage() {
		return nil
	}

	monthlyRate := home.InterestRate.Div(monthsPerYear)
	balance := home.MortgageBalance
	year, month := startYear, startMonth

	var rows []domain.AmortizationRow
	for i := 0; i < maxAmortizationMonths; i++ {
		if balance.LessThanOrEqual(decimal.Zero) {
			break
		}

		interest := balance.Mul(monthlyRate)
		principal := home.MonthlyPayment.Sub(interest)
		if principal.LessThan(decimal.Zero) {
			principal = decimal.Zero
		}
		extra := home.ExtraPrincipal

		isPayoffMonth := home.PayoffYear != 0 &&
			year == home.PayoffYear && int(month) == home.PayoffMonth
		if balance.LessThanOrEqual(principal.Add(extra)) || isPayoffMonth {
			// Final payment: retire exactly the remaining balance.
			principal = decimal.Min(principal, balance)
			extra = balance.Sub(principal)
		}

		end := balance.Sub(principal).Sub(extra)
		if end.LessThan(decimal.Zero) {
			end = decimal.Zero
		}

		rows = append(rows, domain.AmortizationRow{
			Year:           year,
			Month:          month,
			Age:            dateutil.AgeAtMonth(primary.BirthYear, time.Month(primary.BirthMonth), year, month),
			StartBalance:   balance,
			Interest:       interest,
			Principal:      principal,
			ExtraPrincipal: extra,
			TotalPayment:   interest.Add(principal).Add(extra),
			EndBalance:     end,
		})

		balance = end
		year, month = dateutil.NextMonth(year, month)
	}

	if balance.GreaterThan(decimal.Zero) {
		ac.Logger.Warnf("amortization stopped at %d months with %s outstanding; payment may not cover interest",
			maxAmortizationMonths, balance.StringFixed(2))
	}

	return rows
}

// MortgageYearSummary is the annual aggregate the projection loop consumes.
type MortgageYearSummary struct {
	TotalPayments    decimal.Decimal
	EndOfYearBalance decimal.Decimal
}

// AnnualSummaries folds a monthly schedule into per-calendar-year totals and
// end-of-year balances.
func AnnualSummaries(rows []domain.AmortizationRow) map[int]MortgageYearSummary {
	summaries := make(map[int]MortgageYearSummary)
	for _, row := range rows {
		s := summaries[row.Year]
		s.TotalPayments = s.TotalPayments.Add(row.TotalPayment)
		s.EndOfYearBalance = row.EndBalance
		summaries[row.Year] = s
	}
	return summaries
}
