package output

import (
	"bytes"
	"encoding/csv"

	"github.com/wealthtrail/household-projector/internal/domain"
)

// CSVFormatter exports the full per-year ledger, one row per projected year.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(result *domain.ProjectionResult) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"year", "age_primary", "age_spouse",
		"salary_primary", "salary_spouse", "ss_benefit", "gross_income",
		"agi", "taxable_income", "federal_tax", "state_tax", "capital_gains_tax", "total_tax", "tax_state",
		"living_expenses", "mortgage_payment", "total_expenses",
		"pre_tax_contributions", "roth_contributions", "investment_contributions", "employer_match",
		"withdrawal_pre_tax", "withdrawal_roth", "withdrawal_investment", "rmd_required",
		"balance_pre_tax", "balance_roth", "balance_investment", "balance_cash", "total_savings",
		"home_value", "mortgage_balance", "home_equity", "other_assets", "net_worth",
		"net_income", "cash_flow",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, y := range result.Years {
		row := []string{
			itoa(y.Year), itoa(y.AgePrimary), itoa(y.AgeSpouse),
			y.SalaryPrimary.StringFixed(2), y.SalarySpouse.StringFixed(2),
			y.SSBenefit.StringFixed(2), y.TotalGrossIncome.StringFixed(2),
			y.AGI.StringFixed(2), y.TaxableIncome.StringFixed(2),
			y.FederalTax.StringFixed(2), y.StateTax.StringFixed(2),
			y.CapitalGainsTax.StringFixed(2), y.TotalTax.StringFixed(2), y.TaxState,
			y.LivingExpenses.StringFixed(2), y.MortgagePayment.StringFixed(2), y.TotalExpenses.StringFixed(2),
			y.PreTaxContributions.StringFixed(2), y.RothContributions.StringFixed(2),
			y.InvestmentContribs.StringFixed(2), y.EmployerMatch.StringFixed(2),
			y.WithdrawalPreTax.StringFixed(2), y.WithdrawalRoth.StringFixed(2),
			y.WithdrawalInvestment.StringFixed(2), y.RMDRequired.StringFixed(2),
			y.BalancePreTax.StringFixed(2), y.BalanceRoth.StringFixed(2),
			y.BalanceInvestment.StringFixed(2), y.BalanceCash.StringFixed(2), y.TotalSavings.StringFixed(2),
			y.HomeValue.StringFixed(2), y.MortgageBalance.StringFixed(2),
			y.HomeEquity.StringFixed(2), y.OtherAssets.StringFixed(2), y.NetWorth.StringFixed(2),
			y.NetIncome.StringFixed(2), y.CashFlow.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// AccountsCSV exports the per-account yearly breakdown.
func AccountsCSV(rows []domain.AccountYear) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"account_id", "account_name", "type", "year",
		"beginning_balance", "contribution", "employer_match",
		"withdrawal", "growth", "ending_balance",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, r := range rows {
		record := []string{
			r.AccountID, r.AccountName, string(r.Type), itoa(r.Year),
			r.BeginningBalance.StringFixed(2), r.Contribution.StringFixed(2),
			r.EmployerMatch.StringFixed(2), r.Withdrawal.StringFixed(2),
			r.Growth.StringFixed(2), r.EndingBalance.StringFixed(2),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
