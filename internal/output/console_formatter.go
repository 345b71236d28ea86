package output

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/wealthtrail/household-projector/internal/domain"
	"github.com/wealthtrail/household-projector/pkg/money"
)

// ConsoleFormatter renders the projection as a fixed-width year table with a
// closing summary.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(result *domain.ProjectionResult) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "HOUSEHOLD PROJECTION")
	fmt.Fprintln(&buf, "====================")
	fmt.Fprintf(&buf, "%-6s %-4s %-14s %-12s %-12s %-14s %-14s %-14s %s\n",
		"Year", "Age", "Gross Income", "Taxes", "Expenses", "Withdrawals", "Savings", "Net Worth", "")
	for _, y := range result.Years {
		marker := ""
		if y.IsTransitionYear {
			marker = "<- retires"
		}
		fmt.Fprintf(&buf, "%-6d %-4d %-14s %-12s %-12s %-14s %-14s %-14s %s\n",
			y.Year,
			y.AgePrimary,
			money.FormatWhole(y.TotalGrossIncome),
			money.FormatWhole(y.TotalTax),
			money.FormatWhole(y.TotalExpenses),
			money.FormatWhole(y.TotalWithdrawals()),
			money.FormatWhole(y.TotalSavings),
			money.FormatWhole(y.NetWorth),
			marker,
		)
	}

	fmt.Fprintln(&buf)
	if last := lastYear(result); last != nil {
		fmt.Fprintf(&buf, "Final year %d (age %d): savings %s, net worth %s\n",
			last.Year, last.AgePrimary,
			money.FormatWhole(last.TotalSavings),
			money.FormatWhole(last.NetWorth))
	}
	if depleted := savingsDepletionYear(result); depleted != nil {
		fmt.Fprintf(&buf, "WARNING: retirement savings depleted in %d (age %d)\n",
			depleted.Year, depleted.AgePrimary)
	}
	return buf.Bytes(), nil
}

func lastYear(result *domain.ProjectionResult) *domain.ProjectionYear {
	if len(result.Years) == 0 {
		return nil
	}
	return &result.Years[len(result.Years)-1]
}

// savingsDepletionYear returns the first retired year whose savings hit zero
// while expenses still exceed income, or nil if savings last.
func savingsDepletionYear(result *domain.ProjectionResult) *domain.ProjectionYear {
	for i := range result.Years {
		y := &result.Years[i]
		if y.PrimaryRetired && y.TotalSavings.IsZero() && y.CashFlow.LessThan(decimal.Zero) {
			return y
		}
	}
	return nil
}
