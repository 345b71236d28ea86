package output

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/wealthtrail/household-projector/internal/domain"
	"github.com/wealthtrail/household-projector/pkg/money"
)

// AmortizationTable renders a monthly mortgage schedule as a console table.
func AmortizationTable(rows []domain.AmortizationRow) []byte {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "MORTGAGE AMORTIZATION SCHEDULE")
	fmt.Fprintln(&buf, "==============================")
	fmt.Fprintf(&buf, "%-8s %-10s %-4s %-14s %-12s %-12s %-10s %-14s\n",
		"Year", "Month", "Age", "Balance", "Interest", "Principal", "Extra", "End Balance")
	for _, r := range rows {
		fmt.Fprintf(&buf, "%-8d %-10s %-4d %-14s %-12s %-12s %-10s %-14s\n",
			r.Year, r.Month.String(), r.Age,
			money.FormatWhole(r.StartBalance),
			money.Format(r.Interest),
			money.Format(r.Principal),
			money.Format(r.ExtraPrincipal),
			money.FormatWhole(r.EndBalance),
		)
	}
	if len(rows) > 0 {
		last := rows[len(rows)-1]
		fmt.Fprintf(&buf, "\nPaid off %s %d over %d payments\n", last.Month, last.Year, len(rows))
	}
	return buf.Bytes()
}

// AmortizationCSV exports the monthly schedule.
func AmortizationCSV(rows []domain.AmortizationRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"year", "month", "age", "start_balance", "interest",
		"principal", "extra_principal", "total_payment", "end_balance",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, r := range rows {
		record := []string{
			itoa(r.Year), itoa(int(r.Month)), itoa(r.Age),
			r.StartBalance.StringFixed(2), r.Interest.StringFixed(2),
			r.Principal.StringFixed(2), r.ExtraPrincipal.StringFixed(2),
			r.TotalPayment.StringFixed(2), r.EndBalance.StringFixed(2),
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
