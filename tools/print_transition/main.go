// Small debugging harness for the retirement-transition year: prints the
// apportioned salary, blended living expenses and withdrawal picture around
// the year the primary person retires.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/wealthtrail/household-projector/internal/calculation"
	"github.com/wealthtrail/household-projector/internal/config"
)

func main() {
	path := "test/testdata/example_household.yaml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	parser := config.NewParser()
	raw, err := parser.LoadFromFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load: %v\n", err)
		os.Exit(1)
	}
	hh, err := parser.Resolve(raw, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "resolve: %v\n", err)
		os.Exit(1)
	}

	engine := calculation.NewEngine()
	result, err := engine.ProjectRetirement(hh)
	if err != nil {
		fmt.Fprintf(os.Stderr, "project: %v\n", err)
		os.Exit(1)
	}

	retYear := hh.Primary.RetirementYear()
	fmt.Printf("primary born %d-%02d, retires at %d (%d), worked fraction %s\n",
		hh.Primary.BirthYear, hh.Primary.BirthMonth,
		hh.Primary.RetirementAge, retYear,
		hh.Primary.PreRetirementFraction().StringFixed(4))

	for _, y := range result.Years {
		if y.Year < retYear-1 || y.Year > retYear+1 {
			continue
		}
		tag := ""
		if y.IsTransitionYear {
			tag = "  <- transition"
		}
		fmt.Printf("%d age=%d salary=%s expenses=%s withdrawals=%s tax=%s%s\n",
			y.Year, y.AgePrimary,
			y.SalaryPrimary.StringFixed(2),
			y.LivingExpenses.StringFixed(2),
			y.TotalWithdrawals().StringFixed(2),
			y.TotalTax.StringFixed(2),
			tag)
	}
}
