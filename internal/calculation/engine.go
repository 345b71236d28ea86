// Package calculation implements the household projection engine: tax
// calculators, the RMD and withdrawal-strategy algorithms, the per-account
// ledger, the mortgage amortization generator, and the year-stepping
// projection loop that ties them together.
//
// The engine is a pure function of its inputs: one invocation performs a
// single deterministic pass with no I/O and no state shared across calls.
package calculation

import (
	"github.com/wealthtrail/household-projector/internal/domain"
)

// Engine is the public entry point for projections. The zero-value
// calculators it wires together are all stateless, so one Engine may serve
// any number of concurrent invocations.
type Engine struct {
	Tax    *TaxCalculator
	Amort  *AmortizationCalculator
	Ledger *Ledger
	Logger Logger
}

// NewEngine creates an engine that logs nowhere.
func NewEngine() *Engine {
	return NewEngineWithLogger(NopLogger{})
}

// NewEngineWithLogger creates an engine whose calculators share one logger.
func NewEngineWithLogger(logger Logger) *Engine {
	if logger == nil {
		logger = NopLogger{}
	}
	tax := NewTaxCalculator()
	tax.Logger = logger
	return &Engine{
		Tax:    tax,
		Amort:  NewAmortizationCalculator(logger),
		Ledger: NewLedger(logger),
		Logger: logger,
	}
}

// GenerateAmortizationSchedule produces the month-by-month mortgage schedule
// for the household's home, or nil when there is no outstanding loan.
func (e *Engine) GenerateAmortizationSchedule(hh *domain.ResolvedHousehold) []domain.AmortizationRow {
	if hh.Home == nil || !hh.Home.HasMortgage() {
		return nil
	}
	return e.Amort.Schedule(hh.Home, &hh.Primary, hh.CurrentYear, hh.CurrentMonth)
}
