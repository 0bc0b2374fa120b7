// Package simulation implements the what-if engine: it applies hypothetical
// revenue/expense percentage changes and a loan injection to a baseline
// snapshot, re-derives every metric and the forecast, and reports deltas
// against the baseline's stored metrics.
//
// Results are strictly ephemeral. The baseline record is never mutated and
// nothing is written to storage.
package simulation

import (
	"github.com/veldt-labs/cashlens/internal/modules/forecast"
	"github.com/veldt-labs/cashlens/internal/modules/records"
	"github.com/veldt-labs/cashlens/internal/modules/risk"
	"github.com/veldt-labs/cashlens/pkg/formulas"
)

// Input holds the hypothetical adjustments. Percentages apply to the
// baseline values (10 means +10%); the expense change applies identically to
// both cogs and opex. The loan injection is integer cents.
type Input struct {
	RevenueChangePercent float64 `json:"revenueChangePercent"`
	ExpenseChangePercent float64 `json:"expenseChangePercent"`
	LoanInjectionCents   int64   `json:"loanInjectionCents"`
}

// Snapshot is the adjusted set of monetary fields after applying the input.
type Snapshot struct {
	RevenueCents     int64 `json:"revenueCents"`
	CogsCents        int64 `json:"cogsCents"`
	OpexCents        int64 `json:"opexCents"`
	CashOnHandCents  int64 `json:"cashOnHandCents"`
	LiabilitiesCents int64 `json:"liabilitiesCents"`
}

// Result is the ephemeral outcome of one simulation run.
type Result struct {
	SimulatedInputs     Snapshot         `json:"simulatedInputs"`
	Metrics             risk.Metrics     `json:"calculatedMetrics"`
	RunwayDelta         float64          `json:"runwayDelta"`           // vs baseline's stored runway, 1 decimal
	RiskDelta           int              `json:"riskDelta"`             // vs baseline's stored risk score
	SimNetIncomeMajor   float64          `json:"simNetIncomeDollars"`   // adjusted net income, major units
	NetIncomeDeltaMajor float64          `json:"netIncomeDeltaDollars"` // vs baseline net income, major units
	Forecast            []forecast.Point `json:"forecasts"`
}

// Run executes the simulation against the baseline record. The baseline is
// read, never written: all adjustments happen on copies of its fields.
func Run(baseline *records.FinancialRecord, in Input) Result {
	snap := Snapshot{
		RevenueCents:     baseline.RevenueCents,
		CogsCents:        baseline.CogsCents,
		OpexCents:        baseline.OpexCents,
		CashOnHandCents:  baseline.CashOnHandCents,
		LiabilitiesCents: baseline.LiabilitiesCents,
	}

	if in.RevenueChangePercent != 0 {
		factor := 1 + in.RevenueChangePercent/100
		snap.RevenueCents = formulas.RoundCents(float64(snap.RevenueCents) * factor)
	}

	if in.ExpenseChangePercent != 0 {
		factor := 1 + in.ExpenseChangePercent/100
		snap.CogsCents = formulas.RoundCents(float64(snap.CogsCents) * factor)
		snap.OpexCents = formulas.RoundCents(float64(snap.OpexCents) * factor)
	}

	if in.LoanInjectionCents > 0 {
		// A loan raises cash and debt at the same time
		snap.CashOnHandCents += in.LoanInjectionCents
		snap.LiabilitiesCents += in.LoanInjectionCents
	}

	// Floor everything at 0 to keep the scenario mathematically possible
	snap.RevenueCents = floor0(snap.RevenueCents)
	snap.CogsCents = floor0(snap.CogsCents)
	snap.OpexCents = floor0(snap.OpexCents)
	snap.CashOnHandCents = floor0(snap.CashOnHandCents)
	snap.LiabilitiesCents = floor0(snap.LiabilitiesCents)

	metrics := risk.Compute(snap.RevenueCents, snap.CogsCents, snap.OpexCents, snap.CashOnHandCents, snap.LiabilitiesCents)
	points := forecast.Generate(snap.RevenueCents, snap.CogsCents, snap.OpexCents, snap.CashOnHandCents, snap.LiabilitiesCents, forecast.DefaultMonths)

	baselineNet := baseline.RevenueCents - baseline.CogsCents - baseline.OpexCents
	simNet := snap.RevenueCents - snap.CogsCents - snap.OpexCents

	return Result{
		SimulatedInputs:     snap,
		Metrics:             metrics,
		RunwayDelta:         formulas.Round1(metrics.RunwayMonths - baseline.RunwayMonths),
		RiskDelta:           metrics.RiskScore - baseline.RiskScore,
		SimNetIncomeMajor:   formulas.MajorFromCents(simNet),
		NetIncomeDeltaMajor: formulas.MajorFromCents(simNet - baselineNet),
		Forecast:            points,
	}
}

func floor0(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
