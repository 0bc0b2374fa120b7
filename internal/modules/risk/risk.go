// Package risk implements the financial risk engine: pure functions deriving
// health metrics (profit margin, burn rate, runway, risk score, collapse
// probability) from a snapshot of monetary figures.
//
// All monetary inputs are integer cents. Every function is total over its
// numeric domain: division by zero is guarded explicitly and extreme states
// (zero revenue, zero cash, all-zero snapshot) are special-cased rather than
// left to produce NaN or Inf. Given identical inputs the output is
// bit-identical, so concurrent callers need no coordination.
package risk

import (
	"math"

	"github.com/veldt-labs/cashlens/pkg/formulas"
)

// InfiniteRunway is the sentinel runway value meaning "no burn / indefinite".
// Several downstream rules (risk bands, loan scoring, UI gauges) key off the
// literal numeric value, so it must survive serialization as-is.
const InfiniteRunway = 999

// Metrics bundles the derived health metrics for one snapshot.
type Metrics struct {
	ProfitMargin        float64 `json:"profitMargin"`        // signed percent, 2 decimals
	BurnRateCents       int64   `json:"burnRateCents"`       // >= 0
	RunwayMonths        float64 `json:"runwayMonths"`        // 1 decimal, or InfiniteRunway
	RiskScore           int     `json:"riskScore"`           // 0-100, 100 = perfect health
	CollapseProbability float64 `json:"collapseProbability"` // 0-100 percent, 2 decimals
}

// ProfitMargin calculates the profit margin percentage:
// ((revenue - cogs - opex) / revenue) * 100, rounded to 2 decimals.
// A zero-revenue snapshot yields exactly 0 rather than dividing by zero.
// Negative margins denote a loss.
func ProfitMargin(revenueCents, cogsCents, opexCents int64) float64 {
	if revenueCents == 0 {
		return 0
	}

	netIncome := revenueCents - cogsCents - opexCents
	return formulas.Round2(float64(netIncome) / float64(revenueCents) * 100)
}

// BurnRate calculates the monthly burn in cents. A profitable or breakeven
// month has no burn: the result is 0 whenever net income >= 0, otherwise the
// magnitude of the (negative) net income.
func BurnRate(revenueCents, cogsCents, opexCents int64) int64 {
	netIncome := revenueCents - cogsCents - opexCents
	if netIncome >= 0 {
		return 0
	}
	return -netIncome
}

// Runway calculates months of operation remaining at the current burn rate.
// Zero burn yields the InfiniteRunway sentinel; burning with zero cash yields
// exactly 0. Otherwise cash / burn, rounded to 1 decimal.
func Runway(cashOnHandCents, burnRateCents int64) float64 {
	if burnRateCents == 0 {
		return InfiniteRunway
	}
	if cashOnHandCents == 0 {
		return 0
	}
	return formulas.Round1(float64(cashOnHandCents) / float64(burnRateCents))
}

// scoreInputs carries the values the score penalty bands inspect.
type scoreInputs struct {
	margin      float64
	runway      float64
	liabilities int64
	cash        int64
}

// scoreBand is one (predicate, penalty) rule. Bands within a category are
// evaluated top to bottom and only the first match applies.
type scoreBand struct {
	match   func(in scoreInputs) bool
	penalty int
}

// Runway penalty bands, most heavily weighted. The final band penalizes a
// technically infinite runway that rests on a cash floor under $5,000.
var runwayBands = []scoreBand{
	{func(in scoreInputs) bool { return in.runway < 3 }, 65},
	{func(in scoreInputs) bool { return in.runway < 6 }, 35},
	{func(in scoreInputs) bool { return in.runway < 12 }, 20},
	{func(in scoreInputs) bool { return in.runway < 24 }, 10},
	{func(in scoreInputs) bool { return in.runway == InfiniteRunway && in.cash < 500_000 }, 15},
}

// Profit margin penalty bands, half-open intervals (lower, upper].
var marginBands = []scoreBand{
	{func(in scoreInputs) bool { return in.margin <= 50 && in.margin > 30 }, 5},
	{func(in scoreInputs) bool { return in.margin <= 30 && in.margin > 15 }, 12},
	{func(in scoreInputs) bool { return in.margin <= 15 && in.margin >= 0 }, 25},
	{func(in scoreInputs) bool { return in.margin < 0 && in.margin > -20 }, 40},
	{func(in scoreInputs) bool { return in.margin <= -20 && in.margin > -50 }, 60},
	{func(in scoreInputs) bool { return in.margin <= -50 }, 85},
}

// Leverage (debt-to-cash) penalty bands. Only meaningful with cash on hand;
// the zero-cash case is handled separately in Score.
var leverageBands = []scoreBand{
	{func(in scoreInputs) bool { return debtRatio(in) > 2.0 }, 30},
	{func(in scoreInputs) bool { return debtRatio(in) > 1.2 }, 20},
	{func(in scoreInputs) bool { return debtRatio(in) > 0.8 }, 10},
	{func(in scoreInputs) bool { return debtRatio(in) > 0.4 }, 5},
}

func debtRatio(in scoreInputs) float64 {
	return float64(in.liabilities) / float64(in.cash)
}

// applyBand returns the penalty of the first matching band, or 0.
func applyBand(bands []scoreBand, in scoreInputs) int {
	for _, b := range bands {
		if b.match(in) {
			return b.penalty
		}
	}
	return 0
}

// Score generates the unified financial risk score (0-100).
// 100 = perfect health, 0 = imminent collapse. The score starts at 100 and
// subtracts at most one penalty per category (runway, margin, leverage).
func Score(margin, runwayMonths float64, liabilitiesCents, cashOnHandCents int64) int {
	in := scoreInputs{
		margin:      margin,
		runway:      runwayMonths,
		liabilities: liabilitiesCents,
		cash:        cashOnHandCents,
	}

	score := 100
	score -= applyBand(runwayBands, in)
	score -= applyBand(marginBands, in)

	if cashOnHandCents > 0 {
		score -= applyBand(leverageBands, in)
	} else if liabilitiesCents > 0 {
		// Debt with zero cash
		score -= 50
	}

	// A fully empty financial state signals "unknown", not "perfect" or
	// "collapsed": override to a neutral 50.
	if cashOnHandCents == 0 && liabilitiesCents == 0 && margin == 0 {
		score = 50
	}

	return formulas.ClampInt(score, 0, 100)
}

// CollapseProbability derives a 0-100 percentage estimating near-term
// insolvency likelihood. The adjustments are additive and applied in a fixed
// order; a runway of zero or less forces exactly 100.
func CollapseProbability(runwayMonths float64, riskScore int, liabilitiesCents, cashOnHandCents int64) float64 {
	probability := float64(100-riskScore) * 0.8

	switch {
	case runwayMonths <= 0:
		probability = 100
	case runwayMonths < 3:
		probability += 40
	case runwayMonths < 6:
		probability += 20
	}

	// Leverage spike: heavy debt relative to cash raises collapse risk even
	// when the runway looks long.
	if cashOnHandCents > 0 && float64(liabilitiesCents) > float64(cashOnHandCents)*1.5 {
		probability += 25
	}

	// Liquidity floor: under $1,000 of cash is precarious regardless of burn.
	if cashOnHandCents < 100_000 && runwayMonths > 0 {
		probability += 30
	}

	// Safety cap for high prosperity.
	if runwayMonths > 36 && riskScore > 90 {
		probability = math.Max(0, probability-50)
	}

	return formulas.Round2(formulas.ClampFloat(probability, 0, 100))
}

// Compute runs the full metric pipeline for one snapshot.
func Compute(revenueCents, cogsCents, opexCents, cashOnHandCents, liabilitiesCents int64) Metrics {
	margin := ProfitMargin(revenueCents, cogsCents, opexCents)
	burn := BurnRate(revenueCents, cogsCents, opexCents)
	runway := Runway(cashOnHandCents, burn)
	score := Score(margin, runway, liabilitiesCents, cashOnHandCents)

	return Metrics{
		ProfitMargin:        margin,
		BurnRateCents:       burn,
		RunwayMonths:        runway,
		RiskScore:           score,
		CollapseProbability: CollapseProbability(runway, score, liabilitiesCents, cashOnHandCents),
	}
}
