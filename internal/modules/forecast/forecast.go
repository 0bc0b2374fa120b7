// Package forecast implements the scenario forecast engine. It projects a
// financial snapshot forward N months (default 6) producing base, best and
// worst cash trajectories using compounding growth and a deterministic
// volatility function.
//
// The volatility multiplier (1 + sin(month*1.5) * amplitude) is not
// randomness: it is a pure function of the month index, so forecasts are
// exactly reproducible for identical inputs. Do not replace it with a
// seeded RNG.
package forecast

import (
	"math"

	"github.com/veldt-labs/cashlens/internal/modules/risk"
	"github.com/veldt-labs/cashlens/pkg/formulas"
)

const (
	// DefaultMonths is the standard projection horizon.
	DefaultMonths = 6

	// baseGrowthRate is the compounding month-over-month revenue growth
	// assumed in the base scenario (3%).
	baseGrowthRate = 0.03

	// volatilityFactor is the amplitude of the deterministic variance
	// applied to every scenario within a month (1.5%).
	volatilityFactor = 0.015
)

// Point is one monthly projection. All cash and income values are integer
// cents; the three scenario trajectories are floored at 0 independently.
type Point struct {
	MonthIndex              int   `json:"monthIndex"`
	ProjectedCashBaseCents  int64 `json:"projectedCashBaseCents"`
	ProjectedCashBestCents  int64 `json:"projectedCashBestCents"`
	ProjectedCashWorstCents int64 `json:"projectedCashWorstCents"`
	ProjectedRevenueCents   int64 `json:"projectedRevenueCents"`
	ProjectedExpensesCents  int64 `json:"projectedExpensesCents"`
	ProjectedNetIncomeCents int64 `json:"projectedNetIncomeCents"`
	ProjectedRiskScore      int   `json:"projectedRiskScore"`
}

// Generate projects the snapshot months steps forward. Months values < 1
// fall back to DefaultMonths.
//
// Per month m (1-indexed):
//   - base revenue compounds at baseGrowthRate, base expenses scale linearly
//     at half the growth rate
//   - best case: revenue 1.05^m, expenses 1.01^m
//   - worst case: revenue 0.98^m, expenses 1.04^m
//   - every scenario shares the month's variance multiplier
//   - each trajectory accumulates its own running cash, floored at 0 per
//     month (an insolvency event is reported as zero cash, never negative)
//
// The projected risk score is computed for the base scenario, with cogs and
// opex individually scaled by the month's growth multiplier.
func Generate(revenueCents, cogsCents, opexCents, cashOnHandCents, liabilitiesCents int64, months int) []Point {
	if months < 1 {
		months = DefaultMonths
	}

	points := make([]Point, 0, months)

	baseCash := cashOnHandCents
	bestCash := cashOnHandCents
	worstCash := cashOnHandCents

	totalExpenses := cogsCents + opexCents

	for month := 1; month <= months; month++ {
		growthMultiplier := math.Pow(1+baseGrowthRate, float64(month-1))
		variance := 1 + math.Sin(float64(month)*1.5)*volatilityFactor

		// Baseline trajectory
		baseRevenue := formulas.RoundCents(float64(revenueCents) * growthMultiplier * variance)
		baseExpenses := formulas.RoundCents(float64(totalExpenses) * (1 + baseGrowthRate*0.5*float64(month-1)) * variance)
		baseNet := baseRevenue - baseExpenses
		baseCash = floorCents(baseCash + baseNet)

		// Best case: higher growth, lower expense scaling
		bestRevenue := formulas.RoundCents(float64(revenueCents) * math.Pow(1.05, float64(month)) * variance)
		bestExpenses := formulas.RoundCents(float64(totalExpenses) * math.Pow(1.01, float64(month)) * variance)
		bestCash = floorCents(bestCash + bestRevenue - bestExpenses)

		// Worst case: stagnant growth, higher expense scaling
		worstRevenue := formulas.RoundCents(float64(revenueCents) * math.Pow(0.98, float64(month)) * variance)
		worstExpenses := formulas.RoundCents(float64(totalExpenses) * math.Pow(1.04, float64(month)) * variance)
		worstCash = floorCents(worstCash + worstRevenue - worstExpenses)

		// Projected metrics for the baseline scenario. Cogs and opex are
		// scaled individually here, distinct from the combined-expenses
		// scaling used for the cash trajectory.
		projCogs := formulas.RoundCents(float64(cogsCents) * growthMultiplier)
		projOpex := formulas.RoundCents(float64(opexCents) * growthMultiplier)
		projMargin := risk.ProfitMargin(baseRevenue, projCogs, projOpex)
		projBurn := risk.BurnRate(baseRevenue, projCogs, projOpex)
		projRunway := risk.Runway(baseCash, projBurn)
		projScore := risk.Score(projMargin, projRunway, liabilitiesCents, baseCash)

		points = append(points, Point{
			MonthIndex:              month,
			ProjectedCashBaseCents:  baseCash,
			ProjectedCashBestCents:  bestCash,
			ProjectedCashWorstCents: worstCash,
			ProjectedRevenueCents:   baseRevenue,
			ProjectedExpensesCents:  baseExpenses,
			ProjectedNetIncomeCents: baseNet,
			ProjectedRiskScore:      projScore,
		})
	}

	return points
}

// floorCents floors a running cash balance at zero.
func floorCents(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
