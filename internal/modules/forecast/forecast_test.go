package forecast

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_BurnOnlyTrajectory(t *testing.T) {
	// No revenue, pure opex burn: the base trajectory is the opex scaled by
	// the half-growth expense curve and the month's variance, subtracted
	// from cash each month.
	points := Generate(0, 0, 1_000_000, 10_000_000, 0, 6)
	require.Len(t, points, 6)

	cash := int64(10_000_000)
	for m := 1; m <= 6; m++ {
		variance := 1 + math.Sin(float64(m)*1.5)*0.015
		expenses := int64(math.Round(1_000_000 * (1 + 0.03*0.5*float64(m-1)) * variance))
		cash -= expenses

		p := points[m-1]
		assert.Equal(t, m, p.MonthIndex)
		assert.Equal(t, int64(0), p.ProjectedRevenueCents)
		assert.Equal(t, expenses, p.ProjectedExpensesCents)
		assert.Equal(t, -expenses, p.ProjectedNetIncomeCents)
		assert.Equal(t, cash, p.ProjectedCashBaseCents)
	}

	// Month 1 spelled out: variance = 1 + sin(1.5)*0.015, so expenses are
	// 1,014,962 cents and cash lands on 8,985,038.
	assert.Equal(t, int64(8_985_038), points[0].ProjectedCashBaseCents)
}

func TestGenerate_FloorsCashAtZeroPerScenario(t *testing.T) {
	// Burning 10k/month from 5k of cash: months 1 and 2 report zero cash,
	// never negative, in every scenario.
	points := Generate(0, 0, 1_000_000, 500_000, 0, 2)
	require.Len(t, points, 2)

	for _, p := range points {
		assert.Equal(t, int64(0), p.ProjectedCashBaseCents)
		assert.Equal(t, int64(0), p.ProjectedCashBestCents)
		assert.Equal(t, int64(0), p.ProjectedCashWorstCents)
	}
}

func TestGenerate_ScenarioOrdering(t *testing.T) {
	// With any meaningful revenue and expenses, the best trajectory must sit
	// above base, and base above worst, since they share the same variance
	// within a month.
	points := Generate(1_000_000, 0, 2_000_000, 10_000_000, 0, 3)

	for _, p := range points {
		assert.Greater(t, p.ProjectedCashBestCents, p.ProjectedCashBaseCents)
		assert.Greater(t, p.ProjectedCashBaseCents, p.ProjectedCashWorstCents)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	// The volatility multiplier is a pure function of the month index:
	// identical inputs must produce bit-identical forecasts.
	a := Generate(5_250_000, 1_100_000, 2_400_000, 20_000_000, 3_000_000, 6)
	b := Generate(5_250_000, 1_100_000, 2_400_000, 20_000_000, 3_000_000, 6)
	assert.Equal(t, a, b)
}

func TestGenerate_DefaultHorizon(t *testing.T) {
	assert.Len(t, Generate(100, 0, 0, 100, 0, 0), DefaultMonths)
	assert.Len(t, Generate(100, 0, 0, 100, 0, -3), DefaultMonths)
}

func TestGenerate_RiskScoreWithinBounds(t *testing.T) {
	points := Generate(1_000_000, 900_000, 600_000, 1_000_000, 2_500_000, 12)
	for _, p := range points {
		assert.GreaterOrEqual(t, p.ProjectedRiskScore, 0)
		assert.LessOrEqual(t, p.ProjectedRiskScore, 100)
	}
}

func TestGenerate_ProfitableCompanyGrowsCash(t *testing.T) {
	// Strong margin, modest expenses: cash should increase month over month
	// in the base scenario.
	points := Generate(10_000_000, 2_000_000, 3_000_000, 5_000_000, 0, 6)

	prev := int64(5_000_000)
	for _, p := range points {
		assert.Greater(t, p.ProjectedCashBaseCents, prev)
		prev = p.ProjectedCashBaseCents
	}
}
