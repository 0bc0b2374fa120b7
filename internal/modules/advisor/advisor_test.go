package advisor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_HealthySnapshotGetsSingleAllClear(t *testing.T) {
	// Margin 45, infinite runway, no debt, $80k cash: no warning fires, so
	// exactly one Low/Growth entry is emitted.
	advice := Generate(999, 0, 8_000_000, 45)

	require.Len(t, advice, 1)
	assert.Equal(t, UrgencyLow, advice[0].Urgency)
	assert.Equal(t, CategoryGrowth, advice[0].Category)
}

func TestGenerate_NeverEmpty(t *testing.T) {
	cases := []struct {
		runway float64
		liab   int64
		cash   int64
		margin float64
	}{
		{0, 0, 0, 0},
		{999, 0, 100_000_000, 50},
		{1, 10_000_000, 100, -90},
		{12, 0, 4_000_000, 20},
	}
	for _, tc := range cases {
		assert.NotEmpty(t, Generate(tc.runway, tc.liab, tc.cash, tc.margin))
	}
}

func TestGenerate_RulesAreIndependent(t *testing.T) {
	// Short runway AND liabilities above cash: both high-urgency entries
	// fire, in rule order.
	advice := Generate(2, 5_000_000, 1_000_000, -10)

	require.Len(t, advice, 2)
	assert.Equal(t, CategorySurvival, advice[0].Category)
	assert.Equal(t, UrgencyHigh, advice[0].Urgency)
	assert.Equal(t, CategoryDebt, advice[1].Category)
	assert.Equal(t, UrgencyHigh, advice[1].Urgency)
}

func TestGenerate_LiquidityRule(t *testing.T) {
	// Strong margin but under $50k cash: medium-urgency liquidity advice.
	advice := Generate(999, 0, 4_000_000, 30)

	require.Len(t, advice, 1)
	assert.Equal(t, UrgencyMedium, advice[0].Urgency)
	assert.Equal(t, CategoryLiquidity, advice[0].Category)
}

func TestGenerate_EfficiencyRule(t *testing.T) {
	// Aggressive burn (margin < -30) with a comfortable buffer (runway >= 6).
	advice := Generate(8, 0, 10_000_000, -45)

	require.Len(t, advice, 1)
	assert.Equal(t, UrgencyMedium, advice[0].Urgency)
	assert.Equal(t, CategoryEfficiency, advice[0].Category)
}
