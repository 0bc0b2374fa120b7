package benchmarks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompare_KnownIndustries(t *testing.T) {
	r := Compare(25, "SaaS")
	assert.Equal(t, "SaaS", r.Industry)
	assert.Equal(t, 20.0, r.IndustryMedianMargin)
	assert.Equal(t, 5.0, r.DeltaPercent)
	assert.Equal(t, StatusAbove, r.Status)

	r = Compare(2, "Retail")
	assert.Equal(t, 5.0, r.IndustryMedianMargin)
	assert.Equal(t, -3.0, r.DeltaPercent)
	assert.Equal(t, StatusBelow, r.Status)

	r = Compare(10, "Restaurant")
	assert.Equal(t, StatusEqual, r.Status)
	assert.Equal(t, 0.0, r.DeltaPercent)
}

func TestCompare_UnknownIndustryFallsBackToDefault(t *testing.T) {
	r := Compare(14.5, "Quantum Basket Weaving")

	assert.Equal(t, DefaultIndustry, r.Industry)
	assert.Equal(t, 15.0, r.IndustryMedianMargin)
	assert.Equal(t, -0.5, r.DeltaPercent)
	assert.Equal(t, StatusBelow, r.Status)
}

func TestCompare_EmptyIndustryFallsBackToDefault(t *testing.T) {
	r := Compare(15, "")
	assert.Equal(t, DefaultIndustry, r.Industry)
	assert.Equal(t, StatusEqual, r.Status)
}
