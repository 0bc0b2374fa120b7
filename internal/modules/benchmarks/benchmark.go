// Package benchmarks compares a tenant's profit margin against fixed
// industry median margins.
package benchmarks

import "github.com/veldt-labs/cashlens/pkg/formulas"

// Comparison statuses derived from the delta sign.
const (
	StatusAbove = "Above"
	StatusBelow = "Below"
	StatusEqual = "Equal"
)

// DefaultIndustry is the fallback category for unknown industries.
const DefaultIndustry = "Default"

// industryMedianMargins maps industry categories to median profit margins.
// Module-level immutable lookup; unknown categories fall back to Default.
var industryMedianMargins = map[string]float64{
	"SaaS":          20,
	"Retail":        5,
	"Restaurant":    10,
	DefaultIndustry: 15,
}

// Result is the outcome of a benchmark comparison.
type Result struct {
	Industry             string  `json:"industry"`
	IndustryMedianMargin float64 `json:"industryMedianMargin"`
	UserMargin           float64 `json:"userMargin"`
	DeltaPercent         float64 `json:"benchmarkDeltaPercent"`
	Status               string  `json:"status"`
}

// Compare evaluates the user's margin against the industry median.
// Unknown industry categories resolve to the Default entry.
func Compare(userMargin float64, industryCategory string) Result {
	category := industryCategory
	median, ok := industryMedianMargins[category]
	if !ok {
		category = DefaultIndustry
		median = industryMedianMargins[DefaultIndustry]
	}

	delta := formulas.Round2(userMargin - median)

	status := StatusEqual
	if delta > 0 {
		status = StatusAbove
	} else if delta < 0 {
		status = StatusBelow
	}

	return Result{
		Industry:             category,
		IndustryMedianMargin: median,
		UserMargin:           userMargin,
		DeltaPercent:         delta,
		Status:               status,
	}
}
