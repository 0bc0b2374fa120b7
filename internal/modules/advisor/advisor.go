// Package advisor generates rule-based financial advice from core metrics.
// The rules are independent: several may fire for the same snapshot. When
// none fire, a single "all clear" entry is emitted, so the list is never
// empty.
package advisor

// Urgency levels for advisory entries.
const (
	UrgencyHigh   = "High"
	UrgencyMedium = "Medium"
	UrgencyLow    = "Low"
)

// Advice categories.
const (
	CategorySurvival   = "Survival"
	CategoryDebt       = "Debt"
	CategoryLiquidity  = "Liquidity"
	CategoryEfficiency = "Efficiency"
	CategoryGrowth     = "Growth"
)

// Entry is one piece of generated advice.
type Entry struct {
	Urgency  string `json:"urgency"`
	Category string `json:"category"`
	Message  string `json:"message"`
}

// lowCashThresholdCents is the "low cash" line ($50k) used by the liquidity
// rule for otherwise healthy-margin companies.
const lowCashThresholdCents = 5_000_000

// Generate evaluates the advisory rules in order and returns the entries
// whose conditions hold.
func Generate(runwayMonths float64, liabilitiesCents, cashOnHandCents int64, profitMargin float64) []Entry {
	var advice []Entry

	if runwayMonths < 3 {
		advice = append(advice, Entry{
			Urgency:  UrgencyHigh,
			Category: CategorySurvival,
			Message:  "URGENT: Runway is under 3 months. Immediate cost reduction required. Halt all non-essential marketing and hiring. Focus strictly on closing near-term revenue.",
		})
	}

	if liabilitiesCents > cashOnHandCents {
		advice = append(advice, Entry{
			Urgency:  UrgencyHigh,
			Category: CategoryDebt,
			Message:  "WARNING: Your immediate liabilities exceed your cash on hand. Look into debt restructuring, extending payment terms with vendors, or bridging capital immediately.",
		})
	}

	if profitMargin >= 15 && cashOnHandCents < lowCashThresholdCents {
		advice = append(advice, Entry{
			Urgency:  UrgencyMedium,
			Category: CategoryLiquidity,
			Message:  "Your profit margins are strong, but cash reserves are relatively low. Consider offering upfront annual discounts to customers to pull forward cash flow, or secure a revolving credit line.",
		})
	}

	if profitMargin < -30 && runwayMonths >= 6 {
		advice = append(advice, Entry{
			Urgency:  UrgencyMedium,
			Category: CategoryEfficiency,
			Message:  "You have a comfortable cash buffer, but your burn rate is aggressive. Optimize your customer acquisition costs (CAC) and evaluate software bloat to improve capital efficiency.",
		})
	}

	if len(advice) == 0 {
		advice = append(advice, Entry{
			Urgency:  UrgencyLow,
			Category: CategoryGrowth,
			Message:  "Strong financial health detected. Maintain current lean operations and consider allocating excess cash into high-ROI growth channels.",
		})
	}

	return advice
}
