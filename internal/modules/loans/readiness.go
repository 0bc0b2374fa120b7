// Package loans implements the loan readiness scorer: a 0-100
// loan-approval-likelihood score with human-readable blocking reasons,
// derived from debt load, profitability and runway.
package loans

// Tier labels for the readiness score.
const (
	TierHighlyLikely = "Highly Likely"
	TierModerate     = "Moderate"
	TierRisky        = "Risky"
	TierUnlikely     = "Unlikely"
)

// Result is the outcome of a readiness evaluation. Blockers is empty only
// when no penalty rule fired.
type Result struct {
	Score    int      `json:"loanScore"`
	Tier     string   `json:"readinessTier"`
	Blockers []string `json:"blockers"`
}

// Evaluate calculates the loan readiness score. The score starts at 100 and
// each penalty rule that fires subtracts points and appends a blocker. A
// margin of 20% or better earns a bonus instead, capped at 100.
func Evaluate(liabilitiesCents, cashOnHandCents int64, profitMargin, runwayMonths float64) Result {
	score := 100
	blockers := []string{}

	// Debt-to-cash ratio. The zero-cash case is mutually exclusive with the
	// ratio checks.
	if cashOnHandCents > 0 {
		ratio := float64(liabilitiesCents) / float64(cashOnHandCents)
		if ratio > 2.0 {
			score -= 40
			blockers = append(blockers, "Extreme debt-to-cash ratio")
		} else if ratio > 1.0 {
			score -= 20
			blockers = append(blockers, "High debt burden compared to cash reserves")
		}
	} else if liabilitiesCents > 0 {
		score -= 50
		blockers = append(blockers, "Liabilities exist with zero cash on hand")
	}

	// Profitability
	if profitMargin < -20 {
		score -= 30
		blockers = append(blockers, "Severe negative profit margin (high burn)")
	} else if profitMargin < 0 {
		score -= 10
		blockers = append(blockers, "Currently unprofitable")
	} else if profitMargin >= 20 {
		// Bonus for high profitability, not a blocker
		score += 10
		if score > 100 {
			score = 100
		}
	}

	// Runway
	if runwayMonths < 6 {
		score -= 40
		blockers = append(blockers, "Runway is critically short (< 6 months)")
	} else if runwayMonths < 12 {
		score -= 15
		blockers = append(blockers, "Runway is under 12 months")
	}

	if score < 0 {
		score = 0
	}

	return Result{
		Score:    score,
		Tier:     tierFor(score),
		Blockers: blockers,
	}
}

// tierFor maps a score to its readiness tier. Boundaries are inclusive.
func tierFor(score int) string {
	switch {
	case score >= 80:
		return TierHighlyLikely
	case score >= 50:
		return TierModerate
	case score >= 25:
		return TierRisky
	default:
		return TierUnlikely
	}
}
