package formulas

import (
	"github.com/markcheno/go-talib"
)

// NetFlowSMA calculates the simple moving average of a daily net cash flow
// series, used to smooth the day-to-day noise in the transaction ledger into
// a trend line for charts.
//
// Args:
//   flows: daily net flow values in major units, oldest first
//   window: SMA period (typically 7)
//
// Returns:
//   Current SMA value, or nil if there is not enough data for one full window
func NetFlowSMA(flows []float64, window int) *float64 {
	if window <= 0 || len(flows) < window {
		return nil
	}

	sma := talib.Sma(flows, window)

	if len(sma) > 0 && !isNaN(sma[len(sma)-1]) {
		result := sma[len(sma)-1]
		return &result
	}

	return nil
}

// isNaN checks if a float64 is NaN
func isNaN(f float64) bool {
	return f != f
}
