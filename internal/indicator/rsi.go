package indicator

import (
	"fmt"
	"math"
)

// RSI computes the relative strength index of the latest close. Average gain
// and loss are plain means over the trailing period deltas, not Wilder's
// exponential smoothing.
//
// At least period+1 closes are needed. A window without any price change
// yields ErrFlatWindow.
func RSI(closes []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, ErrInvalidPeriod
	}
	if len(closes) < period+1 {
		return 0, fmt.Errorf("rsi(%d) over %d closes: %w", period, len(closes), ErrInsufficientData)
	}

	gains, losses := changes(closes[len(closes)-period-1:])
	avgGain := sum(gains) / float64(period)
	avgLoss := sum(losses) / float64(period)

	return rsi(avgGain, avgLoss)
}

// RSISeries computes RSI for every close. Positions where RSI is undefined
// hold NaN.
func RSISeries(closes []float64, period int) []float64 {
	res := make([]float64, len(closes))
	for i := range res {
		res[i] = math.NaN()
	}
	if period <= 0 || len(closes) < period+1 {
		return res
	}

	gains, losses := changes(closes)
	g := sum(gains[:period])
	l := sum(losses[:period])
	for i := period; i < len(closes); i++ {
		if i > period {
			g += gains[i-1] - gains[i-1-period]
			l += losses[i-1] - losses[i-1-period]
		}

		v, err := rsi(g/float64(period), l/float64(period))
		if err == nil {
			res[i] = v
		}
	}

	return res
}
