package indicator

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// SMA returns the mean of the last period closes.
func SMA(closes []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, ErrInvalidPeriod
	}
	if len(closes) < period {
		return 0, fmt.Errorf("sma(%d) over %d closes: %w", period, len(closes), ErrInsufficientData)
	}

	return stat.Mean(closes[len(closes)-period:], nil), nil
}

// SMASeries computes the rolling SMA for every close. Positions without a
// full window hold NaN.
func SMASeries(closes []float64, period int) []float64 {
	res := make([]float64, len(closes))
	for i := range res {
		res[i] = math.NaN()
	}
	if period <= 0 || len(closes) < period {
		return res
	}

	s := sum(closes[:period])
	res[period-1] = s / float64(period)
	for i := period; i < len(closes); i++ {
		s += closes[i] - closes[i-period]
		res[i] = s / float64(period)
	}

	return res
}
