package indicator

import "math"

// changes splits consecutive close deltas into gains and losses, both
// non-negative.
func changes(closes []float64) (gains []float64, losses []float64) {
	n := len(closes)
	if n < 2 {
		return []float64{}, []float64{}
	}

	gains = make([]float64, n-1)
	losses = make([]float64, n-1)

	prev := closes[0]
	for i, cur := range closes[1:] {
		diff := cur - prev
		if diff > 0 {
			gains[i] = diff
		} else if diff < 0 {
			losses[i] = -diff
		}

		prev = cur
	}

	return
}

// rsi converts average gain and loss into the 0..100 oscillator value.
func rsi(avgGain, avgLoss float64) (float64, error) {
	if avgLoss == 0 {
		if avgGain == 0 {
			return math.NaN(), ErrFlatWindow
		}
		return 100, nil
	}

	rs := avgGain / avgLoss
	return 100 - 100/(1+rs), nil
}

func sum(data []float64) float64 {
	var s float64
	for _, v := range data {
		s += v
	}

	return s
}
