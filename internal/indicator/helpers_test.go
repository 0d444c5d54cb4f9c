package indicator

import (
	"time"

	"github.com/gamma-omg/stock-api/internal/market"
	"github.com/shopspring/decimal"
)

// wilderCloses is a 21 bar fixture with hand computed reference values:
// SMA20 = 45.5025, RSI14 (simple mean) = 62.528...
func wilderCloses() []float64 {
	return []float64{
		44.34, 44.09, 44.15, 43.61, 44.33, 44.83, 45.10, 45.42, 45.84, 46.08,
		45.89, 46.03, 45.61, 46.28, 46.28, 46.00, 46.03, 46.41, 46.22, 45.64,
		46.21,
	}
}

func seriesOf(closes []float64) market.Series {
	start := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)
	s := make(market.Series, len(closes))
	for i, c := range closes {
		p := decimal.NewFromFloat(c)
		s[i] = market.Bar{
			Time:   start.AddDate(0, 0, i),
			Open:   p,
			High:   p,
			Low:    p,
			Close:  p,
			Volume: 1000,
		}
	}

	return s
}
