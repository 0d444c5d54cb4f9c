package indicator

import (
	"github.com/guregu/null/v6"
	"github.com/shopspring/decimal"
)

// Round2 rounds v to cents, half away from zero.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func Round2Null(v null.Float) null.Float {
	if !v.Valid {
		return v
	}

	return null.FloatFrom(Round2(v.Float64))
}
