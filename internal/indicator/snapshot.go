package indicator

import (
	"fmt"

	"github.com/gamma-omg/stock-api/internal/market"
	"github.com/guregu/null/v6"
)

// Calculate computes SMA20, SMA50 and RSI14 as of the last bar in s.
// Moving averages without a full window are left null; RSI falls back to
// RSIFallback and keeps the reason in RSIErr.
func Calculate(s market.Series) (Snapshot, error) {
	last, err := s.Last()
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to calculate indicators: %w", ErrInsufficientData)
	}

	closes := s.Closes()
	snap := Snapshot{
		Price: last.Close.InexactFloat64(),
		SMA20: smaOrNull(closes, SMA20Period),
		SMA50: smaOrNull(closes, SMA50Period),
		RSI:   RSIFallback,
	}

	v, err := RSI(closes, RSIPeriod)
	if err != nil {
		snap.RSIErr = err
	} else {
		snap.RSI = v
	}

	return snap, nil
}

func smaOrNull(closes []float64, period int) null.Float {
	v, err := SMA(closes, period)
	if err != nil {
		return null.Float{}
	}

	return null.FloatFrom(v)
}
