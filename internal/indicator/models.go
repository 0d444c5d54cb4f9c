package indicator

import (
	"errors"

	"github.com/guregu/null/v6"
)

const (
	SMA20Period = 20
	SMA50Period = 50
	RSIPeriod   = 14

	// RSIFallback is reported whenever RSI cannot be computed, either for
	// lack of history or because the window was flat.
	RSIFallback = 50.0
)

var (
	ErrInsufficientData = errors.New("insufficient data")
	ErrFlatWindow       = errors.New("no price change in window")
	ErrInvalidPeriod    = errors.New("period must be positive")
)

// Snapshot is the set of indicators as of the most recent bar.
type Snapshot struct {
	Price float64
	SMA20 null.Float
	SMA50 null.Float
	RSI   float64

	// RSIErr records why RSI fell back to RSIFallback, nil otherwise.
	RSIErr error
}
