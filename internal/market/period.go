package market

import (
	"fmt"
	"time"
)

// Period is a lookback window in the vocabulary market data providers use
// ("1mo", "1y", ...).
type Period string

const (
	Period1d  Period = "1d"
	Period5d  Period = "5d"
	Period1mo Period = "1mo"
	Period3mo Period = "3mo"
	Period6mo Period = "6mo"
	Period1y  Period = "1y"
	Period2y  Period = "2y"
	Period5y  Period = "5y"
	Period10y Period = "10y"
	PeriodYtd Period = "ytd"
	PeriodMax Period = "max"
)

var periods = map[Period]func(now time.Time) time.Time{
	Period1d:  func(now time.Time) time.Time { return now.AddDate(0, 0, -1) },
	Period5d:  func(now time.Time) time.Time { return now.AddDate(0, 0, -5) },
	Period1mo: func(now time.Time) time.Time { return now.AddDate(0, -1, 0) },
	Period3mo: func(now time.Time) time.Time { return now.AddDate(0, -3, 0) },
	Period6mo: func(now time.Time) time.Time { return now.AddDate(0, -6, 0) },
	Period1y:  func(now time.Time) time.Time { return now.AddDate(-1, 0, 0) },
	Period2y:  func(now time.Time) time.Time { return now.AddDate(-2, 0, 0) },
	Period5y:  func(now time.Time) time.Time { return now.AddDate(-5, 0, 0) },
	Period10y: func(now time.Time) time.Time { return now.AddDate(-10, 0, 0) },
	PeriodYtd: func(now time.Time) time.Time {
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	},
	PeriodMax: func(time.Time) time.Time { return time.Time{} },
}

func ParsePeriod(s string) (Period, error) {
	p := Period(s)
	if _, ok := periods[p]; !ok {
		return "", fmt.Errorf("invalid period: %s", s)
	}

	return p, nil
}

// Start returns the earliest bar time covered by the period when looking back
// from now. PeriodMax yields the zero time.
func (p Period) Start(now time.Time) time.Time {
	start, ok := periods[p]
	if !ok {
		return now
	}

	return start(now)
}

func (p Period) String() string {
	return string(p)
}
