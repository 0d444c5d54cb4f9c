package market

import (
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

var ErrNoBars = errors.New("insufficient data")

type Bar struct {
	Time   time.Time
	Open   decimal.Decimal
	High   decimal.Decimal
	Low    decimal.Decimal
	Close  decimal.Decimal
	Volume uint64
}

// Series is a sequence of bars ordered by time, oldest first.
type Series []Bar

// Metadata holds descriptive instrument attributes. Fields the provider does
// not know are left zero.
type Metadata struct {
	Name        string
	Currency    string
	Exchange    string
	Sector      string
	Industry    string
	MarketCap   int64
	Website     string
	Description string
}

func (s Series) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, b := range s {
		closes[i] = b.Close.InexactFloat64()
	}

	return closes
}

func (s Series) Last() (Bar, error) {
	if len(s) == 0 {
		return Bar{}, ErrNoBars
	}

	return s[len(s)-1], nil
}

// Tail returns at most count most recent bars.
func (s Series) Tail(count int) Series {
	if count <= 0 {
		return Series{}
	}
	if len(s) <= count {
		return s
	}

	return s[len(s)-count:]
}

// Since drops bars older than t.
func (s Series) Since(t time.Time) Series {
	i := sort.Search(len(s), func(i int) bool {
		return !s[i].Time.Before(t)
	})

	return s[i:]
}

// Sort orders bars by time in place. Of several bars sharing a timestamp
// only the one that came last is kept.
func (s Series) Sort() Series {
	sort.SliceStable(s, func(i, j int) bool {
		return s[i].Time.Before(s[j].Time)
	})

	res := s[:0]
	for i, b := range s {
		if i > 0 && b.Time.Equal(res[len(res)-1].Time) {
			res[len(res)-1] = b
			continue
		}
		res = append(res, b)
	}

	return res
}
