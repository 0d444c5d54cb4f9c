package market

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seriesOf(closes ...float64) Series {
	s := make(Series, len(closes))
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		s[i] = Bar{Time: start.AddDate(0, 0, i), Close: decimal.NewFromFloat(c)}
	}

	return s
}

func TestSeriesTail(t *testing.T) {
	tbl := []struct {
		bars  []float64
		count int
		out   []float64
	}{
		{bars: []float64{1, 2, 3, 4, 5, 6}, count: 1, out: []float64{6}},
		{bars: []float64{1, 2, 3, 4, 5, 6}, count: 3, out: []float64{4, 5, 6}},
		{bars: []float64{1, 2, 3}, count: 100, out: []float64{1, 2, 3}},
		{bars: []float64{1, 2, 3}, count: 0, out: []float64{}},
		{bars: []float64{}, count: 5, out: []float64{}},
	}

	for i, c := range tbl {
		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			out := seriesOf(c.bars...).Tail(c.count)
			assert.Equal(t, c.out, out.Closes())
		})
	}
}

func TestSeriesTail_truncatesLongHistory(t *testing.T) {
	closes := make([]float64, 1260)
	for i := range closes {
		closes[i] = float64(i)
	}

	out := seriesOf(closes...).Tail(100)
	require.Len(t, out, 100)
	assert.Equal(t, 1160.0, out[0].Close.InexactFloat64())
	assert.Equal(t, 1259.0, out[99].Close.InexactFloat64())
}

func TestSeriesLast(t *testing.T) {
	_, err := Series{}.Last()
	require.ErrorIs(t, err, ErrNoBars)

	b, err := seriesOf(1, 2, 3).Last()
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(3).Equal(b.Close))
}

func TestSeriesSince(t *testing.T) {
	s := seriesOf(1, 2, 3, 4, 5)

	out := s.Since(s[2].Time)
	assert.Equal(t, []float64{3, 4, 5}, out.Closes())

	out = s.Since(s[4].Time.Add(time.Hour))
	assert.Empty(t, out)

	out = s.Since(time.Time{})
	assert.Len(t, out, 5)
}

func TestSeriesSort(t *testing.T) {
	s := seriesOf(1, 2, 3)
	shuffled := Series{s[2], s[0], s[1], s[0]}

	out := shuffled.Sort()
	assert.Equal(t, []float64{1, 2, 3}, out.Closes())
}

func TestParsePeriod(t *testing.T) {
	tbl := []struct {
		in  string
		err bool
	}{
		{in: "1d"},
		{in: "5d"},
		{in: "1mo"},
		{in: "3mo"},
		{in: "6mo"},
		{in: "1y"},
		{in: "2y"},
		{in: "5y"},
		{in: "10y"},
		{in: "ytd"},
		{in: "max"},
		{in: "", err: true},
		{in: "7w", err: true},
		{in: "1Y", err: true},
	}

	for i, c := range tbl {
		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			p, err := ParsePeriod(c.in)
			require.Equal(t, c.err, err != nil)
			if !c.err {
				assert.Equal(t, c.in, p.String())
			}
		})
	}
}

func TestPeriodStart(t *testing.T) {
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

	tbl := []struct {
		period Period
		start  time.Time
	}{
		{period: Period1d, start: time.Date(2025, time.March, 14, 12, 0, 0, 0, time.UTC)},
		{period: Period3mo, start: time.Date(2024, time.December, 15, 12, 0, 0, 0, time.UTC)},
		{period: Period1y, start: time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)},
		{period: PeriodYtd, start: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{period: PeriodMax, start: time.Time{}},
	}

	for i, c := range tbl {
		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			assert.Equal(t, c.start, c.period.Start(now))
		})
	}
}
