package csvfile

import (
	"bytes"
	"testing"
	"time"

	"github.com/gamma-omg/stock-api/internal/market"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBarWriter(t *testing.T) {
	var buff bytes.Buffer
	w := NewBarWriter(&buff)
	err := w.WriteAll(market.Series{
		{
			Time:   time.Date(2020, time.April, 30, 0, 0, 0, 0, time.UTC),
			Open:   decimal.NewFromInt(100),
			High:   decimal.NewFromInt(200),
			Low:    decimal.NewFromInt(50),
			Close:  decimal.RequireFromString("187.15"),
			Volume: 500,
		},
	})

	require.NoError(t, err)
	assert.Equal(t, `date,open,high,low,close,volume
2020-04-30,100,200,50,187.15,500
`, buff.String())
}

func TestBarWriter_readBack(t *testing.T) {
	in := market.Series{
		{Time: time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC), Close: decimal.RequireFromString("1.25"), Volume: 10},
		{Time: time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC), Close: decimal.RequireFromString("2.5"), Volume: 20},
	}

	var buff bytes.Buffer
	require.NoError(t, NewBarWriter(&buff).WriteAll(in))

	out, err := newBarReader(&buff, time.UTC).Read()
	require.NoError(t, err)
	require.Len(t, out, 2)
	for i := range in {
		assert.Equal(t, in[i].Time, out[i].Time)
		assert.True(t, in[i].Close.Equal(out[i].Close))
		assert.Equal(t, in[i].Volume, out[i].Volume)
	}
}
