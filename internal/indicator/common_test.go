package indicator

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChanges(t *testing.T) {
	tbl := []struct {
		closes []float64
		gains  []float64
		losses []float64
	}{
		{
			closes: []float64{},
			gains:  []float64{},
			losses: []float64{},
		},
		{
			closes: []float64{5},
			gains:  []float64{},
			losses: []float64{},
		},
		{
			closes: []float64{1, 2, 4, 3, 3, 1},
			gains:  []float64{1, 2, 0, 0, 0},
			losses: []float64{0, 0, 1, 0, 2},
		},
	}

	for i, c := range tbl {
		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			gains, losses := changes(c.closes)
			assert.Equal(t, c.gains, gains)
			assert.Equal(t, c.losses, losses)
		})
	}
}

func TestRsiFormula(t *testing.T) {
	tbl := []struct {
		gain float64
		loss float64
		out  float64
		err  error
	}{
		{gain: 1, loss: 1, out: 50},
		{gain: 3, loss: 1, out: 75},
		{gain: 1, loss: 3, out: 25},
		{gain: 0, loss: 2, out: 0},
		{gain: 2, loss: 0, out: 100},
		{gain: 0, loss: 0, err: ErrFlatWindow},
	}

	for i, c := range tbl {
		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			v, err := rsi(c.gain, c.loss)
			if c.err != nil {
				require.ErrorIs(t, err, c.err)
				assert.True(t, math.IsNaN(v))
				return
			}

			require.NoError(t, err)
			assert.InDelta(t, c.out, v, 1e-9)
		})
	}
}

func TestRsiFormula_monotonic(t *testing.T) {
	prev := -1.0
	for gain := 0.1; gain < 10; gain += 0.1 {
		v, err := rsi(gain, 1)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v, prev)
		prev = v
	}

	prev = 101.0
	for loss := 0.1; loss < 10; loss += 0.1 {
		v, err := rsi(1, loss)
		require.NoError(t, err)
		assert.LessOrEqual(t, v, prev)
		prev = v
	}
}
