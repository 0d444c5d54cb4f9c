package csvfile

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gamma-omg/stock-api/internal/market"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type barReader struct {
	rdr *csv.Reader
	loc *time.Location
}

func newBarReader(r io.Reader, loc *time.Location) *barReader {
	rdr := csv.NewReader(bufio.NewReader(r))
	rdr.FieldsPerRecord = 6
	rdr.TrimLeadingSpace = true

	return &barReader{
		rdr: rdr,
		loc: loc,
	}
}

// Read consumes the whole input. The first row is a header; each following
// row is timestamp,open,high,low,close,volume where timestamp is either unix
// seconds or a YYYY-MM-DD date. Unix timestamps are truncated to the day, and
// of several rows falling on the same day the last one wins.
func (b *barReader) Read() (market.Series, error) {
	if _, err := b.rdr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return market.Series{}, nil
		}
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	var bars market.Series
	for {
		data, err := b.rdr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read bar data: %w", err)
		}

		bar, err := b.parse(data)
		if err != nil {
			line, _ := b.rdr.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		bars = append(bars, bar)
	}

	return bars.Sort(), nil
}

func (b *barReader) parse(data []string) (market.Bar, error) {
	t, err := b.parseTime(data[0])
	if err != nil {
		return market.Bar{}, fmt.Errorf("failed to parse bar time: %w", err)
	}

	open, err := decimal.NewFromString(data[1])
	if err != nil {
		return market.Bar{}, fmt.Errorf("failed to read open price: %w", err)
	}

	high, err := decimal.NewFromString(data[2])
	if err != nil {
		return market.Bar{}, fmt.Errorf("failed to read high price: %w", err)
	}

	low, err := decimal.NewFromString(data[3])
	if err != nil {
		return market.Bar{}, fmt.Errorf("failed to read low price: %w", err)
	}

	close, err := decimal.NewFromString(data[4])
	if err != nil {
		return market.Bar{}, fmt.Errorf("failed to read close price: %w", err)
	}

	volume, err := decimal.NewFromString(data[5])
	if err != nil {
		return market.Bar{}, fmt.Errorf("failed to read volume: %w", err)
	}

	if open.IsNegative() || high.IsNegative() || low.IsNegative() || close.IsNegative() || volume.IsNegative() {
		return market.Bar{}, errors.New("negative price or volume")
	}

	return market.Bar{
		Time:   t,
		Open:   open,
		High:   high,
		Low:    low,
		Close:  close,
		Volume: uint64(volume.IntPart()),
	}, nil
}

func (b *barReader) parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(dateLayout, s, b.loc); err == nil {
		return t, nil
	}

	ts, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("unsupported timestamp %q", s)
	}

	t := time.Unix(int64(ts), 0).In(b.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, b.loc), nil
}
