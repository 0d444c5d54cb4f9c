package csvfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/gamma-omg/stock-api/internal/market"
)

// BarWriter writes bars in the layout barReader accepts, so history fetched
// from a live provider can be served offline later.
type BarWriter struct {
	w           *csv.Writer
	writeHeader bool
}

func NewBarWriter(w io.Writer) *BarWriter {
	return &BarWriter{csv.NewWriter(w), true}
}

func (d *BarWriter) Write(bar market.Bar) error {
	if d.writeHeader {
		if err := d.w.Write([]string{"date", "open", "high", "low", "close", "volume"}); err != nil {
			return fmt.Errorf("failed to write bars csv header: %w", err)
		}
		d.writeHeader = false
	}

	err := d.w.Write([]string{
		bar.Time.Format(dateLayout),
		bar.Open.String(),
		bar.High.String(),
		bar.Low.String(),
		bar.Close.String(),
		strconv.FormatUint(bar.Volume, 10)})

	if err != nil {
		return fmt.Errorf("failed to write bar: %w", err)
	}

	return nil
}

func (d *BarWriter) WriteAll(s market.Series) error {
	for _, b := range s {
		if err := d.Write(b); err != nil {
			return err
		}
	}

	return d.Flush()
}

func (d *BarWriter) Flush() error {
	d.w.Flush()
	return d.w.Error()
}
