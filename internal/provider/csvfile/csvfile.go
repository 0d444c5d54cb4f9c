package csvfile

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gamma-omg/stock-api/internal/config"
	"github.com/gamma-omg/stock-api/internal/market"
	"github.com/gamma-omg/stock-api/internal/provider"
)

const name = "csv"

// CSVProvider serves bars from local CSV files, one file per symbol. Periods
// are measured back from the newest bar in the file rather than from the
// wall clock.
type CSVProvider struct {
	log  *slog.Logger
	data map[string]string
	meta map[string]config.CSVMetadata
}

func NewCSVProvider(log *slog.Logger, cfg config.CSV) *CSVProvider {
	data := make(map[string]string, len(cfg.Data))
	for symbol, path := range cfg.Data {
		data[strings.ToUpper(symbol)] = path
	}

	meta := make(map[string]config.CSVMetadata, len(cfg.Meta))
	for symbol, md := range cfg.Meta {
		meta[strings.ToUpper(symbol)] = md
	}

	return &CSVProvider{
		log:  log,
		data: data,
		meta: meta,
	}
}

func (p *CSVProvider) Name() string { return name }

func (p *CSVProvider) FetchHistory(ctx context.Context, symbol string, period market.Period) (market.Series, error) {
	if err := ctx.Err(); err != nil {
		return nil, provider.Upstream(name, err)
	}

	path, ok := p.data[strings.ToUpper(symbol)]
	if !ok {
		return nil, provider.NotFound(symbol)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, provider.Upstream(name, fmt.Errorf("unable to open bars file: %w", err))
	}
	defer f.Close()

	bars, err := newBarReader(f, time.UTC).Read()
	if err != nil {
		return nil, provider.Upstream(name, fmt.Errorf("failed to read %s: %w", path, err))
	}

	last, err := bars.Last()
	if err != nil {
		return bars, nil
	}

	if period == market.Period1d {
		return bars.Tail(1), nil
	}

	p.log.Debug("csv bars loaded", slog.String("symbol", symbol), slog.Int("count", len(bars)))
	return bars.Since(period.Start(last.Time)), nil
}

func (p *CSVProvider) FetchMetadata(ctx context.Context, symbol string) (market.Metadata, error) {
	if err := ctx.Err(); err != nil {
		return market.Metadata{}, provider.Upstream(name, err)
	}

	key := strings.ToUpper(symbol)
	if _, ok := p.data[key]; !ok {
		return market.Metadata{}, provider.NotFound(symbol)
	}

	md := p.meta[key]
	return market.Metadata{
		Name:        md.Name,
		Currency:    md.Currency,
		Exchange:    md.Exchange,
		Sector:      md.Sector,
		Industry:    md.Industry,
		MarketCap:   md.MarketCap,
		Website:     md.Website,
		Description: md.Description,
	}, nil
}
