package alpaca

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/gamma-omg/stock-api/internal/config"
	"github.com/gamma-omg/stock-api/internal/market"
	"github.com/gamma-omg/stock-api/internal/provider"
	"github.com/shopspring/decimal"
)

const name = "alpaca"

// Alpaca lists US equities only and quotes them in dollars.
const currency = "USD"

var exchangeTz = mustLoadLocation("America/New_York")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

type AlpacaProvider struct {
	log  *slog.Logger
	api  alpacaApi
	feed marketdata.Feed
	now  func() time.Time
}

func NewAlpacaProvider(log *slog.Logger, cfg config.Alpaca) *AlpacaProvider {
	return newAlpacaProviderWithApi(log, cfg, newSdkApi(cfg.ApiKey, cfg.Secret, cfg.BaseUrl, cfg.DataUrl))
}

func newAlpacaProviderWithApi(log *slog.Logger, cfg config.Alpaca, api alpacaApi) *AlpacaProvider {
	return &AlpacaProvider{
		log:  log,
		api:  api,
		feed: marketdata.Feed(cfg.Feed),
		now:  time.Now,
	}
}

func (ap *AlpacaProvider) Name() string { return name }

// FetchHistory loads split and dividend adjusted daily bars. The SDK calls
// are not context aware, so ctx is only checked before the request.
func (ap *AlpacaProvider) FetchHistory(ctx context.Context, symbol string, period market.Period) (market.Series, error) {
	if err := ctx.Err(); err != nil {
		return nil, provider.Upstream(name, err)
	}

	now := ap.now()
	req := marketdata.GetBarsRequest{
		TimeFrame:  marketdata.OneDay,
		Adjustment: marketdata.All,
		Start:      period.Start(now),
		Feed:       ap.feed,
	}
	if period == market.Period1d {
		// the last session may be several calendar days back
		req.Start = now.AddDate(0, 0, -7)
	}

	history, err := ap.api.GetBars(strings.ToUpper(symbol), req)
	if err != nil {
		return nil, ap.classify(symbol, fmt.Errorf("failed to get bars: %w", err))
	}

	bars := make(market.Series, len(history))
	for i, b := range history {
		t := b.Timestamp.In(exchangeTz)
		bars[i] = market.Bar{
			Time:   time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, exchangeTz),
			Open:   decimal.NewFromFloat(b.Open),
			High:   decimal.NewFromFloat(b.High),
			Low:    decimal.NewFromFloat(b.Low),
			Close:  decimal.NewFromFloat(b.Close),
			Volume: b.Volume,
		}
	}

	bars = bars.Sort()
	if period == market.Period1d {
		bars = bars.Tail(1)
	}

	return bars, nil
}

func (ap *AlpacaProvider) FetchMetadata(ctx context.Context, symbol string) (market.Metadata, error) {
	if err := ctx.Err(); err != nil {
		return market.Metadata{}, provider.Upstream(name, err)
	}

	asset, err := ap.api.GetAsset(strings.ToUpper(symbol))
	if err != nil {
		return market.Metadata{}, ap.classify(symbol, fmt.Errorf("failed to get asset: %w", err))
	}

	return market.Metadata{
		Name:     asset.Name,
		Currency: currency,
		Exchange: asset.Exchange,
	}, nil
}

func (ap *AlpacaProvider) classify(symbol string, err error) error {
	var apiErr *alpaca.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		ap.log.Debug("alpaca asset not found", slog.String("symbol", symbol), slog.String("error", err.Error()))
		return provider.NotFound(symbol)
	}

	return provider.Upstream(name, err)
}
