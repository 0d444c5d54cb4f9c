package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/gamma-omg/stock-api/internal/config"
	"github.com/gamma-omg/stock-api/internal/market"
	"github.com/gamma-omg/stock-api/internal/provider"
	"github.com/shopspring/decimal"
)

const name = "yahoo"

var errUnauthorized = errors.New("yahoo: unauthorized")

// YahooProvider reads bars and metadata from the public Yahoo Finance REST
// endpoints.
type YahooProvider struct {
	log       *slog.Logger
	client    *http.Client
	baseUrl   string
	userAgent string
}

func NewYahooProvider(log *slog.Logger, cfg config.Yahoo) (*YahooProvider, error) {
	transport := &http.Transport{Proxy: http.ProxyFromEnvironment}
	if cfg.Proxy != "" {
		u, err := url.Parse(cfg.Proxy)
		if err != nil {
			return nil, fmt.Errorf("invalid yahoo proxy url: %w", err)
		}
		transport.Proxy = http.ProxyURL(u)
	}

	return &YahooProvider{
		log: log,
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		baseUrl:   cfg.BaseUrl,
		userAgent: cfg.UserAgent,
	}, nil
}

func (p *YahooProvider) Name() string { return name }

func (p *YahooProvider) FetchHistory(ctx context.Context, symbol string, period market.Period) (market.Series, error) {
	res, err := p.fetchChart(ctx, symbol, period)
	if err != nil {
		return nil, err
	}

	bars, err := toSeries(res)
	if err != nil {
		return nil, provider.Upstream(name, err)
	}

	return bars, nil
}

// FetchMetadata prefers quoteSummary and falls back to the chart metadata
// when Yahoo refuses quoteSummary without a session crumb.
func (p *YahooProvider) FetchMetadata(ctx context.Context, symbol string) (market.Metadata, error) {
	md, err := p.fetchQuoteSummary(ctx, symbol)
	if err == nil {
		return md, nil
	}
	if !errors.Is(err, errUnauthorized) {
		return market.Metadata{}, err
	}

	p.log.Debug("quote summary unauthorized, using chart metadata", slog.String("symbol", symbol))

	res, err := p.fetchChart(ctx, symbol, market.Period1d)
	if err != nil {
		return market.Metadata{}, err
	}

	return market.Metadata{
		Name:     res.Meta.LongName,
		Currency: res.Meta.Currency,
		Exchange: res.Meta.ExchangeName,
	}, nil
}

func (p *YahooProvider) fetchChart(ctx context.Context, symbol string, period market.Period) (*chartResult, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=%s&includePrePost=false",
		p.baseUrl, url.PathEscape(symbol), url.QueryEscape(period.String()))

	var chart chartResponse
	status, err := p.getJSON(ctx, u, &chart)
	if err != nil {
		return nil, err
	}

	if e := chart.Chart.Error; e != nil {
		if status == http.StatusNotFound || e.Code == "Not Found" {
			return nil, provider.NotFound(symbol)
		}
		return nil, provider.Upstream(name, fmt.Errorf("yahoo api error: %s", e.Description))
	}
	if status != http.StatusOK {
		return nil, provider.Upstream(name, fmt.Errorf("yahoo: status %d", status))
	}
	if len(chart.Chart.Result) == 0 {
		return nil, provider.NotFound(symbol)
	}

	return &chart.Chart.Result[0], nil
}

func (p *YahooProvider) fetchQuoteSummary(ctx context.Context, symbol string) (market.Metadata, error) {
	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=price,assetProfile",
		p.baseUrl, url.PathEscape(symbol))

	var summary quoteSummaryResponse
	status, err := p.getJSON(ctx, u, &summary)
	if err != nil {
		return market.Metadata{}, err
	}

	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return market.Metadata{}, errUnauthorized
	}
	if e := summary.QuoteSummary.Error; e != nil {
		if status == http.StatusNotFound || e.Code == "Not Found" {
			return market.Metadata{}, provider.NotFound(symbol)
		}
		return market.Metadata{}, provider.Upstream(name, fmt.Errorf("yahoo api error: %s", e.Description))
	}
	if status != http.StatusOK {
		return market.Metadata{}, provider.Upstream(name, fmt.Errorf("yahoo: status %d", status))
	}
	if len(summary.QuoteSummary.Result) == 0 {
		return market.Metadata{}, provider.NotFound(symbol)
	}

	var md market.Metadata
	res := summary.QuoteSummary.Result[0]
	if pr := res.Price; pr != nil {
		md.Name = pr.LongName
		md.Currency = pr.Currency
		md.Exchange = pr.Exchange
		md.MarketCap = int64(pr.MarketCap.Raw)
	}
	if ap := res.AssetProfile; ap != nil {
		md.Sector = ap.Sector
		md.Industry = ap.Industry
		md.Website = ap.Website
		md.Description = ap.LongBusinessSummary
	}

	return md, nil
}

// getJSON decodes the response body into v whatever the status code, since
// Yahoo reports errors in the body of 4xx responses. Bodies that are not
// JSON are only an error for 2xx responses.
func (p *YahooProvider) getJSON(ctx context.Context, u string, v any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, provider.Upstream(name, err)
	}
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, provider.Upstream(name, fmt.Errorf("yahoo fetch: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, provider.Upstream(name, fmt.Errorf("yahoo read body: %w", err))
	}

	if err := json.Unmarshal(body, v); err != nil {
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return 0, provider.Upstream(name, fmt.Errorf("yahoo decode: %w", err))
		}
		p.log.Debug("undecodable yahoo error body",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)))
	}

	return resp.StatusCode, nil
}

// toSeries converts the chart columns into daily bars dated at midnight in
// the exchange time zone. Rows with a null price are skipped.
func toSeries(res *chartResult) (market.Series, error) {
	if len(res.Indicators.Quote) == 0 {
		if len(res.Timestamp) == 0 {
			return market.Series{}, nil
		}
		return nil, errors.New("yahoo: quote data missing")
	}

	loc := time.UTC
	if res.Meta.ExchangeTimezoneName != "" {
		if l, err := time.LoadLocation(res.Meta.ExchangeTimezoneName); err == nil {
			loc = l
		}
	}

	q := res.Indicators.Quote[0]
	n := len(res.Timestamp)
	if len(q.Open) < n || len(q.High) < n || len(q.Low) < n || len(q.Close) < n || len(q.Volume) < n {
		return nil, errors.New("yahoo: quote columns shorter than timestamps")
	}

	bars := make(market.Series, 0, n)
	for i, ts := range res.Timestamp {
		if q.Open[i] == nil || q.High[i] == nil || q.Low[i] == nil || q.Close[i] == nil {
			continue
		}

		var vol uint64
		if v := q.Volume[i]; v != nil && *v > 0 {
			vol = uint64(*v)
		}

		t := time.Unix(ts, 0).In(loc)
		bars = append(bars, market.Bar{
			Time:   time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc),
			Open:   decimal.NewFromFloat(*q.Open[i]),
			High:   decimal.NewFromFloat(*q.High[i]),
			Low:    decimal.NewFromFloat(*q.Low[i]),
			Close:  decimal.NewFromFloat(*q.Close[i]),
			Volume: vol,
		})
	}

	return bars.Sort(), nil
}
