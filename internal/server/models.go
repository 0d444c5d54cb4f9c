package server

import (
	"github.com/gamma-omg/stock-api/internal/indicator"
	"github.com/gamma-omg/stock-api/internal/market"
	"github.com/guregu/null/v6"
	"github.com/shopspring/decimal"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05"

	unknown         = "Unknown"
	defaultCurrency = "USD"
)

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type barResponse struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Price  float64 `json:"price"`
	Volume uint64  `json:"volume"`
}

type historyResponse struct {
	Symbol   string        `json:"symbol"`
	Name     string        `json:"name"`
	Currency string        `json:"currency"`
	Exchange string        `json:"exchange"`
	Sector   string        `json:"sector"`
	Data     []barResponse `json:"data"`
}

type latestResponse struct {
	Symbol    string  `json:"symbol"`
	Price     float64 `json:"price"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Volume    uint64  `json:"volume"`
	Timestamp string  `json:"timestamp"`
}

type infoResponse struct {
	Symbol      string `json:"symbol"`
	Name        string `json:"name"`
	Sector      string `json:"sector"`
	Industry    string `json:"industry"`
	MarketCap   int64  `json:"marketCap"`
	Currency    string `json:"currency"`
	Exchange    string `json:"exchange"`
	Website     string `json:"website"`
	Description string `json:"description"`
}

type technicalResponse struct {
	Symbol string     `json:"symbol"`
	SMA20  null.Float `json:"sma20"`
	SMA50  null.Float `json:"sma50"`
	RSI    float64    `json:"rsi"`
	Price  float64    `json:"price"`
}

// round2 rounds half away from zero to cents.
func round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func newBarResponse(b market.Bar) barResponse {
	return barResponse{
		Date:   b.Time.Format(dateLayout),
		Open:   round2(b.Open),
		High:   round2(b.High),
		Low:    round2(b.Low),
		Close:  round2(b.Close),
		Price:  round2(b.Close),
		Volume: b.Volume,
	}
}

func newLatestResponse(symbol string, b market.Bar) latestResponse {
	return latestResponse{
		Symbol:    symbol,
		Price:     round2(b.Close),
		Open:      round2(b.Open),
		High:      round2(b.High),
		Low:       round2(b.Low),
		Volume:    b.Volume,
		Timestamp: b.Time.Format(timestampLayout),
	}
}

func newInfoResponse(symbol string, md market.Metadata) infoResponse {
	return infoResponse{
		Symbol:      symbol,
		Name:        orDefault(md.Name, symbol),
		Sector:      orDefault(md.Sector, unknown),
		Industry:    orDefault(md.Industry, unknown),
		MarketCap:   md.MarketCap,
		Currency:    orDefault(md.Currency, defaultCurrency),
		Exchange:    orDefault(md.Exchange, unknown),
		Website:     md.Website,
		Description: md.Description,
	}
}

func newTechnicalResponse(symbol string, snap indicator.Snapshot) technicalResponse {
	return technicalResponse{
		Symbol: symbol,
		SMA20:  indicator.Round2Null(snap.SMA20),
		SMA50:  indicator.Round2Null(snap.SMA50),
		RSI:    indicator.Round2(snap.RSI),
		Price:  indicator.Round2(snap.Price),
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}

	return v
}
