package factory

import (
	"errors"
	"log/slog"

	"github.com/gamma-omg/stock-api/internal/config"
	"github.com/gamma-omg/stock-api/internal/provider"
	"github.com/gamma-omg/stock-api/internal/provider/alpaca"
	"github.com/gamma-omg/stock-api/internal/provider/csvfile"
	"github.com/gamma-omg/stock-api/internal/provider/yahoo"
)

func Create(log *slog.Logger, ref config.ProviderReference) (provider.Provider, error) {
	switch cfg := ref.Provider.(type) {
	case config.Yahoo:
		return yahoo.NewYahooProvider(log.With(slog.String("provider", "yahoo")), cfg)
	case config.Alpaca:
		return alpaca.NewAlpacaProvider(log.With(slog.String("provider", "alpaca")), cfg), nil
	case config.CSV:
		return csvfile.NewCSVProvider(log.With(slog.String("provider", "csv")), cfg), nil
	}

	return nil, errors.New("unknown market data provider")
}
