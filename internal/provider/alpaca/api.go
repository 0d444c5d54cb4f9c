package alpaca

import (
	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
)

type alpacaApi interface {
	GetBars(symbol string, req marketdata.GetBarsRequest) ([]marketdata.Bar, error)
	GetAsset(symbol string) (*alpaca.Asset, error)
}

type sdkApi struct {
	trading *alpaca.Client
	data    *marketdata.Client
}

func newSdkApi(apiKey, secret, baseUrl, dataUrl string) *sdkApi {
	return &sdkApi{
		trading: alpaca.NewClient(alpaca.ClientOpts{
			BaseURL:   baseUrl,
			APIKey:    apiKey,
			APISecret: secret,
		}),
		data: marketdata.NewClient(marketdata.ClientOpts{
			BaseURL:   dataUrl,
			APIKey:    apiKey,
			APISecret: secret,
		}),
	}
}

func (a *sdkApi) GetBars(symbol string, req marketdata.GetBarsRequest) ([]marketdata.Bar, error) {
	return a.data.GetBars(symbol, req)
}

func (a *sdkApi) GetAsset(symbol string) (*alpaca.Asset, error) {
	return a.trading.GetAsset(symbol)
}
