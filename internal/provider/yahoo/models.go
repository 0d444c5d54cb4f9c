package yahoo

// chartResponse is the payload of the v8 chart endpoint.
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *apiError     `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Meta       chartMeta `json:"meta"`
	Timestamp  []int64   `json:"timestamp"`
	Indicators struct {
		Quote []chartQuote `json:"quote"`
	} `json:"indicators"`
}

type chartMeta struct {
	Currency             string `json:"currency"`
	Symbol               string `json:"symbol"`
	ExchangeName         string `json:"exchangeName"`
	FullExchangeName     string `json:"fullExchangeName"`
	ExchangeTimezoneName string `json:"exchangeTimezoneName"`
	LongName             string `json:"longName"`
	ShortName            string `json:"shortName"`
}

// chartQuote columns hold null for sessions without trades.
type chartQuote struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
}

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// quoteSummaryResponse is the payload of the v10 quoteSummary endpoint with
// the price and assetProfile modules.
type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			Price *struct {
				LongName  string   `json:"longName"`
				ShortName string   `json:"shortName"`
				Currency  string   `json:"currency"`
				Exchange  string   `json:"exchange"`
				MarketCap rawValue `json:"marketCap"`
			} `json:"price"`
			AssetProfile *struct {
				Sector              string `json:"sector"`
				Industry            string `json:"industry"`
				Website             string `json:"website"`
				LongBusinessSummary string `json:"longBusinessSummary"`
			} `json:"assetProfile"`
		} `json:"result"`
		Error *apiError `json:"error"`
	} `json:"quoteSummary"`
}

type rawValue struct {
	Raw float64 `json:"raw"`
}
