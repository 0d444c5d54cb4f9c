package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, src string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestRead_Server(t *testing.T) {
	cfg, err := Read(strings.NewReader(`
server:
    addr: 127.0.0.1:8080
    read_timeout: 5s
    write_timeout: 1m
    history_limit: 250
    hide_errors: true
log_level: debug
symbols:
    US: [AAPL, MSFT]
    JP: ["7203.T"]
`))

	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, time.Minute, cfg.Server.WriteTimeout)
	assert.Equal(t, 250, cfg.Server.HistoryLimit)
	assert.True(t, cfg.Server.HideErrors)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"AAPL", "MSFT"}, cfg.Symbols["US"])
	assert.Equal(t, []string{"7203.T"}, cfg.Symbols["JP"])
}

func TestRead_Yahoo(t *testing.T) {
	cfg, err := Read(strings.NewReader(`
provider:
    yahoo:
        base_url: http://localhost:9999
        user_agent: test-agent
        timeout: 3s
        proxy: http://proxy:3128
`))

	require.NoError(t, err)

	y, ok := cfg.ProviderRef.Provider.(Yahoo)
	require.True(t, ok)

	assert.Equal(t, "http://localhost:9999", y.BaseUrl)
	assert.Equal(t, "test-agent", y.UserAgent)
	assert.Equal(t, 3*time.Second, y.Timeout)
	assert.Equal(t, "http://proxy:3128", y.Proxy)
}

func TestRead_Alpaca(t *testing.T) {
	cfg, err := Read(strings.NewReader(`
provider:
    alpaca:
        base_url: https://paper-api.alpaca.markets
        data_url: https://data.alpaca.markets
        api_key: key
        secret: secret
        feed: iex
`))

	require.NoError(t, err)

	a, ok := cfg.ProviderRef.Provider.(Alpaca)
	require.True(t, ok)

	assert.Equal(t, "https://paper-api.alpaca.markets", a.BaseUrl)
	assert.Equal(t, "https://data.alpaca.markets", a.DataUrl)
	assert.Equal(t, "key", a.ApiKey)
	assert.Equal(t, "secret", a.Secret)
	assert.Equal(t, "iex", a.Feed)
}

func TestRead_CSV(t *testing.T) {
	cfg, err := Read(strings.NewReader(`
provider:
    csv:
        data:
            AAPL: /var/data/aapl.csv
            MSFT: /var/data/msft.csv
        meta:
            AAPL:
                name: Apple Inc.
                sector: Technology
                market_cap: 3000000000000
`))

	require.NoError(t, err)

	c, ok := cfg.ProviderRef.Provider.(CSV)
	require.True(t, ok)

	assert.Equal(t, "/var/data/aapl.csv", c.Data["AAPL"])
	assert.Equal(t, "/var/data/msft.csv", c.Data["MSFT"])
	assert.Equal(t, "Apple Inc.", c.Meta["AAPL"].Name)
	assert.Equal(t, "Technology", c.Meta["AAPL"].Sector)
	assert.Equal(t, int64(3000000000000), c.Meta["AAPL"].MarketCap)
}

func TestRead_UnknownProvider(t *testing.T) {
	_, err := Read(strings.NewReader(`
provider:
    bloomberg:
        key: x
`))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider type: bloomberg")
}

func TestRead_Empty(t *testing.T) {
	cfg, err := Read(strings.NewReader(""))
	require.NoError(t, err)
	assert.Nil(t, cfg.ProviderRef.Provider)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, defaultAddr, cfg.Server.Addr)
	assert.Equal(t, defaultHistoryLimit, cfg.Server.HistoryLimit)
	assert.False(t, cfg.Server.HideErrors)
	assert.Equal(t, slog.LevelInfo, cfg.Level())
	assert.Equal(t, DefaultSymbols(), cfg.Symbols)
	assert.Len(t, cfg.Symbols["US"], 7)
	assert.Len(t, cfg.Symbols["KR"], 8)

	y, ok := cfg.ProviderRef.Provider.(Yahoo)
	require.True(t, ok)
	assert.Equal(t, defaultYahooBaseUrl, y.BaseUrl)
	assert.Equal(t, defaultHTTPTimeout, y.Timeout)
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, defaultAddr, cfg.Server.Addr)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":7000")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("ALPACA_API_KEY", "env-key")
	t.Setenv("ALPACA_API_SECRET", "env-secret")

	path := writeConfig(t, `
provider:
    alpaca:
        api_key: file-key
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, slog.LevelWarn, cfg.Level())

	a, ok := cfg.ProviderRef.Provider.(Alpaca)
	require.True(t, ok)
	assert.Equal(t, "env-key", a.ApiKey)
	assert.Equal(t, "env-secret", a.Secret)
}

func TestLoad_Invalid(t *testing.T) {
	tbl := []string{
		`
provider:
    alpaca:
        api_key: only-key
`,
		`
provider:
    csv:
        data: {}
`,
		`
log_level: loud
`,
		`
server:
    history_limit: -1
`,
		`
provider: [1, 2]
`,
	}

	for _, src := range tbl {
		_, err := Load(writeConfig(t, src))
		assert.Error(t, err)
	}
}
