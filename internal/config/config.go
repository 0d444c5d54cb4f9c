package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultAddr         = "0.0.0.0:5000"
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 60 * time.Second
	defaultHistoryLimit = 100
	defaultYahooBaseUrl = "https://query1.finance.yahoo.com"
	defaultYahooAgent   = "Mozilla/5.0"
	defaultHTTPTimeout  = 30 * time.Second
)

type Config struct {
	Server      Server              `yaml:"server"`
	LogLevel    string              `yaml:"log_level"`
	Symbols     map[string][]string `yaml:"symbols"`
	ProviderRef ProviderReference   `yaml:"provider"`
}

type Server struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	HistoryLimit int           `yaml:"history_limit"`
	HideErrors   bool          `yaml:"hide_errors"`
}

// Read parses YAML config from r. Defaults are not applied.
func Read(r io.Reader) (*Config, error) {
	var cfg Config
	d := yaml.NewDecoder(r)
	err := d.Decode(&cfg)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unable to parse config file: %w", err)
	}

	return &cfg, nil
}

func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read config file: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Load reads the config file at path if there is one, then applies
// environment overrides and defaults. An empty path or a missing file yields
// the default configuration.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		c, err := ReadFromFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		if c != nil {
			cfg = c
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}

	if a, ok := c.ProviderRef.Provider.(Alpaca); ok {
		if v := os.Getenv("ALPACA_API_KEY"); v != "" {
			a.ApiKey = v
		}
		if v := os.Getenv("ALPACA_API_SECRET"); v != "" {
			a.Secret = v
		}
		c.ProviderRef.Provider = a
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = defaultAddr
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = defaultReadTimeout
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = defaultWriteTimeout
	}
	if c.Server.HistoryLimit == 0 {
		c.Server.HistoryLimit = defaultHistoryLimit
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if len(c.Symbols) == 0 {
		c.Symbols = DefaultSymbols()
	}

	switch p := c.ProviderRef.Provider.(type) {
	case nil:
		c.ProviderRef.Provider = Yahoo{
			BaseUrl:   defaultYahooBaseUrl,
			UserAgent: defaultYahooAgent,
			Timeout:   defaultHTTPTimeout,
		}
	case Yahoo:
		if p.BaseUrl == "" {
			p.BaseUrl = defaultYahooBaseUrl
		}
		if p.UserAgent == "" {
			p.UserAgent = defaultYahooAgent
		}
		if p.Timeout == 0 {
			p.Timeout = defaultHTTPTimeout
		}
		c.ProviderRef.Provider = p
	}
}

func (c *Config) Validate() error {
	if c.Server.HistoryLimit < 0 {
		return errors.New("server.history_limit must not be negative")
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}

	switch p := c.ProviderRef.Provider.(type) {
	case Alpaca:
		if p.ApiKey == "" || p.Secret == "" {
			return errors.New("provider.alpaca requires api_key and secret")
		}
	case CSV:
		if len(p.Data) == 0 {
			return errors.New("provider.csv requires at least one data file")
		}
	}

	return nil
}

// Level returns the configured slog level, info when unparsable.
func (c *Config) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}

	return lvl
}

func DefaultSymbols() map[string][]string {
	return map[string][]string{
		"US": {"AAPL", "GOOGL", "MSFT", "TSLA", "AMZN", "META", "NVDA"},
		"KR": {"005930.KS", "000660.KS", "005380.KS", "035420.KS",
			"035720.KS", "006400.KS", "051910.KS", "207940.KS"},
	}
}

type ProviderReference struct {
	Provider Provider
}

type Provider interface{}

// provider configs

type Yahoo struct {
	BaseUrl   string        `yaml:"base_url"`
	UserAgent string        `yaml:"user_agent"`
	Timeout   time.Duration `yaml:"timeout"`
	Proxy     string        `yaml:"proxy"`
}

type Alpaca struct {
	BaseUrl string `yaml:"base_url"`
	DataUrl string `yaml:"data_url"`
	ApiKey  string `yaml:"api_key"`
	Secret  string `yaml:"secret"`
	Feed    string `yaml:"feed"`
}

type CSV struct {
	Data map[string]string      `yaml:"data"`
	Meta map[string]CSVMetadata `yaml:"meta"`
}

type CSVMetadata struct {
	Name        string `yaml:"name"`
	Currency    string `yaml:"currency"`
	Exchange    string `yaml:"exchange"`
	Sector      string `yaml:"sector"`
	Industry    string `yaml:"industry"`
	MarketCap   int64  `yaml:"market_cap"`
	Website     string `yaml:"website"`
	Description string `yaml:"description"`
}

func (w *ProviderReference) UnmarshalYAML(value *yaml.Node) error {
	if len(value.Content) == 0 {
		return nil
	}

	if value.Kind != yaml.MappingNode || len(value.Content) != 2 {
		return errors.New("invalid provider yaml format")
	}

	key := value.Content[0].Value
	switch key {
	case "yahoo":
		var yahoo Yahoo
		if err := value.Content[1].Decode(&yahoo); err != nil {
			return fmt.Errorf("failed parsing yahoo provider config: %w", err)
		}
		w.Provider = yahoo
	case "alpaca":
		var alpaca Alpaca
		if err := value.Content[1].Decode(&alpaca); err != nil {
			return fmt.Errorf("failed parsing alpaca provider config: %w", err)
		}
		w.Provider = alpaca
	case "csv":
		var csv CSV
		if err := value.Content[1].Decode(&csv); err != nil {
			return fmt.Errorf("failed parsing csv provider config: %w", err)
		}
		w.Provider = csv
	default:
		return fmt.Errorf("unknown provider type: %s", key)
	}

	return nil
}
