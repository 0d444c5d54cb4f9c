package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gamma-omg/stock-api/internal/config"
	"github.com/gamma-omg/stock-api/internal/provider"
	"github.com/gamma-omg/stock-api/internal/provider/factory"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	envFile    string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "stock-api",
		Short:        "Stock data HTTP API with SMA and RSI indicators",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", os.Getenv("CONFIG"), "path to YAML config (env CONFIG)")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before the config")

	cmd.AddCommand(
		newServeCmd(opts),
		newTechnicalCmd(opts),
		newChartCmd(opts),
		newExportCmd(opts),
	)

	return cmd
}

// load reads .env (if present) and the config, then builds the logger and
// the configured provider.
func (o *rootOptions) load() (*config.Config, *slog.Logger, provider.Provider, error) {
	if o.envFile != "" {
		if err := godotenv.Load(o.envFile); err != nil && !os.IsNotExist(err) {
			return nil, nil, nil, fmt.Errorf("failed to load %s: %w", o.envFile, err)
		}
	}

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, nil, err
	}

	log := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))

	p, err := factory.Create(log, cfg.ProviderRef)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create provider: %w", err)
	}

	return cfg, log, p, nil
}
