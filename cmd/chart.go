package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gamma-omg/stock-api/internal/indicator"
	"github.com/gamma-omg/stock-api/internal/market"
	"github.com/spf13/cobra"
)

func newChartCmd(opts *rootOptions) *cobra.Command {
	var (
		period string
		out    string
		width  int
		height int
	)

	cmd := &cobra.Command{
		Use:   "chart SYMBOL",
		Short: "Render price, SMA and RSI chart to a PNG file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := market.ParsePeriod(period)
			if err != nil {
				return err
			}

			_, log, prov, err := opts.load()
			if err != nil {
				return err
			}

			symbol := strings.ToUpper(args[0])
			bars, err := prov.FetchHistory(cmd.Context(), symbol, p)
			if err != nil {
				return fmt.Errorf("failed to fetch %s: %w", symbol, err)
			}

			chart, err := indicator.NewIndicatorChart(symbol, bars, width, height)
			if err != nil {
				return fmt.Errorf("failed to build chart: %w", err)
			}

			if out == "" {
				out = strings.ToLower(symbol) + ".png"
			}
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", out, err)
			}
			defer f.Close()

			if _, err := chart.WriteTo(f); err != nil {
				return err
			}

			log.Info("chart written", slog.String("symbol", symbol), slog.String("path", out), slog.Int("bars", len(bars)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&period, "period", "p", market.Period6mo.String(), "history period")
	cmd.Flags().StringVarP(&out, "output", "o", "", "output PNG path (default <symbol>.png)")
	cmd.Flags().IntVar(&width, "width", 1024, "chart width in points")
	cmd.Flags().IntVar(&height, "height", 768, "chart height in points")
	return cmd
}
